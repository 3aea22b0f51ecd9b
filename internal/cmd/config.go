package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`
	TokenPath string `yaml:"token_path"`
	LogLevel  string `yaml:"log_level"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.BaseURL = "http://127.0.0.1:8000"
	cfg.LogLevel = "info"
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.Server.BaseURL = getEnv("LEAPFROG_SERVER_URL", cfg.Server.BaseURL)
	cfg.TokenPath = getEnv("LEAPFROG_TOKEN_PATH", cfg.TokenPath)
	cfg.LogLevel = getEnv("LEAPFROG_LOG_LEVEL", cfg.LogLevel)

	return cfg, nil
}
