package token

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "client_id"))

	_, found, err := s.Load()
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save("tok-1"))

	got, found, err := s.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tok-1", got)
}

func TestStoreOverwrite(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "client_id"))
	require.NoError(t, s.Save("old"))
	require.NoError(t, s.Save("new"))

	got, found, err := s.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new", got)
}

func TestStoreClear(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "client_id"))
	require.NoError(t, s.Clear()) // clearing an absent token is fine

	require.NoError(t, s.Save("tok-1"))
	require.NoError(t, s.Clear())

	_, found, err := s.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreEmptyFileMeansAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client_id")
	s := NewStore(path)
	require.NoError(t, s.Save(""))

	_, found, err := s.Load()
	require.NoError(t, err)
	assert.False(t, found)
}
