package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
)

func TestTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewTokenStore(path)

	_, err := s.Load()
	require.ErrorIs(t, err, client.ErrNotLoggedIn)

	require.NoError(t, s.Save("tok-1"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, s.Save("tok-2"))
	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, s.Clear())
	_, err = s.Load()
	require.ErrorIs(t, err, client.ErrNotLoggedIn)

	require.NoError(t, s.Clear(), "clearing twice is fine")
}

func TestTokenStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, err := NewTokenStore(path).Load()
	require.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestTokenStore_TightensMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, NewTokenStore(path).Save("new"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
