package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func TestStore_SetGetSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "marquee.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("favorites", []record{{ID: 27205, Title: "Inception"}}))
	require.NoError(t, s.Set("darkMode", true))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var got []record
	ok, err := s.Get("favorites", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []record{{ID: 27205, Title: "Inception"}}, got)

	var dark bool
	ok, err = s.Get("darkMode", &dark)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, dark)
}

func TestStore_MissingKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "marquee.db"))
	require.NoError(t, err)
	defer s.Close()

	var v string
	ok, err := s.Get("lastSearched", &v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestStore_CorruptValue(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)

	require.NoError(t, s.SetRaw("favorites", []byte("{not json")))

	var got []record
	ok, err := s.Get("favorites", &got)
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestStore_DeleteKeysClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("user", map[string]string{"username": "ada"}))
	require.NoError(t, s.Set("lastSearched", "batman"))
	require.NoError(t, s.Delete("missing"))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"lastSearched", "user"}, keys)

	require.NoError(t, s.Delete("user"))
	var u map[string]string
	ok, err := s.Get("user", &u)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear())
	keys, err = s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStore_MemoryOnly(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)

	require.NoError(t, s.Set("lastSearched", "alien"))
	var q string
	ok, err := s.Get("lastSearched", &q)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alien", q)
	assert.NoError(t, s.Close())
}
