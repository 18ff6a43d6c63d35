package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "prefs.json"))

	assert.NoError(t, store.Load())
	_, ok := store.Get("currency")
	assert.False(t, ok)
}

func TestSetPersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	store := NewStore(path)
	assert.NoError(t, store.Load())
	assert.NoError(t, store.Set("currency", "EUR"))

	reopened := NewStore(path)
	assert.NoError(t, reopened.Load())
	value, ok := reopened.Get("currency")
	assert.True(t, ok)
	assert.Equal(t, "EUR", value)
}

func TestDeleteRemovesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	store := NewStore(path)
	assert.NoError(t, store.Set("currency", "USD"))
	assert.NoError(t, store.Delete("currency"))

	_, ok := store.Get("currency")
	assert.False(t, ok)

	reopened := NewStore(path)
	assert.NoError(t, reopened.Load())
	_, ok = reopened.Get("currency")
	assert.False(t, ok)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path)
	assert.Error(t, store.Load())
}
