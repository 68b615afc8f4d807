package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, open func(t *testing.T) Store) {
	t.Helper()
	s := open(t)

	_, ok, err := s.Get("tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put("tasks", []byte(`[{"id":"t1"}]`)))
	require.NoError(t, s.Put("projects", []byte(`["garden"]`)))

	got, ok, err := s.Get("tasks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"t1"}]`, string(got))

	// overwrite replaces
	require.NoError(t, s.Put("tasks", []byte(`[]`)))
	got, _, _ = s.Get("tasks")
	assert.Equal(t, `[]`, string(got))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"projects", "tasks"}, keys)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store { return NewMemory() })
}

func TestDirStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store {
		d, err := NewDir(filepath.Join(t.TempDir(), "data"))
		require.NoError(t, err)
		return d
	})
}

func TestSQLiteStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store {
		s, err := OpenSQLite(filepath.Join(t.TempDir(), "blobs.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestDirStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	d, err := NewDir(dir)
	require.NoError(t, err)
	require.NoError(t, d.Put("tasks", []byte(`[]`)))

	d2, err := NewDir(dir)
	require.NoError(t, err)
	got, ok, err := d2.Get("tasks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(got))
}
