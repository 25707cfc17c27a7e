package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestGetMissingKey(t *testing.T) {
	s := openTemp(t)

	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetThenGet(t *testing.T) {
	s := openTemp(t)

	require.NoError(t, s.Set("todos", `[{"id":"a"}]`))
	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, v)
}

func TestSetReplaces(t *testing.T) {
	s := openTemp(t)

	require.NoError(t, s.Set("todos", "first"))
	require.NoError(t, s.Set("todos", "second"))
	require.NoError(t, s.Set("other", "untouched"))

	v, _, err := s.Get("todos")
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	v, _, err = s.Get("other")
	require.NoError(t, err)
	assert.Equal(t, "untouched", v)
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("todos", "[]"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:already", sqliteDSN("file:already"))

	dsn := sqliteDSN("/tmp/tally.db")
	assert.True(t, strings.HasPrefix(dsn, "file:///tmp/tally.db?"), dsn)
	assert.Contains(t, dsn, "mode=rwc")
}
