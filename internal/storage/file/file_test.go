package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "students.json")
	f, err := New(path)
	require.NoError(t, err)

	body, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(onDisk))
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	f, err := New(path)
	require.NoError(t, err)

	require.NoError(t, f.Save([]byte(`[{"id":1}]`)))
	body, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(body))

	require.NoError(t, f.Save([]byte(`[]`)))
	body, err = f.Load()
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(body))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f, err := New(filepath.Join(dir, "students.json"))
	require.NoError(t, err)

	require.NoError(t, f.Save([]byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "students.json", entries[0].Name())
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
