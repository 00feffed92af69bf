package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSysHealth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.db"), make([]byte, 2048), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.db"), make([]byte, 1024), 0644))

	health := GetSysHealth(dir)
	assert.Equal(t, "3.0 KB", health.DataDiskSize)
	assert.Positive(t, health.Goroutines)
	assert.Positive(t, health.SysMB)
}

func TestCalculateDirSize(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "0 B", calculateDirSize(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "small"), []byte("hello"), 0644))
	assert.Equal(t, "5 B", calculateDirSize(dir))

	assert.Equal(t, "0 B", calculateDirSize(filepath.Join(dir, "missing")))
	assert.Equal(t, "1.5 MB", humanBytes(1536*1024))
}
