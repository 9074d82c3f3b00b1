package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginIsolatesWorkspaces(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	a, err := store.Begin()
	require.NoError(t, err)
	b, err := store.Begin()
	require.NoError(t, err)

	assert.NotEqual(t, a.Dir, b.Dir)
	assert.NotEqual(t, a.ImagePath, b.ImagePath)
	assert.DirExists(t, a.CropDir)
	assert.DirExists(t, b.CropDir)
}

func TestSaveImage(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ws, err := store.Begin()
	require.NoError(t, err)

	require.NoError(t, ws.SaveImage(strings.NewReader("jpeg bytes")))
	data, err := os.ReadFile(ws.ImagePath)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestCropsSortedByFilename(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ws, err := store.Begin()
	require.NoError(t, err)

	for _, name := range []string{"label_crop_2.jpg", "label_crop_0.jpg", "label_crop_1.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(ws.CropDir, name), []byte("x"), 0o644))
	}

	crops, err := ws.Crops()
	require.NoError(t, err)
	require.Len(t, crops, 3)
	assert.Equal(t, "label_crop_0.jpg", filepath.Base(crops[0]))
	assert.Equal(t, "label_crop_1.png", filepath.Base(crops[1]))
	assert.Equal(t, "label_crop_2.jpg", filepath.Base(crops[2]))
}

func TestCleanupRemovesEverything(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ws, err := store.Begin()
	require.NoError(t, err)

	require.NoError(t, ws.SaveImage(strings.NewReader("img")))
	require.NoError(t, os.WriteFile(filepath.Join(ws.CropDir, "c0.jpg"), []byte("x"), 0o644))

	require.NoError(t, ws.Cleanup())
	assert.NoDirExists(t, ws.Dir)

	// idempotent
	require.NoError(t, ws.Cleanup())
}
