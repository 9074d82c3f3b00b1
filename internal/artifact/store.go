// Package artifact manages per-request scratch directories for the
// recognition pipeline: the downloaded label image and the crops the
// detector writes next to it. Every request gets its own workspace so
// concurrent pipelines never touch each other's files.
package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Store hands out workspaces under a single scratch root.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}
	return &Store{root: root}, nil
}

// Workspace is the scratch area of one recognition request.
type Workspace struct {
	ID        string
	Dir       string
	ImagePath string
	CropDir   string
}

// Begin creates a fresh workspace: <root>/<uuid>/{label.jpg,crops/}.
func (s *Store) Begin() (*Workspace, error) {
	id := uuid.NewString()
	dir := filepath.Join(s.root, id)
	cropDir := filepath.Join(dir, "crops")
	if err := os.MkdirAll(cropDir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{
		ID:        id,
		Dir:       dir,
		ImagePath: filepath.Join(dir, "label.jpg"),
		CropDir:   cropDir,
	}, nil
}

// SaveImage streams the downloaded image into the workspace,
// overwriting any previous content.
func (w *Workspace) SaveImage(r io.Reader) error {
	f, err := os.Create(w.ImagePath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Crops lists the image files the detector produced, sorted by filename.
// Recognition order follows this listing.
func (w *Workspace) Crops() ([]string, error) {
	return ListImages(w.CropDir)
}

// ListImages returns the image files in dir, sorted by filename.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}

// Cleanup removes the whole workspace. Safe to call more than once.
func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.Dir)
}
