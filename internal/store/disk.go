package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// DiskImages stores uploaded images as files in a single directory.
type DiskImages struct {
	dir string
}

// NewDiskImages creates dir if needed.
func NewDiskImages(dir string) (*DiskImages, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskImages{dir: dir}, nil
}

// Save writes r to name. An existing file with the same name yields ErrDuplicate.
func (s *DiskImages) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("save %s: %w", name, ErrDuplicate)
		}
		return fmt.Errorf("save %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// Open returns the file contents and a content type derived from its extension.
func (s *DiskImages) Open(_ context.Context, name string) (io.ReadCloser, string, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("open %s: %w", name, ErrNotFound)
		}
		return nil, "", fmt.Errorf("open %s: %w", name, err)
	}
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return f, ct, nil
}

// Remove deletes name. Removing a missing file is not an error.
func (s *DiskImages) Remove(_ context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// path confines name to the upload directory.
func (s *DiskImages) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid image name %q: %w", name, ErrNotFound)
	}
	return filepath.Join(s.dir, name), nil
}
