package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore keeps blobs as flat files under one directory. References look
// like "file://<name>.jpg" and are relative to the directory, so the tree
// can be moved wholesale.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Put(ctx context.Context, data []byte) (string, error) {
	name := uuid.New().String() + ".jpg"
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return "file://" + name, nil
}

func (s *FileStore) Get(ctx context.Context, ref string) ([]byte, error) {
	scheme, key, err := splitRef(ref)
	if err != nil {
		return nil, err
	}
	if scheme != "file" {
		return nil, fmt.Errorf("reference %q is not a file blob", ref)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

func (s *FileStore) Delete(ctx context.Context, ref string) error {
	scheme, key, err := splitRef(ref)
	if err != nil {
		return err
	}
	if scheme != "file" {
		return fmt.Errorf("reference %q is not a file blob", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	var refs []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		refs = append(refs, "file://"+f.Name())
	}
	return refs, nil
}
