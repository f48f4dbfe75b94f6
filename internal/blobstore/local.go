package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LocalStore writes blobs into a directory that the HTTP server exposes as
// static files. The public ID is the bare filename.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}

	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStore) Store(ctx context.Context, data []byte, contentType string) (*Ref, error) {
	name := objectName(contentType, time.Now())

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("could not write upload: %w", err)
	}

	return &Ref{
		URL:      s.baseURL + "/" + name,
		PublicID: name,
	}, nil
}

func (s *LocalStore) Delete(ctx context.Context, publicID string) error {
	// The public ID came from objectName and never contains a separator;
	// Base guards against a crafted ID escaping the upload directory.
	name := filepath.Base(publicID)

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("could not remove upload: %w", err)
	}

	return nil
}

// Dir returns the directory uploads are written to, for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}
