package blobstore

import (
	"context"
	"fmt"
	"mime"
	"time"
)

// Ref identifies a stored blob: a public URL for readers and the handle used
// to request deletion later.
type Ref struct {
	URL      string
	PublicID string
}

// Store uploads image bytes and deletes them by their public ID. The blog
// service only depends on this contract, never on the backing storage.
type Store interface {
	Store(ctx context.Context, data []byte, contentType string) (*Ref, error)
	Delete(ctx context.Context, publicID string) error
}

// objectName builds a collision-resistant name from the current time plus an
// extension matching the content type.
func objectName(contentType string, now time.Time) string {
	return fmt.Sprintf("%d%s", now.UnixNano(), extensionFor(contentType))
}

func extensionFor(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}

	// Prefer the conventional spellings over the first registry entry.
	for _, preferred := range []string{".jpg", ".png", ".gif", ".webp"} {
		for _, ext := range exts {
			if ext == preferred {
				return ext
			}
		}
	}

	return exts[0]
}
