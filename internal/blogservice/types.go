package blogservice

import (
	"errors"
	"log/slog"
	"time"

	"github.com/himatikom/blogserver/internal/blobstore"
	"github.com/himatikom/blogserver/internal/docstore"
)

var ErrRecordNotFound = errors.New("record not found")

type BlogService struct {
	store  docstore.Store
	blobs  blobstore.Store
	logger *slog.Logger
}

// Summary is the projection of a post used in listings. Content,
// updated_at and the image deletion handle are deliberately dropped.
type Summary struct {
	ID        int       `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	ImageURL  *string   `json:"image_url"`
}

type CreateBlogRequest struct {
	Title   string
	Content string
	Author  string

	// Image is optional; when present it is uploaded to the blob store and
	// the resulting reference is persisted with the post.
	Image            []byte
	ImageContentType string
}

func summarize(b *docstore.Blog) Summary {
	return Summary{
		ID:        b.ID,
		Slug:      b.Slug,
		Title:     b.Title,
		Author:    b.Author,
		CreatedAt: b.CreatedAt,
		ImageURL:  b.ImageURL,
	}
}
