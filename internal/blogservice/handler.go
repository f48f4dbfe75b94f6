package blogservice

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/himatikom/blogserver/internal/blobstore"
	"github.com/himatikom/blogserver/internal/common"
	"github.com/himatikom/blogserver/internal/docstore"
)

func NewBlogService(store docstore.Store, blobs blobstore.Store, logger *slog.Logger) *BlogService {
	return &BlogService{
		store:  store,
		blobs:  blobs,
		logger: logger,
	}
}

// loadOrEmpty is the single place where read paths decide to fail open: an
// unreachable or unreadable store presents as an empty collection. Write
// paths never use it.
func (s *BlogService) loadOrEmpty(ctx context.Context) *docstore.Document {
	doc, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("could not load document, treating collection as empty", slog.String("error", err.Error()))
		return &docstore.Document{}
	}

	return doc
}

// ListSummaries returns every post as a summary, in the insertion order of
// the underlying collection.
func (s *BlogService) ListSummaries(ctx context.Context) []Summary {
	doc := s.loadOrEmpty(ctx)

	summaries := make([]Summary, 0, len(doc.Blogs))
	for i := range doc.Blogs {
		summaries = append(summaries, summarize(&doc.Blogs[i]))
	}

	return summaries
}

// ListRecent returns at most n summaries, newest first.
func (s *BlogService) ListRecent(ctx context.Context, n int) []Summary {
	doc := s.loadOrEmpty(ctx)

	blogs := make([]docstore.Blog, len(doc.Blogs))
	copy(blogs, doc.Blogs)

	sort.Slice(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})

	if len(blogs) > n {
		blogs = blogs[:n]
	}

	summaries := make([]Summary, 0, len(blogs))
	for i := range blogs {
		summaries = append(summaries, summarize(&blogs[i]))
	}

	return summaries
}

// GetByID returns the full post with the given id.
func (s *BlogService) GetByID(ctx context.Context, id int) (*docstore.Blog, error) {
	doc := s.loadOrEmpty(ctx)

	for i := range doc.Blogs {
		if doc.Blogs[i].ID == id {
			return &doc.Blogs[i], nil
		}
	}

	return nil, ErrRecordNotFound
}

// Create validates the fields, uploads the optional image, assigns the next
// id and persists the whole document. Store failures are returned to the
// caller rather than swallowed.
func (s *BlogService) Create(ctx context.Context, req *CreateBlogRequest) (*docstore.Blog, error) {
	v := common.NewValidator()
	validateCreateBlog(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	id := 1
	for i := range doc.Blogs {
		if doc.Blogs[i].ID >= id {
			id = doc.Blogs[i].ID + 1
		}
	}

	now := time.Now().UTC()

	blog := docstore.Blog{
		ID:        id,
		Title:     req.Title,
		Slug:      Slugify(req.Title),
		Content:   req.Content,
		Author:    req.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if len(req.Image) > 0 {
		ref, err := s.blobs.Store(ctx, req.Image, req.ImageContentType)
		if err != nil {
			return nil, err
		}
		blog.ImageURL = &ref.URL
		blog.ImagePublicID = &ref.PublicID
	}

	doc.Blogs = append(doc.Blogs, blog)

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}

	return &blog, nil
}

// Delete removes the post with the given id and persists the document. The
// associated image, if any, is deleted best-effort afterwards: by then the
// document change is durable, so a blob failure is only logged.
func (s *BlogService) Delete(ctx context.Context, id int) error {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range doc.Blogs {
		if doc.Blogs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrRecordNotFound
	}

	blog := doc.Blogs[idx]
	doc.Blogs = append(doc.Blogs[:idx], doc.Blogs[idx+1:]...)

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}

	if blog.ImagePublicID != nil {
		if err := s.blobs.Delete(ctx, *blog.ImagePublicID); err != nil {
			s.logger.Error("could not delete blog image", slog.String("public_id", *blog.ImagePublicID), slog.String("error", err.Error()))
		}
	}

	return nil
}
