package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "data", "state.json"))
	assert.NoError(t, err)

	doc, err := store.Load(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, doc.Blogs)
	assert.Empty(t, doc.Users)
}

func TestFileStoreSaveLoad(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	assert.NoError(t, err)

	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	doc := &Document{
		Blogs: []Blog{
			{ID: 1, Title: "First Post", Slug: "first-post", Content: "hello", Author: "admin", CreatedAt: now, UpdatedAt: now},
		},
		Users: []User{
			{ID: 1, Username: "admin", Password: "not-a-real-hash", Role: "admin", CreatedAt: now},
		},
	}

	err = store.Save(ctx, doc)
	assert.NoError(t, err)

	loaded, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, doc.Blogs, loaded.Blogs)
	assert.Equal(t, doc.Users, loaded.Users)
}

func TestFileStoreSaveReplacesPriorContent(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	assert.NoError(t, err)

	ctx := context.Background()

	err = store.Save(ctx, &Document{Blogs: []Blog{{ID: 1, Title: "Old"}}})
	assert.NoError(t, err)

	err = store.Save(ctx, &Document{Blogs: []Blog{{ID: 2, Title: "New"}}})
	assert.NoError(t, err)

	loaded, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, loaded.Blogs, 1)
	assert.Equal(t, 2, loaded.Blogs[0].ID)
}

func TestFileStoreLoadMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	err := os.WriteFile(path, []byte("{not json"), 0o644)
	assert.NoError(t, err)

	store, err := NewFileStore(path)
	assert.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.Error(t, err)
}
