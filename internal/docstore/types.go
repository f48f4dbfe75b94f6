package docstore

import (
	"context"
	"time"
)

// Document is the entire persisted application state. It is always read and
// written as a whole: callers load it, mutate one field in memory and save it
// back. No component keeps a long-lived copy between operations.
type Document struct {
	Blogs []Blog `json:"blogs" bson:"blogs"`
	Users []User `json:"users" bson:"users"`
}

type Blog struct {
	ID      int    `json:"id" bson:"id"`
	Title   string `json:"title" bson:"title"`
	Slug    string `json:"slug" bson:"slug"`
	Content string `json:"content" bson:"content"`
	Author  string `json:"author" bson:"author"`
	// UpdatedAt is set at creation and never touched again; there is no
	// update operation.
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	ImageURL      *string   `json:"image_url" bson:"image_url"`
	ImagePublicID *string   `json:"image_public_id,omitempty" bson:"image_public_id,omitempty"`
}

type User struct {
	ID        int       `json:"id" bson:"id"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"password" bson:"password"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store loads and replaces the document. Load returns an empty document when
// the backing store holds nothing yet; any other failure is returned as an
// error so that the caller decides between failing open and surfacing it.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}
