package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	stateCollection = "state"
	stateDocumentID = "application-state"

	connectTimeout = 5 * time.Second
)

// MongoStore keeps the whole document as a single record in one collection,
// mirroring a hosted single-document JSON store. Every Save replaces the
// record unconditionally; concurrent writers are last-write-wins.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

type mongoDocument struct {
	ID    string `bson:"_id"`
	Blogs []Blog `bson:"blogs"`
	Users []User `bson:"users"`
}

func NewMongoStore(uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to document store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("could not ping document store: %w", err)
	}

	return &MongoStore{
		client: client,
		col:    client.Database(dbName).Collection(stateCollection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context) (*Document, error) {
	var record mongoDocument

	err := s.col.FindOne(ctx, bson.M{"_id": stateDocumentID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("could not fetch document: %w", err)
	}

	return &Document{Blogs: record.Blogs, Users: record.Users}, nil
}

func (s *MongoStore) Save(ctx context.Context, doc *Document) error {
	record := mongoDocument{
		ID:    stateDocumentID,
		Blogs: doc.Blogs,
		Users: doc.Users,
	}

	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": stateDocumentID}, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("could not replace document: %w", err)
	}

	return nil
}

// Close releases the underlying client connection.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
