package mongo

import (
	"alcyxob/loadx/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const documentCollectionName = "documents"

// blobDocument is how one keyed JSON document is stored in the collection.
type blobDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoBlobStore implements the repository.BlobStore interface using MongoDB.
type mongoBlobStore struct {
	collection *mongo.Collection
	prefix     string
}

// NewMongoBlobStore creates a BlobStore over the "documents" collection of db.
// prefix is prepended to every key, allowing several installations to share a database.
func NewMongoBlobStore(db *mongo.Database, prefix string) repository.BlobStore {
	return &mongoBlobStore{
		collection: db.Collection(documentCollectionName),
		prefix:     prefix,
	}
}

// Get retrieves the payload stored under key.
func (s *mongoBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc blobDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": s.prefix + key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return []byte(doc.Payload), nil
}

// Put replaces (or inserts) the whole document stored under key.
func (s *mongoBlobStore) Put(ctx context.Context, key string, data []byte) error {
	doc := blobDocument{
		Key:       s.prefix + key,
		Payload:   string(data),
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	return err
}
