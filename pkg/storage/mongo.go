package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a MongoBackend.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	ID         string // _id of the document holding the blob
}

// MongoBackend stores the blob in one document of a collection.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
	id     string
}

type blobDocument struct {
	ID        string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoBackend connects to MongoDB and verifies the connection.
func NewMongoBackend(ctx context.Context, cfg MongoConfig) (*MongoBackend, error) {
	if cfg.Database == "" || cfg.Collection == "" || cfg.ID == "" {
		return nil, fmt.Errorf("storage: mongo database, collection and id are required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoBackend{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		id:     cfg.ID,
	}, nil
}

// Read returns the blob held by the document.
func (b *MongoBackend) Read(ctx context.Context) ([]byte, error) {
	var doc blobDocument
	err := b.coll.FindOne(ctx, bson.M{"_id": b.id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Data), nil
}

// Write replaces the document, creating it if needed.
func (b *MongoBackend) Write(ctx context.Context, data []byte) error {
	doc := blobDocument{ID: b.id, Data: string(data), UpdatedAt: time.Now().UTC()}
	_, err := b.coll.ReplaceOne(ctx, bson.M{"_id": b.id}, doc, options.Replace().SetUpsert(true))
	return err
}

// Location returns the database, collection and document id.
func (b *MongoBackend) Location() string {
	return fmt.Sprintf("mongodb:%s.%s/%s", b.coll.Database().Name(), b.coll.Name(), b.id)
}

// Close disconnects the client.
func (b *MongoBackend) Close() error {
	return b.client.Disconnect(context.Background())
}

var _ Backend = (*MongoBackend)(nil)
