// Package mongo implements the document store sink.
package mongo

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

// Config controls the document store client.
type Config struct {
	URI        string
	Database   string
	Collection string
}

type collection interface {
	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// Store upserts one document per record, keyed by the record ID.
type Store struct {
	client     *mongo.Client
	collection collection
	logger     *zap.Logger
}

// New connects a Store and verifies the server responds.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		logger:     logger,
	}, nil
}

// NewWithCollection constructs a Store over an existing collection
// (primarily for testing). Close is a no-op for stores built this way.
func NewWithCollection(c collection, logger *zap.Logger) *Store {
	return &Store{collection: c, logger: logger}
}

// Name identifies the sink.
func (s *Store) Name() string { return "mongo" }

// Write upserts the record's document, replacing any previous version
// with the same ID. Zipcodes are stored as integers; a zipcode that
// does not parse as one is dropped from the document.
func (s *Store) Write(ctx context.Context, rec jobs.Record) error {
	doc := bson.M{}
	for key, value := range rec.Fields() {
		if key == "id" {
			continue
		}
		doc[key] = value
	}
	doc["zipcode"] = zipcodeField(rec.Zipcode)

	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": rec.ID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", rec.ID, err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

func zipcodeField(zip *string) any {
	if zip == nil {
		return nil
	}
	n, err := strconv.Atoi(*zip)
	if err != nil {
		return nil
	}
	return n
}
