package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "prime_counts"

// Record is a persisted prime count for one bound.
type Record struct {
	Limit      int       `bson:"limit"`
	Count      int       `bson:"count"`
	ElapsedMS  int64     `bson:"elapsed_ms"`
	ComputedAt time.Time `bson:"computed_at"`
}

// ResultStore persists computed counts so restarts don't recompute them.
type ResultStore interface {
	Get(ctx context.Context, limit int) (Record, bool, error)
	Save(ctx context.Context, rec Record) error
	Ping(ctx context.Context) error
}

type MongoResultStore struct {
	coll *mongo.Collection
}

// NewMongoResultStore sets up the collection and a unique index on limit.
func NewMongoResultStore(ctx context.Context, client *mongo.Client, dbName string) (*MongoResultStore, error) {
	coll := client.Database(dbName).Collection(collectionName)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "limit", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create limit index: %w", err)
	}
	return &MongoResultStore{coll: coll}, nil
}

// Get returns found=false when no record exists for limit.
func (s *MongoResultStore) Get(ctx context.Context, limit int) (Record, bool, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.D{{Key: "limit", Value: limit}}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("find limit %d: %w", limit, err)
	}
	return rec, true, nil
}

// Save upserts the record keyed by its limit.
func (s *MongoResultStore) Save(ctx context.Context, rec Record) error {
	if rec.Limit < 0 {
		return errors.New("negative limit")
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "limit", Value: rec.Limit}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "count", Value: rec.Count},
			{Key: "elapsed_ms", Value: rec.ElapsedMS},
			{Key: "computed_at", Value: rec.ComputedAt.UTC()},
		}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save limit %d: %w", rec.Limit, err)
	}
	return nil
}

func (s *MongoResultStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
