// internal/app/store/counters/counterstore.go
package counterstore

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store hands out monotonically increasing sequence numbers, one sequence
// per key. Each key is a single document {_id: key, seq: n}.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("counters")}
}

// Next atomically increments the sequence for key and returns the new value.
// The first call for a key returns 1.
func (s *Store) Next(ctx context.Context, key string) (int64, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, fmt.Errorf("counter key is required")
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": key}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s: %w", key, err)
	}
	return doc.Seq, nil
}

// Current returns the last value handed out for key, or 0.
func (s *Store) Current(ctx context.Context, key string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// FormatLoginCode renders a login code such as RM0007. Sequences past 9999
// keep growing in width.
func FormatLoginCode(prefix string, seq int64) string {
	return fmt.Sprintf("%s%04d", strings.ToUpper(prefix), seq)
}
