// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/officehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("assignment not found")

// Store is the prospect -> RM lookup table. prospect_id is unique, so each
// prospect has at most one RM.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("rm_assignments")}
}

// Assign sets the RM for a.ProspectID, replacing any existing assignment.
// It returns the stored assignment and the previous RM's ID, or nil when the
// prospect was unassigned.
func (s *Store) Assign(ctx context.Context, a models.RMAssignment) (models.RMAssignment, *primitive.ObjectID, error) {
	a.AssignedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"rm_id":            a.RMID,
			"rm_name":          a.RMName,
			"assigned_at":      a.AssignedAt,
			"assigned_by_id":   a.AssignedByID,
			"assigned_by_name": a.AssignedByName,
		},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var prev models.RMAssignment
	err := s.c.FindOneAndUpdate(ctx, bson.M{"prospect_id": a.ProspectID}, update, opts).Decode(&prev)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		// Inserted.
	case wafflemongo.IsDup(err):
		// A concurrent upsert inserted first; the retry lands on the update path.
		err = s.c.FindOneAndUpdate(ctx, bson.M{"prospect_id": a.ProspectID}, update, opts).Decode(&prev)
		if err != nil {
			return models.RMAssignment{}, nil, err
		}
	case err != nil:
		return models.RMAssignment{}, nil, err
	}

	out, err := s.GetByProspect(ctx, a.ProspectID)
	if err != nil {
		return models.RMAssignment{}, nil, err
	}
	if prev.ID.IsZero() {
		return out, nil, nil
	}
	return out, &prev.RMID, nil
}

// GetByProspect returns the assignment for a prospect.
func (s *Store) GetByProspect(ctx context.Context, prospectID primitive.ObjectID) (models.RMAssignment, error) {
	var a models.RMAssignment
	if err := s.c.FindOne(ctx, bson.M{"prospect_id": prospectID}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RMAssignment{}, ErrNotFound
		}
		return models.RMAssignment{}, err
	}
	return a, nil
}

// ListByRM returns an RM's assignments, most recent first.
func (s *Store) ListByRM(ctx context.Context, rmID primitive.ObjectID) ([]models.RMAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "assigned_at", Value: -1}, {Key: "_id", Value: 1}})
	return s.Find(ctx, bson.M{"rm_id": rmID}, opts)
}

// ProspectIDsByRM returns the IDs of the prospects assigned to an RM. The
// result is non-nil even when empty.
func (s *Store) ProspectIDsByRM(ctx context.Context, rmID primitive.ObjectID) ([]primitive.ObjectID, error) {
	list, err := s.Find(ctx, bson.M{"rm_id": rmID}, options.Find().SetProjection(bson.M{"prospect_id": 1}))
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ProspectID)
	}
	return ids, nil
}

// DeleteByProspect removes a prospect's assignment and returns it.
func (s *Store) DeleteByProspect(ctx context.Context, prospectID primitive.ObjectID) (models.RMAssignment, error) {
	var a models.RMAssignment
	if err := s.c.FindOneAndDelete(ctx, bson.M{"prospect_id": prospectID}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RMAssignment{}, ErrNotFound
		}
		return models.RMAssignment{}, err
	}
	return a, nil
}

// Find returns assignments matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.RMAssignment, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.RMAssignment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of assignments matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// RMLoad is the number of prospects assigned to one RM.
type RMLoad struct {
	RMID      primitive.ObjectID `bson:"_id" json:"rm_id" yaml:"rm_id"`
	RMName    string             `bson:"rm_name" json:"rm_name" yaml:"rm_name"`
	Prospects int64              `bson:"prospects" json:"prospects" yaml:"prospects"`
}

// Load returns per-RM prospect counts, busiest first.
func (s *Store) Load(ctx context.Context) ([]RMLoad, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":       "$rm_id",
			"rm_name":   bson.M{"$last": "$rm_name"},
			"prospects": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "prospects", Value: -1}, {Key: "rm_name", Value: 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []RMLoad{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
