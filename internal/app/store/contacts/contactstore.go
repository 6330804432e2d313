// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/officehub/internal/app/system/search"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("contact not found")
	ErrInvalidStage  = errors.New(`stage must be "suspect"|"prospect"|"client"`)
	ErrTerminalStage = errors.New("contact is already a client")
	ErrStageChanged  = errors.New("contact stage changed concurrently")
	ErrNotAssignable = errors.New("only prospects and clients can be assigned")
	errNameRequired  = errors.New("full_name is required")
	errPhoneRequired = errors.New("phone is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contacts")}
}

// Create inserts a contact. Stage defaults to suspect.
func (s *Store) Create(ctx context.Context, c models.Contact) (models.Contact, error) {
	c.FullName = strings.TrimSpace(c.FullName)
	if c.FullName == "" {
		return models.Contact{}, errNameRequired
	}
	if strings.TrimSpace(c.Phone) == "" {
		return models.Contact{}, errPhoneRequired
	}
	if c.Stage == "" {
		c.Stage = models.FunnelSuspect
	}
	if !models.IsValidFunnelStage(c.Stage) {
		return models.Contact{}, ErrInvalidStage
	}

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.FullNameCI = text.Fold(c.FullName)
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	return c, nil
}

// Update replaces the editable fields of a contact. Stage is changed only
// through SetStage and Promote.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Contact) (models.Contact, error) {
	mut.FullName = strings.TrimSpace(mut.FullName)
	if mut.FullName == "" {
		return models.Contact{}, errNameRequired
	}
	if strings.TrimSpace(mut.Phone) == "" {
		return models.Contact{}, errPhoneRequired
	}

	update := bson.M{"$set": bson.M{
		"full_name":     mut.FullName,
		"full_name_ci":  text.Fold(mut.FullName),
		"phone":         mut.Phone,
		"email":         mut.Email,
		"city":          mut.City,
		"occupation":    mut.Occupation,
		"annual_income": mut.AnnualIncome,
		"source":        mut.Source,
		"notes":         mut.Notes,
		"updated_at":    time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Contact
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out); err != nil {
		return models.Contact{}, notFound(err)
	}
	return out, nil
}

// SetStage sets the funnel stage, in either direction, and returns the stage
// the contact had before.
func (s *Store) SetStage(ctx context.Context, id primitive.ObjectID, stage string) (string, error) {
	if !models.IsValidFunnelStage(stage) {
		return "", ErrInvalidStage
	}
	update := bson.M{"$set": bson.M{"stage": stage, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.M{"stage": 1})

	var prev struct {
		Stage string `bson:"stage"`
	}
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&prev); err != nil {
		return "", notFound(err)
	}
	return prev.Stage, nil
}

// ClaimAssignable bumps updated_at on a contact that is a prospect or
// client and returns it. The write is conditional on the stage, so inside
// a transaction it conflicts with a concurrent demotion instead of reading
// past it. Suspects yield ErrNotAssignable.
func (s *Store) ClaimAssignable(ctx context.Context, id primitive.ObjectID) (models.Contact, error) {
	filter := bson.M{"_id": id, "stage": bson.M{"$in": []string{models.FunnelProspect, models.FunnelClient}}}
	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Contact
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, err := s.GetByID(ctx, id); err != nil {
			return models.Contact{}, err
		}
		return models.Contact{}, ErrNotAssignable
	}
	if err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// Promote moves a contact one stage forward (suspect -> prospect -> client).
// Clients are terminal and yield ErrTerminalStage. The write is conditional
// on the stage read, so two concurrent promotions cannot skip a stage.
func (s *Store) Promote(ctx context.Context, id primitive.ObjectID) (from, to string, err error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	next, ok := models.NextFunnelStage(c.Stage)
	if !ok {
		return c.Stage, "", ErrTerminalStage
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "stage": c.Stage},
		bson.M{"$set": bson.M{"stage": next, "updated_at": time.Now().UTC()}})
	if err != nil {
		return "", "", err
	}
	if res.MatchedCount == 0 {
		return "", "", ErrStageChanged
	}
	return c.Stage, next, nil
}

// GetByID loads a contact by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Contact, error) {
	var c models.Contact
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Contact{}, notFound(err)
	}
	return c, nil
}

// GetByIDs returns the contacts with the given IDs, in no particular order.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// Delete removes a contact and returns the deleted record.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Contact, error) {
	var c models.Contact
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Contact{}, notFound(err)
	}
	return c, nil
}

// ListFilter narrows contact lists. IDs, when non-nil, restricts the result
// to those contacts (an empty non-nil slice matches nothing).
type ListFilter struct {
	Stage string
	Query string
	IDs   []primitive.ObjectID
}

// Filter converts f into a Mongo filter.
func (f ListFilter) Filter() bson.M {
	filter := bson.M{}
	if f.Stage != "" {
		filter["stage"] = f.Stage
	}
	if f.IDs != nil {
		filter["_id"] = bson.M{"$in": f.IDs}
	}
	for k, v := range search.NameOrPhone(f.Query, "full_name_ci", "phone") {
		filter[k] = v
	}
	return filter
}

// Find returns contacts matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Contact, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Contact{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of contacts matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// CountByStage returns the number of contacts in each funnel stage.
func (s *Store) CountByStage(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(models.FunnelStages))
	for _, st := range models.FunnelStages {
		out[st] = 0
	}
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$stage", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var row struct {
			Stage string `bson:"_id"`
			N     int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Stage] = row.N
	}
	return out, cur.Err()
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
