// internal/app/store/vacancies/vacancystore.go
package vacancystore

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
	ErrNotFound            = errors.New("vacancy not found")
	errDesignationRequired = errors.New("designation is required")
	errPlatformsRequired   = errors.New("at least one platform is required")
	errBadPlatform         = errors.New("unknown platform")
	errBadStatus           = errors.New(`status must be "open"|"closed"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("vacancies")}
}

// Create inserts a vacancy. Status defaults to open; platforms are
// de-duplicated in the order given.
func (s *Store) Create(ctx context.Context, v models.Vacancy) (models.Vacancy, error) {
	v.Designation = strings.TrimSpace(v.Designation)
	if v.Designation == "" {
		return models.Vacancy{}, errDesignationRequired
	}
	platforms, err := cleanPlatforms(v.Platforms)
	if err != nil {
		return models.Vacancy{}, err
	}
	v.Platforms = platforms
	if v.Status == "" {
		v.Status = models.VacancyOpen
	}
	if !models.IsValidVacancyStatus(v.Status) {
		return models.Vacancy{}, errBadStatus
	}

	now := time.Now().UTC()
	v.ID = primitive.NewObjectID()
	v.DesignationCI = text.Fold(v.Designation)
	v.CreatedAt = now
	v.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Vacancy{}, fmt.Errorf("insert vacancy: %w", err)
	}
	return v, nil
}

func cleanPlatforms(in []string) ([]string, error) {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		if !models.IsValidVacancyPlatform(p) {
			return nil, fmt.Errorf("%w: %s", errBadPlatform, p)
		}
		seen[p] = true
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, errPlatformsRequired
	}
	return out, nil
}

// SetStatus opens or closes a vacancy.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.IsValidVacancyStatus(status) {
		return errBadStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads a vacancy by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Vacancy, error) {
	var v models.Vacancy
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Vacancy{}, ErrNotFound
		}
		return models.Vacancy{}, err
	}
	return v, nil
}

// Delete removes a vacancy by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListFilter narrows vacancy lists.
type ListFilter struct {
	Status string
	Query  string
}

// Filter converts f into a Mongo filter.
func (f ListFilter) Filter() bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		filter["designation_ci"] = search.Prefix(q)
	}
	return filter
}

// Find returns vacancies matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Vacancy, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Vacancy{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of vacancies matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
