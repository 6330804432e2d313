// internal/app/store/candidates/candidatestore.go
package candidatestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/officehub/internal/app/system/search"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/domain/scoring"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound     = errors.New("candidate not found")
	ErrInvalidStage = errors.New("invalid candidate stage")
	errNameRequired = errors.New("full_name is required")
	errPhoneMissing = errors.New("phone is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("candidates")}
}

// Create inserts a candidate. It assigns the ID, folds the name, computes
// TotalMarks from the rubric, defaults the stage to career_enquiry and
// records the initial stage in StageHistory.
func (s *Store) Create(ctx context.Context, c models.Candidate) (models.Candidate, error) {
	c.FullName = strings.TrimSpace(c.FullName)
	if c.FullName == "" {
		return models.Candidate{}, errNameRequired
	}
	if strings.TrimSpace(c.Phone) == "" {
		return models.Candidate{}, errPhoneMissing
	}
	if c.CurrentStage == "" {
		c.CurrentStage = models.StageCareerEnquiry
	}
	if !models.IsValidCandidateStage(c.CurrentStage) {
		return models.Candidate{}, ErrInvalidStage
	}

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.FullNameCI = text.Fold(c.FullName)
	c.TotalMarks = scoring.Total(scoring.FromCandidate(c))
	c.StageHistory = []models.StageChange{{
		Stage:         c.CurrentStage,
		ChangedByID:   c.CreatedByID,
		ChangedByName: c.CreatedByName,
		ChangedAt:     now,
	}}
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Candidate{}, fmt.Errorf("insert candidate: %w", err)
	}
	return c, nil
}

// Update replaces the editable fields of a candidate and recomputes
// TotalMarks. Stage, stage history and resume fields are left alone; use
// SetStage and SetResume for those. Returns the updated record.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Candidate) (models.Candidate, error) {
	mut.FullName = strings.TrimSpace(mut.FullName)
	if mut.FullName == "" {
		return models.Candidate{}, errNameRequired
	}
	if strings.TrimSpace(mut.Phone) == "" {
		return models.Candidate{}, errPhoneMissing
	}

	set := bson.M{
		"full_name":              mut.FullName,
		"full_name_ci":           text.Fold(mut.FullName),
		"email":                  mut.Email,
		"phone":                  mut.Phone,
		"city":                   mut.City,
		"gender":                 mut.Gender,
		"date_of_birth":          mut.DateOfBirth,
		"applied_for":            mut.AppliedFor,
		"source":                 mut.Source,
		"education":              mut.Education,
		"experience_band":        mut.ExperienceBand,
		"experience_fields":      mut.ExperienceFields,
		"operational_activities": mut.OperationalActivities,
		"total_marks":            scoring.Total(scoring.FromCandidate(mut)),
		"remarks":                mut.Remarks,
		"interview_at":           mut.InterviewAt,
		"updated_at":             time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if mut.VacancyID != nil {
		set["vacancy_id"] = mut.VacancyID
	} else {
		update["$unset"] = bson.M{"vacancy_id": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Candidate
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out); err != nil {
		return models.Candidate{}, notFound(err)
	}
	return out, nil
}

// SetStage overwrites the current stage and appends the change to
// StageHistory. Any valid stage may replace any other. It returns the stage
// the candidate was in before the change.
func (s *Store) SetStage(ctx context.Context, id primitive.ObjectID, change models.StageChange) (string, error) {
	if !models.IsValidCandidateStage(change.Stage) {
		return "", ErrInvalidStage
	}
	now := time.Now().UTC()
	change.ChangedAt = now

	update := bson.M{
		"$set":  bson.M{"current_stage": change.Stage, "updated_at": now},
		"$push": bson.M{"stage_history": change},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.M{"current_stage": 1})

	var prev struct {
		CurrentStage string `bson:"current_stage"`
	}
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&prev); err != nil {
		return "", notFound(err)
	}
	return prev.CurrentStage, nil
}

// Resume describes a stored resume file.
type Resume struct {
	Path string
	Name string
	Size int64
	URL  string
}

// SetResume records a new resume file and returns the path of the file it
// replaced, if any, so the caller can remove it.
func (s *Store) SetResume(ctx context.Context, id primitive.ObjectID, r Resume) (string, error) {
	update := bson.M{"$set": bson.M{
		"resume_path": r.Path,
		"resume_name": r.Name,
		"resume_size": r.Size,
		"resume_url":  r.URL,
		"updated_at":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.M{"resume_path": 1})

	var prev struct {
		ResumePath string `bson:"resume_path"`
	}
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&prev); err != nil {
		return "", notFound(err)
	}
	return prev.ResumePath, nil
}

// GetByID loads a candidate by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Candidate, error) {
	var c models.Candidate
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Candidate{}, notFound(err)
	}
	return c, nil
}

// Delete removes a candidate and returns the deleted record so the caller
// can clean up its resume file.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Candidate, error) {
	var c models.Candidate
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Candidate{}, notFound(err)
	}
	return c, nil
}

// UnlinkVacancy clears vacancy_id on every candidate linked to vacancyID.
// Returns the number of candidates modified.
func (s *Store) UnlinkVacancy(ctx context.Context, vacancyID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"vacancy_id": vacancyID},
		bson.M{
			"$unset": bson.M{"vacancy_id": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ListFilter narrows candidate lists. Zero values match everything.
type ListFilter struct {
	Stage     string
	VacancyID *primitive.ObjectID
	Query     string
	MinMarks  *int
}

// Filter converts f into a Mongo filter.
func (f ListFilter) Filter() bson.M {
	filter := bson.M{}
	if f.Stage != "" {
		filter["current_stage"] = f.Stage
	}
	if f.VacancyID != nil {
		filter["vacancy_id"] = *f.VacancyID
	}
	if f.MinMarks != nil {
		filter["total_marks"] = bson.M{"$gte": *f.MinMarks}
	}
	for k, v := range search.NameOrPhone(f.Query, "full_name_ci", "phone") {
		filter[k] = v
	}
	return filter
}

// Find returns candidates matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Candidate, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Candidate{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of candidates matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Top returns the highest scoring candidates, best first.
func (s *Store) Top(ctx context.Context, limit int64) ([]models.Candidate, error) {
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "total_marks", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.M{}, opts)
}

// CountByStage returns the number of candidates in each stage. Every known
// stage is present in the result, with zero when empty.
func (s *Store) CountByStage(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$current_stage", "n": bson.M{"$sum": 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int64, len(models.CandidateStages))
	for _, st := range models.CandidateStages {
		out[st] = 0
	}
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

// RescoreResult summarizes a RescoreAll run.
type RescoreResult struct {
	Examined int
	Changed  int
}

// RescoreAll recomputes TotalMarks for every stored candidate. With dryRun
// set nothing is written and Changed reports what would change.
func (s *Store) RescoreAll(ctx context.Context, dryRun bool) (RescoreResult, error) {
	var res RescoreResult
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return res, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var c models.Candidate
		if err := cur.Decode(&c); err != nil {
			return res, err
		}
		res.Examined++
		total := scoring.Total(scoring.FromCandidate(c))
		if total == c.TotalMarks {
			continue
		}
		res.Changed++
		if dryRun {
			continue
		}
		if _, err := s.c.UpdateByID(ctx, c.ID, bson.M{"$set": bson.M{"total_marks": total}}); err != nil {
			return res, fmt.Errorf("rescore %s: %w", c.ID.Hex(), err)
		}
	}
	return res, cur.Err()
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
