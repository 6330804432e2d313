package candidatestore_test

import (
	"errors"
	"testing"

	candidatestore "github.com/dalemusser/officehub/internal/app/store/candidates"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/domain/scoring"
	"github.com/dalemusser/officehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// sampleCandidate scores 6 (graduate) + 7 (2-5y) + (4+3)*2 + (5+2) = 34.
func sampleCandidate() models.Candidate {
	return models.Candidate{
		FullName:       "Asha Verma",
		Phone:          "9876543210",
		Education:      scoring.EducationGraduate,
		ExperienceBand: scoring.Experience2To5,
		ExperienceFields: models.ExperienceFields{
			Insurance: 4,
			Banking:   3,
		},
		OperationalActivities: models.OperationalActivities{
			LeadGeneration: 5,
			FollowUps:      2,
		},
	}
}

func TestStore_Create_ComputesTotalAndDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, sampleCandidate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.TotalMarks != 34 {
		t.Errorf("TotalMarks: got %d, want 34", created.TotalMarks)
	}
	if created.FullNameCI != "asha verma" {
		t.Errorf("FullNameCI: got %q", created.FullNameCI)
	}
	if created.CurrentStage != models.StageCareerEnquiry {
		t.Errorf("CurrentStage: got %q, want %q", created.CurrentStage, models.StageCareerEnquiry)
	}
	if len(created.StageHistory) != 1 || created.StageHistory[0].Stage != models.StageCareerEnquiry {
		t.Errorf("StageHistory: got %+v", created.StageHistory)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TotalMarks != 34 {
		t.Errorf("stored TotalMarks: got %d, want 34", got.TotalMarks)
	}
}

func TestStore_Create_IgnoresCallerTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := sampleCandidate()
	c.TotalMarks = 99
	created, err := store.Create(ctx, c)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.TotalMarks != 34 {
		t.Errorf("TotalMarks: got %d, want 34", created.TotalMarks)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	noName := sampleCandidate()
	noName.FullName = "  "
	if _, err := store.Create(ctx, noName); err == nil {
		t.Error("expected error for missing name")
	}

	noPhone := sampleCandidate()
	noPhone.Phone = ""
	if _, err := store.Create(ctx, noPhone); err == nil {
		t.Error("expected error for missing phone")
	}

	badStage := sampleCandidate()
	badStage.CurrentStage = "hired"
	if _, err := store.Create(ctx, badStage); !errors.Is(err, candidatestore.ErrInvalidStage) {
		t.Errorf("expected ErrInvalidStage, got %v", err)
	}
}

func TestStore_Update_RecomputesTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, sampleCandidate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mut := created
	mut.Education = scoring.EducationProfessional // 6 -> 10
	mut.TotalMarks = 0
	updated, err := store.Update(ctx, created.ID, mut)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.TotalMarks != 38 {
		t.Errorf("TotalMarks: got %d, want 38", updated.TotalMarks)
	}
	if updated.CurrentStage != created.CurrentStage {
		t.Errorf("Update should not change stage: got %q", updated.CurrentStage)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, primitive.NewObjectID(), sampleCandidate())
	if !errors.Is(err, candidatestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SetStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, sampleCandidate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Any stage may overwrite any other, including jumping backwards.
	steps := []string{models.StageSelected, models.StageRejected, models.StageResumeShortlisted}
	prevWant := models.StageCareerEnquiry
	for _, st := range steps {
		prev, err := store.SetStage(ctx, created.ID, models.StageChange{Stage: st, Remarks: "moved"})
		if err != nil {
			t.Fatalf("SetStage(%s) failed: %v", st, err)
		}
		if prev != prevWant {
			t.Errorf("SetStage(%s) prev: got %q, want %q", st, prev, prevWant)
		}
		prevWant = st
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CurrentStage != models.StageResumeShortlisted {
		t.Errorf("CurrentStage: got %q", got.CurrentStage)
	}
	if len(got.StageHistory) != 4 {
		t.Fatalf("StageHistory length: got %d, want 4", len(got.StageHistory))
	}
	if got.StageHistory[3].Remarks != "moved" {
		t.Errorf("last history remarks: got %q", got.StageHistory[3].Remarks)
	}

	if _, err := store.SetStage(ctx, created.ID, models.StageChange{Stage: "bogus"}); !errors.Is(err, candidatestore.ErrInvalidStage) {
		t.Errorf("expected ErrInvalidStage, got %v", err)
	}
	if _, err := store.SetStage(ctx, primitive.NewObjectID(), models.StageChange{Stage: models.StageJoining}); !errors.Is(err, candidatestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SetResume_ReturnsPrevious(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, sampleCandidate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	prev, err := store.SetResume(ctx, created.ID, candidatestore.Resume{Path: "resumes/a.pdf", Name: "a.pdf", Size: 10, URL: "/uploads/resumes/a.pdf"})
	if err != nil {
		t.Fatalf("SetResume failed: %v", err)
	}
	if prev != "" {
		t.Errorf("first SetResume prev: got %q, want empty", prev)
	}

	prev, err = store.SetResume(ctx, created.ID, candidatestore.Resume{Path: "resumes/b.pdf", Name: "b.pdf", Size: 20, URL: "/uploads/resumes/b.pdf"})
	if err != nil {
		t.Fatalf("SetResume failed: %v", err)
	}
	if prev != "resumes/a.pdf" {
		t.Errorf("second SetResume prev: got %q", prev)
	}

	got, _ := store.GetByID(ctx, created.ID)
	if !got.HasResume() || got.ResumeName != "b.pdf" {
		t.Errorf("resume not stored: %+v", got)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, sampleCandidate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	deleted, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.ID != created.ID {
		t.Errorf("Delete returned wrong record")
	}
	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, candidatestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := store.Delete(ctx, created.ID); !errors.Is(err, candidatestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_UnlinkVacancy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vid := primitive.NewObjectID()
	for i := 0; i < 2; i++ {
		c := sampleCandidate()
		c.VacancyID = &vid
		if _, err := store.Create(ctx, c); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := store.Create(ctx, sampleCandidate()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.UnlinkVacancy(ctx, vid)
	if err != nil {
		t.Fatalf("UnlinkVacancy failed: %v", err)
	}
	if n != 2 {
		t.Errorf("UnlinkVacancy: got %d, want 2", n)
	}
	linked, _ := store.Count(ctx, bson.M{"vacancy_id": vid})
	if linked != 0 {
		t.Errorf("expected no linked candidates, got %d", linked)
	}
}

func TestStore_ListFilterAndCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	low := sampleCandidate()
	low.FullName = "Bina Rao"
	low.Phone = "9000000001"
	low.Education = ""
	low.ExperienceBand = ""
	low.ExperienceFields = models.ExperienceFields{}
	low.OperationalActivities = models.OperationalActivities{}
	if _, err := store.Create(ctx, low); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	high := sampleCandidate()
	high.CurrentStage = models.StageSelected
	if _, err := store.Create(ctx, high); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	minMarks := 10
	tests := []struct {
		name string
		f    candidatestore.ListFilter
		want int64
	}{
		{"all", candidatestore.ListFilter{}, 2},
		{"stage", candidatestore.ListFilter{Stage: models.StageSelected}, 1},
		{"name prefix", candidatestore.ListFilter{Query: "bin"}, 1},
		{"phone digits", candidatestore.ListFilter{Query: "9000"}, 1},
		{"min marks", candidatestore.ListFilter{MinMarks: &minMarks}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := store.Count(ctx, tt.f.Filter())
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if n != tt.want {
				t.Errorf("Count: got %d, want %d", n, tt.want)
			}
		})
	}

	counts, err := store.CountByStage(ctx)
	if err != nil {
		t.Fatalf("CountByStage failed: %v", err)
	}
	if counts[models.StageCareerEnquiry] != 1 || counts[models.StageSelected] != 1 || counts[models.StageRejected] != 0 {
		t.Errorf("CountByStage: got %v", counts)
	}
	if len(counts) != len(models.CandidateStages) {
		t.Errorf("CountByStage should include every stage, got %d keys", len(counts))
	}

	top, err := store.Top(ctx, 1)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(top) != 1 || top[0].TotalMarks != 34 {
		t.Errorf("Top: got %+v", top)
	}
}

func TestStore_RescoreAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := candidatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, sampleCandidate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, sampleCandidate()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Corrupt one stored total directly.
	if _, err := db.Collection("candidates").UpdateByID(ctx, created.ID, bson.M{"$set": bson.M{"total_marks": 1}}); err != nil {
		t.Fatalf("corrupt total: %v", err)
	}

	res, err := store.RescoreAll(ctx, true)
	if err != nil {
		t.Fatalf("RescoreAll(dry) failed: %v", err)
	}
	if res.Examined != 2 || res.Changed != 1 {
		t.Errorf("dry run: got %+v", res)
	}
	got, _ := store.GetByID(ctx, created.ID)
	if got.TotalMarks != 1 {
		t.Errorf("dry run should not write, got %d", got.TotalMarks)
	}

	res, err = store.RescoreAll(ctx, false)
	if err != nil {
		t.Fatalf("RescoreAll failed: %v", err)
	}
	if res.Changed != 1 {
		t.Errorf("rescore: got %+v", res)
	}
	got, _ = store.GetByID(ctx, created.ID)
	if got.TotalMarks != 34 {
		t.Errorf("TotalMarks after rescore: got %d, want 34", got.TotalMarks)
	}
}
