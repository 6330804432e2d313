package metricsstore_test

import (
	"testing"

	metricsstore "github.com/dalemusser/officehub/internal/app/store/metrics"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFetchSummary_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s, err := metricsstore.FetchSummary(ctx, db)
	if err != nil {
		t.Fatalf("FetchSummary: %v", err)
	}
	if s.OpenVacancies != 0 || s.PendingRules != 0 || s.PendingPlans != 0 {
		t.Errorf("expected zero totals, got %+v", s)
	}
	for _, st := range models.CandidateStages {
		if n, ok := s.Candidates[st]; !ok || n != 0 {
			t.Errorf("Candidates[%s]: got %d (present %v), want 0", st, n, ok)
		}
	}
	for _, st := range models.FunnelStages {
		if n, ok := s.Contacts[st]; !ok || n != 0 {
			t.Errorf("Contacts[%s]: got %d (present %v), want 0", st, n, ok)
		}
	}
}

func TestFetchSummary_WithData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateCandidate(ctx, "Asha", models.StageCareerEnquiry)
	fx.CreateCandidate(ctx, "Bala", models.StageCareerEnquiry)
	fx.CreateCandidate(ctx, "Chitra", models.StageSelected)

	fx.CreateContact(ctx, "Deepa", models.FunnelSuspect)
	fx.CreateContact(ctx, "Esha", models.FunnelClient)

	fx.CreateVacancy(ctx, "Relationship Manager")
	closed := fx.CreateVacancy(ctx, "Tele Caller")
	if _, err := db.Collection("vacancies").UpdateByID(ctx, closed.ID, bson.M{"$set": bson.M{"status": models.VacancyClosed}}); err != nil {
		t.Fatalf("close vacancy: %v", err)
	}

	fx.CreateRM(ctx, "Ravi", "RM0001")
	fx.CreateRM(ctx, "Sunita", "RM0002")
	fx.CreateDisabledEmployee(ctx, "Old", "old@test.com", models.RoleRM, "RM0003")
	fx.CreateEmployee(ctx, "Hema", "hema@test.com", models.RoleHR, "HR0001")

	fx.CreateDocument(ctx, models.DocumentKindRules, "Leave")
	fx.CreateDocument(ctx, models.DocumentKindRules, "Dress")
	fx.CreateDocument(ctx, models.DocumentKindFuturePlan, "Expansion")

	s, err := metricsstore.FetchSummary(ctx, db)
	if err != nil {
		t.Fatalf("FetchSummary: %v", err)
	}
	if got := s.Candidates[models.StageCareerEnquiry]; got != 2 {
		t.Errorf("career_enquiry: got %d, want 2", got)
	}
	if got := s.Candidates[models.StageSelected]; got != 1 {
		t.Errorf("selected: got %d, want 1", got)
	}
	if got := s.Contacts[models.FunnelClient]; got != 1 {
		t.Errorf("clients: got %d, want 1", got)
	}
	if s.OpenVacancies != 1 {
		t.Errorf("OpenVacancies: got %d, want 1", s.OpenVacancies)
	}
	if got := s.ActiveEmployees[models.RoleRM]; got != 2 {
		t.Errorf("active rms: got %d, want 2", got)
	}
	if got := s.ActiveEmployees[models.RoleHR]; got != 1 {
		t.Errorf("active hr: got %d, want 1", got)
	}
	if s.PendingRules != 2 {
		t.Errorf("PendingRules: got %d, want 2", s.PendingRules)
	}
	if s.PendingPlans != 1 {
		t.Errorf("PendingPlans: got %d, want 1", s.PendingPlans)
	}
}
