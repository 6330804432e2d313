package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/officehub/internal/app/system/authutil"
	"github.com/dalemusser/officehub/internal/app/system/indexes"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/domain/scoring"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestPassword is the password every fixture employee signs in with.
const TestPassword = "secure123"

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// EnsureIndexes creates every collection index in db, failing the test on error.
func EnsureIndexes(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s: %v", coll, err)
	}
}

// CreateEmployee inserts an active employee with the given role and login
// code, signing in with TestPassword.
func (f *Fixtures) CreateEmployee(ctx context.Context, fullName, email, role, loginCode string) models.Employee {
	f.t.Helper()

	hash, err := authutil.HashPassword(TestPassword)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	e := models.Employee{
		ID: primitive.NewObjectID(),
		Personal: models.PersonalInfo{
			FullName:   fullName,
			FullNameCI: text.Fold(fullName),
			Email:      email,
			EmailCI:    text.Fold(email),
			Phone:      "9876543210",
		},
		Official: models.OfficialInfo{
			Role:        role,
			Designation: models.DesignationForRole(role),
		},
		LoginCode:    loginCode,
		PasswordHash: hash,
		Status:       models.EmployeeActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "employees", e)
	return e
}

// CreateRM inserts an active relationship manager.
func (f *Fixtures) CreateRM(ctx context.Context, fullName, loginCode string) models.Employee {
	f.t.Helper()
	return f.CreateEmployee(ctx, fullName, text.Fold(loginCode)+"@test.com", models.RoleRM, loginCode)
}

// CreateDisabledEmployee inserts a disabled employee.
func (f *Fixtures) CreateDisabledEmployee(ctx context.Context, fullName, email, role, loginCode string) models.Employee {
	f.t.Helper()
	e := f.CreateEmployee(ctx, fullName, email, role, loginCode)
	if _, err := f.db.Collection("employees").UpdateByID(ctx, e.ID, map[string]any{"$set": map[string]any{"status": models.EmployeeDisabled}}); err != nil {
		f.t.Fatalf("disable employee: %v", err)
	}
	e.Status = models.EmployeeDisabled
	return e
}

// CreateCandidate inserts a candidate in the given stage with a scored
// rubric of graduate / fresher and no ratings (6 marks).
func (f *Fixtures) CreateCandidate(ctx context.Context, fullName, stage string) models.Candidate {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Candidate{
		ID:             primitive.NewObjectID(),
		FullName:       fullName,
		FullNameCI:     text.Fold(fullName),
		Phone:          "9000000000",
		Education:      scoring.EducationGraduate,
		ExperienceBand: scoring.ExperienceFresher,
		CurrentStage:   stage,
		StageHistory:   []models.StageChange{{Stage: stage, ChangedAt: now}},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	c.TotalMarks = scoring.Total(scoring.FromCandidate(c))
	f.insert(ctx, "candidates", c)
	return c
}

// CreateVacancy inserts an open vacancy posted on naukri.
func (f *Fixtures) CreateVacancy(ctx context.Context, designation string) models.Vacancy {
	f.t.Helper()

	now := time.Now().UTC()
	v := models.Vacancy{
		ID:            primitive.NewObjectID(),
		Designation:   designation,
		DesignationCI: text.Fold(designation),
		Platforms:     []string{models.SourceNaukri},
		Status:        models.VacancyOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.insert(ctx, "vacancies", v)
	return v
}

// CreateContact inserts a contact in the given funnel stage.
func (f *Fixtures) CreateContact(ctx context.Context, fullName, stage string) models.Contact {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Contact{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Phone:      "9111111111",
		Stage:      stage,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "contacts", c)
	return c
}

// CreateDocument inserts a pending document of the given kind. No file is
// written; FilePath points at a path the test may create.
func (f *Fixtures) CreateDocument(ctx context.Context, kind models.DocumentKind, title string) models.Document {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.Document{
		ID:             primitive.NewObjectID(),
		Title:          title,
		TitleCI:        text.Fold(title),
		FilePath:       string(kind) + "/" + text.Fold(title) + ".txt",
		FileName:       title + ".txt",
		FileSize:       5,
		FileURL:        "/uploads/" + string(kind) + "/" + text.Fold(title) + ".txt",
		ApprovalStatus: models.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, kind.Collection(), d)
	return d
}

// AssignProspect inserts an RM assignment directly.
func (f *Fixtures) AssignProspect(ctx context.Context, prospectID primitive.ObjectID, rm models.Employee) models.RMAssignment {
	f.t.Helper()

	a := models.RMAssignment{
		ID:         primitive.NewObjectID(),
		ProspectID: prospectID,
		RMID:       rm.ID,
		RMName:     rm.Personal.FullName,
		AssignedAt: time.Now().UTC(),
	}
	f.insert(ctx, "rm_assignments", a)
	return a
}
