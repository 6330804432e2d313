package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/officehub/internal/app/store/audit"
	"github.com/dalemusser/officehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Log(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	subjectID := primitive.NewObjectID()
	event := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventCandidateCreated,
		SubjectID: &subjectID,
		IP:        "192.168.1.1",
		UserAgent: "TestBrowser/1.0",
		Success:   true,
	}

	if err := store.Log(ctx, event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.GetBySubject(ctx, subjectID, 10)
	if err != nil {
		t.Fatalf("GetBySubject failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
	if events[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestStore_Query_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	actor := primitive.NewObjectID()
	base := time.Now().UTC().Add(-time.Hour)
	events := []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, ActorID: &actor, Success: true, Timestamp: base},
		{Category: audit.CategoryAuth, EventType: audit.EventLogout, ActorID: &actor, Success: true, Timestamp: base.Add(time.Minute)},
		{Category: audit.CategoryAdmin, EventType: audit.EventVacancyCreated, Success: true, Timestamp: base.Add(2 * time.Minute)},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	got, err := store.Query(ctx, audit.QueryFilter{ActorID: &actor})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events for actor, got %d", len(got))
	}
	if got[0].EventType != audit.EventLogout {
		t.Errorf("expected newest first, got %q", got[0].EventType)
	}

	n, err := store.CountByFilter(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil {
		t.Fatalf("CountByFilter failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 admin event, got %d", n)
	}

	start := base.Add(30 * time.Second)
	got, err = store.Query(ctx, audit.QueryFilter{StartTime: &start})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 events after start, got %d", len(got))
	}
}

func TestStore_GetFailedLogins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, e := range []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedUserNotFound},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true},
	} {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	got, err := store.GetFailedLogins(ctx, time.Now().Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("GetFailedLogins failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 failed logins, got %d", len(got))
	}
}
