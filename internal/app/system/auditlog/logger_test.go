package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/officehub/internal/app/store/audit"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("GET", "/", nil)

	// Must not panic.
	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, primitive.NewObjectID(), "ADM0001")
	logger.Logout(ctx, req, primitive.NewObjectID().Hex())
}

func TestLogger_Log_ConfigOff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: "off", Admin: "off"})
	logger.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true})

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no events when config is 'off'")
	}
}

func TestLogger_Log_ConfigLogOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	core, logs := observer.New(zap.InfoLevel)
	logger := auditlog.New(store, zap.New(core), auditlog.Config{Auth: "log", Admin: "log"})
	logger.LoginFailedUserNotFound(ctx, httptest.NewRequest("POST", "/api/auth/login", nil), "XX0001")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 zap entry, got %d", logs.Len())
	}
	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no stored events when config is 'log'")
	}
}

func TestLogger_AdminEvent_RecordsActor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: "db", Admin: "db"})

	actor := primitive.NewObjectID()
	req := httptest.NewRequest("PATCH", "/api/candidates/x/stage", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req = auth.WithTestUser(req, &auth.SessionUser{ID: actor.Hex(), Name: "Priya HR", Role: "hr"})

	candidateID := primitive.NewObjectID()
	logger.CandidateStageChanged(ctx, req, candidateID, "career_enquiry", "interview_process")

	events, err := store.GetBySubject(ctx, candidateID, 10)
	if err != nil {
		t.Fatalf("GetBySubject failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.EventType != audit.EventCandidateStageChanged || e.Category != audit.CategoryAdmin {
		t.Errorf("unexpected event %s/%s", e.Category, e.EventType)
	}
	if e.ActorID == nil || *e.ActorID != actor || e.ActorName != "Priya HR" {
		t.Errorf("actor not recorded: %+v", e)
	}
	if e.IP != "203.0.113.7" {
		t.Errorf("IP = %q, want first forwarded hop", e.IP)
	}
	if e.Details["to"] != "interview_process" {
		t.Errorf("details = %v", e.Details)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	if got := auditlog.ClientIP(req); got != "192.0.2.1" {
		t.Errorf("ClientIP = %q", got)
	}
	req.Header.Set("X-Real-IP", "198.51.100.2")
	if got := auditlog.ClientIP(req); got != "198.51.100.2" {
		t.Errorf("ClientIP = %q", got)
	}
}

func TestValidMode(t *testing.T) {
	for _, m := range []string{"", "all", "db", "log", "off"} {
		if !auditlog.ValidMode(m) {
			t.Errorf("ValidMode(%q) = false", m)
		}
	}
	for _, m := range []string{"ALL", "both", "none"} {
		if auditlog.ValidMode(m) {
			t.Errorf("ValidMode(%q) = true", m)
		}
	}
}
