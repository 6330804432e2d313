package contactstore_test

import (
	"errors"
	"testing"
	"time"

	contactstore "github.com/dalemusser/officehub/internal/app/store/contacts"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c, err := store.Create(ctx, models.Contact{FullName: " Meera Shah ", Phone: "9123456789"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.Stage != models.FunnelSuspect {
		t.Errorf("Stage: got %q, want suspect", c.Stage)
	}
	if c.FullName != "Meera Shah" || c.FullNameCI != "meera shah" {
		t.Errorf("name: got %q / %q", c.FullName, c.FullNameCI)
	}

	if _, err := store.Create(ctx, models.Contact{FullName: "X", Phone: "1", Stage: "lead"}); !errors.Is(err, contactstore.ErrInvalidStage) {
		t.Errorf("expected ErrInvalidStage, got %v", err)
	}
	if _, err := store.Create(ctx, models.Contact{Phone: "1"}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestStore_Update_KeepsStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateContact(ctx, "Meera", models.FunnelProspect)
	mut := c
	mut.City = "Pune"
	mut.Stage = models.FunnelSuspect
	got, err := store.Update(ctx, c.ID, mut)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.City != "Pune" || got.Stage != models.FunnelProspect {
		t.Errorf("Update: got city=%q stage=%q", got.City, got.Stage)
	}
	if _, err := store.Update(ctx, primitive.NewObjectID(), mut); !errors.Is(err, contactstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Promote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateContact(ctx, "Meera", models.FunnelSuspect)

	steps := [][2]string{
		{models.FunnelSuspect, models.FunnelProspect},
		{models.FunnelProspect, models.FunnelClient},
	}
	for _, st := range steps {
		from, to, err := store.Promote(ctx, c.ID)
		if err != nil {
			t.Fatalf("Promote failed: %v", err)
		}
		if from != st[0] || to != st[1] {
			t.Errorf("Promote: got %s->%s, want %s->%s", from, to, st[0], st[1])
		}
	}

	if _, _, err := store.Promote(ctx, c.ID); !errors.Is(err, contactstore.ErrTerminalStage) {
		t.Errorf("expected ErrTerminalStage, got %v", err)
	}
	if _, _, err := store.Promote(ctx, primitive.NewObjectID()); !errors.Is(err, contactstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SetStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateContact(ctx, "Meera", models.FunnelClient)
	prev, err := store.SetStage(ctx, c.ID, models.FunnelSuspect)
	if err != nil {
		t.Fatalf("SetStage failed: %v", err)
	}
	if prev != models.FunnelClient {
		t.Errorf("prev: got %q", prev)
	}
	if _, err := store.SetStage(ctx, c.ID, "vip"); !errors.Is(err, contactstore.ErrInvalidStage) {
		t.Errorf("expected ErrInvalidStage, got %v", err)
	}
}

func TestStore_ClaimAssignable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreateContact(ctx, "Bala", models.FunnelProspect)
	got, err := store.ClaimAssignable(ctx, p.ID)
	if err != nil {
		t.Fatalf("ClaimAssignable failed: %v", err)
	}
	if got.ID != p.ID || got.Stage != models.FunnelProspect {
		t.Errorf("claimed wrong contact: %+v", got)
	}
	if got.UpdatedAt.Before(p.UpdatedAt.Truncate(time.Millisecond)) {
		t.Errorf("updated_at went backwards: %v < %v", got.UpdatedAt, p.UpdatedAt)
	}

	c := fx.CreateContact(ctx, "Meera", models.FunnelClient)
	if _, err := store.ClaimAssignable(ctx, c.ID); err != nil {
		t.Errorf("client should be assignable, got %v", err)
	}

	s := fx.CreateContact(ctx, "Chitra", models.FunnelSuspect)
	if _, err := store.ClaimAssignable(ctx, s.ID); !errors.Is(err, contactstore.ErrNotAssignable) {
		t.Errorf("suspect: expected ErrNotAssignable, got %v", err)
	}

	// A demotion after a successful claim is seen by the next claim.
	if _, err := store.SetStage(ctx, p.ID, models.FunnelSuspect); err != nil {
		t.Fatalf("SetStage failed: %v", err)
	}
	if _, err := store.ClaimAssignable(ctx, p.ID); !errors.Is(err, contactstore.ErrNotAssignable) {
		t.Errorf("demoted: expected ErrNotAssignable, got %v", err)
	}

	if _, err := store.ClaimAssignable(ctx, primitive.NewObjectID()); !errors.Is(err, contactstore.ErrNotFound) {
		t.Errorf("missing: expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListAndCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateContact(ctx, "Arun", models.FunnelProspect)
	fx.CreateContact(ctx, "Bela", models.FunnelProspect)
	fx.CreateContact(ctx, "Chirag", models.FunnelSuspect)

	tests := []struct {
		name string
		f    contactstore.ListFilter
		want int64
	}{
		{"all", contactstore.ListFilter{}, 3},
		{"stage", contactstore.ListFilter{Stage: models.FunnelProspect}, 2},
		{"query", contactstore.ListFilter{Query: "chi"}, 1},
		{"ids", contactstore.ListFilter{IDs: []primitive.ObjectID{a.ID}}, 1},
		{"empty ids", contactstore.ListFilter{IDs: []primitive.ObjectID{}}, 0},
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
	if counts[models.FunnelProspect] != 2 || counts[models.FunnelSuspect] != 1 || counts[models.FunnelClient] != 0 {
		t.Errorf("CountByStage: got %v", counts)
	}

	deleted, err := store.Delete(ctx, a.ID)
	if err != nil || deleted.ID != a.ID {
		t.Fatalf("Delete: got (%v, %v)", deleted.ID, err)
	}
}
