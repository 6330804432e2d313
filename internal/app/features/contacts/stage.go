// internal/app/features/contacts/stage.go
package contacts

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	assignmentstore "github.com/dalemusser/officehub/internal/app/store/assignments"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/app/system/txn"
	"github.com/dalemusser/officehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleStage handles PATCH /api/contacts/{id}/stage. Any stage may be set.
// Moving a contact back to suspect removes its RM assignment.
func (h *Handler) HandleStage(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	var in stageInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.Stage = normalize.Stage(in.Stage)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.checkVisible(ctx, w, r, id) {
		return
	}

	var from string
	var dropped *primitive.ObjectID
	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		prev, err := h.Contacts.SetStage(ctx, id, in.Stage)
		if err != nil {
			return err
		}
		from = prev
		dropped = nil
		if models.IsAssignable(in.Stage) {
			return nil
		}
		a, err := h.Assignments.DeleteByProspect(ctx, id)
		if errors.Is(err, assignmentstore.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		dropped = &a.RMID
		return nil
	})
	if err != nil {
		h.writeStoreError(w, r, "set contact stage", err)
		return
	}

	h.AuditLog.ContactStageChanged(ctx, r, id, from, in.Stage)
	if dropped != nil {
		h.AuditLog.ProspectUnassigned(ctx, r, id, *dropped, "demoted")
	}
	respond.OK(w, "Contact moved to "+in.Stage+".", stageView{
		ID:         id.Hex(),
		From:       from,
		To:         in.Stage,
		Unassigned: dropped != nil,
	})
}

// HandlePromote handles POST /api/contacts/{id}/promote, moving the contact
// one stage forward. Clients cannot be promoted.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.checkVisible(ctx, w, r, id) {
		return
	}
	from, to, err := h.Contacts.Promote(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "promote contact", err)
		return
	}
	h.AuditLog.ContactStageChanged(ctx, r, id, from, to)
	respond.OK(w, "Contact promoted to "+to+".", stageView{ID: id.Hex(), From: from, To: to})
}
