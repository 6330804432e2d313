// internal/app/features/contacts/edit.go
package contacts

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	assignmentstore "github.com/dalemusser/officehub/internal/app/store/assignments"
	contactstore "github.com/dalemusser/officehub/internal/app/store/contacts"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/contacts. Stage defaults to suspect.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in contactInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.clean()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c := in.toModel()
	c.CreatedByID, c.CreatedByName = shared.Actor(r)
	created, err := h.Contacts.Create(ctx, c)
	if err != nil {
		h.writeStoreError(w, r, "create contact", err)
		return
	}
	h.AuditLog.ContactCreated(ctx, r, created.ID, created.Stage)
	respond.Created(w, "Contact created.", created)
}

// HandleUpdate handles PUT /api/contacts/{id}. Stage is not editable here.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	var in contactInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.clean()
	res := inputval.Validate(in)
	if in.Stage != "" {
		res.Add("stage", "Use the stage endpoint to change the stage.")
	}
	if res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.checkVisible(ctx, w, r, id) {
		return
	}
	updated, err := h.Contacts.Update(ctx, id, in.toModel())
	if err != nil {
		h.writeStoreError(w, r, "update contact", err)
		return
	}
	respond.OK(w, "Contact updated.", updated)
}

// HandleDelete handles DELETE /api/contacts/{id}. The contact's RM
// assignment goes with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var name string
	var dropped *primitive.ObjectID
	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		c, err := h.Contacts.Delete(ctx, id)
		if err != nil {
			return err
		}
		name = c.FullName
		dropped = nil
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
		h.writeStoreError(w, r, "delete contact", err)
		return
	}

	h.AuditLog.ContactDeleted(ctx, r, id, name)
	if dropped != nil {
		h.AuditLog.ProspectUnassigned(ctx, r, id, *dropped, "deleted")
	}
	h.Log.Info("contact deleted",
		zap.String("contact_id", id.Hex()),
		zap.Bool("assignment_removed", dropped != nil))
	respond.OK(w, "Contact deleted.", map[string]any{"id": id.Hex(), "assignment_removed": dropped != nil})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, contactstore.ErrNotFound):
		respond.Fail(w, http.StatusNotFound, "Contact not found.")
	case errors.Is(err, contactstore.ErrInvalidStage):
		respond.Fail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, contactstore.ErrTerminalStage):
		respond.Fail(w, http.StatusConflict, "Contact is already a client.")
	case errors.Is(err, contactstore.ErrStageChanged):
		respond.Fail(w, http.StatusConflict, "Contact stage changed meanwhile; reload and retry.")
	default:
		h.ErrLog.LogServerError(w, r, op, err, "")
	}
}
