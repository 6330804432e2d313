// internal/app/features/assignments/assign.go
package assignments

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	assignmentstore "github.com/dalemusser/officehub/internal/app/store/assignments"
	contactstore "github.com/dalemusser/officehub/internal/app/store/contacts"
	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/app/system/txn"
	"github.com/dalemusser/officehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type assignInput struct {
	RMID string `json:"rm_id" validate:"required,objectid" label:"RM"`
}

// assignView is the stored assignment plus the RM it replaced, if any.
type assignView struct {
	models.RMAssignment
	PreviousRMID *primitive.ObjectID `json:"previous_rm_id,omitempty"`
}

// HandleAssign handles PUT /api/assignments/prospects/{prospectID}. The
// contact must be a prospect or client and the RM an active employee with
// the rm role. An existing assignment is replaced.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	prospectID, ok := shared.IDParam(w, r, "prospectID")
	if !ok {
		return
	}
	var in assignInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}
	rmID, _ := primitive.ObjectIDFromHex(in.RMID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Contacts.GetByID(ctx, prospectID)
	if errors.Is(err, contactstore.ErrNotFound) {
		respond.Fail(w, http.StatusNotFound, "Contact not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load contact", err, "")
		return
	}
	if !models.IsAssignable(c.Stage) {
		respond.Fail(w, http.StatusConflict, "Only prospects and clients can be assigned to an RM.")
		return
	}

	rm, err := h.Employees.GetActiveRM(ctx, rmID)
	if errors.Is(err, employeestore.ErrNotFound) {
		var res inputval.Result
		res.Add("rm_id", "RM must be an active relationship manager.")
		respond.Invalid(w, res)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load rm", err, "")
		return
	}

	a := models.RMAssignment{
		ProspectID: prospectID,
		RMID:       rm.ID,
		RMName:     rm.Personal.FullName,
	}
	a.AssignedByID, a.AssignedByName = shared.Actor(r)

	var (
		stored models.RMAssignment
		prev   *primitive.ObjectID
	)
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if _, err := h.Contacts.ClaimAssignable(ctx, prospectID); err != nil {
			return err
		}
		s, p, err := h.Assignments.Assign(ctx, a)
		if err != nil {
			return err
		}
		stored, prev = s, p

		// Without transaction support a demotion can land between the
		// claim and the upsert; its own cleanup may already have run.
		cur, err := h.Contacts.GetByID(ctx, prospectID)
		if err != nil {
			return err
		}
		if !models.IsAssignable(cur.Stage) {
			if _, err := h.Assignments.DeleteByProspect(ctx, prospectID); err != nil && !errors.Is(err, assignmentstore.ErrNotFound) {
				return err
			}
			return contactstore.ErrNotAssignable
		}
		return nil
	})
	switch {
	case errors.Is(err, contactstore.ErrNotFound):
		respond.Fail(w, http.StatusNotFound, "Contact not found.")
		return
	case errors.Is(err, contactstore.ErrNotAssignable):
		respond.Fail(w, http.StatusConflict, "Only prospects and clients can be assigned to an RM.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "assign prospect", err, "")
		return
	}

	h.AuditLog.ProspectAssigned(ctx, r, prospectID, rm.ID, rm.Personal.FullName)
	h.Log.Info("prospect assigned",
		zap.String("prospect_id", prospectID.Hex()),
		zap.String("rm_id", rm.ID.Hex()))
	respond.OK(w, c.FullName+" assigned to "+rm.Personal.FullName+".", assignView{RMAssignment: stored, PreviousRMID: prev})
}

// HandleUnassign handles DELETE /api/assignments/prospects/{prospectID}.
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	prospectID, ok := shared.IDParam(w, r, "prospectID")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Assignments.DeleteByProspect(ctx, prospectID)
	if err != nil {
		h.writeStoreError(w, r, "unassign prospect", err)
		return
	}
	h.AuditLog.ProspectUnassigned(ctx, r, prospectID, a.RMID, "manual")
	respond.OK(w, "Assignment removed.", a)
}
