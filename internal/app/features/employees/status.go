// internal/app/features/employees/status.go
package employees

import (
	"context"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	"github.com/dalemusser/officehub/internal/app/system/authutil"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/domain/models"
)

// HandleStatus handles PATCH /api/employees/{id}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	var in statusInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.Status = normalize.Status(in.Status)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}
	if in.Status == models.EmployeeDisabled && authz.IsSelf(r, id) {
		respond.Fail(w, http.StatusConflict, "You cannot disable your own account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Employees.SetStatus(ctx, id, in.Status); err != nil {
		h.writeStoreError(w, r, "set employee status", err)
		return
	}
	h.AuditLog.EmployeeStatusChanged(ctx, r, id, in.Status)
	respond.OK(w, "Status updated.", map[string]string{"id": id.Hex(), "status": in.Status})
}

// HandlePassword handles PUT /api/employees/{id}/password. Admins may set
// any password; everyone else only their own.
func (h *Handler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	if !authz.IsAdmin(r) && !authz.IsSelf(r, id) {
		h.ErrLog.LogForbidden(w, r, "password change for another employee",
			"You can only change your own password.")
		return
	}
	var in passwordInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	res := inputval.Validate(in)
	if !res.HasErrors() {
		if err := authutil.ValidatePassword(in.Password); err != nil {
			res.Add("password", authutil.PasswordRules())
		}
	}
	if res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Employees.SetPassword(ctx, id, in.Password); err != nil {
		h.writeStoreError(w, r, "set employee password", err)
		return
	}
	h.AuditLog.PasswordChanged(ctx, r, id)
	respond.OK(w, "Password changed.", nil)
}

// HandleDelete handles DELETE /api/employees/{id}. Employees are soft
// deleted: the record stays for history but can no longer sign in.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	if authz.IsSelf(r, id) {
		respond.Fail(w, http.StatusConflict, "You cannot delete your own account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "load employee", err)
		return
	}
	if err := h.Employees.SoftDelete(ctx, id); err != nil {
		h.writeStoreError(w, r, "delete employee", err)
		return
	}
	h.AuditLog.EmployeeDeleted(ctx, r, id, emp.LoginCode)
	respond.OK(w, "Employee deleted.", map[string]string{"id": id.Hex()})
}
