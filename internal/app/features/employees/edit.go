// internal/app/features/employees/edit.go
package employees

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	"github.com/dalemusser/officehub/internal/app/system/authutil"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/employees. The response carries the
// generated login code.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in employeeInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.clean()
	res := inputval.Validate(in)
	if in.Password == "" {
		res.Add("password", "Password is required.")
	} else if err := authutil.ValidatePassword(in.Password); err != nil {
		res.Add("password", authutil.PasswordRules())
	}
	if res.HasErrors() {
		respond.Invalid(w, res)
		return
	}
	if !h.canGrant(w, r, in.Official.Role) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := h.Employees.Create(ctx, in.toModel(), in.Password)
	if err != nil {
		h.writeStoreError(w, r, "create employee", err)
		return
	}
	h.AuditLog.EmployeeCreated(ctx, r, emp.ID, emp.LoginCode, emp.Official.Role)
	h.Log.Info("employee created",
		zap.String("employee_id", emp.ID.Hex()),
		zap.String("login_code", emp.LoginCode))

	respond.Created(w, "Employee created with login code "+emp.LoginCode+".", emp)
}

// ServeGet handles GET /api/employees/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "load employee", err)
		return
	}
	respond.OK(w, "", emp)
}

// HandleUpdate handles PUT /api/employees/{id}. Password and status have
// their own endpoints; a password in the body is rejected.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	var in employeeInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.clean()
	res := inputval.Validate(in)
	if in.Password != "" {
		res.Add("password", "Use the password endpoint to change a password.")
	}
	if res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	current, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "load employee", err)
		return
	}
	if current.Official.Role == models.RoleAdmin || in.Official.Role == models.RoleAdmin {
		if !h.canGrant(w, r, models.RoleAdmin) {
			return
		}
	}

	emp, err := h.Employees.Update(ctx, id, in.toModel())
	if err != nil {
		h.writeStoreError(w, r, "update employee", err)
		return
	}
	h.AuditLog.EmployeeUpdated(ctx, r, emp.ID, emp.Official.Role)
	respond.OK(w, "Employee updated.", emp)
}

// canGrant reports whether the actor may create or edit an employee with
// role. Only admins manage admin accounts.
func (h *Handler) canGrant(w http.ResponseWriter, r *http.Request, role string) bool {
	if role == models.RoleAdmin && !authz.IsAdmin(r) {
		h.ErrLog.LogForbidden(w, r, "non-admin attempted to manage an admin account",
			"Only administrators can manage administrator accounts.")
		return false
	}
	return true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, employeestore.ErrNotFound):
		respond.Fail(w, http.StatusNotFound, "Employee not found.")
	case errors.Is(err, employeestore.ErrDuplicateEmail):
		respond.Fail(w, http.StatusConflict, "An employee with this email already exists.")
	case errors.Is(err, employeestore.ErrDuplicateCode):
		respond.Fail(w, http.StatusConflict, "Login code collision. Please retry.")
	default:
		h.ErrLog.LogServerError(w, r, op, err, "")
	}
}
