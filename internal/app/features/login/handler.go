// internal/app/features/login/handler.go
package login

// Terminology: Employee Identifiers
//   - UserID / userID / user_id: the employee's MongoDB ObjectID (_id)
//   - LoginCode / login_code: the generated code an employee signs in with (e.g. RM0007)

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/authutil"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/ratelimit"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxBody = 4 << 10

// badCredentials is shared by unknown codes and wrong passwords so the
// response does not reveal which login codes exist.
const badCredentials = "Invalid login code or password."

type Handler struct {
	Employees  *employeestore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	AuditLog   *auditlog.Logger
	ErrLog     *apierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, limiter *ratelimit.LoginLimiter, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Employees:  employeestore.New(db),
		SessionMgr: sm,
		Limiter:    limiter,
		AuditLog:   audit,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type loginInput struct {
	LoginCode string `json:"login_code" validate:"required,max=20" label:"Login code"`
	Password  string `json:"password" validate:"required,max=128" label:"Password"`
}

// profile is what /login and /me return about the signed-in employee.
type profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	LoginCode   string `json:"login_code"`
	Role        string `json:"role"`
	Designation string `json:"designation,omitempty"`
}

// HandleLogin authenticates a login code and password and starts a session.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := respond.DecodeJSON(w, r, &in, maxBody); err != nil {
		respond.Fail(w, http.StatusBadRequest, "Request body must be JSON with login_code and password.")
		return
	}
	in.LoginCode = normalize.LoginCode(in.LoginCode)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if h.Limiter != nil {
		ok, err := h.Limiter.Check(ctx, w, in.LoginCode)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "login rate limiter", err, "")
			return
		}
		if !ok {
			h.AuditLog.LoginFailedRateLimit(ctx, r)
			respond.Fail(w, http.StatusTooManyRequests, "Too many login attempts for this code. Try again later.")
			return
		}
	}

	emp, err := h.Employees.GetByLoginCode(ctx, in.LoginCode)
	if errors.Is(err, employeestore.ErrNotFound) {
		h.AuditLog.LoginFailedUserNotFound(ctx, r, in.LoginCode)
		respond.Fail(w, http.StatusUnauthorized, badCredentials)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading employee", err, "")
		return
	}

	if !authutil.CheckPassword(in.Password, emp.PasswordHash) {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, emp.ID, emp.LoginCode)
		respond.Fail(w, http.StatusUnauthorized, badCredentials)
		return
	}

	// Only the holder of the password learns the account is disabled.
	if !emp.IsActive() {
		h.AuditLog.LoginFailedUserDisabled(ctx, r, emp.ID, emp.LoginCode)
		respond.Fail(w, http.StatusForbidden, "This account is disabled. Contact an administrator.")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, emp.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "save session", err, "")
		return
	}
	if h.Limiter != nil {
		if err := h.Limiter.Reset(ctx, emp.LoginCode); err != nil {
			h.Log.Warn("reset login limiter", zap.String("login_code", emp.LoginCode), zap.Error(err))
		}
	}
	h.AuditLog.LoginSuccess(ctx, r, emp.ID, emp.LoginCode)

	respond.OK(w, "Signed in.", profile{
		ID:          emp.ID.Hex(),
		Name:        emp.Personal.FullName,
		Email:       emp.Personal.Email,
		LoginCode:   emp.LoginCode,
		Role:        emp.Official.Role,
		Designation: emp.Official.Designation,
	})
}

// HandleLogout ends the session. It succeeds for anonymous callers too.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var userID string
	if u, ok := auth.CurrentUser(r); ok {
		userID = u.ID
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("clear session", zap.Error(err))
	}
	if userID != "" {
		h.AuditLog.Logout(r.Context(), r, userID)
	}
	respond.OK(w, "Signed out.", nil)
}

// ServeMe returns the signed-in employee.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "Please sign in.")
		return
	}
	respond.OK(w, "", profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		LoginCode: u.LoginCode,
		Role:      u.Role,
	})
}
