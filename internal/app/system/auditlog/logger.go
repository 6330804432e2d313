// internal/app/system/auditlog/logger.go
package auditlog

// Terminology: Employee Identifiers
//   - UserID / userID / user_id: the employee's MongoDB ObjectID (_id)
//   - LoginCode / login_code: the generated code an employee signs in with

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/officehub/internal/app/store/audit"
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout, password).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for record changes (employees, candidates,
	// vacancies, documents, contacts, assignments). Same values as Auth.
	Admin string
}

// Logger records audit events to MongoDB (via audit.Store) and zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// NewNopLogger returns a Logger that records nothing.
func NewNopLogger() *Logger {
	return New(nil, zap.NewNop(), Config{Auth: "off", Admin: "off"})
}

// ClientIP returns the first X-Forwarded-For hop, X-Real-IP, or the
// request's remote host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.SubjectID != nil {
		fields = append(fields, zap.String("subject_id", event.SubjectID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// ValidMode reports whether s is an accepted Config value. Empty means "all".
func ValidMode(s string) bool {
	switch s {
	case "", "all", "db", "log", "off":
		return true
	}
	return false
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op, so handlers built in tests may omit it.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, loginCode string) {
	l.Log(ctx, authEvent(r, audit.EventLoginSuccess, &userID, "", map[string]string{"login_code": loginCode}))
}

// LoginFailedUserNotFound logs a login attempt for an unknown login code.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedLoginCode string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedUserNotFound, nil, "user not found",
		map[string]string{"attempted_login_code": attemptedLoginCode}))
}

// LoginFailedWrongPassword logs a failed login due to wrong password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, loginCode string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedWrongPassword, &userID, "wrong password",
		map[string]string{"login_code": loginCode}))
}

// LoginFailedUserDisabled logs a failed login due to a disabled or deleted account.
func (l *Logger) LoginFailedUserDisabled(ctx context.Context, r *http.Request, userID primitive.ObjectID, loginCode string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedUserDisabled, &userID, "user disabled",
		map[string]string{"login_code": loginCode}))
}

// LoginFailedRateLimit logs a login rejected by the rate limiter.
func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedRateLimit, nil, "rate limit exceeded", nil))
}

// Logout logs an employee logout.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userIDStr string) {
	var userID *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
		userID = &oid
	}
	l.Log(ctx, authEvent(r, audit.EventLogout, userID, "", nil))
}

// PasswordChanged logs a password change by the actor on the request.
func (l *Logger) PasswordChanged(ctx context.Context, r *http.Request, employeeID primitive.ObjectID) {
	e := adminEvent(r, audit.EventPasswordChanged, employeeID, nil)
	e.Category = audit.CategoryAuth
	l.Log(ctx, e)
}

// --- Record Events ---

// EmployeeCreated logs a new employee.
func (l *Logger) EmployeeCreated(ctx context.Context, r *http.Request, id primitive.ObjectID, loginCode, role string) {
	l.Log(ctx, adminEvent(r, audit.EventEmployeeCreated, id, map[string]string{"login_code": loginCode, "role": role}))
}

// EmployeeUpdated logs an employee edit.
func (l *Logger) EmployeeUpdated(ctx context.Context, r *http.Request, id primitive.ObjectID, role string) {
	l.Log(ctx, adminEvent(r, audit.EventEmployeeUpdated, id, map[string]string{"role": role}))
}

// EmployeeStatusChanged logs an employee being disabled or re-enabled.
func (l *Logger) EmployeeStatusChanged(ctx context.Context, r *http.Request, id primitive.ObjectID, status string) {
	event := audit.EventEmployeeEnabled
	if status != "active" {
		event = audit.EventEmployeeDisabled
	}
	l.Log(ctx, adminEvent(r, event, id, nil))
}

// EmployeeDeleted logs a soft delete.
func (l *Logger) EmployeeDeleted(ctx context.Context, r *http.Request, id primitive.ObjectID, loginCode string) {
	l.Log(ctx, adminEvent(r, audit.EventEmployeeDeleted, id, map[string]string{"login_code": loginCode}))
}

// CandidateCreated logs a new candidate.
func (l *Logger) CandidateCreated(ctx context.Context, r *http.Request, id primitive.ObjectID, name string, totalMarks int) {
	l.Log(ctx, adminEvent(r, audit.EventCandidateCreated, id, map[string]string{
		"name":        name,
		"total_marks": itoa(totalMarks),
	}))
}

// CandidateUpdated logs a candidate edit.
func (l *Logger) CandidateUpdated(ctx context.Context, r *http.Request, id primitive.ObjectID, totalMarks int) {
	l.Log(ctx, adminEvent(r, audit.EventCandidateUpdated, id, map[string]string{"total_marks": itoa(totalMarks)}))
}

// CandidateStageChanged logs a pipeline stage change.
func (l *Logger) CandidateStageChanged(ctx context.Context, r *http.Request, id primitive.ObjectID, from, to string) {
	l.Log(ctx, adminEvent(r, audit.EventCandidateStageChanged, id, map[string]string{"from": from, "to": to}))
}

// CandidateDeleted logs a candidate removal.
func (l *Logger) CandidateDeleted(ctx context.Context, r *http.Request, id primitive.ObjectID, name string) {
	l.Log(ctx, adminEvent(r, audit.EventCandidateDeleted, id, map[string]string{"name": name}))
}

// VacancyCreated logs a new vacancy.
func (l *Logger) VacancyCreated(ctx context.Context, r *http.Request, id primitive.ObjectID, designation string) {
	l.Log(ctx, adminEvent(r, audit.EventVacancyCreated, id, map[string]string{"designation": designation}))
}

// VacancyStatusChanged logs a vacancy being opened or closed.
func (l *Logger) VacancyStatusChanged(ctx context.Context, r *http.Request, id primitive.ObjectID, status string) {
	l.Log(ctx, adminEvent(r, audit.EventVacancyStatusChanged, id, map[string]string{"status": status}))
}

// VacancyDeleted logs a vacancy removal.
func (l *Logger) VacancyDeleted(ctx context.Context, r *http.Request, id primitive.ObjectID, designation string, unlinked int64) {
	l.Log(ctx, adminEvent(r, audit.EventVacancyDeleted, id, map[string]string{
		"designation":         designation,
		"candidates_unlinked": itoa(int(unlinked)),
	}))
}

// DocumentUploaded logs a rules or future-plan document upload.
func (l *Logger) DocumentUploaded(ctx context.Context, r *http.Request, kind string, id primitive.ObjectID, title string) {
	l.Log(ctx, adminEvent(r, audit.EventDocumentUploaded, id, map[string]string{"kind": kind, "title": title}))
}

// DocumentApprovalChanged logs an approval decision.
func (l *Logger) DocumentApprovalChanged(ctx context.Context, r *http.Request, kind string, id primitive.ObjectID, status string) {
	l.Log(ctx, adminEvent(r, audit.EventDocumentApprovalChange, id, map[string]string{"kind": kind, "status": status}))
}

// DocumentDeleted logs a document removal.
func (l *Logger) DocumentDeleted(ctx context.Context, r *http.Request, kind string, id primitive.ObjectID, title string) {
	l.Log(ctx, adminEvent(r, audit.EventDocumentDeleted, id, map[string]string{"kind": kind, "title": title}))
}

// ContactCreated logs a new contact.
func (l *Logger) ContactCreated(ctx context.Context, r *http.Request, id primitive.ObjectID, stage string) {
	l.Log(ctx, adminEvent(r, audit.EventContactCreated, id, map[string]string{"stage": stage}))
}

// ContactStageChanged logs a funnel stage change.
func (l *Logger) ContactStageChanged(ctx context.Context, r *http.Request, id primitive.ObjectID, from, to string) {
	l.Log(ctx, adminEvent(r, audit.EventContactStageChanged, id, map[string]string{"from": from, "to": to}))
}

// ContactDeleted logs a contact removal.
func (l *Logger) ContactDeleted(ctx context.Context, r *http.Request, id primitive.ObjectID, name string) {
	l.Log(ctx, adminEvent(r, audit.EventContactDeleted, id, map[string]string{"name": name}))
}

// ProspectAssigned logs a prospect being assigned (or reassigned) to an RM.
func (l *Logger) ProspectAssigned(ctx context.Context, r *http.Request, prospectID, rmID primitive.ObjectID, rmName string) {
	l.Log(ctx, adminEvent(r, audit.EventProspectAssigned, prospectID, map[string]string{
		"rm_id":   rmID.Hex(),
		"rm_name": rmName,
	}))
}

// ProspectUnassigned logs an assignment being removed. reason is "manual",
// "demoted" or "deleted".
func (l *Logger) ProspectUnassigned(ctx context.Context, r *http.Request, prospectID, rmID primitive.ObjectID, reason string) {
	l.Log(ctx, adminEvent(r, audit.EventProspectUnassigned, prospectID, map[string]string{
		"rm_id":  rmID.Hex(),
		"reason": reason,
	}))
}

func authEvent(r *http.Request, eventType string, userID *primitive.ObjectID, failure string, details map[string]string) audit.Event {
	return audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     eventType,
		ActorID:       userID,
		SubjectID:     userID,
		IP:            ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       failure == "",
		FailureReason: failure,
		Details:       details,
	}
}

func adminEvent(r *http.Request, eventType string, subjectID primitive.ObjectID, details map[string]string) audit.Event {
	e := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		SubjectID: &subjectID,
		IP:        ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	}
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			e.ActorID = &oid
		}
		e.ActorName = u.Name
	}
	return e
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
