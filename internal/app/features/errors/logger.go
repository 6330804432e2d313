// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and writes the JSON error
// envelope. Handlers hold one and call it on every error path so the client
// sees a short message while the cause goes to the log.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

func requestFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if u, ok := auth.CurrentUser(r); ok && u != nil {
		fields = append(fields, zap.String("user_id", u.ID), zap.String("role", u.Role))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}

// LogServerError logs at error level and responds 500 with userMsg.
func (el *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	el.Log.Error(msg, requestFields(r, err)...)
	if userMsg == "" {
		userMsg = "An internal error occurred."
	}
	respond.Fail(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs at warn level and responds 400 with userMsg.
func (el *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	el.Log.Warn(msg, requestFields(r, err)...)
	respond.Fail(w, http.StatusBadRequest, userMsg)
}

// LogForbidden logs at warn level and responds 403 with userMsg.
func (el *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg string, userMsg string) {
	el.Log.Warn(msg, requestFields(r, nil)...)
	if userMsg == "" {
		userMsg = "You do not have access to this resource."
	}
	respond.Fail(w, http.StatusForbidden, userMsg)
}

// LogStatus logs at info level and responds with status and userMsg. It is
// used for expected client errors such as 404 and 409.
func (el *ErrorLogger) LogStatus(w http.ResponseWriter, r *http.Request, status int, msg string, err error, userMsg string) {
	el.Log.Info(msg, append(requestFields(r, err), zap.Int("status", status))...)
	respond.Fail(w, status, userMsg)
}
