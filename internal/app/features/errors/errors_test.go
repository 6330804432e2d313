package errors_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	"github.com/dalemusser/officehub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rec := testutil.NewRecorder()
	apierrors.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	rec.AssertStatus(t, http.StatusNotFound)
	env := rec.Envelope(t, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "Resource not found.", env.Message)

	rec = testutil.NewRecorder()
	apierrors.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPatch, "/health", nil))
	rec.AssertStatus(t, http.StatusMethodNotAllowed)
}

func TestErrorLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	el := apierrors.NewErrorLogger(zap.New(core))
	user := testutil.AdminUser()

	tests := []struct {
		name   string
		call   func(w http.ResponseWriter, r *http.Request)
		status int
		level  zapcore.Level
		msg    string
	}{
		{"server", func(w http.ResponseWriter, r *http.Request) {
			el.LogServerError(w, r, "db failed", errors.New("boom"), "")
		}, http.StatusInternalServerError, zapcore.ErrorLevel, "An internal error occurred."},
		{"bad request", func(w http.ResponseWriter, r *http.Request) {
			el.LogBadRequest(w, r, "bad id", errors.New("hex"), "Invalid ID.")
		}, http.StatusBadRequest, zapcore.WarnLevel, "Invalid ID."},
		{"forbidden", func(w http.ResponseWriter, r *http.Request) {
			el.LogForbidden(w, r, "not owner", "")
		}, http.StatusForbidden, zapcore.WarnLevel, "You do not have access to this resource."},
		{"status", func(w http.ResponseWriter, r *http.Request) {
			el.LogStatus(w, r, http.StatusConflict, "dup", nil, "Already exists.")
		}, http.StatusConflict, zapcore.InfoLevel, "Already exists."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.TakeAll()
			rec := testutil.NewRecorder()
			tt.call(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/api/x", user))

			rec.AssertStatus(t, tt.status)
			assert.Equal(t, tt.msg, rec.Envelope(t, nil).Message)

			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.Equal(t, user.ID, entries[0].ContextMap()["user_id"])
			assert.Equal(t, "/api/x", entries[0].ContextMap()["path"])
		})
	}
}
