package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/paging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TestUser represents the signed-in employee for handler tests.
type TestUser struct {
	ID        string
	Name      string
	Email     string
	LoginCode string
	Role      string
}

func userWithRole(role, name, code string) TestUser {
	return TestUser{
		ID:        primitive.NewObjectID().Hex(),
		Name:      name,
		Email:     role + "@test.com",
		LoginCode: code,
		Role:      role,
	}
}

// AdminUser returns a TestUser with admin role.
func AdminUser() TestUser { return userWithRole("admin", "Test Admin", "ADM0001") }

// HRUser returns a TestUser with hr role.
func HRUser() TestUser { return userWithRole("hr", "Test HR", "HR0001") }

// ManagerUser returns a TestUser with manager role.
func ManagerUser() TestUser { return userWithRole("manager", "Test Manager", "MGR0001") }

// TelecallerUser returns a TestUser with telecaller role.
func TelecallerUser() TestUser { return userWithRole("telecaller", "Test Caller", "TC0001") }

// OperationsUser returns a TestUser with operations role.
func OperationsUser() TestUser { return userWithRole("operations", "Test Ops", "OPS0001") }

// RMUser returns a TestUser with rm role and the given employee ID.
func RMUser(id primitive.ObjectID) TestUser {
	u := userWithRole("rm", "Test RM", "RM0001")
	u.ID = id.Hex()
	return u
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		LoginCode: user.LoginCode,
		Role:      user.Role,
	})
}

// SessionName is the cookie name used by SessionManager.
const SessionName = "officehub-test"

// SessionManager returns a session manager for route tests. Requests built
// with WithUser pass its RequireSignedIn and RequireRole gates.
func SessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-32b", SessionName, "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// NewJSONRequest creates a request whose body is body encoded as JSON.
// A string body is sent as-is.
func NewJSONRequest(t *testing.T, method, target string, body any, user TestUser) *http.Request {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	return WithUser(req, user)
}

// File is one file part of a multipart request.
type File struct {
	Field    string
	Name     string
	Contents []byte
}

// NewMultipartRequest creates a multipart/form-data request from fields and
// an optional file.
func NewMultipartRequest(t *testing.T, method, target string, fields map[string]string, file *File, user TestUser) *http.Request {
	t.Helper()
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	return NewMultipartRequestValues(t, method, target, values, file, user)
}

// NewMultipartRequestValues is NewMultipartRequest for repeated fields.
func NewMultipartRequestValues(t *testing.T, method, target string, values url.Values, file *File, user TestUser) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range values {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("write field %s: %v", k, err)
			}
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile(file.Field, file.Name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(file.Contents); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return WithUser(req, user)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body: %s)", r.Code, expected, r.Body.String())
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// Envelope mirrors the JSON response envelope with Data left raw so tests
// can decode it into the type they expect.
type Envelope struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Data       json.RawMessage       `json:"data"`
	Pagination *paging.Meta          `json:"pagination"`
	Errors     []inputval.FieldError `json:"errors"`
}

// Envelope decodes the response body. When into is non-nil, Data is decoded
// into it as well.
func (r *ResponseRecorder) Envelope(t *testing.T, into any) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(r.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, r.Body.String())
	}
	if into != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, into); err != nil {
			t.Fatalf("decode data: %v (data: %s)", err, env.Data)
		}
	}
	return env
}

// HasFieldError reports whether the envelope carries an error for field.
func (e Envelope) HasFieldError(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}
