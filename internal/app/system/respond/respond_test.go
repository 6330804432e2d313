package respond_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/paging"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.OK(rec, "done", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, map[string]any{"id": "1"}, body["data"])
}

func TestList(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.List(rec, []int{1, 2}, paging.Meta{Total: 12, Page: 1, Limit: 2, HasMore: true})

	body := decode(t, rec)
	pg, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(12), pg["total"])
	assert.Equal(t, true, pg["has_more"])
	assert.Contains(t, body, "message", "every envelope carries message")
	assert.Equal(t, []any{float64(1), float64(2)}, body["data"])
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Fail(rec, http.StatusNotFound, "Candidate not found.")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Candidate not found.", body["message"])
	assert.Contains(t, body, "data", "every envelope carries data")
	assert.Nil(t, body["data"])
}

func TestInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Invalid(rec, inputval.Result{Errors: []inputval.FieldError{
		{Field: "phone", Message: "Phone is required."},
	}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Phone is required.", body["message"])
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, errs, 1)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a","extra":1}`))
	err := respond.DecodeJSON(httptest.NewRecorder(), req, &dst, 1<<10)
	assert.Error(t, err)
}
