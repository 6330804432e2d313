package shared_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	"github.com/dalemusser/officehub/internal/app/system/filestore"
	"github.com/dalemusser/officehub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIDParam(t *testing.T) {
	oid := primitive.NewObjectID()

	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", oid.Hex())
	rec := httptest.NewRecorder()
	got, ok := shared.IDParam(rec, req, "id")
	assert.True(t, ok)
	assert.Equal(t, oid, got)

	req = testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "nope")
	rec = httptest.NewRecorder()
	_, ok = shared.IDParam(rec, req, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	ok := shared.DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Asha"}`)), &dst)
	assert.True(t, ok)
	assert.Equal(t, "Asha", dst.Name)

	rec = httptest.NewRecorder()
	ok = shared.DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nam":"Asha"}`)), &dst)
	assert.False(t, ok, "unknown fields are rejected")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	big := `{"name":"` + strings.Repeat("x", shared.MaxJSONBody) + `"}`
	rec = httptest.NewRecorder()
	ok = shared.DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big)), &dst)
	assert.False(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestActor(t *testing.T) {
	id, name := shared.Actor(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, id)
	assert.Empty(t, name)

	user := testutil.HRUser()
	id, name = shared.Actor(testutil.NewAuthenticatedRequest(http.MethodGet, "/", user))
	if assert.NotNil(t, id) {
		assert.Equal(t, user.ID, id.Hex())
	}
	assert.Equal(t, user.Name, name)
}

func TestOptionalID(t *testing.T) {
	assert.Nil(t, shared.OptionalID(""))
	assert.Nil(t, shared.OptionalID("xyz"))
	oid := primitive.NewObjectID()
	assert.Equal(t, oid, *shared.OptionalID(oid.Hex()))
}

func TestUploadStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		ok     bool
	}{
		{filestore.ErrTooLarge, http.StatusRequestEntityTooLarge, true},
		{fmt.Errorf("%w: image/gif", filestore.ErrUnsupportedType), http.StatusUnsupportedMediaType, true},
		{filestore.ErrEmpty, http.StatusUnprocessableEntity, true},
		{fmt.Errorf("disk full"), http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		status, _, ok := shared.UploadStatus(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.ok, ok, tt.err.Error())
	}
}

func TestDecodeFormJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", map[string]string{"data": `{"name":"Ravi"}`}, nil, testutil.HRUser())
	assert.True(t, shared.IsMultipart(req))
	rec := httptest.NewRecorder()
	assert.True(t, shared.ParseMultipart(rec, req, 1<<20))
	assert.True(t, shared.DecodeFormJSON(rec, req, "data", &dst))
	assert.Equal(t, "Ravi", dst.Name)

	f, fh, err := shared.FormFile(req, "resume")
	assert.NoError(t, err)
	assert.Nil(t, f)
	assert.Nil(t, fh)

	req = testutil.NewMultipartRequest(t, http.MethodPost, "/", map[string]string{"other": "x"}, nil, testutil.HRUser())
	rec = httptest.NewRecorder()
	assert.True(t, shared.ParseMultipart(rec, req, 1<<20))
	assert.False(t, shared.DecodeFormJSON(rec, req, "data", &dst))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.False(t, shared.IsMultipart(httptest.NewRequest(http.MethodPost, "/", nil)))
}

func TestParseMultipart_BodyLimit(t *testing.T) {
	big := &testutil.File{Field: "file", Name: "big.pdf", Contents: make([]byte, 3<<20)}

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", map[string]string{"title": "x"}, big, testutil.HRUser())
	rec := httptest.NewRecorder()
	assert.False(t, shared.ParseMultipart(rec, req, 1<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	// Without a declared length the limit is enforced while reading.
	req = testutil.NewMultipartRequest(t, http.MethodPost, "/", map[string]string{"title": "x"}, big, testutil.HRUser())
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	assert.False(t, shared.ParseMultipart(rec, req, 1<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	req = testutil.NewMultipartRequest(t, http.MethodPost, "/", map[string]string{"title": "x"}, big, testutil.HRUser())
	rec = httptest.NewRecorder()
	assert.True(t, shared.ParseMultipart(rec, req, 0), "zero leaves the body unbounded")
}
