package documents_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/officehub/internal/app/features/documents"
	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	documentstore "github.com/dalemusser/officehub/internal/app/store/documents"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/filestore"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type harness struct {
	router chi.Router
	fx     *testutil.Fixtures
	store  *documentstore.Store
	files  *filestore.Store
}

func setup(t *testing.T, kind models.DocumentKind) harness {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	files := testutil.NewFileStore()
	h := documents.NewHandler(db, kind, files, auditlog.NewNopLogger(), apierrors.NewErrorLogger(logger), logger)
	return harness{
		router: documents.Routes(h, testutil.SessionManager(t)),
		fx:     testutil.NewFixtures(t, db),
		store:  documentstore.New(db, kind),
		files:  files,
	}
}

func (e harness) do(t *testing.T, req *http.Request) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e harness) upload(t *testing.T, title string, user testutil.TestUser) *testutil.ResponseRecorder {
	t.Helper()
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/",
		map[string]string{"title": title, "description": "Leave <b>policy</b>"},
		&testutil.File{Field: "file", Name: "policy.pdf", Contents: testutil.PDF}, user)
	return e.do(t, req)
}

func TestUpload_StartsPending(t *testing.T) {
	e := setup(t, models.DocumentKindRules)

	rec := e.upload(t, "Leave Policy", testutil.ManagerUser())
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Rules document uploaded.")

	var got models.Document
	rec.Envelope(t, &got)
	assert.Equal(t, "Leave Policy", got.Title)
	assert.Equal(t, "Leave policy", got.Description)
	assert.Equal(t, models.ApprovalPending, got.ApprovalStatus)
	assert.Equal(t, "application/pdf", got.FileContentType)
	assert.Equal(t, "/api/rules-documents/"+got.ID.Hex()+"/download", got.FileURL)
	assert.Equal(t, "Test Manager", got.UploadedByName)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, err := e.store.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.True(t, testutil.FileExists(t, e.files, stored.FilePath))
}

func TestUpload_FuturePlanDirectory(t *testing.T) {
	e := setup(t, models.DocumentKindFuturePlan)

	rec := e.upload(t, "2027 Expansion", testutil.HRUser())
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Future plan document uploaded.")

	var got models.Document
	rec.Envelope(t, &got)
	assert.Equal(t, "/api/future-plan-documents/"+got.ID.Hex()+"/download", got.FileURL)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, err := e.store.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.FilePath, "future-plans/"), stored.FilePath)
}

func TestUpload_Validation(t *testing.T) {
	e := setup(t, models.DocumentKindRules)

	t.Run("missing title and file", func(t *testing.T) {
		req := testutil.NewMultipartRequest(t, http.MethodPost, "/", map[string]string{"description": "x"}, nil, testutil.HRUser())
		rec := e.do(t, req)
		rec.AssertStatus(t, http.StatusUnprocessableEntity)
		env := rec.Envelope(t, nil)
		assert.True(t, env.HasFieldError("title"))
		assert.True(t, env.HasFieldError("file"))
	})

	t.Run("unsupported file type", func(t *testing.T) {
		req := testutil.NewMultipartRequest(t, http.MethodPost, "/", map[string]string{"title": "Logo"},
			&testutil.File{Field: "file", Name: "logo.gif", Contents: testutil.GIF}, testutil.HRUser())
		rec := e.do(t, req)
		rec.AssertStatus(t, http.StatusUnsupportedMediaType)
	})

	t.Run("json body", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]string{"title": "x"}, testutil.HRUser())
		rec := e.do(t, req)
		rec.AssertStatus(t, http.StatusUnsupportedMediaType)
	})
}

func TestUpload_RoleGate(t *testing.T) {
	e := setup(t, models.DocumentKindRules)

	for _, u := range []testutil.TestUser{testutil.TelecallerUser(), testutil.OperationsUser()} {
		rec := e.upload(t, "Nope", u)
		rec.AssertStatus(t, http.StatusForbidden)
	}
}

func TestList_FiltersByStatus(t *testing.T) {
	e := setup(t, models.DocumentKindRules)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := e.fx.CreateDocument(ctx, models.DocumentKindRules, "Attendance")
	e.fx.CreateDocument(ctx, models.DocumentKindRules, "Dress Code")
	_, err := e.store.SetApproval(ctx, a.ID, documentstore.Approval{Status: models.ApprovalApproved})
	require.NoError(t, err)

	rec := e.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/?status=approved", testutil.TelecallerUser()))
	rec.AssertStatus(t, http.StatusOK)
	var list []models.Document
	env := rec.Envelope(t, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Attendance", list[0].Title)
	assert.Equal(t, int64(1), env.Pagination.Total)

	rec = e.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/?q=dress", testutil.TelecallerUser()))
	rec.Envelope(t, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Dress Code", list[0].Title)

	rec = e.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/?status=maybe", testutil.TelecallerUser()))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestApproval(t *testing.T) {
	e := setup(t, models.DocumentKindRules)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	d := e.fx.CreateDocument(ctx, models.DocumentKindRules, "Attendance")

	rec := e.do(t, testutil.NewJSONRequest(t, http.MethodPatch, "/"+d.ID.Hex()+"/approval",
		map[string]string{"status": "Approved", "remarks": "ok"}, testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)
	var got models.Document
	rec.Envelope(t, &got)
	assert.Equal(t, models.ApprovalApproved, got.ApprovalStatus)
	assert.Equal(t, "Test Admin", got.ApprovedByName)
	require.NotNil(t, got.ApprovedAt)

	rec = e.do(t, testutil.NewJSONRequest(t, http.MethodPatch, "/"+d.ID.Hex()+"/approval",
		map[string]string{"status": "pending"}, testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)
	got = models.Document{}
	rec.Envelope(t, &got)
	assert.Equal(t, models.ApprovalPending, got.ApprovalStatus)
	assert.Empty(t, got.ApprovedByName)
	assert.Nil(t, got.ApprovedAt)

	rec = e.do(t, testutil.NewJSONRequest(t, http.MethodPatch, "/"+d.ID.Hex()+"/approval",
		map[string]string{"status": "maybe"}, testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusUnprocessableEntity)

	rec = e.do(t, testutil.NewJSONRequest(t, http.MethodPatch, "/"+d.ID.Hex()+"/approval",
		map[string]string{"status": "approved"}, testutil.HRUser()))
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestDownload_CountsAndStreams(t *testing.T) {
	e := setup(t, models.DocumentKindRules)

	rec := e.upload(t, "Leave Policy", testutil.HRUser())
	rec.AssertStatus(t, http.StatusCreated)
	var d models.Document
	rec.Envelope(t, &d)

	for i := 0; i < 2; i++ {
		rec = e.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/"+d.ID.Hex()+"/download", testutil.TelecallerUser()))
		rec.AssertStatus(t, http.StatusOK)
		assert.Equal(t, testutil.PDF, rec.Body.Bytes())
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), d.FileName)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	got, err := e.store.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.DownloadCount)
}

func TestDownload_MissingFile(t *testing.T) {
	e := setup(t, models.DocumentKindRules)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	d := e.fx.CreateDocument(ctx, models.DocumentKindRules, "Ghost")

	rec := e.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/"+d.ID.Hex()+"/download", testutil.HRUser()))
	rec.AssertStatus(t, http.StatusNotFound)

	got, err := e.store.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.DownloadCount)
}

func TestDelete_RemovesFile(t *testing.T) {
	e := setup(t, models.DocumentKindRules)

	rec := e.upload(t, "Leave Policy", testutil.HRUser())
	var d models.Document
	rec.Envelope(t, &d)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, err := e.store.GetByID(ctx, d.ID)
	require.NoError(t, err)

	rec = e.do(t, testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+d.ID.Hex(), testutil.ManagerUser()))
	rec.AssertStatus(t, http.StatusForbidden)

	rec = e.do(t, testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+d.ID.Hex(), testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)
	assert.False(t, testutil.FileExists(t, e.files, stored.FilePath))

	_, err = e.store.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, documentstore.ErrNotFound)

	rec = e.do(t, testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+d.ID.Hex(), testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Rules document not found.")
}

func TestGet_BadID(t *testing.T) {
	e := setup(t, models.DocumentKindRules)
	rec := e.do(t, testutil.NewAuthenticatedRequest(http.MethodGet, "/nope", testutil.HRUser()))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestUpload_OversizedBodyRejectedBeforeParsing(t *testing.T) {
	e := setup(t, models.DocumentKindRules)

	// The file store accepts 1 MiB; the body carries 3 MiB.
	big := append(append([]byte{}, testutil.PDF...), make([]byte, 3<<20)...)
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", map[string]string{"title": "Huge"},
		&testutil.File{Field: "file", Name: "huge.pdf", Contents: big}, testutil.HRUser())
	rec := e.do(t, req)
	rec.AssertStatus(t, http.StatusRequestEntityTooLarge)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, err := e.store.Count(ctx, bson.M{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
