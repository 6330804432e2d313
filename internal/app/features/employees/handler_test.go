package employees_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/officehub/internal/app/features/employees"
	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/authutil"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type harness struct {
	router chi.Router
	fx     *testutil.Fixtures
	store  *employeestore.Store
	db     *mongo.Database
}

func setup(t *testing.T) harness {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.EnsureIndexes(t, db)
	logger := zap.NewNop()
	h := employees.NewHandler(db, auditlog.NewNopLogger(), apierrors.NewErrorLogger(logger), logger)
	return harness{
		router: employees.Routes(h, testutil.SessionManager(t)),
		fx:     testutil.NewFixtures(t, db),
		store:  employeestore.New(db),
		db:     db,
	}
}

func (e harness) do(t *testing.T, method, target string, body any, user testutil.TestUser) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	e.router.ServeHTTP(rec, testutil.NewJSONRequest(t, method, target, body, user))
	return rec
}

func newEmployeeBody(name, email, role string) map[string]any {
	return map[string]any{
		"personal": map[string]any{
			"full_name":  name,
			"email":      email,
			"phone":      "+91 98765-43210",
			"pan_number": "abcde1234f",
		},
		"official": map[string]any{"role": role, "department": "Sales"},
		"bank":     map[string]any{"account_number": "123456789012", "ifsc": "hdfc0001234"},
		"password": "river-stone-42",
	}
}

func TestCreate_GeneratesLoginCodeAndDesignation(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := e.do(t, http.MethodPost, "/", newEmployeeBody("Rita Menon", "Rita@Example.com", "rm"), testutil.HRUser())
	rec.AssertStatus(t, http.StatusCreated)

	var got models.Employee
	env := rec.Envelope(t, &got)
	assert.True(t, env.Success)
	assert.Equal(t, "RM0001", got.LoginCode)
	assert.Equal(t, "Relationship Manager", got.Official.Designation)
	assert.Equal(t, "rita@example.com", got.Personal.Email)
	assert.Equal(t, "ABCDE1234F", got.Personal.PANNumber)
	assert.Equal(t, "HDFC0001234", got.Bank.IFSC)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	stored, err := e.store.GetByLoginCode(ctx, "RM0001")
	require.NoError(t, err)
	assert.True(t, authutil.CheckPassword("river-stone-42", stored.PasswordHash))

	rec = e.do(t, http.MethodPost, "/", newEmployeeBody("Ravi Kumar", "ravi@example.com", "rm"), testutil.HRUser())
	rec.AssertStatus(t, http.StatusCreated)
	rec.Envelope(t, &got)
	assert.Equal(t, "RM0002", got.LoginCode)
}

func TestCreate_Validation(t *testing.T) {
	e := setup(t)

	tests := []struct {
		name   string
		mutate func(b map[string]any)
		field  string
	}{
		{"missing name", func(b map[string]any) { b["personal"].(map[string]any)["full_name"] = "" }, "personal.full_name"},
		{"bad email", func(b map[string]any) { b["personal"].(map[string]any)["email"] = "not-an-email" }, "personal.email"},
		{"bad phone", func(b map[string]any) { b["personal"].(map[string]any)["phone"] = "12345" }, "personal.phone"},
		{"bad pan", func(b map[string]any) { b["personal"].(map[string]any)["pan_number"] = "1234567890" }, "personal.pan_number"},
		{"unknown role", func(b map[string]any) { b["official"].(map[string]any)["role"] = "boss" }, "official.role"},
		{"bad ifsc", func(b map[string]any) { b["bank"].(map[string]any)["ifsc"] = "HDFC1234" }, "bank.ifsc"},
		{"short account", func(b map[string]any) { b["bank"].(map[string]any)["account_number"] = "1234" }, "bank.account_number"},
		{"missing password", func(b map[string]any) { delete(b, "password") }, "password"},
		{"common password", func(b map[string]any) { b["password"] = "password" }, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := newEmployeeBody("Valid Name", "valid@example.com", "hr")
			tt.mutate(body)
			rec := e.do(t, http.MethodPost, "/", body, testutil.AdminUser())
			rec.AssertStatus(t, http.StatusUnprocessableEntity)
			env := rec.Envelope(t, nil)
			assert.True(t, env.HasFieldError(tt.field), "expected error on %s, got %+v", tt.field, env.Errors)
		})
	}
}

func TestCreate_DesignationNotAccepted(t *testing.T) {
	e := setup(t)
	body := newEmployeeBody("Nina Patel", "nina@example.com", "telecaller")
	body["official"].(map[string]any)["designation"] = "Chief Executive"

	rec := e.do(t, http.MethodPost, "/", body, testutil.AdminUser())
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateEmployee(ctx, "Existing", "taken@example.com", models.RoleHR, "HR0100")

	rec := e.do(t, http.MethodPost, "/", newEmployeeBody("Someone", "TAKEN@example.com", "hr"), testutil.AdminUser())
	rec.AssertStatus(t, http.StatusConflict)
}

func TestCreate_OnlyAdminsCreateAdmins(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodPost, "/", newEmployeeBody("New Admin", "na@example.com", "admin"), testutil.HRUser())
	rec.AssertStatus(t, http.StatusForbidden)

	rec = e.do(t, http.MethodPost, "/", newEmployeeBody("New Admin", "na@example.com", "admin"), testutil.AdminUser())
	rec.AssertStatus(t, http.StatusCreated)
}

func TestRoleGates(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodGet, "/", nil, testutil.TestUser{})
	// An empty TestUser still sits in the context; only the role gate stops it.
	rec.AssertStatus(t, http.StatusForbidden)

	rec = testutil.NewRecorder()
	e.router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = e.do(t, http.MethodGet, "/", nil, testutil.ManagerUser())
	rec.AssertStatus(t, http.StatusForbidden)

	rec = e.do(t, http.MethodGet, "/", nil, testutil.HRUser())
	rec.AssertStatus(t, http.StatusOK)
}

func TestList_FiltersAndPaging(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e.fx.CreateRM(ctx, "Anil RM", "RM0001")
	e.fx.CreateRM(ctx, "Bina RM", "RM0002")
	e.fx.CreateRM(ctx, "Chetan RM", "RM0003")
	e.fx.CreateEmployee(ctx, "Dev HR", "dev@test.com", models.RoleHR, "HR0001")
	e.fx.CreateDisabledEmployee(ctx, "Esha RM", "esha@test.com", models.RoleRM, "RM0004")

	rec := e.do(t, http.MethodGet, "/?role=rm&status=active&limit=2", nil, testutil.HRUser())
	rec.AssertStatus(t, http.StatusOK)
	var page []models.Employee
	env := rec.Envelope(t, &page)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 3, env.Pagination.Total)
	assert.True(t, env.Pagination.HasMore)
	require.Len(t, page, 2)
	assert.Equal(t, "Anil RM", page[0].Personal.FullName)

	rec = e.do(t, http.MethodGet, "/?role=rm&status=active&limit=2&page=2", nil, testutil.HRUser())
	rec.Envelope(t, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Chetan RM", page[0].Personal.FullName)

	rec = e.do(t, http.MethodGet, "/?q=hr0001", nil, testutil.HRUser())
	rec.Envelope(t, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Dev HR", page[0].Personal.FullName)
}

func TestUpdate_RoleChangeKeepsLoginCode(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	emp := e.fx.CreateRM(ctx, "Farah Khan", "RM0042")

	body := newEmployeeBody("Farah Khan", "farah@example.com", "manager")
	delete(body, "password")
	rec := e.do(t, http.MethodPut, "/"+emp.ID.Hex(), body, testutil.HRUser())
	rec.AssertStatus(t, http.StatusOK)

	var got models.Employee
	rec.Envelope(t, &got)
	assert.Equal(t, "RM0042", got.LoginCode)
	assert.Equal(t, models.RoleManager, got.Official.Role)
	assert.Equal(t, "Branch Manager", got.Official.Designation)
}

func TestUpdate_RejectsPasswordAndMissing(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	emp := e.fx.CreateRM(ctx, "Gita", "RM0050")

	rec := e.do(t, http.MethodPut, "/"+emp.ID.Hex(), newEmployeeBody("Gita", "gita@example.com", "rm"), testutil.HRUser())
	rec.AssertStatus(t, http.StatusUnprocessableEntity)

	body := newEmployeeBody("Gita", "gita@example.com", "rm")
	delete(body, "password")
	rec = e.do(t, http.MethodPut, "/"+"5f0000000000000000000000", body, testutil.HRUser())
	rec.AssertStatus(t, http.StatusNotFound)

	rec = e.do(t, http.MethodPut, "/not-an-id", body, testutil.HRUser())
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestStatus(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	emp := e.fx.CreateRM(ctx, "Hema", "RM0060")
	target := "/" + emp.ID.Hex() + "/status"

	rec := e.do(t, http.MethodPatch, target, map[string]string{"status": "disabled"}, testutil.HRUser())
	rec.AssertStatus(t, http.StatusForbidden)

	rec = e.do(t, http.MethodPatch, target, map[string]string{"status": "paused"}, testutil.AdminUser())
	rec.AssertStatus(t, http.StatusUnprocessableEntity)

	rec = e.do(t, http.MethodPatch, target, map[string]string{"status": "Disabled"}, testutil.AdminUser())
	rec.AssertStatus(t, http.StatusOK)
	got, err := e.store.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmployeeDisabled, got.Status)

	admin := e.fx.CreateEmployee(ctx, "Self Admin", "self@test.com", models.RoleAdmin, "ADM0009")
	self := testutil.AdminUser()
	self.ID = admin.ID.Hex()
	rec = e.do(t, http.MethodPatch, "/"+admin.ID.Hex()+"/status", map[string]string{"status": "disabled"}, self)
	rec.AssertStatus(t, http.StatusConflict)
}

func TestPassword(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	emp := e.fx.CreateRM(ctx, "Indu", "RM0070")
	target := "/" + emp.ID.Hex() + "/password"

	self := testutil.RMUser(emp.ID)
	rec := e.do(t, http.MethodPut, target, map[string]string{"password": "new-secret-77"}, self)
	rec.AssertStatus(t, http.StatusOK)
	got, err := e.store.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, authutil.CheckPassword("new-secret-77", got.PasswordHash))

	rec = e.do(t, http.MethodPut, target, map[string]string{"password": "abc"}, self)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)

	rec = e.do(t, http.MethodPut, target, map[string]string{"password": "new-secret-88"}, testutil.HRUser())
	rec.AssertStatus(t, http.StatusForbidden)

	rec = e.do(t, http.MethodPut, target, map[string]string{"password": "admin-reset-99"}, testutil.AdminUser())
	rec.AssertStatus(t, http.StatusOK)
}

func TestDelete_IsSoft(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	emp := e.fx.CreateRM(ctx, "Jai", "RM0080")

	rec := e.do(t, http.MethodDelete, "/"+emp.ID.Hex(), nil, testutil.AdminUser())
	rec.AssertStatus(t, http.StatusOK)

	rec = e.do(t, http.MethodGet, "/"+emp.ID.Hex(), nil, testutil.AdminUser())
	rec.AssertStatus(t, http.StatusNotFound)

	n, err := e.db.Collection("employees").CountDocuments(ctx, map[string]any{"_id": emp.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "record is kept")

	rec = e.do(t, http.MethodDelete, "/"+emp.ID.Hex(), nil, testutil.AdminUser())
	rec.AssertStatus(t, http.StatusNotFound)
}
