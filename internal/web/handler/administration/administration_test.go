package administration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/auth"
	"github.com/GoBancaUno/GoBancaUno/internal/config"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/request"
	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
	"github.com/GoBancaUno/GoBancaUno/internal/token"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler"
)

type fixture struct {
	app     *fiber.App
	db      *gorm.DB
	issuer  *token.Issuer
	admin   models.User
	binding models.UserRole
}

func setupHandler(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Client{},
		&models.AccountRequest{},
	)
	require.NoError(t, err, "failed to migrate test database")

	f := &fixture{db: db}

	f.admin = models.User{Active: true, Name: "Root", Email: "root@bank.test"}
	require.NoError(t, db.Create(&f.admin).Error)

	adminRole := models.Role{Name: auth.RoleAdministrator}
	require.NoError(t, db.Create(&adminRole).Error)

	f.binding = models.UserRole{UserID: f.admin.ID, RoleID: adminRole.ID}
	require.NoError(t, db.Create(&f.binding).Error)

	f.issuer = token.NewIssuer("test-secret", time.Hour)
	authService := auth.NewService(db, f.issuer)

	f.app = fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})

	s := &Service{}
	require.NoError(t, s.Init(f.app, &config.Config{}, db, authService))

	return f
}

func (f *fixture) credential(t *testing.T) string {
	t.Helper()

	credential, err := f.issuer.Issue(f.admin.ID, f.admin.Email, auth.RoleAdministrator, f.binding.ID)
	require.NoError(t, err)

	return credential
}

func do(t *testing.T, app *fiber.App, method, path, credential string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if credential != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+credential)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestUsers(t *testing.T) {
	f := setupHandler(t)
	credential := f.credential(t)

	resp := do(t, f.app, http.MethodGet, "/api/admin/users", credential, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope handler.Response
	require.NoError(t, json.Unmarshal(raw, &envelope))

	data, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)

	entry, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "root@bank.test", entry["email"])

	roles, ok := entry["roles"].([]interface{})
	require.True(t, ok)
	require.Len(t, roles, 1)
	assert.Equal(t, auth.RoleAdministrator, roles[0])
}

func TestUsersRequiresAdministrator(t *testing.T) {
	f := setupHandler(t)

	resp := do(t, f.app, http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	cashier, err := f.issuer.Issue(f.admin.ID, f.admin.Email, auth.RoleCashier, f.binding.ID)
	require.NoError(t, err)

	resp = do(t, f.app, http.MethodGet, "/api/admin/users", cashier, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSetActive(t *testing.T) {
	f := setupHandler(t)
	credential := f.credential(t)

	other := models.User{Active: true, Name: "Ana", Email: "ana@bank.test"}
	require.NoError(t, f.db.Create(&other).Error)

	resp := do(t, f.app, http.MethodPut, "/api/admin/users/2/active", credential,
		activePayload{Active: false})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope handler.Response
	require.NoError(t, json.Unmarshal(raw, &envelope))

	// The response echoes the stored row, not the payload.
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ana@bank.test", data["email"])
	assert.Equal(t, false, data["active"])

	var stored models.User
	require.NoError(t, f.db.First(&stored, other.ID).Error)
	assert.False(t, stored.Active)

	resp = do(t, f.app, http.MethodPut, "/api/admin/users/999/active", credential,
		activePayload{Active: true})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteRequest(t *testing.T) {
	f := setupHandler(t)
	credential := f.credential(t)

	clientRow := models.Client{DocumentNumber: "0801-1990-12345", FirstName: "Maria", LastName: "Lopez"}
	require.NoError(t, f.db.Create(&clientRow).Error)

	req, err := request.Create(f.db, clientRow.ID, f.binding.ID, "")
	require.NoError(t, err)

	resp := do(t, f.app, http.MethodDelete, "/api/admin/requests/1", credential, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err = request.Get(f.db, req.ID)
	assert.ErrorIs(t, err, request.ErrRequestNotFound)

	resp = do(t, f.app, http.MethodDelete, "/api/admin/requests/1", credential, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
