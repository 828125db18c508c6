package session

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
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/principal"
	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
	"github.com/GoBancaUno/GoBancaUno/internal/token"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler"
)

func setupHandler(t *testing.T) (*fiber.App, *gorm.DB, *auth.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.Role{}, &models.UserRole{})
	require.NoError(t, err, "failed to migrate test database")

	for _, name := range auth.Catalog() {
		require.NoError(t, db.Create(&models.Role{Name: name}).Error)
	}

	issuer := token.NewIssuer("test-secret", time.Hour)
	authService := auth.NewService(db, issuer)

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	cfg := &config.Config{}

	s := &Service{}
	require.NoError(t, s.Init(app, cfg, db, authService))

	return app, db, authService
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}, credential string) (*http.Response, handler.Response) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if credential != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+credential)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp, decodeEnvelope(t, resp)
}

func getJSON(t *testing.T, app *fiber.App, path, credential string) (*http.Response, handler.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if credential != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+credential)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp, decodeEnvelope(t, resp)
}

func decodeEnvelope(t *testing.T, resp *http.Response) handler.Response {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope handler.Response
	require.NoError(t, json.Unmarshal(raw, &envelope))

	return envelope
}

func registerAndLogin(t *testing.T, app *fiber.App, email, roleName string) string {
	t.Helper()

	resp, _ := postJSON(t, app, "/api/auth/register", registerPayload{
		Name:     "Test User",
		Email:    email,
		Password: "Secreto123",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, envelope := postJSON(t, app, "/api/auth/login", loginPayload{
		Email:    email,
		Password: "Secreto123",
		Role:     roleName,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	credential, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, credential)

	return credential
}

func TestRegister(t *testing.T) {
	app, _, _ := setupHandler(t)

	testCases := []struct {
		name           string
		payload        registerPayload
		expectedStatus int
	}{
		{
			name: "valid",
			payload: registerPayload{
				Name:     "Ana",
				Email:    "ana@bank.test",
				Password: "Secreto123",
			},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name: "duplicate email",
			payload: registerPayload{
				Name:     "Ana Clone",
				Email:    "ana@bank.test",
				Password: "Secreto123",
			},
			expectedStatus: fiber.StatusConflict,
		},
		{
			name: "bad email",
			payload: registerPayload{
				Name:     "Ana",
				Email:    "not-an-email",
				Password: "Secreto123",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "short password",
			payload: registerPayload{
				Name:     "Ana",
				Email:    "short@bank.test",
				Password: "short",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, envelope := postJSON(t, app, "/api/auth/register", tc.payload, "")
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedStatus < 300, envelope.Success)
		})
	}
}

func TestLogin(t *testing.T) {
	app, _, _ := setupHandler(t)

	resp, _ := postJSON(t, app, "/api/auth/register", registerPayload{
		Name:     "Ana",
		Email:    "ana@bank.test",
		Password: "Secreto123",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	testCases := []struct {
		name           string
		payload        loginPayload
		expectedStatus int
	}{
		{
			name:           "valid advisor login",
			payload:        loginPayload{Email: "ana@bank.test", Password: "Secreto123", Role: "Advisor"},
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "role name folded",
			payload:        loginPayload{Email: "ana@bank.test", Password: "Secreto123", Role: "operations director"},
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "wrong password",
			payload:        loginPayload{Email: "ana@bank.test", Password: "nope-nope", Role: "Advisor"},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "unknown role",
			payload:        loginPayload{Email: "ana@bank.test", Password: "Secreto123", Role: "Janitor"},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, envelope := postJSON(t, app, "/api/auth/login", tc.payload, "")
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)

			if tc.expectedStatus == fiber.StatusOK {
				data, ok := envelope.Data.(map[string]interface{})
				require.True(t, ok)
				assert.NotEmpty(t, data["token"])
				assert.NotZero(t, data["binding_id"])
			}
		})
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	app, db, _ := setupHandler(t)

	user, err := principal.Register(db, "Leo", "leo@bank.test", "Secreto123")
	require.NoError(t, err)
	require.NoError(t, principal.SetActive(db, user.ID, false))

	resp, _ := postJSON(t, app, "/api/auth/login", loginPayload{
		Email:    "leo@bank.test",
		Password: "Secreto123",
		Role:     "Advisor",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestEmailAvailable(t *testing.T) {
	app, _, _ := setupHandler(t)

	resp, envelope := getJSON(t, app, "/api/auth/email-available?email=ana@bank.test", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["available"])

	_ = registerAndLogin(t, app, "ana@bank.test", "Advisor")

	resp, envelope = getJSON(t, app, "/api/auth/email-available?email=ANA@bank.test", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok = envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["available"])

	resp, _ = getJSON(t, app, "/api/auth/email-available", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAllRoles(t *testing.T) {
	app, _, _ := setupHandler(t)

	resp, envelope := getJSON(t, app, "/api/auth/roles", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 4)
}

func TestMyRoles(t *testing.T) {
	app, _, _ := setupHandler(t)

	credential := registerAndLogin(t, app, "ana@bank.test", "Advisor")

	resp, envelope := getJSON(t, app, "/api/auth/me/roles", credential)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)

	entry, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Advisor", entry["name"])

	// Unauthenticated access is rejected.
	resp, _ = getJSON(t, app, "/api/auth/me/roles", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAssignRole(t *testing.T) {
	app, _, _ := setupHandler(t)

	adminCred := registerAndLogin(t, app, "root@bank.test", "Administrator")
	_ = registerAndLogin(t, app, "ana@bank.test", "Advisor")

	// Granting a new role works once.
	resp, _ := postJSON(t, app, "/api/auth/roles/assign", assignPayload{
		Email: "ana@bank.test",
		Role:  "Cashier",
	}, adminCred)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// A second identical grant is a conflict.
	resp, _ = postJSON(t, app, "/api/auth/roles/assign", assignPayload{
		Email: "ana@bank.test",
		Role:  "Cashier",
	}, adminCred)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Unknown user and unknown role are not found.
	resp, _ = postJSON(t, app, "/api/auth/roles/assign", assignPayload{
		Email: "ghost@bank.test",
		Role:  "Cashier",
	}, adminCred)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// A non-administrator session is forbidden.
	advisorCred := registerAndLogin(t, app, "leo@bank.test", "Advisor")
	resp, _ = postJSON(t, app, "/api/auth/roles/assign", assignPayload{
		Email: "ana@bank.test",
		Role:  "Cashier",
	}, advisorCred)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCheckRole(t *testing.T) {
	app, _, _ := setupHandler(t)

	adminCred := registerAndLogin(t, app, "root@bank.test", "Administrator")
	_ = registerAndLogin(t, app, "ana@bank.test", "Advisor")

	resp, envelope := getJSON(t, app, "/api/auth/roles/check?email=ana@bank.test&role=Advisor", adminCred)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["has_role"])

	resp, envelope = getJSON(t, app, "/api/auth/roles/check?email=ana@bank.test&role=Cashier", adminCred)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok = envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["has_role"])
}
