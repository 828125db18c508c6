package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/config"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	cfg := &config.Config{}
	cfg.Auth.TokenSecret = "web-test-secret"
	cfg.Auth.TokenExpiry = time.Hour

	return New(cfg, db)
}

func TestHealthzDrain(t *testing.T) {
	service := setupService(t)

	resp, err := service.App.Test(httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The drain phase of a shutdown flips the flag on this same instance.
	// The health check must start failing so the LB stops routing here.
	service.alive.Store(false)

	resp, err = service.App.Test(httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestNewNilArguments(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil) })
}
