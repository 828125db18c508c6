// Package administration exposes back-office endpoints under /api/admin:
// account listing, enabling and disabling accounts, and the administrative
// request delete that sits outside the normal lifecycle.
package administration

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/auth"
	"github.com/GoBancaUno/GoBancaUno/internal/config"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/principal"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/request"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/rolebinding"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler"
)

const (
	// Path is the base path of the administration endpoints.
	Path = "/api/admin"
)

// Service is the administration handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the administration handler.
var Handler = Service{}

// activePayload is the body of an account enable/disable call.
type activePayload struct {
	Active bool `json:"active"`
}

// userEntry is an account listing row with its granted roles.
type userEntry struct {
	ID     uint64   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Active bool     `json:"active"`
	Roles  []string `json:"roles"`
}

// Init initializes the administration handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Use(authService.Verify(), auth.RequireAnyRole(auth.RoleAdministrator))

		router.Get("/users", s.Users)
		router.Put("/users/:id/active", s.SetActive)
		router.Delete("/requests/:id", s.DeleteRequest)
	})

	return nil
}

// Users lists every staff account with its granted roles.
func (s *Service) Users(c *fiber.Ctx) error {
	users, err := principal.All(s.db)
	if err != nil {
		log.Error().Err(err).Msg("user listing failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "user listing failed")
	}

	entries := make([]userEntry, 0, len(users))
	for _, u := range users {
		roles, err := rolebinding.RolesOf(s.db, u.ID)
		if err != nil {
			log.Error().Err(err).Msg("role lookup failed")

			return handler.Fail(c, fiber.StatusInternalServerError, "user listing failed")
		}

		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}

		entries = append(entries, userEntry{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Active: u.Active,
			Roles:  names,
		})
	}

	return handler.OK(c, "staff accounts", entries)
}

// SetActive enables or disables an account. Disabled accounts keep their
// grants but cannot open new sessions.
func (s *Service) SetActive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid user id")
	}

	payload := new(activePayload)
	if err := c.BodyParser(payload); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	err = principal.SetActive(s.db, uint64(id), payload.Active)
	switch {
	case err == nil:
	case errors.Is(err, principal.ErrUserNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "user not found")
	default:
		log.Error().Err(err).Msg("account update failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "account update failed")
	}

	// Echo the stored row rather than the payload.
	stored, err := principal.ByID(s.db, uint64(id))
	if err != nil {
		log.Error().Err(err).Msg("account read failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "account update failed")
	}

	return handler.OK(c, "account updated", fiber.Map{
		"id":     stored.ID,
		"name":   stored.Name,
		"email":  stored.Email,
		"active": stored.Active,
	})
}

// DeleteRequest removes an account request outright. This is an escape hatch
// for bad data, not a lifecycle transition.
func (s *Service) DeleteRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request id")
	}

	err = request.Delete(s.db, uint64(id))
	switch {
	case err == nil:
	case errors.Is(err, request.ErrRequestNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "request not found")
	default:
		log.Error().Err(err).Msg("request delete failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "request delete failed")
	}

	p, _ := auth.FromContext(c)
	log.Warn().
		Int("request_id", id).
		Str("admin", p.Email).
		Msg("account request deleted")

	return handler.OK(c, "request deleted", fiber.Map{"id": id})
}
