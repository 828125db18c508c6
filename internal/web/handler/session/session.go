// Package session exposes registration, login and role directory endpoints
// under /api/auth.
package session

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/auth"
	"github.com/GoBancaUno/GoBancaUno/internal/config"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/principal"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/role"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/rolebinding"
	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler"
)

const (
	// Path is the base path of the session endpoints.
	Path = "/api/auth"
)

// Service is the session handler service.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the session handler.
var Handler = Service{}

var validate = validator.New()

// Init initializes the session handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService

	app.Route(Path, func(router fiber.Router) {
		router.Post("/register", s.Register)
		router.Post("/login", s.Login)
		router.Get("/roles", s.AllRoles)
		router.Get("/email-available", s.EmailAvailable)

		verified := router.Group("", authService.Verify())
		verified.Get("/me/roles", s.MyRoles)

		admin := verified.Group("", auth.RequireAnyRole(auth.RoleAdministrator))
		admin.Post("/roles/assign", s.AssignRole)
		admin.Get("/roles/check", s.CheckRole)
	})

	return nil
}

// Register creates a new staff account. The account starts without any role
// grants; those arrive through an administrator or through first login in a
// role that was assigned out of band.
func (s *Service) Register(c *fiber.Ctx) error {
	payload := new(registerPayload)
	if err := c.BodyParser(payload); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := validate.Struct(payload); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := principal.Register(s.db, payload.Name, payload.Email, payload.Password)
	switch {
	case err == nil:
	case errors.Is(err, principal.ErrEmailTaken):
		return handler.Fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, principal.ErrNameEmpty),
		errors.Is(err, principal.ErrEmailEmpty),
		errors.Is(err, principal.ErrPasswordEmpty):
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("registration failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "registration failed")
	}

	return handler.Created(c, "account registered", viewOf(user))
}

// Login authenticates an email/password pair in a requested role and returns
// the session credential.
func (s *Service) Login(c *fiber.Ctx) error {
	payload := new(loginPayload)
	if err := c.BodyParser(payload); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := validate.Struct(payload); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := s.authService.Authenticate(payload.Email, payload.Password, payload.Role)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrAccountInactive):
		return handler.Fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUnknownRole):
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("login failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "login failed")
	}

	return handler.OK(c, "session opened", loginView{
		Token:     result.Credential,
		User:      viewOf(result.User),
		Role:      result.Role.Name,
		BindingID: result.BindingID,
	})
}

// EmailAvailable reports whether an email can still be registered. The
// registration form probes this before submitting.
func (s *Service) EmailAvailable(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "email query parameter is required")
	}

	_, err := principal.ByEmail(s.db, email)
	switch {
	case err == nil:
		return handler.OK(c, "email check", fiber.Map{"available": false})
	case errors.Is(err, principal.ErrUserNotFound):
		return handler.OK(c, "email check", fiber.Map{"available": true})
	case errors.Is(err, principal.ErrEmailEmpty):
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("email check failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "email check failed")
	}
}

// AllRoles returns the full role catalog.
func (s *Service) AllRoles(c *fiber.Ctx) error {
	roles, err := role.All(s.db)
	if err != nil {
		log.Error().Err(err).Msg("role catalog read failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "role catalog unavailable")
	}

	views := make([]roleView, 0, len(roles))
	for _, r := range roles {
		views = append(views, roleView{ID: r.ID, Name: r.Name, Description: r.Description})
	}

	return handler.OK(c, "role catalog", views)
}

// MyRoles returns the roles already bound to the calling principal.
func (s *Service) MyRoles(c *fiber.Ctx) error {
	p, ok := auth.FromContext(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, auth.ErrMissingCredential.Error())
	}

	roles, err := rolebinding.RolesOf(s.db, p.PrincipalID)
	if err != nil {
		log.Error().Err(err).Msg("role lookup failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "role lookup failed")
	}

	views := make([]roleView, 0, len(roles))
	for _, r := range roles {
		views = append(views, roleView{ID: r.ID, Name: r.Name, Description: r.Description})
	}

	return handler.OK(c, "granted roles", views)
}

// AssignRole grants a role to a user by email. Unlike the lazy provisioning
// at login, an explicit grant of an already-held role is a conflict.
func (s *Service) AssignRole(c *fiber.Ctx) error {
	payload := new(assignPayload)
	if err := c.BodyParser(payload); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := validate.Struct(payload); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	user, r, failed := s.resolvePair(c, payload.Email, payload.Role)
	if user == nil {
		return failed
	}

	binding, err := rolebinding.Assign(s.db, user.ID, r.ID)
	switch {
	case err == nil:
	case errors.Is(err, rolebinding.ErrAlreadyGranted):
		return handler.Fail(c, fiber.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("role grant failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "role grant failed")
	}

	return handler.Created(c, "role granted", fiber.Map{
		"binding_id": binding.ID,
		"email":      user.Email,
		"role":       r.Name,
	})
}

// CheckRole reports whether a user holds a role.
func (s *Service) CheckRole(c *fiber.Ctx) error {
	user, r, failed := s.resolvePair(c, c.Query("email"), c.Query("role"))
	if user == nil {
		return failed
	}

	has, err := rolebinding.HasRole(s.db, user.ID, r.ID)
	if err != nil {
		log.Error().Err(err).Msg("role check failed")

		return handler.Fail(c, fiber.StatusInternalServerError, "role check failed")
	}

	return handler.OK(c, "role check", fiber.Map{"has_role": has})
}

// resolvePair maps an (email, role name) pair to rows. On failure it writes
// the error response itself and returns a nil user; the caller propagates the
// returned write result.
func (s *Service) resolvePair(c *fiber.Ctx, email, roleName string) (*models.User, *models.Role, error) {
	user, err := principal.ByEmail(s.db, email)
	switch {
	case err == nil:
	case errors.Is(err, principal.ErrUserNotFound), errors.Is(err, principal.ErrEmailEmpty):
		return nil, nil, handler.Fail(c, fiber.StatusNotFound, "user not found")
	default:
		log.Error().Err(err).Msg("user lookup failed")

		return nil, nil, handler.Fail(c, fiber.StatusInternalServerError, "user lookup failed")
	}

	r, err := role.ByName(s.db, roleName)
	switch {
	case err == nil:
	case errors.Is(err, role.ErrRoleNotFound), errors.Is(err, role.ErrRoleNameEmpty):
		return nil, nil, handler.Fail(c, fiber.StatusNotFound, "role not found")
	default:
		log.Error().Err(err).Msg("role lookup failed")

		return nil, nil, handler.Fail(c, fiber.StatusInternalServerError, "role lookup failed")
	}

	return user, r, nil
}

func viewOf(user *models.User) userView {
	return userView{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Active: user.Active,
	}
}
