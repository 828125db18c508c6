package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/role"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/rolebinding"
	"github.com/GoBancaUno/GoBancaUno/internal/token"
)

const bearerPrefix = "Bearer "

// Middleware verifies the bearer credential on every protected request and
// attaches the decoded PrincipalInRole to the request context.
//
// Current-format credentials carry the binding id and are trusted directly
// with no directory round trip. Legacy credentials predate the binding id; for
// those the directory is consulted once, which also means a revoked grant
// invalidates a legacy credential but not a current one until it expires.
func Middleware(db *gorm.DB, issuer *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return fiber.NewError(fiber.StatusUnauthorized, ErrMissingCredential.Error())
		}

		claims, err := issuer.Parse(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			// Expired and malformed map to the same status but are told apart
			// in the log.
			log.Debug().Err(err).Str("path", c.Path()).Msg("credential rejected")

			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		p := PrincipalInRole{
			PrincipalID: claims.PrincipalID,
			Email:       claims.Email,
			Role:        claims.Role,
			BindingID:   claims.BindingID,
		}

		if p.BindingID == 0 {
			binding, err := resolveLegacyBinding(db, claims)
			if err != nil {
				if errors.Is(err, ErrRoleNotGranted) {
					return fiber.NewError(fiber.StatusUnauthorized, err.Error())
				}

				log.Error().Err(err).Msg("legacy credential lookup failed")

				return fiber.ErrInternalServerError
			}

			p.BindingID = binding
		}

		store(c, p)

		return c.Next()
	}
}

// resolveLegacyBinding re-validates a legacy credential against the
// directory and returns the binding id for the (principal, role) pair.
func resolveLegacyBinding(db *gorm.DB, claims *token.Claims) (uint64, error) {
	r, err := role.ByName(db, claims.Role)
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) || errors.Is(err, role.ErrRoleNameEmpty) {
			return 0, ErrRoleNotGranted
		}

		return 0, err
	}

	binding, err := rolebinding.Find(db, claims.PrincipalID, r.ID)
	if err != nil {
		if errors.Is(err, rolebinding.ErrBindingNotFound) {
			return 0, ErrRoleNotGranted
		}

		return 0, err
	}

	return binding.ID, nil
}

// RequireAnyRole rejects the request unless the session role is one of the
// allowed roles. Pure in-memory check; must run after Middleware.
func RequireAnyRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := FromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, ErrMissingCredential.Error())
		}

		for _, allowed := range roles {
			if SameRole(p.Role, allowed) {
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, ErrForbidden.Error())
	}
}
