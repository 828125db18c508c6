package auth

import (
	"github.com/alexedwards/argon2id"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/principal"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/role"
	"github.com/GoBancaUno/GoBancaUno/internal/db/controller/rolebinding"
	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
	"github.com/GoBancaUno/GoBancaUno/internal/token"
)

// dummyHash is compared against when the email does not resolve to an
// account, so a lookup miss costs the same as a password mismatch.
var dummyHash = models.HashPassword("dummy-timing-equalizer")

// Service authenticates principals and mints role-scoped session credentials.
type Service struct {
	db     *gorm.DB
	issuer *token.Issuer
}

// NewService returns an authentication service over the given database and
// credential issuer.
func NewService(db *gorm.DB, issuer *token.Issuer) *Service {
	return &Service{db: db, issuer: issuer}
}

// Verify returns the credential verifier middleware bound to this service's
// database and issuer.
func (s *Service) Verify() fiber.Handler {
	return Middleware(s.db, s.issuer)
}

// Result is a successful authentication: the signed credential plus the
// identity it was minted for.
type Result struct {
	Credential string
	User       *models.User
	Role       *models.Role
	BindingID  uint64
}

// Authenticate checks an email/password pair and opens a session in the
// requested role. If the principal holds no binding for that role yet, one is
// created as part of this call; the credential always embeds the binding that
// was found or created.
func (s *Service) Authenticate(email, password, roleName string) (*Result, error) {
	user, err := principal.ByEmail(s.db, email)
	if err != nil {
		if errors.Is(err, principal.ErrUserNotFound) || errors.Is(err, principal.ErrEmailEmpty) {
			// Burn a hash comparison so the miss is not observable by timing.
			_, _ = argon2id.ComparePasswordAndHash(password, dummyHash)

			return nil, ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "looking up principal")
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrAccountInactive
	}

	r, err := role.ByName(s.db, roleName)
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) || errors.Is(err, role.ErrRoleNameEmpty) {
			return nil, ErrUnknownRole
		}

		return nil, errors.Wrap(err, "looking up role")
	}

	binding, err := rolebinding.GetOrCreate(s.db, user.ID, r.ID)
	if err != nil {
		return nil, errors.Wrap(err, "provisioning role binding")
	}

	credential, err := s.issuer.Issue(user.ID, user.Email, r.Name, binding.ID)
	if err != nil {
		return nil, errors.Wrap(err, "issuing credential")
	}

	log.Debug().
		Str("email", user.Email).
		Str("role", r.Name).
		Uint64("binding_id", binding.ID).
		Msg("session opened")

	return &Result{
		Credential: credential,
		User:       user,
		Role:       r,
		BindingID:  binding.ID,
	}, nil
}
