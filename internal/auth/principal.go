package auth

import "github.com/gofiber/fiber/v2"

// localsKey is the fiber locals slot carrying the authorized principal.
const localsKey = "auth.principal"

// PrincipalInRole is the canonical in-memory actor reference: one principal
// acting in one role under one binding. Both credential formats decode into
// this value at the verifier boundary, so downstream code never branches on
// format. BindingID is zero only for legacy credentials, whose binding was
// re-validated against the directory during verification.
type PrincipalInRole struct {
	PrincipalID uint64
	Email       string
	Role        string
	BindingID   uint64
}

// store attaches the principal to the request context.
func store(c *fiber.Ctx, p PrincipalInRole) {
	c.Locals(localsKey, p)
}

// FromContext returns the principal attached by the verifier middleware. The
// second return is false on unprotected routes.
func FromContext(c *fiber.Ctx) (PrincipalInRole, bool) {
	p, ok := c.Locals(localsKey).(PrincipalInRole)

	return p, ok
}
