// Package auth covers session authentication: it mints role-scoped
// credentials at login, verifies them on every protected request, and exposes
// the resulting principal-in-role to handlers.
package auth

import "github.com/GoBancaUno/GoBancaUno/internal/db/controller/role"

// Canonical role names. The role directory is seeded with exactly these;
// comparisons always go through role.Normalize so request input may vary in
// case and separators.
const (
	RoleAdvisor            = "Advisor"
	RoleOperationsDirector = "Operations-Director"
	RoleAdministrator      = "Administrator"
	RoleCashier            = "Cashier"
)

// Catalog lists every role the system knows, in seed order.
func Catalog() []string {
	return []string{
		RoleAdvisor,
		RoleOperationsDirector,
		RoleAdministrator,
		RoleCashier,
	}
}

// SameRole reports whether two role names refer to the same role.
func SameRole(a, b string) bool {
	return role.Normalize(a) == role.Normalize(b)
}
