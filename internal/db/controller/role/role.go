// Package role provides read operations over the role directory.
//
// The directory is seeded at startup and treated as a fixed catalog; roles
// are matched case-insensitively and separator-insensitively so that
// "operations director" and "Operations-Director" name the same role.
package role

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
)

var (
	// ErrRoleNotFound is returned when a role is not found in the directory.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when attempting a lookup with an empty role name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Normalize folds a role name for comparison: lowercased, with spaces and
// underscores treated as hyphens.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")

	return name
}

// All retrieves the full role directory.
func All(db *gorm.DB) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	result := db.Order("id").Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// ByName retrieves a role by name, matching under Normalize. The directory is
// small so the comparison is done in memory rather than with collation tricks
// in SQL.
func ByName(db *gorm.DB, name string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrRoleNameEmpty
	}

	roles, err := All(db)
	if err != nil {
		return nil, err
	}

	want := Normalize(name)
	for i := range roles {
		if Normalize(roles[i].Name) == want {
			return &roles[i], nil
		}
	}

	return nil, ErrRoleNotFound
}
