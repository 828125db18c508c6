// Package rolebinding manages the user-role grant table.
//
// A binding records that a user holds a role. Bindings are created lazily the
// first time a user opens a session in a role they were granted, and every
// downstream action is attributed to a binding rather than to the bare user.
package rolebinding

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
)

const (
	pairQueryPattern = "user_id = ? AND role_id = ?"
)

var (
	// ErrBindingNotFound is returned when no binding exists for the pair.
	ErrBindingNotFound = errors.New("role binding not found")
	// ErrAlreadyGranted is returned when the user already holds the role.
	ErrAlreadyGranted = errors.New("role already granted")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Find retrieves the binding for a user/role pair.
func Find(db *gorm.DB, userID uint64, roleID uint) (*models.UserRole, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var binding models.UserRole
	result := db.Where(pairQueryPattern, userID, roleID).First(&binding)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBindingNotFound
		}
		return nil, result.Error
	}

	return &binding, nil
}

// GetOrCreate returns the binding for a user/role pair, creating it if it
// does not exist yet. Two sessions racing on the same pair both end up with
// the same row: the unique index makes the second insert fail, after which
// the lookup is retried.
func GetOrCreate(db *gorm.DB, userID uint64, roleID uint) (*models.UserRole, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	binding, err := Find(db, userID, roleID)
	if err == nil {
		return binding, nil
	}
	if !errors.Is(err, ErrBindingNotFound) {
		return nil, err
	}

	created := &models.UserRole{UserID: userID, RoleID: roleID}
	if result := db.Create(created); result.Error != nil {
		// Lost the race or hit a constraint. Either way a concurrent insert
		// is the only way the pair can now exist, so try the lookup again
		// and only then report the original failure.
		if existing, findErr := Find(db, userID, roleID); findErr == nil {
			return existing, nil
		}

		return nil, result.Error
	}

	return created, nil
}

// Assign grants a role to a user, failing if the user already holds it. This
// is the administrative path; session login uses GetOrCreate instead.
func Assign(db *gorm.DB, userID uint64, roleID uint) (*models.UserRole, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := Find(db, userID, roleID); err == nil {
		return nil, ErrAlreadyGranted
	} else if !errors.Is(err, ErrBindingNotFound) {
		return nil, err
	}

	binding := &models.UserRole{UserID: userID, RoleID: roleID}
	if result := db.Create(binding); result.Error != nil {
		// A concurrent identical grant can land between the check and the
		// insert. The unique index decides; when the pair exists now, the
		// grant was simply already made.
		if _, findErr := Find(db, userID, roleID); findErr == nil {
			return nil, ErrAlreadyGranted
		}

		return nil, result.Error
	}

	return binding, nil
}

// RolesOf retrieves every role granted to a user.
func RolesOf(db *gorm.DB, userID uint64) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	result := db.
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.id").
		Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// HasRole reports whether the user holds the role.
func HasRole(db *gorm.DB, userID uint64, roleID uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.Model(&models.UserRole{}).Where(pairQueryPattern, userID, roleID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// ByID retrieves a binding by its ID with the user and role preloaded.
func ByID(db *gorm.DB, id uint64) (*models.UserRole, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var binding models.UserRole
	result := db.Preload("User").Preload("Role").First(&binding, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBindingNotFound
		}
		return nil, result.Error
	}

	return &binding, nil
}
