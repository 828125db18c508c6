// Package principal provides CRUD operations for managing user accounts.
package principal

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
)

const (
	emailQueryPattern = "email = ?"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailEmpty is returned when attempting an operation with an empty email.
	ErrEmailEmpty = errors.New("user email cannot be empty")
	// ErrNameEmpty is returned when attempting to register a user with an empty name.
	ErrNameEmpty = errors.New("user name cannot be empty")
	// ErrPasswordEmpty is returned when attempting to register a user with an empty password.
	ErrPasswordEmpty = errors.New("user password cannot be empty")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// NormalizeEmail lowercases and trims an email address. All storage and
// lookups go through this so the same mailbox cannot register twice with
// different casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account with a hashed password. The account is
// created active and carries no role grants.
func Register(db *gorm.DB, name, email, password string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameEmpty
	}
	if password == "" {
		return nil, ErrPasswordEmpty
	}

	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailEmpty
	}

	var existing models.User
	result := db.Where(emailQueryPattern, email).First(&existing)
	if result.Error == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	user := &models.User{
		Active:   true,
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: models.HashPassword(password),
	}

	result = db.Create(user)
	if result.Error != nil {
		return nil, result.Error
	}

	return user, nil
}

// ByEmail retrieves a user by email address.
func ByEmail(db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailEmpty
	}

	var user models.User
	result := db.Where(emailQueryPattern, email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// ByID retrieves a user by its ID.
func ByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	result := db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// All retrieves all user accounts.
func All(db *gorm.DB) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User
	result := db.Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// SetActive enables or disables a user account. Disabled accounts keep their
// role grants but cannot open new sessions.
func SetActive(db *gorm.DB, id uint64, active bool) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.User{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
