// Package client provides lookups over bank clients and their side tables.
package client

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
)

var (
	// ErrClientNotFound is returned when a client is not found.
	ErrClientNotFound = errors.New("client not found")
	// ErrDocumentEmpty is returned when attempting a lookup with an empty document number.
	ErrDocumentEmpty = errors.New("document number cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Detail bundles a client with its read-side joins. The side tables only
// matter for display; the request lifecycle references the client row alone.
type Detail struct {
	Client   models.Client
	Contact  *models.ContactProfile
	Economic *models.EconomicActivity
}

// ByDocument retrieves a client by national document number.
func ByDocument(db *gorm.DB, documentNumber string) (*models.Client, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	documentNumber = strings.TrimSpace(documentNumber)
	if documentNumber == "" {
		return nil, ErrDocumentEmpty
	}

	var c models.Client
	result := db.Where("document_number = ?", documentNumber).First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, result.Error
	}

	return &c, nil
}

// ByID retrieves a client by its ID.
func ByID(db *gorm.DB, id uint64) (*models.Client, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Client
	result := db.First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, result.Error
	}

	return &c, nil
}

// DetailByID retrieves a client together with its contact profile and
// economic activity. Missing side rows are returned as nil, not as errors.
func DetailByID(db *gorm.DB, id uint64) (*Detail, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	c, err := ByID(db, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Client: *c}

	var contact models.ContactProfile
	result := db.Where("client_id = ?", id).First(&contact)
	switch {
	case result.Error == nil:
		detail.Contact = &contact
	case !errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, result.Error
	}

	var economic models.EconomicActivity
	result = db.Where("client_id = ?", id).First(&economic)
	switch {
	case result.Error == nil:
		detail.Economic = &economic
	case !errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, result.Error
	}

	return detail, nil
}
