package models

import (
	"strings"
	"time"
)

// Client represents a bank client an account can be opened for.
// Clients are reference data maintained outside this service; the
// workflow only reads them.
type Client struct {
	// ID is the unique identifier for the client.
	ID uint64 `gorm:"primaryKey"`
	// DocumentNumber is the national identity document number.
	DocumentNumber string `gorm:"unique;size:50;not null"`
	// DocumentType is the identity document type (e.g. "CC", "Passport").
	DocumentType string `gorm:"size:50;not null"`
	// FirstName is the client's first given name.
	FirstName string `gorm:"size:100;not null"`
	// MiddleName is the client's second given name, if any.
	MiddleName string `gorm:"size:100"`
	// LastName is the client's first family name.
	LastName string `gorm:"size:100;not null"`
	// SecondLastName is the client's second family name, if any.
	SecondLastName string `gorm:"size:100"`
	// BirthDate is the client's date of birth.
	BirthDate time.Time
	// Gender is the client's registered gender.
	Gender string `gorm:"size:20"`
	// Nationality is the client's nationality.
	Nationality string `gorm:"size:100"`
	// MaritalStatus is the client's civil status.
	MaritalStatus string `gorm:"size:50"`
	// CreatedAt is the timestamp when the client record was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Client model.
func (Client) TableName() string {
	return "clients"
}

// FullName joins the non-empty name parts with single spaces.
func (c *Client) FullName() string {
	parts := make([]string, 0, 4) //nolint:mnd
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName, c.SecondLastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, " ")
}
