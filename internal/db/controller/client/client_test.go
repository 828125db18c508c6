package client

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Client{}, &models.ContactProfile{}, &models.EconomicActivity{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedClient(t *testing.T, db *gorm.DB) models.Client {
	t.Helper()

	c := models.Client{
		DocumentNumber: "0801-1990-12345",
		DocumentType:   "ID",
		FirstName:      "Maria",
		LastName:       "Lopez",
	}
	require.NoError(t, db.Create(&c).Error)

	return c
}

func TestByDocument(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedClient(t, db)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		document      string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			document:      seeded.DocumentNumber,
			expectedError: ErrDBNil,
		},
		{
			name:          "empty document",
			dbParam:       db,
			document:      "   ",
			expectedError: ErrDocumentEmpty,
		},
		{
			name:          "unknown document",
			dbParam:       db,
			document:      "0000-0000-00000",
			expectedError: ErrClientNotFound,
		},
		{
			name:     "found",
			dbParam:  db,
			document: seeded.DocumentNumber,
		},
		{
			name:     "surrounding whitespace trimmed",
			dbParam:  db,
			document: " " + seeded.DocumentNumber + " ",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ByDocument(tc.dbParam, tc.document)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, c)
			} else {
				require.NoError(t, err)
				assert.Equal(t, seeded.ID, c.ID)
			}
		})
	}
}

func TestDetailByID(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedClient(t, db)

	// Without side rows.
	detail, err := DetailByID(db, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, detail.Client.ID)
	assert.Nil(t, detail.Contact)
	assert.Nil(t, detail.Economic)

	require.NoError(t, db.Create(&models.ContactProfile{
		ClientID: seeded.ID,
		Email:    "maria@example.test",
		Phone:    "555-0101",
	}).Error)
	require.NoError(t, db.Create(&models.EconomicActivity{
		ClientID:   seeded.ID,
		Occupation: "Merchant",
	}).Error)

	detail, err = DetailByID(db, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Contact)
	require.NotNil(t, detail.Economic)
	assert.Equal(t, "maria@example.test", detail.Contact.Email)
	assert.Equal(t, "Merchant", detail.Economic.Occupation)

	_, err = DetailByID(db, 999)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
