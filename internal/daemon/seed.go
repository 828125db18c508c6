package daemon

import (
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/auth"
	"github.com/GoBancaUno/GoBancaUno/internal/config"
	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
)

// roleDescriptions documents the seeded catalog. Role names are fixed; the
// directory is never written to outside this seed and the binding table.
var roleDescriptions = map[string]string{
	auth.RoleAdvisor:            "Captures client data and submits account-opening requests",
	auth.RoleOperationsDirector: "Reviews and resolves pending account-opening requests",
	auth.RoleAdministrator:      "Manages staff accounts and role grants",
	auth.RoleCashier:            "Teller operations",
}

func seed(_ *config.Config, db *gorm.DB) {
	// Seed the role catalog if the table is empty.
	var count int64

	db.Model(&models.Role{}).Count(&count)
	if count == 0 {
		for _, name := range auth.Catalog() {
			db.Create(&models.Role{
				Name:        name,
				Description: roleDescriptions[name],
			})
		}
	}

	// Create a bootstrap administrator when no user exists yet.
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		db.Create(
			&models.User{
				Name:     "Administrator",
				Email:    "admin@localhost",
				Password: models.HashPassword("changeme"),
				Active:   true,
			},
		)
	}
}
