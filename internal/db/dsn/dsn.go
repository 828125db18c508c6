// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/GoBancaUno/GoBancaUno/internal/config"
)

// Create builds the Data Source Name from the configuration for the
// configured gorm engine.
func Create(cfg *config.Config) string {
	if cfg.DB.GormEngine == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d %s",
			cfg.DB.Host,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
			cfg.DB.Port,
			cfg.DB.Extras,
		)
	}

	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		cfg.DB.Extras,
	)

	return out
}
