// Package daemon opens the database, migrates and seeds the schema, and runs
// the web service.
package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/config"
	"github.com/GoBancaUno/GoBancaUno/internal/db/dsn"
	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
	"github.com/GoBancaUno/GoBancaUno/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg))
	if cfg.DB.GormEngine == "postgres" {
		dbDriver = gormpostgres.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Client{},
		&models.ContactProfile{},
		&models.EconomicActivity{},
		&models.AccountRequest{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}
