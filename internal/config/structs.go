package config

import (
	"time"

	"github.com/GoBancaUno/GoBancaUno/internal/logger"
)

// Auth holds the credential issuing settings.
type Auth struct {
	// TokenSecret is the HMAC signing key for issued credentials.
	TokenSecret string
	// TokenExpiry is the credential validity horizon (default 24h).
	TokenExpiry time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Auth      Auth
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
