// Package web assembles the fiber application: middleware, health and
// metrics endpoints, and the API handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/auth"
	"github.com/GoBancaUno/GoBancaUno/internal/config"
	fiberlogger "github.com/GoBancaUno/GoBancaUno/internal/logger/adapter/fiber"
	"github.com/GoBancaUno/GoBancaUno/internal/token"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler/administration"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler/advisor"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler/director"
	"github.com/GoBancaUno/GoBancaUno/internal/web/handler/session"
)

const (
	// CheckAlivePath is the health endpoint used by load balancers.
	CheckAlivePath = "/healthz"

	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and stops the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: fail the health check first so
	// the LB drains this instance before the listener goes away.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 for %d seconds to let the LB remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "GoBancaUno",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access log
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	issuer := token.NewIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiry)
	authService := auth.NewService(db, issuer)

	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendStatus(fiber.StatusOK)
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes with role checks)
	if err := session.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("session handler init failed")
	}

	if err := advisor.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("advisor handler init failed")
	}

	if err := director.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("director handler init failed")
	}

	if err := administration.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("administration handler init failed")
	}

	return service
}
