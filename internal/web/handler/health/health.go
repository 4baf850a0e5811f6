// Package health provides the liveness endpoint.
package health

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/whyideas/whyideas/internal/config"
	"github.com/whyideas/whyideas/internal/web/handler"
)

const (
	// Path is the path of the health endpoint.
	Path = handler.RootPath + "health"

	// ServiceName is reported in every health answer.
	ServiceName = "Why Ideas API"

	statusOK       = "OK"
	statusDraining = "SHUTTING_DOWN"
)

// Status is the health response body.
type Status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// Service is the health handler service.
type Service struct {
	handler.Service

	// Alive reports false while the server drains before shutdown.
	// Nil means always alive.
	Alive func() bool
}

// Handler is the health handler.
var Handler = Service{}

// Init registers the health route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *gorm.DB) error {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	app.Get(Path, s.Get)

	return nil
}

// Get answers 200 while serving and 503 while draining.
func (s *Service) Get(c *fiber.Ctx) error {
	out := Status{
		Status:    statusOK,
		Timestamp: time.Now().UTC(),
		Service:   ServiceName,
	}

	if s.Alive != nil && !s.Alive() {
		out.Status = statusDraining
		return c.Status(fiber.StatusServiceUnavailable).JSON(out)
	}

	return c.JSON(out)
}
