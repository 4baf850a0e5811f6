package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/whyideas/whyideas/internal/config"
	fiberlogger "github.com/whyideas/whyideas/internal/logger/adapter/fiber"
	"github.com/whyideas/whyideas/internal/web/handler"
	"github.com/whyideas/whyideas/internal/web/handler/contact"
	"github.com/whyideas/whyideas/internal/web/handler/health"
	"github.com/whyideas/whyideas/internal/web/handler/site"
)

const (
	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"

	corsMethods = "GET,POST"
	corsHeaders = "Content-Type,Authorization"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	log.Info().
		Str("addr", addr).
		Str("frontend", s.cfg.Webserver.FrontendURL).
		Str("environment", string(s.cfg.Environment)).
		Msg("server listening")
	log.Info().Msgf("health check: %s%s", s.cfg.Webserver.URL, health.Path)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and shuts the server down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	grace := time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second

	// Graceful shutdown for reverse proxies: set status to fail, so /health returns 503.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(grace)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		// open connections get the same grace period before being closed
		if err := s.App.ShutdownWithTimeout(grace); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) (*Service, error) {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	templateEngine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimit,
			Views:          templateEngine,
			ErrorHandler:   handler.ErrorHandler(cfg),
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		db:           db,
		fastShutDown: cfg.DevMode,
	}

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log, HealthURI: health.Path}))
	app.Use(helmet.New())
	app.Use(cors.New(corsConfig(cfg)))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	health.Handler.Alive = service.Alive

	for _, h := range []handler.Service{&health.Handler, &contact.Handler, &site.Handler} {
		if err := h.Init(app, cfg, db); err != nil {
			return nil, err
		}
	}

	// everything else
	app.Use(func(*fiber.Ctx) error {
		return handler.ErrRouteNotFound
	})

	service.alive.Store(true)

	return service, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	origin := cfg.Webserver.FrontendURL
	if origin == "" {
		origin = cfg.Webserver.URL
	}

	c := cors.Config{
		AllowOrigins: origin,
		AllowMethods: corsMethods,
		AllowHeaders: corsHeaders,
	}

	// credentials are only allowed with an explicit origin
	if origin != "" {
		c.AllowCredentials = true
	}

	return c
}
