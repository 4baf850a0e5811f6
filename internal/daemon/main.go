// Package daemon wires the store, the logger and the web service together.
package daemon

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/whyideas/whyideas/internal/config"
	"github.com/whyideas/whyideas/internal/db/dsn"
	"github.com/whyideas/whyideas/internal/db/models"
	"github.com/whyideas/whyideas/internal/logger"
	"github.com/whyideas/whyideas/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(d.cfg.ListenAddr())
}

// Dialector returns the gorm dialector of the configured engine.
func Dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return gormmysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg))
	default:
		return sqlite.Open(dsn.Create(cfg))
	}
}

// OpenDB connects to the configured store and migrates the schema.
// Timestamps are written in UTC.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(cfg), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Contact{},
		&models.Setting{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	cfg.Log.LogLevel = cfg.Log.LevelFor(string(cfg.Environment))
	if err := logger.Init(cfg.Log); err != nil {
		return nil, err
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("database ready")

	webService, err := web.New(cfg, db)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		webService: webService,
	}, nil
}
