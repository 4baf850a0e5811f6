// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"

	"github.com/whyideas/whyideas/internal/config"
)

// Create builds the Data Source Name for the configured engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return MySQL(cfg)
	case config.EnginePostgres:
		return Postgres(cfg)
	default:
		return SQLite(cfg)
	}
}

// MySQL builds a go-sql-driver/mysql DSN.
func MySQL(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		cfg.DB.Extras,
	)
}

// Postgres builds a postgres URL. Extras is appended as the query string.
func Postgres(cfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DB.User, cfg.DB.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.DB.Host, cfg.DB.Port),
		Path:     "/" + cfg.DB.Name,
		RawQuery: cfg.DB.Extras,
	}

	return u.String()
}

// SQLite returns the database file path. Foreign keys are switched on.
func SQLite(cfg *config.Config) string {
	return cfg.DB.Path + "?_pragma=foreign_keys(1)"
}
