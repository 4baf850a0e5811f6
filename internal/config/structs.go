package config

import (
	"fmt"

	"github.com/whyideas/whyideas/internal/logger"
	"github.com/whyideas/whyideas/internal/relay"
)

// Environment is the runtime environment flag. It decides the default log
// verbosity and whether stack details are echoed in error responses.
type Environment string

const (
	// EnvDevelopment enables stack details in 500 responses.
	EnvDevelopment Environment = "development"
	// EnvProduction hides internal error details from clients.
	EnvProduction Environment = "production"
	// EnvTest is used by the test suites.
	EnvTest Environment = "test"
)

// Config overall data structure.
type Config struct {
	DevMode     bool        // enable dev mode for development
	Environment Environment `validate:"omitempty,oneof=development production test"`
	DB          DB
	Log         logger.Log
	Title       string
	Webserver   Webserver
	Relay       Relay
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool   // enable static file browsing (for development purposes only)
	DisableRecover bool   // disable recover middleware
	Port           int    `validate:"min=0,max=65535"` // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	FrontendURL    string `validate:"omitempty,url"` // allowed CORS origin
	BodyLimit      int    // max request body size in bytes
}

// Relay holds the transactional email relay settings.
type Relay struct {
	BaseURL      string `validate:"omitempty,url"`
	ServiceID    string
	TemplateID   string
	PublicKey    string
	ContactName  string
	ContactEmail string `validate:"omitempty,email"`
}

// ClientConfig returns the relay client settings.
func (r Relay) ClientConfig() relay.Config {
	return relay.Config{
		BaseURL:    r.BaseURL,
		ServiceID:  r.ServiceID,
		TemplateID: r.TemplateID,
		PublicKey:  r.PublicKey,
		ToName:     r.ContactName,
		ToEmail:    r.ContactEmail,
	}
}

// IsProduction reports whether the runtime environment is production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// ListenAddr returns the address the webserver binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Webserver.Port)
}
