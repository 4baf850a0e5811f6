package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Relay defaults used when neither the TOML file nor the environment sets them.
const (
	DefaultRelayBaseURL    = "https://api.emailjs.com"
	DefaultRelayServiceID  = "service_efhq8ng"
	DefaultRelayTemplateID = "template_contact"
	DefaultContactName     = "Why Ideas Team"
	DefaultContactEmail    = "contact@whyideas.com"
)

// EnvPrefix is the prefix of the deployment variables. Every variable is also
// read without the prefix, e.g. WHYIDEAS_PORT or PORT.
const EnvPrefix = "WHYIDEAS"

// deployment holds the variables a container platform usually injects.
type deployment struct {
	FrontendURL  string `envconfig:"FRONTEND_URL"`
	Port         int    `envconfig:"PORT"`
	Environment  string `envconfig:"ENVIRONMENT"`
	NodeEnv      string `envconfig:"NODE_ENV"`
	TemplateID   string `envconfig:"EMAILJS_TEMPLATE_ID"`
	PublicKey    string `envconfig:"EMAILJS_PUBLIC_KEY"`
	ContactEmail string `envconfig:"CONTACT_EMAIL"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
}

func applyEnv(c *Config) error {
	var d deployment

	if err := envconfig.Process(EnvPrefix, &d); err != nil {
		return errors.Wrap(err, "failed to process environment variables")
	}

	if d.FrontendURL != "" {
		c.Webserver.FrontendURL = d.FrontendURL
	}

	if d.Port != 0 {
		c.Webserver.Port = d.Port
	}

	// ENVIRONMENT wins over NODE_ENV.
	switch {
	case d.Environment != "":
		c.Environment = Environment(d.Environment)
	case d.NodeEnv != "":
		c.Environment = Environment(d.NodeEnv)
	}

	if d.TemplateID != "" {
		c.Relay.TemplateID = d.TemplateID
	}

	if d.PublicKey != "" {
		c.Relay.PublicKey = d.PublicKey
	}

	if d.ContactEmail != "" {
		c.Relay.ContactEmail = d.ContactEmail
	}

	if d.LogLevel != "" {
		c.Log.LogLevel = d.LogLevel
	}

	return nil
}
