// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	// JSONOverrideEnv holds a JSON document merged over the TOML file.
	JSONOverrideEnv = "WHYIDEAS_CONFIG_JSON"

	defaultShutDownTime = 5
	defaultBodyLimit    = 10 * 1024 * 1024
	defaultSQLitePath   = "./whyideas.db"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(JSONOverrideEnv)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	// deployment variables win over both
	if err = applyEnv(&c); err != nil {
		return c, err
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config override")
	}

	return c, nil
}

// Redacted is the placeholder printed instead of a secret.
const Redacted = "********"

// redacted returns a copy of c with the secrets masked.
func redacted(c *Config) Config {
	out := *c

	if out.DB.Password != "" {
		out.DB.Password = Redacted
	}

	if out.Relay.PublicKey != "" {
		out.Relay.PublicKey = Redacted
	}

	return out
}

// DumpConfig config as TOML String. Secrets are masked.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(redacted(c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String. Secrets are masked.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(redacted(c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not start without and fills
// in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.FrontendURL == "*" {
		return errors.Wrap(ErrWildcardOrigin, invalidErrMessage)
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	applyDefaults(c)

	return nil
}

func applyDefaults(c *Config) {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.BodyLimit == 0 {
		c.Webserver.BodyLimit = defaultBodyLimit
	}

	// the frontend is served by this service unless told otherwise
	if c.Webserver.FrontendURL == "" {
		c.Webserver.FrontendURL = c.Webserver.URL
	}

	if c.DB.GormEngine == "" {
		c.DB.GormEngine = EngineSQLite
	}

	if c.DB.GormEngine == EngineSQLite && c.DB.Path == "" {
		c.DB.Path = defaultSQLitePath
	}

	if c.Relay.BaseURL == "" {
		c.Relay.BaseURL = DefaultRelayBaseURL
	}

	if c.Relay.ServiceID == "" {
		c.Relay.ServiceID = DefaultRelayServiceID
	}

	if c.Relay.TemplateID == "" {
		c.Relay.TemplateID = DefaultRelayTemplateID
	}

	if c.Relay.ContactName == "" {
		c.Relay.ContactName = DefaultContactName
	}

	if c.Relay.ContactEmail == "" {
		c.Relay.ContactEmail = DefaultContactEmail
	}

	if c.Title == "" {
		c.Title = "Why Ideas"
	}
}
