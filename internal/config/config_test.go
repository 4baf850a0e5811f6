package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(testConfigPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.NotEmpty(t, cfg.Webserver.FrontendURL)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.Equal(t, DefaultRelayServiceID, cfg.Relay.ServiceID)
	assert.Equal(t, DefaultRelayTemplateID, cfg.Relay.TemplateID)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	require.Error(t, err)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(JSONOverrideEnv, `{"Title":"Test Override","Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(testConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(JSONOverrideEnv, `{"Title":`)

	_, err := ReadConfig(testConfigPath(t))
	require.Error(t, err)
}

func TestReadConfigWithEnvironment(t *testing.T) {
	t.Setenv(JSONOverrideEnv, `{"Webserver":{"Port":9090}}`)
	t.Setenv("WHYIDEAS_PORT", "7070")
	t.Setenv("WHYIDEAS_FRONTEND_URL", "https://whyideas.com")
	t.Setenv("WHYIDEAS_ENVIRONMENT", "production")
	t.Setenv("WHYIDEAS_EMAILJS_TEMPLATE_ID", "template_custom")
	t.Setenv("WHYIDEAS_EMAILJS_PUBLIC_KEY", "pk_test")
	t.Setenv("WHYIDEAS_CONTACT_EMAIL", "hello@whyideas.com")

	cfg, err := ReadConfig(testConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Webserver.Port, "environment wins over the json override")
	assert.Equal(t, "https://whyideas.com", cfg.Webserver.FrontendURL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "template_custom", cfg.Relay.TemplateID)
	assert.Equal(t, "pk_test", cfg.Relay.PublicKey)
	assert.Equal(t, "hello@whyideas.com", cfg.Relay.ContactEmail)
	assert.Equal(t, ":7070", cfg.ListenAddr())
}

func TestReadConfigWithNodeEnv(t *testing.T) {
	tests := []struct {
		name        string
		nodeEnv     string
		environment string
		want        Environment
	}{
		{name: "node env alone", nodeEnv: "production", want: EnvProduction},
		{name: "environment wins", nodeEnv: "production", environment: "development", want: EnvDevelopment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NODE_ENV", tt.nodeEnv)
			t.Setenv("WHYIDEAS_ENVIRONMENT", tt.environment)

			cfg, err := ReadConfig(testConfigPath(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Environment)
		})
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
					URL:  "http://localhost:8080",
				},
			},
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{
					URL: "http://localhost:8080",
				},
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
				},
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "wildcard origin",
			config: Config{
				Webserver: Webserver{
					Port:        8080,
					URL:         "http://localhost:8080",
					FrontendURL: "*",
				},
			},
			wantErr: ErrWildcardOrigin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigValidationTags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown engine", func(c *Config) { c.DB.GormEngine = "oracle" }},
		{"unknown environment", func(c *Config) { c.Environment = "staging" }},
		{"port out of range", func(c *Config) { c.Webserver.Port = 70000 }},
		{"bad contact email", func(c *Config) { c.Relay.ContactEmail = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"}}
			tt.mutate(&c)

			assert.Error(t, validate(&c))
		})
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	c := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"}}

	require.NoError(t, validate(&c))

	assert.Equal(t, EnvDevelopment, c.Environment)
	assert.Equal(t, defaultShutDownTime, c.Webserver.ShutDownTime)
	assert.Equal(t, defaultBodyLimit, c.Webserver.BodyLimit)
	assert.Equal(t, "http://localhost:8080", c.Webserver.FrontendURL)
	assert.Equal(t, EngineSQLite, c.DB.GormEngine)
	assert.Equal(t, defaultSQLitePath, c.DB.Path)
	assert.Equal(t, DefaultRelayBaseURL, c.Relay.BaseURL)
	assert.Equal(t, DefaultContactName, c.Relay.ContactName)
	assert.Equal(t, DefaultContactEmail, c.Relay.ContactEmail)
	assert.False(t, c.IsProduction())
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(tomlStr, "Test"), "DumpConfig() output should contain Title")

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"Title": "Test"`)
}

func TestDumpConfigMasksSecrets(t *testing.T) {
	cfg := Config{
		Title: "Test",
		DB:    DB{Password: "db-secret"},
		Relay: Relay{PublicKey: "pk_secret"},
	}

	for name, dump := range map[string]func(*Config) (string, error){
		"toml": DumpConfig,
		"json": DumpConfigJSON,
	} {
		t.Run(name, func(t *testing.T) {
			out, err := dump(&cfg)
			require.NoError(t, err)

			assert.NotContains(t, out, "db-secret")
			assert.NotContains(t, out, "pk_secret")
			assert.Contains(t, out, Redacted)
		})
	}

	assert.Equal(t, "db-secret", cfg.DB.Password, "dumping must not change the config")
	assert.Equal(t, "pk_secret", cfg.Relay.PublicKey)
}
