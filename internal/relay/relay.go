// Package relay sends contact messages through a transactional email
// service speaking the EmailJS REST API.
package relay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// SendPath is the email send endpoint relative to the base URL.
const SendPath = "/api/v1.0/email/send"

var (
	// ErrMissingPublicKey is returned when no public key is configured.
	ErrMissingPublicKey = &ConfigurationError{
		Message: "EmailJS configuration missing. Please set up environment variables.",
	}
	// ErrEmptyBaseURL is returned when the base URL is empty.
	ErrEmptyBaseURL = errors.New("relay base url is empty")
)

// ConfigurationError reports a missing relay credential. The operation is
// aborted before any network call is made.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Error is a non 2xx response from the relay.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("relay responded with status %d", e.StatusCode)
	}

	return fmt.Sprintf("relay responded with status %d: %s", e.StatusCode, body)
}

// Config holds the relay account and the fixed recipient.
type Config struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	ToName     string
	ToEmail    string
}

// Email is a single message to relay.
type Email struct {
	FromName  string
	FromEmail string
	Message   string
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Client posts emails to the relay.
type Client struct {
	cfg    Config
	client *resty.Client
}

// New returns a Client for cfg. A missing public key is reported by Send, not
// here, so the caller can still render its form.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json")

	return &Client{cfg: cfg, client: c}, nil
}

// Configured reports whether the client has the credentials it needs.
func (c *Client) Configured() bool {
	return c.cfg.PublicKey != ""
}

// Send relays e in a single attempt.
func (c *Client) Send(ctx context.Context, e Email) error {
	if !c.Configured() {
		return ErrMissingPublicKey
	}

	body := sendRequest{
		ServiceID:  c.cfg.ServiceID,
		TemplateID: c.cfg.TemplateID,
		UserID:     c.cfg.PublicKey,
		TemplateParams: map[string]string{
			"from_name":  e.FromName,
			"from_email": e.FromEmail,
			"message":    e.Message,
			"to_name":    c.cfg.ToName,
			"to_email":   c.cfg.ToEmail,
			"reply_to":   e.FromEmail,
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&body).
		Post(SendPath)
	if err != nil {
		return fmt.Errorf("relay request: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return &Error{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	return nil
}
