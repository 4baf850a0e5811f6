package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whyideas/whyideas/internal/config"
	"github.com/whyideas/whyideas/internal/contact/form"
	"github.com/whyideas/whyideas/internal/relay"
)

func runSubmit(t *testing.T, relayCfg config.Relay, name, email, message string) (string, error) {
	t.Helper()

	cfg = config.Config{Relay: relayCfg}
	submitName, submitEmail, submitMessage = name, email, message

	var out bytes.Buffer
	submitCmd.SetOut(&out)
	submitCmd.SetContext(context.Background())

	err := submitCmd.RunE(submitCmd, nil)

	return out.String(), err
}

func TestSubmit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	relayCfg := config.Relay{BaseURL: srv.URL, ServiceID: "service_efhq8ng", TemplateID: "template_contact", PublicKey: "pk"}

	out, err := runSubmit(t, relayCfg, "Jo", "a@b.com", "1234567890")
	require.NoError(t, err)
	assert.Equal(t, form.MessageSuccess+"\n", out)
	assert.Equal(t, 1, calls)

	out, err = runSubmit(t, relayCfg, "J", "nope", "1234567890")
	require.Error(t, err)
	assert.Equal(t, "email: Invalid email address\nname: Name must be at least 2 characters\n", out)
	assert.Equal(t, 1, calls)

	relayCfg.PublicKey = ""
	out, err = runSubmit(t, relayCfg, "Jo", "a@b.com", "1234567890")
	require.ErrorIs(t, err, relay.ErrMissingPublicKey)
	assert.Contains(t, out, "EmailJS configuration missing")
	assert.Equal(t, 1, calls)
}
