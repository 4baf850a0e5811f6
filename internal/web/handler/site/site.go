// Package site renders the landing page and handles its interactive parts:
// the theme switch and the contact form relayed by email.
package site

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/whyideas/whyideas/internal/config"
	"github.com/whyideas/whyideas/internal/contact/form"
	"github.com/whyideas/whyideas/internal/relay"
	"github.com/whyideas/whyideas/internal/theme"
	"github.com/whyideas/whyideas/internal/web/handler"
	apicontact "github.com/whyideas/whyideas/internal/web/handler/contact"
	"github.com/whyideas/whyideas/internal/web/navigation"
	"github.com/whyideas/whyideas/internal/web/visitor"
)

const (
	// ContactPath receives the page contact form.
	ContactPath = handler.RootPath + "contact"
	// TogglePath flips the theme.
	TogglePath = handler.RootPath + "theme/toggle"
	// ThemePath sets the theme.
	ThemePath = handler.RootPath + "theme"

	// TemplateName is the name of the page template.
	TemplateName = "index"
)

// ThemeData is the body of the theme endpoints.
type ThemeData struct {
	Theme theme.Mode `json:"theme"`
}

// Service is the site handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	sender form.Sender
}

// Handler is the site handler.
var Handler = Service{}

// Init registers the page routes and relays the contact form through the
// configured email relay.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	client, err := relay.New(cfg.Relay.ClientConfig())
	if err != nil {
		return err
	}

	if !client.Configured() {
		log.Warn().Msg("email relay public key is not set, the contact form will report a configuration error")
	}

	s.InitWithSender(app, cfg, db, client)

	return nil
}

// InitWithSender registers the page routes using sender for the contact form.
func (s *Service) InitWithSender(app *fiber.App, cfg *config.Config, db *gorm.DB, sender form.Sender) {
	s.cfg = cfg
	s.db = db
	s.sender = sender

	app.Get(handler.RootPath, s.Get)
	app.Post(ContactPath, s.PostContact)
	app.Post(TogglePath, s.Toggle)
	app.Put(ThemePath, s.Put)
}

// Get renders the page.
func (s *Service) Get(c *fiber.Ctx) error {
	ctrl, err := visitor.Theme(c, s.db)
	if err != nil {
		return err
	}

	return s.render(c, ctrl, navigation.SectionHero, form.New(s.sender).State())
}

// PostContact validates the page form and relays it. The outcome is shown in
// the re-rendered form, so relay and validation failures are not errors here.
func (s *Service) PostContact(c *fiber.Ctx) error {
	ctrl, err := visitor.Theme(c, s.db)
	if err != nil {
		return err
	}

	raw, err := apicontact.DecodeBody(c)
	if err != nil {
		raw = map[string]any{}
	}

	state, err := form.New(s.sender).Submit(c.UserContext(), raw)
	if err != nil {
		log.Debug().Err(err).Str("status", string(state.Status)).Msg("contact form not sent")
	}

	return s.render(c, ctrl, navigation.SectionContact, state)
}

// Toggle flips the visitor theme. Browsers are sent back to the page.
func (s *Service) Toggle(c *fiber.Ctx) error {
	ctrl, err := visitor.Theme(c, s.db)
	if err != nil {
		return err
	}

	mode, err := ctrl.Toggle()
	if err != nil {
		return err
	}

	if handler.WantsJSON(c) {
		return handler.OK(c, fiber.StatusOK, "", ThemeData{Theme: mode})
	}

	return c.Redirect(handler.RootPath, fiber.StatusSeeOther)
}

// Put sets the visitor theme from {"theme": "light"|"dark"}.
func (s *Service) Put(c *fiber.Ctx) error {
	raw, err := apicontact.DecodeBody(c)
	if err != nil {
		return err
	}

	value, _ := raw[handler.FieldTheme].(string)

	mode, err := theme.ParseMode(value)
	if err != nil {
		return err
	}

	ctrl, err := visitor.Theme(c, s.db)
	if err != nil {
		return err
	}

	if err := ctrl.Set(mode); err != nil {
		return err
	}

	return handler.OK(c, fiber.StatusOK, "", ThemeData{Theme: ctrl.Mode()})
}

func (s *Service) render(c *fiber.Ctx, ctrl *theme.Controller, section string, state form.State) error {
	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Theme":      ctrl.Class(),
		"Navigation": navigation.Site(s.cfg.Title, section),
		"Form":       state,
		"Year":       time.Now().Year(),
	}, handler.BaseLayout)
}
