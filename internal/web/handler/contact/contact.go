// Package contact provides the JSON API for contact submissions.
package contact

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/whyideas/whyideas/internal/config"
	domain "github.com/whyideas/whyideas/internal/contact"
	dbcontact "github.com/whyideas/whyideas/internal/db/controller/contact"
	"github.com/whyideas/whyideas/internal/web/handler"
)

const (
	// SubmitPath accepts new submissions.
	SubmitPath = "/contact"
	// ListPath lists stored submissions.
	ListPath = "/contacts"
	// ItemPath returns a single submission.
	ItemPath = "/contacts/:id"

	// MsgSubmitted is returned with a stored submission.
	MsgSubmitted = "Contact form submitted successfully"

	msgInvalidBody = "Request body must be a JSON object or a form"
)

// Submitted is the data of a successful submission.
type Submitted struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ListResponse is the body of the list endpoint.
type ListResponse struct {
	Success bool            `json:"success"`
	Data    []domain.Record `json:"data"`
	Count   int             `json:"count"`
}

// Service is the contact API handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store domain.Store
}

// Handler is the contact API handler.
var Handler = Service{}

// Init registers the API routes on a gorm backed store.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.InitWithStore(app, cfg, dbcontact.NewStore(db))

	return nil
}

// InitWithStore registers the API routes on store.
func (s *Service) InitWithStore(app *fiber.App, cfg *config.Config, store domain.Store) {
	s.cfg = cfg
	s.store = store

	app.Route(handler.APIPath, func(api fiber.Router) {
		api.Post(SubmitPath, s.Post)
		api.Get(ListPath, s.List)
		api.Get(ItemPath, s.Get)
	})
}

// Post validates and stores a submission.
func (s *Service) Post(c *fiber.Ctx) error {
	raw, err := DecodeBody(c)
	if err != nil {
		domain.Observe(domain.PathAPI, domain.ResultInvalid)
		return err
	}

	sub, err := domain.Validate(raw)
	if err != nil {
		domain.Observe(domain.PathAPI, domain.ResultInvalid)
		return err
	}

	rec, err := s.store.Insert(c.UserContext(), sub)
	if err != nil {
		domain.Observe(domain.PathAPI, domain.ResultFailed)
		return err
	}

	domain.Observe(domain.PathAPI, domain.ResultAccepted)
	log.Info().Str("id", rec.ID).Msg("contact submission stored")

	return handler.OK(c, fiber.StatusCreated, MsgSubmitted, Submitted{
		ID:          rec.ID,
		SubmittedAt: rec.CreatedAt,
	})
}

// List returns every stored submission, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	records, err := s.store.ListAllDescending(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(ListResponse{
		Success: true,
		Data:    records,
		Count:   len(records),
	})
}

// Get returns one submission.
func (s *Service) Get(c *fiber.Ctx) error {
	rec, err := s.store.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return handler.OK(c, fiber.StatusOK, "", rec)
}

// DecodeBody reads a JSON object or a form into a generic map, so that
// missing and wrongly typed fields reach validation. An empty body is an empty
// map. Anything else is a validation error on the body field.
func DecodeBody(c *fiber.Ctx) (map[string]any, error) {
	raw := map[string]any{}
	if len(c.Body()) == 0 {
		return raw, nil
	}

	ctype := strings.ToLower(string(c.Request().Header.ContentType()))
	if i := strings.IndexByte(ctype, ';'); i >= 0 {
		ctype = ctype[:i]
	}

	switch strings.TrimSpace(ctype) {
	case fiber.MIMEApplicationJSON:
		var decoded map[string]any
		if err := json.Unmarshal(c.Body(), &decoded); err != nil {
			return nil, invalidBody()
		}
		if decoded != nil {
			raw = decoded
		}
	case fiber.MIMEApplicationForm:
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			raw[string(k)] = string(v)
		})
	case fiber.MIMEMultipartForm:
		form, err := c.MultipartForm()
		if err != nil {
			return nil, invalidBody()
		}
		for k, v := range form.Value {
			if len(v) > 0 {
				raw[k] = v[0]
			}
		}
	default:
		return nil, invalidBody()
	}

	return raw, nil
}

func invalidBody() error {
	return &domain.ValidationError{Fields: []domain.FieldError{{Field: handler.FieldBody, Message: msgInvalidBody}}}
}
