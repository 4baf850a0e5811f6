package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/whyideas/whyideas/internal/config"
	"github.com/whyideas/whyideas/internal/contact"
	"github.com/whyideas/whyideas/internal/theme"
)

// Messages of the error envelopes.
const (
	MsgValidationFailed = "Validation failed"
	MsgContactNotFound  = "Contact not found"
	MsgRouteNotFound    = "Route not found"
	MsgInternalError    = "Internal server error"

	// FieldTheme is the request field holding a theme mode.
	FieldTheme = "theme"
	// FieldBody marks a request body that could not be decoded.
	FieldBody = "body"
)

// ErrRouteNotFound is returned by the catch-all route.
var ErrRouteNotFound = errors.New("route not found")

// ErrorHandler translates handler errors into API envelopes. Errors it does
// not recognise are logged with full detail and answered with 500. The
// stack is echoed to the client outside production only.
func ErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	production := cfg != nil && cfg.IsProduction()

	return func(c *fiber.Ctx, err error) error {
		var (
			verr *contact.ValidationError
			ferr *fiber.Error
		)

		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(Response{
				Success: false,
				Message: MsgValidationFailed,
				Errors:  verr.Fields,
			})
		case errors.Is(err, theme.ErrInvalidMode):
			return c.Status(fiber.StatusBadRequest).JSON(Response{
				Success: false,
				Message: MsgValidationFailed,
				Errors:  []contact.FieldError{{Field: FieldTheme, Message: "Theme must be light or dark"}},
			})
		case errors.Is(err, contact.ErrNotFound):
			return Fail(c, fiber.StatusNotFound, MsgContactNotFound)
		case errors.Is(err, ErrRouteNotFound):
			return Fail(c, fiber.StatusNotFound, MsgRouteNotFound)
		case errors.As(err, &ferr):
			if ferr.Code == fiber.StatusNotFound {
				return Fail(c, fiber.StatusNotFound, MsgRouteNotFound)
			}

			return Fail(c, ferr.Code, ferr.Message)
		}

		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("detail", fmt.Sprintf("%+v", err)).
			Msg("unhandled request error")

		resp := Response{Success: false, Message: MsgInternalError}
		if !production {
			resp.Stack = fmt.Sprintf("%+v", err)
		}

		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}
