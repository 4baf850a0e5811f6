package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/whyideas/whyideas/internal/contact"
)

// Response is the JSON envelope of every API response.
type Response struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Data    any                  `json:"data,omitempty"`
	Errors  []contact.FieldError `json:"errors,omitempty"`
	Stack   string               `json:"stack,omitempty"`
}

// OK sends a successful envelope with the given status.
func OK(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends an unsuccessful envelope with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
	})
}

// WantsJSON reports whether the client prefers a JSON answer over HTML.
func WantsJSON(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), APIPath+"/") {
		return true
	}

	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
