package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the single error shape of the API: a user-facing message
// plus a machine-readable kind.
type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// Error kinds clients can branch on.
const (
	KindValidation   = "validation"
	KindUnauthorized = "unauthorized"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindInternal     = "internal"
)

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, kind, message string) error {
	return JSON(c, status, ErrorResponse{Message: message, Kind: kind})
}
