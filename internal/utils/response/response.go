package response

import (
	domainerrors "taskhive/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// FromError maps a domain error to its HTTP status, carrying the error code
// when one exists.
func FromError(c *fiber.Ctx, err error) error {
	status := domainerrors.HTTPStatus(err)
	if de, ok := domainerrors.As(err); ok {
		return c.Status(status).JSON(fiber.Map{
			"error": de.Message,
			"code":  de.Code,
		})
	}
	return Error(c, status, err.Error())
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}
