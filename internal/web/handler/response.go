package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/go-wishlist/go-wishlist/internal/validation"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Errors  []validation.ErrorResponse `json:"errors,omitempty"`
}

// JSONError writes an ErrorResponse with status.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Message: msg})
}

// JSONValidationError writes the failed fields with 400 Bad Request.
func JSONValidationError(c *fiber.Ctx, errs []validation.ErrorResponse) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: "validation failed",
		Errors:  errs,
	})
}

// ParseID reads the :id path parameter.
func ParseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}
