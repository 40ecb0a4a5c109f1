package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/domain"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/oxapi"
)

// userMessage traduce un error de caso de uso al texto que se muestra en la pantalla que lo originó.
func userMessage(err error) string {
	var apiErr *oxapi.Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, domain.ErrInvalidToken):
		return "The server returned an invalid session token"
	case errors.Is(err, domain.ErrConfirmationRequired):
		return "Please confirm the deletion first"
	case errors.Is(err, domain.ErrNoCompany):
		return "No company attached to your account"
	case errors.Is(err, domain.ErrForbidden):
		return "Only the company admin can do this"
	case errors.Is(err, domain.ErrNoSession):
		return "Please sign in again"
	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid input"
	default:
		return "Something went wrong"
	}
}

// jsonError responde con dto.ErrorResponse y el estado correspondiente al error.
func jsonError(c *fiber.Ctx, err error) error {
	var apiErr *oxapi.Error
	switch {
	case errors.As(err, &apiErr):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: apiErr.Message})
	case errors.Is(err, domain.ErrNoSession):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: userMessage(err)})
	case errors.Is(err, domain.ErrNoCompany):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_COMPANY", Message: userMessage(err)})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: userMessage(err)})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: userMessage(err)})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: userMessage(err)})
	}
}
