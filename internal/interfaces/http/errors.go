package http

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/charity-reports-api/internal/application/dto"
	"github.com/jhoicas/charity-reports-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// errorStatus traduce errores de dominio a código HTTP y código de error.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedReportType):
		return fiber.StatusBadRequest, "UNSUPPORTED_REPORT_TYPE"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return fiber.StatusBadRequest, "UNSUPPORTED_FORMAT"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "TIMEOUT"
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError, "STORAGE_ERROR"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeError responde con dto.ErrorResponse. Los 5xx se registran y no exponen el detalle.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("code", code).Msg("error en petición")
		msg = "error interno, intente más tarde"
		if status == fiber.StatusGatewayTimeout {
			msg = "la generación excedió el tiempo máximo"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// validationError respuesta 400 con el primer campo inválido.
func validationError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msg = "campo inválido: " + verrs[0].Field() + " (" + verrs[0].Tag() + ")"
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: msg})
}
