package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// Códigos de error del cuerpo de respuesta.
const (
	CodeValidation   = "VALIDATION"
	CodeInvalidBody  = "INVALID_BODY"
	CodeNotFound     = "NOT_FOUND"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "TOO_MANY_REQUESTS"
	CodeInternal     = "INTERNAL"
)

const msgInvalidID = "Validation failed (numeric string is expected)"

// kindStatus categoría de dominio → (status, código).
var kindStatus = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, CodeBadRequest},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, CodeUnauthorized},
	{domain.ErrForbidden, fiber.StatusForbidden, CodeForbidden},
	{domain.ErrConflict, fiber.StatusConflict, CodeConflict},
}

// writeError traduce un error de caso de uso a respuesta HTTP. El mensaje de dominio se
// devuelve tal cual; cualquier otro error es 500 con mensaje genérico y se registra.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, k := range kindStatus {
		if errors.Is(err, k.kind) {
			msg := domain.MessageOf(err)
			if msg == "" {
				msg = k.kind.Error()
			}
			return c.Status(k.status).JSON(dto.ErrorResponse{Code: k.code, Message: msg})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: CodeInternal, Message: "internal server error",
	})
}

func validationError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "invalid request body"})
}

// ErrorHandler errores que llegan a Fiber (ruta inexistente, body demasiado grande, panics
// recuperados) con el mismo formato ErrorResponse.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
		}
		return writeError(c, log, err)
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusConflict:
		return CodeConflict
	case fiber.StatusTooManyRequests:
		return CodeRateLimited
	}
	return CodeBadRequest
}
