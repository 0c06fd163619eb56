package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain"
)

// writeError traduce errores de dominio a {code, message}. Los errores no
// reconocidos se registran y se responden con un mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", verr.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrUsernameTaken):
		return respondError(c, fiber.StatusConflict, "CONFLICT", domain.ErrUsernameTaken.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrRecipeCycle):
		return respondError(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, "FORBIDDEN", domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrUnsupportedFile):
		return respondError(c, fiber.StatusUnsupportedMediaType, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrFileTooLarge):
		return respondError(c, fiber.StatusRequestEntityTooLarge, "VALIDATION", domain.ErrFileTooLarge.Error())
	case errors.Is(err, domain.ErrInvalidBackup):
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", domain.ErrInvalidBackup.Error())
	case errors.Is(err, domain.ErrUnsupportedBackend):
		return respondError(c, fiber.StatusNotImplemented, "UNSUPPORTED", domain.ErrUnsupportedBackend.Error())
	}
	requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return respondError(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
}

func respondError(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}

// ErrorHandler de Fiber: errores de enrutamiento (*fiber.Error) conservan su status,
// el resto pasa por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return writeError(c, err)
	}
	switch fe.Code {
	case fiber.StatusNotFound:
		return respondError(c, fe.Code, "NOT_FOUND", fe.Message)
	case fiber.StatusRequestEntityTooLarge:
		return respondError(c, fe.Code, "VALIDATION", fe.Message)
	case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest:
		return respondError(c, fe.Code, "INVALID_BODY", fe.Message)
	}
	return respondError(c, fe.Code, "INTERNAL", fe.Message)
}
