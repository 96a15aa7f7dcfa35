// Package response отображает ошибки сценариев в HTTP ответы.
package response

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/domain/services"
	"whispr/pkg/logger"
)

// Виды ошибок в теле ответа.
const (
	KindValidation         = "validation"
	KindMalformedInput     = "malformed_input"
	KindUnauthenticated    = "unauthenticated"
	KindAuthorization      = "authorization"
	KindNotFound           = "not_found"
	KindConflict           = "conflict"
	KindStorageUnavailable = "storage_unavailable"
	KindInternal           = "internal"
)

const (
	msgStorageUnavailable = "storage temporarily unavailable"
	msgInternal           = "internal server error"
	msgInvalidCredentials = "invalid email or password"
	msgNotOwner           = "you can only modify your own entries"
	msgNotFound           = "resource not found"
)

// Body тело ответа с ошибкой.
type Body struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

// Classify возвращает HTTP статус и тело ответа для ошибки.
func Classify(err error) (int, Body) {
	var vErr *entities.ValidationError
	switch {
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, Body{Error: vErr.Error(), Kind: KindValidation, Field: vErr.Field}
	case errors.Is(err, entities.ErrValidation):
		return fiber.StatusBadRequest, Body{Error: err.Error(), Kind: KindValidation}
	case errors.Is(err, entities.ErrMalformedDate):
		return fiber.StatusBadRequest, Body{Error: entities.ErrMalformedDate.Error(), Kind: KindMalformedInput}
	case errors.Is(err, entities.ErrUnsupportedImageType):
		return fiber.StatusUnsupportedMediaType,
			Body{Error: entities.ErrUnsupportedImageType.Error(), Kind: KindValidation, Field: "image"}
	case errors.Is(err, entities.ErrImageTooLarge):
		return fiber.StatusRequestEntityTooLarge,
			Body{Error: entities.ErrImageTooLarge.Error(), Kind: KindValidation, Field: "image"}
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, Body{Error: msgInvalidCredentials, Kind: KindUnauthenticated}
	case errors.Is(err, entities.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidJWTToken),
		errors.Is(err, services.ErrExpiredJWTToken):
		return fiber.StatusUnauthorized, Body{Error: entities.ErrUnauthenticated.Error(), Kind: KindUnauthenticated}
	case errors.Is(err, entities.ErrNotEntryOwner):
		return fiber.StatusForbidden, Body{Error: msgNotOwner, Kind: KindAuthorization}
	case errors.Is(err, entities.ErrEntryNotFound):
		return fiber.StatusNotFound, Body{Error: entities.ErrEntryNotFound.Error(), Kind: KindNotFound}
	case errors.Is(err, entities.ErrUserNotFound):
		return fiber.StatusNotFound, Body{Error: entities.ErrUserNotFound.Error(), Kind: KindNotFound}
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return fiber.StatusConflict, Body{Error: services.ErrEmailAlreadyExists.Error(), Kind: KindConflict}
	case errors.Is(err, entities.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable, Body{Error: msgStorageUnavailable, Kind: KindStorageUnavailable}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, Body{Error: fiberErr.Message, Kind: kindForStatus(fiberErr.Code)}
	}

	return fiber.StatusInternalServerError, Body{Error: msgInternal, Kind: KindInternal}
}

// Error отправляет ответ, соответствующий ошибке.
func Error(ctx fiber.Ctx, err error) error {
	status, body := Classify(err)
	if sendErr := ctx.Status(status).JSON(body); sendErr != nil {
		return fmt.Errorf("error sending %d response: %w", status, sendErr)
	}
	return nil
}

// Malformed отправляет 400 для тела или параметра, которые не удалось разобрать.
func Malformed(ctx fiber.Ctx, msg string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(Body{Error: msg, Kind: KindMalformedInput}); err != nil {
		return fmt.Errorf("error sending bad request response: %w", err)
	}
	return nil
}

// NotFound отправляет 404 для неизвестного маршрута.
func NotFound(ctx fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotFound).JSON(Body{Error: msgNotFound, Kind: KindNotFound})
}

func kindForStatus(code int) string {
	switch {
	case code == fiber.StatusNotFound:
		return KindNotFound
	case code == fiber.StatusUnauthorized:
		return KindUnauthenticated
	case code == fiber.StatusForbidden:
		return KindAuthorization
	case code >= 500:
		return KindInternal
	default:
		return KindMalformedInput
	}
}

// IsClientError сообщает, что ошибка вызвана запросом, а не сервером.
func IsClientError(err error) bool {
	status, _ := Classify(err)
	return status < fiber.StatusInternalServerError
}

// LogFailure пишет ошибку запроса: клиентские на уровне Debug, серверные на уровне Error.
func LogFailure(ctx context.Context, log *logger.Logger, msg string, err error) {
	if IsClientError(err) {
		log.Debug(ctx, msg, zap.Error(err))
		return
	}
	log.Error(ctx, msg, zap.Error(err))
}
