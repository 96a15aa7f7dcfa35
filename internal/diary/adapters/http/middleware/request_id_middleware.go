package middleware

import (
	"github.com/gofiber/fiber/v3"

	"whispr/pkg/logger"
)

// HeaderRequestID заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор из заголовка или генерирует новый
// и возвращает его клиенту.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		id, _ := logger.GetRequestID(requestCtx)

		ctx.Locals(LocalsUserContext, requestCtx)
		ctx.Set(HeaderRequestID, id)

		return ctx.Next()
	}
}
