// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Ключи значений, которые middleware кладут в Locals.
const (
	LocalsUserContext = "userContext"
	LocalsUserID      = "userID"
	LocalsUsername    = "username"
)

// RequestContext возвращает контекст запроса с идентификатором запроса.
func RequestContext(ctx fiber.Ctx) context.Context {
	if c, ok := ctx.Locals(LocalsUserContext).(context.Context); ok {
		return c
	}
	return ctx.Context()
}

// CallerID возвращает идентификатор аутентифицированного пользователя или пустую строку.
func CallerID(ctx fiber.Ctx) string {
	id, _ := ctx.Locals(LocalsUserID).(string)
	return id
}

// CallerName возвращает имя аутентифицированного пользователя.
func CallerName(ctx fiber.Ctx) string {
	name, _ := ctx.Locals(LocalsUsername).(string)
	return name
}
