package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"whispr/internal/diary/ports/services"
	"whispr/pkg/logger"
)

// CookieName имя cookie с токеном доступа.
const CookieName = "jwt"

const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoToken      = "no access token provided"
	ErrorInvalidToken = "invalid or expired access token"
)

// NewAuthMiddleware проверяет токен из заголовка Authorization или cookie.
func NewAuthMiddleware(tokens services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		token := bearerToken(ctx.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = ctx.Cookies(CookieName)
		}
		if token == "" {
			log.Debug(requestCtx, ErrorNoToken)
			return unauthorized(ctx, ErrorNoToken)
		}

		claims, err := tokens.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return unauthorized(ctx, ErrorInvalidToken)
		}

		ctx.Locals(LocalsUserID, claims.UserID)
		ctx.Locals(LocalsUsername, claims.Username)

		return ctx.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func unauthorized(ctx fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
		"kind":  "unauthenticated",
	})
}
