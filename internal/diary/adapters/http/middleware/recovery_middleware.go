package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"whispr/pkg/logger"
)

const (
	LogServerPanic         = "server panic"
	LogFailedPanicResponse = "failed to send error response after panic"
)

// NewRecoveryMiddleware перехватывает панику обработчика и отвечает 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)

		defer func() {
			r := recover()
			if r == nil {
				return
			}

			log := logger.Log(requestCtx)
			log.Error(requestCtx, LogServerPanic,
				zap.String("error", fmt.Sprintf("%v", r)),
				zap.String("stack", string(debug.Stack())),
			)

			if sendErr := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
				"kind":  "internal",
			}); sendErr != nil {
				log.Error(requestCtx, LogFailedPanicResponse, zap.Error(sendErr))
			}
			err = nil
		}()

		return ctx.Next()
	}
}
