// Package http содержит компоненты для HTTP сервера.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"whispr/internal/diary/adapters/http/auth"
	"whispr/internal/diary/adapters/http/entries"
	"whispr/internal/diary/adapters/http/middleware"
	"whispr/internal/diary/adapters/http/response"
	"whispr/internal/diary/adapters/http/upload"
	"whispr/internal/diary/config"
	"whispr/internal/diary/ports/api"
	"whispr/internal/diary/ports/services"
	"whispr/pkg/logger"
)

// Dependencies сценарии и сервисы, которые использует HTTP слой.
type Dependencies struct {
	Auth         api.AuthUseCase
	Entries      api.EntryUseCase
	Images       api.ImageUseCase
	Tokens       services.TokenService
	CookieSecure bool
}

// NewApp создает приложение Fiber с настройками из конфигурации.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "whispr",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.GetBodyLimit(),
		ErrorHandler: errorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Auth, auth.CookieOptions{Secure: deps.CookieSecure})
	entryHandler := entries.NewHandler(deps.Entries, deps.Images)
	uploadHandler := upload.NewHandler(deps.Images)
	requireAuth := middleware.NewAuthMiddleware(deps.Tokens)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", func(ctx fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	apiV1 := app.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)

	checkRoutes := authRoutes.Group("/check", requireAuth)
	checkRoutes.Get("/", authHandler.Check)

	userRoutes := apiV1.Group("/user", requireAuth)
	userRoutes.Get("/profile", authHandler.GetProfile)

	uploadRoutes := apiV1.Group("/upload", requireAuth)
	uploadRoutes.Post("/", uploadHandler.UploadImage)

	entryRoutes := apiV1.Group("/entries", requireAuth)
	entryRoutes.Post("/", entryHandler.CreateEntry)
	entryRoutes.Get("/", entryHandler.ListEntries)
	entryRoutes.Get("/date/:"+entries.ParamDate, entryHandler.FindByDay)
	entryRoutes.Put("/:"+entries.ParamEntryID, entryHandler.UpdateEntry)
	entryRoutes.Patch("/:"+entries.ParamEntryID, entryHandler.UpdateEntry)
	entryRoutes.Delete("/:"+entries.ParamEntryID, entryHandler.DeleteEntry)

	// Обработчик для несуществующих маршрутов.
	app.Use(response.NotFound)
}

const logUnhandledError = "unhandled handler error"

func errorHandler(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		requestCtx := middleware.RequestContext(ctx)
		logger.Log(requestCtx).Error(requestCtx, logUnhandledError, zap.Error(err))
	}
	return response.Error(ctx, err)
}
