// Package auth содержит HTTP обработчики регистрации и входа.
package auth

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"whispr/internal/diary/adapters/http/dto"
	"whispr/internal/diary/adapters/http/middleware"
	"whispr/internal/diary/adapters/http/response"
	"whispr/internal/diary/ports/api"
	"whispr/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerLogout     = "auth handler: logout"
	LogHandlerCheck      = "auth handler: check"
	LogHandlerGetProfile = "auth handler: get profile"

	ErrorInvalidRequest       = "invalid request body"
	ErrorFailedToServeRequest = "failed to serve request"

	MsgLoggedOut     = "logged out"
	MsgAuthenticated = "authenticated"
)

// CookieOptions настройки cookie с токеном.
type CookieOptions struct {
	Secure bool
}

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
	cookie      CookieOptions
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase, cookie CookieOptions) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		cookie:      cookie,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Malformed(ctx, ErrorInvalidRequest)
	}

	result, err := h.authUseCase.Register(requestCtx, req.Email, req.Username, req.Password)
	if err != nil {
		response.LogFailure(requestCtx, log, ErrorFailedToServeRequest, err)
		return response.Error(ctx, err)
	}

	h.setTokenCookie(ctx, result.AccessToken, result.ExpiresAt)
	if err := ctx.Status(fiber.StatusCreated).JSON(dto.FromAuthResult(result)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Malformed(ctx, ErrorInvalidRequest)
	}

	result, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		response.LogFailure(requestCtx, log, ErrorFailedToServeRequest, err)
		return response.Error(ctx, err)
	}

	h.setTokenCookie(ctx, result.AccessToken, result.ExpiresAt)
	if err := ctx.JSON(dto.FromAuthResult(result)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Logout удаляет cookie с токеном.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogout)

	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	if err := ctx.JSON(dto.MessageResponse{Message: MsgLoggedOut}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Check подтверждает, что запрос аутентифицирован.
func (h *Handler) Check(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCheck)

	if err := ctx.JSON(dto.CheckResponse{
		Message: MsgAuthenticated,
		User: dto.User{
			ID:       middleware.CallerID(ctx),
			Username: middleware.CallerName(ctx),
		},
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetProfile возвращает профиль текущего пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetProfile)

	user, err := h.authUseCase.Profile(requestCtx, middleware.CallerID(ctx))
	if err != nil {
		response.LogFailure(requestCtx, log, ErrorFailedToServeRequest, err)
		return response.Error(ctx, err)
	}

	if err := ctx.JSON(dto.ProfileResponse{User: dto.FromUser(user)}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func (h *Handler) setTokenCookie(ctx fiber.Ctx, token string, expiresAt time.Time) {
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
