// Package entries содержит HTTP обработчики записей дневника.
package entries

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"whispr/internal/diary/adapters/http/dto"
	"whispr/internal/diary/adapters/http/middleware"
	"whispr/internal/diary/adapters/http/response"
	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/ports/api"
	"whispr/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateEntry = "handling create entry request"
	LogHandlerListEntries = "handling list entries request"
	LogHandlerFindByDay   = "handling find entries by day request"
	LogHandlerUpdateEntry = "handling update entry request"
	LogHandlerDeleteEntry = "handling delete entry request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgFailedCreate       = "failed to create entry"
	ErrMsgFailedList         = "failed to list entries"
	ErrMsgFailedFindByDay    = "failed to find entries by day"
	ErrMsgFailedUpdate       = "failed to update entry"
	ErrMsgFailedDelete       = "failed to delete entry"

	MsgEntryDeleted = "entry deleted"

	ParamEntryID = "id"
	ParamDate    = "date"
)

// Handler обработчик HTTP-запросов для работы с записями.
type Handler struct {
	entries api.EntryUseCase
	images  api.ImageUseCase
}

// NewHandler создает новый экземпляр обработчика записей.
// images может быть nil, тогда изображения удаленных записей не удаляются из хранилища.
func NewHandler(entries api.EntryUseCase, images api.ImageUseCase) *Handler {
	return &Handler{entries: entries, images: images}
}

// CreateEntry обрабатывает запрос на создание записи.
func (h *Handler) CreateEntry(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateEntry"))
	log.Debug(requestCtx, LogHandlerCreateEntry)

	var req dto.CreateEntryRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Malformed(ctx, ErrMsgInvalidRequestBody)
	}

	entry, err := h.entries.Create(requestCtx, middleware.CallerID(ctx), req.ToInput())
	if err != nil {
		response.LogFailure(requestCtx, log, ErrMsgFailedCreate, err)
		return response.Error(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.FromEntry(entry)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListEntries возвращает все записи пользователя.
func (h *Handler) ListEntries(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListEntries"))
	log.Debug(requestCtx, LogHandlerListEntries)

	list, err := h.entries.List(requestCtx, middleware.CallerID(ctx))
	if err != nil {
		response.LogFailure(requestCtx, log, ErrMsgFailedList, err)
		return response.Error(ctx, err)
	}

	if err := ctx.JSON(dto.FromEntries(list)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// FindByDay возвращает записи пользователя за календарный день из параметра пути.
func (h *Handler) FindByDay(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.FindByDay"))
	log.Debug(requestCtx, LogHandlerFindByDay)

	day, err := parseDayParam(ctx.Params(ParamDate))
	if err != nil {
		log.Debug(requestCtx, ErrMsgFailedFindByDay, zap.Error(err))
		return response.Error(ctx, err)
	}

	list, err := h.entries.FindByCalendarDay(requestCtx, middleware.CallerID(ctx), day)
	if err != nil {
		response.LogFailure(requestCtx, log, ErrMsgFailedFindByDay, err)
		return response.Error(ctx, err)
	}

	if err := ctx.JSON(dto.FromEntries(list)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateEntry обрабатывает запрос на изменение записи.
func (h *Handler) UpdateEntry(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	entryID := ctx.Params(ParamEntryID)
	log := logger.Log(requestCtx).With(
		zap.String("handler", "Handler.UpdateEntry"),
		zap.String("entryID", entryID))
	log.Debug(requestCtx, LogHandlerUpdateEntry)

	var req dto.UpdateEntryRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Malformed(ctx, ErrMsgInvalidRequestBody)
	}

	entry, err := h.entries.Update(requestCtx, middleware.CallerID(ctx), entryID, req.ToPatch())
	if err != nil {
		response.LogFailure(requestCtx, log, ErrMsgFailedUpdate, err)
		return response.Error(ctx, err)
	}

	if err := ctx.JSON(dto.FromEntry(entry)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteEntry удаляет запись и отвечает сразу. Изображения удаляются в фоне.
func (h *Handler) DeleteEntry(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	entryID := ctx.Params(ParamEntryID)
	log := logger.Log(requestCtx).With(
		zap.String("handler", "Handler.DeleteEntry"),
		zap.String("entryID", entryID))
	log.Debug(requestCtx, LogHandlerDeleteEntry)

	removed, err := h.entries.Delete(requestCtx, middleware.CallerID(ctx), entryID)
	if err != nil {
		response.LogFailure(requestCtx, log, ErrMsgFailedDelete, err)
		return response.Error(ctx, err)
	}

	if h.images != nil && len(removed.Images) > 0 {
		go h.images.Discard(detachedContext(requestCtx), removed.Images)
	}

	if err := ctx.JSON(dto.DeleteEntryResponse{Message: MsgEntryDeleted, ID: removed.ID}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// detachedContext переносит идентификатор запроса в контекст, не связанный с жизнью запроса.
func detachedContext(ctx context.Context) context.Context {
	detached := context.Background()
	if id, ok := logger.GetRequestID(ctx); ok {
		detached = logger.NewRequestIDContext(detached, id)
	}
	return detached
}

func parseDayParam(raw string) (entities.CalendarDay, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return entities.CalendarDay{}, fmt.Errorf("decoding date: %w", entities.ErrMalformedDate)
	}
	day, err := entities.ParseCalendarDay(strings.TrimSpace(decoded))
	if err != nil {
		return entities.CalendarDay{}, fmt.Errorf("parsing date: %w", err)
	}
	return day, nil
}
