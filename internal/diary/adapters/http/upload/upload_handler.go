// Package upload содержит HTTP обработчик загрузки изображений.
package upload

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"whispr/internal/diary/adapters/http/dto"
	"whispr/internal/diary/adapters/http/middleware"
	"whispr/internal/diary/adapters/http/response"
	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/ports/api"
	"whispr/pkg/logger"
)

const (
	// FormField имя поля multipart формы с файлом.
	FormField = "image"

	LogHandlerUpload  = "handling image upload request"
	ErrMsgNoFile      = "no image file provided"
	ErrMsgOpenFile    = "failed to open uploaded file"
	ErrMsgFailedStore = "failed to upload image"
)

// Handler обработчик загрузки изображений.
type Handler struct {
	images api.ImageUseCase
}

// NewHandler создает обработчик загрузки.
func NewHandler(images api.ImageUseCase) *Handler {
	return &Handler{images: images}
}

// UploadImage принимает файл из поля image и сохраняет его в объектное хранилище.
func (h *Handler) UploadImage(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	callerID := middleware.CallerID(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UploadImage"))
	log.Debug(requestCtx, LogHandlerUpload)

	header, err := ctx.FormFile(FormField)
	if err != nil {
		log.Debug(requestCtx, ErrMsgNoFile, zap.Error(err))
		return response.Error(ctx, fmt.Errorf("%s: %w", ErrMsgNoFile,
			entities.NewValidationError(FormField, ErrMsgNoFile)))
	}

	file, err := header.Open()
	if err != nil {
		log.Error(requestCtx, ErrMsgOpenFile, zap.Error(err))
		return response.Error(ctx, fmt.Errorf("%s: %w", ErrMsgOpenFile, err))
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn(requestCtx, ErrMsgOpenFile, zap.Error(closeErr))
		}
	}()

	ref, err := h.images.Upload(requestCtx, callerID, entities.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		response.LogFailure(requestCtx, log, ErrMsgFailedStore, err)
		return response.Error(ctx, err)
	}

	if err := ctx.JSON(dto.UploadResponse{
		Success:   true,
		ImageURL:  ref.URL,
		StorageID: ref.StorageID,
		UserID:    ref.UploadedBy,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
