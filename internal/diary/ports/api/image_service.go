package api

import (
	"context"

	"whispr/internal/diary/domain/entities"
)

// ImageUseCase определяет загрузку изображений и удаление их двоичных данных.
type ImageUseCase interface {
	Upload(ctx context.Context, callerID string, upload entities.ImageUpload) (*entities.ImageRef, error)

	// Discard удаляет двоичные данные изображений без возврата ошибок.
	Discard(ctx context.Context, images []entities.ImageRef)
}
