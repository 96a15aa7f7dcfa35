package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/ports/api"
	svc "whispr/internal/diary/ports/services"
	"whispr/internal/diary/resilience"
	"whispr/pkg/logger"
)

const (
	methodUpload  = "Upload"
	methodDiscard = "Discard"

	msgUploadingImage   = "uploading image"
	msgImageUploaded    = "image uploaded"
	msgImageRejected    = "image rejected"
	msgDiscardingImages = "discarding image binaries"
	msgErrPutImage      = "failed to store image"
	msgErrDiscardImage  = "failed to discard image binary"

	errCtxValidatingImage = "validating image"
	errCtxStoringImage    = "storing image"

	operationDelete = "delete"

	// DefaultDiscardConcurrency ограничивает число одновременных удалений.
	DefaultDiscardConcurrency = 4
)

// ImageUseCaseImpl реализует api.ImageUseCase поверх объектного хранилища.
type ImageUseCaseImpl struct {
	storage     svc.ImageStorage
	guard       *resilience.ServiceResilience
	folder      string
	maxBytes    int64
	concurrency int
	now         func() time.Time
	newID       func() string
}

// ImageConfig параметры загрузки изображений.
type ImageConfig struct {
	Folder      string
	MaxBytes    int64
	Concurrency int
}

// NewImageUseCase создает сервис изображений. guard оборачивает удаления.
func NewImageUseCase(storage svc.ImageStorage, guard *resilience.ServiceResilience, cfg ImageConfig) *ImageUseCaseImpl {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultDiscardConcurrency
	}
	if guard == nil {
		guard = resilience.NewServiceResilience("image_storage")
	}
	return &ImageUseCaseImpl{
		storage:     storage,
		guard:       guard,
		folder:      cfg.Folder,
		maxBytes:    cfg.MaxBytes,
		concurrency: cfg.Concurrency,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

var _ api.ImageUseCase = (*ImageUseCaseImpl)(nil)

// Upload сохраняет изображение и возвращает его описатель с callerID в качестве автора.
func (uc *ImageUseCaseImpl) Upload(ctx context.Context, callerID string, upload entities.ImageUpload) (*entities.ImageRef, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpload),
		zap.String("userID", callerID),
		zap.String("filename", upload.Filename),
		zap.Int64("size", upload.Size))
	log.Debug(ctx, msgUploadingImage)

	if err := requireCaller(ctx, log, callerID); err != nil {
		return nil, err
	}

	ext, err := uc.validate(upload)
	if err != nil {
		log.Debug(ctx, msgImageRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingImage, err)
	}

	key := uc.objectKey(callerID, ext)
	url, err := uc.storage.Put(ctx, key, entities.NormalizedContentType(ext), upload.Body, upload.Size)
	if err != nil {
		log.Error(ctx, msgErrPutImage, zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("%s: %w: %w", errCtxStoringImage, entities.ErrStorageUnavailable, err)
	}

	log.Info(ctx, msgImageUploaded, zap.String("key", key))
	return &entities.ImageRef{URL: url, StorageID: key, UploadedBy: callerID}, nil
}

// Discard удаляет двоичные данные изображений параллельно. Ошибки только логируются.
func (uc *ImageUseCaseImpl) Discard(ctx context.Context, images []entities.ImageRef) {
	log := logger.Log(ctx).With(zap.String("method", methodDiscard))

	keys := make([]string, 0, len(images))
	seen := make(map[string]struct{}, len(images))
	for _, img := range images {
		if img.StorageID == "" {
			continue
		}
		if _, ok := seen[img.StorageID]; ok {
			continue
		}
		seen[img.StorageID] = struct{}{}
		keys = append(keys, img.StorageID)
	}
	if len(keys) == 0 {
		return
	}

	log.Debug(ctx, msgDiscardingImages, zap.Int("count", len(keys)))

	ctx = context.WithoutCancel(ctx)
	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for _, key := range keys {
		g.Go(func() error {
			err := uc.guard.Execute(ctx, operationDelete, func(ctx context.Context) error {
				return uc.storage.Delete(ctx, key)
			})
			if err != nil {
				log.Warn(ctx, msgErrDiscardImage, zap.String("key", key), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (uc *ImageUseCaseImpl) validate(upload entities.ImageUpload) (string, error) {
	if upload.Body == nil || upload.Size <= 0 {
		return "", entities.NewValidationError("image", "must not be empty")
	}
	if uc.maxBytes > 0 && upload.Size > uc.maxBytes {
		return "", entities.ErrImageTooLarge
	}
	ext, ok := upload.Extension()
	if !ok {
		return "", entities.ErrUnsupportedImageType
	}
	return ext, nil
}

// objectKey строит ключ <folder>/<owner>/<yyyy>/<mm>/<dd>/<uuid><ext>.
func (uc *ImageUseCaseImpl) objectKey(ownerID, ext string) string {
	day := entities.DayOf(uc.now())
	key := fmt.Sprintf("%s/%04d/%02d/%02d/%s%s", ownerID, day.Year, int(day.Month), day.Day, uc.newID(), ext)
	if uc.folder != "" {
		key = uc.folder + "/" + key
	}
	return key
}
