// Package app реализует сценарии сервиса дневника.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/ports/api"
	"whispr/internal/diary/ports/cache"
	"whispr/internal/diary/ports/repositories"
	"whispr/pkg/logger"
)

const (
	methodCreate            = "Create"
	methodList              = "List"
	methodFindByCalendarDay = "FindByCalendarDay"
	methodUpdate            = "Update"
	methodDelete            = "Delete"

	msgCreatingEntry     = "creating diary entry"
	msgEntryCreated      = "diary entry created"
	msgInvalidEntry      = "entry rejected by validation"
	msgListingEntries    = "listing diary entries"
	msgLookingUpDay      = "looking up entries by calendar day"
	msgDayServedCache    = "day lookup served from cache"
	msgUpdatingEntry     = "updating diary entry"
	msgEntryUpdated      = "diary entry updated"
	msgEmptyPatch        = "update without changes"
	msgDeletingEntry     = "deleting diary entry"
	msgEntryDeleted      = "diary entry deleted"
	msgEntryMissing      = "entry not found"
	msgForeignEntry      = "mutation of another user's entry rejected"
	msgMissingCaller     = "request without caller identity"
	msgErrCacheRead      = "failed to read day cache"
	msgErrCacheWrite     = "failed to write day cache"
	msgErrCacheDrop      = "failed to invalidate day cache"
	msgErrStoreOperation = "entry store operation failed"

	errCtxValidatingEntry = "validating entry"
	errCtxCreatingEntry   = "creating entry"
	errCtxListingEntries  = "listing entries"
	errCtxLookingUpDay    = "looking up day"
	errCtxLoadingEntry    = "loading entry"
	errCtxUpdatingEntry   = "updating entry"
	errCtxDeletingEntry   = "deleting entry"
	errCtxCheckingCaller  = "checking caller"

	dayCacheKeyPrefix = "diary:day:"
)

// EntryUseCaseImpl реализует api.EntryUseCase поверх EntryRepository
// с необязательным кэшем выборок по дню.
type EntryUseCaseImpl struct {
	entryRepo repositories.EntryRepository
	dayCache  cache.Cache
	dayTTL    time.Duration
	now       func() time.Time
}

// EntryOption настраивает EntryUseCaseImpl.
type EntryOption func(*EntryUseCaseImpl)

// WithDayCache включает кэш выборок по дню. nil отключает кэш.
func WithDayCache(c cache.Cache, ttl time.Duration) EntryOption {
	return func(uc *EntryUseCaseImpl) {
		uc.dayCache = c
		uc.dayTTL = ttl
	}
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) EntryOption {
	return func(uc *EntryUseCaseImpl) {
		uc.now = now
	}
}

// NewEntryUseCase создает сервис записей.
func NewEntryUseCase(entryRepo repositories.EntryRepository, opts ...EntryOption) api.EntryUseCase {
	uc := &EntryUseCaseImpl{
		entryRepo: entryRepo,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create сохраняет новую запись владельца callerID.
func (uc *EntryUseCaseImpl) Create(ctx context.Context, callerID string, input entities.NewEntryInput) (*entities.DiaryEntry, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate), zap.String("userID", callerID))
	log.Debug(ctx, msgCreatingEntry)

	if err := requireCaller(ctx, log, callerID); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		log.Debug(ctx, msgInvalidEntry, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEntry, err)
	}

	entry := entities.NewDiaryEntry(callerID, input, uc.now())

	wctx := context.WithoutCancel(ctx)
	created, err := uc.entryRepo.Create(wctx, entry)
	if err != nil {
		if errors.Is(err, entities.ErrValidation) {
			log.Debug(ctx, msgInvalidEntry, zap.Error(err))
		} else {
			log.Error(ctx, msgErrStoreOperation, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingEntry, err)
	}

	uc.invalidateDay(wctx, log, created.OwnerID, created.Day())

	log.Info(ctx, msgEntryCreated,
		zap.String("entryID", created.ID),
		zap.Stringer("day", created.Day()))
	return created, nil
}

// List возвращает все записи владельца.
func (uc *EntryUseCaseImpl) List(ctx context.Context, callerID string) ([]*entities.DiaryEntry, error) {
	log := logger.Log(ctx).With(zap.String("method", methodList), zap.String("userID", callerID))
	log.Debug(ctx, msgListingEntries)

	if err := requireCaller(ctx, log, callerID); err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByOwner(ctx, callerID)
	if err != nil {
		log.Error(ctx, msgErrStoreOperation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingEntries, err)
	}

	return nonNil(entries), nil
}

// FindByCalendarDay возвращает записи владельца, чей occurredAt попадает в day.
// Пустой результат это пустой срез, а не ошибка.
func (uc *EntryUseCaseImpl) FindByCalendarDay(ctx context.Context, callerID string, day entities.CalendarDay) ([]*entities.DiaryEntry, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodFindByCalendarDay),
		zap.String("userID", callerID),
		zap.Stringer("day", day))
	log.Debug(ctx, msgLookingUpDay)

	if err := requireCaller(ctx, log, callerID); err != nil {
		return nil, err
	}

	if cached, ok := uc.readDay(ctx, log, callerID, day); ok {
		log.Debug(ctx, msgDayServedCache, zap.Int("count", len(cached)))
		return cached, nil
	}

	entries, err := uc.entryRepo.FindByOwnerAndDay(ctx, callerID, day)
	if err != nil {
		log.Error(ctx, msgErrStoreOperation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLookingUpDay, err)
	}
	entries = nonNil(entries)

	uc.writeDay(ctx, log, callerID, day, entries)

	return entries, nil
}

// Update применяет patch к записи entryID, если ее владелец callerID.
func (uc *EntryUseCaseImpl) Update(ctx context.Context, callerID, entryID string, patch entities.EntryPatch) (*entities.DiaryEntry, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdate),
		zap.String("userID", callerID),
		zap.String("entryID", entryID))
	log.Debug(ctx, msgUpdatingEntry)

	entry, err := uc.loadOwned(ctx, log, callerID, entryID)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		log.Debug(ctx, msgEmptyPatch)
		return entry, nil
	}
	patch.Apply(entry)

	wctx := context.WithoutCancel(ctx)
	updated, err := uc.entryRepo.Update(wctx, entry)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEntryNotFound):
			log.Debug(ctx, msgEntryMissing)
		case errors.Is(err, entities.ErrValidation):
			log.Debug(ctx, msgInvalidEntry, zap.Error(err))
		default:
			log.Error(ctx, msgErrStoreOperation, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingEntry, err)
	}

	uc.invalidateDay(wctx, log, updated.OwnerID, updated.Day())

	log.Info(ctx, msgEntryUpdated)
	return updated, nil
}

// Delete удаляет запись entryID, если ее владелец callerID, и возвращает удаленную запись.
func (uc *EntryUseCaseImpl) Delete(ctx context.Context, callerID, entryID string) (*entities.DiaryEntry, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodDelete),
		zap.String("userID", callerID),
		zap.String("entryID", entryID))
	log.Debug(ctx, msgDeletingEntry)

	entry, err := uc.loadOwned(ctx, log, callerID, entryID)
	if err != nil {
		return nil, err
	}

	wctx := context.WithoutCancel(ctx)
	if err := uc.entryRepo.Delete(wctx, entry.ID, callerID); err != nil {
		switch {
		case errors.Is(err, entities.ErrEntryNotFound):
			log.Debug(ctx, msgEntryMissing)
		case errors.Is(err, entities.ErrValidation):
			log.Debug(ctx, msgInvalidEntry, zap.Error(err))
		default:
			log.Error(ctx, msgErrStoreOperation, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxDeletingEntry, err)
	}

	uc.invalidateDay(wctx, log, entry.OwnerID, entry.Day())

	log.Info(ctx, msgEntryDeleted, zap.Int("images", len(entry.Images)))
	return entry, nil
}

// loadOwned загружает запись и проверяет, что ее владелец callerID.
func (uc *EntryUseCaseImpl) loadOwned(ctx context.Context, log *logger.Logger, callerID, entryID string) (*entities.DiaryEntry, error) {
	if err := requireCaller(ctx, log, callerID); err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(entryID); err != nil {
		log.Debug(ctx, msgEntryMissing)
		return nil, fmt.Errorf("%s: %w", errCtxLoadingEntry, entities.ErrEntryNotFound)
	}

	entry, err := uc.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEntryNotFound):
			log.Debug(ctx, msgEntryMissing)
		case errors.Is(err, entities.ErrValidation):
			log.Debug(ctx, msgInvalidEntry, zap.Error(err))
		default:
			log.Error(ctx, msgErrStoreOperation, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxLoadingEntry, err)
	}

	if !entry.IsOwnedBy(callerID) {
		log.Warn(ctx, msgForeignEntry, zap.String("ownerID", entry.OwnerID))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingEntry, entities.ErrNotEntryOwner)
	}

	return entry, nil
}

func requireCaller(ctx context.Context, log *logger.Logger, callerID string) error {
	if callerID == "" {
		log.Debug(ctx, msgMissingCaller)
		return fmt.Errorf("%s: %w", errCtxCheckingCaller, entities.ErrUnauthenticated)
	}
	return nil
}

func nonNil(entries []*entities.DiaryEntry) []*entities.DiaryEntry {
	if entries == nil {
		return []*entities.DiaryEntry{}
	}
	return entries
}

// DayCacheKey возвращает ключ кэша выборки владельца за день.
func DayCacheKey(ownerID string, day entities.CalendarDay) string {
	return dayCacheKeyPrefix + ownerID + ":" + day.String()
}
