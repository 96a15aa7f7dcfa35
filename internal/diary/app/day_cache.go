package app

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"whispr/internal/diary/domain/entities"
	"whispr/pkg/logger"
)

// cachedEntry форма записи в кэше выборок по дню.
type cachedEntry struct {
	ID         string              `json:"id"`
	OwnerID    string              `json:"owner_id"`
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	Mood       string              `json:"mood,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
	Images     []entities.ImageRef `json:"images"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func (uc *EntryUseCaseImpl) readDay(ctx context.Context, log *logger.Logger, ownerID string, day entities.CalendarDay) ([]*entities.DiaryEntry, bool) {
	if uc.dayCache == nil {
		return nil, false
	}

	raw, err := uc.dayCache.Get(ctx, DayCacheKey(ownerID, day))
	if err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var cached []cachedEntry
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		return nil, false
	}

	entries := make([]*entities.DiaryEntry, 0, len(cached))
	for _, c := range cached {
		images := c.Images
		if images == nil {
			images = []entities.ImageRef{}
		}
		entries = append(entries, &entities.DiaryEntry{
			ID:         c.ID,
			OwnerID:    c.OwnerID,
			Title:      c.Title,
			Content:    c.Content,
			Mood:       c.Mood,
			OccurredAt: c.OccurredAt.UTC(),
			Images:     images,
			CreatedAt:  c.CreatedAt.UTC(),
			UpdatedAt:  c.UpdatedAt.UTC(),
		})
	}
	return entries, true
}

func (uc *EntryUseCaseImpl) writeDay(ctx context.Context, log *logger.Logger, ownerID string, day entities.CalendarDay, entries []*entities.DiaryEntry) {
	if uc.dayCache == nil {
		return
	}

	cached := make([]cachedEntry, 0, len(entries))
	for _, e := range entries {
		cached = append(cached, cachedEntry{
			ID:         e.ID,
			OwnerID:    e.OwnerID,
			Title:      e.Title,
			Content:    e.Content,
			Mood:       e.Mood,
			OccurredAt: e.OccurredAt,
			Images:     e.Images,
			CreatedAt:  e.CreatedAt,
			UpdatedAt:  e.UpdatedAt,
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
		return
	}
	if err := uc.dayCache.Set(ctx, DayCacheKey(ownerID, day), string(raw), uc.dayTTL); err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
	}
}

func (uc *EntryUseCaseImpl) invalidateDay(ctx context.Context, log *logger.Logger, ownerID string, day entities.CalendarDay) {
	if uc.dayCache == nil {
		return
	}
	if err := uc.dayCache.Delete(ctx, DayCacheKey(ownerID, day)); err != nil {
		log.Warn(ctx, msgErrCacheDrop, zap.Error(err))
	}
}
