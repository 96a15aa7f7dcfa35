// Package repositories определяет порты хранилищ сервиса дневника.
package repositories

import (
	"context"

	"whispr/internal/diary/domain/entities"
)

// EntryRepository определяет долговременное хранилище записей.
// Выборки упорядочены по occurred_at DESC, id DESC.
type EntryRepository interface {
	Create(ctx context.Context, entry *entities.DiaryEntry) (*entities.DiaryEntry, error)

	FindByID(ctx context.Context, entryID string) (*entities.DiaryEntry, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*entities.DiaryEntry, error)

	FindByOwnerAndDay(ctx context.Context, ownerID string, day entities.CalendarDay) ([]*entities.DiaryEntry, error)

	Update(ctx context.Context, entry *entities.DiaryEntry) (*entities.DiaryEntry, error)

	Delete(ctx context.Context, entryID, ownerID string) error
}
