// Package api определяет порты сценариев, которые использует HTTP слой.
package api

import (
	"context"

	"whispr/internal/diary/domain/entities"
)

// EntryUseCase определяет операции над записями дневника.
// callerID всегда передается явно и не берется из контекста.
type EntryUseCase interface {
	Create(ctx context.Context, callerID string, input entities.NewEntryInput) (*entities.DiaryEntry, error)

	List(ctx context.Context, callerID string) ([]*entities.DiaryEntry, error)

	FindByCalendarDay(ctx context.Context, callerID string, day entities.CalendarDay) ([]*entities.DiaryEntry, error)

	Update(ctx context.Context, callerID, entryID string, patch entities.EntryPatch) (*entities.DiaryEntry, error)

	Delete(ctx context.Context, callerID, entryID string) (*entities.DiaryEntry, error)
}
