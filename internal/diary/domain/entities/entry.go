// Package entities описывает сущности домена дневника.
package entities

import (
	"strconv"
	"strings"
	"time"
)

// ImageRef описатель изображения, загруженного в объектное хранилище.
// После прикрепления к записи не изменяется.
type ImageRef struct {
	URL        string `json:"url"`
	StorageID  string `json:"storage_id"`
	UploadedBy string `json:"uploaded_by"`
}

// DiaryEntry запись дневника одного владельца.
type DiaryEntry struct {
	ID         string
	OwnerID    string
	Title      string
	Content    string
	Mood       string
	OccurredAt time.Time
	Images     []ImageRef
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Day возвращает календарный день записи.
func (e *DiaryEntry) Day() CalendarDay {
	return DayOf(e.OccurredAt)
}

// IsOwnedBy сообщает, принадлежит ли запись пользователю userID.
func (e *DiaryEntry) IsOwnedBy(userID string) bool {
	return e.OwnerID == userID
}

// NewEntryInput данные для создания записи.
type NewEntryInput struct {
	Title      string
	Content    string
	Mood       string
	OccurredAt *time.Time
	Images     []ImageRef
}

// Validate проверяет обязательные поля и описатели изображений.
func (in NewEntryInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError("title", "must not be empty")
	}
	if strings.TrimSpace(in.Content) == "" {
		return NewValidationError("content", "must not be empty")
	}
	for i, img := range in.Images {
		prefix := "images[" + strconv.Itoa(i) + "]"
		if strings.TrimSpace(img.URL) == "" {
			return NewValidationError(prefix+".url", "must not be empty")
		}
		if strings.TrimSpace(img.StorageID) == "" {
			return NewValidationError(prefix+".storage_id", "must not be empty")
		}
	}
	return nil
}

// NewDiaryEntry собирает запись владельца ownerID. Время по умолчанию now,
// изображения без автора получают ownerID.
func NewDiaryEntry(ownerID string, in NewEntryInput, now time.Time) *DiaryEntry {
	occurredAt := now
	if in.OccurredAt != nil && !in.OccurredAt.IsZero() {
		occurredAt = *in.OccurredAt
	}

	images := make([]ImageRef, len(in.Images))
	for i, img := range in.Images {
		if img.UploadedBy == "" {
			img.UploadedBy = ownerID
		}
		images[i] = img
	}

	return &DiaryEntry{
		OwnerID:    ownerID,
		Title:      in.Title,
		Content:    in.Content,
		Mood:       in.Mood,
		OccurredAt: occurredAt.UTC(),
		Images:     images,
	}
}

// EntryPatch частичное обновление записи. nil, пустая строка или строка
// из одних пробелов оставляют прежнее значение.
type EntryPatch struct {
	Title   *string
	Content *string
	Mood    *string
}

// IsEmpty сообщает, что патч ничего не меняет.
func (p EntryPatch) IsEmpty() bool {
	return isBlank(p.Title) && isBlank(p.Content) && isBlank(p.Mood)
}

// Apply переносит заданные поля в e.
func (p EntryPatch) Apply(e *DiaryEntry) {
	if !isBlank(p.Title) {
		e.Title = *p.Title
	}
	if !isBlank(p.Content) {
		e.Content = *p.Content
	}
	if !isBlank(p.Mood) {
		e.Mood = *p.Mood
	}
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
