// Package dto содержит формы запросов и ответов HTTP API.
package dto

import (
	"time"

	"whispr/internal/diary/domain/entities"
)

// Image описатель изображения в запросах и ответах.
type Image struct {
	URL        string `json:"url"`
	StorageID  string `json:"storage_id"`
	UploadedBy string `json:"uploaded_by,omitempty"`
}

// CreateEntryRequest содержит данные для создания записи.
type CreateEntryRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Mood       string     `json:"mood"`
	OccurredAt *time.Time `json:"occurred_at"`
	Images     []Image    `json:"images"`
}

// UpdateEntryRequest содержит изменяемые поля записи.
type UpdateEntryRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Mood    *string `json:"mood"`
}

// Entry представляет запись дневника в ответе.
type Entry struct {
	ID         string    `json:"id"`
	Owner      string    `json:"owner"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Mood       string    `json:"mood,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Images     []Image   `json:"images"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DeleteEntryResponse ответ на удаление записи.
type DeleteEntryResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ToInput преобразует запрос в данные сценария создания.
func (r *CreateEntryRequest) ToInput() entities.NewEntryInput {
	images := make([]entities.ImageRef, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, entities.ImageRef{
			URL:        img.URL,
			StorageID:  img.StorageID,
			UploadedBy: img.UploadedBy,
		})
	}
	return entities.NewEntryInput{
		Title:      r.Title,
		Content:    r.Content,
		Mood:       r.Mood,
		OccurredAt: r.OccurredAt,
		Images:     images,
	}
}

// ToPatch преобразует запрос в частичное обновление.
func (r *UpdateEntryRequest) ToPatch() entities.EntryPatch {
	return entities.EntryPatch{Title: r.Title, Content: r.Content, Mood: r.Mood}
}

// FromEntry строит ответ из сущности.
func FromEntry(e *entities.DiaryEntry) Entry {
	images := make([]Image, 0, len(e.Images))
	for _, img := range e.Images {
		images = append(images, Image{URL: img.URL, StorageID: img.StorageID, UploadedBy: img.UploadedBy})
	}
	return Entry{
		ID:         e.ID,
		Owner:      e.OwnerID,
		Title:      e.Title,
		Content:    e.Content,
		Mood:       e.Mood,
		OccurredAt: e.OccurredAt.UTC(),
		Images:     images,
		CreatedAt:  e.CreatedAt.UTC(),
		UpdatedAt:  e.UpdatedAt.UTC(),
	}
}

// FromEntries строит список ответов, пустой список не равен nil.
func FromEntries(entries []*entities.DiaryEntry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}
