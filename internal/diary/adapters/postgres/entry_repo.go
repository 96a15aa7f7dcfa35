package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/ports/repositories"
	"whispr/pkg/logger"
)

const (
	entryColumns = `id, owner_id, title, content, mood, occurred_at, images, created_at, updated_at`

	insertEntryQuery = `
        INSERT INTO entries (owner_id, title, content, mood, occurred_at, entry_day, images)
        VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
        RETURNING ` + entryColumns

	selectEntryByIDQuery = `
        SELECT ` + entryColumns + `
        FROM entries
        WHERE id = $1`

	selectEntriesByOwnerQuery = `
        SELECT ` + entryColumns + `
        FROM entries
        WHERE owner_id = $1
        ORDER BY occurred_at DESC, id DESC`

	selectEntriesByOwnerDayQuery = `
        SELECT ` + entryColumns + `
        FROM entries
        WHERE owner_id = $1 AND entry_day = $2
        ORDER BY occurred_at DESC, id DESC`

	updateEntryQuery = `
        UPDATE entries
        SET title = $3, content = $4, mood = $5, updated_at = now()
        WHERE id = $1 AND owner_id = $2
        RETURNING ` + entryColumns

	deleteEntryQuery = `
        DELETE FROM entries
        WHERE id = $1 AND owner_id = $2`
)

const (
	errCtxInsertEntry   = "inserting entry"
	errCtxSelectEntry   = "selecting entry"
	errCtxSelectEntries = "selecting entries"
	errCtxScanEntry     = "scanning entry"
	errCtxUpdateEntry   = "updating entry"
	errCtxDeleteEntry   = "deleting entry"
	errCtxEncodeImages  = "encoding images"
	errCtxDecodeImages  = "decoding images"
)

// EntryRepository реализует repositories.EntryRepository для Postgres.
// Календарный день записи хранится в колонке entry_day и вычисляется при вставке.
type EntryRepository struct {
	pool PgxPool
}

// NewEntryRepository создает новый экземпляр репозитория записей.
func NewEntryRepository(pool PgxPool) repositories.EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create вставляет запись и возвращает ее с присвоенным id и временем.
func (r *EntryRepository) Create(ctx context.Context, entry *entities.DiaryEntry) (*entities.DiaryEntry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "Create"))

	images, err := encodeImages(entry.Images)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxEncodeImages, err)
	}

	created, err := scanEntry(r.pool.QueryRow(ctx, insertEntryQuery,
		entry.OwnerID,
		entry.Title,
		entry.Content,
		entry.Mood,
		entry.OccurredAt.UTC(),
		entities.DayOf(entry.OccurredAt).Time(),
		images,
	))
	if err != nil {
		return nil, storageFailure(ctx, log, "error inserting entry", errCtxInsertEntry, err)
	}

	return created, nil
}

// FindByID находит запись по id.
func (r *EntryRepository) FindByID(ctx context.Context, entryID string) (*entities.DiaryEntry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "FindByID"))

	entry, err := scanEntry(r.pool.QueryRow(ctx, selectEntryByIDQuery, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || hasCode(err, pgInvalidTextInput) {
			log.Debug(ctx, "entry not found", zap.String("id", entryID))
			return nil, entities.ErrEntryNotFound
		}
		log.Error(ctx, "error finding entry by id", zap.Error(err))
		return nil, storageError(errCtxSelectEntry, err)
	}

	return entry, nil
}

// ListByOwner возвращает все записи владельца.
func (r *EntryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.DiaryEntry, error) {
	return r.queryEntries(ctx, "ListByOwner", selectEntriesByOwnerQuery, ownerID)
}

// FindByOwnerAndDay выбирает записи владельца за календарный день одним запросом по индексу.
func (r *EntryRepository) FindByOwnerAndDay(ctx context.Context, ownerID string, day entities.CalendarDay) ([]*entities.DiaryEntry, error) {
	return r.queryEntries(ctx, "FindByOwnerAndDay", selectEntriesByOwnerDayQuery, ownerID, day.Time())
}

// Update сохраняет title, content и mood записи. owner_id и occurred_at не меняются.
func (r *EntryRepository) Update(ctx context.Context, entry *entities.DiaryEntry) (*entities.DiaryEntry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "Update"))

	updated, err := scanEntry(r.pool.QueryRow(ctx, updateEntryQuery,
		entry.ID,
		entry.OwnerID,
		entry.Title,
		entry.Content,
		entry.Mood,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || hasCode(err, pgInvalidTextInput) {
			log.Debug(ctx, "entry not found for update", zap.String("id", entry.ID))
			return nil, entities.ErrEntryNotFound
		}
		return nil, storageFailure(ctx, log, "error updating entry", errCtxUpdateEntry, err)
	}

	return updated, nil
}

// Delete удаляет запись владельца.
func (r *EntryRepository) Delete(ctx context.Context, entryID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, deleteEntryQuery, entryID, ownerID)
	if err != nil {
		if hasCode(err, pgInvalidTextInput) {
			return entities.ErrEntryNotFound
		}
		log.Error(ctx, "error deleting entry", zap.Error(err))
		return storageError(errCtxDeleteEntry, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "entry not found for deletion", zap.String("id", entryID))
		return entities.ErrEntryNotFound
	}

	return nil
}

func (r *EntryRepository) queryEntries(ctx context.Context, method, query string, args ...any) ([]*entities.DiaryEntry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", method))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error selecting entries", zap.Error(err))
		return nil, storageError(errCtxSelectEntries, err)
	}
	defer rows.Close()

	entries := make([]*entities.DiaryEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error(ctx, "error scanning entry", zap.Error(err))
			return nil, storageError(errCtxScanEntry, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating entries", zap.Error(err))
		return nil, storageError(errCtxSelectEntries, err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*entities.DiaryEntry, error) {
	var (
		entry  entities.DiaryEntry
		images []byte
	)
	if err := row.Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.Title,
		&entry.Content,
		&entry.Mood,
		&entry.OccurredAt,
		&images,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}

	decoded, err := decodeImages(images)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDecodeImages, err)
	}
	entry.Images = decoded
	entry.OccurredAt = entry.OccurredAt.UTC()
	entry.CreatedAt = entry.CreatedAt.UTC()
	entry.UpdatedAt = entry.UpdatedAt.UTC()

	return &entry, nil
}

func encodeImages(images []entities.ImageRef) (string, error) {
	if len(images) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeImages(raw []byte) ([]entities.ImageRef, error) {
	images := make([]entities.ImageRef, 0)
	if len(raw) == 0 {
		return images, nil
	}
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = make([]entities.ImageRef, 0)
	}
	return images, nil
}
