// Package postgres реализует хранилища сервиса дневника поверх pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"whispr/internal/diary/domain/entities"
	"whispr/pkg/logger"
)

// PgxPool минимальный набор методов пула, нужный репозиториям.
// Ему удовлетворяют *pgxpool.Pool и pgxmock.
type PgxPool interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

// Коды ошибок Postgres.
const (
	pgUniqueViolation     = "23505"
	pgInvalidTextInput    = "22P02"
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgDataExceptionClass  = "22"

	rejectedReason = "rejected by storage constraints"
	fieldUnknown   = "input"
)

// storageError оборачивает ошибку драйвера. Нарушение ограничений данных
// становится ValidationError, остальное считается недоступностью хранилища.
func storageError(op string, err error) error {
	if vErr := rejectedInput(err); vErr != nil {
		return fmt.Errorf("%s: %w: %w", op, vErr, err)
	}
	return fmt.Errorf("%s: %w: %w", op, entities.ErrStorageUnavailable, err)
}

// storageFailure логирует ошибку драйвера и оборачивает ее через storageError.
// Отказ по данным клиента пишется на уровне Debug.
func storageFailure(ctx context.Context, log *logger.Logger, msg, op string, err error) error {
	wrapped := storageError(op, err)
	if errors.Is(wrapped, entities.ErrValidation) {
		log.Debug(ctx, msg, zap.Error(err))
	} else {
		log.Error(ctx, msg, zap.Error(err))
	}
	return wrapped
}

// rejectedInput возвращает ValidationError для ошибок класса 22 и
// нарушений NOT NULL, CHECK и внешнего ключа. Иначе nil.
func rejectedInput(err error) *entities.ValidationError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch {
	case strings.HasPrefix(pgErr.Code, pgDataExceptionClass):
	case pgErr.Code == pgNotNullViolation, pgErr.Code == pgForeignKeyViolation, pgErr.Code == pgCheckViolation:
	default:
		return nil
	}
	return entities.NewValidationError(constraintField(pgErr), rejectedReason)
}

// constraintField угадывает поле по колонке или имени ограничения вида <table>_<column>_check.
func constraintField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := pgErr.ConstraintName
	if pgErr.TableName != "" {
		name = strings.TrimPrefix(name, pgErr.TableName+"_")
	}
	for _, suffix := range []string{"_check", "_fkey", "_not_null"} {
		name = strings.TrimSuffix(name, suffix)
	}
	if name == "" {
		return fieldUnknown
	}
	return name
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
