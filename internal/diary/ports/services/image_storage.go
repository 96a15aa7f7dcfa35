package services

import (
	"context"
	"io"
)

// ImageStorage объектное хранилище двоичных данных изображений.
type ImageStorage interface {
	// Put сохраняет объект под ключом key и возвращает его публичный URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)

	Delete(ctx context.Context, key string) error
}
