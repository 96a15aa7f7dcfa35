package api

import (
	"context"

	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, email, username, password string) (*services.AuthResult, error)

	Login(ctx context.Context, email, password string) (*services.AuthResult, error)

	Profile(ctx context.Context, userID string) (*entities.User, error)
}
