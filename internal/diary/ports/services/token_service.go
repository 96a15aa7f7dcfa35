package services

import (
	"context"
	"time"

	"whispr/internal/diary/domain/services"
)

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, username string) (string, time.Time, error)

	ValidateAccessToken(ctx context.Context, token string) (*services.JWTClaims, error)
}
