// Package services содержит значения и ошибки домена аутентификации.
package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// AuthResult результат успешной регистрации или входа.
type AuthResult struct {
	UserID      string
	Username    string
	AccessToken string
	ExpiresAt   time.Time
}
