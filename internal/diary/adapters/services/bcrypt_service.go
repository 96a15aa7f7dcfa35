package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"whispr/internal/diary/domain/services"
	svc "whispr/internal/diary/ports/services"
)

const errMsgMalformedHash = "stored password hash is malformed"

// ServiceBcrypt хэширует пароли bcrypt с фиксированной стоимостью.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис. Стоимость вне [bcrypt.MinCost, bcrypt.MaxCost]
// заменяется на bcrypt.DefaultCost.
func NewBcrypt(cost int) *ServiceBcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

var _ svc.PasswordService = (*ServiceBcrypt)(nil)

// Hash возвращает bcrypt-хэш пароля. Пустой пароль и пароль длиннее
// MaxPasswordLength байт отклоняются.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" || len(password) > services.MaxPasswordLength {
		return "", services.ErrInvalidPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", services.ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с хэшем. Хэш любой стоимости принимается.
// Пароль длиннее MaxPasswordLength не мог быть сохранен, поэтому он просто не совпадает.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, services.ErrInvalidPassword
	}
	if len(password) > services.MaxPasswordLength {
		return false, nil
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", errMsgMalformedHash, err)
	}
}
