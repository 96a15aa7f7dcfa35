package dto

import (
	"time"

	"whispr/internal/diary/domain/entities"
	"whispr/internal/diary/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse содержит выданный токен доступа.
type AuthResponse struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// User краткая информация о пользователе.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email,omitempty"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ProfileResponse ответ с профилем пользователя.
type ProfileResponse struct {
	User User `json:"user"`
}

// CheckResponse ответ на проверку сессии.
type CheckResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// MessageResponse ответ с текстовым сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadResponse ответ на загрузку изображения.
type UploadResponse struct {
	Success   bool   `json:"success"`
	ImageURL  string `json:"image_url"`
	StorageID string `json:"storage_id"`
	UserID    string `json:"user_id"`
}

// FromAuthResult строит ответ из результата аутентификации.
func FromAuthResult(r *services.AuthResult) AuthResponse {
	return AuthResponse{
		UserID:      r.UserID,
		Username:    r.Username,
		AccessToken: r.AccessToken,
		ExpiresAt:   r.ExpiresAt.UTC(),
	}
}

// FromUser строит профиль из сущности пользователя.
func FromUser(u *entities.User) User {
	created := u.CreatedAt.UTC()
	return User{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: &created}
}
