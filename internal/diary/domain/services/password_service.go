package services

import "errors"

var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// Границы длины пароля в байтах. bcrypt не различает байты после 72-го.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)
