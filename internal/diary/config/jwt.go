package config

import "time"

const defaultAccessTokenTTL = 24 * time.Hour

// JWTConfig содержит настройки для JWT токенов и хеширования паролей.
type JWTConfig struct {
	SecretKey      string `yaml:"secret_key" env:"WHISPR_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	AccessTokenTTL string `yaml:"access_token_ttl" env:"WHISPR_JWT_ACCESS_TOKEN_TTL" env-default:"24h"`
	BCryptCost     int    `yaml:"bcrypt_cost" env:"WHISPR_JWT_BCRYPT_COST" env-default:"10"`
	CookieSecure   bool   `yaml:"cookie_secure" env:"WHISPR_JWT_COOKIE_SECURE" env-default:"false"`
}

// GetAccessTokenTTL возвращает продолжительность времени жизни access токена.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil || duration <= 0 {
		return defaultAccessTokenTTL
	}
	return duration
}
