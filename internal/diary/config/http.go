package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет настройки HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"WHISPR_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"WHISPR_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"WHISPR_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WHISPR_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	BodyLimitMB  int           `yaml:"body_limit_mb" env:"WHISPR_HTTP_BODY_LIMIT_MB" env-default:"12"`
}

// GetAddress возвращает адрес для прослушивания.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetBodyLimit возвращает лимит тела запроса в байтах.
func (c *HTTPConfig) GetBodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
