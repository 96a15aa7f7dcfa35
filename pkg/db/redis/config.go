// Package redis предоставляет общую реализацию клиента Redis.
package redis

import (
	"fmt"
	"time"
)

// Значения по умолчанию, синхронизированы с env-default в конфигурации сервиса.
const (
	DefaultHost           = "redis"
	DefaultPort           = 6379
	DefaultPoolSize       = 10
	DefaultConnectTimeout = 5 * time.Second
	DefaultTimeout        = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host           string
	Port           int
	Password       string
	DB             int
	PoolSize       int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Source описывает конфигурацию сервиса, из которой можно собрать Config.
type Source interface {
	GetHost() string
	GetPort() int
	GetPassword() string
	GetDB() int
	GetPoolSize() int
	GetConnectTimeout() time.Duration
	GetReadTimeout() time.Duration
	GetWriteTimeout() time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		PoolSize:       DefaultPoolSize,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultTimeout,
		WriteTimeout:   DefaultTimeout,
	}
}

// NewConfig собирает Config из конфигурации сервиса, нулевые значения заменяются умолчаниями.
func NewConfig(src Source) *Config {
	cfg := DefaultConfig()
	if h := src.GetHost(); h != "" {
		cfg.Host = h
	}
	if p := src.GetPort(); p > 0 {
		cfg.Port = p
	}
	cfg.Password = src.GetPassword()
	cfg.DB = src.GetDB()
	if ps := src.GetPoolSize(); ps > 0 {
		cfg.PoolSize = ps
	}
	if t := src.GetConnectTimeout(); t > 0 {
		cfg.ConnectTimeout = t
	}
	if t := src.GetReadTimeout(); t > 0 {
		cfg.ReadTimeout = t
	}
	if t := src.GetWriteTimeout(); t > 0 {
		cfg.WriteTimeout = t
	}
	return cfg
}

// Addr возвращает адрес в формате host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
