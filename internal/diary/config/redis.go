package config

import (
	"fmt"
	"time"
)

// RedisConfig представляет конфигурацию кэша выборок по дню.
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled" env:"WHISPR_REDIS_ENABLED" env-default:"false"`
	Host           string        `yaml:"host" env:"WHISPR_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"WHISPR_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"WHISPR_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"WHISPR_REDIS_DB" env-default:"0"`
	PoolSize       int           `yaml:"pool_size" env:"WHISPR_REDIS_POOL_SIZE" env-default:"10"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"WHISPR_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"WHISPR_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"WHISPR_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	DayTTL         time.Duration `yaml:"day_ttl" env:"WHISPR_REDIS_DAY_TTL" env-default:"10m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *RedisConfig) GetHost() string                  { return c.Host }
func (c *RedisConfig) GetPort() int                     { return c.Port }
func (c *RedisConfig) GetPassword() string              { return c.Password }
func (c *RedisConfig) GetDB() int                       { return c.DB }
func (c *RedisConfig) GetPoolSize() int                 { return c.PoolSize }
func (c *RedisConfig) GetConnectTimeout() time.Duration { return c.ConnectTimeout }
func (c *RedisConfig) GetReadTimeout() time.Duration    { return c.ReadTimeout }
func (c *RedisConfig) GetWriteTimeout() time.Duration   { return c.WriteTimeout }
