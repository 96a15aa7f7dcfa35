package config

import (
	"fmt"
	"net/url"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host          string `yaml:"host" env:"WHISPR_POSTGRES_HOST" env-default:"localhost"`
	Port          int    `yaml:"port" env:"WHISPR_POSTGRES_PORT" env-default:"5432"`
	User          string `yaml:"user" env:"WHISPR_POSTGRES_USER" env-default:"postgres"`
	Password      string `yaml:"password" env:"WHISPR_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string `yaml:"database" env:"WHISPR_POSTGRES_DB" env-default:"whispr"`
	MinConn       int    `yaml:"min_conn" env:"WHISPR_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int    `yaml:"max_conn" env:"WHISPR_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir string `yaml:"migrations_dir" env:"WHISPR_POSTGRES_MIGRATIONS_DIR" env-default:"migrations/diary"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
