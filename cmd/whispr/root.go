package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whispr/internal/diary/config"
	"whispr/pkg/logger"
)

// Константы для переменных окружения, читаемых до загрузки конфигурации.
const (
	EnvLoggerMode  = "WHISPR_LOGGER_MODE"
	EnvLoggerLevel = "WHISPR_LOGGER_LEVEL"
	EnvConfigPath  = "WHISPR_CONFIG"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

var (
	configPath string
	appConfig  *config.Config
	rootCtx    context.Context
)

var rootCmd = &cobra.Command{
	Use:           "whispr",
	Short:         "Personal diary service",
	Long:          "Whispr stores diary entries per user and looks them up by UTC calendar day.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return bootstrap(cmd.Context())
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		syncLogger()
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv(EnvConfigPath),
		"path to YAML or .env configuration file")
}

// bootstrap поднимает логгер из окружения, загружает конфигурацию
// и пересоздает логгер с ее настройками.
func bootstrap(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}
	if err := logger.InitGlobalLoggerWithLevel(env, os.Getenv(EnvLoggerLevel)); err != nil {
		return fmt.Errorf("%s: %w", ErrInitLogger, err)
	}

	rootCtx = logger.NewRequestIDContext(parent, "")

	cfg, err := config.Load(rootCtx, configPath)
	if err != nil {
		logger.Log(rootCtx).Error(rootCtx, ErrLoadConfig, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)

	appConfig = cfg
	return nil
}

func syncLogger() {
	if err := logger.Log(context.Background()).Sync(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
			return
		}
		if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
			panic(writeErr)
		}
	}
}
