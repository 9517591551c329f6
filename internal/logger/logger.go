package logger

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type ZapLogger struct {
	logger *zap.SugaredLogger
}

// NewZapLogger builds a console logger for dev and a JSON logger for prod.
func NewZapLogger(env string, level string) (*ZapLogger, error) {
	var cfg zap.Config

	switch env {
	case "dev":
		cfg = zap.NewDevelopmentConfig()
	case "prod":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("environment can only be dev or prod")
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)

		if err != nil {
			return nil, fmt.Errorf("error parsing log level: %w", err)
		}

		cfg.Level = lvl
	}

	base, err := cfg.Build(zap.AddCallerSkip(1))

	if err != nil {
		return nil, fmt.Errorf("error building logger: %w", err)
	}

	return NewZapLoggerFrom(base.With(
		zap.String("app", "upepo"),
		zap.String("runtime", runtime.Version()),
		zap.String("os", runtime.GOOS),
		zap.String("architecture", runtime.GOARCH),
		zap.String("version", "1.0"),
	)), nil
}

func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{
		logger: logger.Sugar(),
	}
}

func (l *ZapLogger) Info(msg string, args ...any) {
	l.logger.Infow(msg, args...)
}

func (l *ZapLogger) Warn(msg string, args ...any) {
	l.logger.Warnw(msg, args...)
}

func (l *ZapLogger) Error(msg string, args ...any) {
	l.logger.Errorw(msg, args...)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
