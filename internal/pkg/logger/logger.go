// Package logger wraps logrus with fixengine's config-driven formatter and
// output selection, and exposes package-level convenience functions over a
// global instance installed by InitLogger. Until InitLogger has run, those
// functions do nothing.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"fixengine/internal/config"
)

// LoggerManager owns a configured logrus.Logger and the LogConfig it was
// built from.
type LoggerManager struct {
	logger *logrus.Logger
	config *config.LogConfig
}

// LoggerInstance is the process-wide logger, set by InitLogger.
var LoggerInstance *LoggerManager

// InitLogger builds a logrus.Logger from cfg and installs it as the
// package-level instance used by Debug/Info/Warn/Error/Fatal and friends.
func InitLogger(cfg *config.LogConfig) (*LoggerManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config cannot be nil")
	}

	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		logger.Warnf("invalid log level %q, using info", cfg.Level)
	}
	logger.SetLevel(level)

	if err := setLogFormatter(logger, cfg); err != nil {
		return nil, fmt.Errorf("set log formatter: %w", err)
	}
	if err := setLogOutput(logger, cfg); err != nil {
		return nil, fmt.Errorf("set log output: %w", err)
	}

	lm := &LoggerManager{logger: logger, config: cfg}
	LoggerInstance = lm
	return lm, nil
}

func setLogFormatter(logger *logrus.Logger, cfg *config.LogConfig) error {
	const timestampFormat = "2006-01-02 15:04:05.000"

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	return nil
}

func setLogOutput(logger *logrus.Logger, cfg *config.LogConfig) error {
	switch strings.ToLower(cfg.Output) {
	case "stdout", "":
		logger.SetOutput(os.Stdout)
	case "stderr":
		logger.SetOutput(os.Stderr)
	case "file":
		if cfg.FilePath == "" {
			return fmt.Errorf("log.file_path is required when log.output is file")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		rotated := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		if strings.EqualFold(cfg.Level, "debug") {
			logger.SetOutput(io.MultiWriter(os.Stdout, rotated))
		} else {
			logger.SetOutput(rotated)
		}
	default:
		return fmt.Errorf("unsupported log output: %s", cfg.Output)
	}
	return nil
}

// GetLogger returns the underlying logrus.Logger.
func (lm *LoggerManager) GetLogger() *logrus.Logger {
	return lm.logger
}

func Debug(args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Debug(args...)
	}
}

func Debugf(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Debugf(format, args...)
	}
}

func Info(args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Info(args...)
	}
}

func Infof(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Infof(format, args...)
	}
}

func Warn(args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Warn(args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Warnf(format, args...)
	}
}

func Error(args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Error(args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Errorf(format, args...)
	}
}

func Fatal(args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Fatal(args...)
	}
}

func Fatalf(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Fatalf(format, args...)
	}
}

func WithField(key string, value interface{}) *logrus.Entry {
	if LoggerInstance != nil {
		return LoggerInstance.logger.WithField(key, value)
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	if LoggerInstance != nil {
		return LoggerInstance.logger.WithFields(fields)
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
