// Package logger содержит настройку логгера.
package logger

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// defaultLogFile имя файла журнала по умолчанию
const defaultLogFile = "etl.log"

// Options параметры логгера
type Options struct {
	Level      string
	Path       string
	AppDataDir string
}

// New создает логгер, который пишет JSON в stdout и в файл с ротацией
func New(opts Options) *zap.Logger {
	level := ParseLevel(opts.Level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   ResolvePath(opts.Path, opts.AppDataDir),
			MaxSize:    100, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}),
		level,
	)

	core := zapcore.NewTee(consoleCore, fileCore)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLevel переводит строковый уровень в zapcore.Level; неизвестные значения дают info
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ResolvePath выбирает путь к файлу журнала: явный путь, затем каталог данных, затем ./logs
func ResolvePath(path, appDataDir string) string {
	if path != "" {
		return path
	}

	if appDataDir != "" {
		if err := os.MkdirAll(appDataDir, 0755); err == nil {
			return filepath.Join(appDataDir, defaultLogFile)
		}
	}

	if err := os.MkdirAll("logs", 0755); err == nil {
		return filepath.Join("logs", defaultLogFile)
	}

	return defaultLogFile
}
