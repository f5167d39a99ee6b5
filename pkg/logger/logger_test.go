package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/var/log/etl.log", ResolvePath("/var/log/etl.log", "/ignored"))

	dir := filepath.Join(t.TempDir(), "data")
	assert.Equal(t, filepath.Join(dir, "etl.log"), ResolvePath("", dir))
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etl.log")

	log := New(Options{Level: "debug", Path: path})
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	log.Info("logger ready")
	_ = log.Sync()

	assert.FileExists(t, path)
}
