// Package health проверяет готовность окружения перед загрузкой: хранилище и каталоги данных.
package health

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// Checker проверяет компоненты загрузки
type Checker struct {
	logger  *zap.Logger
	timeout time.Duration
	db      Pinger
	dirs    map[string]string
}

var _ CheckerInterface = (*Checker)(nil)

// Status представляет статус готовности
type Status struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// Ready сообщает, что все компоненты исправны
func (s Status) Ready() bool {
	return s.Status == StatusReady
}

// WriteJSON пишет статус в w
func (s Status) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// NewChecker создает проверку. dirs сопоставляет имя компонента и путь к каталогу.
func NewChecker(db Pinger, dirs map[string]string, timeout time.Duration, logger *zap.Logger) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{
		logger:  logger,
		timeout: timeout,
		db:      db,
		dirs:    dirs,
	}
}

// Check проверяет хранилище и каталоги данных
func (c *Checker) Check(ctx context.Context) Status {
	components := make(map[string]string)
	errs := make(map[string]string)

	if c.db != nil {
		if err := c.checkDatabase(ctx); err != nil {
			components["database"] = StatusUnhealthy
			errs["database"] = err.Error()
			c.logger.Error("Database check failed", zap.Error(err))
		} else {
			components["database"] = StatusHealthy
		}
	}

	for name, dir := range c.dirs {
		if err := checkDir(dir); err != nil {
			components[name] = StatusUnhealthy
			errs[name] = err.Error()
			c.logger.Error("Data directory check failed", zap.String("component", name), zap.Error(err))
		} else {
			components[name] = StatusHealthy
		}
	}

	overall := StatusReady
	for _, status := range components {
		if status != StatusHealthy {
			overall = StatusNotReady
			break
		}
	}

	status := Status{
		Status:     overall,
		Timestamp:  time.Now(),
		Components: components,
	}
	if len(errs) > 0 {
		status.Errors = errs
	}

	if status.Ready() {
		c.logger.Info("Health check passed", zap.Any("components", components))
	} else {
		c.logger.Warn("Health check failed", zap.Any("components", components))
	}

	return status
}

// checkDatabase пингует хранилище с таймаутом
func (c *Checker) checkDatabase(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.db.PingContext(ctx)
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
