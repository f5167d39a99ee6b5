// Package worker содержит интерфейсы для пула воркеров загрузки.
package worker

import (
	"context"
	"time"
)

// PoolInterface определяет интерфейс для пула воркеров
type PoolInterface interface {
	// Start запускает пул воркеров
	Start(ctx context.Context)

	// Stop дожидается выполнения принятых задач и останавливает пул
	Stop()

	// Submit добавляет задачу в очередь
	Submit(job Job) error

	// GetProcessedJobs возвращает количество обработанных задач
	GetProcessedJobs() int64

	// GetFailedJobs возвращает количество неудачных задач
	GetFailedJobs() int64

	// GetSkippedJobs возвращает количество задач, пропущенных после отмены
	GetSkippedJobs() int64

	// GetProcessingTime возвращает общее время обработки
	GetProcessingTime() time.Duration
}
