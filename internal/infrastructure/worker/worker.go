// Package worker реализует пул воркеров для параллельной загрузки файлов.
package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pool пул воркеров для обработки файлов
type Pool struct {
	workers  int
	jobQueue chan Job
	ctx      context.Context
	wg       sync.WaitGroup
	logger   *zap.Logger
	metrics  *stats
	stopOnce sync.Once
	stopped  bool
	mu       sync.RWMutex
}

// Убеждаемся, что Pool реализует PoolInterface
var _ PoolInterface = (*Pool)(nil)

// Job представляет задачу для обработки
type Job struct {
	ID      int
	Path    string
	Handler func(ctx context.Context) error
}

// stats счетчики воркер пула
type stats struct {
	mu             sync.RWMutex
	processedJobs  int64
	failedJobs     int64
	skippedJobs    int64
	processingTime time.Duration
}

// NewWorkerPool создает новый пул воркеров
func NewWorkerPool(workers int, queueSize int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		ctx:      context.Background(),
		logger:   logger,
		metrics:  &stats{},
	}
}

// Start запускает пул воркеров. Отмена ctx пропускает задачи, которые еще не начались.
func (wp *Pool) Start(ctx context.Context) {
	wp.ctx = ctx
	wp.logger.Info("Starting worker pool", zap.Int("workers", wp.workers))

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop закрывает очередь и ждет, пока воркеры разберут все принятые задачи
func (wp *Pool) Stop() {
	wp.stopOnce.Do(func() {
		wp.mu.Lock()
		wp.stopped = true
		wp.mu.Unlock()
		close(wp.jobQueue)
	})

	wp.wg.Wait()
	wp.logger.Info("Worker pool stopped",
		zap.Int64("processed", wp.GetProcessedJobs()),
		zap.Int64("failed", wp.GetFailedJobs()),
		zap.Int64("skipped", wp.GetSkippedJobs()),
		zap.Duration("busy", wp.GetProcessingTime()))
}

// Submit добавляет задачу в очередь
func (wp *Pool) Submit(job Job) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.stopped {
		return ErrPoolStopped
	}

	select {
	case wp.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// worker основной цикл воркера
func (wp *Pool) worker(id int) {
	defer wp.wg.Done()

	wp.logger.Debug("Worker started", zap.Int("worker_id", id))

	for job := range wp.jobQueue {
		if wp.ctx.Err() != nil {
			wp.metrics.mu.Lock()
			wp.metrics.skippedJobs++
			wp.metrics.mu.Unlock()
			continue
		}

		wp.processJob(job, id)
	}

	wp.logger.Debug("Worker stopping", zap.Int("worker_id", id))
}

// processJob обрабатывает задачу
func (wp *Pool) processJob(job Job, workerID int) {
	startTime := time.Now()

	wp.logger.Debug("Processing job",
		zap.Int("worker_id", workerID),
		zap.Int("job_id", job.ID),
		zap.String("path", job.Path))

	err := job.Handler(wp.ctx)

	wp.metrics.mu.Lock()
	if err != nil {
		wp.metrics.failedJobs++
	} else {
		wp.metrics.processedJobs++
	}
	wp.metrics.processingTime += time.Since(startTime)
	wp.metrics.mu.Unlock()

	if err != nil {
		wp.logger.Debug("Job failed",
			zap.Int("worker_id", workerID),
			zap.String("path", job.Path),
			zap.Error(err))
	}
}

// GetProcessedJobs возвращает количество обработанных задач
func (wp *Pool) GetProcessedJobs() int64 {
	wp.metrics.mu.RLock()
	defer wp.metrics.mu.RUnlock()
	return wp.metrics.processedJobs
}

// GetFailedJobs возвращает количество неудачных задач
func (wp *Pool) GetFailedJobs() int64 {
	wp.metrics.mu.RLock()
	defer wp.metrics.mu.RUnlock()
	return wp.metrics.failedJobs
}

// GetSkippedJobs возвращает количество задач, пропущенных после отмены контекста
func (wp *Pool) GetSkippedJobs() int64 {
	wp.metrics.mu.RLock()
	defer wp.metrics.mu.RUnlock()
	return wp.metrics.skippedJobs
}

// GetProcessingTime возвращает общее время обработки
func (wp *Pool) GetProcessingTime() time.Duration {
	wp.metrics.mu.RLock()
	defer wp.metrics.mu.RUnlock()
	return wp.metrics.processingTime
}

// Ошибки
var (
	ErrQueueFull   = &Error{msg: "job queue is full"}
	ErrPoolStopped = &Error{msg: "worker pool is stopped"}
)

// Error ошибка воркера
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}
