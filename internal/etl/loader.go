package etl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sparkify/internal/infrastructure/metrics"
	"sparkify/internal/infrastructure/worker"
	"sparkify/internal/model"

	"go.uber.org/zap"
)

// Options параметры загрузки
type Options struct {
	SongDataDir string
	LogDataDir  string

	// Location зона, в которой интерпретируются метки ts журнала
	Location *time.Location

	// ContinueOnError откатывает сбойный файл и продолжает загрузку остальных
	ContinueOnError bool

	// SongWorkers количество параллельных воркеров для файлов песен
	SongWorkers int
}

// FileFunc обрабатывает один файл внутри транзакции
type FileFunc func(ctx context.Context, uow model.UnitOfWork, path string) (model.RowCounts, error)

// FileError ошибка обработки конкретного файла
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to process %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Summary итог загрузки одного каталога
type Summary struct {
	Kind      model.FileKind
	Dir       string
	Found     int
	Processed int
	Failed    []*FileError
	Rows      model.RowCounts
	Duration  time.Duration
}

// Loader выполняет загрузку каталогов песен и журналов в хранилище
type Loader struct {
	store   model.Store
	opts    Options
	logger  *zap.Logger
	metrics metrics.Interface
}

// NewLoader создает новый загрузчик
func NewLoader(store model.Store, opts Options, m metrics.Interface, logger *zap.Logger) *Loader {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Loader{
		store:   store,
		opts:    opts,
		logger:  logger,
		metrics: m,
	}
}

// Run загружает сначала каталог песен, затем каталог журналов.
// Песни должны быть в хранилище до журналов, иначе воспроизведения не найдут трек.
func (l *Loader) Run(ctx context.Context) ([]*Summary, error) {
	var summaries []*Summary

	songs, err := l.LoadSongs(ctx, l.opts.SongDataDir)
	if songs != nil {
		summaries = append(summaries, songs)
	}
	if err != nil {
		return summaries, err
	}

	logs, err := l.LoadLogs(ctx, l.opts.LogDataDir)
	if logs != nil {
		summaries = append(summaries, logs)
	}
	if err != nil {
		return summaries, err
	}

	return summaries, nil
}

// LoadSongs загружает все файлы песен из каталога
func (l *Loader) LoadSongs(ctx context.Context, dir string) (*Summary, error) {
	if l.opts.SongWorkers > 1 {
		return l.processDirParallel(ctx, dir, model.FileKindSong, l.processSongFile, l.opts.SongWorkers)
	}
	return l.ProcessDir(ctx, dir, model.FileKindSong, l.processSongFile)
}

// LoadLogs загружает все файлы журналов из каталога. Файлы обрабатываются строго последовательно.
func (l *Loader) LoadLogs(ctx context.Context, dir string) (*Summary, error) {
	return l.ProcessDir(ctx, dir, model.FileKindLog, l.processLogFile)
}

// ProcessDir находит файлы в каталоге и обрабатывает каждый в отдельной транзакции
func (l *Loader) ProcessDir(ctx context.Context, dir string, kind model.FileKind, fn FileFunc) (*Summary, error) {
	start := time.Now()

	files, err := FindFiles(dir, model.DataFileExt)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Kind: kind, Dir: dir, Found: len(files)}
	l.logger.Info(fmt.Sprintf("%d files found in %s", len(files), dir),
		zap.String("kind", kind.String()),
		zap.Int("files", len(files)))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		rows, err := l.processFile(ctx, kind, path, fn)
		if err != nil {
			summary.Failed = append(summary.Failed, err)
			if !l.opts.ContinueOnError {
				summary.Duration = time.Since(start)
				return summary, err
			}
			l.logger.Error("Skipping file", zap.String("path", path), zap.Error(err.Err))
			continue
		}

		summary.Processed++
		summary.Rows.Add(rows)
		l.logger.Info(fmt.Sprintf("%d/%d files processed.", i+1, len(files)),
			zap.String("kind", kind.String()),
			zap.String("path", path))
	}

	summary.Duration = time.Since(start)
	l.logSummary(summary)
	return summary, nil
}

// processDirParallel загружает файлы пулом воркеров. Порядок между файлами не гарантируется,
// поэтому используется только для файлов песен.
func (l *Loader) processDirParallel(ctx context.Context, dir string, kind model.FileKind, fn FileFunc, workers int) (*Summary, error) {
	start := time.Now()

	files, err := FindFiles(dir, model.DataFileExt)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Kind: kind, Dir: dir, Found: len(files)}
	l.logger.Info(fmt.Sprintf("%d files found in %s", len(files), dir),
		zap.String("kind", kind.String()),
		zap.Int("files", len(files)),
		zap.Int("workers", workers))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		firstErr *FileError
	)

	pool := worker.NewWorkerPool(workers, len(files), l.logger)
	pool.Start(runCtx)

	for i, path := range files {
		path := path
		job := worker.Job{
			ID:   i,
			Path: path,
			Handler: func(ctx context.Context) error {
				rows, ferr := l.processFile(ctx, kind, path, fn)

				mu.Lock()
				defer mu.Unlock()

				if ferr != nil {
					summary.Failed = append(summary.Failed, ferr)
					if !l.opts.ContinueOnError {
						if firstErr == nil {
							firstErr = ferr
						}
						cancel()
					} else {
						l.logger.Error("Skipping file", zap.String("path", path), zap.Error(ferr.Err))
					}
					return ferr
				}

				summary.Processed++
				summary.Rows.Add(rows)
				l.logger.Info(fmt.Sprintf("%d/%d files processed.", summary.Processed, len(files)),
					zap.String("kind", kind.String()),
					zap.String("path", path))
				return nil
			},
		}

		if err := pool.Submit(job); err != nil {
			pool.Stop()
			return summary, fmt.Errorf("failed to schedule %s: %w", path, err)
		}
	}

	pool.Stop()
	summary.Duration = time.Since(start)

	if firstErr != nil {
		return summary, firstErr
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	l.logSummary(summary)
	return summary, nil
}

// processFile выполняет fn в транзакции и записывает метрики
func (l *Loader) processFile(ctx context.Context, kind model.FileKind, path string, fn FileFunc) (model.RowCounts, *FileError) {
	start := time.Now()

	var rows model.RowCounts
	err := l.store.RunInTx(ctx, func(ctx context.Context, uow model.UnitOfWork) error {
		var err error
		rows, err = fn(ctx, uow, path)
		return err
	})

	l.metrics.RecordFile(kind.String(), err == nil, time.Since(start))
	if err != nil {
		return model.RowCounts{}, &FileError{Path: path, Err: err}
	}

	l.metrics.AddRows(model.TableSongs, rows.Songs)
	l.metrics.AddRows(model.TableArtists, rows.Artists)
	l.metrics.AddRows(model.TableUsers, rows.Users)
	l.metrics.AddRows(model.TableTime, rows.Times)
	l.metrics.AddRows(model.TableSongPlays, rows.SongPlays)

	return rows, nil
}

// processSongFile загружает одну запись песни: строки artists и songs
func (l *Loader) processSongFile(ctx context.Context, uow model.UnitOfWork, path string) (model.RowCounts, error) {
	var rows model.RowCounts

	rec, err := ReadSongFile(path)
	if err != nil {
		return rows, err
	}

	batch, err := TransformSong(rec)
	if err != nil {
		return rows, &model.MalformedRecordError{Path: path, Err: err}
	}

	if rows.Songs, err = uow.InsertSongs(ctx, []model.Song{batch.Song}); err != nil {
		return rows, err
	}
	if rows.Artists, err = uow.InsertArtists(ctx, []model.Artist{batch.Artist}); err != nil {
		return rows, err
	}

	return rows, nil
}

// processLogFile загружает события одного файла журнала: time, users и songplays
func (l *Loader) processLogFile(ctx context.Context, uow model.UnitOfWork, path string) (model.RowCounts, error) {
	var rows model.RowCounts

	events, err := ReadLogFile(path)
	if err != nil {
		return rows, err
	}

	batch, err := TransformLog(events, l.opts.Location)
	if err != nil {
		return rows, &model.MalformedRecordError{Path: path, Err: err}
	}

	if rows.Times, err = uow.InsertTimes(ctx, batch.Times); err != nil {
		return rows, err
	}
	if rows.Users, err = uow.InsertUsers(ctx, batch.Users); err != nil {
		return rows, err
	}

	plays, err := l.resolvePlays(ctx, uow, batch.Plays)
	if err != nil {
		return rows, err
	}
	if rows.SongPlays, err = uow.InsertSongPlays(ctx, plays); err != nil {
		return rows, err
	}

	return rows, nil
}

// resolvePlays ищет song_id и artist_id для каждого воспроизведения.
// Отсутствие совпадения не ошибка: идентификаторы остаются NULL.
func (l *Loader) resolvePlays(ctx context.Context, uow model.UnitOfWork, pending []PendingPlay) ([]model.SongPlay, error) {
	plays := make([]model.SongPlay, 0, len(pending))

	for _, p := range pending {
		var match *model.SongMatch
		if p.HasLookupKey() {
			var err error
			match, err = uow.FindSong(ctx, *p.Title, *p.Artist, *p.Length)
			if err != nil {
				return nil, err
			}
		}
		l.metrics.RecordLookup(match != nil)
		plays = append(plays, p.Resolve(match))
	}

	return plays, nil
}

// logSummary пишет итог загрузки каталога
func (l *Loader) logSummary(s *Summary) {
	l.logger.Info("Directory loaded",
		zap.String("kind", s.Kind.String()),
		zap.String("dir", s.Dir),
		zap.Int("found", s.Found),
		zap.Int("processed", s.Processed),
		zap.Int("failed", len(s.Failed)),
		zap.Int64("rows", s.Rows.Total()),
		zap.Duration("duration", s.Duration))
}

// IsMalformed проверяет, вызвана ли ошибка некорректной записью во входном файле
func IsMalformed(err error) bool {
	var mre *model.MalformedRecordError
	return errors.As(err, &mre)
}
