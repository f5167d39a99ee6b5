// Package metrics содержит метрики загрузки на базе Prometheus.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const namespace = "sparkify_etl"

// Убеждаемся, что Metrics реализует Interface
var _ Interface = (*Metrics)(nil)

// Metrics счетчики одного запуска загрузки
type Metrics struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	files        *prometheus.CounterVec
	fileDuration *prometheus.HistogramVec
	rows         *prometheus.CounterVec
	lookups      *prometheus.CounterVec
	lastRun      prometheus.Gauge
}

// NewMetrics создает метрики в собственном реестре
func NewMetrics(logger *zap.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logger:   logger,
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Data files processed, by kind and status.",
		}, []string{"kind", "status"}),
		fileDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time spent loading one data file.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_inserted_total",
			Help:      "Rows inserted, by table. Ignored conflicts are not counted.",
		}, []string{"table"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "song_lookups_total",
			Help:      "Catalog lookups for song plays, by result.",
		}, []string{"result"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last metrics export.",
		}),
	}

	m.registry.MustRegister(m.files, m.fileDuration, m.rows, m.lookups, m.lastRun)
	return m
}

// RecordFile записывает результат обработки файла
func (m *Metrics) RecordFile(kind string, ok bool, duration time.Duration) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	m.files.WithLabelValues(kind, status).Inc()
	m.fileDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// AddRows добавляет количество вставленных строк
func (m *Metrics) AddRows(table string, n int64) {
	if n <= 0 {
		return
	}
	m.rows.WithLabelValues(table).Add(float64(n))
}

// RecordLookup записывает результат поиска трека
func (m *Metrics) RecordLookup(found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	m.lookups.WithLabelValues(result).Inc()
}

// WriteTextfile сохраняет метрики в формате textfile collector node_exporter
func (m *Metrics) WriteTextfile(path string) error {
	m.lastRun.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	m.logger.Info("Metrics written", zap.String("path", path))
	return nil
}

// GetStats возвращает значения счетчиков в виде map
func (m *Metrics) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"files":   map[string]float64{},
		"rows":    map[string]float64{},
		"lookups": map[string]float64{},
	}

	families, err := m.registry.Gather()
	if err != nil {
		m.logger.Warn("Failed to gather metrics", zap.Error(err))
		return stats
	}

	for _, family := range families {
		var target map[string]float64
		var label string
		switch family.GetName() {
		case namespace + "_files_total":
			target, label = stats["files"].(map[string]float64), ""
		case namespace + "_rows_inserted_total":
			target, label = stats["rows"].(map[string]float64), "table"
		case namespace + "_song_lookups_total":
			target, label = stats["lookups"].(map[string]float64), "result"
		default:
			continue
		}

		for _, metric := range family.GetMetric() {
			key := ""
			for _, pair := range metric.GetLabel() {
				if label == "" {
					if key != "" {
						key += "/"
					}
					key += pair.GetValue()
				} else if pair.GetName() == label {
					key = pair.GetValue()
				}
			}
			target[key] += metric.GetCounter().GetValue()
		}
	}

	return stats
}
