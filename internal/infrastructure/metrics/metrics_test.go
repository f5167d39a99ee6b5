package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetrics_RecordFile(t *testing.T) {
	m := NewMetrics(zap.NewNop())

	m.RecordFile("song", true, 10*time.Millisecond)
	m.RecordFile("song", true, 20*time.Millisecond)
	m.RecordFile("log", false, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.files.WithLabelValues("song", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.files.WithLabelValues("log", "failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.files.WithLabelValues("log", "ok")))
}

func TestMetrics_AddRows(t *testing.T) {
	m := NewMetrics(zap.NewNop())

	m.AddRows("songs", 3)
	m.AddRows("songs", 0)
	m.AddRows("songplays", 7)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.rows.WithLabelValues("songs")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.rows.WithLabelValues("songplays")))
}

func TestMetrics_GetStats(t *testing.T) {
	m := NewMetrics(zap.NewNop())

	m.RecordFile("log", true, time.Millisecond)
	m.AddRows("users", 2)
	m.RecordLookup(true)
	m.RecordLookup(false)
	m.RecordLookup(false)

	stats := m.GetStats()

	files := stats["files"].(map[string]float64)
	assert.Equal(t, 1.0, files["log/ok"])

	rows := stats["rows"].(map[string]float64)
	assert.Equal(t, 2.0, rows["users"])

	lookups := stats["lookups"].(map[string]float64)
	assert.Equal(t, 1.0, lookups["hit"])
	assert.Equal(t, 2.0, lookups["miss"])
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics(zap.NewNop())
	m.AddRows("songs", 1)

	path := filepath.Join(t.TempDir(), "etl.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `sparkify_etl_rows_inserted_total{table="songs"} 1`))
}
