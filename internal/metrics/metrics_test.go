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
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.AddCandidates(5)
	r.Extracted("soccer")
	r.Extracted("soccer")
	r.Extracted("cricket")
	r.Dropped("time", 1)
	r.Dropped("sport", 1)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.candidates))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.extracted.WithLabelValues("soccer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.extracted.WithLabelValues("cricket")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.dropped.WithLabelValues("time")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.dropped.WithLabelValues("sport")))
}

func TestRecorder_Gauges(t *testing.T) {
	r := New()

	r.ObserveFetch(1500 * time.Millisecond)
	r.ObservePage(2048)
	r.MarkSuccess(time.Unix(1700000000, 0))

	assert.Equal(t, 1.5, testutil.ToFloat64(r.fetchDuration))
	assert.Equal(t, 2048.0, testutil.ToFloat64(r.pageBytes))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.lastSuccess))
}

func TestRecorder_IsolatedRegistries(t *testing.T) {
	a := New()
	b := New()

	a.AddCandidates(3)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.candidates))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := New()
	r.AddCandidates(2)
	r.Extracted("tennis")

	path := filepath.Join(t.TempDir(), "sportify.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.Contains(text, "sportify_candidates_total 2"), text)
	assert.True(t, strings.Contains(text, `sportify_events_extracted_total{sport="tennis"} 1`), text)
}

func TestRecorder_WriteTextfile_BadPath(t *testing.T) {
	r := New()

	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "sportify.prom"))
	assert.Error(t, err)
}

func TestRecorder_Gatherer(t *testing.T) {
	r := New()
	r.Extracted("soccer")
	r.Extracted("cricket")
	r.Dropped("time", 1)

	n, err := testutil.GatherAndCount(r.Gatherer(), "sportify_events_extracted_total", "sportify_events_dropped_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
