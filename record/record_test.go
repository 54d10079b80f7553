// Copyright © 2025 The Gomon Project.

package record

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zosmac/portmon/process"
	"github.com/zosmac/portmon/sampler"
	"gopkg.in/yaml.v3"
)

var start = time.Date(2025, 3, 13, 1, 42, 10, 0, time.UTC)

func series(cpus ...float64) sampler.TimeSeries {
	ts := make(sampler.TimeSeries, len(cpus))
	for i, cpu := range cpus {
		ts[i] = sampler.Sample{
			Timestamp:  start.Add(time.Duration(i+1) * time.Second),
			CPUPercent: cpu,
			MemoryMB:   50,
		}
	}
	return ts
}

func testRun(ts sampler.TimeSeries, outcome sampler.Outcome) Run {
	return Run{
		Process:  process.Handle{Pid: 4242, Name: "moonnet"},
		Port:     8080,
		Duration: 3 * time.Second,
		Interval: time.Second,
		Outcome:  outcome,
		Series:   ts,
	}
}

func TestWriteSeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSeries(&buf, series(10, 20.25, 30)))

	assert.Equal(t, strings.Join([]string{
		"Timestamp,CPU_Usage_Percent,Memory_Usage_MB",
		"2025-03-13 01:42:11.000000,10,50",
		"2025-03-13 01:42:12.000000,20.25,50",
		"2025-03-13 01:42:13.000000,30,50",
		"",
	}, "\n"), buf.String())
}

func TestWriteSeries_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSeries(&buf, nil))
	assert.Equal(t, "Timestamp,CPU_Usage_Percent,Memory_Usage_MB\n", buf.String())
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, testRun(series(10, 20, 30), sampler.Completed)))

	var got summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, process.Handle{Pid: 4242, Name: "moonnet"}, got.Process)
	assert.Equal(t, uint16(8080), got.Port)
	assert.Equal(t, "completed", got.Outcome)
	assert.Equal(t, "3s", got.Duration)
	assert.Equal(t, "1s", got.Interval)
	assert.Equal(t, 3, got.Samples)
	require.NotNil(t, got.Stats)
	assert.Equal(t, aggregate{Mean: 20, Peak: 30}, got.Stats.CPUPercent)
	assert.Equal(t, aggregate{Mean: 50, Peak: 50}, got.Stats.MemoryMB)
	assert.True(t, got.Stats.First.Equal(start.Add(time.Second)))
	assert.True(t, got.Stats.Last.Equal(start.Add(3*time.Second)))
}

func TestWriteSummary_NoData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, testRun(nil, sampler.Aborted)))

	assert.NotContains(t, buf.String(), "stats")
	assert.Contains(t, buf.String(), "outcome: aborted")
	assert.Contains(t, buf.String(), "samples: 0")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics(testRun(series(10, 20, 30), sampler.Interrupted))

	assert.Equal(t, 30.0, testutil.ToFloat64(m.cpu))
	assert.Equal(t, 50.0*1024*1024, testutil.ToFloat64(m.resident))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.samples))
	assert.InDelta(t, 20.0, testutil.ToFloat64(m.meanCPU), 1e-9)
	assert.Equal(t, 50.0*1024*1024, testutil.ToFloat64(m.meanMemory))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcome.WithLabelValues("interrupted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.outcome.WithLabelValues("completed")))

	n, err := testutil.GatherAndCount(m.Gatherer())
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestMetrics_NoData(t *testing.T) {
	m := NewMetrics(testRun(nil, sampler.Aborted))

	for _, name := range []string{
		"portmon_process_cpu_percent",
		"portmon_process_resident_memory_bytes",
		"portmon_process_cpu_percent_mean",
		"portmon_process_resident_memory_bytes_mean",
	} {
		n, err := testutil.GatherAndCount(m.Gatherer(), name)
		require.NoError(t, err)
		assert.Zero(t, n, name)
	}

	assert.Equal(t, 0.0, testutil.ToFloat64(m.samples))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcome.WithLabelValues("aborted")))
	n, err := testutil.GatherAndCount(m.Gatherer())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestPersist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "monitor_output")
	run := testRun(series(10, 20, 30), sampler.Completed)

	paths, err := Persist(dir, run)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SeriesFile), paths.Series)
	assert.Equal(t, filepath.Join(dir, SummaryFile), paths.Summary)
	assert.Equal(t, filepath.Join(dir, MetricsFile), paths.Metrics)

	csv, err := os.ReadFile(paths.Series)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csv)), "\n"), 4)

	prom, err := os.ReadFile(paths.Metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `portmon_samples_total{name="moonnet",pid="4242",port="8080"} 3`)
	assert.Contains(t, string(prom), `portmon_process_cpu_percent{name="moonnet",pid="4242",port="8080"} 30`)
	assert.Contains(t, string(prom), `portmon_process_cpu_percent_mean{name="moonnet",pid="4242",port="8080"} 20`)
	assert.Contains(t, string(prom), `portmon_run_outcome{name="moonnet",outcome="completed",pid="4242",port="8080"} 1`)

	// a second run overwrites the first
	run = testRun(nil, sampler.Aborted)
	_, err = Persist(dir, run)
	require.NoError(t, err)
	csv, err = os.ReadFile(paths.Series)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csv)), "\n"), 1)

	prom, err = os.ReadFile(paths.Metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `portmon_samples_total{name="moonnet",pid="4242",port="8080"} 0`)
	assert.NotContains(t, string(prom), "_mean")
	assert.NotContains(t, string(prom), "portmon_process_cpu_percent{")
}

func TestPersist_Unwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	paths, err := Persist(filepath.Join(blocker, "out"), testRun(series(1), sampler.Completed))
	assert.Error(t, err)
	assert.Zero(t, paths)
}
