// Copyright © 2025 The Gomon Project.

package record

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zosmac/gocore"
	"github.com/zosmac/portmon/process"
	"github.com/zosmac/portmon/sampler"
)

const (
	// SeriesFile is the name of the time series file.
	SeriesFile = "process_metrics.csv"
	// SummaryFile is the name of the run summary file.
	SummaryFile = "summary.yaml"
	// MetricsFile is the name of the Prometheus textfile.
	MetricsFile = "process_metrics.prom"
)

type (
	// Run describes a finished monitoring run.
	Run struct {
		Process  process.Handle
		Port     uint16
		Duration time.Duration
		Interval time.Duration
		Outcome  sampler.Outcome
		Series   sampler.TimeSeries
	}

	// Paths locates the files written for a run.
	Paths struct {
		Series  string
		Summary string
		Metrics string
	}
)

// Persist writes the run's files into dir, creating it if necessary.
func Persist(dir string, run Run) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, gocore.Error("MkdirAll", err, map[string]string{"dir": dir})
	}

	paths := Paths{
		Series:  filepath.Join(dir, SeriesFile),
		Summary: filepath.Join(dir, SummaryFile),
		Metrics: filepath.Join(dir, MetricsFile),
	}

	if err := writeFile(paths.Series, func(w io.Writer) error {
		return WriteSeries(w, run.Series)
	}); err != nil {
		return Paths{}, err
	}

	if err := writeFile(paths.Summary, func(w io.Writer) error {
		return WriteSummary(w, run)
	}); err != nil {
		return Paths{}, err
	}

	if err := NewMetrics(run).WriteTextfile(paths.Metrics); err != nil {
		return Paths{}, gocore.Error("WriteToTextfile", err, map[string]string{"file": paths.Metrics})
	}

	return paths, nil
}

// writeFile creates or truncates a file and fills it with write.
func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return gocore.Error("Create", err, map[string]string{"file": name})
	}
	if err := write(f); err != nil {
		f.Close()
		return gocore.Error("write", err, map[string]string{"file": name})
	}
	if err := f.Close(); err != nil {
		return gocore.Error("Close", err, map[string]string{"file": name})
	}
	return nil
}
