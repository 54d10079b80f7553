// Copyright © 2025 The Gomon Project.

package record

import (
	"io"
	"math"
	"time"

	"github.com/zosmac/portmon/process"
	"gopkg.in/yaml.v3"
)

type (
	// summary is the content of the summary file.
	summary struct {
		Process  process.Handle `yaml:"process"`
		Port     uint16         `yaml:"port"`
		Outcome  string         `yaml:"outcome"`
		Duration string         `yaml:"duration"`
		Interval string         `yaml:"interval"`
		Samples  int            `yaml:"samples"`
		Stats    *stats         `yaml:"stats,omitempty"`
	}

	// stats aggregates the series, absent when there are no samples.
	stats struct {
		CPUPercent aggregate `yaml:"cpu_percent"`
		MemoryMB   aggregate `yaml:"memory_mb"`
		First      time.Time `yaml:"first"`
		Last       time.Time `yaml:"last"`
	}

	// aggregate reports the mean and peak of a column, rounded to two places.
	aggregate struct {
		Mean float64 `yaml:"mean"`
		Peak float64 `yaml:"peak"`
	}
)

// WriteSummary writes the run summary as YAML.
func WriteSummary(w io.Writer, run Run) error {
	s := summary{
		Process:  run.Process,
		Port:     run.Port,
		Outcome:  run.Outcome.String(),
		Duration: run.Duration.String(),
		Interval: run.Interval.String(),
		Samples:  len(run.Series),
	}
	if sum, ok := run.Series.Summarize(); ok {
		s.Stats = &stats{
			CPUPercent: aggregate{Mean: round(sum.CPUPercent), Peak: round(sum.PeakCPU)},
			MemoryMB:   aggregate{Mean: round(sum.MemoryMB), Peak: round(sum.PeakMemoryMB)},
			First:      sum.First,
			Last:       sum.Last,
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&s); err != nil {
		return err
	}
	return enc.Close()
}

// round rounds to two decimal places.
func round(f float64) float64 {
	return math.Round(f*100) / 100
}
