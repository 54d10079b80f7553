// Copyright © 2025 The Gomon Project.

package sampler

import (
	"time"
)

type (
	// Sample is one observation of a process.
	Sample struct {
		Timestamp  time.Time
		CPUPercent float64
		MemoryMB   float64
	}

	// TimeSeries is the chronological sequence of samples of a run.
	TimeSeries []Sample

	// Summary aggregates a TimeSeries.
	Summary struct {
		Samples      int
		CPUPercent   float64 // mean
		MemoryMB     float64 // mean
		PeakCPU      float64
		PeakMemoryMB float64
		First, Last  time.Time
	}
)

// megabyte is the divisor to report memory in MB.
const megabyte = 1024 * 1024

// Summarize computes the means and peaks of the series. It reports false if the
// series is empty, for which there is nothing to summarize.
func (ts TimeSeries) Summarize() (Summary, bool) {
	if len(ts) == 0 {
		return Summary{}, false
	}

	s := Summary{
		Samples: len(ts),
		First:   ts[0].Timestamp,
		Last:    ts[len(ts)-1].Timestamp,
	}
	var cpu, mem float64
	for _, sm := range ts {
		cpu += sm.CPUPercent
		mem += sm.MemoryMB
		s.PeakCPU = max(s.PeakCPU, sm.CPUPercent)
		s.PeakMemoryMB = max(s.PeakMemoryMB, sm.MemoryMB)
	}
	s.CPUPercent = cpu / float64(len(ts))
	s.MemoryMB = mem / float64(len(ts))

	return s, true
}
