// Copyright © 2025 The Gomon Project.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zosmac/portmon/listener"
	"github.com/zosmac/portmon/process"
	"github.com/zosmac/portmon/record"
	"github.com/zosmac/portmon/sampler"
)

// reportAmbiguous warns that the monitored process was picked from several listeners.
func reportAmbiguous(w io.Writer, err *listener.AmbiguousError, chosen process.Handle) {
	fmt.Fprintf(w, "Warning: %v. Monitoring the first, %s.\n", err, chosen)
}

// reportStart announces the run.
func reportStart(w io.Writer, h process.Handle, duration, interval time.Duration) {
	fmt.Fprintf(w, "Monitoring process %q (pid %d) for %v, sampling every %v...\n", h.Name, h.Pid, duration, interval)
}

// reportSample prints a progress line for a sample.
func reportSample(w io.Writer, sm sampler.Sample) {
	fmt.Fprintf(w, "[%s] CPU: %.2f%% | Memory: %.2f MB\n", sm.Timestamp.Format(time.TimeOnly), sm.CPUPercent, sm.MemoryMB)
}

// reportOutcome explains a run that ended early.
func reportOutcome(w io.Writer, outcome sampler.Outcome) {
	switch outcome {
	case sampler.Aborted:
		fmt.Fprintln(w, "The process exited or access to it was denied.")
	case sampler.Interrupted:
		fmt.Fprintln(w, "\nMonitoring interrupted.")
	}
}

// reportSaved lists the recorded files.
func reportSaved(w io.Writer, paths record.Paths) {
	fmt.Fprintf(w, "Samples saved to %s\n", paths.Series)
	fmt.Fprintf(w, "Summary saved to %s\n", paths.Summary)
	if paths.Metrics != "" {
		fmt.Fprintf(w, "Metrics saved to %s\n", paths.Metrics)
	}
}

// reportSummary prints the averages of the series.
func reportSummary(w io.Writer, h process.Handle, ts sampler.TimeSeries) {
	sum, ok := ts.Summarize()
	if !ok {
		fmt.Fprintln(w, "No data available to compute averages.")
		return
	}

	title := fmt.Sprintf("===== %s (pid %d) =====", h.Name, h.Pid)
	fmt.Fprintf(w, "\n%s\n", title)
	fmt.Fprintf(w, "Average CPU usage:    %.2f%%\n", sum.CPUPercent)
	fmt.Fprintf(w, "Average memory usage: %.2f MB\n", sum.MemoryMB)
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", len(title)))
}
