// Copyright © 2025 The Gomon Project.

package record

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zosmac/portmon/sampler"
)

// megabyte converts the series' memory back to bytes.
const megabyte = 1024 * 1024

// Metrics holds a finished run in a private Prometheus registry.
type Metrics struct {
	registry   *prometheus.Registry
	cpu        *prometheus.GaugeVec
	resident   *prometheus.GaugeVec
	samples    prometheus.Counter
	meanCPU    *prometheus.GaugeVec
	meanMemory *prometheus.GaugeVec
	outcome    *prometheus.GaugeVec
}

// NewMetrics records the run's series and outcome, labelled with the monitored process
// and port. Gauges derived from samples are absent when the series is empty.
func NewMetrics(run Run) *Metrics {
	labels := prometheus.Labels{
		"pid":  run.Process.Pid.String(),
		"name": run.Process.Name,
		"port": strconv.Itoa(int(run.Port)),
	}
	gauge := func(name, help string, variable ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   "portmon",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, variable)
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cpu:      gauge("process_cpu_percent", "CPU utilization of the last sample, percent of one CPU."),
		resident: gauge("process_resident_memory_bytes", "Resident memory of the last sample."),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "portmon",
			Name:        "samples_total",
			Help:        "Samples recorded.",
			ConstLabels: labels,
		}),
		meanCPU:    gauge("process_cpu_percent_mean", "Mean CPU utilization of the run, percent of one CPU."),
		meanMemory: gauge("process_resident_memory_bytes_mean", "Mean resident memory of the run."),
		outcome:    gauge("run_outcome", "Set to 1 for the outcome of the run.", "outcome"),
	}
	m.registry.MustRegister(m.cpu, m.resident, m.samples, m.meanCPU, m.meanMemory, m.outcome)

	for _, o := range []sampler.Outcome{sampler.Completed, sampler.Aborted, sampler.Interrupted} {
		v := 0.0
		if o == run.Outcome {
			v = 1
		}
		m.outcome.WithLabelValues(o.String()).Set(v)
	}

	m.samples.Add(float64(len(run.Series)))
	if sum, ok := run.Series.Summarize(); ok {
		last := run.Series[len(run.Series)-1]
		m.cpu.WithLabelValues().Set(last.CPUPercent)
		m.resident.WithLabelValues().Set(last.MemoryMB * megabyte)
		m.meanCPU.WithLabelValues().Set(sum.CPUPercent)
		m.meanMemory.WithLabelValues().Set(sum.MemoryMB * megabyte)
	}

	return m
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the registry in text exposition format, replacing the file atomically.
func (m *Metrics) WriteTextfile(name string) error {
	return prometheus.WriteToTextfile(name, m.registry)
}
