// Copyright © 2025 The Gomon Project.

package sampler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/zosmac/gocore"
)

const (
	// Completed runs reached their deadline.
	Completed Outcome = iota
	// Aborted runs lost access to the process.
	Aborted
	// Interrupted runs were cancelled by the operator.
	Interrupted
)

var (
	// outcomes names the outcomes.
	outcomes = map[Outcome]string{
		Completed:   "completed",
		Aborted:     "aborted",
		Interrupted: "interrupted",
	}
)

type (
	// Outcome classifies how a run ended.
	Outcome int

	// Probe reads the resource usage of a process.
	Probe interface {
		CPUPercent(context.Context) (float64, error)
		ResidentMemory(context.Context) (uint64, error)
	}

	// Sampler polls a Probe.
	Sampler struct {
		duration  time.Duration
		interval  time.Duration
		clock     Clock
		observers []func(Sample)
	}

	// Option configures a Sampler.
	Option func(*Sampler)
)

// String names the outcome.
func (o Outcome) String() string {
	if s, ok := outcomes[o]; ok {
		return s
	}
	return "outcome(" + strconv.Itoa(int(o)) + ")"
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Sampler) {
		s.clock = c
	}
}

// WithObserver registers a function called with each sample as it is recorded.
func WithObserver(fn func(Sample)) Option {
	return func(s *Sampler) {
		s.observers = append(s.observers, fn)
	}
}

// New creates a Sampler that samples every interval for duration. An interval longer
// than the duration yields a single sample at the deadline.
func New(duration, interval time.Duration, opts ...Option) (*Sampler, error) {
	if duration <= 0 {
		return nil, errors.New("duration must be positive")
	}
	if interval <= 0 {
		return nil, errors.New("interval must be positive")
	}

	s := &Sampler{
		duration: duration,
		interval: interval,
		clock:    wallClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run samples the probe until the deadline, a failed read, or cancellation of ctx.
// Cancellation is checked between samples, so a read in progress completes first.
func (s *Sampler) Run(ctx context.Context, probe Probe) (TimeSeries, Outcome) {
	if _, err := probe.CPUPercent(ctx); err != nil {
		gocore.Error("prime", err).Info()
		return TimeSeries{}, Aborted
	}

	deadline := s.clock.Now().Add(s.duration)
	ts := make(TimeSeries, 0, int(s.duration/s.interval)+1)
	for {
		if ctx.Err() != nil {
			return ts, Interrupted
		}
		s.clock.Sleep(ctx, min(s.interval, deadline.Sub(s.clock.Now())))
		if ctx.Err() != nil {
			return ts, Interrupted
		}

		now := s.clock.Now()
		sm, err := s.sample(ctx, probe, now)
		if err != nil {
			gocore.Error("sample", err, map[string]string{
				"samples": strconv.Itoa(len(ts)),
			}).Info()
			return ts, Aborted
		}
		ts = append(ts, sm)
		for _, fn := range s.observers {
			fn(sm)
		}

		if !now.Before(deadline) {
			return ts, Completed
		}
	}
}

// sample reads the probe once.
func (s *Sampler) sample(ctx context.Context, probe Probe, now time.Time) (Sample, error) {
	cpu, err := probe.CPUPercent(ctx)
	if err != nil {
		return Sample{}, err
	}
	rss, err := probe.ResidentMemory(ctx)
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Timestamp:  now,
		CPUPercent: cpu,
		MemoryMB:   float64(rss) / megabyte,
	}, nil
}
