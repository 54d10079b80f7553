// Copyright © 2021-2025 The Gomon Project.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/zosmac/gocore"
	"github.com/zosmac/portmon/listener"
	"github.com/zosmac/portmon/process"
	"github.com/zosmac/portmon/record"
	"github.com/zosmac/portmon/sampler"
	"github.com/zosmac/portmon/version"
)

const (
	// exit codes
	exitSuccess = iota
	exitNotFound
	exitError
)

type (
	// config collects the settings of a run.
	config struct {
		port     uint16
		duration time.Duration
		interval time.Duration
		output   string
	}
)

// main
func main() {
	if err := gocore.Flags.FlagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(exitSuccess)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	if version.Requested() {
		version.Print(os.Stderr)
		os.Exit(exitSuccess)
	}
	if flags.port == 0 {
		fmt.Fprintln(os.Stderr, "the -port flag is required")
		os.Exit(exitError)
	}

	lister, err := process.NewLister(string(flags.source))
	if err != nil {
		gocore.Error("process source", err, map[string]string{
			"source": string(flags.source),
		}).Err()
		os.Exit(exitError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Main(ctx, os.Stdout, lister, config{
		port:     uint16(flags.port),
		duration: time.Duration(flags.duration),
		interval: time.Duration(flags.interval),
		output:   flags.output,
	})
	stop()
	os.Exit(code)
}

// Main finds the process listening on the port, samples it, and records the results.
// It returns the exit code.
func Main(ctx context.Context, w io.Writer, lister process.Lister, cfg config, opts ...sampler.Option) int {
	port := strconv.Itoa(int(cfg.port))

	candidates, err := listener.Find(ctx, lister, cfg.port)
	if err != nil {
		gocore.Error("find listener", err, map[string]string{"port": port}).Err()
		return exitError
	}
	proc, err := listener.Select(cfg.port, candidates)
	var ambiguous *listener.AmbiguousError
	switch {
	case errors.As(err, &ambiguous):
		reportAmbiguous(w, ambiguous, proc.Handle())
	case errors.Is(err, listener.ErrNotFound):
		fmt.Fprintf(w, "No process is listening on port %d.\n", cfg.port)
		return exitNotFound
	case err != nil:
		gocore.Error("select listener", err, map[string]string{"port": port}).Err()
		return exitError
	}

	h := proc.Handle()
	opts = append(opts, sampler.WithObserver(func(sm sampler.Sample) {
		reportSample(w, sm)
	}))
	s, err := sampler.New(cfg.duration, cfg.interval, opts...)
	if err != nil {
		gocore.Error("sampler", err).Err()
		return exitError
	}

	reportStart(w, h, cfg.duration, cfg.interval)
	ts, outcome := s.Run(ctx, proc)
	reportOutcome(w, outcome)

	paths, err := record.Persist(cfg.output, record.Run{
		Process:  h,
		Port:     cfg.port,
		Duration: cfg.duration,
		Interval: cfg.interval,
		Outcome:  outcome,
		Series:   ts,
	})
	if err != nil {
		gocore.Error("record", err, map[string]string{"output": cfg.output}).Err()
		return exitError
	}

	reportSaved(w, paths)
	reportSummary(w, h, ts)

	gocore.Error("done", nil, map[string]string{
		"pid":     h.Pid.String(),
		"port":    port,
		"outcome": outcome.String(),
		"samples": strconv.Itoa(len(ts)),
	}).Info()

	return exitSuccess
}
