// Copyright © 2021-2025 The Gomon Project.

package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/zosmac/gocore"
	"github.com/zosmac/portmon/process"
)

var (
	// flags defines the command line flags.
	flags = struct {
		port     portFlag
		duration seconds
		interval seconds
		output   string
		source   source
	}{
		duration: seconds(60 * time.Second),
		interval: seconds(time.Second),
		output:   "monitor_output",
		source:   source(process.Sources[0]),
	}
)

// init initializes the command line flags.
func init() {
	gocore.Flags.Var(
		&flags.port,
		"port",
		"-port <port>",
		"TCP `port` of the process to monitor",
	)
	gocore.Flags.Var(
		&flags.duration,
		"duration",
		"[-duration <seconds>]",
		"Monitor for `seconds`, or a Go time.Duration string",
	)
	gocore.Flags.Var(
		&flags.interval,
		"interval",
		"[-interval <seconds>]",
		"Sample every `seconds`, fractions allowed, or a Go time.Duration string",
	)
	gocore.Flags.Var(
		&flags.output,
		"output",
		"[-output <directory>]",
		"Record the samples, summary and metrics in `directory`",
	)
	gocore.Flags.Var(
		&flags.source,
		"source",
		"[-source "+strings.Join(process.Sources, "|")+"]",
		"Read the process table with `source`",
	)

	gocore.Flags.CommandDescription = `Monitors the process listening on a TCP port,
	sampling its:
		• CPU utilization
		• resident memory
	and recording:
		• the samples as CSV
		• a YAML summary
		• a Prometheus textfile`
}

// portFlag is a TCP port command line flag type.
type portFlag uint16

// Set is a flag.Value interface method to enable portFlag as a command line flag.
func (p *portFlag) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil || n == 0 {
		return fmt.Errorf("invalid port %q", s)
	}
	*p = portFlag(n)
	return nil
}

// String is a flag.Value interface method to enable portFlag as a command line flag.
func (p *portFlag) String() string {
	return strconv.Itoa(int(*p))
}

// seconds is a time period command line flag type, set as seconds or as a duration.
type seconds time.Duration

// Set is a flag.Value interface method to enable seconds as a command line flag.
func (i *seconds) Set(s string) error {
	var d time.Duration
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		d = time.Duration(f * float64(time.Second))
	} else if d, err = time.ParseDuration(s); err != nil {
		return err
	}
	if d <= 0 {
		return errors.New("period must be positive")
	}
	*i = seconds(d)
	return nil
}

// String is a flag.Value interface method to enable seconds as a command line flag.
func (i *seconds) String() string {
	return time.Duration(*i).String()
}

// source is a process table source command line flag type.
type source string

// Set is a flag.Value interface method to enable source as a command line flag.
func (src *source) Set(s string) error {
	if !slices.Contains(process.Sources, s) {
		return fmt.Errorf("invalid source %q, expected one of %s", s, strings.Join(process.Sources, ", "))
	}
	*src = source(s)
	return nil
}

// String is a flag.Value interface method to enable source as a command line flag.
func (src *source) String() string {
	return string(*src)
}
