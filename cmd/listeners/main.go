// Copyright © 2022-2025 The Gomon Project.

// Command listeners reports the processes listening on TCP ports, the candidates
// portmon chooses from.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/zosmac/gocore"
	"github.com/zosmac/portmon/listener"
	"github.com/zosmac/portmon/process"
	"github.com/zosmac/portmon/version"
)

var (
	// flags defines the command line flags.
	flags = struct {
		source string
	}{
		source: process.SourceGopsutil,
	}
)

// init initializes the command line flags.
func init() {
	gocore.Flags.Var(
		&flags.source,
		"source",
		"[-source "+strings.Join(process.Sources, "|")+"]",
		"Read the process table with `source`",
	)

	gocore.Flags.CommandDescription = "Lists the processes listening on TCP ports."
	gocore.Flags.ArgumentDescriptions = append(gocore.Flags.ArgumentDescriptions,
		[2]string{"port", "Only list the listeners of this TCP port"},
	)
}

func main() {
	if err := gocore.Flags.FlagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if version.Requested() {
		version.Print(os.Stderr)
		os.Exit(0)
	}

	port, err := parsePort(gocore.Flags.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lister, err := process.NewLister(flags.source)
	if err != nil {
		gocore.Error("process source", err).Err()
		os.Exit(2)
	}

	ls, err := listener.All(context.Background(), lister)
	if err != nil {
		gocore.Error("listeners", err).Err()
		os.Exit(2)
	}

	if display(os.Stdout, ls, port) == 0 && port != 0 {
		os.Exit(1)
	}
}

// parsePort reads the optional port argument, 0 if absent.
func parsePort(args []string) (uint16, error) {
	switch len(args) {
	case 0:
		return 0, nil
	case 1:
		n, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil || n == 0 {
			return 0, fmt.Errorf("invalid port %q", args[0])
		}
		return uint16(n), nil
	}
	return 0, fmt.Errorf("unexpected arguments %q", args[1:])
}

// display writes a table of the listeners, restricted to port if it is not 0, and
// returns the number of rows.
func display(w io.Writer, ls []listener.Listener, port uint16) int {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tPID\tNAME")
	var n int
	for _, l := range ls {
		if port != 0 && l.Port != port {
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\n", l.Port, l.Process.Pid, l.Process.Name)
		n++
	}
	tw.Flush()
	return n
}
