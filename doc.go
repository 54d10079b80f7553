// Copyright © 2021-2025 The Gomon Project.

/*
Package main implements the Go language "portmon" command. Portmon finds the process
listening on a TCP port and samples its CPU and resident memory usage for a period,
recording the samples and reporting their averages.

The main package defines the following command line flags:
  - -port:     the TCP port of the process to monitor (required)
  - -duration: how long to monitor, in seconds or as a Go duration (default 60)
  - -interval: the sampling interval, in seconds or as a Go duration (default 1)
  - -output:   the directory for the recorded files (default monitor_output)
  - -source:   how to read the process table, gopsutil or procfs (default gopsutil)

The -version flag that gocore defines prints the build information and exits. The
gocore -cpuprofile and -memprofile flags are accepted but have no effect.

Portmon exits with status 1 if no process listens on the port, and with status 2
for invalid flags or if the results cannot be recorded. A run cut short because the
process exited or the operator interrupted it still records its samples and exits 0.
*/
package main
