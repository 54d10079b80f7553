// Copyright © 2021-2025 The Gomon Project.

package process

import (
	"context"
	"strconv"
)

const (
	// Listen is the state of an endpoint accepting inbound connections.
	Listen = "LISTEN"
)

type (
	// Pid is the identifier for a process.
	Pid int

	// Handle identifies a monitored process. The name is best effort.
	Handle struct {
		Pid  Pid    `json:"pid" yaml:"pid"`
		Name string `json:"name" yaml:"name"`
	}

	// Endpoint is a socket held by a process, identified by its local port.
	Endpoint struct {
		Port  uint16
		State string
	}

	// Process exposes the queries needed to discover and sample a process.
	Process interface {
		// Handle reports the process' identity.
		Handle() Handle
		// Endpoints lists the process' inet sockets.
		Endpoints(context.Context) ([]Endpoint, error)
		// CPUPercent reports CPU utilization since the previous call, as a percentage
		// of one CPU. The first call establishes the baseline and reports 0.
		CPUPercent(context.Context) (float64, error)
		// ResidentMemory reports the resident set size in bytes.
		ResidentMemory(context.Context) (uint64, error)
	}

	// Lister enumerates the processes visible to the caller.
	Lister interface {
		Processes(context.Context) ([]Process, error)
	}
)

// String formats a pid as a string to comply with fmt.Stringer interface.
func (pid Pid) String() string {
	return strconv.Itoa(int(pid))
}

// String formats a handle as name[pid].
func (h Handle) String() string {
	return h.Name + "[" + h.Pid.String() + "]"
}

// Listening reports whether the endpoint is a listener on port.
func (ep Endpoint) Listening(port uint16) bool {
	return ep.State == Listen && ep.Port == port
}
