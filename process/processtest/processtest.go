// Copyright © 2025 The Gomon Project.

// Package processtest provides an in-memory process table for testing.
package processtest

import (
	"context"
	"errors"
	"os"

	"github.com/zosmac/portmon/process"
)

// ErrGone reports a process that exited.
var ErrGone = errors.New("process gone")

type (
	// Reading is one scripted CPU and memory observation.
	Reading struct {
		CPU    float64
		Memory uint64
	}

	// Process is a scripted process. CPUPercent and ResidentMemory replay
	// Readings in order, the first being consumed by a priming read. Once they
	// run out the Steady reading repeats, or ErrGone is returned if there is none.
	Process struct {
		ID        process.Handle
		Listeners []process.Endpoint
		// EndpointsErr is returned by Endpoints, e.g. os.ErrPermission.
		EndpointsErr error
		Readings     []Reading
		Steady       *Reading

		CPUReads    int
		MemoryReads int
	}

	// Lister is a fixed process table.
	Lister struct {
		Procs []*Process
		Err   error
	}
)

// Handle reports the scripted handle.
func (p *Process) Handle() process.Handle {
	return p.ID
}

// Endpoints reports the scripted endpoints.
func (p *Process) Endpoints(context.Context) ([]process.Endpoint, error) {
	if p.EndpointsErr != nil {
		return nil, p.EndpointsErr
	}
	return p.Listeners, nil
}

// CPUPercent replays the next scripted CPU reading.
func (p *Process) CPUPercent(context.Context) (float64, error) {
	n := p.CPUReads
	p.CPUReads++
	r, err := p.reading(n)
	return r.CPU, err
}

// ResidentMemory replays the scripted memory reading that matches the latest CPU reading.
func (p *Process) ResidentMemory(context.Context) (uint64, error) {
	p.MemoryReads++
	r, err := p.reading(p.CPUReads - 1)
	return r.Memory, err
}

// reading selects the scripted reading for a read index.
func (p *Process) reading(n int) (Reading, error) {
	if n >= 0 && n < len(p.Readings) {
		return p.Readings[n], nil
	}
	if p.Steady != nil {
		return *p.Steady, nil
	}
	return Reading{}, ErrGone
}

// Processes lists the fixed table.
func (l *Lister) Processes(context.Context) ([]process.Process, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	ps := make([]process.Process, len(l.Procs))
	for i, p := range l.Procs {
		ps[i] = p
	}
	return ps, nil
}

// Listening creates a steady process that listens on the ports.
func Listening(pid int, name string, ports ...uint16) *Process {
	p := &Process{
		ID:     process.Handle{Pid: process.Pid(pid), Name: name},
		Steady: &Reading{},
	}
	for _, port := range ports {
		p.Listeners = append(p.Listeners, process.Endpoint{Port: port, State: process.Listen})
	}
	return p
}

// Unreadable creates a process whose endpoints cannot be read.
func Unreadable(pid int) *Process {
	return &Process{
		ID:           process.Handle{Pid: process.Pid(pid)},
		EndpointsErr: os.ErrPermission,
	}
}
