// Copyright © 2025 The Gomon Project.

package process

import (
	"context"
	"errors"
	"sync"

	gopsutil "github.com/shirou/gopsutil/process"
	"github.com/zosmac/gocore"
)

type (
	// psutilLister lists processes with gopsutil.
	psutilLister struct{}

	// psutilProcess adapts a gopsutil process. gopsutil's Percent keeps the
	// previous CPU times on the process, so the same value must be reused
	// across samples.
	psutilProcess struct {
		proc *gopsutil.Process
		once sync.Once
		name string
	}
)

// NewPsutil returns a Lister backed by gopsutil.
func NewPsutil() Lister {
	return psutilLister{}
}

// Processes lists all processes on the system.
func (psutilLister) Processes(ctx context.Context) ([]Process, error) {
	procs, err := gopsutil.ProcessesWithContext(ctx)
	if err != nil {
		return nil, gocore.Error("Processes", err)
	}

	ps := make([]Process, len(procs))
	for i, proc := range procs {
		ps[i] = &psutilProcess{proc: proc}
	}
	return ps, nil
}

// Handle reports the pid and, if still readable, the name of the process.
func (p *psutilProcess) Handle() Handle {
	p.once.Do(func() {
		p.name, _ = p.proc.Name()
	})
	return Handle{Pid: Pid(p.proc.Pid), Name: p.name}
}

// Endpoints lists the inet sockets of the process.
func (p *psutilProcess) Endpoints(ctx context.Context) ([]Endpoint, error) {
	conns, err := p.proc.ConnectionsWithContext(ctx)
	if err != nil {
		return nil, err
	}

	eps := make([]Endpoint, 0, len(conns))
	for _, conn := range conns {
		eps = append(eps, Endpoint{
			Port:  uint16(conn.Laddr.Port),
			State: conn.Status,
		})
	}
	return eps, nil
}

// CPUPercent reports CPU utilization since the previous call.
func (p *psutilProcess) CPUPercent(ctx context.Context) (float64, error) {
	return p.proc.PercentWithContext(ctx, 0)
}

// ResidentMemory reports the resident set size of the process.
func (p *psutilProcess) ResidentMemory(ctx context.Context) (uint64, error) {
	mi, err := p.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	if mi == nil {
		return 0, errors.New("no memory info")
	}
	return mi.RSS, nil
}
