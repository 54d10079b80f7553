// Copyright © 2021-2025 The Gomon Project.

package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/procfs"
	"github.com/zosmac/gocore"
)

var (
	// tcpStates maps the kernel's tcp state codes to state names.
	tcpStates = map[uint64]string{
		0x01: "ESTABLISHED",
		0x02: "SYN_SENT",
		0x03: "SYN_RECV",
		0x04: "FIN_WAIT1",
		0x05: "FIN_WAIT2",
		0x06: "TIME_WAIT",
		0x07: "CLOSE",
		0x08: "CLOSE_WAIT",
		0x09: "LAST_ACK",
		0x0A: Listen,
		0x0B: "CLOSING",
	}
)

type (
	// procfsLister lists processes from a proc filesystem.
	procfsLister struct {
		root     string
		fs       procfs.FS
		clkTck   float64 // clock ticks per second
		pageSize uint64
		now      func() time.Time
	}

	// procfsProcess is a process read from the proc filesystem.
	procfsProcess struct {
		fs   *procfsLister
		proc procfs.Proc
		once sync.Once
		name string

		primed    bool
		lastTicks uint64
		lastTime  time.Time
	}
)

// newProcfsLister opens the proc filesystem mounted at root.
func newProcfsLister(root string, clkTck float64, pageSize uint64, now func() time.Time) (*procfsLister, error) {
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, gocore.Error("procfs", err, map[string]string{
			"root": root,
		})
	}
	return &procfsLister{
		root:     root,
		fs:       fs,
		clkTck:   clkTck,
		pageSize: pageSize,
		now:      now,
	}, nil
}

// Processes lists the pid directories of the proc filesystem.
func (fs *procfsLister) Processes(context.Context) ([]Process, error) {
	procs, err := fs.fs.AllProcs()
	if err != nil {
		return nil, gocore.Error("AllProcs", err)
	}

	ps := make([]Process, len(procs))
	for i, proc := range procs {
		ps[i] = &procfsProcess{fs: fs, proc: proc}
	}
	return ps, nil
}

// Handle reports the pid and the command name from the process' stat file.
func (p *procfsProcess) Handle() Handle {
	p.once.Do(func() {
		if stat, err := p.proc.Stat(); err == nil {
			p.name = stat.Comm
		}
	})
	return Handle{Pid: Pid(p.proc.PID), Name: p.name}
}

// Endpoints matches the process' socket descriptors with the tcp tables of its network namespace.
func (p *procfsProcess) Endpoints(context.Context) ([]Endpoint, error) {
	targets, err := p.proc.FileDescriptorTargets()
	if err != nil {
		return nil, err
	}

	inodes := map[uint64]struct{}{}
	for _, target := range targets {
		if inode, ok := socketInode(target); ok {
			inodes[inode] = struct{}{}
		}
	}
	if len(inodes) == 0 {
		return nil, nil
	}

	// the tcp tables under /proc/<pid>/net are those of the process' namespace
	ns, err := procfs.NewFS(filepath.Join(p.fs.root, strconv.Itoa(p.proc.PID)))
	if err != nil {
		return nil, err
	}

	var eps []Endpoint
	for _, table := range []func() (procfs.NetTCP, error){ns.NetTCP, ns.NetTCP6} {
		sockets, err := table()
		if errors.Is(err, os.ErrNotExist) {
			continue // no ipv6
		}
		if err != nil {
			return nil, err
		}
		for _, socket := range sockets {
			if _, ok := inodes[socket.Inode]; ok && socket.Inode != 0 {
				eps = append(eps, Endpoint{
					Port:  uint16(socket.LocalPort),
					State: tcpStates[socket.St],
				})
			}
		}
	}

	return eps, nil
}

// CPUPercent reports the process' CPU time since the previous call relative to the elapsed wall time.
func (p *procfsProcess) CPUPercent(context.Context) (float64, error) {
	stat, err := p.proc.Stat()
	if err != nil {
		return 0, err
	}
	ticks := uint64(stat.UTime) + uint64(stat.STime)
	now := p.fs.now()

	if !p.primed {
		p.primed = true
		p.lastTicks, p.lastTime = ticks, now
		return 0, nil
	}

	var pct float64
	if elapsed := now.Sub(p.lastTime).Seconds(); elapsed > 0 && ticks >= p.lastTicks {
		pct = float64(ticks-p.lastTicks) / p.fs.clkTck / elapsed * 100
	}
	p.lastTicks, p.lastTime = ticks, now
	return pct, nil
}

// ResidentMemory reports the resident pages of the process in bytes.
func (p *procfsProcess) ResidentMemory(context.Context) (uint64, error) {
	stat, err := p.proc.Stat()
	if err != nil {
		return 0, err
	}
	if stat.RSS < 0 {
		return 0, nil
	}
	return uint64(stat.RSS) * p.fs.pageSize, nil
}

// socketInode extracts the inode from a descriptor link of the form socket:[inode].
func socketInode(link string) (uint64, bool) {
	s, ok := strings.CutPrefix(link, "socket:[")
	if !ok {
		return 0, false
	}
	s, ok = strings.CutSuffix(s, "]")
	if !ok {
		return 0, false
	}
	inode, err := strconv.ParseUint(s, 10, 64)
	return inode, err == nil
}
