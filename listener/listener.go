// Copyright © 2025 The Gomon Project.

package listener

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zosmac/gocore"
	"github.com/zosmac/portmon/process"
)

// ErrNotFound reports that no process listens on the port.
var ErrNotFound = errors.New("no process listening")

// AmbiguousError reports that several processes listen on the port.
type AmbiguousError struct {
	Port       uint16
	Candidates []process.Handle
}

// Error describes the candidates.
func (err *AmbiguousError) Error() string {
	ss := make([]string, len(err.Candidates))
	for i, h := range err.Candidates {
		ss[i] = h.String()
	}
	return fmt.Sprintf("%d processes listening on port %d: %s", len(ss), err.Port, strings.Join(ss, ", "))
}

// Find returns the processes holding a listening socket on port. It returns an error only
// if the process table cannot be listed; no listener yields an empty result.
func Find(ctx context.Context, lister process.Lister, port uint16) ([]process.Process, error) {
	ps, err := lister.Processes(ctx)
	if err != nil {
		return nil, gocore.Error("list processes", err)
	}

	var found []process.Process
	for _, p := range ps {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		eps, err := p.Endpoints(ctx)
		if err != nil {
			continue // exited or not inspectable
		}
		for _, ep := range eps {
			if ep.Listening(port) {
				found = append(found, p)
				break
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Handle().Pid < found[j].Handle().Pid
	})

	return found, nil
}

// Select chooses the process to monitor from the candidates Find returned. With no
// candidates it returns ErrNotFound. With several it returns the first along with an
// *AmbiguousError, which the caller should report as a warning.
func Select(port uint16, candidates []process.Process) (process.Process, error) {
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w on port %d", ErrNotFound, port)
	case 1:
		return candidates[0], nil
	}

	hs := make([]process.Handle, len(candidates))
	for i, p := range candidates {
		hs[i] = p.Handle()
	}
	return candidates[0], &AmbiguousError{Port: port, Candidates: hs}
}

// Listener pairs a listening port with a process holding it.
type Listener struct {
	Port    uint16
	Process process.Handle
}

// All returns every listening port with its processes, ordered by port and then pid.
// Uninspectable processes are skipped as in Find.
func All(ctx context.Context, lister process.Lister) ([]Listener, error) {
	ps, err := lister.Processes(ctx)
	if err != nil {
		return nil, gocore.Error("list processes", err)
	}

	var ls []Listener
	for _, p := range ps {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		eps, err := p.Endpoints(ctx)
		if err != nil {
			continue
		}
		seen := map[uint16]bool{}
		for _, ep := range eps {
			if ep.State == process.Listen && !seen[ep.Port] {
				seen[ep.Port] = true
				ls = append(ls, Listener{Port: ep.Port, Process: p.Handle()})
			}
		}
	}

	sort.Slice(ls, func(i, j int) bool {
		return ls[i].Port < ls[j].Port ||
			ls[i].Port == ls[j].Port && ls[i].Process.Pid < ls[j].Process.Pid
	})

	return ls, nil
}
