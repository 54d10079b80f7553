// Copyright © 2021-2025 The Gomon Project.

package process

import (
	"time"

	"github.com/prometheus/procfs"
	"github.com/tklauser/go-sysconf"
	"github.com/zosmac/gocore"
	"golang.org/x/sys/unix"
)

// NewProcfs returns a Lister that reads the /proc filesystem.
func NewProcfs() (Lister, error) {
	tck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return nil, gocore.Error("sysconf SC_CLK_TCK", err)
	}
	if tck <= 0 {
		tck = 100
	}

	fs, err := newProcfsLister(procfs.DefaultMountPoint, float64(tck), uint64(unix.Getpagesize()), time.Now)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
