// Copyright © 2025 The Gomon Project.

package process

import (
	"errors"

	"github.com/zosmac/gocore"
)

const (
	// SourceGopsutil selects the portable gopsutil Lister.
	SourceGopsutil = "gopsutil"
	// SourceProcfs selects the Linux /proc Lister.
	SourceProcfs = "procfs"
)

// Sources lists the valid Lister sources, the first being the default.
var Sources = []string{SourceGopsutil, SourceProcfs}

// NewLister returns the Lister for a source.
func NewLister(source string) (Lister, error) {
	switch source {
	case SourceGopsutil, "":
		return NewPsutil(), nil
	case SourceProcfs:
		return NewProcfs()
	}
	return nil, gocore.Error("NewLister", errors.New("unknown process source"), map[string]string{
		"lister": source,
	})
}
