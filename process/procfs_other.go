// Copyright © 2021-2025 The Gomon Project.

//go:build !linux

package process

import (
	"github.com/zosmac/gocore"
)

// NewProcfs is only supported on Linux.
func NewProcfs() (Lister, error) {
	return nil, gocore.Unsupported()
}
