// Copyright © 2021-2025 The Gomon Project.

// Package version serves the -version flag that gocore registers for every command.
package version

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/zosmac/gocore"
)

// Requested reports whether -version was set on the command line.
func Requested() bool {
	f := gocore.Flags.Lookup("version")
	return f != nil && f.Value.String() == "true"
}

// Print writes the command's build information.
func Print(w io.Writer) {
	exe, _ := os.Executable()
	module, vers := "unknown", "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok {
		module, vers = info.Main.Path, info.Main.Version
	}
	fmt.Fprintf(w, `Command    - %s
Module     - %s
Version    - %s
Compiler   - %s %s_%s
`,
		exe, module, vers, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
