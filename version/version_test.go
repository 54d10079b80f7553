// Copyright © 2025 The Gomon Project.

package version

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zosmac/gocore"
)

func TestRequested(t *testing.T) {
	assert.False(t, Requested())

	require.NoError(t, gocore.Flags.Set("version", "true"))
	t.Cleanup(func() { gocore.Flags.Set("version", "false") })
	assert.True(t, Requested())
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	Print(&out)

	assert.Contains(t, out.String(), "Module     - ")
	assert.Contains(t, out.String(), "Compiler   - "+runtime.Version())
}
