// Copyright © 2025 The Gomon Project.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zosmac/gocore"
	"github.com/zosmac/portmon/listener"
	"github.com/zosmac/portmon/process"
)

func TestDisplay(t *testing.T) {
	ls := []listener.Listener{
		{Port: 22, Process: process.Handle{Pid: 812, Name: "sshd"}},
		{Port: 8080, Process: process.Handle{Pid: 4242, Name: "moonnet"}},
	}

	var out bytes.Buffer
	assert.Equal(t, 2, display(&out, ls, 0))
	assert.Equal(t, "PORT  PID   NAME\n22    812   sshd\n8080  4242  moonnet\n", out.String())

	out.Reset()
	assert.Equal(t, 1, display(&out, ls, 8080))
	assert.Equal(t, "PORT  PID   NAME\n8080  4242  moonnet\n", out.String())

	out.Reset()
	assert.Equal(t, 0, display(&out, ls, 443))
}

func TestParsePort(t *testing.T) {
	port, err := parsePort(nil)
	require.NoError(t, err)
	assert.Zero(t, port)

	port, err = parsePort([]string{"8080"})
	require.NoError(t, err)
	assert.Equal(t, uint16(8080), port)

	for _, args := range [][]string{{"0"}, {"65536"}, {"http"}, {"80", "443"}} {
		_, err := parsePort(args)
		assert.Error(t, err, args)
	}
}

func TestSourceFlag(t *testing.T) {
	f := gocore.Flags.Lookup("source")
	require.NotNil(t, f)
	assert.Equal(t, process.SourceGopsutil, f.DefValue)
}
