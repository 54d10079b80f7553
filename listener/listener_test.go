// Copyright © 2025 The Gomon Project.

package listener

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zosmac/portmon/process"
	"github.com/zosmac/portmon/process/processtest"
)

func handles(ps []process.Process) []process.Handle {
	hs := make([]process.Handle, len(ps))
	for i, p := range ps {
		hs[i] = p.Handle()
	}
	return hs
}

func TestFind(t *testing.T) {
	established := processtest.Listening(300, "curl")
	established.Listeners = []process.Endpoint{{Port: 8080, State: "ESTABLISHED"}}

	dual := processtest.Listening(200, "envoy", 8080, 8080, 9901) // ipv4 and ipv6

	lister := &processtest.Lister{Procs: []*processtest.Process{
		processtest.Listening(100, "postgres", 5432),
		dual,
		processtest.Unreadable(1),
		established,
		processtest.Listening(150, "envoy", 8080),
	}}

	tests := []struct {
		name string
		port uint16
		want []process.Handle
	}{
		{
			name: "single listener",
			port: 5432,
			want: []process.Handle{{Pid: 100, Name: "postgres"}},
		},
		{
			name: "shared port ordered by pid and deduplicated",
			port: 8080,
			want: []process.Handle{{Pid: 150, Name: "envoy"}, {Pid: 200, Name: "envoy"}},
		},
		{
			name: "no listener",
			port: 6379,
			want: []process.Handle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := Find(context.Background(), lister, tt.port)
			require.NoError(t, err)
			assert.Equal(t, tt.want, handles(found))
		})
	}
}

func TestFind_ListError(t *testing.T) {
	lister := &processtest.Lister{Err: errors.New("no /proc")}
	_, err := Find(context.Background(), lister, 80)
	assert.Error(t, err)
}

func TestFind_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lister := &processtest.Lister{Procs: []*processtest.Process{processtest.Listening(1, "init", 80)}}
	_, err := Find(ctx, lister, 80)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelect(t *testing.T) {
	a := processtest.Listening(150, "envoy", 8080)
	b := processtest.Listening(200, "envoy", 8080)

	p, err := Select(8080, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNotFound)

	p, err = Select(8080, []process.Process{a})
	assert.NoError(t, err)
	assert.Same(t, a, p)

	p, err = Select(8080, []process.Process{a, b})
	assert.Same(t, a, p)
	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, uint16(8080), ambiguous.Port)
	assert.Len(t, ambiguous.Candidates, 2)
	assert.Equal(t, "2 processes listening on port 8080: envoy[150], envoy[200]", err.Error())
}

func TestAll(t *testing.T) {
	lister := &processtest.Lister{Procs: []*processtest.Process{
		processtest.Listening(200, "envoy", 8080, 8080, 9901),
		processtest.Unreadable(1),
		processtest.Listening(100, "postgres", 5432),
		processtest.Listening(150, "envoy", 8080),
	}}

	ls, err := All(context.Background(), lister)
	require.NoError(t, err)
	assert.Equal(t, []Listener{
		{Port: 5432, Process: process.Handle{Pid: 100, Name: "postgres"}},
		{Port: 8080, Process: process.Handle{Pid: 150, Name: "envoy"}},
		{Port: 8080, Process: process.Handle{Pid: 200, Name: "envoy"}},
		{Port: 9901, Process: process.Handle{Pid: 200, Name: "envoy"}},
	}, ls)
}
