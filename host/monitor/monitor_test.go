package monitor

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledtoggle/core"
	"ledtoggle/errcode"
	"ledtoggle/protocol"
)

func TestMonitorDecodesTelemetry(t *testing.T) {
	var link bytes.Buffer
	tel := core.NewTelemetry(&link)
	tel.Boot("PC13", "PA0")
	link.WriteString("noise")
	tel.Toggle(core.StateOn, 1, 250*time.Millisecond)
	tel.Fault(errcode.Unreachable)

	m := New(&link)
	var lines []string
	err := m.Run(context.Background(), func(ev protocol.Event) {
		lines = append(lines, FormatEvent(ev))
	})
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, "boot version="+protocol.Version+" led=PC13 button=PA0", lines[0])
	// The toggle frame is lost while resynchronising after the noise
	assert.Equal(t, "fault code=unreachable", lines[1])
	assert.NotZero(t, m.Stats().Dropped)
}

func TestMonitorCleanStream(t *testing.T) {
	var link bytes.Buffer
	tel := core.NewTelemetry(&link)
	tel.Toggle(core.StateOn, 1, time.Second)
	tel.Toggle(core.StateOff, 2, 2*time.Second)

	m := New(&link)
	var events []protocol.Event
	require.NoError(t, m.Run(context.Background(), func(ev protocol.Event) { events = append(events, ev) }))

	require.Len(t, events, 2)
	assert.Equal(t, "toggle state=off count=2 t=2000ms", FormatEvent(events[1]))
	assert.Equal(t, Stats{}, m.Stats())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("unplugged") }

func TestMonitorReadError(t *testing.T) {
	err := New(failingReader{}).Run(context.Background(), func(protocol.Event) {})
	assert.ErrorContains(t, err, "unplugged")
}

func TestMonitorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(&bytes.Buffer{}).Run(ctx, func(protocol.Event) {})
	assert.ErrorIs(t, err, context.Canceled)
}
