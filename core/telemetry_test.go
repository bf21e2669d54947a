package core

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledtoggle/errcode"
	"ledtoggle/protocol"
)

func decodeAll(t *testing.T, raw []byte) []protocol.Event {
	t.Helper()
	d := protocol.NewFrameDecoder()
	d.Feed(raw)
	var events []protocol.Event
	for {
		f, ok := d.Next()
		if !ok {
			break
		}
		ev, err := protocol.DecodeEvent(f.Payload)
		require.NoError(t, err)
		events = append(events, ev)
	}
	assert.Zero(t, d.Dropped)
	return events
}

func TestTelemetryEvents(t *testing.T) {
	var buf bytes.Buffer
	tel := NewTelemetry(&buf)

	tel.Boot("PC13", "PA0")
	tel.Toggle(StateOn, 1, 1500*time.Millisecond)
	tel.Fault(&errcode.E{C: errcode.Unreachable, Err: context.Canceled})

	events := decodeAll(t, buf.Bytes())
	require.Len(t, events, 3)

	assert.Equal(t, protocol.EventBoot, events[0].ID)
	assert.Equal(t, protocol.Version, events[0].Version)
	assert.Equal(t, "PC13", events[0].LEDPin)

	assert.Equal(t, protocol.Event{ID: protocol.EventToggle, On: true, Count: 1, UptimeMs: 1500}, events[1])

	assert.Equal(t, string(errcode.Unreachable), events[2].Code)
}

func TestTelemetryFromToggler(t *testing.T) {
	b := newBench(t)
	var buf bytes.Buffer
	tel := NewTelemetry(&buf)

	in := &scriptedInput{levels: []bool{true, false, true}}
	tg, err := NewToggler(TogglerConfig{
		Input:         in,
		Output:        b.led.Pin(13),
		StableSamples: 1,
		Clock:         b.clock,
		OnToggle:      tel.Toggle,
	})
	require.NoError(t, err)
	for range in.levels {
		tg.Step()
	}

	events := decodeAll(t, buf.Bytes())
	require.Len(t, events, 2)
	assert.True(t, events[0].On)
	assert.False(t, events[1].On)
	assert.Equal(t, uint32(2), events[1].Count)
}
