package main

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledtoggle/config"
	"ledtoggle/core"
	"ledtoggle/host/monitor"
	"ledtoggle/protocol"
)

func TestSimulateScript(t *testing.T) {
	cfg := config.DefaultBlackPillConfig()
	cfg.StableSamples = 1
	cfg.SettleMs = 0

	var out, tw bytes.Buffer
	board, err := simulate(&out, &tw, cfg, stimulus{script: []bool{true, false, true, true, false}})
	require.NoError(t, err)

	assert.Equal(t, uint32(5), board.Toggler.Samples())
	assert.Equal(t, uint32(2), board.Toggler.Toggles())
	assert.Equal(t, core.StateOff, board.Toggler.State())
	assert.Contains(t, out.String(), "board blackpill: led PC13, button PA0")
	assert.Contains(t, out.String(), "led on  (toggle #1)")
	assert.Contains(t, out.String(), "led lit=false")

	var events []protocol.Event
	require.NoError(t, monitor.New(&tw).Run(context.Background(), func(ev protocol.Event) {
		events = append(events, ev)
	}))
	require.Len(t, events, 3)
	assert.Equal(t, protocol.EventBoot, events[0].ID)
	assert.Equal(t, "PA0", events[0].ButtonPin)
	assert.Equal(t, protocol.EventToggle, events[1].ID)
	assert.True(t, events[1].On)
	assert.False(t, events[2].On)
	assert.Equal(t, uint32(2), events[2].Count)
}

func TestSimulatePressWindows(t *testing.T) {
	cfg := config.DefaultBlackPillConfig()
	stim := stimulus{
		presses: []pressWindow{
			{start: 100 * time.Millisecond, end: 300 * time.Millisecond},
			{start: 500 * time.Millisecond, end: 502 * time.Millisecond}, // one sample, a bounce
			{start: 700 * time.Millisecond, end: 720 * time.Millisecond},
		},
		duration: time.Second,
	}

	var out bytes.Buffer
	board, err := simulate(&out, io.Discard, cfg, stim)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), board.Toggler.Toggles())
	assert.Equal(t, core.StateOff, board.Toggler.State())
	assert.Contains(t, out.String(), "115ms  led on")
	assert.Contains(t, out.String(), "715ms  led off")
}

func TestSimulateActiveLowButton(t *testing.T) {
	cfg := config.DefaultBlackPillConfig()
	cfg.Button.Pull = "up"
	cfg.Button.ActiveLow = true
	cfg.StableSamples = 1

	board, err := simulate(io.Discard, io.Discard, cfg, stimulus{script: []bool{false, true, false}})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), board.Toggler.Toggles())
	assert.Equal(t, core.StateOn, board.Toggler.State())
}

func TestSimulateBadConfig(t *testing.T) {
	cfg := config.DefaultBlackPillConfig()
	cfg.Button.Pin = "PC13"

	_, err := simulate(io.Discard, io.Discard, cfg, stimulus{script: []bool{true}})
	assert.Error(t, err)
}

func TestParseScript(t *testing.T) {
	got, err := parseScript("1, 0,true,false")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false}, got)

	_, err = parseScript("1,x")
	assert.Error(t, err)
}

func TestParsePresses(t *testing.T) {
	got, err := parsePresses("100ms-300ms, 1s-1.5s")
	require.NoError(t, err)
	assert.Equal(t, []pressWindow{
		{start: 100 * time.Millisecond, end: 300 * time.Millisecond},
		{start: time.Second, end: 1500 * time.Millisecond},
	}, got)

	for _, bad := range []string{"100ms", "a-1s", "1s-b", "2s-1s"} {
		_, err := parsePresses(bad)
		assert.Error(t, err, bad)
	}
}

func TestSimCommandTimingOverrides(t *testing.T) {
	var out bytes.Buffer
	simCmd.SetOut(&out)
	defer simCmd.SetOut(nil)

	flags := simCmd.Flags()
	require.NoError(t, flags.Set("script", "1,0,1,1,0"))
	require.NoError(t, flags.Set("stable", "1"))
	require.NoError(t, flags.Set("settle", "20ms"))
	defer func() {
		simScript, simStable, simSettle = "", 0, 0
	}()

	require.NoError(t, runSim(simCmd, nil))

	// Pressed at 0s, held 20ms, released for one 5ms sample, pressed again
	assert.Contains(t, out.String(), "0s  led on")
	assert.Contains(t, out.String(), "25ms  led off")
	assert.Contains(t, out.String(), "5 samples, 2 toggles")
}
