package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ledtoggle/config"
	"ledtoggle/core"
)

var (
	simConfig    string
	simBoard     string
	simScript    string
	simPresses   string
	simDuration  time.Duration
	simTelemetry string
	simVerbose   bool
	simStable    int
	simSettle    time.Duration

	simCmd = &cobra.Command{
		Use:   "sim",
		Short: "Run the toggle loop against simulated registers",
		Long: "Runs pin bring-up and the toggle loop on an in-memory STM32F4 register file " +
			"with simulated time. The button is driven either per sample (--script) or by " +
			"press windows in simulated time (--press).",
		Example: "  ledtoggle-host sim --script 1,0,1,1,0\n" +
			"  ledtoggle-host sim --press 100ms-300ms,500ms-520ms --duration 1s",
		RunE: runSim,
	}
)

func init() {
	f := simCmd.Flags()
	f.StringVar(&simConfig, "config", "", "Board config JSON file")
	f.StringVar(&simBoard, "board", "blackpill", "Built-in board when no config file: blackpill or disco")
	f.StringVar(&simScript, "script", "", "Comma separated button samples, 1 = pressed")
	f.StringVar(&simPresses, "press", "", "Comma separated press windows, start-end in simulated time")
	f.DurationVar(&simDuration, "duration", time.Second, "Simulated time to run with --press")
	f.StringVar(&simTelemetry, "telemetry", "", "Write telemetry frames to this file")
	f.BoolVar(&simVerbose, "verbose", false, "Print debug output and register dumps")
	f.IntVar(&simStable, "stable", 0, "Override the number of stable samples the debouncer needs")
	f.DurationVar(&simSettle, "settle", 0, "Override the hold after each toggle, 0 keeps the default")
	simCmd.MarkFlagsMutuallyExclusive("script", "press")
}

func loadBoardConfig() (*config.BoardConfig, error) {
	if simConfig != "" {
		data, err := os.ReadFile(simConfig)
		if err != nil {
			return nil, err
		}
		return config.LoadConfig(data)
	}
	switch simBoard {
	case "blackpill":
		return config.DefaultBlackPillConfig(), nil
	case "disco":
		return config.DefaultDiscoveryConfig(), nil
	default:
		return nil, fmt.Errorf("unknown board %q", simBoard)
	}
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadBoardConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("stable") {
		cfg.StableSamples = simStable
	}
	if cmd.Flags().Changed("settle") {
		cfg.SettleMs = uint32(simSettle / time.Millisecond)
	}

	stim := stimulus{duration: simDuration}
	switch {
	case simScript != "":
		if stim.script, err = parseScript(simScript); err != nil {
			return err
		}
	case simPresses != "":
		if stim.presses, err = parsePresses(simPresses); err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of --script or --press is required")
	}

	out := cmd.OutOrStdout()
	if simVerbose || cfg.Debug {
		core.SetDebugWriter(func(s string) { fmt.Fprintln(out, s) })
		core.SetDebugEnabled(true)
	}

	tw := io.Discard
	if simTelemetry != "" {
		f, err := os.Create(simTelemetry)
		if err != nil {
			return err
		}
		defer f.Close()
		tw = f
	}

	_, err = simulate(out, tw, cfg, stim)
	return err
}

// stimulus drives the simulated button: one level per sample from script,
// or pressed during any of the windows until duration has passed.
type stimulus struct {
	script   []bool
	presses  []pressWindow
	duration time.Duration
}

// simulate brings the board up on simulated registers and runs the toggle
// loop until the stimulus is exhausted. Transitions are printed to out and
// telemetry frames written to tw.
func simulate(out, tw io.Writer, cfg *config.BoardConfig, stim stimulus) (*core.Board, error) {
	setup, err := cfg.Setup()
	if err != nil {
		return nil, fmt.Errorf("board setup: %w", err)
	}
	telemetry := core.NewTelemetry(tw)

	sim, err := newSimulation(setup, stim)
	if err != nil {
		return nil, err
	}
	onToggle := func(s core.ToggleState, n uint32, at time.Duration) {
		fmt.Fprintf(out, "%8s  led %-3s (toggle #%d)\n", at, s, n)
		telemetry.Toggle(s, n, at)
	}

	board, err := core.Bringup(sim.regs, setup, sim.clock, onToggle)
	if err != nil {
		return nil, fmt.Errorf("bringup: %w", err)
	}
	telemetry.Boot(board.LED.String(), board.Button.String())
	fmt.Fprintf(out, "board %s: led %s, button %s\n", cfg.Board, board.LED, board.Button)

	if stim.script != nil {
		for range stim.script {
			board.Toggler.Step()
		}
	} else {
		for sim.clock.Now() < stim.duration {
			board.Toggler.Step()
		}
	}

	fmt.Fprintf(out, "done: %d samples, %d toggles, state %s, led lit=%v\n",
		board.Toggler.Samples(), board.Toggler.Toggles(), board.Toggler.State(), ledLit(board, setup))
	return board, nil
}

func ledLit(b *core.Board, setup core.BoardSetup) bool {
	high := b.LED.Port().Output()&(1<<b.LED.Number()) != 0
	return high != setup.LED.ActiveLow
}

type pressWindow struct {
	start, end time.Duration
}

// simulation couples the register file to the button stimulus.
type simulation struct {
	regs  *core.SimRegisters
	clock *core.ManualClock

	base    core.Address
	pin     uint8
	lowWhen bool // electrical level when pressed is low

	script []bool
	pos    int
}

func newSimulation(setup core.BoardSetup, stim stimulus) (*simulation, error) {
	regs := core.NewSimRegisters()
	led, err := core.NewPort(regs, setup.LED.Port)
	if err != nil {
		return nil, err
	}
	button, err := core.NewPort(regs, setup.Button.Port)
	if err != nil {
		return nil, err
	}
	core.AttachPortModel(regs, led.Base)
	if button.Base != led.Base {
		core.AttachPortModel(regs, button.Base)
	}

	s := &simulation{
		regs:    regs,
		clock:   core.NewManualClock(),
		base:    button.Base,
		pin:     setup.Button.Pin,
		lowWhen: setup.Button.ActiveLow,
		script:  stim.script,
	}
	s.setPressed(false)

	if stim.script != nil {
		s.nextScripted()
		s.clock.OnSleep = func(time.Duration) { s.nextScripted() }
	} else {
		s.clock.OnSleep = func(now time.Duration) {
			pressed := false
			for _, w := range stim.presses {
				if now >= w.start && now < w.end {
					pressed = true
					break
				}
			}
			s.setPressed(pressed)
		}
	}
	return s, nil
}

func (s *simulation) nextScripted() {
	if s.pos < len(s.script) {
		s.setPressed(s.script[s.pos])
		s.pos++
	}
}

func (s *simulation) setPressed(pressed bool) {
	core.SetInputLevel(s.regs, s.base, s.pin, pressed != s.lowWhen)
}

func parseScript(s string) ([]bool, error) {
	var out []bool
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseBool(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("script sample %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parsePresses(s string) ([]pressWindow, error) {
	var out []pressWindow
	for _, f := range strings.Split(s, ",") {
		start, end, ok := strings.Cut(strings.TrimSpace(f), "-")
		if !ok {
			return nil, fmt.Errorf("press window %q: want start-end", f)
		}
		a, err := time.ParseDuration(start)
		if err != nil {
			return nil, fmt.Errorf("press window %q: %w", f, err)
		}
		b, err := time.ParseDuration(end)
		if err != nil {
			return nil, fmt.Errorf("press window %q: %w", f, err)
		}
		if b <= a {
			return nil, fmt.Errorf("press window %q: end before start", f)
		}
		out = append(out, pressWindow{start: a, end: b})
	}
	return out, nil
}
