// Toggle controller
// Polls a button input and flips an LED output once per debounced press
package core

import (
	"context"
	"time"

	"ledtoggle/errcode"
)

// ToggleState is the controller's binary state.
type ToggleState uint8

const (
	StateOff ToggleState = 0
	StateOn  ToggleState = 1
)

func (s ToggleState) String() string {
	if s == StateOn {
		return "on"
	}
	return "off"
}

// Default loop timing
const (
	DefaultSampleInterval = 5 * time.Millisecond
	DefaultStableSamples  = 4
	DefaultSettleTime     = 50 * time.Millisecond
)

// ToggleHandler is called after every transition with the new state and the
// total number of transitions so far.
type ToggleHandler func(state ToggleState, count uint32, at time.Duration)

// TogglerConfig wires a Toggler to its pins and time source.
type TogglerConfig struct {
	Input  InputPin
	Output OutputPin

	// InputActiveLow means the button reads low when pressed.
	InputActiveLow bool
	// OutputActiveLow means the LED lights when the pin is low.
	OutputActiveLow bool

	SampleInterval time.Duration
	StableSamples  int
	SettleTime     time.Duration

	Clock    Clock
	OnToggle ToggleHandler
}

// Toggler owns the toggle state. Each instance is independent; nothing is
// kept at package level.
type Toggler struct {
	cfg      TogglerConfig
	state    ToggleState
	debounce *Debouncer
	toggles  uint32
	samples  uint32
}

// NewToggler validates cfg and fills in default timing. The state starts
// off; call Start to drive the output to match before the first Step.
func NewToggler(cfg TogglerConfig) (*Toggler, error) {
	if cfg.Input == nil || cfg.Output == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "new_toggler", "missing pin")
	}
	if cfg.SampleInterval < 0 || cfg.SettleTime < 0 || cfg.StableSamples < 0 {
		return nil, errcode.Wrap(errcode.InvalidParams, "new_toggler", "negative timing")
	}
	if cfg.SampleInterval == 0 {
		cfg.SampleInterval = DefaultSampleInterval
	}
	if cfg.StableSamples == 0 {
		cfg.StableSamples = DefaultStableSamples
	}
	if cfg.SettleTime == 0 {
		cfg.SettleTime = DefaultSettleTime
	}
	if cfg.Clock == nil {
		cfg.Clock = NewSystemClock()
	}
	return &Toggler{
		cfg:      cfg,
		state:    StateOff,
		debounce: NewDebouncer(cfg.StableSamples, false),
	}, nil
}

// Start drives the output to the inactive level.
func (t *Toggler) Start() {
	t.drive(StateOff)
}

// Step runs one loop iteration: sample, debounce, and on a debounced
// released->pressed edge toggle the state and hold for SettleTime. Otherwise
// it waits one SampleInterval. Holding the button does not retrigger; it must
// be seen released before the next press counts. Step reports whether it
// toggled.
func (t *Toggler) Step() bool {
	t.samples++
	pressed, changed := t.debounce.Update(t.active())
	if !changed || !pressed {
		t.cfg.Clock.Sleep(t.cfg.SampleInterval)
		return false
	}

	t.toggle()
	t.cfg.Clock.Sleep(t.cfg.SettleTime)
	return true
}

// Run calls Step until ctx is done. On hardware ctx is never cancelled, so
// a return is always an error carrying errcode.Unreachable.
func (t *Toggler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return &errcode.E{C: errcode.Unreachable, Op: "toggle_loop", Err: ctx.Err()}
		default:
		}
		t.Step()
	}
}

// State returns the current toggle state.
func (t *Toggler) State() ToggleState { return t.state }

// Toggles returns the number of transitions so far.
func (t *Toggler) Toggles() uint32 { return t.toggles }

// Samples returns the number of input samples taken.
func (t *Toggler) Samples() uint32 { return t.samples }

func (t *Toggler) active() bool {
	return t.cfg.Input.Get() != t.cfg.InputActiveLow
}

func (t *Toggler) toggle() {
	if t.state == StateOff {
		t.state = StateOn
	} else {
		t.state = StateOff
	}
	t.drive(t.state)
	t.toggles++

	if t.cfg.OnToggle != nil {
		t.cfg.OnToggle(t.state, t.toggles, t.cfg.Clock.Now())
	}
}

// drive writes the output level for s with one set or reset write.
func (t *Toggler) drive(s ToggleState) {
	high := (s == StateOn) != t.cfg.OutputActiveLow
	if high {
		t.cfg.Output.High()
	} else {
		t.cfg.Output.Low()
	}
}
