package core

import "time"

// PinSetup places one pin and says how it is wired.
type PinSetup struct {
	Port      byte
	Pin       uint8
	Config    PinConfig
	ActiveLow bool
}

// BoardSetup is everything Bringup needs to start the toggle loop.
type BoardSetup struct {
	LED    PinSetup
	Button PinSetup

	SampleInterval time.Duration
	StableSamples  int
	SettleTime     time.Duration
}

// Board is the result of Bringup.
type Board struct {
	LED     Pin
	Button  Pin
	Toggler *Toggler
}

// Bringup runs the startup sequence: enable both port clocks, then configure
// the LED pin and the button pin, then build the toggler and drive the LED to
// its off level. Clocks go first because writes to an unclocked port are
// lost.
func Bringup(regs RegisterDriver, setup BoardSetup, clock Clock, onToggle ToggleHandler) (*Board, error) {
	ledPort, err := NewPort(regs, setup.LED.Port)
	if err != nil {
		return nil, err
	}
	buttonPort, err := NewPort(regs, setup.Button.Port)
	if err != nil {
		return nil, err
	}

	ledPort.EnableClock()
	buttonPort.EnableClock()

	led := ledPort.Pin(setup.LED.Pin)
	if err := led.Configure(setup.LED.Config); err != nil {
		return nil, err
	}
	button := buttonPort.Pin(setup.Button.Pin)
	if err := button.Configure(setup.Button.Config); err != nil {
		return nil, err
	}

	tg, err := NewToggler(TogglerConfig{
		Input:           button,
		Output:          led,
		InputActiveLow:  setup.Button.ActiveLow,
		OutputActiveLow: setup.LED.ActiveLow,
		SampleInterval:  setup.SampleInterval,
		StableSamples:   setup.StableSamples,
		SettleTime:      setup.SettleTime,
		Clock:           clock,
		OnToggle:        onToggle,
	})
	if err != nil {
		return nil, err
	}
	tg.Start()

	DebugPrintln("[BOOT] led=" + led.String() + " button=" + button.String() +
		" stable=" + itoa(setup.StableSamples))
	DumpRegisters(regs, ledPort)
	if buttonPort.Base != ledPort.Base {
		DumpRegisters(regs, buttonPort)
	}

	return &Board{LED: led, Button: button, Toggler: tg}, nil
}
