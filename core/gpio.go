// GPIO port configuration for STM32F4-style ports
// Brings pins from reset state to a fully specified mode/type/pull and
// drives outputs through the atomic set/reset register.
package core

import (
	"ledtoggle/errcode"
)

// PinMode is the MODER field encoding
type PinMode uint8

const (
	ModeInput     PinMode = 0 // Input
	ModeOutput    PinMode = 1 // General purpose output
	ModeAlternate PinMode = 2 // Alternate function
	ModeAnalog    PinMode = 3 // Analog
)

// OutputType is the OTYPER field encoding
type OutputType uint8

const (
	PushPull  OutputType = 0
	OpenDrain OutputType = 1
)

// Pull is the PUPDR field encoding
type Pull uint8

const (
	PullNone Pull = 0
	PullUp   Pull = 1
	PullDown Pull = 2
)

// PinConfig is the complete configuration of one pin.
type PinConfig struct {
	Mode       PinMode
	OutputType OutputType
	Pull       Pull
}

// Validate rejects values outside the closed enumerations.
func (c PinConfig) Validate() error {
	if c.Mode > ModeAnalog {
		return errcode.Wrap(errcode.InvalidParams, "configure_pin", "mode="+utoa(uint32(c.Mode)))
	}
	if c.OutputType > OpenDrain {
		return errcode.Wrap(errcode.InvalidParams, "configure_pin", "output_type="+utoa(uint32(c.OutputType)))
	}
	if c.Pull > PullDown {
		return errcode.Wrap(errcode.InvalidParams, "configure_pin", "pull="+utoa(uint32(c.Pull)))
	}
	return nil
}

// drivesOutput reports whether the output type has any electrical meaning.
func (c PinConfig) drivesOutput() bool {
	return c.Mode == ModeOutput || c.Mode == ModeAlternate
}

// Port is one GPIO port block together with its clock gate.
type Port struct {
	Name     byte
	Base     Address
	ClockBit uint8

	regs RegisterDriver
}

// NewPort returns the STM32F4 port named name ('A', 'B', ...) accessed
// through regs.
func NewPort(regs RegisterDriver, name byte) (*Port, error) {
	info, ok := stm32f4Ports[name]
	if !ok {
		return nil, errcode.Wrap(errcode.UnknownPort, "new_port", string(name))
	}
	return &Port{
		Name:     name,
		Base:     info.base,
		ClockBit: info.clockBit,
		regs:     regs,
	}, nil
}

// EnableClock ORs bit into RCC_AHB1ENR. Other peripheral enables are kept.
// Calling it again has no further effect.
func EnableClock(regs RegisterDriver, bit uint8) {
	SetBits(regs, RCCAHB1ENR, 1<<bit)
}

// EnableClock gates the clock on for this port. It must run before any other
// register of the port is touched; the hardware silently ignores writes to an
// unclocked port.
func (p *Port) EnableClock() {
	EnableClock(p.regs, p.ClockBit)
}

// ClockEnabled reports whether the port's clock gate is on.
func (p *Port) ClockEnabled() bool {
	return p.regs.Read(RCCAHB1ENR)&(1<<p.ClockBit) != 0
}

// ConfigurePin programs mode, output type and pull for pin, in that order.
// Each field is cleared then set, so applying the same config twice leaves
// the registers as applying it once.
//
// Output type only applies to output and alternate modes. For input and
// analog pins it is written as push-pull (the reset value); asking for
// open-drain there is reported on the debug channel and otherwise ignored.
func (p *Port) ConfigurePin(pin uint8, cfg PinConfig) error {
	if pin >= PinsPerPort {
		return errcode.Wrap(errcode.UnknownPin, "configure_pin", p.pinName(pin))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	otype := cfg.OutputType
	if !cfg.drivesOutput() && otype != PushPull {
		DebugPrintln("[GPIO] " + p.pinName(pin) + ": output type ignored for non-output mode")
		otype = PushPull
	}

	SetField(p.regs, p.Base+GPIOModerOffset, ModeField(pin), uint32(cfg.Mode))
	SetField(p.regs, p.Base+GPIOOTyperOffset, OutputTypeField(pin), uint32(otype))
	SetField(p.regs, p.Base+GPIOPupdrOffset, PullField(pin), uint32(cfg.Pull))
	return nil
}

// PinConfigOf reads back the configuration of pin.
func (p *Port) PinConfigOf(pin uint8) PinConfig {
	return PinConfig{
		Mode:       PinMode(ReadField(p.regs, p.Base+GPIOModerOffset, ModeField(pin))),
		OutputType: OutputType(ReadField(p.regs, p.Base+GPIOOTyperOffset, OutputTypeField(pin))),
		Pull:       Pull(ReadField(p.regs, p.Base+GPIOPupdrOffset, PullField(pin))),
	}
}

// Set drives pin high with a single BSRR write.
func (p *Port) Set(pin uint8) {
	p.regs.Write(p.Base+GPIOBsrrOffset, BSRRSet(pin))
}

// Reset drives pin low with a single BSRR write.
func (p *Port) Reset(pin uint8) {
	p.regs.Write(p.Base+GPIOBsrrOffset, BSRRReset(pin))
}

// Input returns the port's IDR.
func (p *Port) Input() uint32 {
	return p.regs.Read(p.Base + GPIOIdrOffset)
}

// Output returns the port's ODR.
func (p *Port) Output() uint32 {
	return p.regs.Read(p.Base + GPIOOdrOffset)
}

// Pin returns a handle for pin n of this port.
func (p *Port) Pin(n uint8) Pin {
	return Pin{port: p, n: n}
}

func (p *Port) pinName(pin uint8) string {
	return "P" + string(p.Name) + utoa(uint32(pin))
}

// Pin is a single pin of a Port. It implements InputPin and OutputPin.
type Pin struct {
	port *Port
	n    uint8
}

// Configure applies cfg to the pin.
func (p Pin) Configure(cfg PinConfig) error { return p.port.ConfigurePin(p.n, cfg) }

// Get samples the pin's IDR bit.
func (p Pin) Get() bool { return p.port.Input()&(1<<p.n) != 0 }

// High drives the pin high.
func (p Pin) High() { p.port.Set(p.n) }

// Low drives the pin low.
func (p Pin) Low() { p.port.Reset(p.n) }

// Number returns the pin index within its port.
func (p Pin) Number() uint8 { return p.n }

// Port returns the pin's port.
func (p Pin) Port() *Port { return p.port }

// String returns the conventional name, e.g. "PC13".
func (p Pin) String() string { return p.port.pinName(p.n) }
