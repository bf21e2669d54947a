package core

// STM32F4 register map. Only the registers the pin configurator and the
// toggle loop touch are listed.

// Reset and clock control
const (
	RCCBase          Address = 0x40023800
	RCCAHB1ENROffset         = 0x30 // AHB1 peripheral clock enable
	RCCAHB1ENR               = RCCBase + RCCAHB1ENROffset
)

// GPIO port base addresses (AHB1)
const (
	GPIOABase Address = 0x40020000
	GPIOBBase Address = 0x40020400
	GPIOCBase Address = 0x40020800
	GPIODBase Address = 0x40020C00
	GPIOEBase Address = 0x40021000
	GPIOHBase Address = 0x40021C00
)

// GPIO register offsets from a port base
const (
	GPIOModerOffset  = 0x00 // mode, 2 bits per pin
	GPIOOTyperOffset = 0x04 // output type, 1 bit per pin
	GPIOPupdrOffset  = 0x0C // pull-up/pull-down, 2 bits per pin
	GPIOIdrOffset    = 0x10 // input data, read-only
	GPIOOdrOffset    = 0x14 // output data
	GPIOBsrrOffset   = 0x18 // bit set/reset, write-only
)

// PinsPerPort is the number of pins in one GPIO port.
const PinsPerPort = 16

// ModeField is the 2-bit MODER field for pin.
func ModeField(pin uint8) Field { return NewField(pin*2, 2) }

// OutputTypeField is the 1-bit OTYPER field for pin.
func OutputTypeField(pin uint8) Field { return NewField(pin, 1) }

// PullField is the 2-bit PUPDR field for pin.
func PullField(pin uint8) Field { return NewField(pin*2, 2) }

// BSRRSet is the BSRR value that drives pin high.
func BSRRSet(pin uint8) uint32 { return 1 << pin }

// BSRRReset is the BSRR value that drives pin low.
func BSRRReset(pin uint8) uint32 { return 1 << (pin + 16) }

// portInfo describes one GPIO port: its base and its AHB1ENR clock bit.
type portInfo struct {
	base     Address
	clockBit uint8
}

var stm32f4Ports = map[byte]portInfo{
	'A': {GPIOABase, 0},
	'B': {GPIOBBase, 1},
	'C': {GPIOCBase, 2},
	'D': {GPIODBase, 3},
	'E': {GPIOEBase, 4},
	'H': {GPIOHBase, 7},
}

// AttachPortModel makes s behave like an STM32F4 GPIO port at base: BSRR
// reads as zero and writes to it update ODR, with set taking priority over
// reset for the same pin.
func AttachPortModel(s *SimRegisters, base Address) {
	bsrr := base + GPIOBsrrOffset
	odr := base + GPIOOdrOffset
	s.SetWriteOnly(bsrr)
	s.OnWrite(bsrr, func(s *SimRegisters, v uint32) {
		set := v & 0xFFFF
		reset := v >> 16
		s.Update(odr, func(old uint32) uint32 { return (old &^ reset) | set })
		s.Poke(bsrr, 0)
	})
}

// SetInputLevel drives the IDR bit for pin on the simulated port at base.
func SetInputLevel(s *SimRegisters, base Address, pin uint8, high bool) {
	bit := uint32(1) << pin
	s.Update(base+GPIOIdrOffset, func(v uint32) uint32 {
		if high {
			return v | bit
		}
		return v &^ bit
	})
}
