package core

import "golang.org/x/exp/constraints"

// Field is a positioned subrange of a register. Mask is already shifted
// into place.
type Field struct {
	Shift uint8
	Mask  uint32
}

// NewField returns the field width bits wide starting at bit shift.
func NewField(shift, width uint8) Field {
	return Field{
		Shift: shift,
		Mask:  ((uint32(1) << width) - 1) << shift,
	}
}

// Insert returns raw with the field replaced by value. Bits of value that do
// not fit in the field are dropped.
func (f Field) Insert(raw, value uint32) uint32 {
	return InsertField(raw, f.Shift, f.Mask, value)
}

// Extract returns the field's value from raw, right-aligned.
func (f Field) Extract(raw uint32) uint32 {
	return ExtractField(raw, f.Shift, f.Mask)
}

// InsertField clears mask in raw and ORs in value shifted into place.
func InsertField[T constraints.Unsigned](raw T, shift uint8, mask, value T) T {
	return (raw &^ mask) | ((value << shift) & mask)
}

// ExtractField returns (raw & mask) >> shift.
func ExtractField[T constraints.Unsigned](raw T, shift uint8, mask T) T {
	return (raw & mask) >> shift
}

// SetField performs a read-modify-write of one field of the register at
// addr. Bits outside f.Mask are written back unchanged.
//
// The sequence is only atomic with respect to interrupts on this core; a
// register that other bus masters write needs a hardware set/reset register
// instead.
func SetField(d RegisterDriver, addr Address, f Field, value uint32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	d.Write(addr, f.Insert(d.Read(addr), value))
}

// SetBits ORs bits into the register at addr.
func SetBits(d RegisterDriver, addr Address, bits uint32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	d.Write(addr, d.Read(addr)|bits)
}

// ReadField returns the value of field f of the register at addr.
func ReadField(d RegisterDriver, addr Address, f Field) uint32 {
	return f.Extract(d.Read(addr))
}
