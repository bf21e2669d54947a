//go:build stm32f4

package main

import (
	"runtime/volatile"
	"unsafe"

	"ledtoggle/core"
)

// MMIORegisters implements core.RegisterDriver with volatile loads and
// stores to the physical address. Addresses are not checked.
type MMIORegisters struct{}

func (MMIORegisters) Read(addr core.Address) uint32 {
	return reg(addr).Get()
}

func (MMIORegisters) Write(addr core.Address, value uint32) {
	reg(addr).Set(value)
}

func reg(addr core.Address) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(addr)))
}
