package core

// Address is the absolute bus address of a 32-bit peripheral register.
type Address uintptr

// RegisterDriver is the abstract register interface that core code uses.
// Platform-specific implementations handle actual hardware access; the host
// uses SimRegisters.
type RegisterDriver interface {
	// Read returns the current 32-bit contents of the register at addr.
	Read(addr Address) uint32

	// Write replaces the full contents of the register at addr.
	Write(addr Address, value uint32)
}

// InputPin is a digital input as seen by the toggle loop.
type InputPin interface {
	// Get reads the sampled electrical level (true = high).
	Get() bool
}

// OutputPin is a digital output driven without read-modify-write.
type OutputPin interface {
	// High drives the pin to logic high
	High()

	// Low drives the pin to logic low
	Low()
}
