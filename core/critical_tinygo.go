//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts around a register read-modify-write
// and returns the previous state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
