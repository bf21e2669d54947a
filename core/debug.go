package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DumpRegisters writes the configuration registers of p to the debug
// writer. Used after startup to confirm the pins took their settings.
func DumpRegisters(regs RegisterDriver, p *Port) {
	if !IsDebugEnabled() {
		return
	}
	DebugPrintln("[REGS] RCC_AHB1ENR=" + hex32(regs.Read(RCCAHB1ENR)))
	prefix := "[REGS] GPIO" + string(p.Name)
	DebugPrintln(prefix + "_MODER=" + hex32(regs.Read(p.Base+GPIOModerOffset)))
	DebugPrintln(prefix + "_OTYPER=" + hex32(regs.Read(p.Base+GPIOOTyperOffset)))
	DebugPrintln(prefix + "_PUPDR=" + hex32(regs.Read(p.Base+GPIOPupdrOffset)))
	DebugPrintln(prefix + "_IDR=" + hex32(regs.Read(p.Base+GPIOIdrOffset)))
	DebugPrintln(prefix + "_ODR=" + hex32(regs.Read(p.Base+GPIOOdrOffset)))
}
