//go:build stm32f4

package main

import (
	"context"
	"machine"
	"os"

	"ledtoggle/core"
)

// Exit statuses. ExitUnreachable is only used when the toggle loop returns.
const (
	ExitUnreachable = 1
	ExitSetup       = 2
)

func main() {
	cfg := boardConfig()

	// machine.Serial is already configured by the runtime.
	if cfg.Debug {
		core.SetDebugWriter(func(s string) {
			machine.Serial.Write([]byte(s))
			machine.Serial.Write([]byte("\r\n"))
		})
		core.SetDebugEnabled(true)
	}
	telemetry := core.NewTelemetry(machine.Serial)

	setup, err := cfg.Setup()
	if err != nil {
		fail(telemetry, err, ExitSetup)
	}

	board, err := core.Bringup(MMIORegisters{}, setup, core.NewSystemClock(), telemetry.Toggle)
	if err != nil {
		fail(telemetry, err, ExitSetup)
	}
	telemetry.Boot(cfg.LED.Pin, cfg.Button.Pin)

	// Never returns on hardware; nothing cancels the context.
	err = board.Toggler.Run(context.Background())
	fail(telemetry, err, ExitUnreachable)
}

func fail(telemetry *core.Telemetry, err error, status int) {
	core.DebugPrintln("[FATAL] " + err.Error())
	telemetry.Fault(err)
	os.Exit(status)
}
