package core

import (
	"io"
	"time"

	"ledtoggle/errcode"
	"ledtoggle/protocol"
)

// Telemetry writes framed events to a serial link. Write errors are
// dropped: telemetry must never stall the toggle loop.
type Telemetry struct {
	w       io.Writer
	enc     protocol.FrameEncoder
	payload *protocol.ScratchOutput
	frame   *protocol.ScratchOutput
}

// NewTelemetry returns an emitter writing to w.
func NewTelemetry(w io.Writer) *Telemetry {
	return &Telemetry{
		w:       w,
		payload: protocol.NewScratchOutput(),
		frame:   protocol.NewScratchOutput(),
	}
}

// Boot reports startup with the pins in use. A leading sync byte lets a
// receiver that saw boot-time noise resynchronise before the first frame.
func (t *Telemetry) Boot(led, button string) {
	t.w.Write([]byte{protocol.MessageValueSync})
	t.emit(protocol.Event{
		ID:        protocol.EventBoot,
		Version:   protocol.Version,
		LEDPin:    led,
		ButtonPin: button,
	})
}

// Toggle reports a state change. It matches ToggleHandler.
func (t *Telemetry) Toggle(state ToggleState, count uint32, at time.Duration) {
	t.emit(protocol.Event{
		ID:       protocol.EventToggle,
		On:       state == StateOn,
		Count:    count,
		UptimeMs: uint32(at / time.Millisecond),
	})
}

// Fault reports the code carried by err.
func (t *Telemetry) Fault(err error) {
	t.emit(protocol.Event{ID: protocol.EventFault, Code: string(errcode.Of(err))})
}

func (t *Telemetry) emit(ev protocol.Event) {
	t.payload.Reset()
	if err := protocol.EncodeEvent(t.payload, ev); err != nil {
		DebugPrintln("[TELEMETRY] encode: " + err.Error())
		return
	}
	t.frame.Reset()
	if err := t.enc.Encode(t.frame, t.payload.Result()); err != nil {
		DebugPrintln("[TELEMETRY] frame: " + err.Error())
		return
	}
	t.w.Write(t.frame.Result())
}
