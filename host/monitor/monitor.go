// Package monitor reads telemetry frames from the board and decodes them
// into events.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ledtoggle/host/serial"
	"ledtoggle/protocol"
)

// Handler receives each decoded event.
type Handler func(protocol.Event)

// Monitor owns the link and the frame decoder.
type Monitor struct {
	r   io.Reader
	dec *protocol.FrameDecoder

	// eofIsTimeout treats io.EOF as "no data yet" rather than end of
	// stream; serial ports report a read timeout that way.
	eofIsTimeout bool

	closer io.Closer

	// Malformed counts frames whose payload did not decode.
	Malformed uint32
}

// New returns a monitor reading from r until r reports io.EOF.
func New(r io.Reader) *Monitor {
	return &Monitor{r: r, dec: protocol.NewFrameDecoder()}
}

// ConnectWithConfig opens a serial port with a custom config
func ConnectWithConfig(cfg *serial.Config) (*Monitor, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	// Drop whatever the board printed before we attached
	_ = port.Flush()

	m := New(port)
	m.eofIsTimeout = true
	m.closer = port
	return m, nil
}

// Close closes the underlying port, if the monitor opened one
func (m *Monitor) Close() error {
	if m.closer != nil {
		return m.closer.Close()
	}
	return nil
}

// Run reads and decodes until ctx is done or the reader fails. It returns
// nil at end of stream.
func (m *Monitor) Run(ctx context.Context, h Handler) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := m.r.Read(buf)
		if n > 0 {
			m.dec.Feed(buf[:n])
			m.drain(h)
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			if !m.eofIsTimeout {
				return nil
			}
		default:
			return fmt.Errorf("read telemetry: %w", err)
		}
	}
}

func (m *Monitor) drain(h Handler) {
	for {
		f, ok := m.dec.Next()
		if !ok {
			return
		}
		ev, err := protocol.DecodeEvent(f.Payload)
		if err != nil {
			m.Malformed++
			continue
		}
		h(ev)
	}
}

// Stats reports link health counters.
type Stats struct {
	Dropped   uint32 // frames discarded for framing/CRC errors
	Lost      uint32 // frames missing from the sequence
	Malformed uint32 // frames with undecodable payloads
}

// Stats returns the current counters
func (m *Monitor) Stats() Stats {
	return Stats{Dropped: m.dec.Dropped, Lost: m.dec.Lost, Malformed: m.Malformed}
}

// FormatEvent renders ev as a single line.
func FormatEvent(ev protocol.Event) string {
	var b strings.Builder
	b.WriteString(ev.ID.String())
	switch ev.ID {
	case protocol.EventBoot:
		fmt.Fprintf(&b, " version=%s led=%s button=%s", ev.Version, ev.LEDPin, ev.ButtonPin)
	case protocol.EventToggle:
		state := "off"
		if ev.On {
			state = "on"
		}
		fmt.Fprintf(&b, " state=%s count=%d t=%dms", state, ev.Count, ev.UptimeMs)
	case protocol.EventFault:
		fmt.Fprintf(&b, " code=%s", ev.Code)
	}
	return b.String()
}
