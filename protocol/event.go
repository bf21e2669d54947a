package protocol

import (
	"errors"

	"ledtoggle/errcode"
)

// EventID identifies the payload layout of a telemetry frame.
type EventID uint8

const (
	EventBoot   EventID = 1 // version string, led pin, button pin
	EventToggle EventID = 2 // state, count, uptime ms
	EventFault  EventID = 3 // error code string
)

func (id EventID) String() string {
	switch id {
	case EventBoot:
		return "boot"
	case EventToggle:
		return "toggle"
	case EventFault:
		return "fault"
	default:
		return "unknown"
	}
}

// ErrUnknownEvent is returned when a payload's event id is not recognised
var ErrUnknownEvent = errors.New("unknown event id")

// Event is the decoded form of one telemetry payload. Fields not used by
// the event's ID are left zero.
type Event struct {
	ID EventID

	// EventBoot
	Version   string
	LEDPin    string
	ButtonPin string

	// EventToggle
	On       bool
	Count    uint32
	UptimeMs uint32

	// EventFault
	Code string
}

// EncodeEvent appends ev's payload to output.
func EncodeEvent(output OutputBuffer, ev Event) error {
	EncodeVLQUint(output, uint32(ev.ID))
	switch ev.ID {
	case EventBoot:
		EncodeVLQString(output, ev.Version)
		EncodeVLQString(output, ev.LEDPin)
		EncodeVLQString(output, ev.ButtonPin)
	case EventToggle:
		on := uint32(0)
		if ev.On {
			on = 1
		}
		EncodeVLQUint(output, on)
		EncodeVLQUint(output, ev.Count)
		EncodeVLQUint(output, ev.UptimeMs)
	case EventFault:
		EncodeVLQString(output, ev.Code)
	default:
		return ErrUnknownEvent
	}
	return nil
}

// DecodeEvent parses one payload. Errors carry errcode.BadFrame and wrap
// the underlying cause.
func DecodeEvent(payload []byte) (Event, error) {
	ev, err := decodeEvent(payload)
	if err != nil {
		return ev, &errcode.E{C: errcode.BadFrame, Op: "decode_event", Err: err}
	}
	return ev, nil
}

func decodeEvent(payload []byte) (Event, error) {
	id, err := DecodeVLQUint(&payload)
	if err != nil {
		return Event{}, err
	}
	ev := Event{ID: EventID(id)}

	switch ev.ID {
	case EventBoot:
		if ev.Version, err = DecodeVLQString(&payload); err != nil {
			return ev, err
		}
		if ev.LEDPin, err = DecodeVLQString(&payload); err != nil {
			return ev, err
		}
		ev.ButtonPin, err = DecodeVLQString(&payload)
		return ev, err
	case EventToggle:
		on, err := DecodeVLQUint(&payload)
		if err != nil {
			return ev, err
		}
		ev.On = on != 0
		if ev.Count, err = DecodeVLQUint(&payload); err != nil {
			return ev, err
		}
		ev.UptimeMs, err = DecodeVLQUint(&payload)
		return ev, err
	case EventFault:
		ev.Code, err = DecodeVLQString(&payload)
		return ev, err
	default:
		return ev, ErrUnknownEvent
	}
}
