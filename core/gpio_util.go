package core

import (
	"strings"

	"ledtoggle/errcode"
)

// Shared helpers for naming pin configuration values.

func (m PinMode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeOutput:
		return "output"
	case ModeAlternate:
		return "alternate"
	case ModeAnalog:
		return "analog"
	default:
		return "mode(" + utoa(uint32(m)) + ")"
	}
}

func (o OutputType) String() string {
	switch o {
	case PushPull:
		return "push-pull"
	case OpenDrain:
		return "open-drain"
	default:
		return "otype(" + utoa(uint32(o)) + ")"
	}
}

func (p Pull) String() string {
	switch p {
	case PullNone:
		return "none"
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "pull(" + utoa(uint32(p)) + ")"
	}
}

// ParsePull accepts "none", "up"/"pullup", "down"/"pulldown" (any case).
// The empty string means none.
func ParsePull(s string) (Pull, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return PullNone, nil
	case "up", "pullup":
		return PullUp, nil
	case "down", "pulldown":
		return PullDown, nil
	default:
		return PullNone, errcode.Wrap(errcode.InvalidParams, "parse_pull", s)
	}
}

// ParseOutputType accepts "push-pull"/"pp" and "open-drain"/"od".
// The empty string means push-pull.
func ParseOutputType(s string) (OutputType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "push-pull", "pushpull", "pp":
		return PushPull, nil
	case "open-drain", "opendrain", "od":
		return OpenDrain, nil
	default:
		return PushPull, errcode.Wrap(errcode.InvalidParams, "parse_output_type", s)
	}
}

// ParsePinName splits "PC13" into port 'C' and pin 13.
func ParsePinName(s string) (byte, uint8, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 3 || s[0] != 'P' {
		return 0, 0, errcode.Wrap(errcode.UnknownPin, "parse_pin", s)
	}
	port := s[1]
	if _, ok := stm32f4Ports[port]; !ok {
		return 0, 0, errcode.Wrap(errcode.UnknownPort, "parse_pin", s)
	}
	n := 0
	for _, c := range s[2:] {
		if c < '0' || c > '9' {
			return 0, 0, errcode.Wrap(errcode.UnknownPin, "parse_pin", s)
		}
		n = n*10 + int(c-'0')
		if n >= PinsPerPort {
			return 0, 0, errcode.Wrap(errcode.UnknownPin, "parse_pin", s)
		}
	}
	return port, uint8(n), nil
}
