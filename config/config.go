// Package config describes how a board is wired and how the toggle loop is
// timed, and turns that description into a core.BoardSetup.
package config

import (
	"encoding/json"
	"time"

	"ledtoggle/core"
	"ledtoggle/errcode"
)

// PinConfig describes one pin and its electrical wiring
type PinConfig struct {
	Pin        string `json:"pin"`                   // e.g. "PC13"
	Pull       string `json:"pull,omitempty"`        // "none", "up", "down"
	OutputType string `json:"output_type,omitempty"` // "push-pull", "open-drain"; outputs only
	ActiveLow  bool   `json:"active_low,omitempty"`  // LED lit / button pressed when low
}

// BoardConfig is the whole board description
type BoardConfig struct {
	Board  string    `json:"board"`
	LED    PinConfig `json:"led"`
	Button PinConfig `json:"button"`

	SampleIntervalMs uint32 `json:"sample_interval_ms"`
	StableSamples    int    `json:"stable_samples"`
	SettleMs         uint32 `json:"settle_ms"`

	Debug bool `json:"debug,omitempty"`
}

// LoadConfig parses a JSON configuration and applies defaults
func LoadConfig(jsonData []byte) (*BoardConfig, error) {
	var config BoardConfig

	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// applyDefaults fills in missing values. Pins default to the BlackPill
// layout.
func applyDefaults(config *BoardConfig) {
	def := DefaultBlackPillConfig()

	if config.Board == "" {
		config.Board = def.Board
	}
	if config.LED.Pin == "" {
		config.LED = def.LED
	}
	if config.Button.Pin == "" {
		config.Button = def.Button
	}
	if config.SampleIntervalMs == 0 {
		config.SampleIntervalMs = def.SampleIntervalMs
	}
	if config.StableSamples == 0 {
		config.StableSamples = def.StableSamples
	}
	if config.SettleMs == 0 {
		config.SettleMs = def.SettleMs
	}
}

// DefaultBlackPillConfig is the STM32F411 "BlackPill": active-low LED on
// PC13, button on PA0.
//
// The button is sampled active-high with the internal pull-down enabled so
// an unconnected input reads released. Boards whose button switches to
// ground should set Pull "up" and ActiveLow.
func DefaultBlackPillConfig() *BoardConfig {
	return &BoardConfig{
		Board: "blackpill-f411",
		LED: PinConfig{
			Pin:        "PC13",
			Pull:       "none",
			OutputType: "push-pull",
			ActiveLow:  true,
		},
		Button: PinConfig{
			Pin:  "PA0",
			Pull: "down",
		},
		SampleIntervalMs: 5,
		StableSamples:    4,
		SettleMs:         50,
	}
}

// DefaultDiscoveryConfig is the STM32F4DISCOVERY: green LED on PD12, user
// button on PA0 with an external pull-down.
func DefaultDiscoveryConfig() *BoardConfig {
	return &BoardConfig{
		Board: "stm32f4disco",
		LED: PinConfig{
			Pin:        "PD12",
			OutputType: "push-pull",
		},
		Button: PinConfig{
			Pin: "PA0",
		},
		SampleIntervalMs: 5,
		StableSamples:    4,
		SettleMs:         50,
	}
}

// Setup converts the configuration into a core.BoardSetup. The LED is an
// output, the button an input; an output type given for the button is
// rejected rather than silently carried to the hardware.
func (c *BoardConfig) Setup() (core.BoardSetup, error) {
	led, err := pinSetup(c.LED, core.ModeOutput)
	if err != nil {
		return core.BoardSetup{}, err
	}
	if c.Button.OutputType != "" {
		return core.BoardSetup{}, errcode.Wrap(errcode.InvalidParams, "config", "output_type set on input pin "+c.Button.Pin)
	}
	button, err := pinSetup(c.Button, core.ModeInput)
	if err != nil {
		return core.BoardSetup{}, err
	}
	if led.Port == button.Port && led.Pin == button.Pin {
		return core.BoardSetup{}, errcode.Wrap(errcode.InvalidParams, "config", "led and button share "+c.LED.Pin)
	}
	if c.StableSamples < 0 {
		return core.BoardSetup{}, errcode.Wrap(errcode.InvalidParams, "config", "stable_samples")
	}

	return core.BoardSetup{
		LED:            led,
		Button:         button,
		SampleInterval: time.Duration(c.SampleIntervalMs) * time.Millisecond,
		StableSamples:  c.StableSamples,
		SettleTime:     time.Duration(c.SettleMs) * time.Millisecond,
	}, nil
}

func pinSetup(p PinConfig, mode core.PinMode) (core.PinSetup, error) {
	port, n, err := core.ParsePinName(p.Pin)
	if err != nil {
		return core.PinSetup{}, err
	}
	pull, err := core.ParsePull(p.Pull)
	if err != nil {
		return core.PinSetup{}, err
	}
	otype, err := core.ParseOutputType(p.OutputType)
	if err != nil {
		return core.PinSetup{}, err
	}
	return core.PinSetup{
		Port:      port,
		Pin:       n,
		Config:    core.PinConfig{Mode: mode, OutputType: otype, Pull: pull},
		ActiveLow: p.ActiveLow,
	}, nil
}
