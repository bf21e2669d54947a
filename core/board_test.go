package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledtoggle/errcode"
)

func blackPillSetup() BoardSetup {
	return BoardSetup{
		LED: PinSetup{
			Port:      'C',
			Pin:       13,
			Config:    PinConfig{Mode: ModeOutput, OutputType: PushPull, Pull: PullNone},
			ActiveLow: true,
		},
		Button: PinSetup{
			Port:   'A',
			Pin:    0,
			Config: PinConfig{Mode: ModeInput, Pull: PullDown},
		},
		SampleInterval: time.Millisecond,
		StableSamples:  1,
		SettleTime:     10 * time.Millisecond,
	}
}

func TestBringupOrder(t *testing.T) {
	regs := NewSimRegisters()
	AttachPortModel(regs, GPIOCBase)
	AttachPortModel(regs, GPIOABase)

	board, err := Bringup(regs, blackPillSetup(), NewManualClock(), nil)
	require.NoError(t, err)

	writes := regs.Writes()
	require.NotEmpty(t, writes)
	// Both clock enables come before any port register write
	assert.Equal(t, RCCAHB1ENR, writes[0].Addr)
	assert.Equal(t, RCCAHB1ENR, writes[1].Addr)
	assert.Equal(t, uint32(0x5), regs.Read(RCCAHB1ENR))
	for _, w := range writes[2:] {
		assert.NotEqual(t, RCCAHB1ENR, w.Addr)
	}

	assert.Equal(t, PinConfig{Mode: ModeOutput}, board.LED.Port().PinConfigOf(13))
	assert.Equal(t, PinConfig{Mode: ModeInput, Pull: PullDown}, board.Button.Port().PinConfigOf(0))

	// Active-low LED starts off, i.e. high
	last := writes[len(writes)-1]
	assert.Equal(t, RegisterWrite{Addr: GPIOCBase + GPIOBsrrOffset, Value: BSRRSet(13)}, last)
	assert.Equal(t, StateOff, board.Toggler.State())
}

func TestBringupPressCycle(t *testing.T) {
	regs := NewSimRegisters()
	AttachPortModel(regs, GPIOCBase)
	AttachPortModel(regs, GPIOABase)

	board, err := Bringup(regs, blackPillSetup(), NewManualClock(), nil)
	require.NoError(t, err)

	SetInputLevel(regs, GPIOABase, 0, true)
	board.Toggler.Step()
	assert.Zero(t, regs.Read(GPIOCBase+GPIOOdrOffset)&(1<<13), "LED lit")

	SetInputLevel(regs, GPIOABase, 0, false)
	board.Toggler.Step()
	SetInputLevel(regs, GPIOABase, 0, true)
	board.Toggler.Step()
	assert.NotZero(t, regs.Read(GPIOCBase+GPIOOdrOffset)&(1<<13), "LED dark")
}

func TestBringupRejectsBadPin(t *testing.T) {
	setup := blackPillSetup()
	setup.Button.Pin = 20

	_, err := Bringup(NewSimRegisters(), setup, NewManualClock(), nil)
	assert.True(t, errcode.Is(err, errcode.UnknownPin))
}
