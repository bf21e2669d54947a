package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerSingleSample(t *testing.T) {
	d := NewDebouncer(0, false)

	level, changed := d.Update(true)
	assert.True(t, level)
	assert.True(t, changed)

	level, changed = d.Update(true)
	assert.True(t, level)
	assert.False(t, changed)
}

func TestDebouncerNeedsStableRun(t *testing.T) {
	d := NewDebouncer(3, false)
	samples := []bool{true, false, true, true, false, true, true, true, true}
	var changes []int
	for i, s := range samples {
		if _, changed := d.Update(s); changed {
			changes = append(changes, i)
		}
	}
	assert.Equal(t, []int{7}, changes)
	assert.True(t, d.Level())
}

func TestDebouncerRelease(t *testing.T) {
	d := NewDebouncer(2, true)

	_, changed := d.Update(false)
	assert.False(t, changed)
	level, changed := d.Update(false)
	assert.False(t, level)
	assert.True(t, changed)

	d.Reset(true)
	assert.True(t, d.Level())
	_, changed = d.Update(false)
	assert.False(t, changed)
}
