package core

// Debouncer accepts a new level only after it has been sampled the same way
// StableSamples times in a row. Samples are expected at a fixed interval, so
// the debounce window is StableSamples * interval.
type Debouncer struct {
	stableSamples int

	level     bool // accepted level
	candidate bool
	count     int
}

// NewDebouncer starts with initial as the accepted level. stableSamples < 1
// is treated as 1, which accepts every sample as is.
func NewDebouncer(stableSamples int, initial bool) *Debouncer {
	if stableSamples < 1 {
		stableSamples = 1
	}
	return &Debouncer{
		stableSamples: stableSamples,
		level:         initial,
		candidate:     initial,
	}
}

// Update feeds one sample and returns the accepted level and whether this
// sample changed it.
func (d *Debouncer) Update(sample bool) (level bool, changed bool) {
	if sample == d.level {
		d.candidate = d.level
		d.count = 0
		return d.level, false
	}

	if sample != d.candidate {
		d.candidate = sample
		d.count = 0
	}
	d.count++
	if d.count < d.stableSamples {
		return d.level, false
	}

	d.level = sample
	d.count = 0
	return d.level, true
}

// Level returns the accepted level.
func (d *Debouncer) Level() bool { return d.level }

// Reset forces the accepted level and discards any pending candidate.
func (d *Debouncer) Reset(level bool) {
	d.level = level
	d.candidate = level
	d.count = 0
}
