// Package input turns raw pin levels and key presses into ui events.
//
// Buttons and the encoder are wired active low with pull-ups: a level of
// 0 means pressed.
package input

import "time"

// Button timing.
const (
	DebounceDelay = 50 * time.Millisecond
	ShortPressMax = 2500 * time.Millisecond
	LongPressMin  = 3000 * time.Millisecond
)

// Press is the outcome of one debouncer update.
type Press uint8

// Press results.
const (
	PressNone Press = iota
	PressShort
	PressLong
)

// Debouncer classifies the presses of one button. A short press is
// reported on release, a long press once while the button is still held.
// Releases between ShortPressMax and LongPressMin report nothing.
type Debouncer struct {
	stable     int
	lastRaw    int
	lastChange time.Time

	pressed      bool
	longReported bool
	pressStart   time.Time
}

// NewDebouncer creates a debouncer for a button whose current level is
// initial.
func NewDebouncer(initial int) *Debouncer {
	return &Debouncer{stable: initial, lastRaw: initial}
}

// Update feeds one sample of the pin level taken at now.
func (d *Debouncer) Update(level int, now time.Time) Press {
	if level != d.lastRaw {
		d.lastChange = now
	}
	d.lastRaw = level

	if now.Sub(d.lastChange) > DebounceDelay && level != d.stable {
		d.stable = level
		if level == 0 {
			d.pressStart = now
			d.pressed = true
			d.longReported = false
		} else {
			d.pressed = false
			if !d.longReported && now.Sub(d.pressStart) < ShortPressMax {
				return PressShort
			}
		}
	}

	if d.pressed && !d.longReported && now.Sub(d.pressStart) > LongPressMin {
		d.longReported = true
		return PressLong
	}
	return PressNone
}
