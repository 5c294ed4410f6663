package input

import "time"

// Encoder guards.
const (
	RotationGuard = 50 * time.Millisecond
	ClickGuard    = 20 * time.Millisecond
)

// Turn is the outcome of one encoder update.
type Turn uint8

// Encoder results.
const (
	TurnNone Turn = iota
	TurnCW
	TurnCCW
	TurnClick
)

// Encoder decodes a mechanical rotary encoder with a push switch. One
// detent is counted on each rising edge of CLK, the direction comes from
// DT at that moment.
type Encoder struct {
	lastCLK   int
	lastSW    int
	lastTurn  time.Time
	lastClick time.Time
}

// NewEncoder creates a decoder for an encoder whose CLK line currently
// reads clk.
func NewEncoder(clk int) *Encoder {
	return &Encoder{lastCLK: clk, lastSW: 1}
}

// Update feeds one sample of the CLK, DT and SW levels taken at now.
func (e *Encoder) Update(clk, dt, sw int, now time.Time) Turn {
	rising := clk != e.lastCLK && clk == 1
	e.lastCLK = clk

	if rising && now.Sub(e.lastTurn) > RotationGuard && now.Sub(e.lastClick) > ClickGuard {
		e.lastTurn = now
		if dt != clk {
			return TurnCW
		}
		return TurnCCW
	}

	pressed := sw == 0 && e.lastSW != 0
	e.lastSW = sw
	if pressed && now.Sub(e.lastClick) > ClickGuard && now.Sub(e.lastTurn) > ClickGuard {
		e.lastClick = now
		return TurnClick
	}
	return TurnNone
}
