package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncoderDirection(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := NewEncoder(0)

	assert.Equal(t, TurnCW, e.Update(1, 0, 1, t0))
	assert.Equal(t, TurnNone, e.Update(0, 0, 1, t0.Add(ms(30))))
	assert.Equal(t, TurnCCW, e.Update(1, 1, 1, t0.Add(ms(100))))
	// level held high is not another edge
	assert.Equal(t, TurnNone, e.Update(1, 1, 1, t0.Add(ms(200))))
}

func TestEncoderRotationGuard(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := NewEncoder(0)

	assert.Equal(t, TurnCW, e.Update(1, 0, 1, t0))
	assert.Equal(t, TurnNone, e.Update(0, 0, 1, t0.Add(ms(10))))
	assert.Equal(t, TurnNone, e.Update(1, 0, 1, t0.Add(ms(40))))
	assert.Equal(t, TurnNone, e.Update(0, 0, 1, t0.Add(ms(60))))
	assert.Equal(t, TurnCW, e.Update(1, 0, 1, t0.Add(ms(100))))
}

func TestEncoderClick(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := NewEncoder(0)

	assert.Equal(t, TurnClick, e.Update(0, 0, 0, t0))
	// holding the switch does not repeat
	assert.Equal(t, TurnNone, e.Update(0, 0, 0, t0.Add(ms(100))))
	assert.Equal(t, TurnNone, e.Update(0, 0, 1, t0.Add(ms(200))))
	assert.Equal(t, TurnClick, e.Update(0, 0, 0, t0.Add(ms(300))))
}

func TestEncoderClickBlocksRotation(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := NewEncoder(0)

	assert.Equal(t, TurnClick, e.Update(0, 0, 0, t0))
	assert.Equal(t, TurnNone, e.Update(1, 0, 0, t0.Add(ms(10))))
	assert.Equal(t, TurnNone, e.Update(0, 0, 1, t0.Add(ms(30))))
	assert.Equal(t, TurnCW, e.Update(1, 0, 1, t0.Add(ms(60))))
	// a click right after a turn is dropped
	assert.Equal(t, TurnNone, e.Update(1, 0, 0, t0.Add(ms(70))))
}
