package input

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SSdmk/DE2-FM-Radio/ui"
)

type pinReader struct {
	mu     sync.Mutex
	levels map[string]int
	fail   string
}

func (r *pinReader) DigitalRead(pin string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pin == r.fail {
		return 0, errors.New("gpio busy")
	}
	return r.levels[pin], nil
}

func (r *pinReader) set(pin string, level int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[pin] = level
}

var testPins = Pins{Up: "11", Down: "12", Left: "13", Right: "15", CLK: "16", DT: "18", SW: "22"}

func newIdleReader() *pinReader {
	return &pinReader{levels: map[string]int{
		"11": 1, "12": 1, "13": 1, "15": 1,
		"16": 0, "18": 0, "22": 1,
	}}
}

func newTestPoller(t *testing.T, r *pinReader) (*Poller, *time.Time) {
	t.Helper()

	p := NewPoller(r, testPins, t.Logf)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }
	require.NoError(t, p.Start())
	return p, &now
}

// press holds pin low for hold and collects the events of every poll.
func press(t *testing.T, p *Poller, r *pinReader, now *time.Time, pin string, hold time.Duration) []ui.Event {
	t.Helper()

	var out []ui.Event
	step := func(level int, d time.Duration) {
		r.set(pin, level)
		*now = now.Add(d)
		evs, err := p.Poll()
		require.NoError(t, err)
		out = append(out, evs...)
	}

	step(0, ms(1))
	for held := time.Duration(0); held < hold; held += ms(60) {
		step(0, ms(60))
	}
	step(1, ms(1))
	step(1, ms(60))
	return out
}

func TestPollerButtons(t *testing.T) {
	r := newIdleReader()
	p, now := newTestPoller(t, r)

	tests := []struct {
		pin  string
		hold time.Duration
		want []ui.Event
	}{
		{testPins.Up, ms(100), []ui.Event{ui.BtnUpShort}},
		{testPins.Up, ms(3200), []ui.Event{ui.BtnUpLong}},
		{testPins.Down, ms(100), []ui.Event{ui.BtnDownShort}},
		{testPins.Down, ms(3200), []ui.Event{ui.BtnDownLong}},
		{testPins.Left, ms(100), []ui.Event{ui.BtnLeft}},
		{testPins.Left, ms(3200), nil},
		{testPins.Right, ms(100), []ui.Event{ui.BtnRight}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, press(t, p, r, now, tc.pin, tc.hold), "pin %s held %s", tc.pin, tc.hold)
	}
}

func TestPollerEncoder(t *testing.T) {
	r := newIdleReader()
	p, now := newTestPoller(t, r)

	r.set(testPins.CLK, 1)
	*now = now.Add(ms(100))
	evs, err := p.Poll()
	require.NoError(t, err)
	assert.Equal(t, []ui.Event{ui.EncCW}, evs)

	r.set(testPins.CLK, 0)
	r.set(testPins.DT, 1)
	*now = now.Add(ms(100))
	_, err = p.Poll()
	require.NoError(t, err)

	r.set(testPins.CLK, 1)
	*now = now.Add(ms(100))
	evs, err = p.Poll()
	require.NoError(t, err)
	assert.Equal(t, []ui.Event{ui.EncCCW}, evs)

	r.set(testPins.SW, 0)
	*now = now.Add(ms(100))
	evs, err = p.Poll()
	require.NoError(t, err)
	assert.Equal(t, []ui.Event{ui.EncClick}, evs)
}

func TestPollerReadError(t *testing.T) {
	r := newIdleReader()
	r.fail = testPins.Right

	p := NewPoller(r, testPins, t.Logf)
	err := p.Start()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "read pin 15"))

	r.fail = ""
	require.NoError(t, p.Start())
	r.fail = testPins.DT
	_, err = p.Poll()
	assert.Error(t, err)
}

func TestPollerRun(t *testing.T) {
	r := newIdleReader()
	p := NewPoller(r, testPins, t.Logf)
	require.NoError(t, p.Start())

	r.set(testPins.CLK, 1)
	events := make(chan ui.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		p.Run(events, time.Millisecond, done)
		close(finished)
	}()

	select {
	case ev := <-events:
		assert.Equal(t, ui.EncCW, ev)
	case <-time.After(time.Second):
		t.Fatal("no event from the poller")
	}
	close(done)
	<-finished
}
