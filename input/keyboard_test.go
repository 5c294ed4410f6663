package input

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SSdmk/DE2-FM-Radio/ui"
)

func TestKeyEvent(t *testing.T) {
	keys := map[byte]ui.Event{
		'w': ui.BtnUpShort,
		'W': ui.BtnUpLong,
		's': ui.BtnDownShort,
		'S': ui.BtnDownLong,
		'a': ui.BtnLeft,
		'd': ui.BtnRight,
		'+': ui.EncCW,
		'-': ui.EncCCW,
		' ': ui.EncClick,
		'x': ui.EventNone,
	}
	for key, want := range keys {
		assert.Equal(t, want, KeyEvent(key), "key %q", key)
	}
}

func TestKeyboardRun(t *testing.T) {
	k := &Keyboard{r: strings.NewReader("wxd+ q-")}
	events := make(chan ui.Event, 10)

	err := k.Run(events, nil)
	assert.True(t, errors.Is(err, ErrQuit))
	close(events)

	var got []ui.Event
	for ev := range events {
		got = append(got, ev)
	}
	assert.Equal(t, []ui.Event{ui.BtnUpShort, ui.BtnRight, ui.EncCW, ui.EncClick}, got)
}

func TestKeyboardReaderError(t *testing.T) {
	k := &Keyboard{r: strings.NewReader("a")}
	events := make(chan ui.Event, 1)

	err := k.Run(events, nil)
	assert.Equal(t, io.EOF, err)
	require.Len(t, events, 1)
	assert.Equal(t, ui.BtnLeft, <-events)
	assert.NoError(t, k.Close())
}
