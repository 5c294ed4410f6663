package input

import (
	"errors"
	"io"

	"github.com/pkg/term"

	"github.com/SSdmk/DE2-FM-Radio/ui"
)

// ErrQuit is returned by Keyboard.Run when the quit key was pressed.
var ErrQuit = errors.New("quit requested")

// KeyEvent maps a key of the bench keyboard onto an event.
//
//	w / W   favourite recall / store
//	s / S   mute / power
//	a / d   seek down / up
//	- / +   encoder counter clockwise / clockwise
//	space   encoder click
func KeyEvent(key byte) ui.Event {
	switch key {
	case 'w':
		return ui.BtnUpShort
	case 'W':
		return ui.BtnUpLong
	case 's':
		return ui.BtnDownShort
	case 'S':
		return ui.BtnDownLong
	case 'a':
		return ui.BtnLeft
	case 'd':
		return ui.BtnRight
	case '+', '=':
		return ui.EncCW
	case '-', '_':
		return ui.EncCCW
	case ' ', '\r':
		return ui.EncClick
	default:
		return ui.EventNone
	}
}

// Keyboard reads single key presses from a terminal in raw mode.
type Keyboard struct {
	r   io.Reader
	tty *term.Term
}

// OpenKeyboard puts the terminal device in raw mode.
func OpenKeyboard(device string) (*Keyboard, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, err
	}
	return &Keyboard{r: t, tty: t}, nil
}

// Close restores the terminal mode.
func (k *Keyboard) Close() error {
	if k.tty == nil {
		return nil
	}
	if err := k.tty.Restore(); err != nil {
		_ = k.tty.Close()
		return err
	}
	return k.tty.Close()
}

// Run sends an event for every mapped key until q or Ctrl-C is pressed,
// the reader fails or done is closed.
func (k *Keyboard) Run(events chan<- ui.Event, done <-chan struct{}) error {
	buf := make([]byte, 1)
	for {
		n, err := k.r.Read(buf)
		if err != nil {
			select {
			case <-done:
				return nil
			default:
				return err
			}
		}
		if n == 0 {
			continue
		}

		switch buf[0] {
		case 'q', 0x03:
			return ErrQuit
		}

		ev := KeyEvent(buf[0])
		if ev == ui.EventNone {
			continue
		}
		select {
		case events <- ev:
		case <-done:
			return nil
		}
	}
}
