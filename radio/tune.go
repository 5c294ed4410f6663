package radio

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when the Seek/Tune Complete flag did not reach
// the expected level within the configured number of polls.
var ErrTimeout = errors.New("timed out waiting for seek/tune complete")

// OpState tracks a tune or seek command through its handshake with the chip.
type OpState uint8

// Command states.
const (
	// Idle: no command bit set.
	Idle OpState = iota
	// Busy: command bit written, waiting for STC.
	Busy
	// ResultReady: STC observed set.
	ResultReady
	// ClearingWait: command bit cleared, waiting for STC to drop.
	ClearingWait
)

func (o OpState) String() string {
	switch o {
	case Idle:
		return "idle"
	case Busy:
		return "busy"
	case ResultReady:
		return "result ready"
	case ClearingWait:
		return "clearing wait"
	default:
		return "unknown"
	}
}

// OpState returns the state of the last tune or seek command. Anything
// other than Idle after a call returned means the handshake was abandoned.
func (s *Si4703Driver) OpState() OpState {
	return s.op
}

// waitSTC polls the shadow until STC equals want.
func (s *Si4703Driver) waitSTC(op string, want bool, polls int, interval time.Duration) error {
	for i := 0; i < polls; i++ {
		if err := s.readAll(); err != nil {
			return err
		}
		if flagSTC.Get(&s.shadow) == want {
			return nil
		}
		if interval > 0 {
			s.sleep(interval)
		}
	}
	return fmt.Errorf("%s: STC %t after %d polls: %w", op, want, polls, ErrTimeout)
}

// command runs the set-command, wait, clear-command, wait handshake.
// inspect sees the shadow read right after the command completed.
func (s *Si4703Driver) command(op string, cmd Flag, setup func(sh *Shadow), inspect func(sh *Shadow), polls int, interval time.Duration) error {
	if err := s.modify(func(sh *Shadow) {
		setup(sh)
		cmd.Set(sh, true)
	}); err != nil {
		return err
	}
	s.op = Busy

	// STCIEN is never set by this driver, so completion is always polled.
	if err := s.waitSTC(op, true, polls, interval); err != nil {
		return s.abort(op, cmd, err)
	}
	s.op = ResultReady

	if err := s.modify(func(sh *Shadow) {
		if inspect != nil {
			inspect(sh)
		}
		cmd.Set(sh, false)
	}); err != nil {
		return err
	}
	s.op = ClearingWait

	if err := s.waitSTC(op, false, polls, interval); err != nil {
		return s.abort(op, cmd, err)
	}
	s.op = Idle
	return nil
}

// abort drops the command bit after a failed wait. The chip only starts
// a command on a rising edge of its bit, so a bit left set would stall
// every later command.
func (s *Si4703Driver) abort(op string, cmd Flag, err error) error {
	if clearErr := s.modify(func(sh *Shadow) {
		cmd.Set(sh, false)
	}); clearErr != nil {
		return fmt.Errorf("%w; clearing %s command: %w", err, op, clearErr)
	}
	s.op = Idle
	return err
}

// SetChannel tunes to freq, given in 10 kHz units (10700 is 107.00 MHz).
// The frequency is clamped into the band. It returns the frequency the
// chip reports after tuning.
func (s *Si4703Driver) SetChannel(freq int) (int, error) {
	freq = s.band.Clamp(freq)
	ch := s.band.channel(freq)

	if s.debugMode {
		s.debugLog("Tuning into %.2f MHz (channel %d)\n", float32(freq)/100, ch)
	}

	err := s.command("tune", flagTune, func(sh *Shadow) {
		fieldChan.Set(sh, ch)
	}, nil, s.tunePolls, s.tunePollInterval)
	if err != nil {
		return 0, err
	}

	return s.Channel()
}

// Channel returns the frequency the chip is tuned to.
func (s *Si4703Driver) Channel() (int, error) {
	if err := s.readAll(); err != nil {
		return 0, err
	}
	return s.band.frequency(fieldReadChan.Get(&s.shadow)), nil
}

// IncChannel tunes one channel step up, wrapping to the band start.
func (s *Si4703Driver) IncChannel() (int, error) {
	freq, err := s.Channel()
	if err != nil {
		return 0, err
	}
	freq += s.band.Spacing
	if freq > s.band.End {
		freq = s.band.Start
	}
	return s.SetChannel(freq)
}

// DecChannel tunes one channel step down, wrapping to the band end.
func (s *Si4703Driver) DecChannel() (int, error) {
	freq, err := s.Channel()
	if err != nil {
		return 0, err
	}
	freq -= s.band.Spacing
	if freq < s.band.Start {
		freq = s.band.End
	}
	return s.SetChannel(freq)
}

// BandStart returns the lower band edge in 10 kHz units.
func (s *Si4703Driver) BandStart() int { return s.band.Start }

// BandEnd returns the upper band edge in 10 kHz units.
func (s *Si4703Driver) BandEnd() int { return s.band.End }

// BandSpacing returns the channel step in 10 kHz units.
func (s *Si4703Driver) BandSpacing() int { return s.band.Spacing }
