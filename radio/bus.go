package radio

import (
	"errors"
	"fmt"

	"github.com/jpillora/backoff"
)

// Bus is a byte oriented two-wire bus. Each transaction is opened with
// Start and closed with Stop. Start and Send return ErrNack when the
// device does not acknowledge.
type Bus interface {
	Start(addr uint8, read bool) error
	Send(b byte) error
	Receive(ack bool) (byte, error)
	Stop() error
}

var (
	// ErrNack is returned by a Bus when the device did not acknowledge.
	ErrNack = errors.New("not acknowledged")

	// ErrAddressNack means the chip did not acknowledge its address.
	ErrAddressNack = errors.New("address not acknowledged")

	// ErrUpperByteNack means the chip did not acknowledge the upper byte of a register.
	ErrUpperByteNack = errors.New("upper byte not acknowledged")

	// ErrLowerByteNack means the chip did not acknowledge the lower byte of a register.
	ErrLowerByteNack = errors.New("lower byte not acknowledged")
)

// BusError describes a failed register sync.
type BusError struct {
	Op  string
	Reg uint8
	Err error
}

func (e *BusError) Error() string {
	// transport failures on Stop carry no register
	if e.Op == "write" && e.Reg >= writeFirst && e.Reg <= writeLast && !errors.Is(e.Err, ErrAddressNack) {
		return fmt.Sprintf("si4703 %s register 0x%02X: %v", e.Op, e.Reg, e.Err)
	}
	return fmt.Sprintf("si4703 %s: %v", e.Op, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

// readAll refreshes the whole shadow from the chip. The shadow is left
// untouched unless all 32 bytes were received.
func (s *Si4703Driver) readAll() error {
	b := &backoff.Backoff{
		Min:    s.retryMin,
		Max:    s.retryMax,
		Jitter: true,
	}

	var err error
	for attempt := 0; attempt < I2CFailMax; attempt++ {
		if err = s.readOnce(); err == nil || !errors.Is(err, ErrAddressNack) {
			return err
		}
		if s.debugMode {
			s.debugLog("read sync attempt %d: %v\n", attempt+1, err)
		}
		s.sleep(b.Duration())
	}
	return err
}

func (s *Si4703Driver) readOnce() error {
	if err := s.bus.Start(s.i2cAddr, true); err != nil {
		_ = s.bus.Stop()
		if errors.Is(err, ErrNack) {
			return &BusError{Op: "read", Err: ErrAddressNack}
		}
		return &BusError{Op: "read", Err: err}
	}

	var staged Shadow
	for i, reg := range ReadOrder {
		msb, err := s.bus.Receive(true)
		if err != nil {
			_ = s.bus.Stop()
			return &BusError{Op: "read", Reg: reg, Err: err}
		}
		last := i == len(ReadOrder)-1
		lsb, err := s.bus.Receive(!last)
		if err != nil {
			_ = s.bus.Stop()
			return &BusError{Op: "read", Reg: reg, Err: err}
		}
		staged[reg] = uint16(msb)<<8 | uint16(lsb)
	}

	if err := s.bus.Stop(); err != nil {
		return &BusError{Op: "read", Err: err}
	}

	s.shadow = staged
	return nil
}

// writeControl sends the POWERCFG..TEST1 window of the shadow to the chip.
func (s *Si4703Driver) writeControl() error {
	if err := s.bus.Start(s.i2cAddr, false); err != nil {
		_ = s.bus.Stop()
		if errors.Is(err, ErrNack) {
			err = ErrAddressNack
		}
		return &BusError{Op: "write", Err: err}
	}

	for reg := uint8(writeFirst); reg <= writeLast; reg++ {
		if err := s.bus.Send(byte(s.shadow[reg] >> 8)); err != nil {
			_ = s.bus.Stop()
			if errors.Is(err, ErrNack) {
				err = ErrUpperByteNack
			}
			return &BusError{Op: "write", Reg: reg, Err: err}
		}
		if err := s.bus.Send(byte(s.shadow[reg] & 0xFF)); err != nil {
			_ = s.bus.Stop()
			if errors.Is(err, ErrNack) {
				err = ErrLowerByteNack
			}
			return &BusError{Op: "write", Reg: reg, Err: err}
		}
	}

	if err := s.bus.Stop(); err != nil {
		return &BusError{Op: "write", Err: err}
	}

	if s.debugMode {
		s.debugLog("wrote %s\n", s.sliceToString(s.shadow[writeFirst:writeLast+1]))
	}
	return nil
}

// modify runs one read, edit, write unit against the chip.
func (s *Si4703Driver) modify(edit func(sh *Shadow)) error {
	if err := s.readAll(); err != nil {
		return err
	}
	edit(&s.shadow)
	return s.writeControl()
}

func (s *Si4703Driver) sliceToString(val []uint16) string {
	res := ""
	for idx := range val {
		res += fmt.Sprintf("[%02X]=0x%04X ", writeFirst+idx, val[idx])
	}
	return res
}
