// Package board reaches the tuner through periph.io host drivers. It is
// the alternative to the gobot raspi adaptor on boards gobot does not
// support.
package board

import (
	"fmt"
	"sync"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init loads the periph host drivers once.
func Init() error {
	initOnce.Do(func() {
		_, initErr = host.Init()
	})
	return initErr
}

// Board is one device on an i2c bus plus the gpio pins of the host.
type Board struct {
	closer func() error
	dev    *i2c.Dev
	pin    func(name string) gpio.PinIO
}

// Open opens the i2c bus busName, the first bus when empty, and binds the
// device at addr.
func Open(busName string, addr uint16) (*Board, error) {
	if err := Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bc, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	b := New(bc, addr)
	b.closer = bc.Close
	return b, nil
}

// New binds the device at addr on an already open bus.
func New(bus i2c.Bus, addr uint16) *Board {
	return &Board{
		dev: &i2c.Dev{Bus: bus, Addr: addr},
		pin: gpioreg.ByName,
	}
}

// Read runs one read transaction of len(p) bytes.
func (b *Board) Read(p []byte) (int, error) {
	if err := b.dev.Tx(nil, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Write runs one write transaction.
func (b *Board) Write(p []byte) (int, error) {
	return b.dev.Write(p)
}

// DigitalWrite drives the host gpio pin name, so a Board can serve as the
// reset pin writer of the tuner.
func (b *Board) DigitalWrite(name string, level byte) error {
	p := b.pin(name)
	if p == nil {
		return fmt.Errorf("unknown gpio pin %q", name)
	}

	l := gpio.Low
	if level != 0 {
		l = gpio.High
	}
	if err := p.Out(l); err != nil {
		return fmt.Errorf("drive pin %s: %w", name, err)
	}
	return nil
}

// String names the bus and the device address.
func (b *Board) String() string {
	return b.dev.String()
}

// Close closes the bus when it was opened by Open.
func (b *Board) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}
