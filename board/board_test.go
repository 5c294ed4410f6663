package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/physic"

	"github.com/SSdmk/DE2-FM-Radio/radio"
)

type txRecord struct {
	addr uint16
	w    []byte
	rlen int
}

type fakeBus struct {
	txs  []txRecord
	rx   []byte
	fail error
}

func (f *fakeBus) String() string                  { return "I2C1" }
func (f *fakeBus) SetSpeed(physic.Frequency) error { return nil }

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	if f.fail != nil {
		return f.fail
	}
	f.txs = append(f.txs, txRecord{addr: addr, w: append([]byte(nil), w...), rlen: len(r)})
	copy(r, f.rx)
	return nil
}

type fakePin struct {
	gpio.PinIO
	levels []gpio.Level
}

func (p *fakePin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	return nil
}

func TestReadWrite(t *testing.T) {
	bus := &fakeBus{rx: []byte{0x12, 0x34, 0x56}}
	b := New(bus, radio.Address)

	buf := make([]byte, 3)
	n, err := b.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{0x12, 0x34, 0x56}, buf)

	n, err = b.Write([]byte{0x40, 0x01})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, bus.txs, 2)
	assert.Equal(t, txRecord{addr: 0x10, rlen: 3}, bus.txs[0])
	assert.Equal(t, txRecord{addr: 0x10, w: []byte{0x40, 0x01}}, bus.txs[1])
	assert.Contains(t, b.String(), "I2C1")
	assert.NoError(t, b.Close())
}

func TestReadError(t *testing.T) {
	bus := &fakeBus{fail: errors.New("nack")}
	b := New(bus, radio.Address)

	n, err := b.Read(make([]byte, 4))
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestBlockBusOverBoard(t *testing.T) {
	rx := make([]byte, radio.ReadSize)
	rx[0], rx[1] = 0x12, 0x34
	bus := &fakeBus{rx: rx}
	bb := radio.NewBlockBus(New(bus, radio.Address), radio.Address, len(rx))

	require.NoError(t, bb.Start(radio.Address, true))
	msb, err := bb.Receive(true)
	require.NoError(t, err)
	assert.Equal(t, byte(0x12), msb)
	require.NoError(t, bb.Stop())

	bus.fail = errors.New("nack")
	err = bb.Start(radio.Address, true)
	assert.True(t, errors.Is(err, radio.ErrNack))
}

func TestDigitalWrite(t *testing.T) {
	pin := &fakePin{}
	b := New(&fakeBus{}, radio.Address)
	b.pin = func(name string) gpio.PinIO {
		if name == "GPIO23" {
			return pin
		}
		return nil
	}

	require.NoError(t, b.DigitalWrite("GPIO23", 0))
	require.NoError(t, b.DigitalWrite("GPIO23", 1))
	assert.Equal(t, []gpio.Level{gpio.Low, gpio.High}, pin.levels)

	err := b.DigitalWrite("GPIO99", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GPIO99")
}
