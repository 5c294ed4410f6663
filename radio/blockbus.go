package radio

import (
	"fmt"
	"io"
)

// BlockBus adapts a block oriented transport, such as a gobot
// i2c.Connection or a periph i2c device, to the Bus interface. The
// device address is bound by the transport itself.
//
// Reads fetch the whole window on Start because every read transaction
// on the chip restarts at STATUSRSSI. Writes are collected and flushed on
// Stop, so a NACK on the transport surfaces as an error from Stop.
type BlockBus struct {
	rw       io.ReadWriter
	addr     uint8
	readSize int

	reading bool
	rx      []byte
	pos     int
	tx      []byte
}

// NewBlockBus creates a BlockBus for the device at addr. readSize is the
// number of bytes fetched by one read transaction.
func NewBlockBus(rw io.ReadWriter, addr uint8, readSize int) *BlockBus {
	return &BlockBus{
		rw:       rw,
		addr:     addr,
		readSize: readSize,
		rx:       make([]byte, readSize),
	}
}

// Start opens a transaction.
func (b *BlockBus) Start(addr uint8, read bool) error {
	if addr != b.addr {
		return fmt.Errorf("block bus bound to 0x%02X, got 0x%02X: %w", b.addr, addr, ErrNack)
	}

	b.reading = read
	b.pos = 0
	b.tx = b.tx[:0]
	if !read {
		return nil
	}

	n, err := b.rw.Read(b.rx)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrNack)
	}
	if n != b.readSize {
		return fmt.Errorf("failed to read %d bytes from the line, read %d", b.readSize, n)
	}
	return nil
}

// Send queues one byte of a write transaction.
func (b *BlockBus) Send(v byte) error {
	if b.reading {
		return fmt.Errorf("send on a read transaction")
	}
	b.tx = append(b.tx, v)
	return nil
}

// Receive returns the next byte of the current read transaction.
func (b *BlockBus) Receive(_ bool) (byte, error) {
	if !b.reading {
		return 0, fmt.Errorf("receive on a write transaction")
	}
	if b.pos >= len(b.rx) {
		return 0, io.ErrUnexpectedEOF
	}
	v := b.rx[b.pos]
	b.pos++
	return v, nil
}

// Stop closes the transaction and flushes pending writes.
func (b *BlockBus) Stop() error {
	if b.reading || len(b.tx) == 0 {
		return nil
	}

	want := len(b.tx)
	n, err := b.rw.Write(b.tx)
	b.tx = b.tx[:0]
	if err != nil {
		return err
	}
	if n != want {
		return io.ErrShortWrite
	}
	return nil
}
