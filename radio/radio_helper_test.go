package radio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// seekResult scripts the outcome of one seek started on the simulated chip.
type seekResult struct {
	channel uint16
	fail    bool
}

// chipSim models the register behaviour of an Si4703 closely enough for
// the tune, seek and power sequences.
type chipSim struct {
	regs Shadow

	seekResults []seekResult
	stallSTC    bool
	// correct lets the chip move the requested channel, as AFC would.
	correct func(ch uint16) uint16

	tuneChannels []uint16
	seekDirs     []bool
	seekStarts   int
	writes       int
	reads        int
}

func newChipSim() *chipSim {
	c := &chipSim{}
	c.regs[DEVICEID] = 0x1242
	c.regs[CHIPID] = 0x1253
	c.regs[TEST1] = 0x0100
	return c
}

func (c *chipSim) readBytes() []byte {
	c.reads++
	out := make([]byte, 0, ReadSize)
	for _, reg := range ReadOrder {
		out = append(out, byte(c.regs[reg]>>8), byte(c.regs[reg]))
	}
	return out
}

func (c *chipSim) write(b []byte) {
	c.writes++
	prev := c.regs
	for i := 0; i+1 < len(b) && writeFirst+i/2 < registerCount; i += 2 {
		c.regs[writeFirst+i/2] = uint16(b[i])<<8 | uint16(b[i+1])
	}
	c.afterWrite(prev)
}

func (c *chipSim) afterWrite(prev Shadow) {
	tune, seek := flagTune.Get(&c.regs), flagSeek.Get(&c.regs)

	if tune && !flagTune.Get(&prev) {
		ch := fieldChan.Get(&c.regs)
		c.tuneChannels = append(c.tuneChannels, ch)
		if c.correct != nil {
			ch = c.correct(ch)
		}
		fieldReadChan.Set(&c.regs, ch)
		flagSTC.Set(&c.regs, !c.stallSTC)
	}

	if seek && !flagSeek.Get(&prev) {
		c.seekStarts++
		c.seekDirs = append(c.seekDirs, flagSeekUp.Get(&c.regs))
		res := seekResult{fail: true}
		if len(c.seekResults) > 0 {
			res, c.seekResults = c.seekResults[0], c.seekResults[1:]
		}
		fieldReadChan.Set(&c.regs, res.channel)
		flagSFBL.Set(&c.regs, res.fail)
		flagSTC.Set(&c.regs, !c.stallSTC)
	}

	if !tune && !seek {
		flagSTC.Set(&c.regs, false)
		flagSFBL.Set(&c.regs, false)
	}
}

// simBus is a byte level Bus in front of a chipSim.
type simBus struct {
	chip *chipSim

	// nackReads makes the next read transactions fail at the address.
	nackReads int
	// nackWriteAt NACKs every write transaction at this byte, 0 being
	// the address. Negative disables it.
	nackWriteAt int
	// failWritesAfter NACKs the first data byte of every write
	// transaction after that many. Zero disables it.
	failWritesAfter int
	writeTxs        int
	failWrite       bool

	reading bool
	out     []byte
	pos     int
	in      []byte
	acks    []bool
	starts  int
	lastTx  []byte
}

func newSimBus(chip *chipSim) *simBus {
	return &simBus{chip: chip, nackWriteAt: -1}
}

func (b *simBus) Start(addr uint8, read bool) error {
	b.starts++
	b.reading = read
	b.in = b.in[:0]
	b.acks = b.acks[:0]
	b.pos = 0

	if addr != Address {
		return ErrNack
	}
	if read {
		if b.nackReads > 0 {
			b.nackReads--
			return ErrNack
		}
		b.out = b.chip.readBytes()
		return nil
	}
	if b.nackWriteAt == 0 {
		return ErrNack
	}
	b.writeTxs++
	b.failWrite = b.failWritesAfter > 0 && b.writeTxs > b.failWritesAfter
	return nil
}

func (b *simBus) Send(v byte) error {
	if b.nackWriteAt == len(b.in)+1 || b.failWrite {
		return ErrNack
	}
	b.in = append(b.in, v)
	return nil
}

func (b *simBus) Receive(ack bool) (byte, error) {
	b.acks = append(b.acks, ack)
	v := b.out[b.pos]
	b.pos++
	return v, nil
}

func (b *simBus) Stop() error {
	if !b.reading && len(b.in) > 0 {
		b.lastTx = append([]byte(nil), b.in...)
		b.chip.write(b.in)
	}
	return nil
}

func quietConfig(t *testing.T) Si4703Config {
	return Si4703Config{
		Band:    BandUSEurope,
		Spacing: Spacing100kHz,
		Log:     t.Logf,
	}
}

// newTestDriver builds a driver wired straight to a simulated chip.
func newTestDriver(t *testing.T, cfg Si4703Config) (*Si4703Driver, *chipSim, *simBus) {
	t.Helper()

	chip := newChipSim()
	bus := newSimBus(chip)
	cfg.Bus = bus

	d, err := NewSi4703Driver(nil, cfg)
	require.NoError(t, err)
	d.sleep = func(time.Duration) {}
	return d, chip, bus
}
