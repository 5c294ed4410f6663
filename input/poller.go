package input

import (
	"fmt"
	"time"

	"gobot.io/x/gobot/drivers/gpio"

	"github.com/SSdmk/DE2-FM-Radio/ui"
)

// DefaultPollInterval is how often the pins are sampled.
const DefaultPollInterval = 5 * time.Millisecond

// Pins names the input pins on the gpio connector.
type Pins struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`

	CLK string `yaml:"clk"`
	DT  string `yaml:"dt"`
	SW  string `yaml:"sw"`
}

// button binds a debouncer to the events it produces.
type button struct {
	pin   string
	deb   *Debouncer
	short ui.Event
	long  ui.Event
}

// Poller samples the buttons and the encoder through a gobot
// DigitalReader.
type Poller struct {
	reader  gpio.DigitalReader
	pins    Pins
	buttons []*button
	encoder *Encoder
	log     func(format string, v ...interface{})
	now     func() time.Time
}

// NewPoller creates a poller. Start must be called before Poll.
func NewPoller(reader gpio.DigitalReader, pins Pins, log func(format string, v ...interface{})) *Poller {
	return &Poller{
		reader: reader,
		pins:   pins,
		log:    log,
		now:    time.Now,
	}
}

// Start reads the idle levels of all pins.
func (p *Poller) Start() error {
	bindings := []struct {
		pin         string
		short, long ui.Event
	}{
		{p.pins.Up, ui.BtnUpShort, ui.BtnUpLong},
		{p.pins.Down, ui.BtnDownShort, ui.BtnDownLong},
		{p.pins.Left, ui.BtnLeft, ui.EventNone},
		{p.pins.Right, ui.BtnRight, ui.EventNone},
	}

	p.buttons = p.buttons[:0]
	for _, b := range bindings {
		level, err := p.read(b.pin)
		if err != nil {
			return err
		}
		p.buttons = append(p.buttons, &button{
			pin:   b.pin,
			deb:   NewDebouncer(level),
			short: b.short,
			long:  b.long,
		})
	}

	clk, err := p.read(p.pins.CLK)
	if err != nil {
		return err
	}
	p.encoder = NewEncoder(clk)
	return nil
}

func (p *Poller) read(pin string) (int, error) {
	v, err := p.reader.DigitalRead(pin)
	if err != nil {
		return 0, fmt.Errorf("read pin %s: %w", pin, err)
	}
	return v, nil
}

// Poll samples every pin once and returns the events that completed.
func (p *Poller) Poll() ([]ui.Event, error) {
	now := p.now()
	var events []ui.Event

	for _, b := range p.buttons {
		level, err := p.read(b.pin)
		if err != nil {
			return events, err
		}
		switch b.deb.Update(level, now) {
		case PressShort:
			events = append(events, b.short)
		case PressLong:
			if b.long != ui.EventNone {
				events = append(events, b.long)
			}
		}
	}

	var levels [3]int
	for i, pin := range []string{p.pins.CLK, p.pins.DT, p.pins.SW} {
		v, err := p.read(pin)
		if err != nil {
			return events, err
		}
		levels[i] = v
	}
	switch p.encoder.Update(levels[0], levels[1], levels[2], now) {
	case TurnCW:
		events = append(events, ui.EncCW)
	case TurnCCW:
		events = append(events, ui.EncCCW)
	case TurnClick:
		events = append(events, ui.EncClick)
	}

	return events, nil
}

// Run polls every interval and sends the events until done is closed.
// Read errors are logged and polling continues.
func (p *Poller) Run(events chan<- ui.Event, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		evs, err := p.Poll()
		if err != nil {
			p.log("input: %v\n", err)
		}
		for _, ev := range evs {
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}
}
