// Package ui maps user input events onto tuner operations and keeps the
// screen in sync with the tuner.
//
// The Controller owns the tuner: Run is the only goroutine that calls
// into it, so events and screen refreshes are serialized.
package ui

import (
	"fmt"
	"time"

	"github.com/SSdmk/DE2-FM-Radio/display"
)

// Tuner is the part of the receiver driver the controller uses.
type Tuner interface {
	SetChannel(freq int) (int, error)
	Channel() (int, error)
	IncChannel() (int, error)
	DecChannel() (int, error)
	SeekUp() (int, error)
	SeekDown() (int, error)

	Volume() (int, error)
	IncVolume() (int, error)
	DecVolume() (int, error)
	Muted() (bool, error)
	SetMute(mute bool) error
	RSSI() (int, error)

	PowerUp() error
	PowerDown() error
}

// Screen renders the controller state.
type Screen interface {
	ShowRadio(st display.Status) error
	ShowPowerOff() error
	ShowFavoriteSaved(freq int) error
}

// Controller holds the user facing state of the radio.
type Controller struct {
	tuner  Tuner
	screen Screen
	log    func(format string, v ...interface{})

	mode     Mode
	favorite int
	on       bool
}

// NewController creates a controller for a tuner that is already started.
func NewController(tuner Tuner, screen Screen, log func(format string, v ...interface{})) *Controller {
	if log == nil {
		panic("logging function cannot be nil. Use something like log.Printf or an empty function instead")
	}
	return &Controller{
		tuner:  tuner,
		screen: screen,
		log:    log,
		mode:   ModeVolume,
		on:     true,
	}
}

// Mode returns the current encoder mode.
func (c *Controller) Mode() Mode { return c.mode }

// On reports whether the tuner is powered.
func (c *Controller) On() bool { return c.on }

// Favorite returns the stored favourite frequency, 0 when none was stored.
func (c *Controller) Favorite() int { return c.favorite }

// Handle applies one event. While the tuner is powered down only the
// power toggle is accepted.
func (c *Controller) Handle(ev Event) error {
	if !c.on && ev != BtnDownLong {
		return nil
	}

	var err error
	switch ev {
	case BtnLeft:
		_, err = c.tuner.SeekDown()
	case BtnRight:
		_, err = c.tuner.SeekUp()
	case BtnUpShort:
		if c.favorite != 0 {
			_, err = c.tuner.SetChannel(c.favorite)
		}
	case BtnUpLong:
		err = c.storeFavorite()
	case BtnDownShort:
		err = c.toggleMute()
	case BtnDownLong:
		err = c.togglePower()
	case EncCW:
		if c.mode == ModeVolume {
			_, err = c.tuner.IncVolume()
		} else {
			_, err = c.tuner.IncChannel()
		}
	case EncCCW:
		if c.mode == ModeVolume {
			_, err = c.tuner.DecVolume()
		} else {
			_, err = c.tuner.DecChannel()
		}
	case EncClick:
		if c.mode == ModeVolume {
			c.mode = ModeTune
		} else {
			c.mode = ModeVolume
		}
	}

	if err != nil {
		return fmt.Errorf("%s: %w", ev, err)
	}
	return nil
}

func (c *Controller) storeFavorite() error {
	freq, err := c.tuner.Channel()
	if err != nil {
		return err
	}
	c.favorite = freq
	return c.screen.ShowFavoriteSaved(freq)
}

func (c *Controller) toggleMute() error {
	muted, err := c.tuner.Muted()
	if err != nil {
		return err
	}
	return c.tuner.SetMute(!muted)
}

func (c *Controller) togglePower() error {
	if c.on {
		if err := c.tuner.PowerDown(); err != nil {
			return err
		}
		c.on = false
		return nil
	}

	if err := c.tuner.PowerUp(); err != nil {
		return err
	}
	c.on = true
	return nil
}

// Refresh reads the tuner status and redraws the screen.
func (c *Controller) Refresh() error {
	if !c.on {
		return c.screen.ShowPowerOff()
	}

	var (
		st  = display.Status{Tuning: c.mode == ModeTune}
		err error
	)
	if st.Frequency, err = c.tuner.Channel(); err != nil {
		return err
	}
	if st.RSSI, err = c.tuner.RSSI(); err != nil {
		return err
	}
	if st.Volume, err = c.tuner.Volume(); err != nil {
		return err
	}
	if st.Muted, err = c.tuner.Muted(); err != nil {
		return err
	}
	return c.screen.ShowRadio(st)
}

// Run handles events and refresh ticks until done is closed or events is
// closed. Errors are logged and do not stop the loop.
func (c *Controller) Run(events <-chan Event, refresh <-chan time.Time, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := c.Handle(ev); err != nil {
				c.log("ui: %v\n", err)
			}
		case <-refresh:
			if err := c.Refresh(); err != nil {
				c.log("ui: refresh: %v\n", err)
			}
		}
	}
}
