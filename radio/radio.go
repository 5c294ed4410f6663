// Package radio implements the driver for the Silicon Labs Si4703 FM
// receiver as found on the SparkFun and similar breakout boards.
//
// The chip is controlled through sixteen 16 bit registers. The driver
// keeps a shadow copy of the register file: every operation refreshes the
// shadow with a read sync, edits some bit-fields and, for changes, sends
// the control window back with a write sync. Tune and seek operations
// then poll the Seek/Tune Complete flag until the chip is done.
//
// The main implementation is under the Si4703Driver and it requires
// some additional configuration via the Si4703Config structure.
//
// The driver is not safe for concurrent use. Every call must come from a
// single owner.
//
// To read about the specifications of the receiver, read the following documents:
// https://www.silabs.com/documents/public/data-sheets/Si4702-03-C19.pdf
// https://www.silabs.com/documents/public/application-notes/AN230.pdf
package radio

import (
	"fmt"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"gobot.io/x/gobot"
	"gobot.io/x/gobot/drivers/gpio"
	"gobot.io/x/gobot/drivers/i2c"
)

const (
	low  = 0x0
	high = 0x1
)

// Misc constants.
//
//goland:noinspection GoUnusedConst,GoUnnecessarilyExportedIdentifiers
const (
	// Address is the fixed 2-wire address of the chip.
	Address = 0x10

	// I2CFailMax bounds the attempts of a read sync whose address is not acknowledged.
	I2CFailMax = 10

	// ReadSize is the number of bytes one read transaction returns.
	ReadSize = 2 * registerCount
)

// Si4703Driver holds the implementation to talk to the Si4703 FM receiver.
//
//goland:noinspection GoUnnecessarilyExportedIdentifiers
type Si4703Driver struct {
	name     string
	resetPin string
	sdioPin  string
	pins     gpio.DigitalWriter

	i2cAddr      uint8
	conn         i2c.Connection
	i2cConnector i2c.Connector
	i2c.Config

	bus    Bus
	shadow Shadow
	band   BandConfig
	power  PowerState
	op     OpState

	debugMode bool
	debugLog  func(format string, v ...interface{})
	log       func(format string, v ...interface{})

	bandSel       Band
	spacingSel    Spacing
	deEmphasis    DeEmphasis
	seekMode      SeekMode
	seekThreshold uint8
	seekSNR       uint8
	seekImpulse   uint8
	agcDisable    bool
	frequency     int
	volume        int

	tunePolls        int
	tunePollInterval time.Duration
	seekPolls        int
	seekPollInterval time.Duration

	sleep    func(time.Duration)
	retryMin time.Duration
	retryMax time.Duration
}

// Name of our device.
func (s *Si4703Driver) Name() string {
	return s.name
}

// SetName set the name of our device.
func (s *Si4703Driver) SetName(name string) {
	s.name = name
}

// Start the device work.
func (s *Si4703Driver) Start() error {
	if s.bus == nil {
		if s.i2cConnector == nil {
			return fmt.Errorf("no i2c connector and no bus configured")
		}
		bus := s.GetBusOrDefault(s.i2cConnector.GetDefaultBus())
		var err error
		s.conn, err = s.i2cConnector.GetConnection(int(s.i2cAddr), bus)
		if err != nil {
			return err
		}
		s.bus = NewBlockBus(s.conn, s.i2cAddr, ReadSize)
	}

	if err := s.start(); err != nil {
		return err
	}

	info, err := s.DeviceInfo()
	if err != nil {
		return err
	}
	if s.debugMode {
		s.debugLog("%s\n", info)
	}

	if s.frequency != 0 {
		freq, err := s.SetChannel(s.frequency)
		if err != nil {
			return err
		}
		s.log("Tuned to %.2f MHz\n", float32(freq)/100)
	}

	if s.volume != 0 {
		if _, err := s.SetVolume(s.volume); err != nil {
			return err
		}
	}

	return nil
}

// Halt stops the device in a graceful way. A driver that never reached
// the chip has nothing to power down.
func (s *Si4703Driver) Halt() error {
	var result *multierror.Error
	if s.bus != nil {
		if err := s.PowerDown(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Connection retrieves the i2c connection to the device.
func (s *Si4703Driver) Connection() gobot.Connection {
	c, _ := s.i2cConnector.(gobot.Connection)
	return c
}

// start resets the chip, powers it up and writes the whole configuration.
func (s *Si4703Driver) start() error {
	if err := s.reset(); err != nil {
		return err
	}
	if err := s.PowerUp(); err != nil {
		return err
	}

	s.band.Apply(s.bandSel, s.spacingSel)
	space, _ := s.spacingSel.code()

	return s.modify(func(sh *Shadow) {
		fieldSpace.Set(sh, space)
		fieldBand.Set(sh, uint16(s.bandSel))
		flagDE.Set(sh, s.deEmphasis == DeEmphasis50us)
		flagSTCIEN.Set(sh, false)

		flagSeek.Set(sh, false)
		flagSeekUp.Set(sh, true)
		flagSkMode.Set(sh, s.seekMode == SeekStop)
		fieldSeekTH.Set(sh, uint16(s.seekThreshold))
		fieldSkCnt.Set(sh, uint16(s.seekImpulse))
		fieldSkSNR.Set(sh, uint16(s.seekSNR))
		flagAGCD.Set(sh, s.agcDisable)

		flagRDSIEN.Set(sh, false)
		flagRDSM.Set(sh, false)
		flagRDS.Set(sh, true)

		flagAHIZEN.Set(sh, false)
		flagMono.Set(sh, false)
		fieldBlndAdj.Set(sh, 0) // 31-49 RSSI dBµV
		fieldVolume.Set(sh, 0)
		flagVolExt.Set(sh, false)

		flagDSMute.Set(sh, true)
		fieldSMuteA.Set(sh, 0) // 16 dB
		fieldSMuteR.Set(sh, 0) // fastest

		fieldGPIO1.Set(sh, uint16(GPIOHighZ))
		fieldGPIO2.Set(sh, uint16(GPIOHighZ))
		fieldGPIO3.Set(sh, uint16(GPIOHighZ))
	})
}

// Resets the chip and selects the 2-wire bus mode by holding SDIO low
// while RST rises.
func (s *Si4703Driver) reset() (err error) {
	dw := s.pins
	if dw == nil {
		dw, _ = s.i2cConnector.(gpio.DigitalWriter)
	}
	if dw == nil {
		if s.debugMode {
			s.debugLog("connector has no digital writer, skipping reset\n")
		}
		return nil
	}

	if s.sdioPin != "" {
		if err = dw.DigitalWrite(s.sdioPin, low); err != nil {
			return err
		}
	}
	if err = dw.DigitalWrite(s.resetPin, low); err != nil {
		return err
	}
	s.sleep(1 * time.Millisecond)

	if err = dw.DigitalWrite(s.resetPin, high); err != nil {
		return err
	}
	s.sleep(1 * time.Millisecond)
	return nil
}

// NewSi4703Driver creates a new GoBot driver for our FM receiver.
func NewSi4703Driver(connector i2c.Connector, cfg Si4703Config, options ...func(i2c.Config)) (*Si4703Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Si4703 configuration: %w", err)
	}

	res := &Si4703Driver{
		name:         gobot.DefaultName("Si4703Driver"),
		i2cConnector: connector,
		Config:       i2c.NewConfig(),
		i2cAddr:      Address,
		bus:          cfg.Bus,

		resetPin:         cfg.ResetPin,
		sdioPin:          cfg.SDIOPin,
		pins:             cfg.Pins,
		bandSel:          cfg.Band,
		spacingSel:       cfg.Spacing,
		deEmphasis:       cfg.DeEmphasis,
		seekMode:         cfg.SeekMode,
		seekThreshold:    cfg.SeekThreshold,
		seekSNR:          cfg.SeekSNR,
		seekImpulse:      cfg.SeekImpulse,
		agcDisable:       cfg.AGCDisable,
		frequency:        cfg.Frequency,
		volume:           cfg.Volume,
		tunePolls:        cfg.TunePolls,
		tunePollInterval: cfg.TunePollInterval,
		seekPolls:        cfg.SeekPolls,
		seekPollInterval: cfg.SeekPollInterval,
		debugMode:        cfg.DebugMode,
		log:              cfg.Log,
		debugLog:         cfg.DebugLog,

		sleep:    time.Sleep,
		retryMin: 1 * time.Millisecond,
		retryMax: 20 * time.Millisecond,
	}
	res.band.Apply(cfg.Band, cfg.Spacing)

	for _, option := range options {
		option(res)
	}

	return res, nil
}
