package radio

import (
	"fmt"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"gobot.io/x/gobot/drivers/gpio"
)

// Polling defaults.
const (
	DefaultTunePolls        = 1000
	DefaultSeekPolls        = 500
	DefaultSeekPollInterval = 40 * time.Millisecond
	DefaultSeekThreshold    = 24
)

// Si4703Config holds the additional configuration needed for Si4703Driver.
type Si4703Config struct {
	Band       Band
	Spacing    Spacing
	DeEmphasis DeEmphasis

	SeekMode      SeekMode
	SeekThreshold uint8
	SeekSNR       uint8
	SeekImpulse   uint8
	AGCDisable    bool

	// Frequency and Volume are applied after Start when not zero.
	Frequency int
	Volume    int

	ResetPin string
	SDIOPin  string

	// Pins drives ResetPin and SDIOPin. The connector is used when nil.
	Pins gpio.DigitalWriter

	// Bus replaces the i2c connection taken from the connector.
	Bus Bus

	TunePolls        int
	TunePollInterval time.Duration
	SeekPolls        int
	SeekPollInterval time.Duration

	DebugMode bool
	DebugLog  func(format string, v ...interface{})
	Log       func(format string, v ...interface{})
}

// Validate ensures that our Si4703Driver configuration is valid.
//noinspection GoUnnecessarilyExportedIdentifiers
func (c *Si4703Config) Validate() error {
	if c.Log == nil {
		panic("logging function cannot be nil. Use something like log.Printf or an empty function instead")
	}
	if c.DebugMode && c.DebugLog == nil {
		panic("cannot use debugging mode without configuring a DebugLog function, e.g. log.Printf")
	}

	if c.ResetPin == "" {
		c.ResetPin = "16"
	}

	var result *multierror.Error

	if c.Band > BandJapan {
		result = multierror.Append(result, fmt.Errorf("unknown band code %d", c.Band))
	}

	// Which grid is the regional default is left to the integrator.
	if _, ok := c.Spacing.code(); !ok {
		result = multierror.Append(result, fmt.Errorf("channel spacing not set, choose 200kHz, 100kHz or 50kHz explicitly"))
	}

	if c.Frequency != 0 && c.Band <= BandJapan {
		var band BandConfig
		band.Apply(c.Band, c.Spacing)
		if c.Frequency < band.Start || c.Frequency > band.End {
			result = multierror.Append(result, fmt.Errorf("FM frequency %d not in %.2f MHz ... %.2f MHz bounds",
				c.Frequency, float32(band.Start)/100, float32(band.End)/100))
		}
	}

	if c.Volume < 0 {
		c.Log("Volume %d < 0. Adjusting to minimum of 0.\n", c.Volume)
		c.Volume = 0
	} else if c.Volume > 15 {
		c.Log("Volume %d > 15. Adjusting to maximum of 15.\n", c.Volume)
		c.Volume = 15
	}

	if c.SeekSNR > 15 {
		c.Log("Seek SNR threshold %d > 15. Adjusting to maximum of 15.\n", c.SeekSNR)
		c.SeekSNR = 15
	}
	if c.SeekImpulse > 15 {
		c.Log("Seek impulse threshold %d > 15. Adjusting to maximum of 15.\n", c.SeekImpulse)
		c.SeekImpulse = 15
	}
	if c.SeekThreshold == 0 {
		c.SeekThreshold = DefaultSeekThreshold
	}

	if c.TunePolls <= 0 {
		c.TunePolls = DefaultTunePolls
	}
	if c.SeekPolls <= 0 {
		c.SeekPolls = DefaultSeekPolls
	}
	if c.SeekPollInterval <= 0 {
		c.SeekPollInterval = DefaultSeekPollInterval
	}

	return result.ErrorOrNil()
}
