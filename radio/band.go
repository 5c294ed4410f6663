package radio

// Band selects the frequency range of the tuner.
type Band uint8

// Bands supported by the chip. The values are the SYSCONFIG2 BAND codes.
const (
	// BandUSEurope is 87.5–108 MHz.
	BandUSEurope Band = 0b00
	// BandJapanWide is 76–108 MHz.
	BandJapanWide Band = 0b01
	// BandJapan is 76–90 MHz.
	BandJapan Band = 0b10
)

func (b Band) String() string {
	switch b {
	case BandUSEurope:
		return "US/Europe 87.5-108MHz"
	case BandJapanWide:
		return "Japan wide 76-108MHz"
	case BandJapan:
		return "Japan 76-90MHz"
	default:
		return "unknown band"
	}
}

// Spacing selects the channel grid. The zero value is deliberately not a
// valid grid and must be replaced by the integrator.
type Spacing uint8

// Channel spacings.
const (
	SpacingUnset Spacing = iota
	Spacing200kHz
	Spacing100kHz
	Spacing50kHz
)

func (sp Spacing) String() string {
	switch sp {
	case Spacing200kHz:
		return "200kHz"
	case Spacing100kHz:
		return "100kHz"
	case Spacing50kHz:
		return "50kHz"
	default:
		return "unset"
	}
}

// code returns the SYSCONFIG2 SPACE value.
func (sp Spacing) code() (uint16, bool) {
	switch sp {
	case Spacing200kHz:
		return 0b00, true
	case Spacing100kHz:
		return 0b01, true
	case Spacing50kHz:
		return 0b10, true
	default:
		return 0, false
	}
}

// DeEmphasis selects the audio de-emphasis time constant.
type DeEmphasis uint8

// De-emphasis values, as SYSCONFIG1 DE codes.
const (
	DeEmphasis75us DeEmphasis = 0
	DeEmphasis50us DeEmphasis = 1
)

// SeekMode selects what a seek does at the band edge.
type SeekMode uint8

// Seek modes, as POWERCFG SKMODE codes.
const (
	SeekWrap SeekMode = 0
	SeekStop SeekMode = 1
)

// BandConfig holds the band edges and the channel step, all in 10 kHz units.
type BandConfig struct {
	Start   int
	End     int
	Spacing int
}

// Apply looks up the band edges and the channel step. Unknown selectors
// leave the corresponding values untouched.
func (c *BandConfig) Apply(band Band, spacing Spacing) {
	switch band {
	case BandUSEurope:
		c.Start, c.End = 8750, 10800
	case BandJapanWide:
		c.Start, c.End = 7600, 10800
	case BandJapan:
		c.Start, c.End = 7600, 9000
	}

	switch spacing {
	case Spacing100kHz:
		c.Spacing = 10
	case Spacing200kHz:
		c.Spacing = 20
	case Spacing50kHz:
		c.Spacing = 5
	}
}

// Clamp limits freq to the band.
func (c BandConfig) Clamp(freq int) int {
	if freq > c.End {
		freq = c.End
	}
	if freq < c.Start {
		freq = c.Start
	}
	return freq
}

// channel converts a frequency inside the band to a channel number.
func (c BandConfig) channel(freq int) uint16 {
	return uint16((freq - c.Start) / c.Spacing)
}

// frequency converts a channel number back to a frequency.
func (c BandConfig) frequency(ch uint16) int {
	return c.Spacing*int(ch) + c.Start
}
