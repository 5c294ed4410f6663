// Package config loads the receiver configuration from a YAML file and
// the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v2"

	"github.com/SSdmk/DE2-FM-Radio/input"
	"github.com/SSdmk/DE2-FM-Radio/logsink"
	"github.com/SSdmk/DE2-FM-Radio/radio"
)

// Environment variables read by Load.
const (
	EnvConfig    = "FMRADIO_CONFIG"
	EnvFrequency = "FMRADIO_FREQUENCY"
	EnvVolume    = "FMRADIO_VOLUME"
)

// Transports.
const (
	TransportGobot  = "gobot"
	TransportPeriph = "periph"
)

// Input sources.
const (
	InputGPIO     = "gpio"
	InputKeyboard = "keyboard"
	InputNone     = "none"
)

// Config represents the complete configuration of the receiver
type Config struct {
	Radio   RadioConfig     `yaml:"radio"`
	Bus     BusConfig       `yaml:"bus"`
	Display DisplayConfig   `yaml:"display"`
	Input   InputConfig     `yaml:"input"`
	Log     logsink.Options `yaml:"log"`
}

// RadioConfig holds the tuner settings
type RadioConfig struct {
	Band          string `yaml:"band"`
	Spacing       string `yaml:"spacing"`
	DeEmphasis    string `yaml:"deEmphasis"`
	SeekMode      string `yaml:"seekMode"`
	SeekThreshold int    `yaml:"seekThreshold"`
	SeekSNR       int    `yaml:"seekSnr"`
	SeekImpulse   int    `yaml:"seekImpulse"`
	AGCDisable    bool   `yaml:"agcDisable"`

	Frequency int `yaml:"frequency"` // 10 kHz units
	Volume    int `yaml:"volume"`

	ResetPin string `yaml:"resetPin"`
	SDIOPin  string `yaml:"sdioPin"`

	TunePolls        int           `yaml:"tunePolls"`
	SeekPolls        int           `yaml:"seekPolls"`
	SeekPollInterval time.Duration `yaml:"seekPollInterval"`

	Debug bool `yaml:"debug"`
}

// BusConfig selects how the tuner is reached
type BusConfig struct {
	Transport string `yaml:"transport"`
	// Name is the periph i2c bus name, empty for the first bus.
	Name string `yaml:"name"`
}

// DisplayConfig holds the LCD settings
type DisplayConfig struct {
	Enabled bool          `yaml:"enabled"`
	Refresh time.Duration `yaml:"refresh"`
}

// InputConfig holds the user input settings
type InputConfig struct {
	Source       string        `yaml:"source"`
	Pins         input.Pins    `yaml:"pins"`
	PollInterval time.Duration `yaml:"pollInterval"`
	Terminal     string        `yaml:"terminal"`
}

// Default returns the default configuration. The channel spacing is left
// unset: it depends on the region and has to be configured.
func Default() *Config {
	return &Config{
		Radio: RadioConfig{
			Band:             "us-eu",
			DeEmphasis:       "75us",
			SeekMode:         "wrap",
			SeekThreshold:    radio.DefaultSeekThreshold,
			Frequency:        10700,
			Volume:           10,
			ResetPin:         "16",
			TunePolls:        radio.DefaultTunePolls,
			SeekPolls:        radio.DefaultSeekPolls,
			SeekPollInterval: radio.DefaultSeekPollInterval,
		},
		Bus: BusConfig{
			Transport: TransportGobot,
		},
		Display: DisplayConfig{
			Enabled: true,
			Refresh: 200 * time.Millisecond,
		},
		Input: InputConfig{
			Source: InputGPIO,
			Pins: input.Pins{
				Up:    "29",
				Down:  "31",
				Left:  "33",
				Right: "35",
				CLK:   "11",
				DT:    "13",
				SW:    "15",
			},
			PollInterval: input.DefaultPollInterval,
			Terminal:     "/dev/tty",
		},
		Log: logsink.Options{
			Stderr: true,
		},
	}
}

// Load loads the defaults, then path, or the file named by FMRADIO_CONFIG
// when path is empty, then the environment overrides, and validates the
// result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadFile merges a YAML file into cfg
func LoadFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) error {
	var result *multierror.Error

	if v := os.Getenv(EnvFrequency); v != "" {
		freq, err := strconv.Atoi(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvFrequency, err))
		} else {
			cfg.Radio.Frequency = freq
		}
	}

	if v := os.Getenv(EnvVolume); v != "" {
		vol, err := strconv.Atoi(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvVolume, err))
		} else {
			cfg.Radio.Volume = vol
		}
	}

	return result.ErrorOrNil()
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := ParseBand(c.Radio.Band); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := ParseSpacing(c.Radio.Spacing); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := ParseDeEmphasis(c.Radio.DeEmphasis); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := ParseSeekMode(c.Radio.SeekMode); err != nil {
		result = multierror.Append(result, err)
	}
	// zero selects the driver default, so it is not a usable threshold
	if c.Radio.SeekThreshold < 1 || c.Radio.SeekThreshold > 127 {
		result = multierror.Append(result, fmt.Errorf("seek threshold %d outside 1..127", c.Radio.SeekThreshold))
	}

	switch c.Bus.Transport {
	case TransportGobot, TransportPeriph:
	default:
		result = multierror.Append(result, fmt.Errorf("unknown bus transport %q, use %s or %s",
			c.Bus.Transport, TransportGobot, TransportPeriph))
	}

	switch c.Input.Source {
	case InputGPIO:
		if c.Bus.Transport == TransportPeriph {
			result = multierror.Append(result, fmt.Errorf("gpio input needs the %s transport", TransportGobot))
		}
		if c.Input.PollInterval <= 0 {
			result = multierror.Append(result, fmt.Errorf("input poll interval must be positive"))
		}
	case InputKeyboard:
		if c.Input.Terminal == "" {
			result = multierror.Append(result, fmt.Errorf("keyboard input needs a terminal device"))
		}
	case InputNone:
	default:
		result = multierror.Append(result, fmt.Errorf("unknown input source %q", c.Input.Source))
	}

	if c.Display.Enabled && c.Bus.Transport == TransportPeriph {
		result = multierror.Append(result, fmt.Errorf("the display needs the %s transport", TransportGobot))
	}
	if c.Display.Refresh <= 0 {
		result = multierror.Append(result, fmt.Errorf("display refresh must be positive"))
	}

	return result.ErrorOrNil()
}

// RadioConfig converts the tuner settings for the driver.
func (c *Config) RadioConfig(log, debugLog func(format string, v ...interface{})) (radio.Si4703Config, error) {
	if err := c.Validate(); err != nil {
		return radio.Si4703Config{}, err
	}

	band, _ := ParseBand(c.Radio.Band)
	spacing, _ := ParseSpacing(c.Radio.Spacing)
	de, _ := ParseDeEmphasis(c.Radio.DeEmphasis)
	mode, _ := ParseSeekMode(c.Radio.SeekMode)

	return radio.Si4703Config{
		Band:             band,
		Spacing:          spacing,
		DeEmphasis:       de,
		SeekMode:         mode,
		SeekThreshold:    uint8(c.Radio.SeekThreshold),
		SeekSNR:          clampNibble(c.Radio.SeekSNR),
		SeekImpulse:      clampNibble(c.Radio.SeekImpulse),
		AGCDisable:       c.Radio.AGCDisable,
		Frequency:        c.Radio.Frequency,
		Volume:           c.Radio.Volume,
		ResetPin:         c.Radio.ResetPin,
		SDIOPin:          c.Radio.SDIOPin,
		TunePolls:        c.Radio.TunePolls,
		SeekPolls:        c.Radio.SeekPolls,
		SeekPollInterval: c.Radio.SeekPollInterval,
		DebugMode:        c.Radio.Debug,
		DebugLog:         debugLog,
		Log:              log,
	}, nil
}

// clampNibble keeps out of range values visible to the driver, which
// clamps and logs them.
func clampNibble(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ParseBand maps us-eu, japan-wide and japan onto a band.
func ParseBand(s string) (radio.Band, error) {
	switch strings.ToLower(s) {
	case "us-eu", "us", "eu":
		return radio.BandUSEurope, nil
	case "japan-wide":
		return radio.BandJapanWide, nil
	case "japan":
		return radio.BandJapan, nil
	default:
		return 0, fmt.Errorf("unknown band %q, use us-eu, japan-wide or japan", s)
	}
}

// ParseSpacing maps 200khz, 100khz and 50khz onto a channel spacing.
func ParseSpacing(s string) (radio.Spacing, error) {
	switch strings.ToLower(s) {
	case "200khz":
		return radio.Spacing200kHz, nil
	case "100khz":
		return radio.Spacing100kHz, nil
	case "50khz":
		return radio.Spacing50kHz, nil
	case "":
		return radio.SpacingUnset, fmt.Errorf("channel spacing not set, use 200khz, 100khz or 50khz")
	default:
		return radio.SpacingUnset, fmt.Errorf("unknown channel spacing %q, use 200khz, 100khz or 50khz", s)
	}
}

// ParseDeEmphasis maps 75us and 50us onto a de-emphasis.
func ParseDeEmphasis(s string) (radio.DeEmphasis, error) {
	switch strings.ToLower(s) {
	case "75us":
		return radio.DeEmphasis75us, nil
	case "50us":
		return radio.DeEmphasis50us, nil
	default:
		return 0, fmt.Errorf("unknown de-emphasis %q, use 75us or 50us", s)
	}
}

// ParseSeekMode maps wrap and stop onto a seek mode.
func ParseSeekMode(s string) (radio.SeekMode, error) {
	switch strings.ToLower(s) {
	case "wrap":
		return radio.SeekWrap, nil
	case "stop":
		return radio.SeekStop, nil
	default:
		return 0, fmt.Errorf("unknown seek mode %q, use wrap or stop", s)
	}
}
