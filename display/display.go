// Package display drives the SunFounder LCD1602 i2c backpack that shows
// the radio screen.
package display

import (
	"time"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/drivers/i2c"
)

// Backpack wiring: the upper four bits carry a nibble, the lower four
// drive the controller lines.
const (
	pinRS     = 0x01
	pinEN     = 0x04
	backlight = 0x08

	address = 0x27

	// noticeDuration is how long a bottom line notice stays up
	noticeDuration = 3 * time.Second

	cmdClear = 0x01
)

// rowAddress holds the DDRAM set-address command of each row.
var rowAddress = [2]byte{0x80, 0x80 + 0x40}

// SunFounderLCD1602Driver renders the radio screen on a SunFounder LCD1602
// with a PCF8574 backpack.
//
//goland:noinspection GoUnnecessarilyExportedIdentifiers
type SunFounderLCD1602Driver struct {
	name         string
	i2cConnector i2c.Connector
	i2c.Config
	gobot.Commander

	i2cAddr int
	conn    i2c.Connection

	backlightEnabled bool

	// rows caches what is on screen so unchanged rows are not resent
	rows [2]string

	notice      string
	noticeUntil time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// Name of the device.
func (lcd *SunFounderLCD1602Driver) Name() string {
	return lcd.name
}

// SetName set the name of our device
func (lcd *SunFounderLCD1602Driver) SetName(name string) {
	lcd.name = name
}

// Start opens the connection, initialises the controller and clears the
// screen.
func (lcd *SunFounderLCD1602Driver) Start() error {
	bus := lcd.GetBusOrDefault(lcd.i2cConnector.GetDefaultBus())

	var err error
	lcd.conn, err = lcd.i2cConnector.GetConnection(lcd.i2cAddr, bus)
	if err != nil {
		return err
	}

	// 4 bit mode, 2 lines, display on without cursor
	for _, cmd := range [...]byte{0x33, 0x32, 0x28, 0x0C} {
		if err = lcd.sendCommand(cmd); err != nil {
			return err
		}
		lcd.sleep(5 * time.Millisecond)
	}

	return lcd.ClearScreen()
}

// Halt blanks the screen and turns the backlight off.
func (lcd *SunFounderLCD1602Driver) Halt() error {
	if lcd.conn == nil {
		return nil
	}
	lcd.backlightEnabled = false
	return lcd.ClearScreen()
}

// Connection retrieves the i2c connection to the device
func (lcd *SunFounderLCD1602Driver) Connection() gobot.Connection {
	c, _ := lcd.i2cConnector.(gobot.Connection)
	return c
}

func (lcd *SunFounderLCD1602Driver) sendCommand(cmd byte) error {
	return lcd.transfer(0, cmd)
}

func (lcd *SunFounderLCD1602Driver) sendData(ch byte) error {
	return lcd.transfer(pinRS, ch)
}

// write puts one byte on the backpack port with the backlight bit applied.
func (lcd *SunFounderLCD1602Driver) write(port byte) error {
	if lcd.backlightEnabled {
		port |= backlight
	} else {
		port &^= backlight
	}
	return lcd.conn.WriteByte(port)
}

// transfer clocks v into the controller in 4 bit mode, high nibble first.
// Each nibble is latched on the falling edge of EN.
func (lcd *SunFounderLCD1602Driver) transfer(rs, v byte) error {
	for _, nibble := range [2]byte{v & 0xF0, v << 4} {
		if err := lcd.write(nibble | rs | pinEN); err != nil {
			return err
		}
		lcd.sleep(2 * time.Millisecond)
		if err := lcd.write(nibble | rs); err != nil {
			return err
		}
	}
	return nil
}

// EnableBacklight turns on the screen backlight
func (lcd *SunFounderLCD1602Driver) EnableBacklight() error {
	lcd.backlightEnabled = true
	err := lcd.write(0x00)
	lcd.sleep(2 * time.Millisecond)
	return err
}

// DisableBacklight turns off the screen backlight
func (lcd *SunFounderLCD1602Driver) DisableBacklight() error {
	lcd.backlightEnabled = false
	err := lcd.write(0x00)
	lcd.sleep(2 * time.Millisecond)
	return err
}

// ClearScreen blanks both rows. The clear command goes out with the
// backlight on, then the previous backlight state is restored.
func (lcd *SunFounderLCD1602Driver) ClearScreen() error {
	lit := lcd.backlightEnabled
	lcd.backlightEnabled = true
	if err := lcd.sendCommand(cmdClear); err != nil {
		return err
	}

	lcd.sleep(2 * time.Millisecond)
	lcd.rows = [2]string{}

	if !lit {
		return lcd.DisableBacklight()
	}
	return lcd.EnableBacklight()
}

// writeRow renders one full row, skipping it when it is already on screen.
func (lcd *SunFounderLCD1602Driver) writeRow(row int, text string) error {
	text = fit(text)
	if lcd.rows[row] == text {
		return nil
	}

	if err := lcd.sendCommand(rowAddress[row]); err != nil {
		return err
	}
	for i := 0; i < len(text); i++ {
		if err := lcd.sendData(text[i]); err != nil {
			lcd.rows[row] = ""
			return err
		}
	}
	lcd.rows[row] = text
	return nil
}

// DisplayLines renders both rows, padded or cut to the display width.
func (lcd *SunFounderLCD1602Driver) DisplayLines(top, bottom string) error {
	if err := lcd.writeRow(0, top); err != nil {
		return err
	}
	return lcd.writeRow(1, bottom)
}

// ShowRadio renders the main radio screen. A pending notice replaces the
// bottom row until it expires.
func (lcd *SunFounderLCD1602Driver) ShowRadio(st Status) error {
	if !lcd.backlightEnabled {
		if err := lcd.EnableBacklight(); err != nil {
			return err
		}
	}

	top, bottom := RadioLines(st)
	if lcd.notice != "" {
		if lcd.now().Before(lcd.noticeUntil) {
			bottom = lcd.notice
		} else {
			lcd.notice = ""
		}
	}
	return lcd.DisplayLines(top, bottom)
}

// ShowPowerOff renders the power off screen and turns the backlight off.
func (lcd *SunFounderLCD1602Driver) ShowPowerOff() error {
	lcd.notice = ""
	if err := lcd.DisplayLines(PowerOffLines()); err != nil {
		return err
	}
	if lcd.backlightEnabled {
		return lcd.DisableBacklight()
	}
	return nil
}

// ShowFavoriteSaved puts the stored favourite on the bottom row for a
// few seconds.
func (lcd *SunFounderLCD1602Driver) ShowFavoriteSaved(freq int) error {
	lcd.notice = FavoriteLine(freq)
	lcd.noticeUntil = lcd.now().Add(noticeDuration)
	return lcd.writeRow(1, lcd.notice)
}

// NewLCD1602Driver creates a new GoBot driver for the radio screen
func NewLCD1602Driver(connector i2c.Connector, options ...func(i2c.Config)) (*SunFounderLCD1602Driver, error) {
	lcd := &SunFounderLCD1602Driver{
		name:             gobot.DefaultName("SunFounderLCD1602Driver"),
		i2cConnector:     connector,
		Config:           i2c.NewConfig(),
		i2cAddr:          address,
		backlightEnabled: true,
		now:              time.Now,
		sleep:            time.Sleep,
	}

	for _, option := range options {
		option(lcd)
	}

	return lcd, nil
}
