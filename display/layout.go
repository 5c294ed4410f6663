package display

import (
	"fmt"
	"strings"
)

// Width is the number of characters in one row of the display.
const Width = 16

// Status is what the radio screen shows.
type Status struct {
	// Frequency in 10 kHz units, 10700 is 107.00 MHz.
	Frequency int
	Volume    int
	RSSI      int
	Muted     bool
	// Tuning is set when the encoder steps channels instead of volume.
	Tuning bool
}

// RadioLines lays out the main radio screen.
func RadioLines(st Status) (string, string) {
	mode := "VOL"
	if st.Tuning {
		mode = "TUN"
	}
	top := fmt.Sprintf("FM %s %s", formatFrequency(st.Frequency), mode)

	bottom := fmt.Sprintf("Vol:%2d   RSSI:%2d", st.Volume, st.RSSI)
	if st.Muted {
		bottom = fmt.Sprintf("MUTED    RSSI:%2d", st.RSSI)
	}
	return fit(top), fit(bottom)
}

// PowerOffLines lays out the screen shown while the tuner is powered down.
func PowerOffLines() (string, string) {
	return fit("FM Radio"), fit("Power off")
}

// FavoriteLine is the bottom line notice shown after storing a favourite.
func FavoriteLine(freq int) string {
	return fit("FAV " + formatFrequency(freq))
}

func formatFrequency(freq int) string {
	return fmt.Sprintf("%3d.%02dMHz", freq/100, freq%100)
}

// fit pads or truncates s to the display width.
func fit(s string) string {
	if len(s) > Width {
		return s[:Width]
	}
	return s + strings.Repeat(" ", Width-len(s))
}
