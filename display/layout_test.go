package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRadioLines(t *testing.T) {
	tests := []struct {
		name   string
		st     Status
		top    string
		bottom string
	}{
		{"volume mode", Status{Frequency: 10700, Volume: 10, RSSI: 42}, "FM 107.00MHz VOL", "Vol:10   RSSI:42"},
		{"tuning mode", Status{Frequency: 7600, Volume: 0, RSSI: 5, Tuning: true}, "FM  76.00MHz TUN", "Vol: 0   RSSI: 5"},
		{"muted", Status{Frequency: 9955, Volume: 7, RSSI: 18, Muted: true}, "FM  99.55MHz VOL", "MUTED    RSSI:18"},
		{"wide rssi", Status{Frequency: 8750, Volume: 15, RSSI: 100}, "FM  87.50MHz VOL", "Vol:15   RSSI:10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			top, bottom := RadioLines(tc.st)
			assert.Equal(t, tc.top, top)
			assert.Equal(t, tc.bottom, bottom)
			assert.Len(t, top, Width)
			assert.Len(t, bottom, Width)
		})
	}
}

func TestPowerOffLines(t *testing.T) {
	top, bottom := PowerOffLines()
	assert.Equal(t, "FM Radio        ", top)
	assert.Equal(t, "Power off       ", bottom)
}

func TestFavoriteLine(t *testing.T) {
	assert.Equal(t, "FAV 107.00MHz   ", FavoriteLine(10700))
	assert.Equal(t, "FAV  87.55MHz   ", FavoriteLine(8755))
}
