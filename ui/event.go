package ui

// Event is one user input, already debounced and classified.
type Event uint8

// Input events.
const (
	EventNone Event = iota
	// BtnUpShort recalls the favourite station.
	BtnUpShort
	// BtnUpLong stores the current station as favourite.
	BtnUpLong
	// BtnDownShort toggles mute.
	BtnDownShort
	// BtnDownLong toggles power.
	BtnDownLong
	// BtnLeft seeks down.
	BtnLeft
	// BtnRight seeks up.
	BtnRight
	// EncCW and EncCCW step the volume or the channel, depending on the mode.
	EncCW
	EncCCW
	// EncClick switches between volume and tune mode.
	EncClick
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case BtnUpShort:
		return "up short"
	case BtnUpLong:
		return "up long"
	case BtnDownShort:
		return "down short"
	case BtnDownLong:
		return "down long"
	case BtnLeft:
		return "left"
	case BtnRight:
		return "right"
	case EncCW:
		return "cw"
	case EncCCW:
		return "ccw"
	case EncClick:
		return "click"
	default:
		return "unknown"
	}
}

// Mode selects what the encoder rotation controls.
type Mode uint8

// Encoder modes.
const (
	ModeVolume Mode = iota
	ModeTune
)

func (m Mode) String() string {
	if m == ModeTune {
		return "tune"
	}
	return "volume"
}
