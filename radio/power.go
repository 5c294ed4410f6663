package radio

import "time"

// Settle delays of the power sequences.
const (
	oscillatorSettle = 500 * time.Millisecond
	powerUpSettle    = 110 * time.Millisecond
	powerDownSettle  = 2 * time.Millisecond
)

// PowerState is the power sequencing state of the chip as last commanded.
type PowerState uint8

// Power states.
const (
	Unpowered PowerState = iota
	OscillatorEnabling
	Enabling
	Operating
	Disabling
)

func (p PowerState) String() string {
	switch p {
	case Unpowered:
		return "unpowered"
	case OscillatorEnabling:
		return "oscillator enabling"
	case Enabling:
		return "enabling"
	case Operating:
		return "operating"
	case Disabling:
		return "disabling"
	default:
		return "unknown"
	}
}

// PowerState returns the last commanded power state. Nothing verifies
// that the chip actually reached it.
func (s *Si4703Driver) PowerState() PowerState {
	return s.power
}

// PowerUp starts the crystal oscillator, waits for it to settle, then
// enables the chip with audio un-muted.
func (s *Si4703Driver) PowerUp() error {
	s.power = OscillatorEnabling
	if err := s.modify(func(sh *Shadow) {
		flagXOSCEN.Set(sh, true)
	}); err != nil {
		return err
	}
	s.sleep(oscillatorSettle)

	s.power = Enabling
	if err := s.modify(func(sh *Shadow) {
		flagEnable.Set(sh, true)
		flagDisable.Set(sh, false)
		flagDMute.Set(sh, true)
	}); err != nil {
		return err
	}
	s.sleep(powerUpSettle)

	s.power = Operating
	if s.debugMode {
		s.debugLog("powered up\n")
	}
	return nil
}

// PowerDown puts the audio outputs and the GPIO pins in high impedance,
// mutes and disables the chip.
func (s *Si4703Driver) PowerDown() error {
	s.power = Disabling
	if err := s.modify(func(sh *Shadow) {
		flagAHIZEN.Set(sh, true)
		fieldGPIO1.Set(sh, uint16(GPIOHighZ))
		fieldGPIO2.Set(sh, uint16(GPIOHighZ))
		fieldGPIO3.Set(sh, uint16(GPIOHighZ))
		flagDMute.Set(sh, false)
		flagEnable.Set(sh, true)
		flagDisable.Set(sh, true)
	}); err != nil {
		return err
	}
	s.sleep(powerDownSettle)

	s.power = Unpowered
	if s.debugMode {
		s.debugLog("powered down\n")
	}
	return nil
}
