package radio

// GPIOPin names one of the three general purpose pins of the chip.
type GPIOPin uint8

// General purpose pins.
const (
	GPIO1 GPIOPin = 1
	GPIO2 GPIOPin = 2
	GPIO3 GPIOPin = 3
)

// GPIOMode is the SYSCONFIG1 GPIOx setting.
type GPIOMode uint8

// GPIO modes.
const (
	GPIOHighZ     GPIOMode = 0b00
	GPIOInterrupt GPIOMode = 0b01
	GPIOLow       GPIOMode = 0b10
	GPIOHigh      GPIOMode = 0b11
)

// WriteGPIO configures one of the general purpose pins. Unknown pins are
// ignored and nothing is sent to the chip.
func (s *Si4703Driver) WriteGPIO(pin GPIOPin, mode GPIOMode) error {
	var f Field
	switch pin {
	case GPIO1:
		f = fieldGPIO1
	case GPIO2:
		f = fieldGPIO2
	case GPIO3:
		f = fieldGPIO3
	default:
		return nil
	}

	return s.modify(func(sh *Shadow) {
		f.Set(sh, uint16(mode))
	})
}
