package radio

import "fmt"

// Volume limits of the VOLUME field.
const (
	MinVolume = 0
	MaxVolume = 15
)

// readField refreshes the shadow and returns one field.
func (s *Si4703Driver) readField(f Field) (int, error) {
	if err := s.readAll(); err != nil {
		return 0, err
	}
	return int(f.Get(&s.shadow)), nil
}

// readFlag refreshes the shadow and returns one flag.
func (s *Si4703Driver) readFlag(f Flag) (bool, error) {
	if err := s.readAll(); err != nil {
		return false, err
	}
	return f.Get(&s.shadow), nil
}

// RSSI returns the received signal strength in dBµV.
func (s *Si4703Driver) RSSI() (int, error) {
	return s.readField(fieldRSSI)
}

// Stereo reports whether the current station is received in stereo.
func (s *Si4703Driver) Stereo() (bool, error) {
	return s.readFlag(flagST)
}

// Muted reports whether the audio output is muted.
func (s *Si4703Driver) Muted() (bool, error) {
	on, err := s.readFlag(flagDMute)
	if err != nil {
		return false, err
	}
	return !on, nil
}

// SetMute mutes or un-mutes the audio output.
func (s *Si4703Driver) SetMute(mute bool) error {
	return s.modify(func(sh *Shadow) {
		flagDMute.Set(sh, !mute)
	})
}

// Mono reports whether mono output is forced.
func (s *Si4703Driver) Mono() (bool, error) {
	return s.readFlag(flagMono)
}

// SetMono forces mono output on or off.
func (s *Si4703Driver) SetMono(mono bool) error {
	return s.modify(func(sh *Shadow) {
		flagMono.Set(sh, mono)
	})
}

// VolExt reports whether the extended volume range is enabled.
func (s *Si4703Driver) VolExt() (bool, error) {
	return s.readFlag(flagVolExt)
}

// SetVolExt enables the extended volume range (-30 dBFS lower).
func (s *Si4703Driver) SetVolExt(ext bool) error {
	return s.modify(func(sh *Shadow) {
		flagVolExt.Set(sh, ext)
	})
}

// Volume returns the volume, 0 to 15.
func (s *Si4703Driver) Volume() (int, error) {
	return s.readField(fieldVolume)
}

// SetVolume clamps volume to 0..15, writes it and returns the volume read
// back from the chip.
func (s *Si4703Driver) SetVolume(volume int) (int, error) {
	if volume < MinVolume {
		volume = MinVolume
	}
	if volume > MaxVolume {
		volume = MaxVolume
	}

	if err := s.modify(func(sh *Shadow) {
		fieldVolume.Set(sh, uint16(volume))
	}); err != nil {
		return 0, err
	}
	return s.Volume()
}

// IncVolume raises the volume by one step, stopping at 15.
func (s *Si4703Driver) IncVolume() (int, error) {
	v, err := s.Volume()
	if err != nil {
		return 0, err
	}
	return s.SetVolume(v + 1)
}

// DecVolume lowers the volume by one step, stopping at 0.
func (s *Si4703Driver) DecVolume() (int, error) {
	v, err := s.Volume()
	if err != nil {
		return 0, err
	}
	return s.SetVolume(v - 1)
}

// PartNumber returns DEVICEID PN.
func (s *Si4703Driver) PartNumber() (int, error) { return s.readField(fieldPN) }

// ManufacturerID returns DEVICEID MFGID.
func (s *Si4703Driver) ManufacturerID() (int, error) { return s.readField(fieldMFGID) }

// Revision returns CHIPID REV.
func (s *Si4703Driver) Revision() (int, error) { return s.readField(fieldRev) }

// Device returns CHIPID DEV.
func (s *Si4703Driver) Device() (int, error) { return s.readField(fieldDev) }

// Firmware returns CHIPID FIRMWARE.
func (s *Si4703Driver) Firmware() (int, error) { return s.readField(fieldFirmware) }

// DeviceInfo holds the identification registers.
type DeviceInfo struct {
	PartNumber     int
	ManufacturerID int
	Revision       int
	Device         int
	Firmware       int
}

func (d DeviceInfo) String() string {
	part := "unknown part"
	if d.PartNumber == 0x01 {
		part = "Si4702/03"
	}

	dev := "unknown device"
	switch d.Device {
	case 0x0:
		dev = "Si4702 (off)"
	case 0x1:
		dev = "Si4702 (on)"
	case 0x8:
		dev = "Si4703 (off)"
	case 0x9:
		dev = "Si4703 (on)"
	}

	return fmt.Sprintf("Part %s mfg 0x%03X, %s rev %d firmware %d",
		part, d.ManufacturerID, dev, d.Revision, d.Firmware)
}

// DeviceInfo reads all identification fields with one read sync.
func (s *Si4703Driver) DeviceInfo() (DeviceInfo, error) {
	if err := s.readAll(); err != nil {
		return DeviceInfo{}, err
	}
	return DeviceInfo{
		PartNumber:     int(fieldPN.Get(&s.shadow)),
		ManufacturerID: int(fieldMFGID.Get(&s.shadow)),
		Revision:       int(fieldRev.Get(&s.shadow)),
		Device:         int(fieldDev.Get(&s.shadow)),
		Firmware:       int(fieldFirmware.Get(&s.shadow)),
	}, nil
}
