package radio

import "errors"

// ErrSeekFailed is returned when a seek reached the band limit or found
// no station above the seek thresholds.
var ErrSeekFailed = errors.New("seek failed or reached the band limit")

// Seek directions, as POWERCFG SEEKUP values.
const (
	SeekDown = false
	SeekUp   = true
)

// seek runs one automatic scan in the given direction.
func (s *Si4703Driver) seek(up bool) (int, error) {
	if s.debugMode {
		s.debugLog("Seeking %s\n", direction(up))
	}

	var failed bool
	err := s.command("seek", flagSeek, func(sh *Shadow) {
		flagSeekUp.Set(sh, up)
	}, func(sh *Shadow) {
		failed = flagSFBL.Get(sh)
	}, s.seekPolls, s.seekPollInterval)
	if err != nil {
		return 0, err
	}

	if failed {
		return 0, ErrSeekFailed
	}
	return s.Channel()
}

// SeekUp scans up for the next station. When the scan fails it restarts
// once from the band start.
func (s *Si4703Driver) SeekUp() (int, error) {
	return s.seekWithRetry(SeekUp)
}

// SeekDown scans down for the next station. When the scan fails it
// restarts once from the band end.
func (s *Si4703Driver) SeekDown() (int, error) {
	return s.seekWithRetry(SeekDown)
}

func (s *Si4703Driver) seekWithRetry(up bool) (int, error) {
	freq, err := s.seek(up)
	if !errors.Is(err, ErrSeekFailed) {
		return freq, err
	}

	edge := s.band.End
	if up {
		edge = s.band.Start
	}
	if s.debugMode {
		s.debugLog("Seek %s failed, retrying from %.2f MHz\n", direction(up), float32(edge)/100)
	}
	if _, err = s.SetChannel(edge); err != nil {
		return 0, err
	}
	return s.seek(up)
}

func direction(up bool) string {
	if up {
		return "up"
	}
	return "down"
}
