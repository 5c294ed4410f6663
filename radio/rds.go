package radio

// RDSGroup is one raw RDS group as latched by the chip.
type RDSGroup struct {
	A, B, C, D uint16

	// Block error levels: 0 none, 1 one or two, 2 three to five, 3 uncorrectable.
	ErrA, ErrB, ErrC, ErrD uint8

	Synchronized bool
}

// RDS returns the latched RDS group when the chip flags one as ready.
// Decoding the group is left to the caller.
func (s *Si4703Driver) RDS() (RDSGroup, bool, error) {
	if err := s.readAll(); err != nil {
		return RDSGroup{}, false, err
	}
	if !flagRDSR.Get(&s.shadow) {
		return RDSGroup{}, false, nil
	}

	sh := &s.shadow
	return RDSGroup{
		A:            sh[RDSA],
		B:            sh[RDSB],
		C:            sh[RDSC],
		D:            sh[RDSD],
		ErrA:         uint8(fieldBLERA.Get(sh)),
		ErrB:         uint8(fieldBLERB.Get(sh)),
		ErrC:         uint8(fieldBLERC.Get(sh)),
		ErrD:         uint8(fieldBLERD.Get(sh)),
		Synchronized: flagRDSS.Get(sh),
	}, true, nil
}
