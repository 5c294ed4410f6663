package radio

// Register addresses of the Si4703.
//
//goland:noinspection GoUnusedConst,GoUnnecessarilyExportedIdentifiers,GoSnakeCaseUsage
const (
	DEVICEID   = 0x00
	CHIPID     = 0x01
	POWERCFG   = 0x02
	CHANNEL    = 0x03
	SYSCONFIG1 = 0x04
	SYSCONFIG2 = 0x05
	SYSCONFIG3 = 0x06
	TEST1      = 0x07
	TEST2      = 0x08
	BOOTCONFIG = 0x09
	STATUSRSSI = 0x0A
	READCHAN   = 0x0B
	RDSA       = 0x0C
	RDSB       = 0x0D
	RDSC       = 0x0E
	RDSD       = 0x0F
)

const (
	// registerCount is the size of the register file.
	registerCount = 16

	// writeFirst and writeLast bound the window a write transaction sends.
	// The chip always starts writing at POWERCFG and auto-increments.
	writeFirst = POWERCFG
	writeLast  = TEST1
)

// ReadOrder is the order in which a read transaction returns registers.
// The chip starts reading at STATUSRSSI and wraps around after RDSD.
var ReadOrder = [registerCount]uint8{
	STATUSRSSI, READCHAN, RDSA, RDSB, RDSC, RDSD,
	DEVICEID, CHIPID, POWERCFG, CHANNEL, SYSCONFIG1, SYSCONFIG2,
	SYSCONFIG3, TEST1, TEST2, BOOTCONFIG,
}

// Shadow is the local copy of the chip register file, indexed by
// register address. It is only as fresh as the last read sync.
type Shadow [registerCount]uint16

// Field describes a bit-field inside one register.
type Field struct {
	Reg   uint8
	Shift uint8
	Width uint8
}

func (f Field) mask() uint16 {
	return uint16(1<<f.Width-1) << f.Shift
}

// Get extracts the field value.
func (f Field) Get(s *Shadow) uint16 {
	return (s[f.Reg] & f.mask()) >> f.Shift
}

// Set stores v into the field. Bits of v above the field width are dropped.
func (f Field) Set(s *Shadow, v uint16) {
	s[f.Reg] = s[f.Reg]&^f.mask() | (v<<f.Shift)&f.mask()
}

// Flag is a single bit field.
type Flag struct {
	Reg uint8
	Bit uint8
}

// Get reports whether the bit is set.
func (f Flag) Get(s *Shadow) bool {
	return s[f.Reg]&(1<<f.Bit) != 0
}

// Set sets or clears the bit.
func (f Flag) Set(s *Shadow, on bool) {
	if on {
		s[f.Reg] |= 1 << f.Bit
		return
	}
	s[f.Reg] &^= 1 << f.Bit
}

// Named bit-fields of the register file.
var (
	// DEVICEID
	fieldMFGID = Field{DEVICEID, 0, 12}
	fieldPN    = Field{DEVICEID, 12, 4}

	// CHIPID
	fieldFirmware = Field{CHIPID, 0, 6}
	fieldDev      = Field{CHIPID, 6, 4}
	fieldRev      = Field{CHIPID, 10, 6}

	// POWERCFG
	flagEnable  = Flag{POWERCFG, 0}
	flagDisable = Flag{POWERCFG, 6}
	flagSeek    = Flag{POWERCFG, 8}
	flagSeekUp  = Flag{POWERCFG, 9}
	flagSkMode  = Flag{POWERCFG, 10}
	flagRDSM    = Flag{POWERCFG, 11}
	flagMono    = Flag{POWERCFG, 13}
	flagDMute   = Flag{POWERCFG, 14}
	flagDSMute  = Flag{POWERCFG, 15}

	// CHANNEL
	fieldChan = Field{CHANNEL, 0, 10}
	flagTune  = Flag{CHANNEL, 15}

	// SYSCONFIG1
	fieldGPIO1   = Field{SYSCONFIG1, 0, 2}
	fieldGPIO2   = Field{SYSCONFIG1, 2, 2}
	fieldGPIO3   = Field{SYSCONFIG1, 4, 2}
	fieldBlndAdj = Field{SYSCONFIG1, 6, 2}
	flagAGCD     = Flag{SYSCONFIG1, 10}
	flagDE       = Flag{SYSCONFIG1, 11}
	flagRDS      = Flag{SYSCONFIG1, 12}
	flagSTCIEN   = Flag{SYSCONFIG1, 14}
	flagRDSIEN   = Flag{SYSCONFIG1, 15}

	// SYSCONFIG2
	fieldVolume = Field{SYSCONFIG2, 0, 4}
	fieldSpace  = Field{SYSCONFIG2, 4, 2}
	fieldBand   = Field{SYSCONFIG2, 6, 2}
	fieldSeekTH = Field{SYSCONFIG2, 8, 8}

	// SYSCONFIG3
	fieldSkCnt  = Field{SYSCONFIG3, 0, 4}
	fieldSkSNR  = Field{SYSCONFIG3, 4, 4}
	flagVolExt  = Flag{SYSCONFIG3, 8}
	fieldSMuteA = Field{SYSCONFIG3, 12, 2}
	fieldSMuteR = Field{SYSCONFIG3, 14, 2}

	// TEST1
	flagAHIZEN = Flag{TEST1, 14}
	flagXOSCEN = Flag{TEST1, 15}

	// STATUSRSSI
	fieldRSSI  = Field{STATUSRSSI, 0, 8}
	flagST     = Flag{STATUSRSSI, 8}
	fieldBLERA = Field{STATUSRSSI, 9, 2}
	flagRDSS   = Flag{STATUSRSSI, 11}
	flagAFCRL  = Flag{STATUSRSSI, 12}
	flagSFBL   = Flag{STATUSRSSI, 13}
	flagSTC    = Flag{STATUSRSSI, 14}
	flagRDSR   = Flag{STATUSRSSI, 15}

	// READCHAN
	fieldReadChan = Field{READCHAN, 0, 10}
	fieldBLERD    = Field{READCHAN, 10, 2}
	fieldBLERC    = Field{READCHAN, 12, 2}
	fieldBLERB    = Field{READCHAN, 14, 2}
)
