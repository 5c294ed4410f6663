package logsink

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort struct {
	bytes.Buffer
	closed  bool
	failing bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.failing {
		return 0, errors.New("port gone")
	}
	return p.Buffer.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func withFakePort(t *testing.T) (*fakePort, *int) {
	t.Helper()

	port := &fakePort{}
	baud := new(int)
	prev := openPort
	openPort = func(name string, b int) (io.WriteCloser, error) {
		*baud = b
		return port, nil
	}
	t.Cleanup(func() { openPort = prev })
	return port, baud
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fmradio.log")
	s, err := New(Options{File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger := log.New(s, "", 0)
	logger.Printf("Tuned to %.2f MHz", 107.0)
	require.NoError(t, s.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Tuned to 107.00 MHz\n", string(got))
}

func TestSerialOutputSendsWholeLines(t *testing.T) {
	port, baud := withFakePort(t)

	s, err := New(Options{Serial: "/dev/ttyAMA0"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaud, *baud)

	_, err = s.Write([]byte("CW\nCC"))
	require.NoError(t, err)
	assert.Equal(t, "CW\r\n", port.String())

	_, err = s.Write([]byte("W\r\nCLICK"))
	require.NoError(t, err)
	assert.Equal(t, "CW\r\nCCW\r\n", port.String())

	require.NoError(t, s.Close())
	assert.Equal(t, "CW\r\nCCW\r\nCLICK", port.String())
	assert.True(t, port.closed)
}

func TestSerialBaud(t *testing.T) {
	_, baud := withFakePort(t)

	s, err := New(Options{Serial: "/dev/ttyUSB0", Baud: 115200})
	require.NoError(t, err)
	assert.Equal(t, 115200, *baud)
	require.NoError(t, s.Close())
}

func TestSerialOpenError(t *testing.T) {
	prev := openPort
	openPort = func(string, int) (io.WriteCloser, error) { return nil, errors.New("no such device") }
	defer func() { openPort = prev }()

	_, err := New(Options{Serial: "/dev/ttyS9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/dev/ttyS9")
}

func TestWriteReachesAllOutputs(t *testing.T) {
	port, _ := withFakePort(t)
	port.failing = true
	path := filepath.Join(t.TempDir(), "fmradio.log")

	s, err := New(Options{File: path, Serial: "/dev/ttyAMA0"})
	require.NoError(t, err)

	n, err := s.Write([]byte("seek up\n"))
	assert.Error(t, err)
	assert.Equal(t, 8, n)

	port.failing = false
	_, err = s.Write([]byte("tune\n"))
	require.NoError(t, err)
	assert.Equal(t, "tune\r\n", port.String())

	require.NoError(t, s.Close())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "seek up\ntune\n", string(got))
}

func TestDefaultsToStderr(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, []io.Writer{os.Stderr}, s.writers)
	assert.NoError(t, s.Close())
}
