// Package logsink builds the process log output: stderr, a rotating log
// file and a serial console, in any combination.
package logsink

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/tarm/serial"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultBaud is the serial console speed.
const DefaultBaud = 9600

// Options selects the log outputs.
type Options struct {
	Stderr bool `yaml:"stderr"`

	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`

	Serial string `yaml:"serial"`
	Baud   int    `yaml:"baud"`
}

// openPort opens the serial console.
var openPort = func(name string, baud int) (io.WriteCloser, error) {
	return serial.OpenPort(&serial.Config{Name: name, Baud: baud})
}

// Sink writes every log line to all configured outputs.
type Sink struct {
	mu      sync.Mutex
	writers []io.Writer
	closers []io.Closer
	line    *lineWriter
}

// New opens the outputs selected by opts. Without any output selected the
// sink writes to stderr.
func New(opts Options) (*Sink, error) {
	s := &Sink{}

	if opts.Stderr || (opts.File == "" && opts.Serial == "") {
		s.writers = append(s.writers, os.Stderr)
	}

	if opts.File != "" {
		f := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		s.writers = append(s.writers, f)
		s.closers = append(s.closers, f)
	}

	if opts.Serial != "" {
		baud := opts.Baud
		if baud == 0 {
			baud = DefaultBaud
		}
		port, err := openPort(opts.Serial, baud)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open serial console %s: %w", opts.Serial, err)
		}
		s.line = newLineWriter(port)
		s.writers = append(s.writers, s.line)
		s.closers = append(s.closers, port)
	}

	return s, nil
}

// Write sends p to every output. It fails when any output failed, after
// trying all of them.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result *multierror.Error
	for _, w := range s.writers {
		if _, err := w.Write(p); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return len(p), result.ErrorOrNil()
}

// Close flushes pending output and closes the file and the serial port.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result *multierror.Error
	if s.line != nil {
		if err := s.line.Flush(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	s.closers = nil
	return result.ErrorOrNil()
}

// lineWriter buffers a serial console and sends complete lines only,
// terminated with CR LF. A failed line is dropped so the console recovers
// once the port works again.
type lineWriter struct {
	dst io.Writer
	w   *bufio.Writer
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{dst: w, w: bufio.NewWriter(w)}
}

func (l *lineWriter) Write(p []byte) (int, error) {
	rest := p
	for len(rest) > 0 {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			if _, err := l.w.Write(rest); err != nil {
				return len(p) - len(rest), l.drop(err)
			}
			break
		}

		_, _ = l.w.Write(bytes.TrimSuffix(rest[:i], []byte{'\r'}))
		_, _ = l.w.WriteString("\r\n")
		if err := l.w.Flush(); err != nil {
			return len(p) - len(rest), l.drop(err)
		}
		rest = rest[i+1:]
	}
	return len(p), nil
}

// Flush sends a pending partial line.
func (l *lineWriter) Flush() error {
	if err := l.w.Flush(); err != nil {
		return l.drop(err)
	}
	return nil
}

func (l *lineWriter) drop(err error) error {
	l.w.Reset(l.dst)
	return err
}
