package transport

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// Serial is a Transport backed by a local serial/USB port: open at a
// fixed baud rate, write the raw command bytes, and poll-read until the
// prompt byte appears.
type Serial struct {
	path       string
	baud       int
	port       *serial.Port
	state      *stateBroadcaster
	pollPeriod time.Duration
}

// NewSerial creates a serial transport for the device at path (e.g.
// "/dev/ttyUSB0" or "COM3") at the given baud rate. ELM327 clones default to
// 38400; pass 0 to use that default.
func NewSerial(path string, baud int) *Serial {
	if baud == 0 {
		baud = 38400
	}
	return &Serial{
		path:       path,
		baud:       baud,
		state:      newStateBroadcaster(),
		pollPeriod: 10 * time.Millisecond,
	}
}

func (s *Serial) State() <-chan State {
	return s.state.channel()
}

func (s *Serial) Connect(ctx context.Context) error {
	s.state.set(Connecting)

	cfg := &serial.Config{
		Name:        s.path,
		Baud:        s.baud,
		ReadTimeout: time.Second,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	}

	port, err := serial.OpenPort(cfg)
	if err != nil {
		s.state.set(Disconnected)
		return fmt.Errorf("elm327/transport: open serial port %s: %w", s.path, err)
	}

	if err := port.Flush(); err != nil {
		port.Close()
		s.state.set(Disconnected)
		return fmt.Errorf("elm327/transport: flush serial port %s: %w", s.path, err)
	}

	s.port = port
	s.state.set(ConnectedToAdapter)

	return nil
}

func (s *Serial) Write(ctx context.Context, data []byte) error {
	if s.port == nil {
		return fmt.Errorf("elm327/transport: serial write before connect")
	}

	_, err := s.port.Write(data)
	if err != nil {
		return fmt.Errorf("elm327/transport: serial write: %w", err)
	}

	return nil
}

// ReadUntil polls the port in small chunks on a 10ms ticker until delim is
// seen or ctx is cancelled.
func (s *Serial) ReadUntil(ctx context.Context, delim byte) ([]byte, error) {
	if s.port == nil {
		return nil, fmt.Errorf("elm327/transport: serial read before connect")
	}

	var buffer bytes.Buffer
	chunk := make([]byte, 128)
	ticker := time.NewTicker(s.pollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			n, err := s.port.Read(chunk)
			if err != nil {
				return nil, fmt.Errorf("elm327/transport: serial read: %w", err)
			}
			if n == 0 {
				continue
			}

			buffer.Write(chunk[:n])

			if chunk[n-1] == delim {
				return append([]byte{}, buffer.Bytes()...), nil
			}
		}
	}
}

func (s *Serial) Disconnect() error {
	if s.port == nil {
		return nil
	}

	err := s.port.Close()
	s.port = nil
	s.state.set(Disconnected)

	return err
}
