package xbee

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialPort implements HostPort on top of a physical serial device via
// go.bug.st/serial. The zero value is usable; Init opens the device.
type SerialPort struct {
	// Mode overrides the serial parameters. When nil, Init uses 8N1 at
	// the requested baud rate.
	Mode *serial.Mode

	// ReadTimeout is the per-Read budget. Zero means UARTReadTimeout.
	ReadTimeout time.Duration

	port  serial.Port
	epoch time.Time
}

// Init opens the serial device and applies the read timeout.
func (s *SerialPort) Init(baud uint32, device string) error {
	if device == "" {
		return ErrNoSerialDevice
	}

	mode := s.Mode
	if mode == nil {
		mode = &serial.Mode{
			BaudRate: int(baud),
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return fmt.Errorf("open %s: %w", device, err)
	}

	if s.ReadTimeout <= 0 {
		s.ReadTimeout = UARTReadTimeout
	}
	if err := port.SetReadTimeout(s.ReadTimeout); err != nil {
		port.Close()
		return fmt.Errorf("set read timeout: %w", err)
	}

	s.port = port
	s.epoch = time.Now()
	return nil
}

// Read fills p with bytes arriving within the read timeout. It returns the
// bytes read so far when the deadline passes; zero bytes within the budget
// is ErrReadTimeout.
func (s *SerialPort) Read(p []byte) (int, error) {
	if s.port == nil {
		return 0, ErrPortNotOpen
	}

	deadline := time.Now().Add(s.ReadTimeout)
	total := 0
	for total < len(p) {
		n, err := s.port.Read(p[total:])
		if err != nil {
			return total, fmt.Errorf("%w: %v", ErrReadFailed, err)
		}
		total += n
		// The port read returns zero bytes when its own timeout expires.
		if n == 0 || !time.Now().Before(deadline) {
			break
		}
	}
	if total == 0 {
		return 0, ErrReadTimeout
	}
	return total, nil
}

func (s *SerialPort) Write(p []byte) error {
	if s.port == nil {
		return ErrPortNotOpen
	}
	n, err := s.port.Write(p)
	if err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("serial write: short write (%d of %d bytes)", n, len(p))
	}
	return nil
}

// Millis returns monotonic milliseconds since the port was opened.
func (s *SerialPort) Millis() uint32 {
	return uint32(time.Since(s.epoch).Milliseconds())
}

func (s *SerialPort) Delay(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (s *SerialPort) FlushRx() {
	if s.port != nil {
		s.port.ResetInputBuffer()
	}
}

// Close releases the serial device. The port must be re-Inited before
// further use.
func (s *SerialPort) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}
