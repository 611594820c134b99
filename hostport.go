package xbee

import "time"

//go:generate go tool mockgen -source=hostport.go -destination=mock_hostport.go -package=xbee

// UARTReadTimeout is the default per-call budget for HostPort.Read.
const UARTReadTimeout = 1000 * time.Millisecond

// HostPort is the capability set the driver needs from the platform: a
// byte stream to the module, a millisecond clock and a delay. No threads,
// interrupts or DMA are assumed.
//
// Read must return promptly — within the port's read timeout — even when
// fewer than len(p) bytes arrive. Zero bytes within the budget is
// ErrReadTimeout. Millis must be monotonic; it is the only clock the
// driver consults for its own deadlines.
type HostPort interface {
	Init(baud uint32, device string) error
	Read(p []byte) (int, error)
	Write(p []byte) error
	Millis() uint32
	Delay(ms uint32)
	FlushRx()
}
