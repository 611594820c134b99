package xbee

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"i4.energy/across/xbee/at"
	"i4.energy/across/xbee/frame"
)

const (
	// defaultATTimeout is the window for AT command responses.
	defaultATTimeout = 5 * time.Second

	// configTimeout is the window for WR/AC, which persist configuration
	// and can take the module several seconds.
	configTimeout = 5 * time.Second

	// versionTimeout is the window for the short identity queries
	// (HV, DB, SH, SL).
	versionTimeout = 2 * time.Second

	// maxATResponse bounds AT response values the base device accepts.
	maxATResponse = 32

	// attachPollAttempts is how many 1 s polls of AI a blocking connect
	// performs before giving up.
	attachPollAttempts = 60
)

// variant is the dispatch surface a module family supplies. The base
// device resolves lifecycle operations through it.
type variant interface {
	init(baud uint32, device string) error
	connect(blocking bool) error
	disconnect() error
	connected() bool
	process()
	sendData(data any) (byte, error)
	hardReset()
	configure(cfg any) error
	handleRxPacket(f *frame.Frame)
	handleTxStatus(f *frame.Frame)
}

// Device carries the state common to all module families: the host port,
// the logger, the frame-ID counter and the variant dispatch. It is
// embedded by XBeeLR and XBeeCellular; callers do not construct it
// directly.
type Device struct {
	port      HostPort
	log       zerolog.Logger
	impl      variant
	frameID   uint8
	maxFrame  int
	atTimeout time.Duration
}

// Option adjusts a device at construction time.
type Option func(*Device)

// WithLogger routes the driver's diagnostics to l. The default logger
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Device) { d.log = l }
}

// WithMaxFrameSize bounds the frame data (type byte plus payload) of a
// single frame. The default is frame.DefaultMaxSize.
func WithMaxFrameSize(n int) Option {
	return func(d *Device) {
		if n > 0 {
			d.maxFrame = n
		}
	}
}

// WithATTimeout sets the response window for AT commands without a fixed
// window of their own: FirmwareVersion, SetAPIOptions, the LoRaWAN setters
// and DevEUI, and the AI query behind Connected. WR and AC always use
// configTimeout, and HV, DB, SH and SL always use versionTimeout.
func WithATTimeout(t time.Duration) Option {
	return func(d *Device) {
		if t > 0 {
			d.atTimeout = t
		}
	}
}

func newDevice(port HostPort, impl variant, opts []Option) *Device {
	d := &Device{
		port:      port,
		log:       zerolog.Nop(),
		impl:      impl,
		frameID:   1,
		maxFrame:  frame.DefaultMaxSize,
		atTimeout: defaultATTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// nextFrameID returns the frame ID for the next correlated frame. IDs
// count 1..255 and wrap back to 1; 0 is reserved to mean "no response
// requested".
func (d *Device) nextFrameID() uint8 {
	id := d.frameID
	d.frameID++
	if d.frameID == 0 {
		d.frameID = 1
	}
	return id
}

// Init resets the frame-ID counter and brings up the underlying port.
func (d *Device) Init(baud uint32, device string) error {
	d.frameID = 1
	return d.impl.init(baud, device)
}

// Connect attaches the module to its network. When blocking, it polls the
// attach indication until success or timeout; otherwise it only issues the
// attach commands and returns.
func (d *Device) Connect(blocking bool) error {
	return d.impl.connect(blocking)
}

// Disconnect detaches the module from its network.
func (d *Device) Disconnect() error {
	return d.impl.disconnect()
}

// Connected queries the module's attach indication.
func (d *Device) Connected() bool {
	return d.impl.connected()
}

// Process polls for one inbound frame and dispatches it. Call it
// continuously from the application loop to receive unsolicited frames.
func (d *Device) Process() {
	d.impl.process()
}

// SendData transmits a variant packet (*LRPacket or *CellularPacket) and
// returns its delivery status; 0 means success.
func (d *Device) SendData(data any) (byte, error) {
	return d.impl.sendData(data)
}

// Configure applies a variant configuration structure.
func (d *Device) Configure(cfg any) error {
	return d.impl.configure(cfg)
}

// SoftReset requests a module reboot (AT RE). It reflects only whether the
// command frame was accepted, not whether the module restarted.
func (d *Device) SoftReset() error {
	return d.SendATCommand(at.RE, nil)
}

// HardReset performs a platform-specific hard reset where the variant
// supports one.
func (d *Device) HardReset() {
	d.impl.hardReset()
}

// WriteConfig persists the current configuration to the module's
// non-volatile memory (AT WR).
func (d *Device) WriteConfig() error {
	if _, err := d.atCommand(at.WR, nil, configTimeout, maxATResponse); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyChanges applies pending configuration changes (AT AC).
func (d *Device) ApplyChanges() error {
	if _, err := d.atCommand(at.AC, nil, configTimeout, maxATResponse); err != nil {
		return fmt.Errorf("apply changes: %w", err)
	}
	return nil
}

// SetAPIOptions sets the module's API options (AT AO).
func (d *Device) SetAPIOptions(value byte) error {
	if _, err := d.atCommand(at.AO, []byte{value}, d.atTimeout, maxATResponse); err != nil {
		return fmt.Errorf("set API options: %w", err)
	}
	return nil
}

// FactoryReset restores factory defaults (AT FR, non-waiting).
func (d *Device) FactoryReset() error {
	return d.SendATCommand(at.FR, nil)
}

// ExitCommandMode leaves legacy "+++" command mode (AT CN, non-waiting).
func (d *Device) ExitCommandMode() error {
	return d.SendATCommand(at.CN, nil)
}

// SetAPIEnable selects the UART mode (AT AP): 0 transparent, 1 API,
// 2 API-escaped.
func (d *Device) SetAPIEnable(mode byte) error {
	return d.SendATCommand(at.AP, []byte{mode})
}

// SetBaudRate changes the UART baud rate (AT BD). rateCode is Digi's rate
// code, e.g. 3 for 9600 and 7 for 115200.
func (d *Device) SetBaudRate(rateCode byte) error {
	return d.SendATCommand(at.BD, []byte{rateCode})
}

// FirmwareVersion reads the module firmware version (AT VR), assembled
// MSB-first.
func (d *Device) FirmwareVersion() (uint32, error) {
	resp, err := d.atCommand(at.VR, nil, d.atTimeout, 4)
	if err != nil {
		return 0, fmt.Errorf("firmware version: %w", err)
	}
	if len(resp) != 4 {
		return 0, fmt.Errorf("firmware version: unexpected %d-byte response", len(resp))
	}
	return binary.BigEndian.Uint32(resp), nil
}

// HardwareVersion reads the module hardware version (AT HV).
func (d *Device) HardwareVersion() (uint16, error) {
	resp, err := d.atCommand(at.HV, nil, versionTimeout, 2)
	if err != nil {
		return 0, fmt.Errorf("hardware version: %w", err)
	}
	if len(resp) != 2 {
		return 0, fmt.Errorf("hardware version: unexpected %d-byte response", len(resp))
	}
	return binary.BigEndian.Uint16(resp), nil
}

// LastRSSI reads the last-hop RSSI (AT DB) as signed dBm. The module
// reports a positive offset; the value returned here is negated.
func (d *Device) LastRSSI() (int8, error) {
	resp, err := d.atCommand(at.DB, nil, versionTimeout, 1)
	if err != nil {
		return 0, fmt.Errorf("last RSSI: %w", err)
	}
	if len(resp) != 1 {
		return 0, fmt.Errorf("last RSSI: unexpected %d-byte response", len(resp))
	}
	return -int8(resp[0]), nil
}

// SerialNumber reads the 64-bit factory serial number (AT SH + AT SL).
func (d *Device) SerialNumber() (uint64, error) {
	hi, err := d.atCommand(at.SH, nil, versionTimeout, 4)
	if err != nil {
		return 0, fmt.Errorf("serial number high: %w", err)
	}
	lo, err := d.atCommand(at.SL, nil, versionTimeout, 4)
	if err != nil {
		return 0, fmt.Errorf("serial number low: %w", err)
	}
	if len(hi) != 4 || len(lo) != 4 {
		return 0, fmt.Errorf("serial number: unexpected response lengths %d/%d", len(hi), len(lo))
	}
	return uint64(binary.BigEndian.Uint32(hi))<<32 | uint64(binary.BigEndian.Uint32(lo)), nil
}
