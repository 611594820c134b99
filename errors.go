package xbee

import "errors"

var (
	// ErrReadTimeout is returned by a HostPort when no bytes arrived
	// within the port's read timeout.
	ErrReadTimeout = errors.New("xbee: uart read timed out")

	// ErrReadOverrun is returned by a HostPort when the receiver lost
	// bytes to an overrun.
	ErrReadOverrun = errors.New("xbee: uart receive overrun")

	// ErrReadFailed is returned by a HostPort for read failures that are
	// neither a timeout nor an overrun.
	ErrReadFailed = errors.New("xbee: uart read failed")

	// ErrInvalidStartDelimiter is returned when the first byte of a
	// frame is not 0x7E. The stream resynchronizes on the next read.
	ErrInvalidStartDelimiter = errors.New("xbee: invalid start delimiter")

	// ErrTimeoutLength is returned when the two length bytes did not
	// arrive in time.
	ErrTimeoutLength = errors.New("xbee: timed out reading frame length")

	// ErrTimeoutData is returned when the frame data did not arrive in
	// time.
	ErrTimeoutData = errors.New("xbee: timed out reading frame data")

	// ErrTimeoutChecksum is returned when the checksum byte did not
	// arrive in time.
	ErrTimeoutChecksum = errors.New("xbee: timed out reading frame checksum")

	// ErrLengthExceedsBuffer is returned when a frame declares more data
	// than the device's maximum frame size.
	ErrLengthExceedsBuffer = errors.New("xbee: frame length exceeds buffer")

	// ErrInvalidCommand is returned when an AT command identifier has no
	// wire code.
	ErrInvalidCommand = errors.New("xbee: invalid AT command")

	// ErrATCommand is returned when the module reports a nonzero AT
	// command status.
	ErrATCommand = errors.New("xbee: AT command rejected by module")

	// ErrResponseTimeout is returned when no matching response arrived
	// within the caller's window.
	ErrResponseTimeout = errors.New("xbee: timed out waiting for response")

	// ErrBufferTooSmall is returned when an AT response value exceeds
	// the caller's buffer; nothing is copied.
	ErrBufferTooSmall = errors.New("xbee: response exceeds buffer")

	// ErrAttachTimeout is returned when the module did not attach to the
	// network within the polling budget.
	ErrAttachTimeout = errors.New("xbee: network attach timed out")

	// ErrPayloadTooLarge is returned when a socket payload exceeds the
	// 120-byte module limit.
	ErrPayloadTooLarge = errors.New("xbee: socket payload exceeds 120 bytes")

	// ErrSocketFailed is returned when the module reports a failed
	// socket operation.
	ErrSocketFailed = errors.New("xbee: socket operation failed")

	// ErrInvalidHex is returned when ASCII-hex input has the wrong
	// length or contains non-hex characters.
	ErrInvalidHex = errors.New("xbee: invalid hex input")

	// ErrInvalidClass is returned when a LoRaWAN device class is not
	// 'A', 'B' or 'C'.
	ErrInvalidClass = errors.New("xbee: device class must be 'A', 'B' or 'C'")

	// ErrNoSerialDevice is returned when SerialPort.Init is called with
	// an empty device name.
	ErrNoSerialDevice = errors.New("xbee: serial device name is required")

	// ErrPortNotOpen is returned when a SerialPort is used before a
	// successful Init.
	ErrPortNotOpen = errors.New("xbee: serial port not open")
)
