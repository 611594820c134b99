package xbee

import (
	"encoding/binary"
	"fmt"

	"i4.energy/across/xbee/frame"
)

// sendFrame encodes and writes one API frame.
func (d *Device) sendFrame(t frame.Type, data []byte) error {
	raw, err := frame.Encode(t, data, d.maxFrame)
	if err != nil {
		return err
	}

	d.log.Debug().Str("type", t.String()).Hex("frame", raw).Msg("sending frame")

	if err := d.port.Write(raw); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// receiveFrame reads one API frame from the port. Each call consumes at
// most one frame; a garbage byte consumes exactly that byte and returns
// ErrInvalidStartDelimiter, so the stream resynchronizes on the next 0x7E.
// The underlying port read already enforces a per-call timeout; the states
// here do not re-time beyond summing those.
func (d *Device) receiveFrame() (*frame.Frame, error) {
	var delim [1]byte
	n, err := d.port.Read(delim[:])
	if err != nil {
		return nil, fmt.Errorf("read start delimiter: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("read start delimiter: %w", ErrReadTimeout)
	}
	if delim[0] != frame.StartDelimiter {
		d.log.Debug().Uint8("byte", delim[0]).Msg("discarding byte outside frame")
		return nil, ErrInvalidStartDelimiter
	}

	var lenBuf [2]byte
	n, err = d.port.Read(lenBuf[:])
	if err != nil || n != 2 {
		return nil, ErrTimeoutLength
	}
	length := int(binary.BigEndian.Uint16(lenBuf[:]))
	if length > d.maxFrame {
		return nil, ErrLengthExceedsBuffer
	}
	if length == 0 {
		return nil, ErrTimeoutData
	}

	body := make([]byte, length)
	n, err = d.port.Read(body)
	if err != nil || n != length {
		return nil, ErrTimeoutData
	}

	var cs [1]byte
	n, err = d.port.Read(cs[:])
	if err != nil || n != 1 {
		return nil, ErrTimeoutChecksum
	}

	sum := cs[0]
	for _, b := range body {
		sum += b
	}
	if sum != 0xFF {
		return nil, frame.ErrInvalidChecksum
	}

	f := &frame.Frame{Type: frame.Type(body[0]), Data: body[1:], Checksum: cs[0]}
	d.log.Debug().Str("type", f.Type.String()).Int("length", f.Length()).Msg("received frame")
	return f, nil
}
