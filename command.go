package xbee

import (
	"fmt"
	"time"

	"i4.energy/across/xbee/at"
	"i4.energy/across/xbee/frame"
)

// SendATCommand issues an AT command without waiting for the response.
// Use it for commands whose response the caller does not need, such as RE.
func (d *Device) SendATCommand(cmd at.Command, param []byte) error {
	_, err := d.sendAT(cmd, param)
	return err
}

// sendAT frames and writes an AT command, returning the frame ID it was
// sent with.
func (d *Device) sendAT(cmd at.Command, param []byte) (uint8, error) {
	if !cmd.Valid() {
		return 0, ErrInvalidCommand
	}

	code := cmd.Code()
	id := d.nextFrameID()

	data := make([]byte, 0, 3+len(param))
	data = append(data, id, code[0], code[1])
	data = append(data, param...)

	d.log.Debug().Str("cmd", code).Uint8("frame_id", id).Int("param_len", len(param)).Msg("sending AT command")

	if err := d.sendFrame(frame.TypeATCommand, data); err != nil {
		return 0, fmt.Errorf("AT %s: %w", code, err)
	}
	return id, nil
}

// atCommand issues an AT command and blocks for its response. Unrelated
// frames received while waiting — including AT responses correlated to a
// different frame ID — are routed to their handlers, never dropped. max
// bounds the response value; a longer value fails with ErrBufferTooSmall
// and nothing is returned.
func (d *Device) atCommand(cmd at.Command, param []byte, timeout time.Duration, max int) ([]byte, error) {
	id, err := d.sendAT(cmd, param)
	if err != nil {
		return nil, err
	}

	budget := uint32(timeout / time.Millisecond)
	start := d.port.Millis()

	for {
		f, err := d.receiveFrame()
		if err == nil {
			if f.Type == frame.TypeATResponse && len(f.Data) >= 4 && f.Data[0] == id {
				if f.Data[3] != 0 {
					d.log.Warn().Str("cmd", cmd.Code()).Uint8("status", f.Data[3]).Msg("AT command error")
					return nil, ErrATCommand
				}
				value := f.Data[4:]
				if len(value) > max {
					return nil, ErrBufferTooSmall
				}
				out := make([]byte, len(value))
				copy(out, value)
				return out, nil
			}
			d.dispatch(f)
		}

		if d.port.Millis()-start >= budget {
			d.log.Warn().Str("cmd", cmd.Code()).Msg("timeout waiting for AT response")
			return nil, ErrResponseTimeout
		}
		d.port.Delay(1)
	}
}

// waitFrame pumps inbound frames until one of type t satisfies match, or
// the timeout elapses. Frames that do not match are routed to their
// handlers in arrival order.
func (d *Device) waitFrame(t frame.Type, timeout time.Duration, match func(f *frame.Frame) bool) (*frame.Frame, error) {
	budget := uint32(timeout / time.Millisecond)
	start := d.port.Millis()

	for {
		f, err := d.receiveFrame()
		if err == nil {
			if f.Type == t && match(f) {
				return f, nil
			}
			d.dispatch(f)
		}

		if d.port.Millis()-start >= budget {
			return nil, ErrResponseTimeout
		}
		d.port.Delay(1)
	}
}
