package xbee

import "i4.energy/across/xbee/frame"

// dispatch routes a received frame to its handler. AT responses arriving
// here were not claimed by a correlator and are only logged; RX, TX-status
// and socket-status frames go to the variant.
func (d *Device) dispatch(f *frame.Frame) {
	switch f.Type {
	case frame.TypeATResponse:
		d.logATResponse(f)

	case frame.TypeModemStatus:
		if len(f.Data) > 0 {
			d.log.Info().Uint8("status", f.Data[0]).Msg("modem status")
		}

	case frame.TypeTXStatus:
		d.impl.handleTxStatus(f)

	case frame.TypeLRRXPacket, frame.TypeLRExplicitRXPacket,
		frame.TypeSocketRX, frame.TypeSocketRXFrom, frame.TypeSocketStatus:
		d.impl.handleRxPacket(f)

	default:
		d.log.Debug().Str("type", f.Type.String()).Msg("unknown frame type")
	}
}

func (d *Device) logATResponse(f *frame.Frame) {
	if len(f.Data) < 4 {
		d.log.Debug().Int("length", f.Length()).Msg("short AT response")
		return
	}
	ev := d.log.Debug().
		Uint8("frame_id", f.Data[0]).
		Str("cmd", string(f.Data[1:3])).
		Uint8("status", f.Data[3])
	if len(f.Data) > 4 {
		ev = ev.Hex("value", f.Data[4:])
	}
	ev.Msg("AT response")
}
