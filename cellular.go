package xbee

import (
	"encoding/binary"
	"fmt"

	"i4.energy/across/xbee/at"
	"i4.energy/across/xbee/frame"
)

// Protocol selects the transport of a cellular socket or stateless TX.
type Protocol byte

const (
	ProtocolUDP Protocol = 0x00
	ProtocolTCP Protocol = 0x01
	ProtocolSSL Protocol = 0x04

	// ProtocolUnknown marks received packets, where the protocol is not
	// encoded in the frame.
	ProtocolUnknown Protocol = 0xFF
)

// CellularConfig is the caller's network configuration. Empty fields are
// not pushed to the module.
type CellularConfig struct {
	APN     string
	SIMPin  string
	Carrier string
}

// CellularPacket is an IPv4 datagram sent or received over the cellular
// interface. The driver borrows Payload only for the duration of the call
// that receives it.
type CellularPacket struct {
	Protocol Protocol
	Port     uint16
	IP       [4]byte
	Payload  []byte

	// Filled by SendPacket
	FrameID uint8

	// Filled on receive
	SocketID   uint8
	RemotePort uint16
	Status     uint8
}

// CellularCallbacks are the application hooks of a cellular device. Any
// entry may be nil.
type CellularCallbacks struct {
	OnReceive    func(*XBeeCellular, *CellularPacket)
	OnSend       func(*XBeeCellular, *CellularPacket)
	OnConnect    func(*XBeeCellular)
	OnDisconnect func(*XBeeCellular)
}

// XBeeCellular drives a Digi XBee 3 Cellular LTE/NB-IoT modem.
type XBeeCellular struct {
	*Device
	cb      CellularCallbacks
	config  CellularConfig
	sockets map[uint8]SocketState
}

// NewCellular creates a cellular device on the given host port. The
// callback table is borrowed for the device's lifetime.
func NewCellular(port HostPort, cb CellularCallbacks, opts ...Option) *XBeeCellular {
	x := &XBeeCellular{cb: cb, sockets: make(map[uint8]SocketState)}
	x.Device = newDevice(port, x, opts)
	return x
}

func (x *XBeeCellular) init(baud uint32, device string) error {
	return x.port.Init(baud, device)
}

// configure copies the caller's configuration into the device. It is
// consulted on the next connect.
func (x *XBeeCellular) configure(cfg any) error {
	switch c := cfg.(type) {
	case CellularConfig:
		x.config = c
	case *CellularConfig:
		x.config = *c
	default:
		return fmt.Errorf("xbee: cellular Configure expects CellularConfig, got %T", cfg)
	}
	return nil
}

// connect pushes the SIM PIN, APN and carrier profile, then when blocking
// polls the attach indication until the modem registers.
func (x *XBeeCellular) connect(blocking bool) error {
	x.log.Info().Msg("applying cellular config and attempting attach")

	if x.config.SIMPin != "" {
		if err := x.SendATCommand(at.PN, []byte(x.config.SIMPin)); err != nil {
			return fmt.Errorf("set SIM PIN: %w", err)
		}
	}
	if x.config.APN != "" {
		x.log.Info().Str("apn", x.config.APN).Msg("setting APN")
		if err := x.SendATCommand(at.AN, []byte(x.config.APN)); err != nil {
			return fmt.Errorf("set APN: %w", err)
		}
	}
	if x.config.Carrier != "" {
		if err := x.SendATCommand(at.CP, []byte(x.config.Carrier)); err != nil {
			return fmt.Errorf("set carrier profile: %w", err)
		}
	}

	if !blocking {
		return nil
	}

	x.log.Info().Msg("waiting for network attach")
	for i := 0; i < attachPollAttempts; i++ {
		if x.connected() {
			x.log.Info().Msg("attached to cellular network")
			if x.cb.OnConnect != nil {
				x.cb.OnConnect(x)
			}
			return nil
		}
		x.port.Delay(1000)
	}
	return ErrAttachTimeout
}

// disconnect requests a graceful network shutdown.
func (x *XBeeCellular) disconnect() error {
	if err := x.SendATCommand(at.SD, nil); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if x.cb.OnDisconnect != nil {
		x.cb.OnDisconnect(x)
	}
	return nil
}

func (x *XBeeCellular) connected() bool {
	resp, err := x.atCommand(at.AI, nil, x.atTimeout, maxATResponse)
	return err == nil && len(resp) >= 1 && resp[0] == 0
}

func (x *XBeeCellular) process() {
	if f, err := x.receiveFrame(); err == nil {
		x.dispatch(f)
	}
}

func (x *XBeeCellular) sendData(data any) (byte, error) {
	pkt, ok := data.(*CellularPacket)
	if !ok {
		return 0xFF, fmt.Errorf("xbee: SendData expects *CellularPacket, got %T", data)
	}
	return x.SendPacket(pkt)
}

func (x *XBeeCellular) hardReset() {
	// Reset lines are platform glue; nothing to do at this layer.
}

// SendPacket transmits a stateless IPv4 datagram. The returned status is 0
// when the frame was accepted for transmission.
func (x *XBeeCellular) SendPacket(p *CellularPacket) (byte, error) {
	id := x.nextFrameID()

	data := make([]byte, 0, 8+len(p.Payload))
	data = append(data, id, byte(p.Protocol))
	data = binary.BigEndian.AppendUint16(data, p.Port)
	data = append(data, p.IP[:]...)
	data = append(data, p.Payload...)

	if err := x.sendFrame(frame.TypeTXRequest, data); err != nil {
		return 0xFF, err
	}
	p.FrameID = id
	if x.cb.OnSend != nil {
		x.cb.OnSend(x, p)
	}
	return 0, nil
}

// handleTxStatus logs and drops transmit status frames; the cellular
// module family does not correlate them.
func (x *XBeeCellular) handleTxStatus(f *frame.Frame) {
	if len(f.Data) >= 2 {
		x.log.Debug().Uint8("frame_id", f.Data[0]).Uint8("status", f.Data[1]).Msg("unhandled TX status")
	}
}

// handleRxPacket parses connected-socket RX (0xCD), receive-from (0xCE)
// and socket status (0xCF) frames.
func (x *XBeeCellular) handleRxPacket(f *frame.Frame) {
	switch f.Type {
	case frame.TypeSocketStatus:
		x.handleSocketStatus(f)
		return
	case frame.TypeSocketRX, frame.TypeSocketRXFrom:
	default:
		x.log.Debug().Str("type", f.Type.String()).Msg("unexpected frame for cellular module")
		return
	}

	if (f.Type == frame.TypeSocketRX && len(f.Data) < 3) ||
		(f.Type == frame.TypeSocketRXFrom && len(f.Data) < 9) {
		x.log.Debug().Str("type", f.Type.String()).Int("length", f.Length()).Msg("dropping short socket RX frame")
		return
	}

	pkt := &CellularPacket{
		Protocol: ProtocolUnknown,
		FrameID:  f.Data[0],
		SocketID: f.Data[1],
		Status:   f.Data[2],
	}

	if f.Type == frame.TypeSocketRX {
		pkt.Payload = f.Data[3:]
	} else {
		copy(pkt.IP[:], f.Data[3:7])
		pkt.RemotePort = binary.BigEndian.Uint16(f.Data[7:9])
		pkt.Port = pkt.RemotePort
		pkt.Payload = f.Data[9:]
	}

	x.log.Debug().
		Uint8("socket_id", pkt.SocketID).
		Uint8("status", pkt.Status).
		Int("payload_len", len(pkt.Payload)).
		Msg("socket data received")

	if x.cb.OnReceive != nil {
		x.cb.OnReceive(x, pkt)
	}
}

// handleSocketStatus tracks unsolicited socket lifecycle changes. The
// module emits two payload shapes: [socketID, status] for establishment
// status and [frameID, socketID, status] for close confirmations. Status 0
// means connected; anything else means closed.
func (x *XBeeCellular) handleSocketStatus(f *frame.Frame) {
	var id, status uint8
	switch len(f.Data) {
	case 2:
		id, status = f.Data[0], f.Data[1]
	case 3:
		id, status = f.Data[1], f.Data[2]
	default:
		x.log.Debug().Int("length", f.Length()).Msg("socket status with unexpected length")
		return
	}

	if status == 0 {
		x.sockets[id] = SocketConnected
	} else {
		x.sockets[id] = SocketClosed
	}
	x.log.Debug().Uint8("socket_id", id).Uint8("status", status).Msg("socket status")
}
