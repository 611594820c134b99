package xbee

import (
	"encoding/binary"
	"fmt"

	"i4.energy/across/xbee/at"
	"i4.energy/across/xbee/frame"
)

// lrSendTimeoutMS bounds the wait for a TX status after an uplink. It
// covers both LoRaWAN receive windows with margin.
const lrSendTimeoutMS = 10000

// LRPacket is a LoRaWAN uplink or downlink. The driver borrows Payload
// only for the duration of the call that receives it.
type LRPacket struct {
	Payload []byte
	Port    uint8
	Ack     bool

	// Filled by SendPacket
	FrameID uint8
	Status  uint8

	// Filled on receive
	RSSI    int8
	SNR     int8
	Counter uint32
}

// LRCallbacks are the application hooks of a LoRaWAN device. Any entry may
// be nil.
type LRCallbacks struct {
	OnReceive    func(*XBeeLR, *LRPacket)
	OnSend       func(*XBeeLR, *LRPacket)
	OnConnect    func(*XBeeLR)
	OnDisconnect func(*XBeeLR)
}

// XBeeLR drives a Digi XBee LR (LoRaWAN) module.
type XBeeLR struct {
	*Device
	cb LRCallbacks

	// TX-status bookkeeping for the blocking send
	txFrameID      uint8
	txDone         bool
	deliveryStatus uint8
}

// NewLR creates a LoRaWAN device on the given host port. The callback
// table is borrowed for the device's lifetime.
func NewLR(port HostPort, cb LRCallbacks, opts ...Option) *XBeeLR {
	x := &XBeeLR{cb: cb}
	x.Device = newDevice(port, x, opts)
	return x
}

func (x *XBeeLR) init(baud uint32, device string) error {
	return x.port.Init(baud, device)
}

// connect sends a join request and, when blocking, polls the association
// indication until the module reports joined.
func (x *XBeeLR) connect(blocking bool) error {
	if err := x.SendATCommand(at.JN, nil); err != nil {
		return fmt.Errorf("join: %w", err)
	}
	if !blocking {
		return nil
	}

	x.log.Info().Msg("waiting for join")
	for i := 0; i < attachPollAttempts; i++ {
		if x.connected() {
			x.log.Info().Msg("joined network")
			if x.cb.OnConnect != nil {
				x.cb.OnConnect(x)
			}
			return nil
		}
		x.port.Delay(1000)
	}
	return ErrAttachTimeout
}

// disconnect reboots the module, which detaches it until the next join.
// LoRaWAN itself has no leave operation.
func (x *XBeeLR) disconnect() error {
	if err := x.SoftReset(); err != nil {
		return err
	}
	if x.cb.OnDisconnect != nil {
		x.cb.OnDisconnect(x)
	}
	return nil
}

func (x *XBeeLR) connected() bool {
	resp, err := x.atCommand(at.AI, nil, x.atTimeout, maxATResponse)
	return err == nil && len(resp) >= 1 && resp[0] == 1
}

func (x *XBeeLR) process() {
	if f, err := x.receiveFrame(); err == nil {
		x.dispatch(f)
	}
}

func (x *XBeeLR) sendData(data any) (byte, error) {
	pkt, ok := data.(*LRPacket)
	if !ok {
		return 0xFF, fmt.Errorf("xbee: SendData expects *LRPacket, got %T", data)
	}
	return x.SendPacket(pkt)
}

func (x *XBeeLR) hardReset() {
	// Reset lines are platform glue; nothing to do at this layer.
}

func (x *XBeeLR) configure(cfg any) error {
	return fmt.Errorf("xbee: LR module takes no configuration structure, got %T", cfg)
}

// SendPacket transmits an uplink and blocks until the module reports its
// delivery status or the TX-status window elapses. The returned status is
// 0 on successful delivery; other values encode module failure reasons.
func (x *XBeeLR) SendPacket(p *LRPacket) (byte, error) {
	id := x.nextFrameID()

	var ack byte
	if p.Ack {
		ack = 1
	}
	data := make([]byte, 0, 3+len(p.Payload))
	data = append(data, id, p.Port, ack)
	data = append(data, p.Payload...)

	if err := x.sendFrame(frame.TypeTXRequest, data); err != nil {
		return 0xFF, err
	}
	p.FrameID = id

	x.txFrameID = id
	x.txDone = false
	x.deliveryStatus = 0

	start := x.port.Millis()
	for x.port.Millis()-start < lrSendTimeoutMS {
		if f, err := x.receiveFrame(); err == nil {
			x.dispatch(f)
		}
		if x.txDone {
			p.Status = x.deliveryStatus
			if x.cb.OnSend != nil {
				x.cb.OnSend(x, p)
			}
			return x.deliveryStatus, nil
		}
		x.port.Delay(1)
	}
	return 0xFF, ErrResponseTimeout
}

// handleTxStatus records the delivery status of the in-flight uplink.
func (x *XBeeLR) handleTxStatus(f *frame.Frame) {
	if len(f.Data) < 2 {
		x.log.Debug().Int("length", f.Length()).Msg("short TX status")
		return
	}
	if f.Data[0] != x.txFrameID {
		x.log.Debug().Uint8("frame_id", f.Data[0]).Msg("TX status for unknown frame")
		return
	}
	x.deliveryStatus = f.Data[1]
	x.txDone = true
}

// handleRxPacket deserializes a downlink (0xA0/0xA1) and hands it to the
// receive callback. Layout: port, rssi, snr, 32-bit counter, payload.
func (x *XBeeLR) handleRxPacket(f *frame.Frame) {
	if f.Type != frame.TypeLRRXPacket && f.Type != frame.TypeLRExplicitRXPacket {
		x.log.Debug().Str("type", f.Type.String()).Msg("unexpected frame for LR module")
		return
	}
	if len(f.Data) < 7 {
		x.log.Debug().Int("length", f.Length()).Msg("dropping short LR RX frame")
		return
	}

	pkt := &LRPacket{
		Port:    f.Data[0],
		RSSI:    -int8(f.Data[1]),
		SNR:     int8(f.Data[2]),
		Counter: binary.BigEndian.Uint32(f.Data[3:7]),
		Payload: f.Data[7:],
	}
	x.log.Debug().Uint8("port", pkt.Port).Int("payload_len", len(pkt.Payload)).Msg("downlink received")

	if x.cb.OnReceive != nil {
		x.cb.OnReceive(x, pkt)
	}
}

// SetAppEUI programs the OTAA application EUI from 16 hex characters.
func (x *XBeeLR) SetAppEUI(eui string) error {
	b, err := parseHex(eui, 8)
	if err != nil {
		return err
	}
	if _, err := x.atCommand(at.AE, b, x.atTimeout, maxATResponse); err != nil {
		return fmt.Errorf("set AppEUI: %w", err)
	}
	return nil
}

// SetAppKey programs the OTAA application key from 32 hex characters.
func (x *XBeeLR) SetAppKey(key string) error {
	b, err := parseHex(key, 16)
	if err != nil {
		return err
	}
	if _, err := x.atCommand(at.AK, b, x.atTimeout, maxATResponse); err != nil {
		return fmt.Errorf("set AppKey: %w", err)
	}
	return nil
}

// SetNwkKey programs the OTAA network key from 32 hex characters.
func (x *XBeeLR) SetNwkKey(key string) error {
	b, err := parseHex(key, 16)
	if err != nil {
		return err
	}
	if _, err := x.atCommand(at.NK, b, x.atTimeout, maxATResponse); err != nil {
		return fmt.Errorf("set NwkKey: %w", err)
	}
	return nil
}

// DevEUI reads the factory device EUI as 16 ASCII hex characters.
func (x *XBeeLR) DevEUI() (string, error) {
	resp, err := x.atCommand(at.DE, nil, x.atTimeout, 17)
	if err != nil {
		return "", fmt.Errorf("read DevEUI: %w", err)
	}
	return string(resp), nil
}

// SetClass selects the LoRaWAN device class: 'A', 'B' or 'C'.
func (x *XBeeLR) SetClass(class byte) error {
	if class != 'A' && class != 'B' && class != 'C' {
		return ErrInvalidClass
	}
	if _, err := x.atCommand(at.LC, []byte{class}, x.atTimeout, maxATResponse); err != nil {
		return fmt.Errorf("set class: %w", err)
	}
	return nil
}

// SetRegion selects the regional channel plan by Digi's region code.
func (x *XBeeLR) SetRegion(region byte) error {
	if _, err := x.atCommand(at.LR, []byte{region}, x.atTimeout, maxATResponse); err != nil {
		return fmt.Errorf("set region: %w", err)
	}
	return nil
}

// SetJoinRX1Delay sets the join RX1 delay in milliseconds.
func (x *XBeeLR) SetJoinRX1Delay(ms uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], ms)
	if _, err := x.atCommand(at.J1, b[:], x.atTimeout, maxATResponse); err != nil {
		return fmt.Errorf("set join RX1 delay: %w", err)
	}
	return nil
}

// SetJoinRX2Delay sets the join RX2 delay in milliseconds.
func (x *XBeeLR) SetJoinRX2Delay(ms uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], ms)
	if _, err := x.atCommand(at.J2, b[:], x.atTimeout, maxATResponse); err != nil {
		return fmt.Errorf("set join RX2 delay: %w", err)
	}
	return nil
}

// SetRX2Frequency sets the RX2 window frequency in Hz.
func (x *XBeeLR) SetRX2Frequency(hz uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], hz)
	if _, err := x.atCommand(at.XF, b[:], x.atTimeout, maxATResponse); err != nil {
		return fmt.Errorf("set RX2 frequency: %w", err)
	}
	return nil
}
