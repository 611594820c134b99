package xbee

import (
	"encoding/binary"
	"fmt"
	"time"

	"i4.energy/across/xbee/frame"
)

const (
	// socketResponseTimeout bounds the wait for create/connect/bind/close
	// responses.
	socketResponseTimeout = 3 * time.Second

	// socketConnectTimeout bounds the wait for the final socket status
	// after a connect response; network establishment can take tens of
	// seconds.
	socketConnectTimeout = 20 * time.Second

	// maxSocketPayload is the module's per-frame socket payload limit.
	maxSocketPayload = 120
)

// SocketState is the lifecycle state of an extended socket, tracked from
// the operations issued and the status frames received.
type SocketState int

const (
	SocketClosed SocketState = iota
	SocketCreated
	SocketBound
	SocketConnecting
	SocketConnected
	SocketClosing
)

var socketStateNames = map[SocketState]string{
	SocketClosed:     "closed",
	SocketCreated:    "created",
	SocketBound:      "bound",
	SocketConnecting: "connecting",
	SocketConnected:  "connected",
	SocketClosing:    "closing",
}

func (s SocketState) String() string {
	if name, ok := socketStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SocketState(%d)", int(s))
}

// SocketOption identifies a module socket option.
type SocketOption byte

const (
	SocketOptionBindPort  SocketOption = 0x00
	SocketOptionListen    SocketOption = 0x01
	SocketOptionKeepAlive SocketOption = 0x02
)

// SocketStatus returns the tracked state of a socket ID. Unknown IDs
// report SocketClosed.
func (x *XBeeCellular) SocketStatus(socketID uint8) SocketState {
	return x.sockets[socketID]
}

// SocketCreate opens a module socket for the given protocol and returns
// its ID. The ID stays valid until a close completes or the module resets.
func (x *XBeeCellular) SocketCreate(protocol Protocol) (uint8, error) {
	id := x.nextFrameID()

	if err := x.sendFrame(frame.TypeSocketCreate, []byte{id, byte(protocol)}); err != nil {
		return 0, fmt.Errorf("socket create: %w", err)
	}

	f, err := x.waitFrame(frame.TypeSocketCreateResponse, socketResponseTimeout, func(f *frame.Frame) bool {
		return len(f.Data) >= 3 && f.Data[0] == id
	})
	if err != nil {
		return 0, fmt.Errorf("socket create: %w", err)
	}

	socketID, status := f.Data[1], f.Data[2]
	if status != 0 {
		x.log.Warn().Uint8("status", status).Msg("socket create failed")
		return 0, fmt.Errorf("socket create: status 0x%02X: %w", status, ErrSocketFailed)
	}

	x.sockets[socketID] = SocketCreated
	x.log.Debug().Uint8("socket_id", socketID).Msg("socket created")
	return socketID, nil
}

// SocketConnectIP connects a socket to a remote IPv4 address and port. It
// blocks for the connect response and then for the socket status that
// confirms establishment.
func (x *XBeeCellular) SocketConnectIP(socketID uint8, ip [4]byte, port uint16) error {
	return x.socketConnect(socketID, port, 0x00, ip[:])
}

// SocketConnectHost connects a socket to a hostname resolved by the
// module.
func (x *XBeeCellular) SocketConnectHost(socketID uint8, host string, port uint16) error {
	return x.socketConnect(socketID, port, 0x01, []byte(host))
}

func (x *XBeeCellular) socketConnect(socketID uint8, port uint16, addrType byte, addr []byte) error {
	id := x.nextFrameID()

	data := make([]byte, 0, 5+len(addr))
	data = append(data, id, socketID)
	data = binary.BigEndian.AppendUint16(data, port)
	data = append(data, addrType)
	data = append(data, addr...)

	if err := x.sendFrame(frame.TypeSocketConnect, data); err != nil {
		return fmt.Errorf("socket connect: %w", err)
	}
	x.sockets[socketID] = SocketConnecting

	f, err := x.waitFrame(frame.TypeSocketConnectResponse, socketResponseTimeout, func(f *frame.Frame) bool {
		return len(f.Data) >= 3 && f.Data[0] == id && f.Data[1] == socketID
	})
	if err != nil {
		x.sockets[socketID] = SocketClosed
		return fmt.Errorf("socket connect: %w", err)
	}
	// Status sits after the frame ID and socket ID.
	if f.Data[2] != 0 {
		x.sockets[socketID] = SocketClosed
		return fmt.Errorf("socket connect: status 0x%02X: %w", f.Data[2], ErrSocketFailed)
	}

	f, err = x.waitFrame(frame.TypeSocketStatus, socketConnectTimeout, func(f *frame.Frame) bool {
		return len(f.Data) >= 2 && f.Data[0] == socketID
	})
	if err != nil {
		x.sockets[socketID] = SocketClosed
		return fmt.Errorf("socket connect: waiting for establishment: %w", err)
	}
	if f.Data[1] != 0 {
		x.sockets[socketID] = SocketClosed
		return fmt.Errorf("socket connect: socket status 0x%02X: %w", f.Data[1], ErrSocketFailed)
	}

	x.sockets[socketID] = SocketConnected
	x.log.Debug().Uint8("socket_id", socketID).Msg("socket connected")
	return nil
}

// SocketBind binds a UDP socket to a local port. When blocking, it waits
// for the module's bind response.
func (x *XBeeCellular) SocketBind(socketID uint8, port uint16, blocking bool) error {
	id := x.nextFrameID()

	data := make([]byte, 0, 4)
	data = append(data, id, socketID)
	data = binary.BigEndian.AppendUint16(data, port)

	if err := x.sendFrame(frame.TypeSocketBind, data); err != nil {
		return fmt.Errorf("socket bind: %w", err)
	}
	if !blocking {
		x.sockets[socketID] = SocketBound
		return nil
	}

	f, err := x.waitFrame(frame.TypeSocketBindResponse, socketResponseTimeout, func(f *frame.Frame) bool {
		return len(f.Data) >= 3 && f.Data[0] == id && f.Data[1] == socketID
	})
	if err != nil {
		return fmt.Errorf("socket bind: %w", err)
	}
	if f.Data[2] != 0 {
		return fmt.Errorf("socket bind: status 0x%02X: %w", f.Data[2], ErrSocketFailed)
	}

	x.sockets[socketID] = SocketBound
	x.log.Debug().Uint8("socket_id", socketID).Uint16("port", port).Msg("socket bound")
	return nil
}

// SocketSend transmits payload over a connected socket. The module caps
// the payload at 120 bytes per frame.
func (x *XBeeCellular) SocketSend(socketID uint8, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("socket send: empty payload")
	}
	if len(payload) > maxSocketPayload {
		return ErrPayloadTooLarge
	}

	id := x.nextFrameID()
	data := make([]byte, 0, 3+len(payload))
	data = append(data, id, socketID, 0x00)
	data = append(data, payload...)

	if err := x.sendFrame(frame.TypeSocketSend, data); err != nil {
		return fmt.Errorf("socket send: %w", err)
	}
	return nil
}

// SocketSendTo transmits a UDP datagram to a remote IP and port over a
// bound socket.
func (x *XBeeCellular) SocketSendTo(socketID uint8, ip [4]byte, port uint16, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("socket sendto: empty payload")
	}
	if len(payload) > maxSocketPayload {
		return ErrPayloadTooLarge
	}

	id := x.nextFrameID()
	data := make([]byte, 0, 9+len(payload))
	data = append(data, id, socketID)
	data = append(data, ip[:]...)
	data = binary.BigEndian.AppendUint16(data, port)
	data = append(data, 0x00)
	data = append(data, payload...)

	if err := x.sendFrame(frame.TypeSocketSendTo, data); err != nil {
		return fmt.Errorf("socket sendto: %w", err)
	}
	return nil
}

// SocketSetOption sets a socket option such as listen mode or keepalive.
func (x *XBeeCellular) SocketSetOption(socketID uint8, option SocketOption, value []byte) error {
	if len(value) == 0 {
		return fmt.Errorf("socket set option: empty value")
	}

	id := x.nextFrameID()
	data := make([]byte, 0, 3+len(value))
	data = append(data, id, socketID, byte(option))
	data = append(data, value...)

	if err := x.sendFrame(frame.TypeSocketBind, data); err != nil {
		return fmt.Errorf("socket set option: %w", err)
	}
	return nil
}

// SocketClose closes a socket. When blocking, it waits for the socket
// status frame confirming closure (status 0x01).
func (x *XBeeCellular) SocketClose(socketID uint8, blocking bool) error {
	id := x.nextFrameID()

	if err := x.sendFrame(frame.TypeSocketClose, []byte{id, socketID}); err != nil {
		return fmt.Errorf("socket close: %w", err)
	}
	x.sockets[socketID] = SocketClosing
	if !blocking {
		return nil
	}

	// Close confirmations carry the frame ID ahead of the socket ID,
	// unlike connect-establishment status frames.
	f, err := x.waitFrame(frame.TypeSocketStatus, socketResponseTimeout, func(f *frame.Frame) bool {
		return len(f.Data) >= 3 && f.Data[0] == id && f.Data[1] == socketID
	})
	if err != nil {
		return fmt.Errorf("socket close: %w", err)
	}
	if f.Data[2] != 0x01 {
		return fmt.Errorf("socket close: unexpected status 0x%02X: %w", f.Data[2], ErrSocketFailed)
	}

	x.sockets[socketID] = SocketClosed
	x.log.Debug().Uint8("socket_id", socketID).Msg("socket closed")
	return nil
}
