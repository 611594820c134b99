package xbee

import (
	"bytes"
	"errors"
	"testing"

	"i4.energy/across/xbee/frame"
)

func TestSocketCreate(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	// Unrelated traffic arrives ahead of the create response.
	feedFrame(t, port, frame.TypeModemStatus, []byte{0x02})
	feedFrame(t, port, frame.TypeSocketCreateResponse, []byte{0x01, 0x05, 0x00})

	socketID, err := x.SocketCreate(ProtocolUDP)
	if err != nil {
		t.Fatalf("SocketCreate() error: %v", err)
	}
	if socketID != 5 {
		t.Errorf("socket ID = %d, want 5", socketID)
	}
	if got := x.SocketStatus(5); got != SocketCreated {
		t.Errorf("SocketStatus(5) = %v, want created", got)
	}

	want, _ := frame.Encode(frame.TypeSocketCreate, []byte{0x01, 0x00}, frame.DefaultMaxSize)
	if !bytes.Equal(port.Writes()[0], want) {
		t.Errorf("wrote % X, want % X", port.Writes()[0], want)
	}
}

func TestSocketCreateFailedStatus(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	feedFrame(t, port, frame.TypeSocketCreateResponse, []byte{0x01, 0x00, 0x22})

	if _, err := x.SocketCreate(ProtocolTCP); !errors.Is(err, ErrSocketFailed) {
		t.Errorf("SocketCreate() error = %v, want ErrSocketFailed", err)
	}
}

func TestSocketCreateTimeout(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	if _, err := x.SocketCreate(ProtocolTCP); !errors.Is(err, ErrResponseTimeout) {
		t.Errorf("SocketCreate() error = %v, want ErrResponseTimeout", err)
	}
}

func TestSocketConnectIP(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})
	x.sockets[5] = SocketCreated

	feedFrame(t, port, frame.TypeSocketConnectResponse, []byte{0x01, 0x05, 0x00})
	feedFrame(t, port, frame.TypeSocketStatus, []byte{0x05, 0x00})

	if err := x.SocketConnectIP(5, [4]byte{93, 184, 216, 34}, 443); err != nil {
		t.Fatalf("SocketConnectIP() error: %v", err)
	}
	if got := x.SocketStatus(5); got != SocketConnected {
		t.Errorf("SocketStatus(5) = %v, want connected", got)
	}

	wantData := []byte{0x01, 0x05, 0x01, 0xBB, 0x00, 93, 184, 216, 34}
	want, _ := frame.Encode(frame.TypeSocketConnect, wantData, frame.DefaultMaxSize)
	if !bytes.Equal(port.Writes()[0], want) {
		t.Errorf("wrote % X, want % X", port.Writes()[0], want)
	}
}

func TestSocketConnectHost(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	feedFrame(t, port, frame.TypeSocketConnectResponse, []byte{0x01, 0x02, 0x00})
	feedFrame(t, port, frame.TypeSocketStatus, []byte{0x02, 0x00})

	if err := x.SocketConnectHost(2, "example.com", 80); err != nil {
		t.Fatalf("SocketConnectHost() error: %v", err)
	}

	wantData := append([]byte{0x01, 0x02, 0x00, 0x50, 0x01}, "example.com"...)
	want, _ := frame.Encode(frame.TypeSocketConnect, wantData, frame.DefaultMaxSize)
	if !bytes.Equal(port.Writes()[0], want) {
		t.Errorf("wrote % X, want % X", port.Writes()[0], want)
	}
}

func TestSocketConnectRejectedByModule(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})
	x.sockets[5] = SocketCreated

	feedFrame(t, port, frame.TypeSocketConnectResponse, []byte{0x01, 0x05, 0x80})

	if err := x.SocketConnectIP(5, [4]byte{1, 2, 3, 4}, 80); !errors.Is(err, ErrSocketFailed) {
		t.Fatalf("SocketConnectIP() error = %v, want ErrSocketFailed", err)
	}
	if got := x.SocketStatus(5); got != SocketClosed {
		t.Errorf("SocketStatus(5) = %v, want closed", got)
	}
}

func TestSocketConnectEstablishmentFailure(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	feedFrame(t, port, frame.TypeSocketConnectResponse, []byte{0x01, 0x05, 0x00})
	feedFrame(t, port, frame.TypeSocketStatus, []byte{0x05, 0x03})

	if err := x.SocketConnectIP(5, [4]byte{1, 2, 3, 4}, 80); !errors.Is(err, ErrSocketFailed) {
		t.Errorf("SocketConnectIP() error = %v, want ErrSocketFailed", err)
	}
}

func TestSocketBind(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	feedFrame(t, port, frame.TypeSocketBindResponse, []byte{0x01, 0x05, 0x00})

	if err := x.SocketBind(5, 9000, true); err != nil {
		t.Fatalf("SocketBind() error: %v", err)
	}
	if got := x.SocketStatus(5); got != SocketBound {
		t.Errorf("SocketStatus(5) = %v, want bound", got)
	}

	want, _ := frame.Encode(frame.TypeSocketBind, []byte{0x01, 0x05, 0x23, 0x28}, frame.DefaultMaxSize)
	if !bytes.Equal(port.Writes()[0], want) {
		t.Errorf("wrote % X, want % X", port.Writes()[0], want)
	}
}

func TestSocketBindNonBlocking(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	if err := x.SocketBind(5, 9000, false); err != nil {
		t.Fatalf("SocketBind() error: %v", err)
	}
	if len(port.Writes()) != 1 {
		t.Errorf("wrote %d frames, want 1", len(port.Writes()))
	}
}

func TestSocketSend(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	if err := x.SocketSend(5, []byte{0xDE, 0xAD}); err != nil {
		t.Fatalf("SocketSend() error: %v", err)
	}

	want, _ := frame.Encode(frame.TypeSocketSend, []byte{0x01, 0x05, 0x00, 0xDE, 0xAD}, frame.DefaultMaxSize)
	if !bytes.Equal(port.LastWrite(), want) {
		t.Errorf("wrote % X, want % X", port.LastWrite(), want)
	}
}

func TestSocketSendPayloadCap(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	if err := x.SocketSend(5, make([]byte, 121)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("SocketSend(121 bytes) error = %v, want ErrPayloadTooLarge", err)
	}
	if err := x.SocketSend(5, nil); err == nil {
		t.Error("SocketSend accepted an empty payload")
	}
	if len(port.Writes()) != 0 {
		t.Error("rejected payload reached the port")
	}

	if err := x.SocketSend(5, make([]byte, 120)); err != nil {
		t.Errorf("SocketSend(120 bytes) error: %v", err)
	}
}

func TestSocketSendTo(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	if err := x.SocketSendTo(5, [4]byte{192, 168, 1, 20}, 9000, []byte{0x01}); err != nil {
		t.Fatalf("SocketSendTo() error: %v", err)
	}

	wantData := []byte{0x01, 0x05, 192, 168, 1, 20, 0x23, 0x28, 0x00, 0x01}
	want, _ := frame.Encode(frame.TypeSocketSendTo, wantData, frame.DefaultMaxSize)
	if !bytes.Equal(port.LastWrite(), want) {
		t.Errorf("wrote % X, want % X", port.LastWrite(), want)
	}
}

func TestSocketSendToPayloadCap(t *testing.T) {
	x := NewCellular(NewScriptPort(), CellularCallbacks{})

	if err := x.SocketSendTo(5, [4]byte{1, 2, 3, 4}, 80, make([]byte, 121)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("SocketSendTo() error = %v, want ErrPayloadTooLarge", err)
	}
}

func TestSocketSetOption(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})

	if err := x.SocketSetOption(5, SocketOptionListen, []byte{0x01}); err != nil {
		t.Fatalf("SocketSetOption() error: %v", err)
	}

	want, _ := frame.Encode(frame.TypeSocketBind, []byte{0x01, 0x05, 0x01, 0x01}, frame.DefaultMaxSize)
	if !bytes.Equal(port.LastWrite(), want) {
		t.Errorf("wrote % X, want % X", port.LastWrite(), want)
	}
}

func TestSocketClose(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})
	x.sockets[5] = SocketConnected

	// Close confirmation: frame ID, socket ID, status 0x01 = closed.
	feedFrame(t, port, frame.TypeSocketStatus, []byte{0x01, 0x05, 0x01})

	if err := x.SocketClose(5, true); err != nil {
		t.Fatalf("SocketClose() error: %v", err)
	}
	if got := x.SocketStatus(5); got != SocketClosed {
		t.Errorf("SocketStatus(5) = %v, want closed", got)
	}

	want, _ := frame.Encode(frame.TypeSocketClose, []byte{0x01, 0x05}, frame.DefaultMaxSize)
	if !bytes.Equal(port.Writes()[0], want) {
		t.Errorf("wrote % X, want % X", port.Writes()[0], want)
	}
}

func TestSocketCloseNonBlocking(t *testing.T) {
	port := NewScriptPort()
	x := NewCellular(port, CellularCallbacks{})
	x.sockets[5] = SocketConnected

	if err := x.SocketClose(5, false); err != nil {
		t.Fatalf("SocketClose() error: %v", err)
	}
	if got := x.SocketStatus(5); got != SocketClosing {
		t.Errorf("SocketStatus(5) = %v, want closing", got)
	}
}

func TestSocketStatusUnknownID(t *testing.T) {
	x := NewCellular(NewScriptPort(), CellularCallbacks{})

	if got := x.SocketStatus(99); got != SocketClosed {
		t.Errorf("SocketStatus(99) = %v, want closed", got)
	}
}

func TestSocketStateString(t *testing.T) {
	if SocketConnected.String() != "connected" {
		t.Errorf("String() = %q", SocketConnected.String())
	}
	if SocketState(42).String() != "SocketState(42)" {
		t.Errorf("String() = %q", SocketState(42).String())
	}
}
