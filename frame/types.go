package frame

import "fmt"

// Type is the 8-bit API frame type opcode.
type Type byte

// Frame types used by the LoRaWAN and Cellular module families.
const (
	TypeATCommand             Type = 0x08 // AT command request
	TypeTXRequest             Type = 0x20 // LR TX request / Cellular IPv4 TX
	TypeSocketCreate          Type = 0x40
	TypeSocketConnect         Type = 0x42
	TypeSocketClose           Type = 0x43
	TypeSocketSend            Type = 0x44
	TypeSocketSendTo          Type = 0x45
	TypeSocketBind            Type = 0x46 // also carries socket options
	TypeATResponse            Type = 0x88
	TypeModemStatus           Type = 0x8A
	TypeTXStatus              Type = 0x8B
	TypeLRRXPacket            Type = 0xA0
	TypeLRExplicitRXPacket    Type = 0xA1
	TypeSocketCreateResponse  Type = 0xC0
	TypeSocketConnectResponse Type = 0xC2
	TypeSocketBindResponse    Type = 0xC6
	TypeSocketRX              Type = 0xCD
	TypeSocketRXFrom          Type = 0xCE
	TypeSocketStatus          Type = 0xCF
)

var typeNames = map[Type]string{
	TypeATCommand:             "AT Command",
	TypeTXRequest:             "TX Request",
	TypeSocketCreate:          "Socket Create",
	TypeSocketConnect:         "Socket Connect",
	TypeSocketClose:           "Socket Close",
	TypeSocketSend:            "Socket Send",
	TypeSocketSendTo:          "Socket SendTo",
	TypeSocketBind:            "Socket Bind",
	TypeATResponse:            "AT Response",
	TypeModemStatus:           "Modem Status",
	TypeTXStatus:              "TX Status",
	TypeLRRXPacket:            "LR RX",
	TypeLRExplicitRXPacket:    "LR Explicit RX",
	TypeSocketCreateResponse:  "Socket Create Response",
	TypeSocketConnectResponse: "Socket Connect Response",
	TypeSocketBindResponse:    "Socket Bind Response",
	TypeSocketRX:              "Socket RX",
	TypeSocketRXFrom:          "Socket RX From",
	TypeSocketStatus:          "Socket Status",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", byte(t))
}
