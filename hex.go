package xbee

import (
	"encoding/hex"
	"strings"
)

// parseHex converts an ASCII-hex string of exactly 2*n characters into n
// bytes. Wrong length or non-hex input rejects before any AT traffic.
func parseHex(s string, n int) ([]byte, error) {
	if len(s) != 2*n {
		return nil, ErrInvalidHex
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidHex
	}
	return b, nil
}

// hexString renders b as upper-case ASCII hex.
func hexString(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
