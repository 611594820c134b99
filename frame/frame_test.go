package frame

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	// AT command frame: frame ID 1, command "VR", no parameter.
	raw, err := Encode(TypeATCommand, []byte{0x01, 'V', 'R'}, DefaultMaxSize)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := []byte{0x7E, 0x00, 0x04, 0x08, 0x01, 0x56, 0x52, 0x4E}
	if !bytes.Equal(raw, want) {
		t.Errorf("Encode() = % X, want % X", raw, want)
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	raw, err := Encode(TypeSocketClose, nil, DefaultMaxSize)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := []byte{0x7E, 0x00, 0x01, 0x43, 0xBC}
	if !bytes.Equal(raw, want) {
		t.Errorf("Encode() = % X, want % X", raw, want)
	}
}

func TestEncodeTooLarge(t *testing.T) {
	if _, err := Encode(TypeTXRequest, make([]byte, DefaultMaxSize), DefaultMaxSize); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Encode() error = %v, want ErrTooLarge", err)
	}

	// len(data)+1 == max is still within bounds.
	if _, err := Encode(TypeTXRequest, make([]byte, DefaultMaxSize-1), DefaultMaxSize); err != nil {
		t.Errorf("Encode() at bound error = %v", err)
	}
}

func TestDecodeValidATResponse(t *testing.T) {
	// AT response for "VR": frame ID 1, status 0, value 0x12.
	raw := []byte{0x7E, 0x00, 0x06, 0x88, 0x01, 'V', 'R', 0x00, 0x12, 0xBC}

	f, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if f.Type != TypeATResponse {
		t.Errorf("Type = %v, want AT Response", f.Type)
	}
	if f.Length() != 6 {
		t.Errorf("Length() = %d, want 6", f.Length())
	}
	if want := []byte{0x01, 0x56, 0x52, 0x00, 0x12}; !bytes.Equal(f.Data, want) {
		t.Errorf("Data = % X, want % X", f.Data, want)
	}
	if f.Checksum != 0xBC {
		t.Errorf("Checksum = 0x%02X, want 0xBC", f.Checksum)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		want error
	}{
		{"bad delimiter", []byte{0x00, 0x00, 0x01, 0x88, 0x77}, ErrInvalidDelimiter},
		{"truncated header", []byte{0x7E, 0x00}, ErrTruncated},
		{"truncated body", []byte{0x7E, 0x00, 0x05, 0x88, 0x01, 'V'}, ErrTruncated},
		{"zero length", []byte{0x7E, 0x00, 0x00, 0x00, 0x00}, ErrTruncated},
		{"bad checksum", []byte{0x7E, 0x00, 0x06, 0x88, 0x01, 'V', 'R', 0x00, 0x12, 0x00}, ErrInvalidChecksum},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.raw); !errors.Is(err, tc.want) {
				t.Errorf("Decode() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		{0x00},
		{0xFF, 0x7E, 0x00, 0x13},
		bytes.Repeat([]byte{0xA5}, DefaultMaxSize-1),
	}

	for _, payload := range payloads {
		raw, err := Encode(TypeTXRequest, payload, DefaultMaxSize)
		if err != nil {
			t.Fatalf("Encode(%d bytes) error: %v", len(payload), err)
		}
		f, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode(%d bytes) error: %v", len(payload), err)
		}
		if f.Type != TypeTXRequest {
			t.Errorf("round-trip type = %v", f.Type)
		}
		if !bytes.Equal(f.Data, payload) && len(payload) > 0 {
			t.Errorf("round-trip data = % X, want % X", f.Data, payload)
		}
	}
}

func TestChecksumTotality(t *testing.T) {
	// For every decodable frame, sum(type, payload, checksum) mod 256 == 0xFF.
	raw, err := Encode(TypeSocketSend, []byte{0x05, 0x00, 0x00, 0xAA, 0xBB}, DefaultMaxSize)
	if err != nil {
		t.Fatal(err)
	}
	f, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}

	sum := byte(f.Type) + f.Checksum
	for _, b := range f.Data {
		sum += b
	}
	if sum != 0xFF {
		t.Errorf("checksum totality violated: sum = 0x%02X", sum)
	}
}

func TestTypeString(t *testing.T) {
	if got := TypeATResponse.String(); got != "AT Response" {
		t.Errorf("String() = %q", got)
	}
	if got := Type(0x77).String(); got != "0x77" {
		t.Errorf("String() = %q", got)
	}
}
