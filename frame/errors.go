package frame

import "errors"

var (
	// ErrTooLarge is returned when a frame's data would exceed the
	// configured maximum frame size.
	ErrTooLarge = errors.New("frame: data exceeds maximum frame size")

	// ErrInvalidDelimiter is returned when a buffer does not open with
	// the 0x7E start delimiter.
	ErrInvalidDelimiter = errors.New("frame: invalid start delimiter")

	// ErrTruncated is returned when a buffer ends before the declared
	// frame length and checksum.
	ErrTruncated = errors.New("frame: truncated frame")

	// ErrInvalidChecksum is returned when the frame checksum does not
	// validate against the frame data.
	ErrInvalidChecksum = errors.New("frame: invalid checksum")
)
