package persistence

import "fmt"

// ErrBadMagic is returned when a container does not start with the ARKV
// magic number.
type ErrBadMagic struct {
	Got uint32
}

// Error implements the error interface.
func (e *ErrBadMagic) Error() string {
	return fmt.Sprintf("persistence: bad magic 0x%08X (want 0x%08X)", e.Got, Magic)
}

// ErrUnsupportedVersion is returned when a container was written by an
// incompatible format version.
type ErrUnsupportedVersion struct {
	Got uint32
}

// Error implements the error interface.
func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("persistence: unsupported container version %d (want %d)", e.Got, Version)
}

// ErrChecksumMismatch is returned when the stored payload fails CRC32
// verification, indicating corruption.
type ErrChecksumMismatch struct {
	Want uint32
	Got  uint32
}

// Error implements the error interface.
func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("persistence: checksum mismatch: header 0x%08X, payload 0x%08X", e.Want, e.Got)
}

// ErrTruncated is returned when a container is shorter than its header
// claims.
type ErrTruncated struct {
	Len  int
	Need int
}

// Error implements the error interface.
func (e *ErrTruncated) Error() string {
	return fmt.Sprintf("persistence: truncated container: %d bytes, need %d", e.Len, e.Need)
}

// ErrUnknownCompression is returned when a container declares a codec
// this build does not understand.
type ErrUnknownCompression struct {
	ID uint8
}

// Error implements the error interface.
func (e *ErrUnknownCompression) Error() string {
	return fmt.Sprintf("persistence: unknown compression codec %d", e.ID)
}

// ErrBadHeader is returned when a header field holds a value outside its
// valid range.
type ErrBadHeader struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ErrBadHeader) Error() string {
	return fmt.Sprintf("persistence: bad header field %s: %s", e.Field, e.Reason)
}
