package arkiv

import "fmt"

// ErrBufferTooShort indicates a buffer too small to hold the root value's
// archived representation.
//
// Errors from the write path (offset/length overflow, sink failures) surface
// as the wire package's error types; validation failures surface as the
// check package's error types. All of them abort the operation immediately:
// no partially-written archive is usable and no partially-checked reference
// is ever returned.
type ErrBufferTooShort struct {
	Len  int
	Need int
}

func (e *ErrBufferTooShort) Error() string {
	return fmt.Sprintf("buffer too short: %d bytes, root value needs %d", e.Len, e.Need)
}

// ErrInvalidKey indicates a map key that cannot be archived because no
// lookup against the sorted entry block could ever match it again.
type ErrInvalidKey struct {
	Reason string
}

func (e *ErrInvalidKey) Error() string {
	return fmt.Sprintf("invalid map key: %s", e.Reason)
}
