package check

import "fmt"

// ErrOutOfBounds indicates a checked position or computed pointer target
// falling outside the buffer.
type ErrOutOfBounds struct {
	Pos    uint64
	Size   int
	BufLen int
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("out of bounds: %d bytes at position %d, buffer holds %d", e.Size, e.Pos, e.BufLen)
}

// ErrMisaligned indicates a field whose position does not satisfy its
// required alignment.
type ErrMisaligned struct {
	Pos   uint64
	Align int
}

func (e *ErrMisaligned) Error() string {
	return fmt.Sprintf("misaligned access: position %d requires %d-byte alignment", e.Pos, e.Align)
}

// ErrInvalidDiscriminant indicates a tag byte that is not one of the declared
// valid values.
type ErrInvalidDiscriminant struct {
	Pos uint64
	Tag byte
}

func (e *ErrInvalidDiscriminant) Error() string {
	return fmt.Sprintf("invalid discriminant %d at position %d", e.Tag, e.Pos)
}

// ErrInvalidValue indicates archived bytes that violate a type-level
// invariant other than bounds, alignment or discriminants (for example map
// entries out of key order).
type ErrInvalidValue struct {
	Pos    uint64
	Reason string
}

func (e *ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value at position %d: %s", e.Pos, e.Reason)
}

// ErrRecursionLimit indicates that validation work or depth exceeded its
// safety bound, typically caused by self-referential or pathologically nested
// offsets.
type ErrRecursionLimit struct {
	Pos    uint64
	Depth  int
	Reason string
}

func (e *ErrRecursionLimit) Error() string {
	return fmt.Sprintf("validation limit exceeded at position %d (depth %d): %s", e.Pos, e.Depth, e.Reason)
}
