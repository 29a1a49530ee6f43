package wire

import "fmt"

// ErrOffsetOverflow indicates that the distance between a pointer and its
// target cannot be represented in the configured offset width.
type ErrOffsetOverflow struct {
	From  Pos
	To    Pos
	Width Width
}

func (e *ErrOffsetOverflow) Error() string {
	return fmt.Sprintf("offset overflow: distance from %d to %d does not fit %s offsets", e.From, e.To, e.Width)
}

// ErrLengthOverflow indicates that a length word cannot be represented in the
// configured offset width.
type ErrLengthOverflow struct {
	Value uint64
	Width Width
}

func (e *ErrLengthOverflow) Error() string {
	return fmt.Sprintf("length overflow: %d does not fit %s length words", e.Value, e.Width)
}

// ErrPatchOutOfRange indicates a PatchAt call outside the already-written
// region of a Buffer.
type ErrPatchOutOfRange struct {
	Pos Pos
	Len int
	End Pos
}

func (e *ErrPatchOutOfRange) Error() string {
	return fmt.Sprintf("patch out of range: %d bytes at position %d, buffer ends at %d", e.Len, e.Pos, e.End)
}
