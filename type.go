package arkiv

import (
	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

// Resolver is the transient value produced while serializing a value's
// out-of-line data. It captures the positions that data landed at and is
// consumed exactly once, when the value's own in-place bytes are written.
// Concrete resolver types are private to each Type implementation.
type Resolver any

// Layout is the type-erased archived shape of a value: its in-place size and
// alignment under a wire format, and how to prove untrusted bytes conform to
// it. Aggregate layout helpers and the validator work through Layout alone.
type Layout interface {
	// Size returns the fixed in-place size of the archived representation.
	Size(f wire.Format) int

	// Align returns the required alignment of the archived representation.
	Align(f wire.Format) int

	// Check proves that the bytes at pos (and everything they point to)
	// form a valid archived value. It returns on the first violation and
	// never leaves c in a partially-trusted state.
	Check(c *check.Checker, pos wire.Pos) error
}

// Type is the full archive lifecycle contract for values of type T with
// zero-copy views of type V.
//
// Archiving is a two-step protocol. Resolve recursively serializes the
// value's owned, out-of-line data into the writer first and captures where it
// landed; Write then renders the value's fixed-layout in-place bytes at a
// known position, turning captured positions into relative pointers. Because
// out-of-line data is always written before the pointer referring to it,
// offsets never need a forward patch.
//
// Implementations for user-defined aggregate types are expected to be
// produced by code generation; this interface together with StructLayout and
// UnionLayout is the contract such generated code must satisfy. The types in
// this package cover primitives and the standard containers.
type Type[T any, V any] interface {
	Layout

	// Resolve serializes v's out-of-line data into w and returns the
	// resolver used to finish writing v in place. Types without
	// out-of-line data return a nil resolver.
	Resolve(w wire.Writer, v T) (Resolver, error)

	// Write renders v's archived bytes into dst, the Size(f)-byte window
	// that will occupy position pos of the archive. r must be the
	// resolver produced by Resolve for the same v.
	Write(dst []byte, pos wire.Pos, f wire.Format, v T, r Resolver) error

	// View returns the zero-copy accessor for the archived value at pos.
	// The bytes must have been validated via Check, or trusted by the
	// caller (e.g. produced by Marshal in the same process).
	View(a *Archive, pos wire.Pos) V
}

// Archive is a read handle over a finalized, immutable archive buffer. Views
// borrow it; it owns no resources and is safe for unlimited concurrent
// readers.
type Archive struct {
	data []byte
	f    wire.Format
}

// NewArchive wraps data as a read handle under the given wire format.
// The buffer must not be mutated afterwards.
func NewArchive(data []byte, f wire.Format) *Archive {
	return &Archive{data: data, f: f}
}

// Bytes returns the underlying buffer. Callers must not mutate it.
func (a *Archive) Bytes() []byte { return a.data }

// Format returns the wire format the archive was written under.
func (a *Archive) Format() wire.Format { return a.f }

// Len returns the buffer length.
func (a *Archive) Len() int { return len(a.data) }

// target dereferences the pointer word at pos. Trusted read path: bounds
// were proven by validation or by construction.
func (a *Archive) target(pos wire.Pos) wire.Pos {
	off := a.f.Offset(a.data[pos:])
	t, _ := wire.Target(pos, off)
	return t
}

// uintAt reads the length word at pos.
func (a *Archive) uintAt(pos wire.Pos) uint64 {
	return a.f.Uint(a.data[pos:])
}
