package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Pos is a byte offset from the start of an archive.
type Pos uint64

// Width is the size in bytes of the offset and length words stored in an
// archive. It bounds the maximum distance between a pointer and its target.
type Width uint8

// Supported offset widths.
const (
	Width16 Width = 2
	Width32 Width = 4
	Width64 Width = 8
)

// Size returns the width in bytes.
func (w Width) Size() int { return int(w) }

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	return w == Width16 || w == Width32 || w == Width64
}

func (w Width) String() string {
	switch w {
	case Width16:
		return "16-bit"
	case Width32:
		return "32-bit"
	case Width64:
		return "64-bit"
	default:
		return fmt.Sprintf("Width(%d)", uint8(w))
	}
}

// maxUint returns the largest length value representable in w.
func (w Width) maxUint() uint64 {
	switch w {
	case Width16:
		return math.MaxUint16
	case Width32:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

// offsetRange returns the signed range representable in w.
func (w Width) offsetRange() (min, max int64) {
	switch w {
	case Width16:
		return math.MinInt16, math.MaxInt16
	case Width32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// Format fixes the wire-level configuration of an archive: offset width,
// byte order and alignment padding. Two archives are only interchangeable
// if they were written under the same Format.
type Format struct {
	// Width is the size of offset and length words.
	Width Width

	// Order is the byte order of every multi-byte field.
	Order binary.ByteOrder

	// NoPadding disables alignment padding. Archives become smaller but
	// every multi-byte read is potentially misaligned; only use this on
	// platforms that tolerate unaligned access.
	NoPadding bool
}

// DefaultFormat returns the default wire format: 32-bit offsets,
// little-endian, aligned.
func DefaultFormat() Format {
	return Format{Width: Width32, Order: binary.LittleEndian}
}

// WordSize returns the size in bytes of offset and length words.
func (f Format) WordSize() int { return f.Width.Size() }

// Alignment returns the effective alignment for a field whose natural
// alignment is n. With padding disabled everything is byte-aligned.
func (f Format) Alignment(n int) int {
	if f.NoPadding {
		return 1
	}
	return n
}

// Resolve computes the offset stored at a pointer located at position from,
// referring to a target at position to. It fails with *ErrOffsetOverflow when
// the distance does not fit the configured width; this is a hard error, never
// a silent truncation.
func (f Format) Resolve(from, to Pos) (int64, error) {
	d := int64(to) - int64(from)
	if min, max := f.Width.offsetRange(); d < min || d > max {
		return 0, &ErrOffsetOverflow{From: from, To: to, Width: f.Width}
	}
	return d, nil
}

// Target computes the absolute position a pointer at pos with the stored
// offset off refers to. The boolean is false when the target would fall
// before the start of the buffer.
func Target(pos Pos, off int64) (Pos, bool) {
	t := int64(pos) + off
	if t < 0 {
		return 0, false
	}
	return Pos(t), true
}

// PutOffset encodes a signed offset into b, which must hold WordSize bytes.
func (f Format) PutOffset(b []byte, off int64) {
	switch f.Width {
	case Width16:
		f.Order.PutUint16(b, uint16(off))
	case Width32:
		f.Order.PutUint32(b, uint32(off))
	default:
		f.Order.PutUint64(b, uint64(off))
	}
}

// Offset decodes a signed offset from b, sign-extending per the width.
func (f Format) Offset(b []byte) int64 {
	switch f.Width {
	case Width16:
		return int64(int16(f.Order.Uint16(b)))
	case Width32:
		return int64(int32(f.Order.Uint32(b)))
	default:
		return int64(f.Order.Uint64(b))
	}
}

// PutUint encodes an unsigned length word into b. It fails with
// *ErrLengthOverflow when v does not fit the configured width.
func (f Format) PutUint(b []byte, v uint64) error {
	if v > f.Width.maxUint() {
		return &ErrLengthOverflow{Value: v, Width: f.Width}
	}
	switch f.Width {
	case Width16:
		f.Order.PutUint16(b, uint16(v))
	case Width32:
		f.Order.PutUint32(b, uint32(v))
	default:
		f.Order.PutUint64(b, v)
	}
	return nil
}

// Uint decodes an unsigned length word from b.
func (f Format) Uint(b []byte) uint64 {
	switch f.Width {
	case Width16:
		return uint64(f.Order.Uint16(b))
	case Width32:
		return uint64(f.Order.Uint32(b))
	default:
		return f.Order.Uint64(b)
	}
}

// AlignUp rounds n up to the next multiple of align. align must be a power
// of two.
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
