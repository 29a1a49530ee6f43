package arkiv

import (
	"encoding/binary"
	"math"

	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

// numeric implements Type for fixed-width numbers. Numbers own no indirect
// data: Resolve is a no-op and Write copies the raw encoding.
type numeric[T any] struct {
	size int
	enc  func(o binary.ByteOrder, b []byte, v T)
	dec  func(o binary.ByteOrder, b []byte) T
}

func (n numeric[T]) Size(wire.Format) int { return n.size }

func (n numeric[T]) Align(f wire.Format) int { return f.Alignment(n.size) }

func (n numeric[T]) Resolve(wire.Writer, T) (Resolver, error) { return nil, nil }

func (n numeric[T]) Write(dst []byte, _ wire.Pos, f wire.Format, v T, _ Resolver) error {
	n.enc(f.Order, dst, v)
	return nil
}

func (n numeric[T]) Check(c *check.Checker, pos wire.Pos) error {
	_, err := c.Window(pos, n.size, c.Format().Alignment(n.size))
	return err
}

func (n numeric[T]) View(a *Archive, pos wire.Pos) T {
	return n.dec(a.f.Order, a.data[pos:int(pos)+n.size])
}

// Archivers for the fixed-width numeric types.
var (
	Uint8 Type[uint8, uint8] = numeric[uint8]{
		size: 1,
		enc:  func(_ binary.ByteOrder, b []byte, v uint8) { b[0] = v },
		dec:  func(_ binary.ByteOrder, b []byte) uint8 { return b[0] },
	}

	Uint16 Type[uint16, uint16] = numeric[uint16]{
		size: 2,
		enc:  func(o binary.ByteOrder, b []byte, v uint16) { o.PutUint16(b, v) },
		dec:  func(o binary.ByteOrder, b []byte) uint16 { return o.Uint16(b) },
	}

	Uint32 Type[uint32, uint32] = numeric[uint32]{
		size: 4,
		enc:  func(o binary.ByteOrder, b []byte, v uint32) { o.PutUint32(b, v) },
		dec:  func(o binary.ByteOrder, b []byte) uint32 { return o.Uint32(b) },
	}

	Uint64 Type[uint64, uint64] = numeric[uint64]{
		size: 8,
		enc:  func(o binary.ByteOrder, b []byte, v uint64) { o.PutUint64(b, v) },
		dec:  func(o binary.ByteOrder, b []byte) uint64 { return o.Uint64(b) },
	}

	Int8 Type[int8, int8] = numeric[int8]{
		size: 1,
		enc:  func(_ binary.ByteOrder, b []byte, v int8) { b[0] = uint8(v) },
		dec:  func(_ binary.ByteOrder, b []byte) int8 { return int8(b[0]) },
	}

	Int16 Type[int16, int16] = numeric[int16]{
		size: 2,
		enc:  func(o binary.ByteOrder, b []byte, v int16) { o.PutUint16(b, uint16(v)) },
		dec:  func(o binary.ByteOrder, b []byte) int16 { return int16(o.Uint16(b)) },
	}

	Int32 Type[int32, int32] = numeric[int32]{
		size: 4,
		enc:  func(o binary.ByteOrder, b []byte, v int32) { o.PutUint32(b, uint32(v)) },
		dec:  func(o binary.ByteOrder, b []byte) int32 { return int32(o.Uint32(b)) },
	}

	Int64 Type[int64, int64] = numeric[int64]{
		size: 8,
		enc:  func(o binary.ByteOrder, b []byte, v int64) { o.PutUint64(b, uint64(v)) },
		dec:  func(o binary.ByteOrder, b []byte) int64 { return int64(o.Uint64(b)) },
	}

	Float32 Type[float32, float32] = numeric[float32]{
		size: 4,
		enc:  func(o binary.ByteOrder, b []byte, v float32) { o.PutUint32(b, math.Float32bits(v)) },
		dec:  func(o binary.ByteOrder, b []byte) float32 { return math.Float32frombits(o.Uint32(b)) },
	}

	Float64 Type[float64, float64] = numeric[float64]{
		size: 8,
		enc:  func(o binary.ByteOrder, b []byte, v float64) { o.PutUint64(b, math.Float64bits(v)) },
		dec:  func(o binary.ByteOrder, b []byte) float64 { return math.Float64frombits(o.Uint64(b)) },
	}
)

// Bool archives bool values as a single byte, 0 or 1. Any other byte fails
// validation.
var Bool Type[bool, bool] = boolType{}

type boolType struct{}

func (boolType) Size(wire.Format) int { return 1 }

func (boolType) Align(wire.Format) int { return 1 }

func (boolType) Resolve(wire.Writer, bool) (Resolver, error) { return nil, nil }

func (boolType) Write(dst []byte, _ wire.Pos, _ wire.Format, v bool, _ Resolver) error {
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
	return nil
}

func (boolType) Check(c *check.Checker, pos wire.Pos) error {
	b, err := c.Window(pos, 1, 1)
	if err != nil {
		return err
	}
	if b[0] > 1 {
		return &check.ErrInvalidDiscriminant{Pos: uint64(pos), Tag: b[0]}
	}
	return nil
}

func (boolType) View(a *Archive, pos wire.Pos) bool {
	return a.data[pos] != 0
}
