package wire

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	assert.True(t, Width16.Valid())
	assert.True(t, Width32.Valid())
	assert.True(t, Width64.Valid())
	assert.False(t, Width(3).Valid())

	assert.Equal(t, 2, Width16.Size())
	assert.Equal(t, 4, Width32.Size())
	assert.Equal(t, 8, Width64.Size())
}

func TestFormatResolve(t *testing.T) {
	f := Format{Width: Width16, Order: binary.LittleEndian}

	// Targets land before the pointer referring to them.
	off, err := f.Resolve(100, 40)
	require.NoError(t, err)
	assert.Equal(t, int64(-60), off)

	off, err = f.Resolve(100, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), off)

	// A distance beyond the width's signed range is a hard error.
	_, err = f.Resolve(40000, 0)
	var overflow *ErrOffsetOverflow
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, Pos(40000), overflow.From)
	assert.Equal(t, Pos(0), overflow.To)

	// The same distance fits a wider format.
	f.Width = Width32
	off, err = f.Resolve(40000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(-40000), off)
}

func TestOffsetRoundTrip(t *testing.T) {
	offsets := []int64{0, 1, -1, 127, -128, 32767, -32768}

	for _, width := range []Width{Width16, Width32, Width64} {
		for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
			f := Format{Width: width, Order: order}
			b := make([]byte, f.WordSize())

			for _, off := range offsets {
				f.PutOffset(b, off)
				assert.Equal(t, off, f.Offset(b), "width %s order %v offset %d", width, order, off)
			}
		}
	}
}

func TestOffsetSignExtension(t *testing.T) {
	f := Format{Width: Width16, Order: binary.LittleEndian}
	b := make([]byte, 2)

	f.PutOffset(b, -2)
	assert.Equal(t, []byte{0xFE, 0xFF}, b)
	assert.Equal(t, int64(-2), f.Offset(b))
}

func TestUintRoundTrip(t *testing.T) {
	f := Format{Width: Width16, Order: binary.BigEndian}
	b := make([]byte, 2)

	require.NoError(t, f.PutUint(b, 65535))
	assert.Equal(t, uint64(65535), f.Uint(b))

	var overflow *ErrLengthOverflow
	err := f.PutUint(b, 65536)
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, uint64(65536), overflow.Value)
}

func TestTarget(t *testing.T) {
	pos, ok := Target(100, -60)
	assert.True(t, ok)
	assert.Equal(t, Pos(40), pos)

	// A target before the buffer start is invalid.
	_, ok = Target(10, -11)
	assert.False(t, ok)
}

func TestAlignment(t *testing.T) {
	f := Format{Width: Width32, Order: binary.LittleEndian}
	assert.Equal(t, 4, f.Alignment(4))

	f.NoPadding = true
	assert.Equal(t, 1, f.Alignment(4))
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 0, AlignUp(0, 4))
	assert.Equal(t, 4, AlignUp(1, 4))
	assert.Equal(t, 4, AlignUp(4, 4))
	assert.Equal(t, 8, AlignUp(5, 4))
	assert.Equal(t, 5, AlignUp(5, 1))
}
