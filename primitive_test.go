package arkiv

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

// formatVariants are the wire formats round-trip tests run under.
func formatVariants() map[string][]Option {
	return map[string][]Option{
		"default":    nil,
		"big endian": {WithByteOrder(binary.BigEndian)},
		"16-bit":     {WithWidth(wire.Width16)},
		"64-bit":     {WithWidth(wire.Width64)},
		"packed":     {WithoutPadding()},
	}
}

func roundTrip[T any, V any](t *testing.T, typ Type[T, V], v T, opts ...Option) V {
	t.Helper()

	data, err := Marshal(typ, v, opts...)
	require.NoError(t, err)

	view, err := Access(typ, data, opts...)
	require.NoError(t, err)

	return view
}

func TestNumericRoundTrip(t *testing.T) {
	for name, opts := range formatVariants() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, uint8(0xAB), roundTrip(t, Uint8, 0xAB, opts...))
			assert.Equal(t, uint16(0xABCD), roundTrip(t, Uint16, 0xABCD, opts...))
			assert.Equal(t, uint32(0xDEADBEEF), roundTrip(t, Uint32, 0xDEADBEEF, opts...))
			assert.Equal(t, uint64(1)<<63, roundTrip(t, Uint64, 1<<63, opts...))
			assert.Equal(t, int8(-1), roundTrip(t, Int8, -1, opts...))
			assert.Equal(t, int16(-12345), roundTrip(t, Int16, -12345, opts...))
			assert.Equal(t, int32(-1234567), roundTrip(t, Int32, -1234567, opts...))
			assert.Equal(t, int64(-1)<<40, roundTrip(t, Int64, -1<<40, opts...))
			assert.Equal(t, float32(3.5), roundTrip(t, Float32, 3.5, opts...))
			assert.Equal(t, 2.718281828, roundTrip(t, Float64, 2.718281828, opts...))
			assert.Equal(t, true, roundTrip(t, Bool, true, opts...))
			assert.Equal(t, false, roundTrip(t, Bool, false, opts...))
		})
	}
}

func TestNumericByteOrder(t *testing.T) {
	le, err := Marshal(Uint32, 0x01020304)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, le)

	be, err := Marshal(Uint32, 0x01020304, WithByteOrder(binary.BigEndian))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, be)
}

func TestBoolRejectsInvalidByte(t *testing.T) {
	err := Validate(Bool, []byte{2})

	var target *check.ErrInvalidDiscriminant
	require.ErrorAs(t, err, &target)
	assert.Equal(t, byte(2), target.Tag)
}

func TestValidateBufferTooShort(t *testing.T) {
	err := Validate(Uint64, []byte{1, 2, 3})

	var target *ErrBufferTooShort
	require.ErrorAs(t, err, &target)
	assert.Equal(t, 3, target.Len)
	assert.Equal(t, 8, target.Need)
}
