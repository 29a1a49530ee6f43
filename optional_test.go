package arkiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

func TestOptionalRoundTrip(t *testing.T) {
	typ := OptionalOf(Uint32)

	for name, opts := range formatVariants() {
		t.Run(name, func(t *testing.T) {
			v := uint32(42)

			some := roundTrip(t, typ, &v, opts...)
			require.True(t, some.IsSome())
			assert.Equal(t, uint32(42), some.Must())

			none := roundTrip(t, typ, nil, opts...)
			assert.False(t, none.IsSome())

			_, ok := none.Value()
			assert.False(t, ok)
			assert.Panics(t, func() { none.Must() })
		})
	}
}

func TestOptionalOfString(t *testing.T) {
	typ := OptionalOf(String)
	s := "indirect payload"

	view := roundTrip(t, typ, &s)
	require.True(t, view.IsSome())
	assert.Equal(t, s, view.Must())
}

func TestOptionalLayout(t *testing.T) {
	f := wire.DefaultFormat()
	typ := OptionalOf(Uint32)

	// Tag byte padded to the payload alignment, then the payload.
	assert.Equal(t, 8, typ.Size(f))
	assert.Equal(t, 4, typ.Align(f))

	f.NoPadding = true
	assert.Equal(t, 5, typ.Size(f))
	assert.Equal(t, 1, typ.Align(f))
}

func TestOptionalNoneZeroesPayload(t *testing.T) {
	data, err := Marshal(OptionalOf(Uint32), nil)
	require.NoError(t, err)

	assert.Equal(t, make([]byte, 8), data)
}

func TestOptionalInvalidTag(t *testing.T) {
	typ := OptionalOf(Uint32)

	data, err := Marshal(typ, nil)
	require.NoError(t, err)

	data[0] = 7

	var target *check.ErrInvalidDiscriminant
	require.ErrorAs(t, Validate(typ, data), &target)
	assert.Equal(t, byte(7), target.Tag)
}
