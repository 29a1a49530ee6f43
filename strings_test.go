package arkiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

func TestStringRoundTrip(t *testing.T) {
	for name, opts := range formatVariants() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "hello, archive", roundTrip(t, String, "hello, archive", opts...))
			assert.Equal(t, "", roundTrip(t, String, "", opts...))
			assert.Equal(t, "héllo \x00 wörld", roundTrip(t, String, "héllo \x00 wörld", opts...))
		})
	}
}

func TestStringViewAliasesBuffer(t *testing.T) {
	data, err := Marshal(String, "zero copy")
	require.NoError(t, err)

	view, err := Access(String, data)
	require.NoError(t, err)
	assert.Equal(t, "zero copy", view)

	// The view reads the buffer directly: mutating it shows through.
	// (Real callers must never do this; it proves no copy was made.)
	data[0] = 'Z'
	assert.Equal(t, "Zero copy", view)
}

func TestBytesRoundTrip(t *testing.T) {
	view := roundTrip(t, Bytes, []byte{1, 2, 3})
	assert.Equal(t, []byte{1, 2, 3}, view)

	assert.Nil(t, roundTrip(t, Bytes, nil))
}

func TestStringCorruptLength(t *testing.T) {
	f := wire.DefaultFormat()

	data, err := Marshal(String, "abc")
	require.NoError(t, err)

	hdr := len(data) - String.Size(f)
	require.NoError(t, f.PutUint(data[hdr+f.WordSize():], uint64(len(data))+1))

	var target *check.ErrOutOfBounds
	assert.ErrorAs(t, Validate(String, data), &target)
}
