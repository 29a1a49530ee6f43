package arkiv

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

func TestMarshalValidateAccess(t *testing.T) {
	typ := SliceOf(Uint32)

	data, err := Marshal(typ, []uint32{10, 20, 30})
	require.NoError(t, err)

	// Whatever Marshal produces, Validate accepts.
	require.NoError(t, Validate(typ, data))

	view, err := Access(typ, data)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), view.At(1))
}

func TestRepeatedReadsAgree(t *testing.T) {
	typ := SliceOf(String)

	data, err := Marshal(typ, []string{"alpha", "beta", "gamma"})
	require.NoError(t, err)

	// A finalized archive is immutable: following the same pointer twice,
	// through the same view or through independent Access calls, lands on
	// the same target bytes.
	v1, err := Access(typ, data)
	require.NoError(t, err)
	v2, err := Access(typ, data)
	require.NoError(t, err)

	for i := 0; i < v1.Len(); i++ {
		first := v1.At(i)
		assert.Equal(t, first, v1.At(i))
		assert.Equal(t, first, v2.At(i))
	}
}

func TestAccessRejectsCorruptBuffer(t *testing.T) {
	typ := SliceOf(Uint32)
	f := wire.DefaultFormat()

	data, err := Marshal(typ, []uint32{10, 20, 30})
	require.NoError(t, err)

	f.PutOffset(data[len(data)-typ.Size(f):], int64(len(data)))

	_, err = Access(typ, data)

	var target *check.ErrOutOfBounds
	assert.ErrorAs(t, err, &target)
}

func TestAccessUnchecked(t *testing.T) {
	typ := SliceOf(Uint32)

	data, err := Marshal(typ, []uint32{1, 2})
	require.NoError(t, err)

	view, err := AccessUnchecked(typ, data)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), view.At(1))

	_, err = AccessUnchecked(typ, []byte{1})
	var target *ErrBufferTooShort
	assert.ErrorAs(t, err, &target)
}

func TestMarshalToStream(t *testing.T) {
	typ := SliceOf(Uint32)
	f := wire.DefaultFormat()

	var sink bytes.Buffer
	s := wire.NewStream(&sink, f)

	pos, err := MarshalTo(s, typ, []uint32{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, wire.Pos(12), pos)

	// Byte-identical to the Buffer path.
	data, err := Marshal(typ, []uint32{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, data, sink.Bytes())
}

type failingSink struct {
	err error
}

func (s failingSink) Write([]byte) (int, error) {
	return 0, s.err
}

func TestMarshalToSinkFailure(t *testing.T) {
	sinkErr := errors.New("pipe closed")
	s := wire.NewStream(failingSink{err: sinkErr}, wire.DefaultFormat())

	_, err := MarshalTo(s, SliceOf(Uint32), []uint32{1, 2, 3})
	assert.ErrorIs(t, err, sinkErr)
}

func TestMarshalOffsetOverflow(t *testing.T) {
	// Under 16-bit offsets a pointer cannot reach a target more than
	// 32 KiB away. Failure is hard, never a truncated offset.
	big := make([][]byte, 2)
	big[0] = make([]byte, 40000)
	big[1] = []byte{1}

	_, err := Marshal(SliceOf(Bytes), big, WithWidth(wire.Width16))

	var target *wire.ErrOffsetOverflow
	assert.ErrorAs(t, err, &target)
}

func TestHeaderLengthOverflow(t *testing.T) {
	f := wire.Format{Width: wire.Width16, Order: wire.DefaultFormat().Order}
	dst := make([]byte, 4)

	err := putHeader(dst, 10, f, 8, 70000)

	var target *wire.ErrLengthOverflow
	assert.ErrorAs(t, err, &target)
}

func TestMetricsCollector(t *testing.T) {
	typ := SliceOf(Uint32)
	m := &BasicMetricsCollector{}

	data, err := Marshal(typ, []uint32{1, 2, 3}, WithMetricsCollector(m))
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.MarshalCount.Load())
	assert.Equal(t, int64(len(data)), m.MarshalBytes.Load())

	require.NoError(t, Validate(typ, data, WithMetricsCollector(m)))
	assert.Equal(t, int64(1), m.ValidateCount.Load())
	assert.Equal(t, int64(0), m.ValidateErrors.Load())

	data[len(data)-1] ^= 0xFF
	assert.Error(t, Validate(typ, data, WithMetricsCollector(m)))
	assert.Equal(t, int64(2), m.ValidateCount.Load())
	assert.Equal(t, int64(1), m.ValidateErrors.Load())
}

func TestValidateWorkBudgetOption(t *testing.T) {
	typ := SliceOf(Uint64)

	data, err := Marshal(typ, make([]uint64, 1024))
	require.NoError(t, err)

	require.NoError(t, Validate(typ, data))

	err = Validate(typ, data, WithWorkBudget(16))

	var target *check.ErrRecursionLimit
	assert.ErrorAs(t, err, &target)
}
