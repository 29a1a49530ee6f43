package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferAppend(t *testing.T) {
	b := NewBuffer(DefaultFormat())
	assert.Equal(t, Pos(0), b.Pos())

	pos, err := b.Append([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, Pos(0), pos)

	pos, err = b.Append([]byte("de"))
	require.NoError(t, err)
	assert.Equal(t, Pos(3), pos)

	assert.Equal(t, Pos(5), b.Pos())
	assert.Equal(t, []byte("abcde"), b.Bytes())
	assert.Equal(t, 5, b.Len())
}

func TestBufferAlign(t *testing.T) {
	b := NewBuffer(DefaultFormat())

	_, err := b.Append([]byte{1})
	require.NoError(t, err)

	require.NoError(t, b.Align(4))
	assert.Equal(t, Pos(4), b.Pos())
	assert.Equal(t, []byte{1, 0, 0, 0}, b.Bytes())

	// Already aligned: no padding.
	require.NoError(t, b.Align(4))
	assert.Equal(t, Pos(4), b.Pos())
}

func TestBufferAlignNoPadding(t *testing.T) {
	f := DefaultFormat()
	f.NoPadding = true
	b := NewBuffer(f)

	_, err := b.Append([]byte{1})
	require.NoError(t, err)

	require.NoError(t, b.Align(8))
	assert.Equal(t, Pos(1), b.Pos())
}

func TestBufferReserveAndPatch(t *testing.T) {
	b := NewBuffer(DefaultFormat())

	pos, err := b.Reserve(4)
	require.NoError(t, err)
	assert.Equal(t, Pos(0), pos)
	assert.Equal(t, []byte{0, 0, 0, 0}, b.Bytes())

	require.NoError(t, b.PatchAt(pos, []byte{1, 2, 3, 4}))
	assert.Equal(t, []byte{1, 2, 3, 4}, b.Bytes())
}

func TestBufferPatchOutOfRange(t *testing.T) {
	b := NewBuffer(DefaultFormat())

	_, err := b.Reserve(2)
	require.NoError(t, err)

	err = b.PatchAt(1, []byte{1, 2})
	var target *ErrPatchOutOfRange
	require.ErrorAs(t, err, &target)
	assert.Equal(t, Pos(1), target.Pos)

	// The buffer was not extended.
	assert.Equal(t, 2, b.Len())
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer(DefaultFormat())

	_, err := b.Append([]byte("data"))
	require.NoError(t, err)

	b.Reset()
	assert.Equal(t, Pos(0), b.Pos())
	assert.Empty(t, b.Bytes())
}

func TestStream(t *testing.T) {
	var sink bytes.Buffer
	s := NewStream(&sink, DefaultFormat())

	pos, err := s.Append([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, Pos(0), pos)

	require.NoError(t, s.Align(4))
	assert.Equal(t, Pos(4), s.Pos())

	pos, err = s.Append([]byte("d"))
	require.NoError(t, err)
	assert.Equal(t, Pos(4), pos)

	assert.Equal(t, []byte{'a', 'b', 'c', 0, 'd'}, sink.Bytes())
}

func TestStreamAlignLargePad(t *testing.T) {
	var sink bytes.Buffer
	f := Format{Width: Width32, Order: DefaultFormat().Order}
	s := NewStream(&sink, f)

	_, err := s.Append([]byte{1})
	require.NoError(t, err)

	// Padding larger than the internal zero chunk.
	require.NoError(t, s.Align(256))
	assert.Equal(t, Pos(256), s.Pos())
	assert.Equal(t, 256, sink.Len())
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestStreamSinkFailure(t *testing.T) {
	sinkErr := errors.New("disk full")
	s := NewStream(failingWriter{err: sinkErr}, DefaultFormat())

	_, err := s.Append([]byte("abc"))
	assert.ErrorIs(t, err, sinkErr)

	// Position does not advance past a failed append.
	assert.Equal(t, Pos(0), s.Pos())
}
