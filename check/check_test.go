package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arkiv/wire"
)

func TestWindow(t *testing.T) {
	c := New(make([]byte, 16), wire.DefaultFormat())

	b, err := c.Window(4, 8, 4)
	require.NoError(t, err)
	assert.Len(t, b, 8)

	// Zero-size windows at the end are fine.
	_, err = c.Window(16, 0, 1)
	require.NoError(t, err)
}

func TestWindowOutOfBounds(t *testing.T) {
	c := New(make([]byte, 16), wire.DefaultFormat())

	var target *ErrOutOfBounds

	_, err := c.Window(12, 8, 1)
	require.ErrorAs(t, err, &target)
	assert.Equal(t, uint64(12), target.Pos)
	assert.Equal(t, 8, target.Size)
	assert.Equal(t, 16, target.BufLen)

	_, err = c.Window(17, 0, 1)
	assert.ErrorAs(t, err, &target)

	_, err = c.Window(0, -1, 1)
	assert.ErrorAs(t, err, &target)
}

func TestWindowMisaligned(t *testing.T) {
	c := New(make([]byte, 16), wire.DefaultFormat())

	_, err := c.Window(2, 4, 4)

	var target *ErrMisaligned
	require.ErrorAs(t, err, &target)
	assert.Equal(t, uint64(2), target.Pos)
	assert.Equal(t, 4, target.Align)
}

func TestWindowBudgetExhaustion(t *testing.T) {
	c := New(make([]byte, 16), wire.DefaultFormat(), func(o *Options) {
		o.WorkBudget = 8
	})

	_, err := c.Window(0, 8, 1)
	require.NoError(t, err)

	_, err = c.Window(0, 8, 1)

	var target *ErrRecursionLimit
	require.ErrorAs(t, err, &target)
	assert.Contains(t, target.Reason, "budget")
}

func TestDeref(t *testing.T) {
	f := wire.DefaultFormat()
	data := make([]byte, 16)

	// A pointer at position 8 referring back to position 4.
	off, err := f.Resolve(8, 4)
	require.NoError(t, err)
	f.PutOffset(data[8:], off)

	c := New(data, f)

	target, err := c.Deref(8)
	require.NoError(t, err)
	assert.Equal(t, wire.Pos(4), target)
}

func TestDerefOutOfBounds(t *testing.T) {
	f := wire.DefaultFormat()

	t.Run("before buffer start", func(t *testing.T) {
		data := make([]byte, 16)
		f.PutOffset(data[0:], -1)

		c := New(data, f)

		_, err := c.Deref(0)
		var target *ErrOutOfBounds
		assert.ErrorAs(t, err, &target)
	})

	t.Run("past buffer end", func(t *testing.T) {
		data := make([]byte, 16)
		f.PutOffset(data[0:], 17)

		c := New(data, f)

		_, err := c.Deref(0)
		var target *ErrOutOfBounds
		assert.ErrorAs(t, err, &target)
	})
}

func TestFollowDetectsCycle(t *testing.T) {
	c := New(make([]byte, 16), wire.DefaultFormat())

	release, err := c.Follow(4)
	require.NoError(t, err)

	_, err = c.Follow(4)

	var target *ErrRecursionLimit
	require.ErrorAs(t, err, &target)
	assert.Contains(t, target.Reason, "cycle")

	// After release the position may be followed again.
	release()

	release, err = c.Follow(4)
	require.NoError(t, err)
	release()
}

func TestFollowDepthLimit(t *testing.T) {
	c := New(make([]byte, 16), wire.DefaultFormat(), func(o *Options) {
		o.MaxDepth = 2
	})

	r1, err := c.Follow(0)
	require.NoError(t, err)
	defer r1()

	r2, err := c.Follow(1)
	require.NoError(t, err)
	defer r2()

	_, err = c.Follow(2)

	var target *ErrRecursionLimit
	require.ErrorAs(t, err, &target)
	assert.Contains(t, target.Reason, "depth")
	assert.Equal(t, 2, target.Depth)
}
