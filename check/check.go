package check

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/arkiv/wire"
)

const (
	// DefaultMaxDepth is the default bound on nested pointer traversal.
	DefaultMaxDepth = 64

	// DefaultBudgetFactor scales the default work budget: each byte of the
	// buffer may be window-checked this many times before the pass is cut
	// off.
	DefaultBudgetFactor = 8

	// minBudget keeps validation of tiny buffers from starving.
	minBudget = 4096
)

// Options controls the safety bounds of a validation pass.
type Options struct {
	// MaxDepth bounds nested pointer traversal depth.
	MaxDepth int

	// WorkBudget bounds the total number of bytes the pass may check.
	// Zero or negative selects the default, proportional to buffer size.
	WorkBudget int
}

// Checker is the transient state of one validation pass over an untrusted
// buffer. It is created per pass and discarded afterwards.
type Checker struct {
	data     []byte
	f        wire.Format
	maxDepth int
	depth    int
	budget   int
	inflight *roaring64.Bitmap
}

// New creates a validation pass over data under the given wire format.
func New(data []byte, f wire.Format, optFns ...func(o *Options)) *Checker {
	opts := Options{
		MaxDepth: DefaultMaxDepth,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	budget := opts.WorkBudget
	if budget <= 0 {
		budget = max(len(data)*DefaultBudgetFactor, minBudget)
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &Checker{
		data:     data,
		f:        f,
		maxDepth: opts.MaxDepth,
		budget:   budget,
		inflight: roaring64.New(),
	}
}

// Format returns the wire format of the pass.
func (c *Checker) Format() wire.Format { return c.f }

// Len returns the buffer length.
func (c *Checker) Len() int { return len(c.data) }

// Data returns the buffer under validation. Callers must not mutate it.
func (c *Checker) Data() []byte { return c.data }

// Window proves that size bytes at pos lie within the buffer and satisfy the
// given alignment, charges them against the work budget, and returns them.
func (c *Checker) Window(pos wire.Pos, size, align int) ([]byte, error) {
	n := uint64(len(c.data))
	if size < 0 || uint64(pos) > n || uint64(size) > n-uint64(pos) {
		return nil, &ErrOutOfBounds{Pos: uint64(pos), Size: size, BufLen: len(c.data)}
	}
	if align > 1 && uint64(pos)%uint64(align) != 0 {
		return nil, &ErrMisaligned{Pos: uint64(pos), Align: align}
	}
	c.budget -= max(size, 1)
	if c.budget < 0 {
		return nil, &ErrRecursionLimit{Pos: uint64(pos), Depth: c.depth, Reason: "work budget exhausted"}
	}
	return c.data[pos : int(pos)+size], nil
}

// Bytes proves n unaligned payload bytes at pos and returns them.
func (c *Checker) Bytes(pos wire.Pos, n int) ([]byte, error) {
	return c.Window(pos, n, 1)
}

// Deref reads the offset word stored at pos and returns the absolute target
// position, proving that it lies within the buffer. It does not prove
// anything about the bytes at the target; callers window those separately.
func (c *Checker) Deref(pos wire.Pos) (wire.Pos, error) {
	ws := c.f.WordSize()
	b, err := c.Window(pos, ws, c.f.Alignment(ws))
	if err != nil {
		return 0, err
	}
	t, ok := wire.Target(pos, c.f.Offset(b))
	if !ok || uint64(t) > uint64(len(c.data)) {
		return 0, &ErrOutOfBounds{Pos: uint64(pos), Size: ws, BufLen: len(c.data)}
	}
	return t, nil
}

// Follow marks the pointer at pos as being traversed and returns a release
// function to call once its subtree has been checked. Following a pointer
// that is already being followed, or exceeding the depth bound, fails with
// *ErrRecursionLimit; this is what terminates validation of self-referential
// offsets.
func (c *Checker) Follow(pos wire.Pos) (func(), error) {
	if c.depth >= c.maxDepth {
		return nil, &ErrRecursionLimit{Pos: uint64(pos), Depth: c.depth, Reason: "max depth exceeded"}
	}
	if c.inflight.Contains(uint64(pos)) {
		return nil, &ErrRecursionLimit{Pos: uint64(pos), Depth: c.depth, Reason: "pointer cycle detected"}
	}
	c.inflight.Add(uint64(pos))
	c.depth++
	return func() {
		c.depth--
		c.inflight.Remove(uint64(pos))
	}, nil
}
