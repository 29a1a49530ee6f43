package arkiv

import (
	"iter"

	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/internal/conv"
	"github.com/hupe1980/arkiv/wire"
)

// SliceOf returns the archiver for []T. The archived form is a header of one
// relative pointer plus one length word; the elements are written
// contiguously, out of line, before the header. An empty slice stores the
// null sentinel and no element block.
func SliceOf[T any, V any](elem Type[T, V]) Type[[]T, Slice[V]] {
	return sliceType[T, V]{elem: elem}
}

type sliceType[T any, V any] struct {
	elem Type[T, V]
}

type sliceResolver struct {
	data wire.Pos
	n    int
}

func (s sliceType[T, V]) Size(f wire.Format) int { return 2 * f.WordSize() }

func (s sliceType[T, V]) Align(f wire.Format) int { return f.Alignment(f.WordSize()) }

func (s sliceType[T, V]) Resolve(w wire.Writer, v []T) (Resolver, error) {
	if len(v) == 0 {
		return sliceResolver{}, nil
	}
	f := w.Format()

	// Depth-first: element out-of-line data lands before the element block.
	rs := make([]Resolver, len(v))
	for i, e := range v {
		r, err := s.elem.Resolve(w, e)
		if err != nil {
			return nil, err
		}
		rs[i] = r
	}

	if err := w.Align(s.elem.Align(f)); err != nil {
		return nil, err
	}
	start := w.Pos()
	esz := s.elem.Size(f)
	block := make([]byte, esz*len(v))
	for i, e := range v {
		at := wire.Pos(i * esz)
		if err := s.elem.Write(block[at:int(at)+esz], start+at, f, e, rs[i]); err != nil {
			return nil, err
		}
	}
	if _, err := w.Append(block); err != nil {
		return nil, err
	}
	return sliceResolver{data: start, n: len(v)}, nil
}

func (s sliceType[T, V]) Write(dst []byte, pos wire.Pos, f wire.Format, _ []T, r Resolver) error {
	sr := r.(sliceResolver)
	return putHeader(dst, pos, f, sr.data, sr.n)
}

func (s sliceType[T, V]) Check(c *check.Checker, pos wire.Pos) error {
	f := c.Format()
	data, n, err := checkHeader(c, pos, s.Align(f))
	if err != nil || n == 0 {
		return err
	}

	release, err := c.Follow(pos)
	if err != nil {
		return err
	}
	defer release()

	esz := s.elem.Size(f)
	if _, err := c.Window(data, n*esz, s.elem.Align(f)); err != nil {
		return err
	}
	for i := range n {
		if err := s.elem.Check(c, data+wire.Pos(i*esz)); err != nil {
			return err
		}
	}
	return nil
}

func (s sliceType[T, V]) View(a *Archive, pos wire.Pos) Slice[V] {
	data, n := a.headerAt(pos)
	return Slice[V]{
		a:    a,
		data: data,
		n:    n,
		size: s.elem.Size(a.f),
		view: s.elem.View,
	}
}

// Slice is the zero-copy view of an archived []T. Element access returns
// nested views over the same buffer; nothing is copied.
type Slice[V any] struct {
	a    *Archive
	data wire.Pos
	n    int
	size int
	view func(*Archive, wire.Pos) V
}

// Len returns the number of elements.
func (s Slice[V]) Len() int { return s.n }

// At returns the view of element i. It panics when i is out of range,
// mirroring Go slice indexing.
func (s Slice[V]) At(i int) V {
	if i < 0 || i >= s.n {
		panic("arkiv: slice index out of range")
	}
	return s.view(s.a, s.data+wire.Pos(i*s.size))
}

// All iterates over index/element pairs.
func (s Slice[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i := 0; i < s.n; i++ {
			if !yield(i, s.view(s.a, s.data+wire.Pos(i*s.size))) {
				return
			}
		}
	}
}

// putHeader renders the relative pointer + length header shared by slices,
// strings and maps. n == 0 stores the null sentinel.
func putHeader(dst []byte, pos wire.Pos, f wire.Format, target wire.Pos, n int) error {
	ws := f.WordSize()
	if n == 0 {
		clear(dst[:2*ws])
		return nil
	}
	off, err := f.Resolve(pos, target)
	if err != nil {
		return err
	}
	f.PutOffset(dst[:ws], off)
	return f.PutUint(dst[ws:2*ws], uint64(n))
}

// checkHeader proves a pointer + length header and returns the element block
// position and count. A zero length is the sentinel: no target is computed
// and none may be dereferenced.
func checkHeader(c *check.Checker, pos wire.Pos, align int) (wire.Pos, int, error) {
	f := c.Format()
	ws := f.WordSize()
	hdr, err := c.Window(pos, 2*ws, align)
	if err != nil {
		return 0, 0, err
	}
	n64 := f.Uint(hdr[ws:])
	if n64 == 0 {
		return 0, 0, nil
	}
	n, cErr := conv.Uint64ToInt(n64)
	if cErr != nil {
		n = c.Len() + 1
	}
	// No element is smaller than one byte, so a count beyond the buffer
	// length can never be valid.
	if n > c.Len() {
		return 0, 0, &check.ErrOutOfBounds{Pos: uint64(pos), Size: n, BufLen: c.Len()}
	}
	data, err := c.Deref(pos)
	if err != nil {
		return 0, 0, err
	}
	return data, n, nil
}

// headerAt is the trusted read-side inverse of putHeader.
func (a *Archive) headerAt(pos wire.Pos) (wire.Pos, int) {
	ws := wire.Pos(a.f.WordSize())
	n := int(a.uintAt(pos + ws))
	if n == 0 {
		return 0, 0
	}
	return a.target(pos), n
}
