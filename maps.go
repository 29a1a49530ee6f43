package arkiv

import (
	"cmp"
	"iter"
	"slices"

	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

// MapOf returns the archiver for map[K]T. The archived form is a pointer +
// length header over a block of key/value entries sorted by key, so lookups
// on the view are binary searches. Keys are restricted to ordered types whose
// views are the native value itself (numbers, strings).
func MapOf[K cmp.Ordered, T any, VT any](key Type[K, K], val Type[T, VT]) Type[map[K]T, Map[K, VT]] {
	return mapType[K, T, VT]{key: key, val: val}
}

type mapType[K cmp.Ordered, T any, VT any] struct {
	key Type[K, K]
	val Type[T, VT]
}

type mapResolver struct {
	data wire.Pos
	n    int
}

// entry geometry under a format: the value is placed after the key, padded
// to its alignment, and entries repeat at entrySize strides.
func (m mapType[K, T, VT]) geometry(f wire.Format) (valOff, entrySize, entryAlign int) {
	entryAlign = max(m.key.Align(f), m.val.Align(f))
	valOff = wire.AlignUp(m.key.Size(f), m.val.Align(f))
	entrySize = wire.AlignUp(valOff+m.val.Size(f), entryAlign)
	return valOff, entrySize, entryAlign
}

func (m mapType[K, T, VT]) Size(f wire.Format) int { return 2 * f.WordSize() }

func (m mapType[K, T, VT]) Align(f wire.Format) int { return f.Alignment(f.WordSize()) }

func (m mapType[K, T, VT]) Resolve(w wire.Writer, v map[K]T) (Resolver, error) {
	if len(v) == 0 {
		return mapResolver{}, nil
	}
	f := w.Format()

	keys := make([]K, 0, len(v))
	for k := range v {
		// NaN compares unequal to everything including itself, so the key
		// would sort nowhere and Get could never find the entry again.
		if k != k {
			return nil, &ErrInvalidKey{Reason: "key is not equal to itself (NaN)"}
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	keyRs := make([]Resolver, len(keys))
	valRs := make([]Resolver, len(keys))
	for i, k := range keys {
		kr, err := m.key.Resolve(w, k)
		if err != nil {
			return nil, err
		}
		vr, err := m.val.Resolve(w, v[k])
		if err != nil {
			return nil, err
		}
		keyRs[i], valRs[i] = kr, vr
	}

	valOff, entrySize, entryAlign := m.geometry(f)
	if err := w.Align(entryAlign); err != nil {
		return nil, err
	}
	start := w.Pos()
	block := make([]byte, entrySize*len(keys))
	for i, k := range keys {
		at := i * entrySize
		entryPos := start + wire.Pos(at)
		if err := m.key.Write(block[at:at+m.key.Size(f)], entryPos, f, k, keyRs[i]); err != nil {
			return nil, err
		}
		if err := m.val.Write(block[at+valOff:at+valOff+m.val.Size(f)], entryPos+wire.Pos(valOff), f, v[k], valRs[i]); err != nil {
			return nil, err
		}
	}
	if _, err := w.Append(block); err != nil {
		return nil, err
	}
	return mapResolver{data: start, n: len(keys)}, nil
}

func (m mapType[K, T, VT]) Write(dst []byte, pos wire.Pos, f wire.Format, _ map[K]T, r Resolver) error {
	mr := r.(mapResolver)
	return putHeader(dst, pos, f, mr.data, mr.n)
}

func (m mapType[K, T, VT]) Check(c *check.Checker, pos wire.Pos) error {
	f := c.Format()
	data, n, err := checkHeader(c, pos, m.Align(f))
	if err != nil || n == 0 {
		return err
	}

	release, err := c.Follow(pos)
	if err != nil {
		return err
	}
	defer release()

	valOff, entrySize, entryAlign := m.geometry(f)
	if _, err := c.Window(data, n*entrySize, f.Alignment(entryAlign)); err != nil {
		return err
	}

	// Entries must be strictly increasing by key, or binary-search lookups
	// on the view would silently miss entries.
	a := NewArchive(c.Data(), f)
	var prev K
	for i := range n {
		entryPos := data + wire.Pos(i*entrySize)
		if err := m.key.Check(c, entryPos); err != nil {
			return err
		}
		if err := m.val.Check(c, entryPos+wire.Pos(valOff)); err != nil {
			return err
		}
		k := m.key.View(a, entryPos)
		if i > 0 && k <= prev {
			return &check.ErrInvalidValue{Pos: uint64(entryPos), Reason: "map entries out of key order"}
		}
		prev = k
	}
	return nil
}

func (m mapType[K, T, VT]) View(a *Archive, pos wire.Pos) Map[K, VT] {
	data, n := a.headerAt(pos)
	valOff, entrySize, _ := m.geometry(a.f)
	return Map[K, VT]{
		a:       a,
		data:    data,
		n:       n,
		valOff:  valOff,
		size:    entrySize,
		keyView: m.key.View,
		valView: m.val.View,
	}
}

// Map is the zero-copy view of an archived map. Lookups binary-search the
// sorted entry block.
type Map[K cmp.Ordered, VT any] struct {
	a       *Archive
	data    wire.Pos
	n       int
	valOff  int
	size    int
	keyView func(*Archive, wire.Pos) K
	valView func(*Archive, wire.Pos) VT
}

// Len returns the number of entries.
func (m Map[K, VT]) Len() int { return m.n }

// Get returns the view of the value stored under k.
func (m Map[K, VT]) Get(k K) (VT, bool) {
	lo, hi := 0, m.n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		mk := m.keyView(m.a, m.entryPos(mid))
		switch {
		case mk < k:
			lo = mid + 1
		case mk > k:
			hi = mid
		default:
			return m.valView(m.a, m.entryPos(mid)+wire.Pos(m.valOff)), true
		}
	}
	var zero VT
	return zero, false
}

// All iterates over entries in key order.
func (m Map[K, VT]) All() iter.Seq2[K, VT] {
	return func(yield func(K, VT) bool) {
		for i := 0; i < m.n; i++ {
			pos := m.entryPos(i)
			if !yield(m.keyView(m.a, pos), m.valView(m.a, pos+wire.Pos(m.valOff))) {
				return
			}
		}
	}
}

func (m Map[K, VT]) entryPos(i int) wire.Pos {
	return m.data + wire.Pos(i*m.size)
}
