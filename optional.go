package arkiv

import (
	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

// Tag values of archived optionals.
const (
	tagNone byte = 0
	tagSome byte = 1
)

// OptionalOf returns the archiver for *T, where nil archives as "none". The
// archived form is a one-byte tag followed by the payload inline, padded to
// the payload's alignment. A none value zeroes the payload region.
func OptionalOf[T any, V any](elem Type[T, V]) Type[*T, Optional[V]] {
	return optionalType[T, V]{elem: elem}
}

type optionalType[T any, V any] struct {
	elem Type[T, V]
}

type optionalResolver struct {
	some bool
	r    Resolver
}

func (o optionalType[T, V]) payloadOffset(f wire.Format) int {
	return wire.AlignUp(1, o.elem.Align(f))
}

func (o optionalType[T, V]) Size(f wire.Format) int {
	return o.payloadOffset(f) + o.elem.Size(f)
}

func (o optionalType[T, V]) Align(f wire.Format) int {
	return max(1, o.elem.Align(f))
}

func (o optionalType[T, V]) Resolve(w wire.Writer, v *T) (Resolver, error) {
	if v == nil {
		return optionalResolver{}, nil
	}
	r, err := o.elem.Resolve(w, *v)
	if err != nil {
		return nil, err
	}
	return optionalResolver{some: true, r: r}, nil
}

func (o optionalType[T, V]) Write(dst []byte, pos wire.Pos, f wire.Format, v *T, r Resolver) error {
	or := r.(optionalResolver)
	if !or.some {
		clear(dst[:o.Size(f)])
		return nil
	}
	off := o.payloadOffset(f)
	clear(dst[1:off])
	dst[0] = tagSome
	return o.elem.Write(dst[off:], pos+wire.Pos(off), f, *v, or.r)
}

func (o optionalType[T, V]) Check(c *check.Checker, pos wire.Pos) error {
	f := c.Format()
	b, err := c.Window(pos, o.Size(f), o.Align(f))
	if err != nil {
		return err
	}
	switch b[0] {
	case tagNone:
		return nil
	case tagSome:
		return o.elem.Check(c, pos+wire.Pos(o.payloadOffset(f)))
	default:
		return &check.ErrInvalidDiscriminant{Pos: uint64(pos), Tag: b[0]}
	}
}

func (o optionalType[T, V]) View(a *Archive, pos wire.Pos) Optional[V] {
	if a.data[pos] == tagNone {
		return Optional[V]{}
	}
	return Optional[V]{
		some: true,
		a:    a,
		pos:  pos + wire.Pos(o.payloadOffset(a.f)),
		view: o.elem.View,
	}
}

// Optional is the zero-copy view of an archived optional value.
type Optional[V any] struct {
	some bool
	a    *Archive
	pos  wire.Pos
	view func(*Archive, wire.Pos) V
}

// IsSome reports whether a value is present.
func (o Optional[V]) IsSome() bool { return o.some }

// Value returns the payload view and whether it is present.
func (o Optional[V]) Value() (V, bool) {
	if !o.some {
		var zero V
		return zero, false
	}
	return o.view(o.a, o.pos), true
}

// Must returns the payload view and panics when none is present.
func (o Optional[V]) Must() V {
	v, ok := o.Value()
	if !ok {
		panic("arkiv: optional holds no value")
	}
	return v
}
