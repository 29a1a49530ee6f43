package arkiv

import (
	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

// Discriminants of archived Either values.
const (
	TagLeft  byte = 0
	TagRight byte = 1
)

// Either is a two-variant native value for EitherOf.
type Either[L any, R any] struct {
	right bool
	l     L
	r     R
}

// Left constructs an Either holding the left variant.
func Left[L any, R any](v L) Either[L, R] { return Either[L, R]{l: v} }

// Right constructs an Either holding the right variant.
func Right[L any, R any](v R) Either[L, R] { return Either[L, R]{right: true, r: v} }

// IsRight reports which variant is held.
func (e Either[L, R]) IsRight() bool { return e.right }

// EitherOf returns the archiver for a two-variant tagged union. The archived
// form is a one-byte discriminant followed by a payload region sized and
// aligned for the larger variant. Validation rejects any discriminant other
// than TagLeft and TagRight before the payload bytes are interpreted.
func EitherOf[L any, VL any, R any, VR any](left Type[L, VL], right Type[R, VR]) Type[Either[L, R], Union[VL, VR]] {
	return eitherType[L, VL, R, VR]{left: left, right: right}
}

type eitherType[L any, VL any, R any, VR any] struct {
	left  Type[L, VL]
	right Type[R, VR]
}

type eitherResolver struct {
	r Resolver
}

func (e eitherType[L, VL, R, VR]) payloadAlign(f wire.Format) int {
	return max(e.left.Align(f), e.right.Align(f))
}

func (e eitherType[L, VL, R, VR]) payloadOffset(f wire.Format) int {
	return wire.AlignUp(1, e.payloadAlign(f))
}

func (e eitherType[L, VL, R, VR]) Size(f wire.Format) int {
	return e.payloadOffset(f) + max(e.left.Size(f), e.right.Size(f))
}

func (e eitherType[L, VL, R, VR]) Align(f wire.Format) int {
	return max(1, e.payloadAlign(f))
}

func (e eitherType[L, VL, R, VR]) Resolve(w wire.Writer, v Either[L, R]) (Resolver, error) {
	var (
		r   Resolver
		err error
	)
	if v.right {
		r, err = e.right.Resolve(w, v.r)
	} else {
		r, err = e.left.Resolve(w, v.l)
	}
	if err != nil {
		return nil, err
	}
	return eitherResolver{r: r}, nil
}

func (e eitherType[L, VL, R, VR]) Write(dst []byte, pos wire.Pos, f wire.Format, v Either[L, R], r Resolver) error {
	er := r.(eitherResolver)
	clear(dst[:e.Size(f)])
	off := e.payloadOffset(f)
	if v.right {
		dst[0] = TagRight
		return e.right.Write(dst[off:off+e.right.Size(f)], pos+wire.Pos(off), f, v.r, er.r)
	}
	dst[0] = TagLeft
	return e.left.Write(dst[off:off+e.left.Size(f)], pos+wire.Pos(off), f, v.l, er.r)
}

func (e eitherType[L, VL, R, VR]) Check(c *check.Checker, pos wire.Pos) error {
	f := c.Format()
	b, err := c.Window(pos, e.Size(f), e.Align(f))
	if err != nil {
		return err
	}
	payload := pos + wire.Pos(e.payloadOffset(f))
	switch b[0] {
	case TagLeft:
		return e.left.Check(c, payload)
	case TagRight:
		return e.right.Check(c, payload)
	default:
		return &check.ErrInvalidDiscriminant{Pos: uint64(pos), Tag: b[0]}
	}
}

func (e eitherType[L, VL, R, VR]) View(a *Archive, pos wire.Pos) Union[VL, VR] {
	return Union[VL, VR]{
		tag:       a.data[pos],
		a:         a,
		pos:       pos + wire.Pos(e.payloadOffset(a.f)),
		leftView:  e.left.View,
		rightView: e.right.View,
	}
}

// Union is the zero-copy view of an archived two-variant tagged union.
type Union[VL any, VR any] struct {
	tag       byte
	a         *Archive
	pos       wire.Pos
	leftView  func(*Archive, wire.Pos) VL
	rightView func(*Archive, wire.Pos) VR
}

// Tag returns the discriminant.
func (u Union[VL, VR]) Tag() byte { return u.tag }

// Left returns the left payload view and whether the union holds it.
func (u Union[VL, VR]) Left() (VL, bool) {
	if u.tag != TagLeft {
		var zero VL
		return zero, false
	}
	return u.leftView(u.a, u.pos), true
}

// Right returns the right payload view and whether the union holds it.
func (u Union[VL, VR]) Right() (VR, bool) {
	if u.tag != TagRight {
		var zero VR
		return zero, false
	}
	return u.rightView(u.a, u.pos), true
}
