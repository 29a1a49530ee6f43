package arkiv

import (
	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

// StructLayout computes the fixed in-place layout of an aggregate from its
// field layouts: fields are placed in declaration order at their natural
// alignment, and the struct is padded to the largest field alignment.
//
// Generated code for a user-defined struct embeds a StructLayout for the
// shape and the validation pass, and adds the Resolve/Write/View halves for
// its concrete field types.
type StructLayout struct {
	fields []Layout
}

// NewStructLayout creates the layout of an aggregate with the given fields.
func NewStructLayout(fields ...Layout) *StructLayout {
	return &StructLayout{fields: fields}
}

// FieldOffset returns the in-place offset of field i under a format.
func (s *StructLayout) FieldOffset(f wire.Format, i int) int {
	off := 0
	for j, fl := range s.fields {
		off = wire.AlignUp(off, fl.Align(f))
		if j == i {
			return off
		}
		off += fl.Size(f)
	}
	panic("arkiv: field index out of range")
}

// Size returns the padded in-place size of the aggregate.
func (s *StructLayout) Size(f wire.Format) int {
	off := 0
	for _, fl := range s.fields {
		off = wire.AlignUp(off, fl.Align(f))
		off += fl.Size(f)
	}
	return wire.AlignUp(max(off, 1), s.Align(f))
}

// Align returns the largest field alignment.
func (s *StructLayout) Align(f wire.Format) int {
	align := 1
	for _, fl := range s.fields {
		align = max(align, fl.Align(f))
	}
	return align
}

// Check proves every field in place.
func (s *StructLayout) Check(c *check.Checker, pos wire.Pos) error {
	f := c.Format()
	if _, err := c.Window(pos, s.Size(f), s.Align(f)); err != nil {
		return err
	}
	off := 0
	for _, fl := range s.fields {
		off = wire.AlignUp(off, fl.Align(f))
		if err := fl.Check(c, pos+wire.Pos(off)); err != nil {
			return err
		}
		off += fl.Size(f)
	}
	return nil
}

var _ Layout = (*StructLayout)(nil)

// UnionLayout computes the fixed in-place layout of a tagged union from its
// declared variants: a one-byte discriminant followed by a payload region
// sized and aligned for the largest variant. Any discriminant outside the
// declared set fails validation before payload bytes are interpreted.
//
// Generated code for a user-defined enum embeds a UnionLayout the same way
// struct code embeds a StructLayout.
type UnionLayout struct {
	variants map[byte]Layout
}

// NewUnionLayout creates the layout of a union with the given variants,
// keyed by discriminant.
func NewUnionLayout(variants map[byte]Layout) *UnionLayout {
	return &UnionLayout{variants: variants}
}

// PayloadOffset returns the in-place offset of the payload region.
func (u *UnionLayout) PayloadOffset(f wire.Format) int {
	return wire.AlignUp(1, u.payloadAlign(f))
}

func (u *UnionLayout) payloadAlign(f wire.Format) int {
	align := 1
	for _, vl := range u.variants {
		align = max(align, vl.Align(f))
	}
	return align
}

// Size returns the in-place size: the padded tag plus the largest variant.
func (u *UnionLayout) Size(f wire.Format) int {
	size := 0
	for _, vl := range u.variants {
		size = max(size, vl.Size(f))
	}
	return u.PayloadOffset(f) + size
}

// Align returns the union's required alignment.
func (u *UnionLayout) Align(f wire.Format) int {
	return max(1, u.payloadAlign(f))
}

// Check proves the discriminant is declared and the selected variant's
// payload is valid.
func (u *UnionLayout) Check(c *check.Checker, pos wire.Pos) error {
	f := c.Format()
	b, err := c.Window(pos, u.Size(f), u.Align(f))
	if err != nil {
		return err
	}
	vl, ok := u.variants[b[0]]
	if !ok {
		return &check.ErrInvalidDiscriminant{Pos: uint64(pos), Tag: b[0]}
	}
	return vl.Check(c, pos+wire.Pos(u.PayloadOffset(f)))
}

var _ Layout = (*UnionLayout)(nil)
