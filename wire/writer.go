package wire

import "io"

// Writer is an append-only sink that knows the position of every write.
// Implementations assign strictly increasing positions and are not safe for
// concurrent use.
type Writer interface {
	// Format returns the wire format the archive is written under.
	Format() Format

	// Pos returns the position the next appended byte will land at.
	Pos() Pos

	// Append writes p and returns the position its first byte landed at.
	// A failed append leaves the reported position unchanged; a single
	// Append is never partially applied from the caller's point of view.
	Append(p []byte) (Pos, error)

	// Align pads with zero bytes so the next append lands on a multiple
	// of n. It is a no-op under a NoPadding format.
	Align(n int) error
}

// Buffer is the in-memory Writer used to build archives.
//
// Beyond the Writer contract it supports reserving zeroed space and patching
// already-reserved bytes, which is the only sanctioned way to write at a
// position that has already been assigned.
type Buffer struct {
	f   Format
	buf []byte
}

// NewBuffer creates an empty in-memory writer for the given format.
func NewBuffer(f Format) *Buffer {
	return &Buffer{f: f}
}

// Format returns the wire format.
func (b *Buffer) Format() Format { return b.f }

// Pos returns the position the next write will land at.
func (b *Buffer) Pos() Pos { return Pos(len(b.buf)) }

// Append writes p and returns the position of its first byte.
func (b *Buffer) Append(p []byte) (Pos, error) {
	pos := Pos(len(b.buf))
	b.buf = append(b.buf, p...)
	return pos, nil
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// Align pads with zero bytes so the next write lands on a multiple of n.
func (b *Buffer) Align(n int) error {
	n = b.f.Alignment(n)
	if n <= 1 {
		return nil
	}
	pad := AlignUp(len(b.buf), n) - len(b.buf)
	for range pad {
		b.buf = append(b.buf, 0)
	}
	return nil
}

// Reserve appends n zero bytes and returns the position of the first one.
// The reserved window may later be filled with PatchAt.
func (b *Buffer) Reserve(n int) (Pos, error) {
	pos := Pos(len(b.buf))
	b.buf = append(b.buf, make([]byte, n)...)
	return pos, nil
}

// PatchAt overwrites already-written bytes at pos. It never extends the
// buffer; patching outside the written region fails.
func (b *Buffer) PatchAt(pos Pos, p []byte) error {
	if int(pos)+len(p) > len(b.buf) {
		return &ErrPatchOutOfRange{Pos: pos, Len: len(p), End: Pos(len(b.buf))}
	}
	copy(b.buf[pos:], p)
	return nil
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.buf) }

// Bytes returns the written bytes. The slice aliases the writer's internal
// buffer and is only valid until the next write.
func (b *Buffer) Bytes() []byte { return b.buf }

// Reset truncates the buffer, retaining capacity.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

var _ Writer = (*Buffer)(nil)
var _ io.Writer = (*Buffer)(nil)

var zeros [64]byte

// Stream is a Writer over an arbitrary io.Writer. It tracks positions but
// cannot patch: it is suitable for straight-line serialization where all
// out-of-line data is written before the pointers referring to it.
type Stream struct {
	f   Format
	w   io.Writer
	pos Pos
}

// NewStream creates a position-tracking writer over w.
func NewStream(w io.Writer, f Format) *Stream {
	return &Stream{f: f, w: w}
}

// Format returns the wire format.
func (s *Stream) Format() Format { return s.f }

// Pos returns the position the next write will land at.
func (s *Stream) Pos() Pos { return s.pos }

// Append writes p to the underlying sink. Sink failures are propagated
// untouched; the position only advances on full success.
func (s *Stream) Append(p []byte) (Pos, error) {
	pos := s.pos
	if _, err := s.w.Write(p); err != nil {
		return 0, err
	}
	s.pos += Pos(len(p))
	return pos, nil
}

// Align writes zero bytes so the next append lands on a multiple of n.
func (s *Stream) Align(n int) error {
	n = s.f.Alignment(n)
	if n <= 1 {
		return nil
	}
	pad := AlignUp(int(s.pos), n) - int(s.pos)
	for pad > 0 {
		chunk := min(pad, len(zeros))
		if _, err := s.Append(zeros[:chunk]); err != nil {
			return err
		}
		pad -= chunk
	}
	return nil
}

var _ Writer = (*Stream)(nil)
