package arkiv

import (
	"time"

	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/wire"
)

// Marshal archives v into a single contiguous buffer. The root value's
// archived bytes are the trailing Size bytes of the buffer; everything it
// owns is written before it, reachable through relative pointers.
//
// On failure no partial archive is returned.
func Marshal[T any, V any](t Type[T, V], v T, optFns ...Option) ([]byte, error) {
	o := applyOptions(optFns)
	start := time.Now()

	w := wire.NewBuffer(o.format)
	_, err := MarshalTo(w, t, v)

	o.metrics.RecordMarshal(w.Len(), time.Since(start), err)
	o.logger.WithFormat(o.format).LogMarshal(w.Len(), time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// MarshalTo archives v into an existing writer and returns the position of
// the root value's in-place bytes. Use it to pack several values into one
// buffer or to serialize straight to an io.Writer-backed wire.Stream; note
// that Access expects the buffer produced by Marshal, with the root at the
// trailing bytes.
func MarshalTo[T any, V any](w wire.Writer, t Type[T, V], v T) (wire.Pos, error) {
	f := w.Format()

	r, err := t.Resolve(w, v)
	if err != nil {
		return 0, err
	}

	if err := w.Align(t.Align(f)); err != nil {
		return 0, err
	}
	pos := w.Pos()
	dst := make([]byte, t.Size(f))
	if err := t.Write(dst, pos, f, v, r); err != nil {
		return 0, err
	}
	if _, err := w.Append(dst); err != nil {
		return 0, err
	}
	return pos, nil
}

// Validate proves that data holds a valid archive of t's shape, with the
// root value at the trailing bytes. It never trusts a single byte it has not
// bounds- and layout-checked, and it is guaranteed to terminate on
// adversarial input.
func Validate[T any, V any](t Type[T, V], data []byte, optFns ...Option) error {
	o := applyOptions(optFns)
	start := time.Now()
	err := validate(t, data, o)
	o.metrics.RecordValidate(len(data), time.Since(start), err)
	o.logger.WithFormat(o.format).LogValidate(len(data), time.Since(start), err)
	return err
}

func validate[T any, V any](t Type[T, V], data []byte, o options) error {
	root, err := rootPos(t, data, o.format)
	if err != nil {
		return err
	}
	c := check.New(data, o.format, func(co *check.Options) {
		co.MaxDepth = o.maxDepth
		co.WorkBudget = o.workBudget
	})
	return t.Check(c, root)
}

// Access validates data and returns the zero-copy view of the root value.
// This is the only sanctioned way to read an archive received from an
// untrusted source: a buffer that fails validation is never exposed through
// a view.
func Access[T any, V any](t Type[T, V], data []byte, optFns ...Option) (V, error) {
	o := applyOptions(optFns)
	start := time.Now()

	err := validate(t, data, o)
	o.metrics.RecordValidate(len(data), time.Since(start), err)
	o.logger.WithFormat(o.format).LogValidate(len(data), time.Since(start), err)

	if err != nil {
		var zero V
		return zero, err
	}
	root, _ := rootPos(t, data, o.format)
	return t.View(NewArchive(data, o.format), root), nil
}

// AccessUnchecked returns the root view without validating. Only use it on
// buffers produced by Marshal in the same process or otherwise fully trusted;
// on corrupt input the view may panic or read garbage.
func AccessUnchecked[T any, V any](t Type[T, V], data []byte, optFns ...Option) (V, error) {
	o := applyOptions(optFns)
	root, err := rootPos(t, data, o.format)
	if err != nil {
		var zero V
		return zero, err
	}
	return t.View(NewArchive(data, o.format), root), nil
}

// rootPos locates the root value: the trailing Size bytes of the buffer.
func rootPos(t Layout, data []byte, f wire.Format) (wire.Pos, error) {
	size := t.Size(f)
	if len(data) < size {
		return 0, &ErrBufferTooShort{Len: len(data), Need: size}
	}
	return wire.Pos(len(data) - size), nil
}
