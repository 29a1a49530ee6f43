package arkiv

import (
	"github.com/hupe1980/arkiv/check"
	"github.com/hupe1980/arkiv/internal/conv"
	"github.com/hupe1980/arkiv/wire"
)

// String archives Go strings. The archived form is the same pointer + length
// header a byte slice uses; the view is a string aliasing the archive buffer
// directly, without copying.
var String Type[string, string] = stringType{}

type stringType struct{}

type stringResolver struct {
	data wire.Pos
	n    int
}

func (stringType) Size(f wire.Format) int { return 2 * f.WordSize() }

func (stringType) Align(f wire.Format) int { return f.Alignment(f.WordSize()) }

func (stringType) Resolve(w wire.Writer, v string) (Resolver, error) {
	if len(v) == 0 {
		return stringResolver{}, nil
	}
	pos, err := w.Append(conv.StringToBytes(v))
	if err != nil {
		return nil, err
	}
	return stringResolver{data: pos, n: len(v)}, nil
}

func (stringType) Write(dst []byte, pos wire.Pos, f wire.Format, _ string, r Resolver) error {
	sr := r.(stringResolver)
	return putHeader(dst, pos, f, sr.data, sr.n)
}

func (s stringType) Check(c *check.Checker, pos wire.Pos) error {
	data, n, err := checkHeader(c, pos, s.Align(c.Format()))
	if err != nil || n == 0 {
		return err
	}
	_, err = c.Bytes(data, n)
	return err
}

func (stringType) View(a *Archive, pos wire.Pos) string {
	data, n := a.headerAt(pos)
	if n == 0 {
		return ""
	}
	return conv.BytesToString(a.data[data : int(data)+n])
}

// Bytes archives raw byte slices with the same layout as String.
var Bytes Type[[]byte, []byte] = bytesType{}

type bytesType struct{}

func (bytesType) Size(f wire.Format) int { return 2 * f.WordSize() }

func (bytesType) Align(f wire.Format) int { return f.Alignment(f.WordSize()) }

func (bytesType) Resolve(w wire.Writer, v []byte) (Resolver, error) {
	if len(v) == 0 {
		return stringResolver{}, nil
	}
	pos, err := w.Append(v)
	if err != nil {
		return nil, err
	}
	return stringResolver{data: pos, n: len(v)}, nil
}

func (bytesType) Write(dst []byte, pos wire.Pos, f wire.Format, _ []byte, r Resolver) error {
	sr := r.(stringResolver)
	return putHeader(dst, pos, f, sr.data, sr.n)
}

func (b bytesType) Check(c *check.Checker, pos wire.Pos) error {
	data, n, err := checkHeader(c, pos, b.Align(c.Format()))
	if err != nil || n == 0 {
		return err
	}
	_, err = c.Bytes(data, n)
	return err
}

// View returns the archived bytes without copying. Callers must not mutate
// the returned slice.
func (bytesType) View(a *Archive, pos wire.Pos) []byte {
	data, n := a.headerAt(pos)
	if n == 0 {
		return nil
	}
	return a.data[data : int(data)+n]
}
