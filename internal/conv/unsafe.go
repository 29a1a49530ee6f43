package conv

import "unsafe"

// BytesToString aliases b as a string without copying.
//
// The returned string is valid only as long as b is, and b must never be
// mutated afterwards. Callers hand this out exclusively over finalized,
// immutable archive buffers.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// StringToBytes aliases s as a byte slice without copying.
// The returned slice must not be mutated.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
