// Package wire defines the archive wire format and the position-tracking
// writers that produce it.
//
// # Positions and Offsets
//
// Every byte in an archive is addressed by a Pos, an absolute offset from the
// start of the buffer. Indirection inside an archive never uses native
// pointers: a pointer field stores the signed distance from its own position
// to its target (stored = target - pointer position). Because the distance is
// relative, the whole buffer can be relocated, memory-mapped or transmitted
// and every pointer still resolves.
//
// Out-of-line data is always written before the pointer that refers to it, so
// live offsets are negative. A stored offset of zero is the null sentinel used
// by empty containers and must never be dereferenced.
//
// # Format
//
// Format fixes the three wire-level configuration choices: offset width
// (16/32/64-bit), byte order, and whether alignment padding is inserted.
// Changing any of them changes the wire format; archives written under one
// Format cannot be read under another.
//
// # Writers
//
// Buffer is the in-memory writer used to build archives. Positions are
// assigned in strict append order and are never reused. Stream wraps an
// arbitrary io.Writer for straight-line serialization to a sink; it supports
// everything except patching already-written bytes.
//
// Writers are not safe for concurrent use. Build independent archives on
// independent writers instead.
package wire
