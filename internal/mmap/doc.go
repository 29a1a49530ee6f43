// Package mmap provides read-only memory-mapped file access for zero-copy
// archive loads.
//
// A mapped archive is read directly out of the page cache: no bytes are
// copied into the Go heap, which is what makes opening a multi-gigabyte
// container file cheap. The mapping is immutable; closing it invalidates the
// byte slice returned by Bytes.
//
// Unix platforms map with mmap(2) and accept madvise(2) hints through
// Advise; on Windows CreateFileMapping/MapViewOfFile are used and Advise is
// a no-op.
//
// Concurrent reads of an open mapping are safe. Close is idempotent, but
// callers must ensure no goroutine touches Bytes() after Close returns.
package mmap
