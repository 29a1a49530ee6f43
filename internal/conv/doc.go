// Package conv provides safe integer type conversion utilities and the
// zero-copy byte/string aliasing used by the archive read path.
//
// The integer helpers perform bounds checking to prevent overflow when
// converting between Go's int and the fixed-width types read from untrusted
// file headers and length words.
//
// The unsafe helpers alias memory instead of copying it. They are only used
// over finalized archive buffers, which are immutable by contract.
package conv
