// Package check proves that an untrusted byte buffer conforms to an archived
// layout before any reference into it is handed out.
//
// A Checker is the transient state of one validation pass: the buffer bounds,
// the wire format, a recursion-depth bound, a work budget proportional to the
// buffer size, and the set of pointer positions currently being followed.
// Archived types drive the pass through Window, Deref and Follow; the first
// failed check aborts the pass with a structured error identifying the
// offending position and the kind of violation.
//
// The work budget and the follow set exist because the buffer is adversarial:
// a corrupt or malicious archive can encode offsets that point back at
// themselves or fan out into overlapping ranges. Both are cut off with
// *ErrRecursionLimit instead of hanging the pass.
//
// A Checker is discarded after the pass. It performs no mutation and reads
// only in-memory data; validating the same buffer from multiple goroutines
// with separate Checkers is safe.
package check
