// Package persistence stores archives in a self-describing container
// format.
//
// A container is a fixed 32-byte header followed by the archive payload.
// The header records the wire format (offset width, byte order, padding
// mode), the compression codec, the uncompressed payload length, and a
// CRC32 checksum of the stored payload. Decoding verifies all of these
// before handing the archive back, so a container written by one process
// can be opened by another without out-of-band configuration.
//
// Save writes a container to disk atomically (temp file + rename), and
// OpenMapped memory-maps an uncompressed container for zero-copy access.
package persistence
