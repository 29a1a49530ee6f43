// Package arkiv is a zero-copy serialization engine for Go.
//
// Arkiv converts in-memory values into a single contiguous byte buffer (an
// archive) whose layout can be read, traversed and queried directly, without
// a deserialization pass that reconstructs native structures. All indirection
// inside an archive is stored as relative offsets, so the buffer can be
// memory-mapped, copied or transmitted and still be walked safely at any
// address.
//
// # Quick Start
//
//	ty := arkiv.SliceOf(arkiv.Uint32)
//
//	data, _ := arkiv.Marshal(ty, []uint32{10, 20, 30})
//
//	// Validate untrusted bytes, then read without copying.
//	view, err := arkiv.Access(ty, data)
//	if err != nil { ... }
//	fmt.Println(view.At(1)) // 20
//
// # Lifecycle
//
// Every archivable type implements the two-step lifecycle in Type: Resolve
// serializes the value's owned, out-of-line data first and captures where it
// landed; Write then renders the value's fixed-layout bytes in place, turning
// captured positions into relative pointers. The root value ends the buffer.
//
// Primitives and the standard containers (slices, strings, byte slices,
// optionals, maps, two-variant unions) ship with the package. User-defined
// aggregates implement Type themselves, typically via code generation, with
// StructLayout and UnionLayout supplying shape and validation.
//
// # Trust Model
//
// Archives from files or the network are untrusted input. Access and
// Validate run a bounds- and layout-proving pass over the raw bytes,
// including discriminant checks, alignment checks, and cycle/work bounds
// against adversarial self-referential offsets, before any view is handed
// out. AccessUnchecked skips the pass for buffers trusted by construction.
//
// # Concurrency
//
// Writers are single-goroutine; independent archives can be built
// concurrently on independent writers. Finalized archives are immutable and
// views over them are safe for unlimited concurrent readers.
//
// # Persistence and Storage
//
// The persistence package wraps archives in self-describing container files
// (format header, optional zstd/lz4 compression, CRC32 checksum) and opens
// them memory-mapped for zero-copy loads. The blobstore package stores
// archive blobs in memory, on the local file system, or on S3-compatible
// object storage.
package arkiv
