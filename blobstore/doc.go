// Package blobstore abstracts durable storage for archive containers.
//
// A BlobStore maps names to immutable blobs. Containers are written
// whole with Put and read either whole or via ranged ReadAt, which lets
// validators probe a remote archive without downloading all of it.
// LocalStore serves blobs from memory-mapped files, MemoryStore backs
// tests, and CachingStore layers a block cache over any store so that
// repeated ranged reads against remote backends (see the s3 and minio
// subpackages) hit the network once per block.
package blobstore
