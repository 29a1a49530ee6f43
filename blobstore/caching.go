package blobstore

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/arkiv/internal/blockcache"
)

const (
	defaultBlockSize   = 64 * 1024
	defaultConcurrency = 16
)

// CachingStoreOptions configure a CachingStore.
type CachingStoreOptions struct {
	// BlockSize is the granularity of cached reads in bytes.
	BlockSize int64

	// Concurrency bounds parallel backend fetches per read.
	Concurrency int

	// Limiter throttles backend fetch requests. Nil means unlimited.
	Limiter *rate.Limiter
}

// CachingStore wraps a BlobStore with block-level read caching. Writes
// pass through and invalidate the affected blob's blocks.
type CachingStore struct {
	inner BlobStore
	cache *blockcache.Cache
	opts  CachingStoreOptions
}

// NewCachingStore creates a CachingStore over inner holding at most
// capacity bytes of blocks.
func NewCachingStore(inner BlobStore, capacity int64, optFns ...func(o *CachingStoreOptions)) *CachingStore {
	opts := CachingStoreOptions{
		BlockSize:   defaultBlockSize,
		Concurrency: defaultConcurrency,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.BlockSize <= 0 {
		opts.BlockSize = defaultBlockSize
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	return &CachingStore{
		inner: inner,
		cache: blockcache.New(capacity),
		opts:  opts,
	}
}

// Open opens a blob whose reads go through the block cache.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	return &cachingBlob{
		inner: b,
		store: s,
		name:  name,
	}, nil
}

// Put writes a blob and drops its cached blocks.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)

	return s.inner.Put(ctx, name, data)
}

// Delete removes a blob and drops its cached blocks.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)

	return s.inner.Delete(ctx, name)
}

// List returns all blob names with the given prefix, sorted.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns block cache hit and miss counters.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

func (s *CachingStore) invalidate(name string) {
	s.cache.Invalidate(func(key blockcache.Key) bool {
		return key.Name == name
	})
}

type cachingBlob struct {
	inner Blob
	store *CachingStore
	name  string
}

func (b *cachingBlob) Close() error {
	return b.inner.Close()
}

func (b *cachingBlob) Size() int64 {
	return b.inner.Size()
}

func (b *cachingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if len(p) == 0 {
		return 0, nil
	}

	size := b.Size()
	if off < 0 || off >= size {
		return 0, io.EOF
	}

	blockSize := b.store.opts.BlockSize
	startBlock := off / blockSize
	endBlock := (off + int64(len(p)) - 1) / blockSize

	if err := b.fillCache(ctx, startBlock, endBlock); err != nil {
		return 0, err
	}

	total := 0

	for blk := startBlock; blk <= endBlock; blk++ {
		blkStart := blk * blockSize
		if blkStart >= size {
			break
		}

		blkLen := min(blockSize, size-blkStart)

		srcOff := max(off, blkStart) - blkStart
		if srcOff >= blkLen {
			break
		}

		dstOff := blkStart + srcOff - off
		want := min(int64(len(p))-dstOff, blkLen-srcOff)

		block, ok := b.store.cache.Get(blockcache.Key{Name: b.name, Block: uint64(blk)})
		if ok {
			total += copy(p[dstOff:dstOff+want], block[srcOff:])
			continue
		}

		// The block didn't survive the fill: either it is larger than the
		// cache's capacity or it was evicted while later runs landed. Serve
		// it straight from the backend.
		n, err := b.inner.ReadAt(ctx, p[dstOff:dstOff+want], blkStart+srcOff)
		total += n
		if err != nil && !errors.Is(err, io.EOF) {
			return total, err
		}
		if int64(n) < want {
			break
		}
	}

	if int64(total) < int64(len(p)) {
		return total, io.EOF
	}

	return total, nil
}

// fillCache fetches the missing blocks in [startBlock, endBlock],
// coalescing contiguous runs into single ranged backend reads and
// issuing the runs in parallel.
func (b *cachingBlob) fillCache(ctx context.Context, startBlock, endBlock int64) error {
	blockSize := b.store.opts.BlockSize
	size := b.Size()

	type run struct {
		start, count int64
	}

	var missing []run

	runStart, runCount := int64(-1), int64(0)

	for blk := startBlock; blk <= endBlock; blk++ {
		if blk*blockSize >= size {
			break
		}

		if _, ok := b.store.cache.Get(blockcache.Key{Name: b.name, Block: uint64(blk)}); ok {
			if runStart != -1 {
				missing = append(missing, run{runStart, runCount})
				runStart, runCount = -1, 0
			}

			continue
		}

		if runStart == -1 {
			runStart = blk
		}

		runCount++
	}

	if runStart != -1 {
		missing = append(missing, run{runStart, runCount})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.store.opts.Concurrency)

	for _, r := range missing {
		g.Go(func() error {
			if lim := b.store.opts.Limiter; lim != nil {
				if err := lim.Wait(gctx); err != nil {
					return err
				}
			}

			byteStart := r.start * blockSize

			byteLen := r.count * blockSize
			if byteStart+byteLen > size {
				byteLen = size - byteStart
			}

			buf := make([]byte, byteLen)

			n, err := b.inner.ReadAt(gctx, buf, byteStart)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}

			for i := int64(0); i*blockSize < int64(n); i++ {
				lo := i * blockSize
				hi := min(lo+blockSize, int64(n))

				// Copy each block out so the run buffer isn't pinned.
				block := make([]byte, hi-lo)
				copy(block, buf[lo:hi])

				b.store.cache.Set(blockcache.Key{Name: b.name, Block: uint64(r.start + i)}, block)
			}

			return nil
		})
	}

	return g.Wait()
}
