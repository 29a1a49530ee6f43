package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/arkiv/wire"
)

// Encode wraps an archive payload in a container: header, then the
// (possibly compressed) payload.
func Encode(payload []byte, f wire.Format, compression Compression) ([]byte, error) {
	stored, used, err := compress(payload, compression)
	if err != nil {
		return nil, err
	}

	h := NewHeader(f, used)
	h.PayloadLen = uint64(len(payload))
	h.Checksum = Checksum(stored)

	buf, err := h.Marshal()
	if err != nil {
		return nil, err
	}

	return append(buf, stored...), nil
}

// Decode unwraps a container, verifying the checksum and decompressing
// the payload. It returns the archive bytes and the wire format they
// were written with.
//
// For CompressionNone containers the returned payload aliases buf.
func Decode(buf []byte) ([]byte, wire.Format, error) {
	h, err := UnmarshalHeader(buf)
	if err != nil {
		return nil, wire.Format{}, err
	}

	stored := buf[HeaderSize:]

	if got := Checksum(stored); got != h.Checksum {
		return nil, wire.Format{}, &ErrChecksumMismatch{Want: h.Checksum, Got: got}
	}

	payload, err := decompress(stored, h.Compression, h.PayloadLen)
	if err != nil {
		return nil, wire.Format{}, err
	}

	return payload, h.Format(), nil
}

// Save writes a container to path atomically: the container is written
// to a temp file in the same directory, synced, and renamed over the
// target. A crash mid-save leaves the previous file intact.
func Save(path string, payload []byte, f wire.Format, compression Compression) error {
	buf, err := Encode(payload, f, compression)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("rename temp file: %w", err)
	}

	// Best-effort: fsync the directory so the rename itself is durable.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}

// Load reads a container from path and returns the archive payload and
// its wire format.
func Load(path string) ([]byte, wire.Format, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, wire.Format{}, fmt.Errorf("read container: %w", err)
	}

	return Decode(buf)
}
