package persistence

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/arkiv/internal/conv"
)

// Zstd encoder/decoder pools. Construction is expensive, the codec
// objects are reusable.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}

	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))

	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}

	dec, _ := zstd.NewReader(nil)

	return dec
}

// compress encodes payload with the given codec. It returns the stored
// bytes and the codec actually used: an incompressible LZ4 payload falls
// back to CompressionNone so decoding never has to guess.
func compress(payload []byte, c Compression) ([]byte, Compression, error) {
	if len(payload) == 0 {
		return payload, CompressionNone, nil
	}

	switch c {
	case CompressionNone:
		return payload, CompressionNone, nil
	case CompressionZstd:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)

		return enc.EncodeAll(payload, nil), CompressionZstd, nil
	case CompressionLZ4:
		compressed := make([]byte, lz4.CompressBlockBound(len(payload)))

		n, err := lz4.CompressBlock(payload, compressed, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("lz4 compress: %w", err)
		}

		// n == 0 means the payload is incompressible.
		if n == 0 {
			return payload, CompressionNone, nil
		}

		return compressed[:n], CompressionLZ4, nil
	default:
		return nil, 0, &ErrUnknownCompression{ID: uint8(c)}
	}
}

// decompress decodes stored bytes back to a payload of exactly
// payloadLen bytes.
func decompress(stored []byte, c Compression, payloadLen uint64) ([]byte, error) {
	n, err := conv.Uint64ToInt(payloadLen)
	if err != nil {
		return nil, &ErrBadHeader{Field: "PayloadLen", Reason: err.Error()}
	}

	switch c {
	case CompressionNone:
		if len(stored) != n {
			return nil, &ErrTruncated{Len: len(stored), Need: n}
		}

		return stored, nil
	case CompressionZstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		payload, err := dec.DecodeAll(stored, make([]byte, 0, n))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}

		if len(payload) != n {
			return nil, &ErrTruncated{Len: len(payload), Need: n}
		}

		return payload, nil
	case CompressionLZ4:
		payload := make([]byte, n)

		m, err := lz4.UncompressBlock(stored, payload)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}

		if m != n {
			return nil, &ErrTruncated{Len: m, Need: n}
		}

		return payload, nil
	default:
		return nil, &ErrUnknownCompression{ID: uint8(c)}
	}
}
