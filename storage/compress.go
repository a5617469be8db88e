package storage

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Scheme identifies a payload compression codec. Compression is applied to
// the plaintext before encryption; the content digest is always computed
// over the uncompressed bytes.
type Scheme string

const (
	// CompressNone stores the plaintext as-is.
	CompressNone Scheme = "none"

	// CompressGZIP uses gzip at the default level.
	CompressGZIP Scheme = "gzip"

	// CompressZstd uses zstandard at the default level.
	CompressZstd Scheme = "zstd"
)

// MaxDecompressedSize caps decompression output to guard against
// decompression bombs in corrupted or hostile artifacts (1 GiB).
const MaxDecompressedSize = 1 << 30

// ParseScheme validates a scheme name. The empty string means CompressNone.
func ParseScheme(name string) (Scheme, error) {
	switch Scheme(name) {
	case "", CompressNone:
		return CompressNone, nil
	case CompressGZIP:
		return CompressGZIP, nil
	case CompressZstd:
		return CompressZstd, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCompression, name)
	}
}

// Compress compresses data using the specified scheme.
func Compress(data []byte, scheme Scheme) ([]byte, error) {
	switch scheme {
	case "", CompressNone:
		return data, nil
	case CompressGZIP:
		return compressGZIP(data)
	case CompressZstd:
		return compressZstd(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, scheme)
	}
}

// Decompress decompresses data using the specified scheme, enforcing
// MaxDecompressedSize.
func Decompress(data []byte, scheme Scheme) ([]byte, error) {
	switch scheme {
	case "", CompressNone:
		return data, nil
	case CompressGZIP:
		return decompressGZIP(data)
	case CompressZstd:
		return decompressZstd(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, scheme)
	}
}

func compressGZIP(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressGZIP(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readCapped(r)
}

func compressZstd(data []byte) ([]byte, error) {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	out := w.EncodeAll(data, nil)
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func decompressZstd(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecompressedSize))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	out, err := r.DecodeAll(data, nil)
	if err != nil {
		return nil, err
	}
	if len(out) > MaxDecompressedSize {
		return nil, ErrDecompressedTooLarge
	}
	return out, nil
}

// readCapped reads from r up to MaxDecompressedSize and errors past it.
func readCapped(r io.Reader) ([]byte, error) {
	limited := io.LimitReader(r, MaxDecompressedSize+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if len(out) > MaxDecompressedSize {
		return nil, ErrDecompressedTooLarge
	}
	return out, nil
}
