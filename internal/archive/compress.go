// Package archive reads and writes playlist files that may be compressed
// with gzip or xz, and tar bundles holding several playlists.
package archive

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/internal/validation"
	"github.com/ulikunitz/xz"
)

// Compression is a single-stream compression wrapper.
type Compression int

const (
	None Compression = iota
	Gzip
	XZ
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case XZ:
		return "xz"
	default:
		return "none"
	}
}

// CompressionFor picks the compression implied by a file name.
func CompressionFor(path string) Compression {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xz"):
		return XZ
	case strings.HasSuffix(lower, ".gz"), strings.HasSuffix(lower, ".tgz"):
		return Gzip
	default:
		return None
	}
}

// Detect identifies the compression of data from its magic bytes.
func Detect(data []byte) Compression {
	switch validation.DetectFileType(data) {
	case validation.FileTypeGzip:
		return Gzip
	case validation.FileTypeXZ:
		return XZ
	default:
		return None
	}
}

// Decompress unwraps data according to its magic bytes. Uncompressed data
// is returned as is. The output is bounded by validation.MaxFileSize.
func Decompress(data []byte) ([]byte, error) {
	r, err := newDecompressor(bytes.NewReader(data), Detect(data))
	if err != nil {
		return nil, err
	}
	return readLimited(r)
}

// Compress wraps data with c.
func Compress(data []byte, c Compression) ([]byte, error) {
	if c == None {
		return data, nil
	}
	var buf bytes.Buffer
	w, err := newCompressor(&buf, c)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%s write: %w", c, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s close: %w", c, err)
	}
	return buf.Bytes(), nil
}

func newDecompressor(r io.Reader, c Compression) (io.Reader, error) {
	switch c {
	case Gzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gzr, nil
	case XZ:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		return xzr, nil
	default:
		return r, nil
	}
}

func newCompressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriter(w), nil
	case XZ:
		xzw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("xz writer: %w", err)
		}
		return xzw, nil
	default:
		return nopCloser{w}, nil
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// readLimited reads r to the end, failing past validation.MaxFileSize.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, validation.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	if err := validation.CheckSize(int64(len(data))); err != nil {
		return nil, err
	}
	return data, nil
}
