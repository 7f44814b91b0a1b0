package archive

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/logging"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/validation"
)

// Entry is one file in a bundle.
type Entry struct {
	Name string
	Data []byte
}

// bundleEpoch is the modification time written for every bundle entry so
// that the same entries always produce the same archive.
var bundleEpoch = time.Unix(0, 0).UTC()

// IsBundle reports whether path names a tar bundle.
func IsBundle(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range []string{".tar", ".tar.gz", ".tgz", ".tar.xz"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Reader wraps a tar.Reader with automatic decompression handling.
type Reader struct {
	*tar.Reader
	file *os.File
}

// NewReader opens a bundle. Compression is detected from the content.
func NewReader(path string) (*Reader, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	head := make([]byte, 6)
	n, _ := io.ReadFull(f, head)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, errors.NewIO("seek", path, err)
	}
	r, err := newDecompressor(f, Detect(head[:n]))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Reader{Reader: tar.NewReader(r), file: f}, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Visitor is a callback function for iterating bundle entries.
// Return true to stop iteration, false to continue.
type Visitor func(header *tar.Header, content io.Reader) (stop bool, err error)

// Iterate walks through all entries in the bundle, calling the visitor for each.
func (r *Reader) Iterate(visitor Visitor) error {
	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}

		stop, err := visitor(header, r)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// ReadBundle returns the regular files in a bundle in archive order. Entry
// names are cleaned and may not escape the bundle root; compressed entries
// are decompressed.
func ReadBundle(bundlePath string) ([]Entry, error) {
	r, err := NewReader(bundlePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []Entry
	var total int64
	err = r.Iterate(func(header *tar.Header, content io.Reader) (bool, error) {
		if header.Typeflag != tar.TypeReg {
			return false, nil
		}
		name, err := validation.SanitizePath(".", header.Name)
		if err != nil {
			return true, fmt.Errorf("bundle entry %q: %w", header.Name, err)
		}
		raw, err := readLimited(content)
		if err != nil {
			return true, fmt.Errorf("bundle entry %q: %w", header.Name, err)
		}
		data, err := Decompress(raw)
		if err != nil {
			return true, fmt.Errorf("bundle entry %q: %w", header.Name, err)
		}
		total += int64(len(data))
		if err := validation.CheckSize(total); err != nil {
			return true, err
		}
		entries = append(entries, Entry{Name: path.Clean(strings.ReplaceAll(name, "\\", "/")), Data: data})
		return false, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading bundle %s", bundlePath)
	}
	logging.Debug("bundle_read", "path", bundlePath, "entries", len(entries))
	return entries, nil
}

// WriteBundle writes entries as a tar archive, compressed according to the
// bundle name.
func WriteBundle(bundlePath string, entries []Entry) error {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		name, err := validation.SanitizePath(".", e.Name)
		if err != nil {
			return fmt.Errorf("bundle entry %q: %w", e.Name, err)
		}
		header := &tar.Header{
			Name:     strings.ReplaceAll(name, "\\", "/"),
			Mode:     0644,
			Size:     int64(len(e.Data)),
			ModTime:  bundleEpoch,
			Typeflag: tar.TypeReg,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		if _, err := tw.Write(e.Data); err != nil {
			return fmt.Errorf("write content: %w", err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	if err := WriteFile(bundlePath, buf.Bytes()); err != nil {
		return err
	}
	logging.Debug("bundle_written", "path", bundlePath, "entries", len(entries))
	return nil
}
