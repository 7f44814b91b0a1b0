package archive

import (
	"os"
	"path/filepath"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/logging"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/validation"
)

// ReadFile reads a playlist from disk, decompressing gzip or xz content
// whatever the file is named.
func ReadFile(path string) ([]byte, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewIO("stat", path, err)
	}
	if err := validation.CheckSize(info.Size()); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	data, err := Decompress(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	logging.Debug("playlist_read", "path", path, "compression", Detect(raw).String(), "bytes", len(data))
	return data, nil
}

// WriteFile writes data to path, compressing it when the name ends in .gz
// or .xz. Parent directories are created.
func WriteFile(path string, data []byte) error {
	if err := validation.ValidatePath(path); err != nil {
		return err
	}
	c := CompressionFor(path)
	out, err := Compress(data, c)
	if err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewIO("mkdir", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	logging.Debug("playlist_written", "path", path, "compression", c.String(), "bytes", len(out))
	return nil
}
