package main

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/archive"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/cache"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/logging"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/validation"
)

// ConvertCmd converts a playlist, or every playlist in a bundle, to another dialect.
type ConvertCmd struct {
	Path   string `arg:"" help:"Playlist, or a bundle (.tar, .tar.gz, .tar.xz)" type:"existingfile"`
	From   string `help:"Source dialect; detected from the content when empty" env:"PLAYLIST_FROM"`
	To     string `required:"" help:"Target dialect" env:"PLAYLIST_TO"`
	Out    string `short:"o" help:"Output path; stdout when empty. A .gz or .xz suffix compresses" type:"path"`
	Report string `help:"Write the loss report as JSON to this path" type:"path"`
	Strict bool   `help:"Fail when the target cannot hold the playlist without loss"`

	NoParallel bool `name:"no-parallel" help:"Treat parallel groups as unsupported"`
	NoRepeat   bool `name:"no-repeat" help:"Unroll repeats instead of writing them natively"`
	NoInfinite bool `name:"no-infinite" help:"Treat infinite repeats as unsupported"`
	NoDuration bool `name:"no-duration" help:"Treat per-entry durations as unsupported"`
}

// capabilities returns the narrowed table, or nil when no flag narrows it.
func (c *ConvertCmd) capabilities() *dialect.Capabilities {
	if !c.NoParallel && !c.NoRepeat && !c.NoInfinite && !c.NoDuration {
		return nil
	}
	return &dialect.Capabilities{
		Parallel:       !c.NoParallel,
		NestedRepeat:   !c.NoRepeat,
		InfiniteRepeat: !c.NoInfinite,
		MediaDuration:  !c.NoDuration,
	}
}

func (c *ConvertCmd) Run(g *Globals) error {
	if _, err := dialect.Lookup(c.To); err != nil {
		return err
	}
	if archive.IsBundle(c.Path) {
		return c.runBundle(g)
	}

	data, err := archive.ReadFile(c.Path)
	if err != nil {
		return err
	}
	res, err := c.convert(g, data, c.Path)
	if err != nil {
		return err
	}
	if c.Report != "" {
		if err := writeReports(c.Report, []*ir.LossReport{res.Report}); err != nil {
			return err
		}
	}
	if c.Out == "" {
		_, err := stdout.Write(res.Data)
		return err
	}
	if err := archive.WriteFile(c.Out, res.Data); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Converted %s (%s) to %s (%s)\n", c.Path, res.From, c.Out, res.To)
	fmt.Fprintf(stdout, "  Loss class: %s\n", res.Report.LossClass)
	return nil
}

// convert runs one document through the pipeline and logs the outcome.
func (c *ConvertCmd) convert(g *Globals, data []byte, name string) (*dialect.Result, error) {
	ctx := runContext()
	opts, err := g.options()
	if err != nil {
		return nil, err
	}
	opts.Capabilities = c.capabilities()

	res, err := dialect.Convert(data, c.From, c.To, opts)
	if err != nil {
		logging.ConversionFailed(ctx, c.From, c.To, err, "path", name)
		return nil, errors.Wrapf(err, "converting %s", name)
	}
	for _, w := range res.Report.Warnings {
		logging.LossWarning(ctx, res.To, w)
	}
	logging.Conversion(ctx, res.From, res.To, string(res.Report.LossClass), len(res.Data),
		"path", name, "fingerprint", res.Fingerprint)

	if c.Strict && res.Report.HasLoss() {
		logging.LoggerFromContext(ctx).Warn("strict_rejected", "path", name, "loss_class", string(res.Report.LossClass))
		return nil, fmt.Errorf("converting %s: %s to %s is %s, not lossless", name, res.From, res.To, res.Report.LossClass)
	}
	return res, nil
}

// runBundle converts each XML entry of a bundle into a new bundle. Entries
// keep their base name with the target dialect's extension.
func (c *ConvertCmd) runBundle(g *Globals) error {
	if c.Out == "" || !archive.IsBundle(c.Out) {
		return fmt.Errorf("converting a bundle needs --out naming a bundle (.tar, .tar.gz, .tar.xz)")
	}
	dst, err := dialect.Lookup(c.To)
	if err != nil {
		return err
	}
	entries, err := archive.ReadBundle(c.Path)
	if err != nil {
		return err
	}

	// Identical entries convert to identical output unless ids are random.
	seen, err := cache.New[string, *dialect.Result](cache.DefaultConfig())
	if err != nil {
		return err
	}
	reuse := g.IDs != "uuid"

	var out []archive.Entry
	var reports []*ir.LossReport
	names := make(entryNames)
	for _, e := range entries {
		if validation.DetectFileType(e.Data) != validation.FileTypeXML {
			logging.Warn("bundle_entry_skipped", "bundle", c.Path, "entry", e.Name)
			continue
		}
		key := ir.HashBytes(e.Data)
		res, ok := seen.Get(key)
		if !ok || !reuse {
			res, err = c.convert(g, e.Data, e.Name)
			if err != nil {
				return err
			}
			seen.Put(key, res)
		} else {
			logging.Debug("bundle_entry_reused", "bundle", c.Path, "entry", e.Name)
		}
		out = append(out, archive.Entry{Name: names.rename(e.Name, dst), Data: res.Data})
		reports = append(reports, res.Report)
		fmt.Fprintf(stdout, "  %s (%s) -> %s [%s]\n", e.Name, res.From, out[len(out)-1].Name, res.Report.LossClass)
	}
	if len(out) == 0 {
		return fmt.Errorf("no playlists found in %s", c.Path)
	}
	if c.Report != "" {
		if err := writeReports(c.Report, reports); err != nil {
			return err
		}
	}
	if err := archive.WriteBundle(c.Out, out); err != nil {
		return err
	}
	stats := seen.Stats()
	logging.Info("bundle_converted", "bundle", c.Path, "entries", len(out), "reused", stats.Hits)
	fmt.Fprintf(stdout, "Converted %d playlists to %s\n", len(out), c.Out)
	return nil
}

// entryNames tracks the names already written to an output bundle.
type entryNames map[string]bool

// rename swaps the extension of a bundle entry for the target's own. When
// that name is taken, as with a.asx and a.smil both going to WPL, the old
// extension is kept ("a.smil.wpl") and a counter breaks any tie after that.
func (used entryNames) rename(name string, d dialect.Dialect) string {
	ext := ""
	if exts := d.Extensions(); len(exts) > 0 {
		ext = exts[0]
	}
	candidates := []string{name}
	if ext != "" {
		candidates = []string{strings.TrimSuffix(name, path.Ext(name)) + ext, name + ext}
	}
	for _, c := range candidates {
		if !used[c] {
			used[c] = true
			return c
		}
	}
	stem := strings.TrimSuffix(name, path.Ext(name))
	for i := 2; ; i++ {
		c := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if ext == "" {
			c = fmt.Sprintf("%s-%d%s", stem, i, path.Ext(name))
		}
		if !used[c] {
			used[c] = true
			return c
		}
	}
}

// writeReports writes a single report as an object and several as an array.
func writeReports(dest string, reports []*ir.LossReport) error {
	var v any = reports
	if len(reports) == 1 {
		v = reports[0]
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return archive.WriteFile(filepath.Clean(dest), append(data, '\n'))
}
