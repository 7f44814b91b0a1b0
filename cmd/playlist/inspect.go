package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/archive"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/formats/smil"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/validation"
)

// DetectCmd detects the dialect of a playlist or of each playlist in a bundle.
type DetectCmd struct {
	Path string `arg:"" help:"Path to playlist or bundle" type:"existingfile"`
}

func (c *DetectCmd) Run() error {
	if archive.IsBundle(c.Path) {
		entries, err := archive.ReadBundle(c.Path)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Detecting dialects in: %s\n\n", c.Path)
		for _, e := range entries {
			d, err := dialect.Detect(e.Data)
			if err != nil {
				fmt.Fprintf(stdout, "  [no]    %s: %v\n", e.Name, err)
				continue
			}
			fmt.Fprintf(stdout, "  [MATCH] %s: %s\n", e.Name, d.Name())
		}
		return nil
	}

	data, err := archive.ReadFile(c.Path)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Detecting dialect of: %s\n\n", c.Path)
	if d, err := dialect.ForPath(c.Path); err == nil {
		fmt.Fprintf(stdout, "  extension: %s\n", d.Name())
	} else {
		fmt.Fprintf(stdout, "  extension: unknown\n")
	}
	d, err := dialect.Detect(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  content:   %s\n", d.Name())
	return nil
}

// InfoCmd summarizes the IR tree of a playlist.
type InfoCmd struct {
	Path string `arg:"" help:"Path to playlist" type:"existingfile"`
	From string `help:"Source dialect; detected from the content when empty"`
	JSON bool   `help:"Output as JSON"`
}

// playlistInfo is the JSON form of InfoCmd output.
type playlistInfo struct {
	Dialect     string          `json:"dialect"`
	Stats       ir.Stats        `json:"stats"`
	Plays       *int64          `json:"plays,omitempty"`
	SourceHash  string          `json:"source_hash"`
	Fingerprint string          `json:"fingerprint"`
	Metadata    []dialect.Field `json:"metadata,omitempty"`
}

func (c *InfoCmd) Run() error {
	data, err := archive.ReadFile(c.Path)
	if err != nil {
		return err
	}
	src, err := dialect.Load(data, c.From)
	if err != nil {
		return err
	}
	info := playlistInfo{
		Dialect:     src.Dialect.Name(),
		Stats:       ir.Collect(src.Tree),
		SourceHash:  ir.HashBytes(data),
		Fingerprint: ir.Fingerprint(src.Tree),
		Metadata:    src.Metadata,
	}
	if n, ok := ir.PlayCount(src.Tree); ok {
		info.Plays = &n
	}

	if c.JSON {
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	}

	fmt.Fprintf(stdout, "Playlist: %s\n", c.Path)
	fmt.Fprintf(stdout, "  Dialect:     %s\n", info.Dialect)
	fmt.Fprintf(stdout, "  Sequences:   %d\n", info.Stats.Sequences)
	fmt.Fprintf(stdout, "  Parallels:   %d\n", info.Stats.Parallels)
	fmt.Fprintf(stdout, "  Media:       %d\n", info.Stats.Media)
	fmt.Fprintf(stdout, "  Timed:       %d\n", info.Stats.Timed)
	fmt.Fprintf(stdout, "  Repeated:    %d\n", info.Stats.Repeated)
	fmt.Fprintf(stdout, "  Max depth:   %d\n", info.Stats.MaxDepth)
	switch {
	case info.Plays != nil:
		fmt.Fprintf(stdout, "  Plays:       %d\n", *info.Plays)
	case info.Stats.Indefinite:
		fmt.Fprintf(stdout, "  Plays:       indefinite\n")
	default:
		fmt.Fprintf(stdout, "  Plays:       more than %d\n", int64(math.MaxInt64))
	}
	fmt.Fprintf(stdout, "  Source hash: %s\n", info.SourceHash)
	fmt.Fprintf(stdout, "  Fingerprint: %s\n", info.Fingerprint)
	if len(info.Metadata) > 0 {
		fmt.Fprintf(stdout, "  Metadata:\n")
		for _, f := range info.Metadata {
			fmt.Fprintf(stdout, "    %s = %s\n", f.Path, f.Value)
		}
	}
	return nil
}

// ValidateCmd reports which dialects can express a playlist.
type ValidateCmd struct {
	Path string   `arg:"" help:"Path to playlist" type:"existingfile"`
	From string   `help:"Source dialect; detected from the content when empty"`
	To   []string `help:"Only check these target dialects, and fail if any cannot express the playlist"`
}

func (c *ValidateCmd) Run(g *Globals) error {
	data, err := archive.ReadFile(c.Path)
	if err != nil {
		return err
	}
	if ft := validation.DetectFileType(data); ft != validation.FileTypeXML {
		return fmt.Errorf("%s is %s, not XML", c.Path, ft)
	}
	if result := xml.Validate(data, nil); !result.Valid {
		return fmt.Errorf("%s is not well-formed: %w", c.Path, result.Errors[0])
	}
	src, err := dialect.Load(data, c.From)
	if err != nil {
		return err
	}

	targets := dialect.Names()
	if len(c.To) > 0 {
		targets = c.To
	}
	fmt.Fprintf(stdout, "Validating %s (%s)\n\n", c.Path, src.Dialect.Name())

	var failed []string
	for _, name := range targets {
		opts, err := g.options()
		if err != nil {
			return err
		}
		res, err := dialect.Convert(data, src.Dialect.Name(), name, opts)
		if err != nil {
			var nf *errors.NotFoundError
			if errors.As(err, &nf) {
				return err
			}
			fmt.Fprintf(stdout, "  [no] %-9s %v\n", name, err)
			failed = append(failed, name)
			continue
		}
		fmt.Fprintf(stdout, "  [ok] %-9s %s\n", name, res.Report.LossClass)
	}
	if len(c.To) > 0 && len(failed) > 0 {
		return fmt.Errorf("cannot express %s as %s", c.Path, strings.Join(failed, ", "))
	}
	return nil
}

// DialectsCmd lists the registered dialects.
type DialectsCmd struct {
	JSON bool `help:"Output as JSON"`
}

// dialectInfo is the JSON form of DialectsCmd output.
type dialectInfo struct {
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Extensions   []string             `json:"extensions"`
	Capabilities dialect.Capabilities `json:"capabilities"`
}

func (c *DialectsCmd) Run() error {
	var infos []dialectInfo
	for _, d := range dialect.List() {
		infos = append(infos, dialectInfo{
			Name:         d.Name(),
			Description:  d.Description(),
			Extensions:   d.Extensions(),
			Capabilities: d.Capabilities(),
		})
	}

	if c.JSON {
		out, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	}

	fmt.Fprintf(stdout, "%-9s %-4s %-4s %-4s %-4s %s\n", "DIALECT", "PAR", "INF", "REP", "DUR", "EXTENSIONS")
	for _, d := range infos {
		caps := d.Capabilities
		fmt.Fprintf(stdout, "%-9s %-4s %-4s %-4s %-4s %s\n", d.Name,
			yesNo(caps.Parallel), yesNo(caps.InfiniteRepeat), yesNo(caps.NestedRepeat), yesNo(caps.MediaDuration),
			strings.Join(d.Extensions, " "))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// RegionsCmd lists SMIL layout regions, or the media rendered in one.
type RegionsCmd struct {
	Path   string `arg:"" help:"Path to SMIL presentation" type:"existingfile"`
	Region string `help:"List the media sources rendered in this region"`
}

func (c *RegionsCmd) Run() error {
	data, err := archive.ReadFile(c.Path)
	if err != nil {
		return err
	}
	if c.Region == "" {
		ids, err := smil.Regions(data)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(stdout, id)
		}
		return nil
	}
	srcs, err := smil.MediaInRegion(data, c.Region)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		fmt.Fprintln(stdout, src)
	}
	return nil
}

// FormatCmd pretty-prints a playlist without converting it.
type FormatCmd struct {
	Path string `arg:"" help:"Path to playlist" type:"existingfile"`
	Out  string `short:"o" help:"Output path; stdout when empty" type:"path"`
}

func (c *FormatCmd) Run(g *Globals) error {
	data, err := archive.ReadFile(c.Path)
	if err != nil {
		return err
	}
	out, err := xml.Format(data, xml.FormatOptions{Indent: g.Indent})
	if err != nil {
		return err
	}
	if c.Out == "" {
		_, err := stdout.Write(out)
		return err
	}
	return archive.WriteFile(c.Out, out)
}
