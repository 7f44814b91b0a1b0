package main

import (
	"fmt"

	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/archive"
)

// ExtractIRCmd extracts IR from a playlist.
type ExtractIRCmd struct {
	Path string `arg:"" help:"Path to input playlist" type:"existingfile"`
	From string `help:"Source dialect; detected from the content when empty"`
	Out  string `required:"" help:"Output IR JSON path" type:"path"`
}

func (c *ExtractIRCmd) Run() error {
	data, err := archive.ReadFile(c.Path)
	if err != nil {
		return err
	}
	d, tree, err := dialect.Read(data, c.From)
	if err != nil {
		return err
	}
	out, err := ir.Marshal(tree)
	if err != nil {
		return err
	}
	if err := archive.WriteFile(c.Out, append(out, '\n')); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "IR extracted successfully\n")
	fmt.Fprintf(stdout, "  Dialect:     %s\n", d.Name())
	fmt.Fprintf(stdout, "  Output:      %s\n", c.Out)
	fmt.Fprintf(stdout, "  Fingerprint: %s\n", ir.Fingerprint(tree))
	return nil
}

// EmitIRCmd writes an IR JSON file as a playlist.
type EmitIRCmd struct {
	IR  string `arg:"" help:"Path to IR JSON file" type:"existingfile"`
	To  string `required:"" help:"Target dialect"`
	Out string `short:"o" help:"Output path; stdout when empty" type:"path"`
}

func (c *EmitIRCmd) Run(g *Globals) error {
	data, err := archive.ReadFile(c.IR)
	if err != nil {
		return err
	}
	tree, err := ir.Unmarshal(data)
	if err != nil {
		return err
	}
	opts, err := g.options()
	if err != nil {
		return err
	}
	report := ir.NewLossReport("IR", c.To)
	out, err := dialect.Write(tree, c.To, opts, report)
	if err != nil {
		return err
	}
	if c.Out == "" {
		_, err := stdout.Write(out)
		return err
	}
	if err := archive.WriteFile(c.Out, out); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Emitted %s\n", c.Out)
	fmt.Fprintf(stdout, "  Loss class: %s\n", report.LossClass)
	return nil
}
