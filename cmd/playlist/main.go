// Command playlist converts XML playlists between ASX, SMIL, WPL, RMP and
// Hypetape through a shared intermediate representation.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/logging"

	// Register every dialect.
	_ "github.com/FocuswithJustin/JuniperPlaylist/internal/embedded"
)

const version = "0.1.0"

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// Globals are the flags shared by every command.
type Globals struct {
	Config    kong.ConfigFlag `help:"Load flag defaults from a JSON file"`
	LogLevel  string          `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" env:"PLAYLIST_LOG_LEVEL" enum:"debug,info,warn,error"`
	LogFormat string          `name:"log-format" help:"Log format (text, json)" default:"text" env:"PLAYLIST_LOG_FORMAT" enum:"text,json"`
	IDs       string          `name:"ids" help:"Identifier scheme for generated ids (counter, uuid)" default:"counter" env:"PLAYLIST_IDS" enum:"counter,uuid"`
	Indent    string          `help:"Indentation for written XML; empty writes compact output" default:"  " env:"PLAYLIST_INDENT"`
	Encoding  string          `help:"Output charset" default:"UTF-8" env:"PLAYLIST_ENCODING"`
}

// CLI defines the command-line interface for playlist.
var CLI struct {
	Globals

	// Command groups (noun-first organization)
	Convert  ConvertCmd  `cmd:"" help:"Convert a playlist or a bundle of playlists to another dialect"`
	Detect   DetectCmd   `cmd:"" help:"Detect the dialect of a playlist"`
	Info     InfoCmd     `cmd:"" help:"Summarize the playlist tree of a file"`
	Validate ValidateCmd `cmd:"" help:"Check which dialects can express a playlist"`
	Format   FormatCmd   `cmd:"" help:"Pretty-print a playlist without converting it"`
	Dialects DialectsCmd `cmd:"" help:"List supported dialects and their capabilities"`
	Clock    ClockGroup  `cmd:"" help:"Clock value operations"`
	IR       IRGroup     `cmd:"" name:"ir" help:"Intermediate Representation operations"`
	Regions  RegionsCmd  `cmd:"" help:"List SMIL layout regions and the media they render"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// ClockGroup contains clock value operations.
type ClockGroup struct {
	Parse   ClockParseCmd   `cmd:"" help:"Parse a clock value into milliseconds"`
	Format  ClockFormatCmd  `cmd:"" help:"Format milliseconds as a clock value"`
	Convert ClockConvertCmd `cmd:"" help:"Rewrite a clock value in another grammar"`
}

// IRGroup contains IR-specific operations.
type IRGroup struct {
	Extract ExtractIRCmd `cmd:"" help:"Extract the IR of a playlist as JSON"`
	Emit    EmitIRCmd    `cmd:"" help:"Write an IR JSON file as a playlist"`
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(stdout, "playlist version %s\n", version)
	return nil
}

// setupLogging installs the logger the global flags ask for.
func (g *Globals) setupLogging() error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

// options builds the conversion options from the global flags.
func (g *Globals) options() (dialect.Options, error) {
	ids, err := dialect.NewIDGenerator(g.IDs)
	if err != nil {
		return dialect.Options{}, err
	}
	return dialect.Options{
		Write: xml.WriteOptions{Indent: g.Indent, Encoding: g.Encoding},
		IDs:   ids,
	}, nil
}

// runContext tags a context with a fresh conversion id for log correlation.
func runContext() context.Context {
	return logging.WithConversionID(context.Background(), uuid.NewString())
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("playlist"),
		kong.Description("Juniper Playlist - XML playlist dialect converter"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(kong.JSON, "~/.config/juniper-playlist.json", ".juniper-playlist.json"),
		kong.Bind(&CLI.Globals),
	)
	ctx.FatalIfErrorf(CLI.Globals.setupLogging())
	err := ctx.Run(ctx)
	if err != nil {
		logging.Error("command_failed", "command", ctx.Command(), "error", err)
	}
	ctx.FatalIfErrorf(err)
}
