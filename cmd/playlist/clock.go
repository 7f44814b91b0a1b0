package main

import (
	"fmt"

	"github.com/FocuswithJustin/JuniperPlaylist/core/clock"
)

// grammarFlag is the enum shared by the clock commands.
type grammarFlag string

func (g grammarFlag) grammar() clock.Grammar {
	if g == "simple" {
		return clock.Simple
	}
	return clock.Extended
}

// ClockParseCmd parses a clock value into milliseconds.
type ClockParseCmd struct {
	Text    string      `arg:"" help:"Clock value, e.g. 00:01:30.5 or 2min"`
	Grammar  grammarFlag `help:"Clock grammar (simple, extended)" default:"extended" enum:"simple,extended"`
	Duration bool        `help:"Print a Go duration such as 1m30.5s instead of milliseconds"`
}

func (c *ClockParseCmd) Run() error {
	v, err := clock.ParseValue(c.Text, c.Grammar.grammar())
	if err != nil {
		return err
	}
	if v.IsIndefinite() {
		fmt.Fprintln(stdout, "indefinite")
		return nil
	}
	if c.Duration {
		fmt.Fprintln(stdout, v.Duration())
		return nil
	}
	fmt.Fprintln(stdout, v.Millis)
	return nil
}

// ClockConvertCmd rewrites a clock value from one grammar into another.
type ClockConvertCmd struct {
	Text string      `arg:"" help:"Clock value, e.g. 90.5s"`
	From grammarFlag `help:"Grammar of the input (simple, extended)" default:"extended" enum:"simple,extended"`
	To   grammarFlag `help:"Grammar of the output (simple, extended)" default:"simple" enum:"simple,extended"`
}

func (c *ClockConvertCmd) Run() error {
	v, err := clock.ParseValue(c.Text, c.From.grammar())
	if err != nil {
		return err
	}
	to := c.To.grammar()
	if v.IsIndefinite() && to != clock.Extended {
		return fmt.Errorf("the %s grammar has no indefinite value", to)
	}
	fmt.Fprintln(stdout, v.In(to))
	return nil
}

// ClockFormatCmd renders a millisecond count in a clock grammar.
type ClockFormatCmd struct {
	Millis  int64       `arg:"" help:"Milliseconds; -1 is indefinite"`
	Grammar grammarFlag `help:"Clock grammar (simple, extended)" default:"extended" enum:"simple,extended"`
}

func (c *ClockFormatCmd) Run() error {
	g := c.Grammar.grammar()
	if c.Millis < 0 && g != clock.Extended {
		return fmt.Errorf("the %s grammar has no indefinite value", g)
	}
	fmt.Fprintln(stdout, clock.NewValue(c.Millis, g))
	return nil
}
