package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/ufoto/format"
)

func formats(cfg *FormatsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Formats.Parse(cc, args)
	if err != nil {
		cfg.Formats.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: formats takes no arguments", cli.ErrUsage)
	}
	return listFormats(cc.Out, isTerminal(cc.Out))
}

func listFormats(w io.Writer, colored bool) error {
	name := color.New(color.Bold)
	if colored {
		name.EnableColor()
	} else {
		name.DisableColor()
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range format.AllFormats() {
		mode, err := f.Mode()
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name.Sprint(f), f.Abbrev(), mode, strings.Join(f.Suffixes(), " "))
	}
	return tw.Flush()
}
