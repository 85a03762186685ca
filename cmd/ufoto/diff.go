package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/ufoto/encode"
	"github.com/signadot/ufoto/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	verbose(cfg.Verbose)
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 models, got %v", cli.ErrUsage, args)
	}
	lines, err := cfg.lines(args[0], args[1])
	if err != nil {
		return err
	}
	if !libdiff.Changed(lines) {
		return nil
	}
	color := cfg.Color || (isTerminal(cc.Out) && os.Getenv("NO_COLOR") == "")
	if err := libdiff.Render(cc.Out, lines, libdiff.Color(color), libdiff.Context(cfg.Context)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func (cfg *DiffConfig) lines(a, b string) ([]libdiff.Line, error) {
	opts, err := marshalOpts(cfg.JoinKeys, "")
	if err != nil {
		return nil, err
	}
	var texts [2]string
	for i, path := range []string{a, b} {
		m, err := load(path, "", opts...)
		if err != nil {
			return nil, err
		}
		buf := &bytes.Buffer{}
		if err := encode.JSON(m.Tree, buf); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		texts[i] = buf.String()
	}
	return libdiff.Lines(texts[0], texts[1]), nil
}
