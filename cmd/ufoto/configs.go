package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/ufoto/filter"
	"github.com/signadot/ufoto/format"
	"github.com/signadot/ufoto/marshal"
)

type MainConfig struct {
	Main *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Out      string `cli:"name=o desc='output file, - for stdout (default <model name><suffix>)'"`
	JoinKeys bool   `cli:"name=k desc='join tuple keys into strings'"`
	Where    string `cli:"name=where desc='keep only entities matching an expression'"`
	Patch    string `cli:"name=patch desc='JSON Patch or merge patch file applied before encoding'"`
	Wire     bool   `cli:"name=wire desc='compact JSON output'"`
	Verbose  bool   `cli:"name=v desc='verbose logging'"`

	Format *format.Format

	Convert *cli.Command
}

type DiffConfig struct {
	*MainConfig

	JoinKeys bool `cli:"name=k desc='join tuple keys into strings'"`
	Context  int  `cli:"name=u desc='lines of context, negative for all'"`
	Color    bool `cli:"name=color desc='color output even when not on a terminal'"`
	Verbose  bool `cli:"name=v desc='verbose logging'"`

	Diff *cli.Command
}

type FormatsConfig struct {
	*MainConfig

	Formats *cli.Command
}

func fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func marshalOpts(joinKeys bool, where string) ([]marshal.Option, error) {
	var res []marshal.Option
	if joinKeys {
		res = append(res, marshal.JoinKeys())
	}
	if where != "" {
		flt, err := filter.Compile(where)
		if err != nil {
			return nil, fmt.Errorf("%w: -where: %w", cli.ErrUsage, err)
		}
		res = append(res, marshal.WithFilter(flt.Keep))
	}
	return res, nil
}
