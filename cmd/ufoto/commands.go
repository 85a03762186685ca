package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	return cli.NewCommandAt(&cfg.Main, "ufoto").
		WithSynopsis("ufoto command [opts]").
		WithDescription("ufoto converts UFO model packages to JSON, YAML, TOML or CBOR.").
		WithRun(func(cc *cli.Context, args []string) error {
			return ufotoMain(cfg, cc, args)
		}).
		WithSubs(
			ConvertCommand(cfg),
			DiffCommand(cfg),
			FormatsCommand(cfg))
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "f",
		Aliases:     []string{"format"},
		Description: "output format: cbor/c, json/j, toml/t, yaml/y",
		Type:        cli.NamedFuncOpt(fmtFunc(&cfg.Format), "(format)"),
	})
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c").
		WithSynopsis("convert [-o out] [-f format] [-k] [-where expr] [-patch file] [model]").
		WithDescription(convertDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
}

const convertDescription = `convert loads the UFO model package at model (default '.') and writes it
in the chosen format.

The format is taken from -f, otherwise from the suffix of the -o file, which
is JSON when the suffix is not recognised. Without -o the $UFOTO_FORMAT
environment variable is consulted before falling back to JSON, and the
output is written to <model name><suffix> in the current directory. '-o -'
writes to standard output. Binary formats are never written to a terminal.

Python tuple keys, as in vertex couplings, can only be encoded by CBOR
unless -k joins them into strings such as "0,1".

-where keeps only the entities for which an expression holds. The
expression sees the entity's fields as variables, plus 'collection' and
'entity' and a 'has(name)' function, for example

  -where 'collection != "all_particles" || spin == 2'

-patch applies a JSON Patch or JSON merge patch, in JSON or YAML, to the
marshaled model before it is encoded.`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-k] [-u n] a b").
		WithDescription("diff the JSON encodings of two models, exiting 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func FormatsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FormatsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Formats, "formats").
		WithSynopsis("formats").
		WithDescription("list output formats with their mode and file suffixes").
		WithRun(func(cc *cli.Context, args []string) error {
			return formats(cfg, cc, args)
		})
}
