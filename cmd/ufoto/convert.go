package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/ufoto/encode"
	"github.com/signadot/ufoto/format"
)

// FormatEnv names the environment variable giving the output format when
// neither -f nor -o decides it.
const FormatEnv = "UFOTO_FORMAT"

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	verbose(cfg.Verbose)
	path := "."
	switch len(args) {
	case 0:
	case 1:
		path = args[0]
	default:
		return fmt.Errorf("%w: convert takes at most one model, got %v", cli.ErrUsage, args)
	}
	return cfg.run(path, cc.Out)
}

// run converts the model at path, writing to stdout when the output is -.
func (cfg *ConvertConfig) run(path string, stdout io.Writer) error {
	fmat, source, err := resolveFormat(cfg.Format, cfg.Out, os.Getenv(FormatEnv))
	if err != nil {
		return err
	}
	theLog.Debug("resolved format", slog.String("format", fmat.String()), slog.String("source", source))
	opts, err := marshalOpts(cfg.JoinKeys, cfg.Where)
	if err != nil {
		return err
	}
	m, err := load(path, cfg.Patch, opts...)
	if err != nil {
		return err
	}
	w, err := fmat.Writer()
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	if err := w(m.Tree, buf, encode.EncodeWire(cfg.Wire)); err != nil {
		return err
	}
	out := cfg.Out
	if out == "" {
		out = m.Name + fmat.DefaultSuffix()
	}
	if out == "-" {
		if err := writeStdout(stdout, buf.Bytes(), fmat); err != nil {
			return err
		}
		theLog.Debug("wrote output", slog.String("path", "-"), slog.Int("bytes", buf.Len()))
		return nil
	}
	if err := writeFile(out, buf.Bytes()); err != nil {
		return err
	}
	theLog.Info("wrote output", slog.String("path", out), slog.String("format", fmat.String()), slog.Int("bytes", buf.Len()))
	return nil
}

// resolveFormat picks the output format: the -f flag, else the suffix of
// out, else env when there is no output file, else JSON. The second result
// names where the format came from.
func resolveFormat(flag *format.Format, out, env string) (format.Format, string, error) {
	switch {
	case flag != nil:
		return *flag, "flag", nil
	case out != "" && out != "-":
		f, ok := format.Lookup(out)
		if !ok {
			return f, "default", nil
		}
		return f, "suffix", nil
	case env != "":
		f, err := format.ParseFormat(env)
		if err != nil {
			return 0, "", fmt.Errorf("$%s: %w", FormatEnv, err)
		}
		return f, "env", nil
	}
	return format.JSONFormat, "default", nil
}
