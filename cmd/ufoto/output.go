package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/signadot/ufoto/format"
)

var errBinaryTerminal = errors.New("refusing to write binary output to a terminal")

// writeFile replaces path with d. The data go to a temporary file beside
// path first, so path is never left partially written.
func writeFile(path string, d []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(d); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeStdout(w io.Writer, d []byte, f format.Format) error {
	if f.IsBinary() && isTerminal(w) {
		return fmt.Errorf("%w: %s", errBinaryTerminal, f)
	}
	_, err := w.Write(d)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
