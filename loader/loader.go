// Package loader evaluates a UFO model package directory into the
// namespace the marshaler reads.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/eval"
	"github.com/signadot/ufoto/model"
)

var ErrModelNotFound = errors.New("model not found")

const initFile = "__init__.py"

// Load evaluates the model package at p, which is either the package
// directory or the path of its __init__.py. The namespace is named after
// the package directory.
func Load(p string) (*model.Namespace, error) {
	dir, err := packageDir(p)
	if err != nil {
		return nil, err
	}
	name := Name(dir)
	if debug.Load() {
		debug.Logf("load: %s as %s\n", dir, name)
	}
	ns, err := eval.New(os.DirFS(dir), eval.WithRoot(dir)).Run(name)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", name, err)
	}
	if debug.Load() {
		debug.Logf("load: %s: %v\n", name, Counts(ns))
	}
	return ns, nil
}

func packageDir(p string) (string, error) {
	fi, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrModelNotFound, p)
		}
		return "", err
	}
	dir := p
	if !fi.IsDir() {
		if filepath.Base(p) != initFile {
			return "", fmt.Errorf("%w: %s is not a package directory or %s", ErrModelNotFound, p, initFile)
		}
		dir = filepath.Dir(p)
	}
	if _, err := os.Stat(filepath.Join(dir, initFile)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: no %s in %s", ErrModelNotFound, initFile, dir)
		}
		return "", err
	}
	return filepath.Clean(dir), nil
}

// Name returns the model name of package directory dir, its base name
// once made absolute.
func Name(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(dir)
}

// Count is the number of entities in one collection of a model.
type Count struct {
	Collection string
	N          int
}

func (c Count) String() string {
	return fmt.Sprintf("%s=%d", c.Collection, c.N)
}

// Counts lists the size of every collection m binds, in marshal order.
// Values that are not collections are skipped.
func Counts(m model.Model) []Count {
	var res []Count
	for _, name := range eval.Registries {
		v, ok := m.Attr(name)
		if !ok {
			continue
		}
		es, err := model.Entities(v)
		if err != nil {
			continue
		}
		res = append(res, Count{Collection: name, N: len(es)})
	}
	return res
}
