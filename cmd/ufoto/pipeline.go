package main

import (
	"fmt"
	"log/slog"

	"github.com/signadot/ufoto/ir"
	"github.com/signadot/ufoto/loader"
	"github.com/signadot/ufoto/marshal"
	"github.com/signadot/ufoto/patch"
)

// loaded is a model and its marshaled tree.
type loaded struct {
	Name string
	Tree *ir.Node
}

// load loads and marshals the model at path, applying the patch file when
// patchPath is set.
func load(path, patchPath string, opts ...marshal.Option) (*loaded, error) {
	ns, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	theLog.Debug("loaded model", slog.String("path", ns.Path), slog.String("name", ns.Name),
		slog.Any("counts", loader.Counts(ns)))
	tree, err := marshal.Model(ns, opts...)
	if err != nil {
		return nil, fmt.Errorf("marshaling model %s: %w", ns.Name, err)
	}
	if patchPath != "" {
		p, err := patch.Load(patchPath)
		if err != nil {
			return nil, err
		}
		if tree, err = p.Apply(tree); err != nil {
			return nil, fmt.Errorf("applying %s: %w", patchPath, err)
		}
		theLog.Debug("applied patch", slog.String("path", patchPath), slog.String("kind", p.Kind.String()))
	}
	return &loaded{Name: ns.Name, Tree: tree}, nil
}
