// Package patch applies a JSON Patch (RFC 6902) or a JSON merge patch
// (RFC 7386) to a marshaled model.
//
// Patch documents are JSON or YAML. An array document is a JSON Patch, an
// object document a merge patch. The patched tree keeps the field order
// and key kinds of the original wherever the patch leaves a field in
// place; fields the patch adds follow in the order the patch result has
// them.
package patch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/encode"
	"github.com/signadot/ufoto/ir"
)

var ErrPatch = errors.New("patch error")

type Kind int

const (
	JSONPatch Kind = iota
	MergePatch
)

func (k Kind) String() string {
	if k == MergePatch {
		return "merge-patch"
	}
	return "json-patch"
}

type Patch struct {
	Kind  Kind
	ops   jsonpatch.Patch
	merge []byte
}

// Load reads a patch file. Files with a .yaml or .yml suffix are YAML,
// anything else JSON.
func Load(path string) (*Patch, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if d, err = yaml.YAMLToJSON(d); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPatch, path, err)
		}
	}
	p, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a JSON patch document.
func Parse(d []byte) (*Patch, error) {
	d = bytes.TrimSpace(d)
	switch {
	case len(d) > 0 && d[0] == '[':
		ops, err := jsonpatch.DecodePatch(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPatch, err)
		}
		return &Patch{Kind: JSONPatch, ops: ops}, nil
	case len(d) > 0 && d[0] == '{':
		return &Patch{Kind: MergePatch, merge: d}, nil
	}
	return nil, fmt.Errorf("%w: document is neither an array of operations nor an object", ErrPatch)
}

// Apply returns the patched copy of doc. doc must be encodable as JSON.
func (p *Patch) Apply(doc *ir.Node) (*ir.Node, error) {
	if debug.Marshal() {
		debug.Logf("patch: %s on %s\n", p.Kind, doc.Path())
	}
	buf := &bytes.Buffer{}
	if err := encode.JSON(doc, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	var (
		out []byte
		err error
	)
	switch p.Kind {
	case MergePatch:
		out, err = jsonpatch.MergePatch(buf.Bytes(), p.merge)
	default:
		out, err = p.ops.Apply(buf.Bytes())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := ir.ParseJSON(out)
	if err != nil {
		return nil, err
	}
	return reorder(doc, res), nil
}

// reorder arranges the fields of res in the order of orig, restoring the
// original key nodes. Fields only res has go last.
func reorder(orig, res *ir.Node) *ir.Node {
	switch {
	case orig.Type == ir.ObjectType && res.Type == ir.ObjectType:
		byKey := make(map[string]int, len(res.Fields))
		for i, k := range res.Fields {
			byKey[k.String] = i
		}
		out := ir.Object()
		used := make([]bool, len(res.Fields))
		for i, k := range orig.Fields {
			j, ok := byKey[ir.KeyString(k)]
			if !ok || used[j] {
				continue
			}
			used[j] = true
			out.Add(k.Clone(), reorder(orig.Values[i], res.Values[j]))
		}
		for j, k := range res.Fields {
			if !used[j] {
				out.Add(k, res.Values[j])
			}
		}
		return out
	case orig.Type == ir.ArrayType && res.Type == ir.ArrayType:
		vals := make([]*ir.Node, len(res.Values))
		for i, v := range res.Values {
			if i < len(orig.Values) {
				v = reorder(orig.Values[i], v)
			}
			vals[i] = v
		}
		return ir.FromSlice(vals)
	case orig.Type == ir.NumberType && res.Type == ir.NumberType:
		// 1.0 may come back from the patcher as 1.
		if orig.Float64 != nil && res.Int64 != nil && float64(*res.Int64) == *orig.Float64 {
			return ir.FromFloat(*orig.Float64)
		}
	}
	return res
}
