package encode

import (
	"bytes"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/ir"
)

const yamlName = "yaml"

// YAML writes node as a YAML document keeping object order. Non-string
// scalar keys are stringified as for JSON, so {0: P} becomes "0": P; tuple
// keys are rejected.
func YAML(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	v, err := toYAML(node)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf, yaml.Indent(es.indent), yaml.IndentSequence(true))
	if err := enc.Encode(v); err != nil {
		return err
	}
	if debug.Encode() {
		debug.Logf("encode: yaml %d bytes\n", buf.Len())
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func toYAML(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.ObjectType:
		keys, err := stringKeys(yamlName, n)
		if err != nil {
			return nil, err
		}
		res := make(yaml.MapSlice, len(n.Fields))
		for i, k := range keys {
			v, err := toYAML(n.Values[i])
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: k, Value: v}
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			x, err := toYAML(v)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	}
	v, ok := leaf(n)
	if !ok {
		return nil, opaque(yamlName, n)
	}
	return v, nil
}
