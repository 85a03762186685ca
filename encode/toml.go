package encode

import (
	"bytes"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/ir"
)

const tomlName = "toml"

// TOML writes node, which must be an object, as a TOML document. TOML has
// no null: null fields are dropped and null array elements rejected.
// Scalar keys are stringified and must stay distinct once stringified.
// Tables are written in key order.
func TOML(node *ir.Node, w io.Writer, _ ...EncodeOption) error {
	if node.Type != ir.ObjectType {
		return unsupported(tomlName, node, "document root must be a table, not %s", node.Type)
	}
	v, err := toTOML(node)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	if err := toml.NewEncoder(buf).Encode(v); err != nil {
		return err
	}
	if debug.Encode() {
		debug.Logf("encode: toml %d bytes\n", buf.Len())
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func toTOML(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.ObjectType:
		keys, err := stringKeys(tomlName, n)
		if err != nil {
			return nil, err
		}
		res := make(map[string]any, len(n.Fields))
		for i, key := range keys {
			if n.Values[i].Type == ir.NullType {
				continue
			}
			v, err := toTOML(n.Values[i])
			if err != nil {
				return nil, err
			}
			res[key] = v
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			if v.Type == ir.NullType {
				return nil, unsupported(tomlName, v, "null array element")
			}
			x, err := toTOML(v)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	}
	v, ok := leaf(n)
	if !ok {
		return nil, opaque(tomlName, n)
	}
	return v, nil
}
