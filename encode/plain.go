package encode

import "github.com/signadot/ufoto/ir"

// leaf converts a scalar node to a Go value, reporting ok false for
// containers and opaque values.
func leaf(n *ir.Node) (any, bool) {
	switch n.Type {
	case ir.NullType:
		return nil, true
	case ir.BoolType:
		return n.Bool, true
	case ir.StringType:
		return n.String, true
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64, true
		}
		if n.Float64 != nil {
			return *n.Float64, true
		}
		return int64(0), true
	}
	return nil, false
}

// stringKeys renders the keys of obj for formats whose keys are strings.
// Scalar keys are stringified as for JSON. Tuple keys, opaque keys and
// keys that collide once stringified are rejected.
func stringKeys(name string, obj *ir.Node) ([]string, error) {
	res := make([]string, len(obj.Fields))
	seen := make(map[string]*ir.Node, len(obj.Fields))
	for i, k := range obj.Fields {
		if k.Type == ir.ArrayType {
			return nil, tupleKey(name, obj, k)
		}
		if !k.Type.IsLeaf() || k.Type == ir.OpaqueType {
			return nil, opaque(name, k)
		}
		s := ir.KeyString(k)
		if prev, ok := seen[s]; ok {
			return nil, unsupported(name, obj, "%s key and %s key both encode as %q", prev.Type, k.Type, s)
		}
		seen[s] = k
		res[i] = s
	}
	return res, nil
}
