package marshal

import (
	"strings"

	"github.com/signadot/ufoto/ir"
	"github.com/signadot/ufoto/model"
)

// Value maps a model value to a tree. Entity references become the slug
// of the entity referenced.
func Value(v model.Value, opts ...Option) *ir.Node {
	return newConfig(opts).value(v)
}

func (c *config) value(v model.Value) *ir.Node {
	switch x := v.(type) {
	case model.None:
		return ir.Null()
	case model.Bool:
		return ir.FromBool(bool(x))
	case model.Int:
		return ir.FromInt(int64(x))
	case model.Float:
		return ir.FromFloat(float64(x))
	case model.Str:
		return ir.FromString(string(x))
	case model.Ref:
		return ir.FromString(x.Entity.Repr())
	case *model.List:
		vals := make([]*ir.Node, len(x.Items))
		for i, it := range x.Items {
			vals[i] = c.value(it)
		}
		return ir.FromSlice(vals)
	case *model.Dict:
		res := ir.Object()
		for i := range x.Keys {
			res.Add(c.key(x.Keys[i]), c.value(x.Vals[i]))
		}
		return res
	}
	return ir.FromOpaque(model.String(v))
}

func (c *config) key(k model.Value) *ir.Node {
	l, ok := k.(*model.List)
	if !ok || !c.joinKeys {
		return c.value(k)
	}
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = ir.KeyString(c.key(it))
	}
	return ir.FromString(strings.Join(parts, ","))
}
