package marshal

import (
	"fmt"
	"strings"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/ir"
	"github.com/signadot/ufoto/model"
)

// HiddenPrefix marks entity fields that are never marshaled.
const HiddenPrefix = "_"

// Func marshals one entity to an object node.
type Func func(e model.Entity, opts ...Option) (*ir.Node, error)

// Default keeps every field of e that is set and not hidden, in field
// order.
func Default(e model.Entity, opts ...Option) (*ir.Node, error) {
	return newConfig(opts).fields(e), nil
}

func (c *config) fields(e model.Entity) *ir.Node {
	res := ir.Object()
	for _, f := range e.Fields() {
		if _, isNone := f.Value.(model.None); isNone || strings.HasPrefix(f.Name, HiddenPrefix) {
			continue
		}
		res.Add(ir.FromString(f.Name), c.value(f.Value))
	}
	return res
}

// Particle marshals like Default, then sets name to the display form of
// the particle and adds its slug and line type.
func Particle(e model.Entity, opts ...Option) (*ir.Node, error) {
	p, ok := e.(model.Particle)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotParticle, e.String(), e.Class())
	}
	res := newConfig(opts).fields(e)
	res.Set("name", ir.FromString(p.String()))
	res.Set("slug", ir.FromString(p.Repr()))
	res.Set("line_type", ir.FromString(p.LineType()))
	return res, nil
}

var orderAttrs = []string{"name", "expansion_order", "hierarchy", "perturbative_expansion"}

// Order marshals a coupling order from its four attributes. Unlike Default
// it neither skips None values nor looks at any other field.
func Order(e model.Entity, opts ...Option) (*ir.Node, error) {
	return newConfig(opts).explicit(e, orderAttrs, orderAttrs)
}

// Function marshals a function from its name, arguments and expr
// attributes.
func Function(e model.Entity, opts ...Option) (*ir.Node, error) {
	attrs := []string{"name", "arguments", "expr"}
	return newConfig(opts).explicit(e, attrs, attrs)
}

func (c *config) explicit(e model.Entity, keys, attrs []string) (*ir.Node, error) {
	res := ir.Object()
	for i, attr := range attrs {
		v, ok := e.Get(attr)
		if !ok {
			return nil, fmt.Errorf("%w: %s %s has no %s", ErrMissingAttr, e.Class(), e.String(), attr)
		}
		res.Add(ir.FromString(keys[i]), c.value(v))
	}
	return res, nil
}

// List marshals es with fn, keeping order.
func List(es []model.Entity, fn Func, opts ...Option) (*ir.Node, error) {
	vals := make([]*ir.Node, 0, len(es))
	for _, e := range es {
		n, err := fn(e, opts...)
		if err != nil {
			return nil, err
		}
		vals = append(vals, n)
	}
	return ir.FromSlice(vals), nil
}

// Model builds the root structure of m: the metadata fields followed by
// every collection m binds. A collection that is not bound, or bound to
// None, is left out.
func Model(m model.Model, opts ...Option) (*ir.Node, error) {
	c := newConfig(opts)
	res := ir.Object()
	for _, md := range Metadata {
		v, ok := m.Attr(md.Attr)
		if !ok {
			res.Add(ir.FromString(md.Key), ir.FromString(md.Default))
			continue
		}
		res.Add(ir.FromString(md.Key), c.value(v))
	}
	for _, coll := range Collections {
		v, ok := m.Attr(coll.Key)
		if !ok {
			continue
		}
		if _, isNone := v.(model.None); isNone {
			continue
		}
		es, err := model.Entities(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", coll.Key, err)
		}
		list, err := c.collection(coll, es, opts)
		if err != nil {
			return nil, err
		}
		res.Add(ir.FromString(coll.Key), list)
		if debug.Marshal() {
			debug.Logf("marshal: %s: %d of %d entities\n", coll.Key, len(list.Values), len(es))
		}
	}
	return res, nil
}

func (c *config) collection(coll Collection, es []model.Entity, opts []Option) (*ir.Node, error) {
	fn := coll.Kind.Func()
	vals := make([]*ir.Node, 0, len(es))
	for i, e := range es {
		n, err := fn(e, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", coll.Key, i, err)
		}
		if c.filter != nil {
			keep, err := c.filter(coll.Key, i, n)
			if err != nil {
				return nil, err
			}
			if !keep {
				continue
			}
		}
		vals = append(vals, n)
	}
	return ir.FromSlice(vals), nil
}
