package eval

import (
	"github.com/signadot/ufoto/model"
	"github.com/signadot/ufoto/parse"
)

func (f *frame) eval(x parse.Expr) (model.Value, error) {
	v, err := f.evalExpr(x)
	if err != nil {
		return nil, located(err, x.Pos())
	}
	return v, nil
}

func (f *frame) evalExpr(x parse.Expr) (model.Value, error) {
	switch x := x.(type) {
	case *parse.NoneLit:
		return model.None{}, nil
	case *parse.BoolLit:
		return model.Bool(x.Value), nil
	case *parse.IntLit:
		return model.Int(x.Value), nil
	case *parse.FloatLit:
		return model.Float(x.Value), nil
	case *parse.StrLit:
		return model.Str(x.Value), nil
	case *parse.Name:
		return f.lookup(x)
	case *parse.Attr:
		v, err := f.eval(x.X)
		if err != nil {
			return nil, err
		}
		return getAttr(f.in, v, x.Name)
	case *parse.Call:
		return f.call(x)
	case *parse.Subscript:
		v, err := f.eval(x.X)
		if err != nil {
			return nil, err
		}
		idx, err := f.eval(x.Index)
		if err != nil {
			return nil, err
		}
		return index(v, idx)
	case *parse.List:
		items, err := f.evalAll(x.Elems)
		if err != nil {
			return nil, err
		}
		return model.NewList(items...), nil
	case *parse.Tuple:
		items, err := f.evalAll(x.Elems)
		if err != nil {
			return nil, err
		}
		return model.NewTuple(items...), nil
	case *parse.Dict:
		d := &model.Dict{}
		for i := range x.Keys {
			k, err := f.eval(x.Keys[i])
			if err != nil {
				return nil, err
			}
			if err := hashable(k); err != nil {
				return nil, located(err, x.Keys[i].Pos())
			}
			v, err := f.eval(x.Vals[i])
			if err != nil {
				return nil, err
			}
			d.Set(k, v)
		}
		return d, nil
	case *parse.Unary:
		v, err := f.eval(x.X)
		if err != nil {
			return nil, err
		}
		return unop(x.Op, v)
	case *parse.Binary:
		a, err := f.eval(x.X)
		if err != nil {
			return nil, err
		}
		b, err := f.eval(x.Y)
		if err != nil {
			return nil, err
		}
		return binop(x.Op, a, b)
	case *parse.BoolOp:
		a, err := f.eval(x.X)
		if err != nil {
			return nil, err
		}
		if model.Truth(a) == (x.Op == "or") {
			return a, nil
		}
		return f.eval(x.Y)
	case *parse.Compare:
		a, err := f.eval(x.Xs[0])
		if err != nil {
			return nil, err
		}
		for i, op := range x.Ops {
			b, err := f.eval(x.Xs[i+1])
			if err != nil {
				return nil, err
			}
			ok, err := compare(op, a, b)
			if err != nil {
				return nil, err
			}
			if !ok {
				return model.Bool(false), nil
			}
			a = b
		}
		return model.Bool(true), nil
	case *parse.Cond:
		t, err := f.eval(x.Test)
		if err != nil {
			return nil, err
		}
		if model.Truth(t) {
			return f.eval(x.X)
		}
		return f.eval(x.Y)
	}
	return nil, raise(x.Pos(), "SyntaxError", "unsupported expression %T", x)
}

func (f *frame) evalAll(xs []parse.Expr) ([]model.Value, error) {
	res := make([]model.Value, len(xs))
	for i, x := range xs {
		v, err := f.eval(x)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func (f *frame) lookup(n *parse.Name) (model.Value, error) {
	if v, ok := f.ns.Attr(n.Name); ok {
		return v, nil
	}
	if v, ok := f.in.builtins[n.Name]; ok {
		return v, nil
	}
	if isExceptionClass(n.Name) {
		return model.Opaque{Type: "type", V: exceptionClass(n.Name)}, nil
	}
	return nil, raise(n.At, "NameError", "name '%s' is not defined", n.Name)
}

// exceptionClass is the value of a builtin exception class name.
type exceptionClass string

func (c exceptionClass) String() string {
	return string(c)
}

func (f *frame) call(c *parse.Call) (model.Value, error) {
	fn, err := f.eval(c.Fn)
	if err != nil {
		return nil, err
	}
	args, err := f.evalAll(c.Args)
	if err != nil {
		return nil, err
	}
	kws := make([]model.Field, len(c.Keywords))
	for i, kw := range c.Keywords {
		v, err := f.eval(kw.Value)
		if err != nil {
			return nil, err
		}
		kws[i] = model.Field{Name: kw.Name, Value: v}
	}
	o, ok := fn.(model.Opaque)
	if !ok {
		return nil, notCallable(fn)
	}
	switch callee := o.V.(type) {
	case *Func:
		return callee.call(f.in, args, kws)
	case *stub:
		return model.Opaque{Type: "object", V: &stub{path: callee.path + "()"}}, nil
	}
	return nil, notCallable(fn)
}

func getAttr(in *Interp, v model.Value, name string) (model.Value, error) {
	switch x := v.(type) {
	case model.Module:
		if a, ok := x.Attr(name); ok {
			return a, nil
		}
		return nil, raise(nil, "AttributeError", "module '%s' has no attribute '%s'", x.Name, name)
	case model.Ref:
		if a, ok := x.Entity.Get(name); ok {
			return a, nil
		}
		if m, ok := in.entityMethod(x.Entity, name); ok {
			return m, nil
		}
		return nil, raise(nil, "AttributeError", "'%s' object has no attribute '%s'", x.Entity.Class(), name)
	case model.Opaque:
		if s, ok := x.V.(*stub); ok {
			return model.Opaque{Type: "object", V: &stub{path: s.path + "." + name}}, nil
		}
	}
	return nil, raise(nil, "AttributeError", "'%s' object has no attribute '%s'", typeName(v), name)
}

// settable is an entity whose attributes can be assigned.
type settable interface {
	Set(name string, v model.Value)
}

func setAttr(target model.Value, name string, v model.Value) error {
	switch x := target.(type) {
	case model.Ref:
		if s, ok := x.Entity.(settable); ok {
			s.Set(name, v)
			return nil
		}
	case model.Module:
		x.Bind(name, v)
		return nil
	case model.Opaque:
		if _, ok := x.V.(*stub); ok {
			return nil
		}
	}
	return raise(nil, "AttributeError", "'%s' object has no attribute '%s'", typeName(target), name)
}

func setIndex(target, idx, v model.Value) error {
	switch x := target.(type) {
	case *model.List:
		if x.Tuple {
			break
		}
		i, err := seqIndex("list", idx, len(x.Items))
		if err != nil {
			return err
		}
		x.Items[i] = v
		return nil
	case *model.Dict:
		if err := hashable(idx); err != nil {
			return err
		}
		x.Set(idx, v)
		return nil
	}
	return raise(nil, "TypeError", "'%s' object does not support item assignment", typeName(target))
}
