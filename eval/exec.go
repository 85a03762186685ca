package eval

import (
	"errors"
	"strings"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/model"
	"github.com/signadot/ufoto/parse"
)

// frame executes statements in one module namespace.
type frame struct {
	in *Interp
	ns *model.Namespace
}

func (f *frame) execBlock(stmts []parse.Stmt) error {
	for _, s := range stmts {
		if err := f.exec(s); err != nil {
			return located(err, s.Pos())
		}
	}
	return nil
}

func (f *frame) exec(s parse.Stmt) error {
	switch s := s.(type) {
	case *parse.Pass:
		return nil
	case *parse.ExprStmt:
		_, err := f.eval(s.X)
		return err
	case *parse.Assign:
		v, err := f.eval(s.Value)
		if err != nil {
			return err
		}
		for _, t := range s.Targets {
			if err := f.assign(t, v); err != nil {
				return located(err, t.Pos())
			}
		}
		return nil
	case *parse.AugAssign:
		return f.augAssign(s)
	case *parse.Import:
		return f.importStmt(s)
	case *parse.ImportFrom:
		return f.importFrom(s)
	case *parse.If:
		c, err := f.eval(s.Cond)
		if err != nil {
			return err
		}
		if model.Truth(c) {
			return f.execBlock(s.Body)
		}
		return f.execBlock(s.Else)
	case *parse.Try:
		return f.try(s)
	}
	return raise(s.Pos(), "SyntaxError", "unsupported statement %T", s)
}

func (f *frame) assign(t parse.Expr, v model.Value) error {
	switch t := t.(type) {
	case *parse.Name:
		f.ns.Bind(t.Name, v)
		return nil
	case *parse.Attr:
		x, err := f.eval(t.X)
		if err != nil {
			return err
		}
		return setAttr(x, t.Name, v)
	case *parse.Subscript:
		x, err := f.eval(t.X)
		if err != nil {
			return err
		}
		idx, err := f.eval(t.Index)
		if err != nil {
			return err
		}
		return setIndex(x, idx, v)
	case *parse.Tuple:
		return f.unpack(t.Elems, v)
	case *parse.List:
		return f.unpack(t.Elems, v)
	}
	return raise(t.Pos(), "SyntaxError", "cannot assign to expression")
}

func (f *frame) unpack(targets []parse.Expr, v model.Value) error {
	l, ok := v.(*model.List)
	if !ok {
		return raise(nil, "TypeError", "cannot unpack non-iterable %s object", typeName(v))
	}
	switch {
	case len(l.Items) > len(targets):
		return raise(nil, "ValueError", "too many values to unpack (expected %d)", len(targets))
	case len(l.Items) < len(targets):
		return raise(nil, "ValueError", "not enough values to unpack (expected %d, got %d)", len(targets), len(l.Items))
	}
	items := append([]model.Value(nil), l.Items...)
	for i, t := range targets {
		if err := f.assign(t, items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *frame) augAssign(s *parse.AugAssign) error {
	cur, err := f.eval(s.Target)
	if err != nil {
		return err
	}
	v, err := f.eval(s.Value)
	if err != nil {
		return err
	}
	// list += extends in place, so aliases such as the object library
	// registries observe it.
	if l, ok := cur.(*model.List); ok && !l.Tuple && s.Op == "+" {
		other, ok := v.(*model.List)
		if !ok {
			return raise(nil, "TypeError", "'%s' object is not iterable", typeName(v))
		}
		l.Items = append(l.Items, other.Items...)
		return nil
	}
	res, err := binop(s.Op, cur, v)
	if err != nil {
		return err
	}
	return f.assign(s.Target, res)
}

func (f *frame) importStmt(s *parse.Import) error {
	for _, a := range s.Names {
		first, rest, dotted := strings.Cut(a.Name, ".")
		m, err := f.in.importModule(first, s.At)
		if err != nil {
			return err
		}
		bound := m
		if dotted {
			if _, ok := m.(model.Opaque); !ok {
				return raise(s.At, "ModuleNotFoundError", "No module named '%s'; '%s' is not a package", a.Name, first)
			}
			if a.As != "" {
				for _, part := range strings.Split(rest, ".") {
					if bound, err = getAttr(f.in, bound, part); err != nil {
						return err
					}
				}
			}
		}
		name := first
		if a.As != "" {
			name = a.As
		}
		f.ns.Bind(name, bound)
		if debug.Eval() {
			debug.Logf("eval: %s: import %s as %s\n", f.ns.Name, a.Name, name)
		}
	}
	return nil
}

func (f *frame) importFrom(s *parse.ImportFrom) error {
	if s.Level > 1 {
		return raise(s.At, "ImportError", "attempted relative import beyond top-level package")
	}
	if s.Module == "" {
		for _, a := range s.Names {
			m, err := f.in.importModule(a.Name, s.At)
			if err != nil {
				return err
			}
			f.ns.Bind(bindName(a), m)
		}
		return nil
	}
	m, err := f.in.importModule(s.Module, s.At)
	if err != nil {
		return err
	}
	if s.Star {
		mod, ok := m.(model.Module)
		if !ok {
			return nil
		}
		for _, name := range publicNames(mod.Namespace) {
			v, _ := mod.Attr(name)
			f.ns.Bind(name, v)
		}
		return nil
	}
	for _, a := range s.Names {
		v, err := getAttr(f.in, m, a.Name)
		if err != nil {
			return raise(s.At, "ImportError", "cannot import name '%s' from '%s'", a.Name, s.Module)
		}
		f.ns.Bind(bindName(a), v)
	}
	return nil
}

func bindName(a parse.Alias) string {
	if a.As != "" {
		return a.As
	}
	return a.Name
}

// publicNames lists the names from m import * binds: __all__ when it is
// a list of strings, otherwise every name not starting with _.
func publicNames(ns *model.Namespace) []string {
	if all, ok := ns.Attr("__all__"); ok {
		if l, ok := all.(*model.List); ok {
			var res []string
			for _, it := range l.Items {
				if s, ok := it.(model.Str); ok {
					res = append(res, string(s))
				}
			}
			return res
		}
	}
	var res []string
	for _, n := range ns.Names() {
		if !strings.HasPrefix(n, "_") {
			res = append(res, n)
		}
	}
	return res
}

func (f *frame) try(s *parse.Try) error {
	err := f.execBlock(s.Body)
	var exc *Exception
	switch {
	case err == nil:
		if len(s.Else) != 0 {
			err = f.execBlock(s.Else)
		}
	case errors.As(err, &exc):
		for _, h := range s.Handlers {
			ok, merr := f.matches(h, exc)
			if merr != nil {
				err = merr
				break
			}
			if !ok {
				continue
			}
			if debug.Eval() {
				debug.Logf("eval: %s: caught %s\n", f.ns.Name, exc)
			}
			if h.Name != "" {
				f.ns.Bind(h.Name, model.Opaque{Type: exc.Class, V: exc})
			}
			err = f.execBlock(h.Body)
			break
		}
	}
	if len(s.Finally) != 0 {
		if ferr := f.execBlock(s.Finally); ferr != nil {
			return ferr
		}
	}
	return err
}

// matches reports whether handler h catches exc.
func (f *frame) matches(h *parse.Handler, exc *Exception) (bool, error) {
	if len(h.Types) == 0 {
		return true, nil
	}
	for _, t := range h.Types {
		n, ok := t.(*parse.Name)
		if !ok || !isExceptionClass(n.Name) {
			return false, raise(t.Pos(), "TypeError", "catching classes that do not inherit from BaseException is not allowed")
		}
		if isSubclass(exc.Class, n.Name) {
			return true, nil
		}
	}
	return false, nil
}
