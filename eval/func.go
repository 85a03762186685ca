package eval

import (
	"slices"
	"strings"

	"github.com/signadot/ufoto/model"
)

// Param is one parameter of a native function. A nil Default marks it
// required.
type Param struct {
	Name    string
	Default model.Value
}

// Signature describes how call arguments bind to parameters. With Kwargs
// set, unknown keyword arguments are collected in call order, as **options
// does.
type Signature struct {
	Params []Param
	Kwargs bool
}

func params(names ...string) []Param {
	res := make([]Param, len(names))
	for i, n := range names {
		res[i] = Param{Name: n}
	}
	return res
}

// Bind matches positional and keyword arguments to the parameters of
// function fname.
func (s *Signature) Bind(fname string, args []model.Value, kws []model.Field) ([]model.Value, []model.Field, error) {
	if len(args) > len(s.Params) {
		return nil, nil, raise(nil, "TypeError", "%s() takes %d positional arguments but %d were given", fname, len(s.Params), len(args))
	}
	vals := make([]model.Value, len(s.Params))
	copy(vals, args)
	var opts []model.Field
	for _, kw := range kws {
		i := slices.IndexFunc(s.Params, func(p Param) bool { return p.Name == kw.Name })
		if i < 0 {
			if !s.Kwargs {
				return nil, nil, raise(nil, "TypeError", "%s() got an unexpected keyword argument '%s'", fname, kw.Name)
			}
			opts = append(opts, kw)
			continue
		}
		if vals[i] != nil {
			return nil, nil, raise(nil, "TypeError", "%s() got multiple values for argument '%s'", fname, kw.Name)
		}
		vals[i] = kw.Value
	}
	var missing []string
	for i, p := range s.Params {
		if vals[i] != nil {
			continue
		}
		if p.Default == nil {
			missing = append(missing, "'"+p.Name+"'")
			continue
		}
		vals[i] = p.Default
	}
	if len(missing) != 0 {
		return nil, nil, raise(nil, "TypeError", "%s() missing %d required positional %s: %s",
			fname, len(missing), plural(len(missing), "argument"), andList(missing))
	}
	return vals, opts, nil
}

func plural(n int, w string) string {
	if n == 1 {
		return w
	}
	return w + "s"
}

func andList(xs []string) string {
	switch len(xs) {
	case 1:
		return xs[0]
	case 2:
		return xs[0] + " and " + xs[1]
	}
	return strings.Join(xs[:len(xs)-1], ", ") + ", and " + xs[len(xs)-1]
}

// Func is a natively implemented callable: a builtin, a class constructor
// or a bound method. Without a Signature, Fn receives the raw positional
// arguments and no keywords are accepted.
type Func struct {
	Name string
	Sig  *Signature
	Fn   func(in *Interp, args []model.Value, opts []model.Field) (model.Value, error)
}

func (f *Func) String() string {
	return f.Name
}

func (f *Func) call(in *Interp, args []model.Value, kws []model.Field) (model.Value, error) {
	if f.Sig == nil {
		if len(kws) != 0 {
			return nil, raise(nil, "TypeError", "%s() takes no keyword arguments", f.Name)
		}
		return f.Fn(in, args, nil)
	}
	vals, opts, err := f.Sig.Bind(f.Name, args, kws)
	if err != nil {
		return nil, err
	}
	return f.Fn(in, vals, opts)
}

func builtinFunc(name string, fn func(in *Interp, args []model.Value, opts []model.Field) (model.Value, error)) model.Value {
	return model.Opaque{Type: "builtin_function_or_method", V: &Func{Name: name, Fn: fn}}
}

func method(name string, sig *Signature, fn func(in *Interp, args []model.Value, opts []model.Field) (model.Value, error)) model.Value {
	return model.Opaque{Type: "method", V: &Func{Name: name, Sig: sig, Fn: fn}}
}

// arity checks the positional argument count of a signature-less Func.
func arity(name string, args []model.Value, min, max int) error {
	if len(args) >= min && len(args) <= max {
		return nil
	}
	if min == max {
		return raise(nil, "TypeError", "%s() takes exactly %d %s (%d given)", name, min, plural(min, "argument"), len(args))
	}
	return raise(nil, "TypeError", "%s() takes from %d to %d arguments (%d given)", name, min, max, len(args))
}

func typeName(v model.Value) string {
	return v.Kind()
}

func notCallable(v model.Value) error {
	return raise(nil, "TypeError", "'%s' object is not callable", typeName(v))
}
