package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/signadot/ufoto/model"
)

func builtins() map[string]model.Value {
	return map[string]model.Value{
		"float":   builtinFunc("float", toFloat),
		"int":     builtinFunc("int", toInt),
		"str":     builtinFunc("str", toStr),
		"bool":    builtinFunc("bool", toBool),
		"abs":     builtinFunc("abs", absFunc),
		"len":     builtinFunc("len", lenFunc),
		"list":    builtinFunc("list", seqFunc("list", false)),
		"tuple":   builtinFunc("tuple", seqFunc("tuple", true)),
		"complex": builtinFunc("complex", complexFunc),
	}
}

func toFloat(_ *Interp, args []model.Value, _ []model.Field) (model.Value, error) {
	if err := arity("float", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return model.Float(0), nil
	}
	switch x := args[0].(type) {
	case model.Str:
		s := strings.ReplaceAll(strings.TrimSpace(string(x)), "_", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || strings.HasPrefix(strings.ToLower(s), "0x") {
			return nil, raise(nil, "ValueError", "could not convert string to float: %s", model.Repr(x))
		}
		return model.Float(f), nil
	}
	f, ok := model.Number(args[0])
	if !ok {
		return nil, raise(nil, "TypeError", "float() argument must be a string or a number, not '%s'", typeName(args[0]))
	}
	return model.Float(f), nil
}

func toInt(_ *Interp, args []model.Value, _ []model.Field) (model.Value, error) {
	if err := arity("int", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return model.Int(0), nil
	}
	switch x := args[0].(type) {
	case model.Str:
		s := strings.ReplaceAll(strings.TrimSpace(string(x)), "_", "")
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, raise(nil, "ValueError", "invalid literal for int() with base 10: %s", model.Repr(x))
		}
		return model.Int(i), nil
	case model.Float:
		f := float64(x)
		if math.IsInf(f, 0) || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return nil, raise(nil, "OverflowError", "cannot convert float %s to integer", model.String(x))
		}
		return model.Int(int64(f)), nil
	}
	n, ok := numeric(args[0])
	if !ok {
		return nil, raise(nil, "TypeError", "int() argument must be a string or a number, not '%s'", typeName(args[0]))
	}
	return n, nil
}

func toStr(_ *Interp, args []model.Value, _ []model.Field) (model.Value, error) {
	if err := arity("str", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return model.Str(""), nil
	}
	if o, ok := args[0].(model.Opaque); ok {
		if exc, ok := o.V.(*Exception); ok {
			return model.Str(exc.Msg), nil
		}
	}
	return model.Str(model.String(args[0])), nil
}

func toBool(_ *Interp, args []model.Value, _ []model.Field) (model.Value, error) {
	if err := arity("bool", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return model.Bool(false), nil
	}
	return model.Bool(model.Truth(args[0])), nil
}

func absFunc(_ *Interp, args []model.Value, _ []model.Field) (model.Value, error) {
	if err := arity("abs", args, 1, 1); err != nil {
		return nil, err
	}
	n, ok := numeric(args[0])
	if !ok {
		return nil, raise(nil, "TypeError", "bad operand type for abs(): '%s'", typeName(args[0]))
	}
	switch x := n.(type) {
	case model.Int:
		if x < 0 {
			return unop("-", x)
		}
		return x, nil
	case model.Float:
		return model.Float(math.Abs(float64(x))), nil
	}
	return n, nil
}

func lenFunc(_ *Interp, args []model.Value, _ []model.Field) (model.Value, error) {
	if err := arity("len", args, 1, 1); err != nil {
		return nil, err
	}
	switch x := args[0].(type) {
	case *model.List:
		return model.Int(len(x.Items)), nil
	case *model.Dict:
		return model.Int(x.Len()), nil
	case model.Str:
		return model.Int(len([]rune(string(x)))), nil
	}
	return nil, raise(nil, "TypeError", "object of type '%s' has no len()", typeName(args[0]))
}

func seqFunc(name string, tuple bool) func(*Interp, []model.Value, []model.Field) (model.Value, error) {
	return func(_ *Interp, args []model.Value, _ []model.Field) (model.Value, error) {
		if err := arity(name, args, 0, 1); err != nil {
			return nil, err
		}
		res := &model.List{Tuple: tuple}
		if len(args) == 0 {
			return res, nil
		}
		switch x := args[0].(type) {
		case *model.List:
			res.Items = append([]model.Value(nil), x.Items...)
		case *model.Dict:
			res.Items = append([]model.Value(nil), x.Keys...)
		case model.Str:
			for _, r := range string(x) {
				res.Items = append(res.Items, model.Str(r))
			}
		default:
			return nil, raise(nil, "TypeError", "'%s' object is not iterable", typeName(x))
		}
		return res, nil
	}
}

func complexFunc(_ *Interp, _ []model.Value, _ []model.Field) (model.Value, error) {
	return nil, raise(nil, "NotImplementedError", "complex numbers are not supported")
}

// mathModule provides math or, with complex set, cmath. Results that
// would be complex are rejected.
type mathModule struct {
	name    string
	complex bool
}

func (m mathModule) Name() string {
	return m.name
}

func (m mathModule) Instance(*Interp) model.Value {
	ns := model.NewNamespace(m.name)
	ns.Bind("pi", model.Float(math.Pi))
	ns.Bind("e", model.Float(math.E))
	fns := []struct {
		name   string
		fn     func(float64) float64
		domain func(float64) bool
	}{
		{"sqrt", math.Sqrt, func(x float64) bool { return x >= 0 }},
		{"exp", math.Exp, nil},
		{"log", math.Log, func(x float64) bool { return x > 0 }},
		{"log10", math.Log10, func(x float64) bool { return x > 0 }},
		{"sin", math.Sin, nil},
		{"cos", math.Cos, nil},
		{"tan", math.Tan, nil},
		{"asin", math.Asin, func(x float64) bool { return x >= -1 && x <= 1 }},
		{"acos", math.Acos, func(x float64) bool { return x >= -1 && x <= 1 }},
		{"atan", math.Atan, nil},
	}
	for _, f := range fns {
		qual := m.name + "." + f.name
		ns.Bind(f.name, builtinFunc(qual, func(_ *Interp, args []model.Value, _ []model.Field) (model.Value, error) {
			if err := arity(qual, args, 1, 1); err != nil {
				return nil, err
			}
			x, ok := model.Number(args[0])
			if !ok {
				return nil, raise(nil, "TypeError", "must be real number, not %s", typeName(args[0]))
			}
			if f.domain != nil && !f.domain(x) {
				if m.complex {
					return nil, raise(nil, "NotImplementedError", "complex results are not supported")
				}
				return nil, raise(nil, "ValueError", "math domain error")
			}
			return model.Float(f.fn(x)), nil
		}))
	}
	return model.Module{Namespace: ns}
}

// stub stands in for a standard library module the model sources import
// but whose behaviour does not affect the model. Attribute access and
// calls on a stub produce further stubs.
type stub struct {
	path string
}

func (s *stub) String() string {
	return s.path
}

type stubModule string

func (s stubModule) Name() string {
	return string(s)
}

func (s stubModule) Instance(*Interp) model.Value {
	return model.Opaque{Type: "module", V: &stub{path: string(s)}}
}
