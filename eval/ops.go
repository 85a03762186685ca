package eval

import (
	"math"
	"strings"

	"github.com/signadot/ufoto/model"
)

// numeric converts bools to ints, leaving Int and Float alone.
func numeric(v model.Value) (model.Value, bool) {
	switch x := v.(type) {
	case model.Bool:
		if x {
			return model.Int(1), true
		}
		return model.Int(0), true
	case model.Int, model.Float:
		return x, true
	}
	return nil, false
}

func unsupportedOperands(op string, x, y model.Value) error {
	return raise(nil, "TypeError", "unsupported operand type(s) for %s: '%s' and '%s'", op, typeName(x), typeName(y))
}

func overflow() error {
	return raise(nil, "OverflowError", "integer result out of range")
}

func binop(op string, x, y model.Value) (model.Value, error) {
	nx, okx := numeric(x)
	ny, oky := numeric(y)
	if okx && oky {
		if a, ok := nx.(model.Int); ok {
			if b, ok := ny.(model.Int); ok {
				return intOp(op, int64(a), int64(b))
			}
		}
		a, _ := model.Number(nx)
		b, _ := model.Number(ny)
		return floatOp(op, a, b)
	}
	switch op {
	case "+":
		switch a := x.(type) {
		case model.Str:
			if b, ok := y.(model.Str); ok {
				return a + b, nil
			}
		case *model.List:
			if b, ok := y.(*model.List); ok && a.Tuple == b.Tuple {
				items := make([]model.Value, 0, len(a.Items)+len(b.Items))
				items = append(items, a.Items...)
				items = append(items, b.Items...)
				return &model.List{Items: items, Tuple: a.Tuple}, nil
			}
		}
	case "*":
		seq, count := x, ny
		if okx {
			seq, count = y, nx
		}
		n, ok := count.(model.Int)
		if !ok {
			break
		}
		if n < 0 {
			n = 0
		}
		switch a := seq.(type) {
		case model.Str:
			return model.Str(strings.Repeat(string(a), int(n))), nil
		case *model.List:
			items := make([]model.Value, 0, len(a.Items)*int(n))
			for range int(n) {
				items = append(items, a.Items...)
			}
			return &model.List{Items: items, Tuple: a.Tuple}, nil
		}
	}
	return nil, unsupportedOperands(op, x, y)
}

func intOp(op string, a, b int64) (model.Value, error) {
	switch op {
	case "+":
		s := a + b
		if (s > a) != (b > 0) {
			return nil, overflow()
		}
		return model.Int(s), nil
	case "-":
		s := a - b
		if (s < a) != (b > 0) {
			return nil, overflow()
		}
		return model.Int(s), nil
	case "*":
		if a == 0 || b == 0 {
			return model.Int(0), nil
		}
		s := a * b
		if s/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return nil, overflow()
		}
		return model.Int(s), nil
	case "/":
		if b == 0 {
			return nil, raise(nil, "ZeroDivisionError", "division by zero")
		}
		return model.Float(float64(a) / float64(b)), nil
	case "//":
		if b == 0 {
			return nil, raise(nil, "ZeroDivisionError", "integer division or modulo by zero")
		}
		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q--
		}
		return model.Int(q), nil
	case "%":
		if b == 0 {
			return nil, raise(nil, "ZeroDivisionError", "integer division or modulo by zero")
		}
		m := a % b
		if m != 0 && ((m < 0) != (b < 0)) {
			m += b
		}
		return model.Int(m), nil
	case "**":
		if b < 0 {
			if a == 0 {
				return nil, raise(nil, "ZeroDivisionError", "0.0 cannot be raised to a negative power")
			}
			return model.Float(math.Pow(float64(a), float64(b))), nil
		}
		res := int64(1)
		base := a
		for e := b; e > 0; e >>= 1 {
			if e&1 == 1 {
				v, err := intOp("*", res, base)
				if err != nil {
					return nil, err
				}
				res = int64(v.(model.Int))
			}
			if e > 1 {
				v, err := intOp("*", base, base)
				if err != nil {
					return nil, err
				}
				base = int64(v.(model.Int))
			}
		}
		return model.Int(res), nil
	}
	return nil, raise(nil, "TypeError", "unsupported operator %s", op)
}

func floatOp(op string, a, b float64) (model.Value, error) {
	switch op {
	case "+":
		return model.Float(a + b), nil
	case "-":
		return model.Float(a - b), nil
	case "*":
		return model.Float(a * b), nil
	case "/":
		if b == 0 {
			return nil, raise(nil, "ZeroDivisionError", "float division by zero")
		}
		return model.Float(a / b), nil
	case "//":
		if b == 0 {
			return nil, raise(nil, "ZeroDivisionError", "float floor division by zero")
		}
		return model.Float(math.Floor(a / b)), nil
	case "%":
		if b == 0 {
			return nil, raise(nil, "ZeroDivisionError", "float modulo")
		}
		m := math.Mod(a, b)
		if m != 0 && ((m < 0) != (b < 0)) {
			m += b
		}
		return model.Float(m), nil
	case "**":
		if a == 0 && b < 0 {
			return nil, raise(nil, "ZeroDivisionError", "0.0 cannot be raised to a negative power")
		}
		if a < 0 && b != math.Trunc(b) {
			return nil, raise(nil, "NotImplementedError", "complex results are not supported")
		}
		return model.Float(math.Pow(a, b)), nil
	}
	return nil, raise(nil, "TypeError", "unsupported operator %s", op)
}

func unop(op string, x model.Value) (model.Value, error) {
	if op == "not" {
		return model.Bool(!model.Truth(x)), nil
	}
	n, ok := numeric(x)
	if !ok {
		return nil, raise(nil, "TypeError", "bad operand type for unary %s: '%s'", op, typeName(x))
	}
	switch op {
	case "+":
		return n, nil
	case "-":
		switch v := n.(type) {
		case model.Int:
			if v == math.MinInt64 {
				return nil, overflow()
			}
			return -v, nil
		case model.Float:
			return -v, nil
		}
	case "~":
		if v, ok := n.(model.Int); ok {
			return ^v, nil
		}
	}
	return nil, raise(nil, "TypeError", "bad operand type for unary %s: '%s'", op, typeName(x))
}

func compare(op string, x, y model.Value) (bool, error) {
	switch op {
	case "==":
		return model.Equal(x, y), nil
	case "!=":
		return !model.Equal(x, y), nil
	case "is":
		return identical(x, y), nil
	case "is not":
		return !identical(x, y), nil
	case "in":
		return contains(y, x)
	case "not in":
		in, err := contains(y, x)
		return !in, err
	}
	c, err := order(op, x, y)
	if err != nil {
		return false, err
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}

// order returns the sign of x - y for orderable pairs.
func order(op string, x, y model.Value) (int, error) {
	if a, ok := model.Number(x); ok {
		if b, ok := model.Number(y); ok {
			switch {
			case a < b:
				return -1, nil
			case a > b:
				return 1, nil
			}
			return 0, nil
		}
	}
	switch a := x.(type) {
	case model.Str:
		if b, ok := y.(model.Str); ok {
			return strings.Compare(string(a), string(b)), nil
		}
	case *model.List:
		if b, ok := y.(*model.List); ok && a.Tuple == b.Tuple {
			for i := 0; i < len(a.Items) && i < len(b.Items); i++ {
				if model.Equal(a.Items[i], b.Items[i]) {
					continue
				}
				return order(op, a.Items[i], b.Items[i])
			}
			return len(a.Items) - len(b.Items), nil
		}
	}
	return 0, raise(nil, "TypeError", "'%s' not supported between instances of '%s' and '%s'", op, typeName(x), typeName(y))
}

func identical(x, y model.Value) bool {
	switch a := x.(type) {
	case *model.List:
		b, ok := y.(*model.List)
		return ok && a == b
	case *model.Dict:
		b, ok := y.(*model.Dict)
		return ok && a == b
	case model.Int:
		b, ok := y.(model.Int)
		return ok && a == b
	case model.Float:
		b, ok := y.(model.Float)
		return ok && a == b
	case model.Bool:
		b, ok := y.(model.Bool)
		return ok && a == b
	}
	return model.Equal(x, y)
}

func contains(container, x model.Value) (bool, error) {
	switch c := container.(type) {
	case *model.List:
		for _, it := range c.Items {
			if model.Equal(it, x) {
				return true, nil
			}
		}
		return false, nil
	case *model.Dict:
		_, ok := c.Get(x)
		return ok, nil
	case model.Str:
		s, ok := x.(model.Str)
		if !ok {
			return false, raise(nil, "TypeError", "'in <string>' requires string as left operand, not %s", typeName(x))
		}
		return strings.Contains(string(c), string(s)), nil
	case model.Opaque:
		if _, ok := c.V.(*stub); ok {
			return false, nil
		}
	}
	return false, raise(nil, "TypeError", "argument of type '%s' is not iterable", typeName(container))
}

// hashable reports whether v may be used as a dict key.
func hashable(v model.Value) error {
	switch x := v.(type) {
	case *model.Dict:
		return raise(nil, "TypeError", "unhashable type: 'dict'")
	case *model.List:
		if !x.Tuple {
			return raise(nil, "TypeError", "unhashable type: 'list'")
		}
		for _, it := range x.Items {
			if err := hashable(it); err != nil {
				return err
			}
		}
	}
	return nil
}

func index(x, idx model.Value) (model.Value, error) {
	switch c := x.(type) {
	case *model.List:
		i, err := seqIndex(c.Kind(), idx, len(c.Items))
		if err != nil {
			return nil, err
		}
		return c.Items[i], nil
	case model.Str:
		rs := []rune(string(c))
		i, err := seqIndex("string", idx, len(rs))
		if err != nil {
			return nil, err
		}
		return model.Str(rs[i]), nil
	case *model.Dict:
		if err := hashable(idx); err != nil {
			return nil, err
		}
		v, ok := c.Get(idx)
		if !ok {
			return nil, raise(nil, "KeyError", "%s", model.Repr(idx))
		}
		return v, nil
	}
	return nil, raise(nil, "TypeError", "'%s' object is not subscriptable", typeName(x))
}

func seqIndex(kind string, idx model.Value, n int) (int, error) {
	nv, ok := numeric(idx)
	i, isInt := nv.(model.Int)
	if !ok || !isInt {
		return 0, raise(nil, "TypeError", "%s indices must be integers, not %s", kind, typeName(idx))
	}
	j := int(i)
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return 0, raise(nil, "IndexError", "%s index out of range", kind)
	}
	return j, nil
}
