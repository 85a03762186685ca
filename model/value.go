package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a value bound in a model namespace or held in an entity field.
// The set of implementations is closed: None, Bool, Int, Float, Str, *List,
// *Dict, Ref, Module and Opaque.
type Value interface {
	isValue()
	// Kind names the value's kind the way error messages report it.
	Kind() string
}

// None is the no-value sentinel.
type None struct{}

type Bool bool

type Int int64

type Float float64

type Str string

// List is an ordered sequence. Tuple records whether the source wrote it
// as a tuple; lists and tuples marshal the same way.
type List struct {
	Items []Value
	Tuple bool
}

// Dict is an insertion ordered mapping with arbitrary keys.
type Dict struct {
	Keys []Value
	Vals []Value
}

// Ref is a reference to another entity, as in mass = Param.ZERO.
type Ref struct {
	Entity Entity
}

// Module is a namespace bound as a value, the result of an import.
type Module struct {
	*Namespace
}

// Opaque is a value with no data representation, such as a class, a
// function or a module stub. Type is the Python type name it reports. V
// must be comparable.
type Opaque struct {
	Type string
	V    any
}

func (None) isValue() {}
func (Bool) isValue() {}
func (Int) isValue() {}
func (Float) isValue() {}
func (Str) isValue() {}
func (*List) isValue() {}
func (*Dict) isValue() {}
func (Ref) isValue() {}
func (Module) isValue() {}
func (Opaque) isValue() {}
func (None) Kind() string { return "NoneType" }
func (Bool) Kind() string { return "bool" }
func (Int) Kind() string { return "int" }
func (Float) Kind() string { return "float" }
func (Str) Kind() string { return "str" }
func (l *List) Kind() string {
	if l.Tuple {
		return "tuple"
	}
	return "list"
}
func (*Dict) Kind() string { return "dict" }
func (r Ref) Kind() string { return r.Entity.Class() }
func (Module) Kind() string { return "module" }
func (o Opaque) Kind() string { return o.Type }

func NewList(items ...Value) *List {
	return &List{Items: items}
}

func NewTuple(items ...Value) *List {
	return &List{Items: items, Tuple: true}
}

// Get returns the value stored under a key equal to k.
func (d *Dict) Get(k Value) (Value, bool) {
	for i, key := range d.Keys {
		if Equal(key, k) {
			return d.Vals[i], true
		}
	}
	return nil, false
}

// Set replaces the value under k or appends a new entry.
func (d *Dict) Set(k, v Value) {
	for i, key := range d.Keys {
		if Equal(key, k) {
			d.Vals[i] = v
			return
		}
	}
	d.Keys = append(d.Keys, k)
	d.Vals = append(d.Vals, v)
}

func (d *Dict) Len() int {
	return len(d.Keys)
}

// Equal reports whether a and b are equal under Python semantics for the
// kinds a model can hold: numbers compare by value across int and float,
// containers compare elementwise and references compare by identity.
func Equal(a, b Value) bool {
	if fa, ok := Number(a); ok {
		fb, ok := Number(b)
		return ok && fa == fb
	}
	switch x := a.(type) {
	case None:
		_, ok := b.(None)
		return ok
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Dict:
		y, ok := b.(*Dict)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, k := range x.Keys {
			v, ok := y.Get(k)
			if !ok || !Equal(x.Vals[i], v) {
				return false
			}
		}
		return true
	case Ref:
		y, ok := b.(Ref)
		return ok && x.Entity == y.Entity
	case Module:
		y, ok := b.(Module)
		return ok && x.Namespace == y.Namespace
	case Opaque:
		y, ok := b.(Opaque)
		return ok && x.V == y.V
	}
	return false
}

// Number returns v as a float64 when v is a Bool, Int or Float.
func Number(v Value) (float64, bool) {
	switch x := v.(type) {
	case Bool:
		if x {
			return 1, true
		}
		return 0, true
	case Int:
		return float64(x), true
	case Float:
		return float64(x), true
	}
	return 0, false
}

// Truth is Python truthiness.
func Truth(v Value) bool {
	switch x := v.(type) {
	case None:
		return false
	case Bool:
		return bool(x)
	case Int:
		return x != 0
	case Float:
		return x != 0
	case Str:
		return x != ""
	case *List:
		return len(x.Items) != 0
	case *Dict:
		return x.Len() != 0
	}
	return true
}

// String renders v the way Python's str() does for the kinds a model holds.
func String(v Value) string {
	switch x := v.(type) {
	case None:
		return "None"
	case Bool:
		if x {
			return "True"
		}
		return "False"
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Float:
		s := strconv.FormatFloat(float64(x), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case Str:
		return string(x)
	case Ref:
		return x.Entity.String()
	case Module:
		return "<module '" + x.Name + "'>"
	case Opaque:
		if s, ok := x.V.(fmt.Stringer); ok {
			return "<" + x.Type + " " + s.String() + ">"
		}
		return "<" + x.Type + ">"
	case *List:
		parts := make([]string, len(x.Items))
		for i, it := range x.Items {
			parts[i] = repr(it)
		}
		if x.Tuple {
			if len(parts) == 1 {
				return "(" + parts[0] + ",)"
			}
			return "(" + strings.Join(parts, ", ") + ")"
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Dict:
		parts := make([]string, len(x.Keys))
		for i := range x.Keys {
			parts[i] = repr(x.Keys[i]) + ": " + repr(x.Vals[i])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "<?>"
}

// Repr renders v the way Python's repr() does: strings are quoted and
// entity references use the entity's repr.
func Repr(v Value) string {
	return repr(v)
}

func repr(v Value) string {
	switch x := v.(type) {
	case Str:
		return "'" + strings.ReplaceAll(string(x), "'", "\\'") + "'"
	case Ref:
		return x.Entity.Repr()
	}
	return String(v)
}
