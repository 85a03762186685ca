package model

import (
	"errors"
	"fmt"
)

var ErrNotCollection = errors.New("not a collection of entities")

// Model is the capability the marshaler needs from a loaded model: named
// attribute lookup, where absence is distinct from a None value.
type Model interface {
	Attr(name string) (Value, bool)
}

// Namespace is an ordered set of name bindings, the contents of one
// evaluated module. The namespace of a model package's __init__ is the
// model.
type Namespace struct {
	Name  string
	Path  string
	names []string
	vals  map[string]Value
}

func NewNamespace(name string) *Namespace {
	return &Namespace{Name: name, vals: map[string]Value{}}
}

func (ns *Namespace) Attr(name string) (Value, bool) {
	v, ok := ns.vals[name]
	return v, ok
}

func (ns *Namespace) Bind(name string, v Value) {
	if _, ok := ns.vals[name]; !ok {
		ns.names = append(ns.names, name)
	}
	ns.vals[name] = v
}

// Names returns the bound names in binding order.
func (ns *Namespace) Names() []string {
	res := make([]string, len(ns.names))
	copy(res, ns.names)
	return res
}

// Entities unwraps a collection value: a list or tuple whose items all
// reference entities.
func Entities(v Value) ([]Entity, error) {
	l, ok := v.(*List)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotCollection, v.Kind())
	}
	res := make([]Entity, len(l.Items))
	for i, it := range l.Items {
		ref, ok := it.(Ref)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is %s", ErrNotCollection, i, it.Kind())
		}
		res[i] = ref.Entity
	}
	return res, nil
}
