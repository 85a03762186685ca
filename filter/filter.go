// Package filter selects marshaled entities with an expr-lang predicate.
//
// The predicate sees every field of the entity as a variable, along with
//
//	collection  the collection key, e.g. "all_particles"
//	entity      the whole entity as a map
//	has(name)   whether the entity has the field
//
// so `collection != "all_particles" || spin == 2` keeps only the fermions
// among the particles. Fields an entity lacks evaluate to nil.
package filter

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/ir"
)

var ErrFilter = errors.New("filter error")

type Filter struct {
	src string
	prg *vm.Program
}

func Compile(src string) (*Filter, error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilter, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func (f *Filter) String() string {
	return f.src
}

// Keep reports whether e, the entity at index i of collection, satisfies
// the predicate.
func (f *Filter) Keep(collection string, i int, e *ir.Node) (bool, error) {
	res, err := expr.Run(f.prg, env(collection, e))
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrFilter, where(collection, i, e), err)
	}
	keep, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s: result is %T, not bool", ErrFilter, where(collection, i, e), res)
	}
	if debug.Marshal() && !keep {
		debug.Logf("filter: dropped %s\n", where(collection, i, e))
	}
	return keep, nil
}

// where names an entity for messages, e.g. all_particles[3] (e-).
func where(collection string, i int, e *ir.Node) string {
	res := fmt.Sprintf("%s[%d]", collection, i)
	if n := ir.Get(e, "name"); n != nil && n.Type == ir.StringType {
		res += " (" + n.String + ")"
	}
	return res
}

func env(collection string, e *ir.Node) map[string]any {
	fields, _ := e.ToAny().(map[string]any)
	res := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		res[k] = v
	}
	res["collection"] = collection
	res["entity"] = fields
	res["has"] = func(name string) bool {
		_, ok := fields[name]
		return ok
	}
	return res
}
