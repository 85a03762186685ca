package marshal

import "github.com/signadot/ufoto/ir"

// Option configures marshaling.
type Option func(*config)

// Filter decides whether e, the marshaled entity at index i of collection,
// is kept. e is not yet attached to the model tree.
type Filter func(collection string, i int, e *ir.Node) (bool, error)

type config struct {
	joinKeys bool
	filter   Filter
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, o := range opts {
		o(c)
	}
	return c
}

// JoinKeys renders tuple dict keys as their parts joined by commas, so
// {(0,0): 'GC_1'} marshals to {"0,0": "GC_1"}.
func JoinKeys() Option {
	return func(c *config) { c.joinKeys = true }
}

// WithFilter drops the collection entities f rejects. Metadata is never
// filtered.
func WithFilter(f Filter) Option {
	return func(c *config) { c.filter = f }
}
