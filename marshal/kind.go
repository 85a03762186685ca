package marshal

// Kind selects the marshal function of a collection.
type Kind int

const (
	DefaultKind Kind = iota
	ParticleKind
	OrderKind
	FunctionKind
)

var kindFuncs = map[Kind]Func{
	DefaultKind:  Default,
	ParticleKind: Particle,
	OrderKind:    Order,
	FunctionKind: Function,
}

// Func returns the marshal function of k.
func (k Kind) Func() Func {
	if fn, ok := kindFuncs[k]; ok {
		return fn
	}
	return Default
}

func (k Kind) String() string {
	switch k {
	case ParticleKind:
		return "particle"
	case OrderKind:
		return "order"
	case FunctionKind:
		return "function"
	default:
		return "default"
	}
}

// Collection is one named collection a model may bind.
type Collection struct {
	Key  string
	Kind Kind
}

// Collections lists the collections in the order they are marshaled.
var Collections = []Collection{
	{"all_particles", ParticleKind},
	{"all_vertices", DefaultKind},
	{"all_couplings", DefaultKind},
	{"all_lorentz", DefaultKind},
	{"all_parameters", DefaultKind},
	{"all_orders", OrderKind},
	{"all_functions", FunctionKind},
	{"all_propagators", DefaultKind},
	{"all_decays", DefaultKind},
	{"all_form_factors", DefaultKind},
	{"all_CTvertices", DefaultKind},
	{"all_CTparameters", DefaultKind},
}

// MetadataField is a model attribute marshaled under Key, or as Default
// when the model does not bind it.
type MetadataField struct {
	Key     string
	Attr    string
	Default string
}

var Metadata = []MetadataField{
	{"author", "__author__", ""},
	{"date", "__date__", ""},
	{"version", "__version__", ""},
}
