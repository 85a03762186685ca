package encode

type EncodeOption func(*EncState)

// EncState holds the settings of one encoding.
type EncState struct {
	wire   bool
	indent int
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// EncodeWire selects the compact form where a format has one.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// Indent sets the indentation width of JSON and YAML output.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
