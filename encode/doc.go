// Package encode writes [ir.Node] trees as JSON, YAML, TOML or CBOR.
//
// # Usage
//
//	root, _ := marshal.Model(ns)
//	err := encode.JSON(root, os.Stdout, encode.EncodeWire(true))
//
// Every encoder renders the whole document in memory before writing it,
// so w receives nothing when encoding fails. Values a format cannot carry
// fail with an [*EncodeError] naming the node path:
//
//	var ee *encode.EncodeError
//	if errors.As(err, &ee) {
//	    fmt.Println(ee.Path) // $.all_vertices[0].couplings
//	}
//
// # Related Packages
//
//   - github.com/signadot/ufoto/ir - tree representation
//   - github.com/signadot/ufoto/format - format registry dispatching here
package encode
