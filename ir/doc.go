// Package ir provides the ordered tree that marshaled models are built as.
//
// # Overview
//
// A model is flattened into a tree of [Node] values before anything is
// written. The tree is encoder agnostic: every output format walks the same
// tree and decides for itself what it can represent.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: the no-value sentinel
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64 or float64)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: ordered key-value pairs (fields and values)
//
// # Objects
//
// Objects keep fields in insertion order. Fields[i] is the key of Values[i].
// Keys are usually strings but may be numbers or arrays, which is how
// dictionaries keyed by integers or tuples in a model survive until an
// encoder that cannot represent them reports an error.
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("name"), Val: ir.FromString("QCD")},
//	    {Key: ir.FromString("hierarchy"), Val: ir.FromInt(1)},
//	})
//	obj.Set("hierarchy", ir.FromInt(2))
//
// Each node records its parent, which gives every node a path such as
// $.all_vertices[3].couplings used in error messages.
package ir
