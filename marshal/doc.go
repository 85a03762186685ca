// Package marshal flattens a loaded model into an [ir.Node] tree.
//
// Each collection of a model is routed through the marshal function of its
// kind. Generic entities keep every public field that is set, in field
// order. Particles additionally get their display name, slug and line type.
// Coupling orders and functions are shaped from a fixed set of attributes.
//
//	root, err := marshal.Model(ns, marshal.JoinKeys())
//
// Values are mapped structurally only; a value no wire format can carry
// becomes an [ir.OpaqueType] node which encoders reject with its path.
package marshal
