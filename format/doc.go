// Package format is the registry of output formats.
//
// A [Format] carries its open mode, its file suffixes and its encoder:
//
//	f := format.ForFile("sm.yml") // YAMLFormat
//	w, _ := f.Writer()
//	err := w(root, out)
//
// Unrecognised suffixes are not an error; they select JSON.
package format
