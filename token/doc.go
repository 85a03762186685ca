// Package token tokenizes the declarative Python subset that UFO model
// generators emit.
//
// [Tokenize] produces a flat token sequence with explicit TNewline,
// TIndent and TDedent tokens, so the parser never looks at whitespace.
// Newlines inside brackets and after a trailing backslash are joined, as
// Python does.
package token
