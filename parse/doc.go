// Package parse parses the declarative subset of Python that UFO model
// generators emit into a small statement and expression tree.
//
// Supported statements are imports, assignments (including chained and
// augmented ones), expression statements, pass, if/elif/else and
// try/except/else/finally. Expressions cover literals, names, attribute
// access, calls with keyword arguments, subscripts, list, tuple and dict
// displays, arithmetic, comparisons and boolean operators.
package parse
