package ir

import (
	"strconv"
	"strings"
)

// Path returns the location of y in its tree, e.g. $.all_vertices[3].couplings.
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		prefix := y.Parent.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[]() ,") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.Replace(f, "'", "\\'", -1) + "'"
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// KeyPath returns the path of the object field whose key is key.
func KeyPath(key *Node) string {
	if key.Parent == nil {
		return "$"
	}
	return key.Parent.Values[key.ParentIndex].Path()
}
