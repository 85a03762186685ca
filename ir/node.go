package ir

import (
	"strconv"
	"strings"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// FromOpaque returns a node standing for a value that has no data
// representation.
func FromOpaque(desc string) *Node {
	return &Node{
		Type:   OpaqueType,
		String: desc,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// Object returns an empty object node.
func Object() *Node {
	return &Node{Type: ObjectType}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := Object()
	for i := range kvs {
		res.Add(kvs[i].Key, kvs[i].Val)
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// Add appends a field to an object without checking for an existing key.
func (y *Node) Add(key, val *Node) {
	if key == nil {
		key = Null()
	}
	i := len(y.Values)
	field := KeyString(key)
	key.Parent = y
	key.ParentIndex = i
	key.ParentField = field
	val.Parent = y
	val.ParentIndex = i
	val.ParentField = field
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
}

// Set replaces the value of string field key in place, or appends the field
// when it is not present.
func (y *Node) Set(key string, val *Node) {
	for i, f := range y.Fields {
		if f.Type != StringType || f.String != key {
			continue
		}
		val.Parent = y
		val.ParentIndex = i
		val.ParentField = key
		y.Values[i] = val
		return
	}
	y.Add(FromString(key), val)
}

// Append adds a value to an array.
func (y *Node) Append(val *Node) {
	val.Parent = y
	val.ParentIndex = len(y.Values)
	y.Values = append(y.Values, val)
}

func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].Type == StringType && y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Keys returns the string forms of the object's keys in order.
func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = KeyString(f)
	}
	return res
}

// KeyString renders a key node the way it appears in paths.
func KeyString(key *Node) string {
	switch key.Type {
	case StringType:
		return key.String
	case ArrayType:
		parts := make([]string, len(key.Values))
		for i, v := range key.Values {
			parts[i] = KeyString(v)
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return ScalarString(key)
	}
}

// ScalarString formats a leaf the way Python's str() formats the
// corresponding value when it is used as a JSON key.
func ScalarString(y *Node) string {
	switch y.Type {
	case NullType:
		return "null"
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NumberType:
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		if y.Float64 != nil {
			return FormatFloat(*y.Float64)
		}
		return "0"
	case StringType:
		return y.String
	default:
		return "<" + y.Type.String() + ">"
	}
}

// FormatFloat formats f with the shortest representation that keeps a
// decimal point, so 1.0 stays distinguishable from 1.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// ToAny converts the tree to plain Go values. Object keys are rendered
// with KeyString, so key order and key kinds are lost.
func (y *Node) ToAny() any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return int64(0)
	case StringType:
		return y.String
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = v.ToAny()
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Values))
		for i, v := range y.Values {
			res[KeyString(y.Fields[i])] = v.ToAny()
		}
		return res
	default:
		return nil
	}
}
