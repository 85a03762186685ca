package encode

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strings"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/ir"
)

const jsonName = "json"

// JSON writes node as JSON keeping object order. Non-string scalar keys
// are written the way Python's json module writes them: 1, 0.5, true and
// null become "1", "0.5", "true" and "null".
func JSON(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	buf := &bytes.Buffer{}
	if err := es.json(buf, node, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	if debug.Encode() {
		debug.Logf("encode: json %d bytes\n", buf.Len())
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (es *EncState) newline(buf *bytes.Buffer, depth int) {
	if es.wire {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", depth*es.indent))
}

func (es *EncState) json(buf *bytes.Buffer, n *ir.Node, depth int) error {
	switch n.Type {
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			es.newline(buf, depth+1)
			ks, err := jsonKey(n, k)
			if err != nil {
				return err
			}
			writeJSONString(buf, ks)
			buf.WriteByte(':')
			if !es.wire {
				buf.WriteByte(' ')
			}
			if err := es.json(buf, n.Values[i], depth+1); err != nil {
				return err
			}
		}
		es.newline(buf, depth)
		buf.WriteByte('}')
	case ir.ArrayType:
		if len(n.Values) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			es.newline(buf, depth+1)
			if err := es.json(buf, v, depth+1); err != nil {
				return err
			}
		}
		es.newline(buf, depth)
		buf.WriteByte(']')
	case ir.StringType:
		writeJSONString(buf, n.String)
	case ir.NumberType:
		if n.Float64 != nil && (math.IsNaN(*n.Float64) || math.IsInf(*n.Float64, 0)) {
			return unsupported(jsonName, n, "number %s", ir.ScalarString(n))
		}
		buf.WriteString(ir.ScalarString(n))
	case ir.BoolType, ir.NullType:
		buf.WriteString(ir.ScalarString(n))
	default:
		return opaque(jsonName, n)
	}
	return nil
}

func jsonKey(obj, k *ir.Node) (string, error) {
	switch k.Type {
	case ir.StringType:
		return k.String, nil
	case ir.NumberType, ir.BoolType, ir.NullType:
		return ir.ScalarString(k), nil
	case ir.ArrayType:
		return "", tupleKey(jsonName, obj, k)
	}
	return "", opaque(jsonName, k)
}

func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// strings always encode
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}
