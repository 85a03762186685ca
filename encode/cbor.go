package encode

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/ir"
)

const cborName = "cbor"

var cborMode cbor.EncMode

func init() {
	m, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborMode = m
}

// CBOR writes node as a definite length CBOR item. Maps keep object order
// and keys of any kind, tuple keys included, are encoded natively.
func CBOR(node *ir.Node, w io.Writer, _ ...EncodeOption) error {
	v, err := toCBOR(node)
	if err != nil {
		return err
	}
	d, err := cborMode.Marshal(v)
	if err != nil {
		return err
	}
	if debug.Encode() {
		debug.Logf("encode: cbor %d bytes\n", len(d))
	}
	_, err = w.Write(d)
	return err
}

// cborMap is a map encoded in insertion order.
type cborMap struct {
	keys []any
	vals []any
}

const cborMapMajor = 5 << 5

func (m cborMap) MarshalCBOR() ([]byte, error) {
	buf := &bytes.Buffer{}
	n := uint64(len(m.keys))
	switch {
	case n < 24:
		buf.WriteByte(cborMapMajor | byte(n))
	case n <= 0xff:
		buf.WriteByte(cborMapMajor | 24)
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(cborMapMajor | 25)
		buf.Write(binary.BigEndian.AppendUint16(nil, uint16(n)))
	case n <= 0xffffffff:
		buf.WriteByte(cborMapMajor | 26)
		buf.Write(binary.BigEndian.AppendUint32(nil, uint32(n)))
	default:
		buf.WriteByte(cborMapMajor | 27)
		buf.Write(binary.BigEndian.AppendUint64(nil, n))
	}
	for i := range m.keys {
		for _, x := range []any{m.keys[i], m.vals[i]} {
			d, err := cborMode.Marshal(x)
			if err != nil {
				return nil, err
			}
			buf.Write(d)
		}
	}
	return buf.Bytes(), nil
}

func toCBOR(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.ObjectType:
		m := cborMap{keys: make([]any, len(n.Fields)), vals: make([]any, len(n.Fields))}
		for i, k := range n.Fields {
			kv, err := toCBOR(k)
			if err != nil {
				return nil, err
			}
			v, err := toCBOR(n.Values[i])
			if err != nil {
				return nil, err
			}
			m.keys[i], m.vals[i] = kv, v
		}
		return m, nil
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			x, err := toCBOR(v)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	}
	v, ok := leaf(n)
	if !ok {
		return nil, opaque(cborName, n)
	}
	return v, nil
}
