package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var ErrParse = errors.New("parse error")

// ParseJSON decodes a JSON document into a tree, keeping object key order.
func ParseJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := parseJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrParse)
	}
	return res, nil
}

func parseJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch x := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case json.Number:
		return numberNode(x)
	case json.Delim:
		switch x {
		case '{':
			res := Object()
			for dec.More() {
				kTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrParse, err)
				}
				key, ok := kTok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: object key %v", ErrParse, kTok)
				}
				val, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				res.Add(FromString(key), val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
			return res, nil
		case '[':
			vals := []*Node{}
			for dec.More() {
				val, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				vals = append(vals, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
			return FromSlice(vals), nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
}

func numberNode(n json.Number) (*Node, error) {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return FromInt(i), nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: number %s: %w", ErrParse, n, err)
	}
	return FromFloat(f), nil
}
