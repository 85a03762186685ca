package token

import (
	"fmt"
	"strconv"
	"strings"
)

// number scans a numeric literal at the start of d and returns its length
// and whether it is a float.
func number(d []byte) (int, bool, error) {
	i := 0
	if len(d) > 1 && d[0] == '0' {
		var ok func(byte) bool
		switch d[1] {
		case 'x', 'X':
			ok = isHexDigit
		case 'o', 'O':
			ok = func(c byte) bool { return c >= '0' && c <= '7' }
		case 'b', 'B':
			ok = func(c byte) bool { return c == '0' || c == '1' }
		}
		if ok != nil {
			i = 2
			n := digits(d[i:], ok)
			if n == 0 {
				return 0, false, fmt.Errorf("%w: %q has no digits", ErrNumber, d[:i])
			}
			return i + n, false, nil
		}
	}
	isFloat := false
	i += digits(d[i:], isDigit)
	if i < len(d) && d[i] == '.' {
		isFloat = true
		i++
		i += digits(d[i:], isDigit)
	}
	if i < len(d) && (d[i] == 'e' || d[i] == 'E') {
		j := i + 1
		if j < len(d) && (d[j] == '+' || d[j] == '-') {
			j++
		}
		n := digits(d[j:], isDigit)
		if n == 0 {
			return 0, false, fmt.Errorf("%w: missing exponent", ErrNumber)
		}
		isFloat = true
		i = j + n
	}
	if i > 0 && d[i-1] == '_' {
		return 0, false, fmt.Errorf("%w: trailing underscore", ErrNumber)
	}
	return i, isFloat, nil
}

// digits counts leading digits accepted by ok, allowing single
// underscores between them.
func digits(d []byte, ok func(byte) bool) int {
	i := 0
	for i < len(d) {
		switch {
		case ok(d[i]):
			i++
		case d[i] == '_' && i > 0 && i+1 < len(d) && ok(d[i+1]):
			i++
		default:
			return i
		}
	}
	return i
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ParseInt converts the text of a TInt token.
func ParseInt(b []byte) (int64, error) {
	s := strings.ReplaceAll(string(b), "_", "")
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			return strconv.ParseInt(s, 0, 64)
		}
		if strings.Trim(s, "0") != "" {
			return 0, fmt.Errorf("%w: leading zeros in %q", ErrNumber, b)
		}
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// ParseFloat converts the text of a TFloat token.
func ParseFloat(b []byte) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(string(b), "_", ""), 64)
}
