package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unquote decodes the text of a TString token, honouring r, u and b
// prefixes and triple quoting.
func Unquote(b []byte) (string, error) {
	raw := false
	i := 0
	for i < len(b) && b[i] != '"' && b[i] != '\'' {
		switch b[i] {
		case 'r', 'R':
			raw = true
		}
		i++
	}
	body := b[i:]
	q := 1
	if len(body) >= 6 && body[1] == body[0] && body[2] == body[0] {
		q = 3
	}
	if len(body) < 2*q {
		return "", fmt.Errorf("%w string", ErrUnterminated)
	}
	body = body[q : len(body)-q]
	if raw {
		return string(body), nil
	}
	var sb strings.Builder
	for j := 0; j < len(body); j++ {
		c := body[j]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		j++
		if j >= len(body) {
			return "", fmt.Errorf("%w: trailing backslash", ErrBadEscape)
		}
		switch e := body[j]; e {
		case '\n':
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			k := j
			for k < len(body) && k < j+3 && body[k] >= '0' && body[k] <= '7' {
				k++
			}
			n, _ := strconv.ParseUint(string(body[j:k]), 8, 32)
			sb.WriteRune(rune(n))
			j = k - 1
		case 'x', 'u', 'U':
			w := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if j+w >= len(body) {
				return "", fmt.Errorf("%w: short \\%c", ErrBadEscape, e)
			}
			n, err := strconv.ParseUint(string(body[j+1:j+1+w]), 16, 32)
			if err != nil || !utf8.ValidRune(rune(n)) {
				return "", fmt.Errorf("%w: \\%c%s", ErrBadEscape, e, body[j+1:j+1+w])
			}
			sb.WriteRune(rune(n))
			j += w
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String(), nil
}
