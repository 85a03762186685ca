package token

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

var ops3 = []string{"**=", "//=", "...", ">>=", "<<="}

var ops2 = []string{
	"**", "//", "==", "!=", "<=", ">=", "->", "+=", "-=", "*=", "/=", "%=",
	"<<", ">>", "&=", "|=", "^=", "@=", ":=",
}

const ops1 = "()[]{},:.;=+-*/%<>@~&|^"

type tokenizer struct {
	d      []byte
	i      int
	posDoc *PosDoc
	toks   []Token

	depth       int
	opens       []Token
	indents     []int
	atLineStart bool
	lineHasToks bool
}

// Tokenize splits d into tokens. name is used in positions.
func Tokenize(name string, d []byte) ([]Token, error) {
	if !utf8.Valid(d) {
		return nil, ErrBadUTF8
	}
	d = bytes.TrimPrefix(d, []byte("\xef\xbb\xbf"))
	tz := &tokenizer{
		d:           d,
		posDoc:      NewPosDoc(name, d),
		indents:     []int{0},
		atLineStart: true,
	}
	if err := tz.run(); err != nil {
		return nil, err
	}
	return tz.toks, nil
}

func (tz *tokenizer) emit(tt TokenType, start, end int) {
	tz.toks = append(tz.toks, Token{
		Type:  tt,
		Pos:   tz.posDoc.Pos(start),
		Bytes: tz.d[start:end],
	})
	if tt != TNewline && tt != TIndent && tt != TDedent {
		tz.lineHasToks = true
	}
}

func (tz *tokenizer) run() error {
	for tz.i < len(tz.d) {
		if tz.atLineStart && tz.depth == 0 {
			if err := tz.indentation(); err != nil {
				return err
			}
			if tz.i >= len(tz.d) {
				break
			}
		}
		c := tz.d[tz.i]
		switch {
		case c == '\n':
			tz.posDoc.nl(tz.i)
			if tz.depth == 0 && tz.lineHasToks {
				tz.emit(TNewline, tz.i, tz.i+1)
				tz.lineHasToks = false
			}
			tz.i++
			tz.atLineStart = tz.depth == 0
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			tz.i++
		case c == '#':
			tz.skipComment()
		case c == '\\':
			if err := tz.continuation(); err != nil {
				return err
			}
		case c == '"' || c == '\'':
			if err := tz.str(tz.i, tz.i); err != nil {
				return err
			}
		case isNameStart(c):
			start := tz.i
			for tz.i < len(tz.d) && isNameChar(tz.d[tz.i]) {
				tz.i++
			}
			if tz.i < len(tz.d) && (tz.d[tz.i] == '"' || tz.d[tz.i] == '\'') && isStringPrefix(tz.d[start:tz.i]) {
				if err := tz.str(start, tz.i); err != nil {
					return err
				}
				continue
			}
			tz.emit(TName, start, tz.i)
		case isDigit(c) || (c == '.' && tz.i+1 < len(tz.d) && isDigit(tz.d[tz.i+1])):
			if err := tz.number(); err != nil {
				return err
			}
		case c >= utf8.RuneSelf:
			r, _ := utf8.DecodeRune(tz.d[tz.i:])
			return NewTokenizeErr(fmt.Errorf("%w %q", ErrUnexpected, r), tz.posDoc.Pos(tz.i))
		default:
			if err := tz.op(); err != nil {
				return err
			}
		}
	}
	if tz.depth != 0 {
		open := tz.opens[len(tz.opens)-1]
		return NewTokenizeErr(fmt.Errorf("%w: unclosed %q", ErrBalance, open.Bytes), open.Pos)
	}
	end := len(tz.d)
	if tz.lineHasToks {
		tz.emit(TNewline, end, end)
		tz.lineHasToks = false
	}
	for len(tz.indents) > 1 {
		tz.indents = tz.indents[:len(tz.indents)-1]
		tz.emit(TDedent, end, end)
	}
	tz.emit(TEOF, end, end)
	return nil
}

// indentation measures leading whitespace of a logical line and emits
// TIndent/TDedent. Blank and comment only lines are skipped entirely.
func (tz *tokenizer) indentation() error {
	for {
		col := 0
		j := tz.i
		for j < len(tz.d) {
			switch tz.d[j] {
			case ' ':
				col++
			case '\t':
				col = (col/8 + 1) * 8
			case '\f', '\r':
			default:
				goto measured
			}
			j++
		}
	measured:
		if j >= len(tz.d) {
			tz.i = j
			return nil
		}
		switch tz.d[j] {
		case '\n':
			tz.posDoc.nl(j)
			tz.i = j + 1
			continue
		case '#':
			tz.i = j
			tz.skipComment()
			if tz.i < len(tz.d) {
				tz.posDoc.nl(tz.i)
				tz.i++
			}
			continue
		}
		tz.i = j
		tz.atLineStart = false
		top := tz.indents[len(tz.indents)-1]
		switch {
		case col > top:
			tz.indents = append(tz.indents, col)
			tz.emit(TIndent, j, j)
		case col < top:
			for col < tz.indents[len(tz.indents)-1] {
				tz.indents = tz.indents[:len(tz.indents)-1]
				tz.emit(TDedent, j, j)
			}
			if col != tz.indents[len(tz.indents)-1] {
				return NewTokenizeErr(ErrBadIndent, tz.posDoc.Pos(j))
			}
		}
		return nil
	}
}

func (tz *tokenizer) skipComment() {
	for tz.i < len(tz.d) && tz.d[tz.i] != '\n' {
		tz.i++
	}
}

func (tz *tokenizer) continuation() error {
	j := tz.i + 1
	if j < len(tz.d) && tz.d[j] == '\r' {
		j++
	}
	if j >= len(tz.d) || tz.d[j] != '\n' {
		return NewTokenizeErr(fmt.Errorf("%w '\\'", ErrUnexpected), tz.posDoc.Pos(tz.i))
	}
	tz.posDoc.nl(j)
	tz.i = j + 1
	return nil
}

func (tz *tokenizer) op() error {
	start := tz.i
	rest := tz.d[tz.i:]
	for _, set := range [][]string{ops3, ops2} {
		for _, op := range set {
			if bytes.HasPrefix(rest, []byte(op)) {
				tz.i += len(op)
				tz.emit(TOp, start, tz.i)
				return nil
			}
		}
	}
	c := tz.d[tz.i]
	if bytes.IndexByte([]byte(ops1), c) == -1 {
		return NewTokenizeErr(fmt.Errorf("%w %q", ErrUnexpected, c), tz.posDoc.Pos(tz.i))
	}
	tz.i++
	tz.emit(TOp, start, tz.i)
	switch c {
	case '(', '[', '{':
		tz.depth++
		tz.opens = append(tz.opens, tz.toks[len(tz.toks)-1])
	case ')', ']', '}':
		if tz.depth == 0 {
			return NewTokenizeErr(fmt.Errorf("%w: unexpected %q", ErrBalance, c), tz.posDoc.Pos(start))
		}
		open := tz.opens[len(tz.opens)-1]
		if closer(open.Bytes[0]) != c {
			return NewTokenizeErr(fmt.Errorf("%w: %q closed by %q", ErrBalance, open.Bytes, c), tz.posDoc.Pos(start))
		}
		tz.depth--
		tz.opens = tz.opens[:len(tz.opens)-1]
	}
	return nil
}

func closer(c byte) byte {
	switch c {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

// str scans a string literal whose prefix starts at start and whose
// opening quote is at q.
func (tz *tokenizer) str(start, q int) error {
	quote := tz.d[q]
	triple := q+2 < len(tz.d) && tz.d[q+1] == quote && tz.d[q+2] == quote
	j := q + 1
	if triple {
		j = q + 3
	}
	for j < len(tz.d) {
		c := tz.d[j]
		switch {
		case c == '\\':
			if j+1 < len(tz.d) && tz.d[j+1] == '\n' {
				tz.posDoc.nl(j + 1)
			}
			j += 2
			continue
		case c == '\n':
			if !triple {
				return NewTokenizeErr(fmt.Errorf("%w string", ErrUnterminated), tz.posDoc.Pos(start))
			}
			tz.posDoc.nl(j)
		case c == quote:
			if !triple {
				tz.i = j + 1
				tz.emit(TString, start, tz.i)
				return nil
			}
			if j+2 < len(tz.d) && tz.d[j+1] == quote && tz.d[j+2] == quote {
				tz.i = j + 3
				tz.emit(TString, start, tz.i)
				return nil
			}
		}
		j++
	}
	return NewTokenizeErr(fmt.Errorf("%w string", ErrUnterminated), tz.posDoc.Pos(start))
}

func (tz *tokenizer) number() error {
	start := tz.i
	n, isFloat, err := number(tz.d[tz.i:])
	if err != nil {
		return NewTokenizeErr(err, tz.posDoc.Pos(start))
	}
	tz.i += n
	if tz.i < len(tz.d) && (tz.d[tz.i] == 'j' || tz.d[tz.i] == 'J') {
		return NewTokenizeErr(fmt.Errorf("%w: imaginary literal", ErrUnsupported), tz.posDoc.Pos(start))
	}
	if tz.i < len(tz.d) && isNameChar(tz.d[tz.i]) {
		return NewTokenizeErr(fmt.Errorf("%w: invalid literal", ErrNumber), tz.posDoc.Pos(start))
	}
	if isFloat {
		tz.emit(TFloat, start, tz.i)
	} else {
		tz.emit(TInt, start, tz.i)
	}
	return nil
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isStringPrefix(p []byte) bool {
	switch string(bytes.ToLower(p)) {
	case "r", "u", "b", "br", "rb":
		return true
	}
	return false
}
