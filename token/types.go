package token

import "fmt"

type TokenType int

const (
	TName TokenType = iota
	TInt
	TFloat
	TString
	TOp
	TNewline
	TIndent
	TDedent
	TEOF
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TName:    "TName",
		TInt:     "TInt",
		TFloat:   "TFloat",
		TString:  "TString",
		TOp:      "TOp",
		TNewline: "TNewline",
		TIndent:  "TIndent",
		TDedent:  "TDedent",
		TEOF:     "TEOF",
	}[t]
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %q %s", t.Type, t.Bytes, t.Pos.String())
}

// Is reports whether t is the operator or name v.
func (t *Token) Is(v string) bool {
	return (t.Type == TOp || t.Type == TName) && string(t.Bytes) == v
}

func (t *Token) String() string {
	return string(t.Bytes)
}
