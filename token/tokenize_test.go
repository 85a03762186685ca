package token

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(toks []Token) []string {
	res := make([]string, len(toks))
	for i := range toks {
		switch toks[i].Type {
		case TNewline, TIndent, TDedent, TEOF:
			res[i] = toks[i].Type.String()
		default:
			res[i] = string(toks[i].Bytes)
		}
	}
	return res
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "assign",
			in:   "x = 1\n",
			want: []string{"x", "=", "1", "TNewline", "TEOF"},
		},
		{
			name: "no trailing newline",
			in:   "G = a.b",
			want: []string{"G", "=", "a", ".", "b", "TNewline", "TEOF"},
		},
		{
			name: "brackets join lines",
			in:   "P = Particle(pdg_code = 21,\n    name = 'g',\n)\n",
			want: []string{"P", "=", "Particle", "(", "pdg_code", "=", "21", ",", "name", "=", "'g'", ",", ")", "TNewline", "TEOF"},
		},
		{
			name: "indent and dedent",
			in:   "try:\n  import a\nexcept ImportError:\n  pass\n",
			want: []string{
				"try", ":", "TNewline", "TIndent", "import", "a", "TNewline", "TDedent",
				"except", "ImportError", ":", "TNewline", "TIndent", "pass", "TNewline", "TDedent", "TEOF",
			},
		},
		{
			name: "comments and blank lines",
			in:   "# header\n\nx = 1 # trailing\n   # indented comment\ny = 2\n",
			want: []string{"x", "=", "1", "TNewline", "y", "=", "2", "TNewline", "TEOF"},
		},
		{
			name: "continuation",
			in:   "x = 1 + \\\n  2\n",
			want: []string{"x", "=", "1", "+", "2", "TNewline", "TEOF"},
		},
		{
			name: "operators",
			in:   "a**-2//b",
			want: []string{"a", "**", "-", "2", "//", "b", "TNewline", "TEOF"},
		},
		{
			name: "prefixed strings",
			in:   `__author__ = r"a\b" u'x'`,
			want: []string{"__author__", "=", `r"a\b"`, `u'x'`, "TNewline", "TEOF"},
		},
		{
			name: "triple quoted",
			in:   "__doc__ = '''a\nb'''\n",
			want: []string{"__doc__", "=", "'''a\nb'''", "TNewline", "TEOF"},
		},
		{
			name: "bom and crlf",
			in:   "\xef\xbb\xbfx = 1\r\ny = 2\r\n",
			want: []string{"x", "=", "1", "TNewline", "y", "=", "2", "TNewline", "TEOF"},
		},
		{
			name: "numbers",
			in:   "1.5e-3 .5 0x1F 1_000",
			want: []string{"1.5e-3", ".5", "0x1F", "1_000", "TNewline", "TEOF"},
		},
		{
			name: "empty",
			in:   "",
			want: []string{"TEOF"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize("t.py", []byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, kinds(toks)); diff != "" {
				t.Errorf("tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenTypes(t *testing.T) {
	toks, err := Tokenize("", []byte("a 1 1.0 'x'"))
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenType{TName, TInt, TFloat, TString, TNewline, TEOF}
	got := make([]TokenType, len(toks))
	for i := range toks {
		got[i] = toks[i].Type
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
		pos  string
	}{
		{name: "unterminated", in: "x = 'abc\n", want: ErrUnterminated, pos: "t.py:1:5"},
		{name: "unclosed", in: "x = (1,\n2\n", want: ErrBalance, pos: "t.py:1:5"},
		{name: "mismatched", in: "x = (1]", want: ErrBalance, pos: "t.py:1:7"},
		{name: "dedent", in: "if a:\n    x\n  y\n", want: ErrBadIndent, pos: "t.py:3:3"},
		{name: "complex", in: "x = 1j", want: ErrUnsupported, pos: "t.py:1:5"},
		{name: "bad char", in: "x = $", want: ErrUnexpected, pos: "t.py:1:5"},
		{name: "bad number", in: "\n\nx = 1e", want: ErrNumber, pos: "t.py:3:5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize("t.py", []byte(tt.in))
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			var te *TokenizeErr
			if !errors.As(err, &te) {
				t.Fatalf("not a TokenizeErr: %v", err)
			}
			if got := te.Pos.String(); got != tt.pos {
				t.Errorf("pos %s, want %s", got, tt.pos)
			}
		})
	}
	if _, err := Tokenize("t.py", []byte("\xff")); !errors.Is(err, ErrBadUTF8) {
		t.Errorf("got %v", err)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"abc"`, "abc"},
		{`'\'"'`, `'"`},
		{`"\t\n"`, "\t\n"},
		{`'\u221e'`, "∞"},
		{`'\x41\101'`, "AA"},
		{`r'\u221e'`, `\u221e`},
		{`'''a'b'''`, "a'b"},
		{`""`, ""},
		{`'\d'`, `\d`},
		{"'a\\\nb'", "ab"},
	}
	for _, tt := range tests {
		got, err := Unquote([]byte(tt.in))
		if err != nil {
			t.Errorf("Unquote(%s): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Unquote(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := Unquote([]byte(`'\x4'`)); !errors.Is(err, ErrBadEscape) {
		t.Errorf("short hex escape: %v", err)
	}
}

func TestParseNumbers(t *testing.T) {
	for in, want := range map[string]int64{"0": 0, "00": 0, "42": 42, "0x1F": 31, "0o17": 15, "0b101": 5, "1_000": 1000} {
		got, err := ParseInt([]byte(in))
		if err != nil || got != want {
			t.Errorf("ParseInt(%s) = %d, %v", in, got, err)
		}
	}
	if _, err := ParseInt([]byte("017")); err == nil {
		t.Errorf("leading zeros accepted")
	}
	f, err := ParseFloat([]byte("1_0.5e1"))
	if err != nil || f != 105 {
		t.Errorf("ParseFloat = %v, %v", f, err)
	}
}

func TestPosAfterStrings(t *testing.T) {
	src := "a = '''x\ny'''\nb = (\n1)\nc"
	toks, err := Tokenize("m.py", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for i := range toks {
		if toks[i].Type == TName {
			got = append(got, toks[i].String()+"@"+toks[i].Pos.String())
		}
	}
	want := []string{"a@m.py:1:1", "b@m.py:3:1", "c@m.py:5:1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
	if !strings.Contains(toks[0].Info(), "TName") {
		t.Errorf("Info: %s", toks[0].Info())
	}
}
