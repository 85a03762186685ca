package parse

import (
	"fmt"
	"strings"

	"github.com/signadot/ufoto/token"
)

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true,
	"while": true, "with": true, "yield": true,
}

var augOps = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "//=": "//", "%=": "%", "**=": "**",
}

type parser struct {
	toks []token.Token
	i    int
}

// Parse tokenizes and parses one source file. name is used in positions.
func Parse(name string, d []byte) (*File, error) {
	toks, err := token.Tokenize(name, d)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	f := &File{Name: name}
	for p.peek().Type != token.TEOF {
		stmts, err := p.stmt()
		if err != nil {
			return nil, err
		}
		f.Body = append(f.Body, stmts...)
	}
	return f, nil
}

// ParseExpr parses a single expression.
func ParseExpr(name string, d []byte) (Expr, error) {
	toks, err := token.Tokenize(name, d)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	x, err := p.testList()
	if err != nil {
		return nil, err
	}
	if p.peek().Type == token.TNewline {
		p.next()
	}
	if t := p.peek(); t.Type != token.TEOF {
		return nil, errAt(t, "unexpected %q after expression", t.Bytes)
	}
	return x, nil
}

func (p *parser) peek() *token.Token {
	return &p.toks[p.i]
}

func (p *parser) next() *token.Token {
	t := &p.toks[p.i]
	if t.Type != token.TEOF {
		p.i++
	}
	return t
}

func (p *parser) accept(v string) bool {
	if p.peek().Is(v) {
		p.i++
		return true
	}
	return false
}

func (p *parser) expect(v string) (*token.Token, error) {
	t := p.peek()
	if !t.Is(v) {
		return nil, errAt(t, "expected %q, got %s", v, describe(t))
	}
	return p.next(), nil
}

func (p *parser) ident() (*token.Token, error) {
	t := p.peek()
	if t.Type != token.TName || keywords[string(t.Bytes)] {
		return nil, errAt(t, "expected name, got %s", describe(t))
	}
	return p.next(), nil
}

func describe(t *token.Token) string {
	switch t.Type {
	case token.TNewline:
		return "end of line"
	case token.TEOF:
		return "end of file"
	case token.TIndent:
		return "indent"
	case token.TDedent:
		return "dedent"
	}
	return fmt.Sprintf("%q", t.Bytes)
}

func (p *parser) endLine() error {
	t := p.peek()
	switch t.Type {
	case token.TNewline:
		p.next()
		return nil
	case token.TEOF:
		return nil
	}
	return errAt(t, "expected end of line, got %s", describe(t))
}

// stmt parses one line's worth of statements or one compound statement.
func (p *parser) stmt() ([]Stmt, error) {
	t := p.peek()
	if t.Type == token.TName {
		switch string(t.Bytes) {
		case "if":
			s, err := p.ifStmt()
			return []Stmt{s}, err
		case "try":
			s, err := p.tryStmt()
			return []Stmt{s}, err
		case "def", "class", "for", "while", "with", "return", "raise",
			"del", "global", "nonlocal", "lambda", "assert", "yield",
			"break", "continue", "async", "await":
			return nil, errAt(t, "unsupported statement %q", t.Bytes)
		}
	}
	if t.Type == token.TIndent {
		return nil, errAt(t, "unexpected indent")
	}
	return p.simpleStmts()
}

func (p *parser) simpleStmts() ([]Stmt, error) {
	var res []Stmt
	for {
		s, err := p.simpleStmt()
		if err != nil {
			return nil, err
		}
		res = append(res, s)
		if !p.accept(";") {
			break
		}
		if t := p.peek(); t.Type == token.TNewline || t.Type == token.TEOF {
			break
		}
	}
	return res, p.endLine()
}

func (p *parser) simpleStmt() (Stmt, error) {
	t := p.peek()
	switch {
	case t.Is("pass"):
		p.next()
		return &Pass{At: t.Pos}, nil
	case t.Is("import"):
		return p.importStmt()
	case t.Is("from"):
		return p.fromStmt()
	}
	x, err := p.testList()
	if err != nil {
		return nil, err
	}
	if op := p.peek(); op.Type == token.TOp {
		if bop, ok := augOps[string(op.Bytes)]; ok {
			p.next()
			if err := checkTarget(x); err != nil {
				return nil, err
			}
			v, err := p.testList()
			if err != nil {
				return nil, err
			}
			return &AugAssign{At: t.Pos, Target: x, Op: bop, Value: v}, nil
		}
	}
	if !p.peek().Is("=") {
		return &ExprStmt{X: x}, nil
	}
	as := &Assign{At: t.Pos}
	for p.accept("=") {
		if err := checkTarget(x); err != nil {
			return nil, err
		}
		as.Targets = append(as.Targets, x)
		x, err = p.testList()
		if err != nil {
			return nil, err
		}
	}
	as.Value = x
	return as, nil
}

func checkTarget(x Expr) error {
	switch e := x.(type) {
	case *Name, *Attr, *Subscript:
		return nil
	case *Tuple:
		for _, el := range e.Elems {
			if err := checkTarget(el); err != nil {
				return err
			}
		}
		return nil
	case *List:
		for _, el := range e.Elems {
			if err := checkTarget(el); err != nil {
				return err
			}
		}
		return nil
	}
	return &Error{Pos: *x.Pos(), Msg: "cannot assign to expression"}
}

func (p *parser) dotted() (string, error) {
	t, err := p.ident()
	if err != nil {
		return "", err
	}
	parts := []string{string(t.Bytes)}
	for p.accept(".") {
		t, err := p.ident()
		if err != nil {
			return "", err
		}
		parts = append(parts, string(t.Bytes))
	}
	return strings.Join(parts, "."), nil
}

func (p *parser) alias(dotted bool) (Alias, error) {
	var a Alias
	if dotted {
		n, err := p.dotted()
		if err != nil {
			return a, err
		}
		a.Name = n
	} else {
		t, err := p.ident()
		if err != nil {
			return a, err
		}
		a.Name = string(t.Bytes)
	}
	if p.accept("as") {
		t, err := p.ident()
		if err != nil {
			return a, err
		}
		a.As = string(t.Bytes)
	}
	return a, nil
}

func (p *parser) importStmt() (Stmt, error) {
	s := &Import{At: p.next().Pos}
	for {
		a, err := p.alias(true)
		if err != nil {
			return nil, err
		}
		s.Names = append(s.Names, a)
		if !p.accept(",") {
			return s, nil
		}
	}
}

func (p *parser) fromStmt() (Stmt, error) {
	s := &ImportFrom{At: p.next().Pos}
	for {
		switch {
		case p.accept("."):
			s.Level++
			continue
		case p.accept("..."):
			s.Level += 3
			continue
		}
		break
	}
	if !p.peek().Is("import") {
		m, err := p.dotted()
		if err != nil {
			return nil, err
		}
		s.Module = m
	} else if s.Level == 0 {
		return nil, errAt(p.peek(), "expected module name")
	}
	if _, err := p.expect("import"); err != nil {
		return nil, err
	}
	if p.accept("*") {
		s.Star = true
		return s, nil
	}
	paren := p.accept("(")
	for {
		a, err := p.alias(false)
		if err != nil {
			return nil, err
		}
		s.Names = append(s.Names, a)
		if !p.accept(",") {
			break
		}
		if paren && p.peek().Is(")") {
			break
		}
	}
	if paren {
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// suite parses the block after a colon: either simple statements on the
// same line or an indented block.
func (p *parser) suite() ([]Stmt, error) {
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	if p.peek().Type != token.TNewline {
		return p.simpleStmts()
	}
	p.next()
	t := p.peek()
	if t.Type != token.TIndent {
		return nil, errAt(t, "expected an indented block")
	}
	p.next()
	var body []Stmt
	for {
		t := p.peek()
		if t.Type == token.TDedent {
			p.next()
			return body, nil
		}
		if t.Type == token.TEOF {
			return body, nil
		}
		ss, err := p.stmt()
		if err != nil {
			return nil, err
		}
		body = append(body, ss...)
	}
}

func (p *parser) ifStmt() (Stmt, error) {
	s := &If{At: p.next().Pos}
	cond, err := p.test()
	if err != nil {
		return nil, err
	}
	s.Cond = cond
	if s.Body, err = p.suite(); err != nil {
		return nil, err
	}
	switch t := p.peek(); {
	case t.Is("elif"):
		elif, err := p.ifStmt()
		if err != nil {
			return nil, err
		}
		s.Else = []Stmt{elif}
	case t.Is("else"):
		p.next()
		if s.Else, err = p.suite(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *parser) tryStmt() (Stmt, error) {
	s := &Try{At: p.next().Pos}
	var err error
	if s.Body, err = p.suite(); err != nil {
		return nil, err
	}
	for p.peek().Is("except") {
		h := &Handler{At: p.next().Pos}
		if !p.peek().Is(":") {
			x, err := p.test()
			if err != nil {
				return nil, err
			}
			if tup, ok := x.(*Tuple); ok {
				h.Types = tup.Elems
			} else {
				h.Types = []Expr{x}
			}
			if p.accept("as") {
				t, err := p.ident()
				if err != nil {
					return nil, err
				}
				h.Name = string(t.Bytes)
			}
		}
		if h.Body, err = p.suite(); err != nil {
			return nil, err
		}
		s.Handlers = append(s.Handlers, h)
	}
	if len(s.Handlers) != 0 && p.accept("else") {
		if s.Else, err = p.suite(); err != nil {
			return nil, err
		}
	}
	if p.accept("finally") {
		if s.Finally, err = p.suite(); err != nil {
			return nil, err
		}
	}
	if len(s.Handlers) == 0 && s.Finally == nil {
		return nil, errAt(p.peek(), "expected except or finally")
	}
	return s, nil
}

// testList parses a comma separated expression list, producing a Tuple
// when a comma is present.
func (p *parser) testList() (Expr, error) {
	at := p.peek().Pos
	x, err := p.test()
	if err != nil {
		return nil, err
	}
	if !p.peek().Is(",") {
		return x, nil
	}
	tup := &Tuple{At: at, Elems: []Expr{x}}
	for p.accept(",") {
		if !startsExpr(p.peek()) {
			break
		}
		x, err := p.test()
		if err != nil {
			return nil, err
		}
		tup.Elems = append(tup.Elems, x)
	}
	return tup, nil
}

func startsExpr(t *token.Token) bool {
	switch t.Type {
	case token.TName:
		n := string(t.Bytes)
		return !keywords[n] || n == "None" || n == "True" || n == "False" || n == "not" || n == "lambda"
	case token.TInt, token.TFloat, token.TString:
		return true
	case token.TOp:
		switch string(t.Bytes) {
		case "(", "[", "{", "-", "+", "~":
			return true
		}
	}
	return false
}

func (p *parser) test() (Expr, error) {
	t := p.peek()
	if t.Is("lambda") {
		return nil, errAt(t, "unsupported expression lambda")
	}
	x, err := p.orTest()
	if err != nil {
		return nil, err
	}
	if !p.peek().Is("if") {
		return x, nil
	}
	p.next()
	test, err := p.orTest()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("else"); err != nil {
		return nil, err
	}
	y, err := p.test()
	if err != nil {
		return nil, err
	}
	return &Cond{At: t.Pos, Test: test, X: x, Y: y}, nil
}

func (p *parser) orTest() (Expr, error) {
	x, err := p.andTest()
	if err != nil {
		return nil, err
	}
	for p.peek().Is("or") {
		t := p.next()
		y, err := p.andTest()
		if err != nil {
			return nil, err
		}
		x = &BoolOp{At: t.Pos, Op: "or", X: x, Y: y}
	}
	return x, nil
}

func (p *parser) andTest() (Expr, error) {
	x, err := p.notTest()
	if err != nil {
		return nil, err
	}
	for p.peek().Is("and") {
		t := p.next()
		y, err := p.notTest()
		if err != nil {
			return nil, err
		}
		x = &BoolOp{At: t.Pos, Op: "and", X: x, Y: y}
	}
	return x, nil
}

func (p *parser) notTest() (Expr, error) {
	if t := p.peek(); t.Is("not") {
		p.next()
		x, err := p.notTest()
		if err != nil {
			return nil, err
		}
		return &Unary{At: t.Pos, Op: "not", X: x}, nil
	}
	return p.comparison()
}

func (p *parser) compOp() (string, bool) {
	t := p.peek()
	switch {
	case t.Type == token.TOp:
		switch op := string(t.Bytes); op {
		case "<", ">", "==", "!=", "<=", ">=":
			p.next()
			return op, true
		}
	case t.Is("in"):
		p.next()
		return "in", true
	case t.Is("not") && p.toks[p.i+1].Is("in"):
		p.i += 2
		return "not in", true
	case t.Is("is"):
		p.next()
		if p.accept("not") {
			return "is not", true
		}
		return "is", true
	}
	return "", false
}

func (p *parser) comparison() (Expr, error) {
	at := p.peek().Pos
	x, err := p.arith()
	if err != nil {
		return nil, err
	}
	var cmp *Compare
	for {
		op, ok := p.compOp()
		if !ok {
			break
		}
		y, err := p.arith()
		if err != nil {
			return nil, err
		}
		if cmp == nil {
			cmp = &Compare{At: at, Xs: []Expr{x}}
		}
		cmp.Ops = append(cmp.Ops, op)
		cmp.Xs = append(cmp.Xs, y)
	}
	if cmp == nil {
		return x, nil
	}
	return cmp, nil
}

func (p *parser) arith() (Expr, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if !t.Is("+") && !t.Is("-") {
			return x, nil
		}
		p.next()
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = &Binary{At: t.Pos, Op: string(t.Bytes), X: x, Y: y}
	}
}

func (p *parser) term() (Expr, error) {
	x, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if !t.Is("*") && !t.Is("/") && !t.Is("//") && !t.Is("%") {
			return x, nil
		}
		p.next()
		y, err := p.factor()
		if err != nil {
			return nil, err
		}
		x = &Binary{At: t.Pos, Op: string(t.Bytes), X: x, Y: y}
	}
}

func (p *parser) factor() (Expr, error) {
	t := p.peek()
	if t.Is("-") || t.Is("+") || t.Is("~") {
		p.next()
		x, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &Unary{At: t.Pos, Op: string(t.Bytes), X: x}, nil
	}
	return p.power()
}

func (p *parser) power() (Expr, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Is("**") {
		p.next()
		y, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &Binary{At: t.Pos, Op: "**", X: x, Y: y}, nil
	}
	return x, nil
}

func (p *parser) primary() (Expr, error) {
	x, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch {
		case t.Is("."):
			p.next()
			n, err := p.ident()
			if err != nil {
				return nil, err
			}
			x = &Attr{X: x, Name: string(n.Bytes), At: n.Pos}
		case t.Is("("):
			p.next()
			c, err := p.callArgs(x, t)
			if err != nil {
				return nil, err
			}
			x = c
		case t.Is("["):
			p.next()
			idx, err := p.testList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect("]"); err != nil {
				return nil, err
			}
			x = &Subscript{X: x, Index: idx, At: t.Pos}
		default:
			return x, nil
		}
	}
}

func (p *parser) callArgs(fn Expr, open *token.Token) (Expr, error) {
	c := &Call{Fn: fn, At: open.Pos}
	seen := map[string]bool{}
	for !p.peek().Is(")") {
		t := p.peek()
		if t.Is("*") || t.Is("**") {
			return nil, errAt(t, "unsupported argument unpacking")
		}
		if t.Type == token.TName && !keywords[string(t.Bytes)] && p.toks[p.i+1].Is("=") {
			p.i += 2
			v, err := p.test()
			if err != nil {
				return nil, err
			}
			name := string(t.Bytes)
			if seen[name] {
				return nil, errAt(t, "keyword argument repeated: %s", name)
			}
			seen[name] = true
			c.Keywords = append(c.Keywords, Keyword{Name: name, Value: v})
		} else {
			if len(c.Keywords) != 0 {
				return nil, errAt(t, "positional argument follows keyword argument")
			}
			v, err := p.test()
			if err != nil {
				return nil, err
			}
			c.Args = append(c.Args, v)
		}
		if !p.accept(",") {
			break
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *parser) atom() (Expr, error) {
	t := p.peek()
	switch t.Type {
	case token.TInt:
		p.next()
		v, err := token.ParseInt(t.Bytes)
		if err != nil {
			return nil, errAt(t, "%v", err)
		}
		return &IntLit{At: t.Pos, Value: v}, nil
	case token.TFloat:
		p.next()
		v, err := token.ParseFloat(t.Bytes)
		if err != nil {
			return nil, errAt(t, "%v", err)
		}
		return &FloatLit{At: t.Pos, Value: v}, nil
	case token.TString:
		var sb strings.Builder
		for p.peek().Type == token.TString {
			s := p.next()
			v, err := token.Unquote(s.Bytes)
			if err != nil {
				return nil, errAt(s, "%v", err)
			}
			sb.WriteString(v)
		}
		return &StrLit{At: t.Pos, Value: sb.String()}, nil
	case token.TName:
		switch string(t.Bytes) {
		case "None":
			p.next()
			return &NoneLit{At: t.Pos}, nil
		case "True", "False":
			p.next()
			return &BoolLit{At: t.Pos, Value: t.Is("True")}, nil
		}
		n, err := p.ident()
		if err != nil {
			return nil, err
		}
		return &Name{At: n.Pos, Name: string(n.Bytes)}, nil
	case token.TOp:
		switch string(t.Bytes) {
		case "(":
			p.next()
			if p.accept(")") {
				return &Tuple{At: t.Pos}, nil
			}
			x, err := p.testList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		case "[":
			p.next()
			elems, err := p.elems("]")
			if err != nil {
				return nil, err
			}
			return &List{At: t.Pos, Elems: elems}, nil
		case "{":
			p.next()
			return p.dict(t)
		}
	}
	return nil, errAt(t, "unexpected %s", describe(t))
}

func (p *parser) elems(close string) ([]Expr, error) {
	var res []Expr
	for !p.peek().Is(close) {
		x, err := p.test()
		if err != nil {
			return nil, err
		}
		res = append(res, x)
		if !p.accept(",") {
			break
		}
	}
	if _, err := p.expect(close); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *parser) dict(open *token.Token) (Expr, error) {
	d := &Dict{At: open.Pos}
	for !p.peek().Is("}") {
		k, err := p.test()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(":"); err != nil {
			return nil, err
		}
		v, err := p.test()
		if err != nil {
			return nil, err
		}
		d.Keys = append(d.Keys, k)
		d.Vals = append(d.Vals, v)
		if !p.accept(",") {
			break
		}
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return d, nil
}
