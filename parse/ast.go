package parse

import "github.com/signadot/ufoto/token"

type Node interface {
	Pos() *token.Pos
}

type Stmt interface {
	Node
	isStmt()
}

type Expr interface {
	Node
	isExpr()
}

// File is one parsed source file.
type File struct {
	Name string
	Body []Stmt
}

// Alias is one imported name; Name may be dotted. As is empty when no
// alias was given.
type Alias struct {
	Name string
	As   string
}

type (
	Import struct {
		At    *token.Pos
		Names []Alias
	}

	// ImportFrom is from <dots><Module> import <Names>. Level counts the
	// leading dots. Star is set for import *.
	ImportFrom struct {
		At     *token.Pos
		Module string
		Level  int
		Names  []Alias
		Star   bool
	}

	// Assign binds Value to each of Targets in order, as in a = b = v.
	Assign struct {
		At      *token.Pos
		Targets []Expr
		Value   Expr
	}

	// AugAssign is Target Op= Value; Op is the binary operator.
	AugAssign struct {
		At     *token.Pos
		Target Expr
		Op     string
		Value  Expr
	}

	ExprStmt struct {
		X Expr
	}

	Pass struct {
		At *token.Pos
	}

	// If holds an if statement; elif chains nest as a single If in Else.
	If struct {
		At   *token.Pos
		Cond Expr
		Body []Stmt
		Else []Stmt
	}

	Try struct {
		At       *token.Pos
		Body     []Stmt
		Handlers []*Handler
		Else     []Stmt
		Finally  []Stmt
	}

	// Handler is one except clause. Types is empty for a bare except.
	Handler struct {
		At    *token.Pos
		Types []Expr
		Name  string
		Body  []Stmt
	}
)

func (s *Import) Pos() *token.Pos { return s.At }
func (s *ImportFrom) Pos() *token.Pos { return s.At }
func (s *Assign) Pos() *token.Pos { return s.At }
func (s *AugAssign) Pos() *token.Pos { return s.At }
func (s *ExprStmt) Pos() *token.Pos { return s.X.Pos() }
func (s *Pass) Pos() *token.Pos { return s.At }
func (s *If) Pos() *token.Pos { return s.At }
func (s *Try) Pos() *token.Pos { return s.At }

func (*Import) isStmt() {}
func (*ImportFrom) isStmt() {}
func (*Assign) isStmt() {}
func (*AugAssign) isStmt() {}
func (*ExprStmt) isStmt() {}
func (*Pass) isStmt() {}
func (*If) isStmt() {}
func (*Try) isStmt() {}

type (
	Name struct {
		At   *token.Pos
		Name string
	}

	Attr struct {
		X    Expr
		Name string
		At   *token.Pos
	}

	Keyword struct {
		Name  string
		Value Expr
	}

	Call struct {
		Fn       Expr
		Args     []Expr
		Keywords []Keyword
		At       *token.Pos
	}

	Subscript struct {
		X     Expr
		Index Expr
		At    *token.Pos
	}

	List struct {
		At    *token.Pos
		Elems []Expr
	}

	Tuple struct {
		At    *token.Pos
		Elems []Expr
	}

	Dict struct {
		At   *token.Pos
		Keys []Expr
		Vals []Expr
	}

	// Unary is one of -x, +x or not x.
	Unary struct {
		At *token.Pos
		Op string
		X  Expr
	}

	Binary struct {
		At *token.Pos
		Op string
		X  Expr
		Y  Expr
	}

	// BoolOp is x and y or x or y.
	BoolOp struct {
		At *token.Pos
		Op string
		X  Expr
		Y  Expr
	}

	// Compare is a comparison chain: Xs[0] Ops[0] Xs[1] Ops[1] Xs[2]...
	Compare struct {
		At  *token.Pos
		Ops []string
		Xs  []Expr
	}

	// Cond is X if Test else Y.
	Cond struct {
		At   *token.Pos
		Test Expr
		X    Expr
		Y    Expr
	}

	NoneLit struct {
		At *token.Pos
	}

	BoolLit struct {
		At    *token.Pos
		Value bool
	}

	IntLit struct {
		At    *token.Pos
		Value int64
	}

	FloatLit struct {
		At    *token.Pos
		Value float64
	}

	StrLit struct {
		At    *token.Pos
		Value string
	}
)

func (e *Name) Pos() *token.Pos { return e.At }
func (e *Attr) Pos() *token.Pos { return e.At }
func (e *Call) Pos() *token.Pos { return e.At }
func (e *Subscript) Pos() *token.Pos { return e.At }
func (e *List) Pos() *token.Pos { return e.At }
func (e *Tuple) Pos() *token.Pos { return e.At }
func (e *Dict) Pos() *token.Pos { return e.At }
func (e *Unary) Pos() *token.Pos { return e.At }
func (e *Binary) Pos() *token.Pos { return e.At }
func (e *BoolOp) Pos() *token.Pos { return e.At }
func (e *Compare) Pos() *token.Pos { return e.At }
func (e *Cond) Pos() *token.Pos { return e.At }
func (e *NoneLit) Pos() *token.Pos { return e.At }
func (e *BoolLit) Pos() *token.Pos { return e.At }
func (e *IntLit) Pos() *token.Pos { return e.At }
func (e *FloatLit) Pos() *token.Pos { return e.At }
func (e *StrLit) Pos() *token.Pos { return e.At }

func (*Name) isExpr() {}
func (*Attr) isExpr() {}
func (*Call) isExpr() {}
func (*Subscript) isExpr() {}
func (*List) isExpr() {}
func (*Tuple) isExpr() {}
func (*Dict) isExpr() {}
func (*Unary) isExpr() {}
func (*Binary) isExpr() {}
func (*BoolOp) isExpr() {}
func (*Compare) isExpr() {}
func (*Cond) isExpr() {}
func (*NoneLit) isExpr() {}
func (*BoolLit) isExpr() {}
func (*IntLit) isExpr() {}
func (*FloatLit) isExpr() {}
func (*StrLit) isExpr() {}
