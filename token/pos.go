package token

import (
	"fmt"
	"sort"
)

// PosDoc maps byte offsets of one source document to lines and columns.
type PosDoc struct {
	Name string
	d    []byte
	n    []int
}

func NewPosDoc(name string, d []byte) *PosDoc {
	return &PosDoc{Name: name, d: d}
}

func (p *PosDoc) nl(i int) {
	if len(p.n) > 0 && p.n[len(p.n)-1] >= i {
		return
	}
	p.n = append(p.n, i)
}

// LineCol returns the zero based line and column of off.
func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	switch di {
	case 0:
		return 0, off
	default:
		return di, off - p.n[di-1] - 1
	}
}

func (p *PosDoc) Pos(i int) *Pos {
	return &Pos{
		I: i,
		D: p,
	}
}

type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

// String formats the position as name:line:col with one based lines and
// columns.
func (p Pos) String() string {
	if p.D == nil {
		return fmt.Sprintf("offset %d", p.I)
	}
	l, c := p.D.LineCol(p.I)
	if p.D.Name == "" {
		return fmt.Sprintf("%d:%d", l+1, c+1)
	}
	return fmt.Sprintf("%s:%d:%d", p.D.Name, l+1, c+1)
}
