package libdiff

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

type RenderOption func(*renderState)

type renderState struct {
	color   bool
	context int
}

// Color renders inserted lines green and deleted lines red.
func Color(v bool) RenderOption {
	return func(rs *renderState) { rs.color = v }
}

// Context sets how many unchanged lines are kept around each change; a
// negative n keeps all of them. The default is 3.
func Context(n int) RenderOption {
	return func(rs *renderState) { rs.context = n }
}

// Render writes lines in unified style. Unchanged lines farther than the
// context from any change are omitted and each hunk starts with a
// "@@ -from +to @@" header giving its first line number in both inputs.
// With a negative context there are no headers.
func Render(w io.Writer, lines []Line, opts ...RenderOption) error {
	rs := &renderState{context: 3}
	for _, o := range opts {
		o(rs)
	}
	keep := rs.visible(lines)
	var (
		add = color.New(color.FgGreen)
		del = color.New(color.FgRed)
		sep = color.New(color.FgCyan)
	)
	for _, c := range []*color.Color{add, del, sep} {
		if rs.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	bw := bufio.NewWriter(w)
	from, to := 1, 1
	inHunk := false
	for i, l := range lines {
		switch {
		case !keep[i]:
			inHunk = false
		default:
			if !inHunk && rs.context >= 0 {
				sep.Fprintf(bw, "@@ -%d +%d @@\n", from, to)
				inHunk = true
			}
			switch l.Op {
			case Insert:
				add.Fprintln(bw, l.Op.Prefix()+l.Text)
			case Delete:
				del.Fprintln(bw, l.Op.Prefix()+l.Text)
			default:
				fmt.Fprintln(bw, l.Op.Prefix()+l.Text)
			}
		}
		switch l.Op {
		case Insert:
			to++
		case Delete:
			from++
		default:
			from++
			to++
		}
	}
	return bw.Flush()
}

// visible marks the lines within the context of a change.
func (rs *renderState) visible(lines []Line) []bool {
	keep := make([]bool, len(lines))
	if rs.context < 0 {
		for i := range keep {
			keep[i] = true
		}
		return keep
	}
	for i, l := range lines {
		if l.Op == Equal {
			continue
		}
		lo, hi := max(0, i-rs.context), min(len(lines)-1, i+rs.context)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}
	return keep
}
