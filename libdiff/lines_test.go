package libdiff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	got := Lines("a\nb\nc\n", "a\nB\nc\n")
	want := []Line{
		{Equal, "a"},
		{Delete, "b"},
		{Insert, "B"},
		{Equal, "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !Changed(got) {
		t.Error("not changed")
	}
	if same := Lines("x\ny\n", "x\ny\n"); Changed(same) || len(same) != 2 {
		t.Errorf("identical inputs: %v", same)
	}
	if l := Lines("", ""); len(l) != 0 {
		t.Errorf("empty inputs: %v", l)
	}
}

func TestRender(t *testing.T) {
	from := "1\n2\n3\n4\n5\n6\n7\n"
	to := strings.Replace(from, "6", "six", 1)
	tests := []struct {
		name string
		opts []RenderOption
		want string
	}{
		{
			name: "context",
			opts: []RenderOption{Context(1)},
			want: "@@ -5 +5 @@\n 5\n-6\n+six\n 7\n",
		},
		{
			name: "all",
			opts: []RenderOption{Context(-1)},
			want: " 1\n 2\n 3\n 4\n 5\n-6\n+six\n 7\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := Render(buf, Lines(from, to), tt.opts...); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderColor(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Render(buf, Lines("a\n", "b\n"), Color(true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[31m-a") || !strings.Contains(buf.String(), "\x1b[32m+b") {
		t.Errorf("no escapes in %q", buf.String())
	}
}
