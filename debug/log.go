package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/signadot/ufoto/ir"
)

var out io.Writer = os.Stderr

// Logf prints a debug message to stderr. *ir.Node and plain map or slice
// arguments are rendered as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			args[i] = jsonString(x.ToAny())
		case map[string]any, []any:
			args[i] = jsonString(x)
		}
	}
	fmt.Fprintf(out, msg, args...)
}

func jsonString(v any) string {
	d, err := json.MarshalIndent(v, "   |", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(d)
}
