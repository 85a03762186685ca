package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Load    bool
	Eval    bool
	Marshal bool
	Encode  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("UFOTO_DEBUG_LOAD")
	d.Eval = boolEnv("UFOTO_DEBUG_EVAL")
	d.Marshal = boolEnv("UFOTO_DEBUG_MARSHAL")
	d.Encode = boolEnv("UFOTO_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Eval() bool {
	return d.Eval
}
func Marshal() bool {
	return d.Marshal
}
func Encode() bool {
	return d.Encode
}
