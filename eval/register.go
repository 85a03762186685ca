package eval

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/signadot/ufoto/model"
)

// NativeModule is a module provided by the interpreter instead of being
// read from the model package.
type NativeModule interface {
	Name() string
	// Instance creates the module value for one interpreter. State such as
	// the object library registries is per interpreter.
	Instance(in *Interp) model.Value
}

var (
	mu      sync.RWMutex
	natives = map[string]NativeModule{}
)

var ErrModuleExists = errors.New("native module exists")

func RegisterModule(m NativeModule) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := natives[m.Name()]
	if present {
		return fmt.Errorf("%s: %w", m.Name(), ErrModuleExists)
	}
	natives[m.Name()] = m
	return nil
}

func init() {
	RegisterModule(objectLibrary{})
	RegisterModule(mathModule{name: "math"})
	RegisterModule(mathModule{name: "cmath", complex: true})
	for _, name := range []string{
		"__future__", "sys", "os", "re", "string", "numbers", "itertools",
		"write_param_card", "check_param_card",
	} {
		RegisterModule(stubModule(name))
	}
}

func LookupModule(name string) NativeModule {
	mu.RLock()
	defer mu.RUnlock()
	return natives[name]
}

// Modules returns the names of the native modules, sorted.
func Modules() []string {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]string, 0, len(natives))
	for name := range natives {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}
