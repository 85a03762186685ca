package eval

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/signadot/ufoto/debug"
	"github.com/signadot/ufoto/model"
	"github.com/signadot/ufoto/parse"
	"github.com/signadot/ufoto/token"
)

// Interp evaluates the modules of one model package. It is not safe for
// concurrent use.
type Interp struct {
	fsys     fs.FS
	root     string
	modules  map[string]*model.Namespace
	natives  map[string]model.Value
	builtins map[string]model.Value
	lib      *library
}

type Option func(*Interp)

// WithRoot sets the directory prefixed to module file names in positions
// and namespace paths.
func WithRoot(dir string) Option {
	return func(in *Interp) {
		in.root = dir
	}
}

// New returns an interpreter importing sibling modules from fsys, where
// module m is the file m.py at the root of fsys.
func New(fsys fs.FS, opts ...Option) *Interp {
	in := &Interp{
		fsys:    fsys,
		modules: map[string]*model.Namespace{},
		natives: map[string]model.Value{},
	}
	in.builtins = builtins()
	for _, o := range opts {
		o(in)
	}
	return in
}

// Run evaluates __init__.py as the package pkg and returns its namespace.
func (in *Interp) Run(pkg string) (*model.Namespace, error) {
	ns, err := in.exec("__init__", pkg)
	if err != nil {
		return nil, topError(err)
	}
	return ns, nil
}

// Import evaluates module name, or returns it from the cache when it was
// already imported.
func (in *Interp) Import(name string) (model.Value, error) {
	v, err := in.importModule(name, nil)
	if err != nil {
		return nil, topError(err)
	}
	return v, nil
}

func topError(err error) error {
	var exc *Exception
	if errors.As(err, &exc) && exc.Pos != nil {
		file := ""
		if exc.Pos.D != nil {
			file = exc.Pos.D.Name
		}
		return &Error{Pos: *exc.Pos, File: file, Err: err}
	}
	return fmt.Errorf("%w: %w", ErrEval, err)
}

func (in *Interp) filePath(module string) string {
	name := module + ".py"
	if in.root == "" {
		return name
	}
	return filepath.Join(in.root, name)
}

// importModule resolves name to a native module or a sibling file.
func (in *Interp) importModule(name string, at *token.Pos) (model.Value, error) {
	if v, ok := in.natives[name]; ok {
		return v, nil
	}
	if nm := LookupModule(name); nm != nil {
		v := nm.Instance(in)
		in.natives[name] = v
		if debug.Eval() {
			debug.Logf("eval: native module %s\n", name)
		}
		return v, nil
	}
	if ns, ok := in.modules[name]; ok {
		return model.Module{Namespace: ns}, nil
	}
	if strings.Contains(name, ".") {
		first, _, _ := strings.Cut(name, ".")
		return nil, raise(at, "ModuleNotFoundError", "No module named '%s'; '%s' is not a package", name, first)
	}
	ns, err := in.exec(name, name)
	if err != nil {
		var exc *Exception
		if errors.As(err, &exc) && exc.Pos == nil {
			exc.Pos = at
		}
		return nil, err
	}
	return model.Module{Namespace: ns}, nil
}

// exec reads and evaluates module file <module>.py under the module name
// modName.
func (in *Interp) exec(module, modName string) (*model.Namespace, error) {
	fpath := in.filePath(module)
	d, err := fs.ReadFile(in.fsys, path.Clean(module+".py"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Exception{Class: "ModuleNotFoundError", Msg: fmt.Sprintf("No module named '%s'", modName), Err: err}
		}
		return nil, &Exception{Class: "ImportError", Msg: err.Error(), Err: err}
	}
	f, err := parse.Parse(fpath, d)
	if err != nil {
		return nil, syntaxError(err)
	}
	ns := model.NewNamespace(modName)
	ns.Path = fpath
	ns.Bind("__name__", model.Str(modName))
	ns.Bind("__file__", model.Str(fpath))
	in.modules[module] = ns
	fr := &frame{in: in, ns: ns}
	if err := fr.execBlock(f.Body); err != nil {
		delete(in.modules, module)
		return nil, err
	}
	if debug.Eval() {
		debug.Logf("eval: executed %s, %d names\n", fpath, len(ns.Names()))
	}
	return ns, nil
}

func syntaxError(err error) error {
	exc := &Exception{Class: "SyntaxError", Msg: err.Error(), Err: err}
	var pe *parse.Error
	var te *token.TokenizeErr
	switch {
	case errors.As(err, &pe):
		exc.Pos = &pe.Pos
	case errors.As(err, &te):
		exc.Pos = &te.Pos
	}
	return exc
}
