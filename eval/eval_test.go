package eval

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/ufoto/model"
	"github.com/signadot/ufoto/parse"
)

func run(files map[string]string) (*model.Namespace, error) {
	fsys := fstest.MapFS{}
	for name, src := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(strings.TrimLeft(src, "\n"))}
	}
	return New(fsys, WithRoot("tiny")).Run("tiny")
}

func mustRun(t *testing.T, files map[string]string) *model.Namespace {
	t.Helper()
	ns, err := run(files)
	if err != nil {
		t.Fatal(err)
	}
	return ns
}

func attr(t *testing.T, ns *model.Namespace, name string) model.Value {
	t.Helper()
	v, ok := ns.Attr(name)
	if !ok {
		t.Fatalf("%s not bound", name)
	}
	return v
}

func render(fs []model.Field) []string {
	res := make([]string, len(fs))
	for i, f := range fs {
		res[i] = f.Name + "=" + model.Repr(f.Value)
	}
	return res
}

func entities(t *testing.T, v model.Value) []model.Entity {
	t.Helper()
	es, err := model.Entities(v)
	if err != nil {
		t.Fatal(err)
	}
	return es
}

const parameters = `
from object_library import all_parameters, Parameter

ZERO = Parameter(name = 'ZERO',
                 nature = 'internal',
                 type = 'real',
                 value = '0.0',
                 texname = '0')

MZ = Parameter(name = 'MZ',
               nature = 'external',
               type = 'real',
               value = 91.188,
               texname = '\\text{MZ}',
               lhablock = 'MASS',
               lhacode = [ 23 ])
`

const particles = `
from __future__ import division
from object_library import all_particles, Particle
import parameters as Param

e__minus__ = Particle(pdg_code = 11,
                      name = 'e-',
                      antiname = 'e+',
                      spin = 2,
                      color = 1,
                      mass = Param.ZERO,
                      width = Param.ZERO,
                      texname = 'e-',
                      antitexname = 'e+',
                      charge = -1,
                      LeptonNumber = 1,
                      GhostNumber = 0)

e__plus__ = e__minus__.anti()

Z = Particle(pdg_code = 23,
             name = 'Z',
             antiname = 'Z',
             spin = 3,
             color = 1,
             mass = Param.MZ,
             width = Param.ZERO,
             texname = 'Z',
             antitexname = 'Z',
             charge = 0,
             propagator = 'PZ')
`

func TestParticles(t *testing.T) {
	ns := mustRun(t, map[string]string{
		"__init__.py":   "import particles\nall_particles = particles.all_particles\n",
		"particles.py":  particles,
		"parameters.py": parameters,
	})
	ps := entities(t, attr(t, ns, "all_particles"))
	if len(ps) != 3 {
		t.Fatalf("got %d particles", len(ps))
	}
	tests := []struct {
		name string
		want []string
	}{
		{
			name: "e-",
			want: []string{
				"pdg_code=11", "name='e-'", "antiname='e+'", "spin=2", "color=1",
				"mass=ZERO", "width=ZERO", "texname='e-'", "antitexname='e+'", "charge=-1.0",
				"LeptonNumber=1", "GhostNumber=0", "propagating=True", "goldstoneboson=False",
				"selfconjugate=False", "line='straight'",
			},
		},
		{
			name: "e+",
			want: []string{
				"pdg_code=-11", "name='e+'", "antiname='e-'", "spin=2", "color=1",
				"mass=ZERO", "width=ZERO", "texname='e+'", "antitexname='e-'", "charge=1.0",
				"LeptonNumber=-1", "GhostNumber=0", "selfconjugate=False", "propagating=True",
				"goldstoneboson=False", "line='straight'",
			},
		},
		{
			name: "Z",
			want: []string{
				"pdg_code=23", "name='Z'", "antiname='Z'", "spin=3", "color=1",
				"mass=MZ", "width=ZERO", "texname='Z'", "antitexname='Z'", "charge=0.0",
				"propagating=True", "goldstoneboson=False", "selfconjugate=True", "line='wavy'",
				"propagator={0: 'PZ', 1: 'PZ'}",
			},
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ps[i].String(); got != tt.name {
				t.Errorf("String() = %q", got)
			}
			if diff := cmp.Diff(tt.want, render(ps[i].Fields())); diff != "" {
				t.Errorf("fields (-want +got):\n%s", diff)
			}
		})
	}
	if _, ok := ps[2].(model.Particle); !ok {
		t.Errorf("Z is not a model.Particle")
	}
}

func TestAntiSelfConjugate(t *testing.T) {
	_, err := run(map[string]string{
		"__init__.py": `
from object_library import Particle
a = Particle(22, 'a', 'a', 3, 1, 'ZERO', 'ZERO', 'A', 'A', 0)
b = a.anti()
`,
	})
	var exc *Exception
	if !errors.As(err, &exc) || exc.Msg != "a has no anti particle." {
		t.Fatalf("got %v", err)
	}
	var ee *Error
	if !errors.As(err, &ee) || ee.Pos.String() != "tiny/__init__.py:3:11" {
		t.Errorf("position: %v", err)
	}
}

func TestDecayAttachesWidths(t *testing.T) {
	ns := mustRun(t, map[string]string{
		"__init__.py": `
import particles as P
import decays
all_particles = P.all_particles
all_decays = decays.all_decays
`,
		"particles.py":  particles,
		"parameters.py": parameters,
		"decays.py": `
from object_library import all_decays, Decay
import particles as P

Decay_Z = Decay(name = 'Decay_Z',
                particle = P.Z,
                partial_widths = {(P.e__minus__,P.e__plus__):'(MZ**2)/(48.*cmath.pi)'})
`,
	})
	ds := entities(t, attr(t, ns, "all_decays"))
	want := []string{"particle=Z", "partial_widths={(e__minus__, e__plus__): '(MZ**2)/(48.*cmath.pi)'}", "name='Decay_Z'"}
	if diff := cmp.Diff(want, render(ds[0].Fields())); diff != "" {
		t.Errorf("decay (-want +got):\n%s", diff)
	}
	z := entities(t, attr(t, ns, "all_particles"))[2]
	pw, ok := z.Get("partial_widths")
	if !ok {
		t.Fatalf("partial_widths not attached")
	}
	dpw, _ := ds[0].Get("partial_widths")
	if pw != dpw {
		t.Errorf("partial_widths not shared")
	}
}

func TestOptionalImport(t *testing.T) {
	ns := mustRun(t, map[string]string{
		"__init__.py": `
import particles
all_particles = particles.all_particles
try:
    import decays
except ImportError:
    pass
else:
    all_decays = decays.all_decays
try:
    from . import form_factors
except ImportError as e:
    failed = str(e)
`,
		"particles.py":  particles,
		"parameters.py": parameters,
	})
	if _, ok := ns.Attr("all_decays"); ok {
		t.Errorf("all_decays bound")
	}
	if got := attr(t, ns, "failed"); got != model.Str("No module named 'form_factors'") {
		t.Errorf("failed = %s", model.Repr(got))
	}
}

func TestModuleCache(t *testing.T) {
	ns := mustRun(t, map[string]string{
		"__init__.py": `
import particles
import vertices
all_particles = particles.all_particles
all_vertices = vertices.all_vertices
`,
		"particles.py":  particles,
		"parameters.py": parameters,
		"vertices.py": `
from object_library import all_vertices, Vertex
import particles as P
V_1 = Vertex(name = 'V_1',
             particles = [ P.e__plus__, P.e__minus__, P.Z ],
             color = [ '1' ],
             lorentz = [ 'FFV1' ],
             couplings = {(0,0):'GC_1'})
`,
	})
	if n := len(entities(t, attr(t, ns, "all_particles"))); n != 3 {
		t.Errorf("particles evaluated more than once: %d", n)
	}
	vs := entities(t, attr(t, ns, "all_vertices"))
	want := []string{
		"name='V_1'", "particles=[e__plus__, e__minus__, Z]", "color=['1']",
		"lorentz=['FFV1']", "couplings={(0, 0): 'GC_1'}",
	}
	if diff := cmp.Diff(want, render(vs[0].Fields())); diff != "" {
		t.Errorf("vertex (-want +got):\n%s", diff)
	}
}

func TestObjectLibraryClasses(t *testing.T) {
	ns := mustRun(t, map[string]string{
		"__init__.py": `
from object_library import *
QCD = CouplingOrder(name = 'QCD', expansion_order = 99, hierarchy = 1)
cc = Function(name = 'complexconjugate', arguments = ('z',), expression = 'z.conjugate()')
FFV1 = Lorentz(name = 'FFV1', spins = [ 2, 2, 3 ])
GC_1 = Coupling(name = 'GC_1', value = '-(ee*complex(0,1))/3.', order = {'QED':1})
PZ = Propagator(name = 'PZ', numerator = '1', denominator = 'P(-1,1)**2')
FF = FormFactor(name = 'FF', type = 'real', value = '1')
CTP = CTParameter(name = 'CTP', type = 'real', value = {-1: '1'}, texname = 'x')
`,
	})
	tests := []struct {
		registry string
		want     []string
	}{
		{"all_orders", []string{"name='QCD'", "expansion_order=99", "hierarchy=1", "perturbative_expansion=0"}},
		{"all_functions", []string{"name='complexconjugate'", "arguments=('z',)", "expr='z.conjugate()'"}},
		{"all_lorentz", []string{"name='FFV1'", "spins=[2, 2, 3]", "structure='external'"}},
		{"all_couplings", []string{"name='GC_1'", "value='-(ee*complex(0,1))/3.'", "order={'QED': 1}"}},
		{"all_propagators", []string{"name='PZ'", "numerator='1'", "denominator='P(-1,1)**2'"}},
		{"all_form_factors", []string{"name='FF'", "type='real'", "value='1'"}},
		{"all_CTparameters", []string{"name='CTP'", "type='real'", "value={-1: '1'}", "texname='x'"}},
	}
	for _, tt := range tests {
		t.Run(tt.registry, func(t *testing.T) {
			es := entities(t, attr(t, ns, tt.registry))
			if len(es) != 1 {
				t.Fatalf("got %d entities", len(es))
			}
			if diff := cmp.Diff(tt.want, render(es[0].Fields())); diff != "" {
				t.Errorf("fields (-want +got):\n%s", diff)
			}
		})
	}
	if _, ok := ns.Attr("__name__"); !ok {
		t.Errorf("__name__ not bound")
	}
}

func TestExpressions(t *testing.T) {
	ns := mustRun(t, map[string]string{
		"__init__.py": `
import cmath
a = 1/2
b = 7//2
c = -7 % 3
d = 2**10
e = 'x' + 'y'
f = [1] * 2
g = abs(-3)
h = float('1.5')
i = int(2.9)
j = 1 if 0 else 2
k = (1, 2)[1]
l = {'a': 1}['a']
m = cmath.pi > 3
n = 1 < 2 < 3
o = not []
p = -2**2
q = 2**-1
r = 0 or 'z'
s = len([1, 2, 3])
t = 3 in (1, 2, 3)
u = 'r' 'aw'
v = [1]
v += [2]
w = 1
w += 1.5
`,
	})
	want := map[string]model.Value{
		"a": model.Float(0.5),
		"b": model.Int(3),
		"c": model.Int(2),
		"d": model.Int(1024),
		"e": model.Str("xy"),
		"g": model.Int(3),
		"h": model.Float(1.5),
		"i": model.Int(2),
		"j": model.Int(2),
		"k": model.Int(2),
		"l": model.Int(1),
		"m": model.Bool(true),
		"n": model.Bool(true),
		"o": model.Bool(true),
		"p": model.Int(-4),
		"q": model.Float(0.5),
		"r": model.Str("z"),
		"s": model.Int(3),
		"t": model.Bool(true),
		"u": model.Str("raw"),
		"w": model.Float(2.5),
	}
	for name, v := range want {
		got := attr(t, ns, name)
		if got != v {
			t.Errorf("%s = %s (%s), want %s", name, model.Repr(got), got.Kind(), model.Repr(v))
		}
	}
	if got := model.String(attr(t, ns, "f")); got != "[1, 1]" {
		t.Errorf("f = %s", got)
	}
	if got := model.String(attr(t, ns, "v")); got != "[1, 2]" {
		t.Errorf("v = %s", got)
	}
}

func TestStubs(t *testing.T) {
	mustRun(t, map[string]string{
		"__init__.py": `
import os
import sys
root_path = os.path.dirname(os.path.realpath( __file__ ))
if root_path not in sys.path:
    sys.path.insert(0, root_path)
import math, cmath
from itertools import product
`,
	})
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		class string
		msg   string
		pos   string
	}{
		{
			name:  "undefined name",
			files: map[string]string{"__init__.py": "x = 1\ny = x + z\n"},
			class: "NameError",
			msg:   "name 'z' is not defined",
			pos:   "tiny/__init__.py:2:9",
		},
		{
			name:  "zero division",
			files: map[string]string{"__init__.py": "x = 1 / 0\n"},
			class: "ZeroDivisionError",
			msg:   "division by zero",
			pos:   "tiny/__init__.py:1:7",
		},
		{
			name:  "missing argument",
			files: map[string]string{"__init__.py": "from object_library import Coupling\nc = Coupling(name='GC_1', value='1')\n"},
			class: "TypeError",
			msg:   "Coupling() missing 1 required positional argument: 'order'",
			pos:   "tiny/__init__.py:2:13",
		},
		{
			name:  "unexpected keyword",
			files: map[string]string{"__init__.py": "from object_library import CTParameter\nc = CTParameter('a', 'b', 'c', 'd', e=1)\n"},
			class: "TypeError",
			msg:   "CTParameter() got an unexpected keyword argument 'e'",
			pos:   "tiny/__init__.py:2:16",
		},
		{
			name: "external parameter without lha",
			files: map[string]string{"__init__.py": `
from object_library import Parameter
aS = Parameter(name = 'aS', nature = 'external', type = 'real', value = 0.118, texname = 'aS')
`},
			class: "Exception",
			msg:   "Need LHA information for external parameter \"aS\".",
			pos:   "tiny/__init__.py:2:15",
		},
		{
			name:  "complex",
			files: map[string]string{"__init__.py": "x = complex(0, 1)\n"},
			class: "NotImplementedError",
			msg:   "complex numbers are not supported",
			pos:   "tiny/__init__.py:1:12",
		},
		{
			name:  "uncaught import error",
			files: map[string]string{"__init__.py": "import particles\n"},
			class: "ModuleNotFoundError",
			msg:   "No module named 'particles'",
			pos:   "tiny/__init__.py:1:1",
		},
		{
			name: "syntax error in sibling",
			files: map[string]string{
				"__init__.py":  "import couplings\n",
				"couplings.py": "GC_1 = = 1\n",
			},
			class: "SyntaxError",
			pos:   "tiny/couplings.py:1:8",
		},
		{
			name:  "missing attribute",
			files: map[string]string{"__init__.py": "import math\nx = math.tau\n"},
			class: "AttributeError",
			msg:   "module 'math' has no attribute 'tau'",
			pos:   "tiny/__init__.py:2:10",
		},
		{
			name:  "unhashable key",
			files: map[string]string{"__init__.py": "d = {[1]: 2}\n"},
			class: "TypeError",
			msg:   "unhashable type: 'list'",
			pos:   "tiny/__init__.py:1:6",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(tt.files)
			if !errors.Is(err, ErrEval) {
				t.Fatalf("got %v, want ErrEval", err)
			}
			var exc *Exception
			if !errors.As(err, &exc) {
				t.Fatalf("no exception in %v", err)
			}
			if exc.Class != tt.class {
				t.Errorf("class %s, want %s (%v)", exc.Class, tt.class, err)
			}
			if tt.msg != "" && exc.Msg != tt.msg {
				t.Errorf("msg %q, want %q", exc.Msg, tt.msg)
			}
			var ee *Error
			if !errors.As(err, &ee) {
				t.Fatalf("not an *Error: %v", err)
			}
			if got := ee.Pos.String(); got != tt.pos {
				t.Errorf("pos %s, want %s", got, tt.pos)
			}
		})
	}
}

func TestSyntaxErrorCause(t *testing.T) {
	_, err := run(map[string]string{"__init__.py": "x = = 1\n"})
	if !errors.Is(err, parse.ErrParse) {
		t.Errorf("cause lost: %v", err)
	}
}

func TestBind(t *testing.T) {
	sig := &Signature{Params: append(params("a", "b"), Param{"c", model.Int(3)}), Kwargs: true}
	vals, opts, err := sig.Bind("f", []model.Value{model.Int(1)}, []model.Field{
		{Name: "x", Value: model.Int(9)},
		{Name: "b", Value: model.Int(2)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]model.Value{model.Int(1), model.Int(2), model.Int(3)}, vals); diff != "" {
		t.Errorf("vals (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.Field{{Name: "x", Value: model.Int(9)}}, opts); diff != "" {
		t.Errorf("opts (-want +got):\n%s", diff)
	}
	_, _, err = sig.Bind("f", nil, nil)
	var exc *Exception
	if !errors.As(err, &exc) || exc.Msg != "f() missing 2 required positional arguments: 'a' and 'b'" {
		t.Errorf("got %v", err)
	}
	_, _, err = sig.Bind("f", []model.Value{model.Int(1)}, []model.Field{{Name: "a", Value: model.Int(1)}})
	if !errors.As(err, &exc) || exc.Msg != "f() got multiple values for argument 'a'" {
		t.Errorf("got %v", err)
	}
}

func TestModules(t *testing.T) {
	want := []string{
		"__future__", "check_param_card", "cmath", "itertools", "math", "numbers",
		"object_library", "os", "re", "string", "sys", "write_param_card",
	}
	if diff := cmp.Diff(want, Modules()); diff != "" {
		t.Errorf("native modules (-want +got):\n%s", diff)
	}
}
