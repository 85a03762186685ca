package eval

import (
	"slices"

	"github.com/signadot/ufoto/model"
)

// Registries names the object library's global collections in the order
// the model exposes them.
var Registries = []string{
	"all_particles",
	"all_vertices",
	"all_couplings",
	"all_lorentz",
	"all_parameters",
	"all_orders",
	"all_functions",
	"all_propagators",
	"all_decays",
	"all_form_factors",
	"all_CTvertices",
	"all_CTparameters",
}

var particleArgs = []string{
	"pdg_code", "name", "antiname", "spin", "color", "mass", "width",
	"texname", "antitexname", "charge",
}

// particleArgsAll are the particle attributes anti() passes explicitly;
// every other attribute is negated into the antiparticle's options.
var particleArgsAll = append(append([]string(nil), particleArgs...),
	"line", "propagating", "goldstoneboson", "propagator", "counterterm")

// class is one object library class. Generic classes set every bound
// parameter as an attribute in signature order followed by the keyword
// options.
type class struct {
	name     string
	registry string
	sig      *Signature
	// rename maps parameter names to attribute names.
	rename map[string]string
	// after runs once the entity is built and registered.
	after func(lib *library, o *model.Object, vals []model.Value) error
}

var classes = []*class{
	{
		name:     "Parameter",
		registry: "all_parameters",
		sig: &Signature{Params: append(params("name", "nature", "type", "value", "texname"),
			Param{"lhablock", model.None{}}, Param{"lhacode", model.None{}})},
		after: checkLHA,
	},
	{
		name:     "CTParameter",
		registry: "all_CTparameters",
		sig:      &Signature{Params: params("name", "type", "value", "texname")},
	},
	{
		name:     "Vertex",
		registry: "all_vertices",
		sig:      &Signature{Params: params("name", "particles", "color", "lorentz", "couplings"), Kwargs: true},
	},
	{
		name:     "CTVertex",
		registry: "all_CTvertices",
		sig: &Signature{
			Params: params("name", "particles", "color", "lorentz", "couplings", "type", "loop_particles"),
			Kwargs: true,
		},
	},
	{
		name:     "Coupling",
		registry: "all_couplings",
		sig:      &Signature{Params: params("name", "value", "order"), Kwargs: true},
	},
	{
		name:     "Lorentz",
		registry: "all_lorentz",
		sig:      &Signature{Params: append(params("name", "spins"), Param{"structure", model.Str("external")}), Kwargs: true},
	},
	{
		name:     "Function",
		registry: "all_functions",
		sig:      &Signature{Params: params("name", "arguments", "expression")},
		rename:   map[string]string{"expression": "expr"},
	},
	{
		name:     "CouplingOrder",
		registry: "all_orders",
		sig: &Signature{Params: append(params("name", "expansion_order", "hierarchy"),
			Param{"perturbative_expansion", model.Int(0)})},
	},
	{
		name:     "Decay",
		registry: "all_decays",
		sig:      &Signature{Params: params("particle", "partial_widths"), Kwargs: true},
		after:    attachWidths,
	},
	{
		name:     "FormFactor",
		registry: "all_form_factors",
		sig:      &Signature{Params: params("name", "type", "value"), Kwargs: true},
	},
	{
		name:     "Propagator",
		registry: "all_propagators",
		sig:      &Signature{Params: append(params("name", "numerator"), Param{"denominator", model.None{}}), Kwargs: true},
	},
}

var particleSig = &Signature{
	Params: append(params(particleArgs...),
		Param{"line", model.None{}},
		Param{"propagating", model.Bool(true)},
		Param{"goldstoneboson", model.Bool(false)},
		Param{"propagator", model.None{}},
		Param{"counterterm", model.None{}},
	),
	Kwargs: true,
}

// library is the state of one object_library instance.
type library struct {
	regs map[string]*model.List
}

type objectLibrary struct{}

func (objectLibrary) Name() string {
	return "object_library"
}

func (objectLibrary) Instance(in *Interp) model.Value {
	lib := &library{regs: map[string]*model.List{}}
	in.lib = lib
	ns := model.NewNamespace("object_library")
	ns.Bind("__name__", model.Str("object_library"))
	for _, name := range Registries {
		l := model.NewList()
		lib.regs[name] = l
		ns.Bind(name, l)
	}
	ns.Bind("Particle", model.Opaque{Type: "type", V: &Func{Name: "Particle", Sig: particleSig, Fn: lib.newParticle}})
	for _, c := range classes {
		ns.Bind(c.name, model.Opaque{Type: "type", V: &Func{Name: c.name, Sig: c.sig, Fn: lib.constructor(c)}})
	}
	return model.Module{Namespace: ns}
}

func (lib *library) register(registry string, e model.Entity) {
	l := lib.regs[registry]
	l.Items = append(l.Items, model.Ref{Entity: e})
}

func (lib *library) constructor(c *class) func(*Interp, []model.Value, []model.Field) (model.Value, error) {
	return func(_ *Interp, vals []model.Value, opts []model.Field) (model.Value, error) {
		o := model.NewObject(c.name)
		for i, p := range c.sig.Params {
			name := p.Name
			if r, ok := c.rename[name]; ok {
				name = r
			}
			o.Set(name, vals[i])
		}
		for _, f := range opts {
			o.Set(f.Name, f.Value)
		}
		lib.register(c.registry, o)
		if c.after != nil {
			if err := c.after(lib, o, vals); err != nil {
				return nil, err
			}
		}
		return model.Ref{Entity: o}, nil
	}
}

func checkLHA(_ *library, _ *model.Object, vals []model.Value) error {
	name, nature, block, code := vals[0], vals[1], vals[5], vals[6]
	_, noBlock := block.(model.None)
	_, noCode := code.(model.None)
	if (noBlock || noCode) && model.Equal(nature, model.Str("external")) {
		return raise(nil, "Exception", "Need LHA information for external parameter \"%s\".", model.String(name))
	}
	return nil
}

func attachWidths(_ *library, _ *model.Object, vals []model.Value) error {
	return setAttr(vals[0], "partial_widths", vals[1])
}

func (lib *library) newParticle(in *Interp, vals []model.Value, opts []model.Field) (model.Value, error) {
	p := model.NewParticle()
	for i, name := range particleArgs {
		v := vals[i]
		if name == "charge" {
			f, err := toFloat(in, []model.Value{v}, nil)
			if err != nil {
				return nil, err
			}
			v = f
		}
		p.Set(name, v)
	}
	for _, f := range opts {
		p.Set(f.Name, f.Value)
	}
	lib.register("all_particles", p)
	line, propagating, goldstone, propagator, counterterm := vals[10], vals[11], vals[12], vals[13], vals[14]
	p.Set("propagating", propagating)
	p.Set("goldstoneboson", goldstone)
	p.Set("selfconjugate", model.Bool(model.Equal(vals[1], vals[2])))
	if model.Truth(line) {
		p.Set("line", line)
	} else {
		p.Set("line", model.Str(p.LineType()))
	}
	if model.Truth(propagator) {
		if _, ok := propagator.(*model.Dict); !ok {
			d := &model.Dict{}
			d.Set(model.Int(0), propagator)
			d.Set(model.Int(1), propagator)
			propagator = d
		}
		p.Set("propagator", propagator)
	}
	// NLO object libraries only.
	if _, ok := counterterm.(model.None); !ok {
		p.Set("counterterm", counterterm)
	}
	return model.Ref{Entity: p}, nil
}

// anti builds the antiparticle of p.
func (lib *library) anti(in *Interp, p *model.ParticleObject) (model.Value, error) {
	if p.SelfConjugate() {
		return nil, raise(nil, "Exception", "%s has no anti particle.", p.String())
	}
	var opts []model.Field
	for _, f := range p.Fields() {
		if slices.Contains(particleArgsAll, f.Name) {
			continue
		}
		v, err := unop("-", f.Value)
		if err != nil {
			return nil, err
		}
		opts = append(opts, model.Field{Name: f.Name, Value: v})
	}
	get := func(name string) model.Value {
		v, ok := p.Get(name)
		if !ok {
			return model.None{}
		}
		return v
	}
	neg := func(name string) (model.Value, error) {
		return unop("-", get(name))
	}
	pdg, err := neg("pdg_code")
	if err != nil {
		return nil, err
	}
	charge, err := neg("charge")
	if err != nil {
		return nil, err
	}
	color := get("color")
	if !model.Equal(color, model.Int(1)) && !model.Equal(color, model.Int(8)) {
		if color, err = unop("-", color); err != nil {
			return nil, err
		}
	}
	vals := []model.Value{
		pdg, get("antiname"), get("name"), get("spin"), color, get("mass"),
		get("width"), get("antitexname"), get("texname"), charge,
		get("line"), get("propagating"), get("goldstoneboson"), model.None{}, model.None{},
	}
	return lib.newParticle(in, vals, opts)
}

// entityMethod returns the bound method name of entity e, if it has one.
func (in *Interp) entityMethod(e model.Entity, name string) (model.Value, bool) {
	switch name {
	case "get":
		return method(e.Class()+".get", &Signature{Params: params("name")},
			func(_ *Interp, vals []model.Value, _ []model.Field) (model.Value, error) {
				n, ok := vals[0].(model.Str)
				if !ok {
					return nil, raise(nil, "TypeError", "attribute name must be string, not '%s'", typeName(vals[0]))
				}
				if v, ok := e.Get(string(n)); ok {
					return v, nil
				}
				return nil, raise(nil, "AttributeError", "'%s' object has no attribute '%s'", e.Class(), n)
			}), true
	case "set":
		return method(e.Class()+".set", &Signature{Params: params("name", "value")},
			func(_ *Interp, vals []model.Value, _ []model.Field) (model.Value, error) {
				n, ok := vals[0].(model.Str)
				if !ok {
					return nil, raise(nil, "TypeError", "attribute name must be string, not '%s'", typeName(vals[0]))
				}
				return model.None{}, setAttr(model.Ref{Entity: e}, string(n), vals[1])
			}), true
	}
	p, ok := e.(*model.ParticleObject)
	if !ok {
		return nil, false
	}
	switch name {
	case "anti":
		lib := in.library()
		return method("Particle.anti", &Signature{}, func(in *Interp, _ []model.Value, _ []model.Field) (model.Value, error) {
			return lib.anti(in, p)
		}), true
	case "find_line_type":
		return method("Particle.find_line_type", &Signature{}, func(*Interp, []model.Value, []model.Field) (model.Value, error) {
			return model.Str(p.LineType()), nil
		}), true
	}
	return nil, false
}

// library returns the interpreter's object library state, instantiating
// the module when no source imported it yet.
func (in *Interp) library() *library {
	if in.lib == nil {
		in.importModule("object_library", nil)
	}
	return in.lib
}
