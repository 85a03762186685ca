package marshal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/ufoto/ir"
	"github.com/signadot/ufoto/model"
)

func object(class string, fields ...model.Field) *model.Object {
	o := model.NewObject(class)
	for _, f := range fields {
		o.Set(f.Name, f.Value)
	}
	return o
}

func field(name string, v model.Value) model.Field {
	return model.Field{Name: name, Value: v}
}

// twin is a particle whose slug is independent of its name.
type twin struct {
	*model.ParticleObject
	slug string
}

func (p twin) Repr() string { return p.slug }

func namespace(binds ...model.Field) *model.Namespace {
	ns := model.NewNamespace("test_UFO")
	for _, b := range binds {
		ns.Bind(b.Name, b.Value)
	}
	return ns
}

func refs(es ...model.Entity) *model.List {
	l := model.NewList()
	for _, e := range es {
		l.Items = append(l.Items, model.Ref{Entity: e})
	}
	return l
}

func toAny(t *testing.T, n *ir.Node, err error) any {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return n.ToAny()
}

func TestDefault(t *testing.T) {
	e := object("Coupling",
		field("name", model.Str("a")),
		field("_hidden", model.Int(1)),
		field("extra", model.None{}),
		field("weight", model.Int(3)),
	)
	n, err := Default(e)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"name", "weight"}, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	want := map[string]any{"name": "a", "weight": int64(3)}
	if diff := cmp.Diff(want, n.ToAny()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(e.Fields()) != 4 {
		t.Errorf("entity mutated")
	}
}

func TestDefaultValues(t *testing.T) {
	zero := object("Parameter", field("name", model.Str("ZERO")))
	d := &model.Dict{}
	d.Set(model.NewTuple(model.Int(0), model.Int(1)), model.Str("GC_1"))
	d.Set(model.Int(2), model.Float(0.5))
	e := object("Vertex",
		field("name", model.Str("V_1")),
		field("particles", model.NewList(model.Ref{Entity: zero}, model.Bool(true))),
		field("couplings", d),
		field("color", model.NewTuple(model.Str("1"))),
	)
	n, err := Default(e)
	if err != nil {
		t.Fatal(err)
	}
	couplings := ir.Get(n, "couplings")
	if diff := cmp.Diff([]string{"(0,1)", "2"}, couplings.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if couplings.Fields[0].Type != ir.ArrayType || couplings.Fields[1].Type != ir.NumberType {
		t.Errorf("key types %v %v", couplings.Fields[0].Type, couplings.Fields[1].Type)
	}
	want := []any{"ZERO", true}
	if diff := cmp.Diff(want, ir.Get(n, "particles").ToAny()); diff != "" {
		t.Errorf("particles (-want +got):\n%s", diff)
	}

	n, err = Default(e, JoinKeys())
	if err != nil {
		t.Fatal(err)
	}
	couplings = ir.Get(n, "couplings")
	if couplings.Fields[0].Type != ir.StringType || couplings.Fields[0].String != "0,1" {
		t.Errorf("joined key %v %q", couplings.Fields[0].Type, couplings.Fields[0].String)
	}
	if couplings.Fields[1].Type != ir.NumberType {
		t.Errorf("scalar key changed to %v", couplings.Fields[1].Type)
	}
}

func TestOpaqueValue(t *testing.T) {
	n := Value(model.Opaque{Type: "function"})
	if n.Type != ir.OpaqueType || n.String != "<function>" {
		t.Errorf("got %v %q", n.Type, n.String)
	}
}

func TestOrder(t *testing.T) {
	e := object("CouplingOrder",
		field("name", model.Str("QCD")),
		field("expansion_order", model.Int(99)),
		field("hierarchy", model.Int(1)),
		field("perturbative_expansion", model.None{}),
		field("extra", model.Int(7)),
	)
	n, err := Order(e)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orderAttrs, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	want := map[string]any{"name": "QCD", "expansion_order": int64(99), "hierarchy": int64(1), "perturbative_expansion": nil}
	if diff := cmp.Diff(want, n.ToAny()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	_, err = Order(object("CouplingOrder", field("name", model.Str("QED"))))
	if !errors.Is(err, ErrMissingAttr) {
		t.Errorf("got %v, want ErrMissingAttr", err)
	}
}

func TestFunction(t *testing.T) {
	e := object("Function",
		field("name", model.Str("complexconjugate")),
		field("arguments", model.NewTuple(model.Str("z"))),
		field("expr", model.Str("z.conjugate()")),
	)
	n, err := Function(e)
	got := toAny(t, n, err)
	want := map[string]any{"name": "complexconjugate", "arguments": []any{"z"}, "expr": "z.conjugate()"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func newParticle(name, anti string, spin int) *model.ParticleObject {
	p := model.NewParticle()
	p.Set("name", model.Str(name))
	p.Set("antiname", model.Str(anti))
	p.Set("spin", model.Int(spin))
	p.Set("color", model.Int(1))
	p.Set("line", model.Str("straight"))
	return p
}

func TestParticle(t *testing.T) {
	a := twin{ParticleObject: newParticle("chi", "chi~", 2), slug: "chi"}
	b := twin{ParticleObject: newParticle("chi", "chi~", 2), slug: "chi__bar__"}
	na, err := Particle(a)
	if err != nil {
		t.Fatal(err)
	}
	nb, err := Particle(b)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Get(na, "name").String != ir.Get(nb, "name").String {
		t.Errorf("names differ")
	}
	if ir.Get(na, "slug").String == ir.Get(nb, "slug").String {
		t.Errorf("slugs equal")
	}
	want := []string{"name", "antiname", "spin", "color", "line", "slug", "line_type"}
	if diff := cmp.Diff(want, na.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}

	p := newParticle("e-", "e+", 2)
	n, err := Particle(p)
	if err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(n, "slug").String; got != "e__minus__" {
		t.Errorf("slug %q", got)
	}
	if got := ir.Get(n, "line_type").String; got != "straight" {
		t.Errorf("line_type %q", got)
	}

	if _, err := Particle(object("Vertex")); !errors.Is(err, ErrNotParticle) {
		t.Errorf("got %v, want ErrNotParticle", err)
	}
}

func TestList(t *testing.T) {
	es := []model.Entity{
		object("Lorentz", field("name", model.Str("FFV1"))),
		object("Lorentz", field("name", model.Str("VVV1"))),
	}
	n, err := List(es, Default)
	if err != nil {
		t.Fatal(err)
	}
	want := []any{map[string]any{"name": "FFV1"}, map[string]any{"name": "VVV1"}}
	if diff := cmp.Diff(want, n.ToAny()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if es[0].String() != "FFV1" {
		t.Errorf("input changed")
	}
}

func TestModelCollections(t *testing.T) {
	ns := namespace(
		field("all_particles", model.NewList()),
		field("all_vertices", model.None{}),
		field("unrelated", model.Int(1)),
	)
	n, err := Model(ns)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"author", "date", "version", "all_particles"}, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if got := ir.Get(n, "all_particles"); got.Type != ir.ArrayType || len(got.Values) != 0 {
		t.Errorf("all_particles = %v", got.ToAny())
	}
	if ir.Get(n, "all_decays") != nil {
		t.Errorf("all_decays present")
	}
}

func TestModelEndToEnd(t *testing.T) {
	qcd := object("CouplingOrder",
		field("name", model.Str("QCD")),
		field("expansion_order", model.Int(99)),
		field("hierarchy", model.Int(1)),
		field("perturbative_expansion", model.Int(0)),
	)
	ns := namespace(
		field("__author__", model.Str("X")),
		field("__version__", model.Str("1.0")),
		field("all_orders", refs(qcd)),
	)
	n, err := Model(ns)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"author":  "X",
		"date":    "",
		"version": "1.0",
		"all_orders": []any{map[string]any{
			"name":                   "QCD",
			"expansion_order":        int64(99),
			"hierarchy":              int64(1),
			"perturbative_expansion": int64(0),
		}},
	}
	if diff := cmp.Diff(want, n.ToAny()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"author", "date", "version", "all_orders"}, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestModelErrors(t *testing.T) {
	tests := []struct {
		name string
		ns   *model.Namespace
		want error
	}{
		{
			name: "not a list",
			ns:   namespace(field("all_lorentz", model.Str("FFV1"))),
			want: ErrNotCollection,
		},
		{
			name: "not entities",
			ns:   namespace(field("all_lorentz", model.NewList(model.Int(1)))),
			want: ErrNotCollection,
		},
		{
			name: "order without hierarchy",
			ns:   namespace(field("all_orders", refs(object("CouplingOrder", field("name", model.Str("QED")))))),
			want: ErrMissingAttr,
		},
		{
			name: "particle collection of objects",
			ns:   namespace(field("all_particles", refs(object("Vertex")))),
			want: ErrNotParticle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Model(tt.ns)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestModelFilter(t *testing.T) {
	ns := namespace(
		field("__date__", model.Str("today")),
		field("all_lorentz", refs(
			object("Lorentz", field("name", model.Str("FFV1"))),
			object("Lorentz", field("name", model.Str("VVV1"))),
		)),
	)
	var seen []string
	keepFFV := func(coll string, i int, e *ir.Node) (bool, error) {
		seen = append(seen, fmt.Sprintf("%s[%d]", coll, i))
		return ir.Get(e, "name").String == "FFV1", nil
	}
	n, err := Model(ns, WithFilter(keepFFV))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"author":      "",
		"date":        "today",
		"version":     "",
		"all_lorentz": []any{map[string]any{"name": "FFV1"}},
	}
	if diff := cmp.Diff(want, n.ToAny()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"all_lorentz[0]", "all_lorentz[1]"}, seen); diff != "" {
		t.Errorf("filter calls (-want +got):\n%s", diff)
	}

	boom := errors.New("boom")
	_, err = Model(ns, WithFilter(func(string, int, *ir.Node) (bool, error) { return false, boom }))
	if !errors.Is(err, boom) {
		t.Errorf("got %v", err)
	}
}

func TestKinds(t *testing.T) {
	got := map[string]string{}
	for _, c := range Collections {
		got[c.Key] = c.Kind.String()
	}
	want := map[string]string{
		"all_particles": "particle", "all_vertices": "default", "all_couplings": "default",
		"all_lorentz": "default", "all_parameters": "default", "all_orders": "order",
		"all_functions": "function", "all_propagators": "default", "all_decays": "default",
		"all_form_factors": "default", "all_CTvertices": "default", "all_CTparameters": "default",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
