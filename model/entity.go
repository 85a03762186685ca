package model

import "strings"

// Field is one named field of an entity.
type Field struct {
	Name  string
	Value Value
}

// Entity is one item of a model collection.
type Entity interface {
	// Class is the object library class the entity was built with.
	Class() string
	// Get returns the named attribute.
	Get(name string) (Value, bool)
	// Fields enumerates all attributes in definition order, hidden and
	// unset ones included. The returned slice is a copy.
	Fields() []Field
	// String is the display form of the entity.
	String() string
	// Repr is the canonical identifier form of the entity.
	Repr() string
}

// Particle is an entity that can classify how its propagator line is drawn.
type Particle interface {
	Entity
	LineType() string
}

// Object is the generic entity implementation.
type Object struct {
	class  string
	fields []Field
}

func NewObject(class string) *Object {
	return &Object{class: class}
}

func (o *Object) Class() string {
	return o.class
}

func (o *Object) Get(name string) (Value, bool) {
	for i := range o.fields {
		if o.fields[i].Name == name {
			return o.fields[i].Value, true
		}
	}
	return nil, false
}

// Set assigns an attribute, keeping the position of an existing one.
func (o *Object) Set(name string, v Value) {
	for i := range o.fields {
		if o.fields[i].Name == name {
			o.fields[i].Value = v
			return
		}
	}
	o.fields = append(o.fields, Field{Name: name, Value: v})
}

func (o *Object) Fields() []Field {
	res := make([]Field, len(o.fields))
	copy(res, o.fields)
	return res
}

// String returns the name attribute.
func (o *Object) String() string {
	v, ok := o.Get("name")
	if !ok {
		return "<" + o.class + ">"
	}
	return String(v)
}

var reprReplacer = strings.NewReplacer(
	"+", "__plus__",
	"-", "__minus__",
	"@", "__at__",
	"!", "__exclam__",
	"?", "__quest__",
	"*", "__star__",
	"~", "__tilde__",
)

// Repr returns the name with the characters that cannot appear in an
// identifier spelled out, so e+ becomes e__plus__.
func (o *Object) Repr() string {
	return reprReplacer.Replace(o.String())
}

// ParticleObject is an Object built by the Particle class.
type ParticleObject struct {
	*Object
}

func NewParticle() *ParticleObject {
	return &ParticleObject{Object: NewObject("Particle")}
}

// LineType applies the default line classification from the particle's
// spin, color and self-conjugacy.
func (p *ParticleObject) LineType() string {
	spin, _ := p.intAttr("spin")
	color, _ := p.intAttr("color")
	switch spin {
	case 1:
		return "dashed"
	case 2:
		if !p.SelfConjugate() {
			return "straight"
		}
		if color == 1 {
			return "swavy"
		}
		return "scurly"
	case 3:
		if color == 1 {
			return "wavy"
		}
		return "curly"
	case 5:
		return "double"
	case -1:
		return "dotted"
	default:
		return "dashed"
	}
}

// SelfConjugate reports whether the particle is its own antiparticle.
func (p *ParticleObject) SelfConjugate() bool {
	if v, ok := p.Get("selfconjugate"); ok {
		return Truth(v)
	}
	name, _ := p.Get("name")
	anti, _ := p.Get("antiname")
	return name != nil && anti != nil && Equal(name, anti)
}

func (p *ParticleObject) intAttr(name string) (float64, bool) {
	v, ok := p.Get(name)
	if !ok {
		return 0, false
	}
	return Number(v)
}
