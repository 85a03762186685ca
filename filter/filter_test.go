package filter

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/ufoto/ir"
)

func entity(kvs ...any) *ir.Node {
	res := ir.Object()
	for i := 0; i < len(kvs); i += 2 {
		var v *ir.Node
		switch x := kvs[i+1].(type) {
		case int:
			v = ir.FromInt(int64(x))
		case string:
			v = ir.FromString(x)
		case bool:
			v = ir.FromBool(x)
		}
		res.Add(ir.FromString(kvs[i].(string)), v)
	}
	return res
}

func TestKeep(t *testing.T) {
	electron := entity("name", "e-", "spin", 2, "LeptonNumber", 1)
	photon := entity("name", "a", "spin", 3, "selfconjugate", true)
	tests := []struct {
		src        string
		collection string
		e          *ir.Node
		want       bool
	}{
		{`spin == 2`, "all_particles", electron, true},
		{`spin == 2`, "all_particles", photon, false},
		{`collection != "all_particles" || spin == 2`, "all_lorentz", photon, true},
		{`has("LeptonNumber")`, "all_particles", electron, true},
		{`has("LeptonNumber")`, "all_particles", photon, false},
		{`LeptonNumber == nil`, "all_particles", photon, true},
		{`selfconjugate ?? false`, "all_particles", electron, false},
		{`entity.name startsWith "e"`, "all_particles", electron, true},
		{`name in ["a", "Z"]`, "all_particles", photon, true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := Compile(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			got, err := f.Keep(tt.collection, 0, tt.e)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	if _, err := Compile(`spin ==`); !errors.Is(err, ErrFilter) {
		t.Errorf("compile: got %v", err)
	}
	f, err := Compile(`name`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Keep("all_particles", 3, entity("name", "e-"))
	if !errors.Is(err, ErrFilter) {
		t.Errorf("non bool: got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "all_particles[3] (e-)") {
		t.Errorf("error does not name the entity: %v", err)
	}
	g, err := Compile(`spin > 1`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.Keep("all_lorentz", 1, entity("name", "FFV1", "spin", "x"))
	if !errors.Is(err, ErrFilter) || !strings.Contains(err.Error(), "all_lorentz[1] (FFV1)") {
		t.Errorf("run error: got %v", err)
	}
	if f.String() != "name" {
		t.Errorf("String() = %q", f.String())
	}
}
