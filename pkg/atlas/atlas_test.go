package atlas

import (
	"strings"
	"testing"

	"github.com/cverad/connectome/pkg/errors"
)

func TestBuiltinDK(t *testing.T) {
	a, err := Builtin("dk")
	if err != nil {
		t.Fatalf("Builtin(dk): %v", err)
	}
	if a.Len() != 18 {
		t.Errorf("Len() = %d, want 18", a.Len())
	}
	r, ok := a.Lookup("lPCUN")
	if !ok {
		t.Fatal("Lookup(lPCUN) not found")
	}
	if r.Lobe != "Parietal" || r.Hemi != "L" {
		t.Errorf("lPCUN = %+v, want Parietal/L", r)
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("brodmann")
	if !errors.Is(err, errors.ErrCodeAtlasNotFound) {
		t.Errorf("err = %v, want ATLAS_NOT_FOUND", err)
	}
}

func TestColumnsCapabilityQuery(t *testing.T) {
	dk, _ := Builtin("dk")
	if dk.HasColumn(ColNet) {
		t.Error("dk should not carry a network column")
	}
	for _, col := range []string{ColLobe, ColHemi, ColClass, ColGyrus} {
		if !dk.HasColumn(col) {
			t.Errorf("dk missing column %q", col)
		}
	}

	dos, _ := Builtin("dosenbach160")
	for _, col := range []string{ColNet, ColYeo7, ColYeo17} {
		if !dos.HasColumn(col) {
			t.Errorf("dosenbach160 missing column %q", col)
		}
	}
	if dos.HasColumn(ColClass) {
		t.Error("dosenbach160 should not carry a class column")
	}
}

func TestMembershipPreservesCallerOrder(t *testing.T) {
	a, _ := Builtin("dk")
	names := []string{"lSTG", "lSFG", "rSFG", "rSTG"}

	m, err := a.Membership(ColLobe, names)
	if err != nil {
		t.Fatalf("Membership: %v", err)
	}
	// First-encountered lobe (Temporal) gets id 1, then Frontal = 2.
	want := []int{1, 2, 2, 1}
	for i := range want {
		if m[i] != want[i] {
			t.Errorf("m[%d] = %d, want %d (m=%v)", i, m[i], want[i], m)
		}
	}
}

func TestMembershipUnknownRegion(t *testing.T) {
	a, _ := Builtin("dk")
	_, err := a.Membership(ColLobe, []string{"lSFG", "nope"})
	if !errors.Is(err, errors.ErrCodeRegionNotFound) {
		t.Errorf("err = %v, want REGION_NOT_FOUND", err)
	}
}

func TestMembershipMissingColumn(t *testing.T) {
	a, _ := Builtin("dk")
	_, err := a.Membership(ColYeo7, []string{"lSFG"})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestCoordinates(t *testing.T) {
	a, _ := Builtin("dk")
	x, y, z, err := a.Coordinates([]string{"lSFG", "rSFG"})
	if err != nil {
		t.Fatalf("Coordinates: %v", err)
	}
	if x[0] >= 0 || x[1] <= 0 {
		t.Errorf("x = %v, want left negative / right positive", x)
	}
	if len(y) != 2 || len(z) != 2 {
		t.Errorf("len(y)=%d len(z)=%d, want 2", len(y), len(z))
	}
}

func TestReadJSON(t *testing.T) {
	src := `{
	  "name": "toy",
	  "regions": [
	    {"name": "a", "lobe": "Frontal", "hemi": "L", "x": -1, "y": 2, "z": 3},
	    {"name": "b", "lobe": "Frontal", "hemi": "R", "x": 1, "y": 2, "z": 3}
	  ]
	}`
	a, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if a.Name() != "toy" || a.Len() != 2 {
		t.Errorf("got %s/%d, want toy/2", a.Name(), a.Len())
	}
	if a.HasColumn(ColClass) {
		t.Error("toy atlas should not report class column")
	}
}

func TestReadDuplicateRegion(t *testing.T) {
	src := `{"name":"dup","regions":[{"name":"a"},{"name":"a"}]}`
	if _, err := Read(strings.NewReader(src)); err == nil {
		t.Fatal("Read accepted duplicate region names")
	}
}
