package species

import (
	"errors"
	"testing"
)

func mustNew(t *testing.T, name string, mol, h, cp float64) *Species {
	t.Helper()
	sp, err := New(name, mol, h, cp)
	if err != nil {
		t.Fatalf("new %s: %v", name, err)
	}
	return sp
}

func testSet(t *testing.T) *Set {
	t.Helper()
	s := NewSet()
	adds := []struct {
		key string
		g   Group
		sp  *Species
	}{
		{"fuel", Reactant, mustNew(t, "octane", 1, -208700, 431.37)},
		{"o2", Reactant, mustNew(t, "oxygen", 12.5, 0, 34.936)},
		{"co2", Product, mustNew(t, "carbon dioxide", 8, -393546, 54.36)},
		{"h2o", Product, mustNew(t, "water", 9, -241845, 41.315)},
	}
	for _, a := range adds {
		if err := s.Add(a.key, a.g, a.sp); err != nil {
			t.Fatalf("add %s: %v", a.key, err)
		}
	}
	return s
}

func TestSetViews(t *testing.T) {
	s := testSet(t)

	if s.Len() != 4 {
		t.Fatalf("expected 4 species, got %d", s.Len())
	}

	keys := s.Keys()
	want := []string{"fuel", "o2", "co2", "h2o"}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %s, want %s", i, keys[i], want[i])
		}
	}

	if n := len(s.Group(Reactant)); n != 2 {
		t.Errorf("expected 2 reactants, got %d", n)
	}
	if n := len(s.Group(Product)); n != 2 {
		t.Errorf("expected 2 products, got %d", n)
	}

	if g, ok := s.GroupOf("co2"); !ok || g != Product {
		t.Errorf("GroupOf(co2) = %v, %v", g, ok)
	}
	if _, ok := s.GroupOf("missing"); ok {
		t.Error("expected missing key to report !ok")
	}
	if s.Get("missing") != nil {
		t.Error("expected nil for missing key")
	}
}

func TestSetLiveMutation(t *testing.T) {
	s := testSet(t)

	s.Get("fuel").MolConc = 0.5

	for _, sp := range s.Group(Reactant) {
		if sp.Name == "octane" && sp.MolConc != 0.5 {
			t.Errorf("group view did not see mutation: %v", sp.MolConc)
		}
	}
	if s.All()[0].MolConc != 0.5 {
		t.Error("combined view did not see mutation")
	}
}

func TestSetMolSum(t *testing.T) {
	s := testSet(t)

	if got := s.MolSum(Reactant); got != 13.5 {
		t.Errorf("reactant sum = %v, want 13.5", got)
	}
	if got := s.MolSum(Product); got != 17 {
		t.Errorf("product sum = %v, want 17", got)
	}
}

func TestSetAddDuplicate(t *testing.T) {
	s := testSet(t)

	err := s.Add("fuel", Product, mustNew(t, "octane", 1, 0, 1))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}

	if err := s.Add("nil", Product, nil); !errors.Is(err, ErrInvalidSpecies) {
		t.Errorf("expected ErrInvalidSpecies for nil record, got %v", err)
	}
}

func TestGroupString(t *testing.T) {
	if Reactant.String() != "reactant" || Product.String() != "product" {
		t.Errorf("unexpected group names %s %s", Reactant, Product)
	}
	if Group(7).String() != "unknown" {
		t.Error("expected unknown for out of range group")
	}
}
