package rb2d

import (
	"testing"

	"github.com/solidphys/rb2d/math/lin"
)

func TestCanCollideRequiresMutualMaskMatch(t *testing.T) {
	cases := []struct {
		name                               string
		aCategory, aFilter, bCategory, bFilter uint16
		want                               bool
	}{
		{"defaults collide with everything", 0x0001, 0xFFFF, 0x0001, 0xFFFF, true},
		{"disjoint categories reject both ways", 0x0001, 0x0002, 0x0004, 0xFFFF, false},
		{"one-directional mismatch still rejects", 0x0001, 0xFFFF, 0x0004, 0x0002, false},
		{"matching custom categories collide", 0x0002, 0x0002, 0x0002, 0x0002, true},
	}
	for _, c := range cases {
		got := canCollide(c.aCategory, c.aFilter, c.bCategory, c.bFilter)
		if got != c.want {
			t.Errorf("%s: canCollide(%#x,%#x,%#x,%#x) = %v, want %v",
				c.name, c.aCategory, c.aFilter, c.bCategory, c.bFilter, got, c.want)
		}
	}
}

func TestAddColliderDefaultsToUniversalCategoryAndFilter(t *testing.T) {
	w := newTestWorld()
	b := w.CreateBody(Dynamic, lin.TIdent())
	c := b.AddCollider(NewCircleShape(1), lin.TIdent())

	if c.Category() != defaultCategory {
		t.Errorf("expected default category %#x, got %#x", defaultCategory, c.Category())
	}
	if c.Filter() != defaultFilter {
		t.Errorf("expected default filter %#x, got %#x", defaultFilter, c.Filter())
	}
}

func TestSetMaterialDoesNotAutoRecomputeMass(t *testing.T) {
	w := newTestWorld()
	b := w.CreateBody(Dynamic, lin.TIdent())
	c := b.AddCollider(NewCircleShape(1), lin.TIdent())
	b.SetMassPropertiesUsingColliders()
	massBefore := b.Mass()

	c.SetMaterial(Material{Density: 100, Friction: 0.1, Restitution: 0.1})

	if b.Mass() != massBefore {
		t.Errorf("expected mass to stay %v until SetMassPropertiesUsingColliders is called again, got %v", massBefore, b.Mass())
	}
}
