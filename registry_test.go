package almostover

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func TestRegisterAssignsIDs(t *testing.T) {
	r := NewRegistry(nil)
	g := NewPoint(orb.Point{1, 2})
	if g.ID() != "" {
		t.Fatalf("unregistered geometry has id %q", g.ID())
	}
	ids, err := r.Register(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != g.ID() {
		t.Fatalf("ids = %v, want [%s]", ids, g.ID())
	}
	if !strings.HasPrefix(string(g.ID()), "geom_") {
		t.Errorf("id %q lacks geom_ prefix", g.ID())
	}
	if got, ok := r.Lookup(g.ID()); !ok || got != g {
		t.Errorf("Lookup(%s) = %v, %v", g.ID(), got, ok)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := NewRegistry(nil)
	g := NewPolyline(orb.LineString{{0, 0}, {1, 1}})
	first, _ := r.Register(g)
	second, _ := r.Register(g)
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	if first[0] != second[0] {
		t.Errorf("id changed on re-registration: %s -> %s", first[0], second[0])
	}
}

func TestRegisterGroup(t *testing.T) {
	r := NewRegistry(nil)
	a := NewPoint(orb.Point{0, 0})
	b := NewPoint(orb.Point{1, 0})
	c := NewPoint(orb.Point{2, 0})
	inner := NewGroup(b, c)
	outer := NewGroup(a, inner, b) // b reached twice

	ids, err := r.Register(outer)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 {
		t.Fatalf("ids = %v, want 3 distinct", ids)
	}
	got := r.All()
	want := []*Geometry{a, b, c}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want a, b, c", got)
		}
	}

	r.Unregister(inner)
	if r.Len() != 1 || !r.Contains(a) || r.Contains(b) || r.Contains(c) {
		t.Errorf("after removing inner group: %v", r.All())
	}
}

func TestRegisterEmptyGroup(t *testing.T) {
	r := NewRegistry(nil)
	ids, err := r.Register(NewGroup())
	if err != nil || len(ids) != 0 || r.Len() != 0 {
		t.Errorf("ids=%v err=%v len=%d", ids, err, r.Len())
	}
	if _, err := r.Register(nil); err != nil {
		t.Errorf("Register(nil) = %v", err)
	}
}

func TestRegisterInvalidIsAtomic(t *testing.T) {
	tests := []struct {
		name string
		bad  *Geometry
	}{
		{"empty polyline", NewPolyline(nil)},
		{"empty polygon", NewPolygon(orb.Ring{})},
		{"NaN coordinate", NewPoint(orb.Point{math.NaN(), 0})},
		{"infinite coordinate", NewPolyline(orb.LineString{{0, 0}, {math.Inf(1), 0}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(nil)
			good := NewPoint(orb.Point{0, 0})
			_, err := r.Register(NewGroup(good, tt.bad))
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Fatalf("err = %v, want ErrInvalidGeometry", err)
			}
			if r.Len() != 0 || good.ID() != "" {
				t.Errorf("registry mutated by a failed registration: len=%d id=%q", r.Len(), good.ID())
			}
		})
	}
}

func TestRegisterCyclicGroup(t *testing.T) {
	r := NewRegistry(nil)
	gr := NewGroup(NewPoint(orb.Point{0, 0}))
	gr.Add(gr)
	_, err := r.Register(gr)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("err = %v, want ErrInvalidGeometry", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestUnregisterUnknownIsNoop(t *testing.T) {
	r := NewRegistry(nil)
	a := NewPoint(orb.Point{0, 0})
	r.Register(a)
	r.Unregister(NewPoint(orb.Point{5, 5}))
	r.Unregister(nil)
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestReRegisterKeepsID(t *testing.T) {
	r := NewRegistry(nil)
	a := NewPoint(orb.Point{0, 0})
	b := NewPoint(orb.Point{1, 0})
	r.Register(a)
	r.Register(b)
	id := a.ID()

	r.Unregister(a)
	r.Register(a)
	if a.ID() != id {
		t.Errorf("id changed: %s -> %s", id, a.ID())
	}
	// Re-registration appends: b now precedes a.
	if r.All()[0] != b || !r.less(b, a) {
		t.Errorf("order after re-registration = %v", r.All())
	}
}

func TestRegistryEachStops(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(NewGroup(NewPoint(orb.Point{0, 0}), NewPoint(orb.Point{1, 0}), NewPoint(orb.Point{2, 0})))
	var n int
	r.Each(func(*Geometry) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("visited %d, want 2", n)
	}
}

func TestRegistryKeepsIndexInSync(t *testing.T) {
	ix := NewRTreeIndex()
	r := NewRegistry(ix)
	a := NewPolyline(orb.LineString{{0, 0}, {10, 10}})
	b := NewPoint(orb.Point{50, 50})
	r.Register(NewGroup(a, b))
	r.Register(a)
	if ix.Len() != 2 {
		t.Fatalf("index Len = %d, want 2", ix.Len())
	}
	r.Unregister(a)
	if ix.Len() != 1 {
		t.Errorf("index Len after unregister = %d, want 1", ix.Len())
	}
}
