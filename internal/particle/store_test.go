package particle

import (
	"testing"

	"github.com/san-kum/hadron/internal/vecmath"
)

func TestStore_AddGet(t *testing.T) {
	s := NewStore()
	p := New()
	p.SetPositionXYZ(1, 2, 3)

	h := s.Add(p)
	if !h.Valid() {
		t.Fatal("expected valid handle")
	}

	got, ok := s.Get(h)
	if !ok {
		t.Fatal("handle did not resolve")
	}
	if got.Position() != vecmath.V(1, 2, 3) {
		t.Errorf("position = %v", got.Position())
	}

	got.SetX(10)
	again, _ := s.Get(h)
	if again.X() != 10 {
		t.Error("Get should return the stored particle, not a copy")
	}

	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStore_NoHandle(t *testing.T) {
	s := NewStore()
	s.Add(New())

	if _, ok := s.Get(NoHandle); ok {
		t.Error("NoHandle must not resolve")
	}
	if NoHandle.Valid() {
		t.Error("NoHandle reported valid")
	}
}

func TestStore_StaleHandleAfterReuse(t *testing.T) {
	s := NewStore()
	a := s.Add(New())

	if !s.Remove(a) {
		t.Fatal("remove failed")
	}
	if s.Remove(a) {
		t.Error("second remove should report false")
	}

	b := s.Add(New())
	if b.index != a.index {
		t.Fatalf("expected slot reuse, got %v and %v", a, b)
	}
	if _, ok := s.Get(a); ok {
		t.Error("stale handle resolved to the reused slot")
	}
	if _, ok := s.Get(b); !ok {
		t.Error("new handle did not resolve")
	}
}

func TestStore_EachAndUpdateAll(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		p := New()
		p.SetAcceleration(vecmath.Zero)
		p.SetDamping(1)
		p.SetVelocityXYZ(1, 0, 0)
		p.SetAlive(i != 1)
		s.Add(p)
	}

	s.UpdateAll(1)

	moved := 0
	s.Each(func(h Handle, p *Particle) {
		if p.X() == 1 {
			moved++
		}
	})
	if moved != 2 {
		t.Errorf("expected 2 live particles to move, got %d", moved)
	}

	if hs := s.Handles(); len(hs) != 3 {
		t.Errorf("Handles() len = %d, want 3", len(hs))
	}

	s.Clear()
	if s.Len() != 0 || len(s.Handles()) != 0 {
		t.Error("Clear left particles behind")
	}
}
