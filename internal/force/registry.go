package force

import (
	"reflect"

	"github.com/san-kum/hadron/internal/particle"
)

type registration struct {
	particle particle.Handle
	gen      Generator
}

// Registry is an ordered table of (particle, generator) pairs. It owns
// neither side: particles live in the Store, generators belong to the host.
type Registry struct {
	store   *particle.Store
	entries []registration
}

func NewRegistry(store *particle.Store) *Registry {
	return &Registry{
		store:   store,
		entries: make([]registration, 0),
	}
}

func (r *Registry) Store() *particle.Store { return r.store }

func (r *Registry) Add(h particle.Handle, g Generator) {
	if g == nil {
		return
	}
	r.entries = append(r.entries, registration{particle: h, gen: g})
}

// Remove deletes the first entry pairing h with g and reports whether one
// was found.
func (r *Registry) Remove(h particle.Handle, g Generator) bool {
	for i, e := range r.entries {
		if e.particle == h && sameGenerator(e.gen, g) {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveParticle drops every entry for h. Call it before removing the
// particle from the store.
func (r *Registry) RemoveParticle(h particle.Handle) int {
	kept := r.entries[:0]
	removed := 0
	for _, e := range r.entries {
		if e.particle == h {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = registration{}
	}
	r.entries = kept
	return removed
}

// sameGenerator compares by identity. Generators whose dynamic value is not
// comparable never match, so Remove and Count treat them as absent.
func sameGenerator(a, b Generator) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.ValueOf(a).Comparable() {
		return false
	}
	return a == b
}

func (r *Registry) Clear() {
	r.entries = r.entries[:0]
}

func (r *Registry) Len() int { return len(r.entries) }

// Count returns how many entries pair h with g.
func (r *Registry) Count(h particle.Handle, g Generator) int {
	n := 0
	for _, e := range r.entries {
		if e.particle == h && sameGenerator(e.gen, g) {
			n++
		}
	}
	return n
}

// ApplyForces runs every entry once in insertion order. Entries whose
// particle has left the store are skipped. Integration is left to the
// caller so each particle sees the sum of all its forces.
func (r *Registry) ApplyForces(dT Real) {
	for _, e := range r.entries {
		p, ok := r.store.Get(e.particle)
		if !ok {
			continue
		}
		e.gen.ApplyForce(p, dT)
	}
}

// PotentialEnergy sums the energy stored by every conservative entry.
func (r *Registry) PotentialEnergy() Real {
	var total Real
	for _, e := range r.entries {
		pot, ok := e.gen.(Potential)
		if !ok {
			continue
		}
		p, ok := r.store.Get(e.particle)
		if !ok {
			continue
		}
		total += pot.PotentialEnergy(p)
	}
	return total
}
