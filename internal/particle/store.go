package particle

import "fmt"

// Handle identifies a particle inside a Store. A handle whose particle has
// been removed no longer resolves, even after its slot is reused.
type Handle struct {
	index      uint32
	generation uint32
}

// NoHandle never resolves. It is the zero value.
var NoHandle = Handle{}

func (h Handle) Valid() bool { return h.generation != 0 }

func (h Handle) String() string {
	if !h.Valid() {
		return "particle(none)"
	}
	return fmt.Sprintf("particle(%d:%d)", h.index, h.generation)
}

type slot struct {
	p          Particle
	generation uint32
	used       bool
}

// Store owns the particles of one simulation. Everything else refers to them
// through handles.
type Store struct {
	slots []slot
	free  []uint32
	count int
}

func NewStore() *Store {
	return &Store{slots: make([]slot, 0, 64)}
}

func (s *Store) Add(p Particle) Handle {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}

	sl := &s.slots[idx]
	sl.generation++
	sl.p = p
	sl.used = true
	s.count++
	return Handle{index: idx, generation: sl.generation}
}

// Get returns the particle behind h. The pointer is valid until the next
// Add or Remove on the store.
func (s *Store) Get(h Handle) (*Particle, bool) {
	if !h.Valid() || int(h.index) >= len(s.slots) {
		return nil, false
	}
	sl := &s.slots[h.index]
	if !sl.used || sl.generation != h.generation {
		return nil, false
	}
	return &sl.p, true
}

func (s *Store) Contains(h Handle) bool {
	_, ok := s.Get(h)
	return ok
}

func (s *Store) Remove(h Handle) bool {
	if _, ok := s.Get(h); !ok {
		return false
	}
	sl := &s.slots[h.index]
	sl.used = false
	sl.p = Particle{}
	s.free = append(s.free, h.index)
	s.count--
	return true
}

func (s *Store) Len() int { return s.count }

// Each visits live slots (alive or dead particles) in slot order.
func (s *Store) Each(fn func(h Handle, p *Particle)) {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.used {
			continue
		}
		fn(Handle{index: uint32(i), generation: sl.generation}, &sl.p)
	}
}

func (s *Store) Handles() []Handle {
	hs := make([]Handle, 0, s.count)
	s.Each(func(h Handle, _ *Particle) { hs = append(hs, h) })
	return hs
}

// UpdateAll calls Update on every particle in the store.
func (s *Store) UpdateAll(dT Real) {
	for i := range s.slots {
		if s.slots[i].used {
			s.slots[i].p.Update(dT)
		}
	}
}

func (s *Store) Clear() {
	for i := range s.slots {
		if s.slots[i].used {
			s.slots[i].used = false
			s.slots[i].p = Particle{}
			s.free = append(s.free, uint32(i))
		}
	}
	s.count = 0
}
