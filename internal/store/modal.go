package store

import (
	"sync"

	"github.com/mindforge-ai/noesis/internal/domain"
)

// ModalOperatorStore holds the modal engine's operator registry, keyed by
// operator name with registration order preserved.
type ModalOperatorStore struct {
	mu    sync.RWMutex
	order []string
	ops   map[string]domain.ModalOperator
}

func NewModalOperatorStore() *ModalOperatorStore {
	return &ModalOperatorStore{ops: make(map[string]domain.ModalOperator)}
}

// Add registers an operator; a duplicate name overwrites in place.
func (s *ModalOperatorStore) Add(op domain.ModalOperator) error {
	if op.Name == "" {
		return ErrMissingName
	}
	op.Strength = domain.Clamp01(op.Strength)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ops[op.Name]; !exists {
		s.order = append(s.order, op.Name)
	}
	s.ops[op.Name] = op
	return nil
}

func (s *ModalOperatorStore) Get(name string) (domain.ModalOperator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.ops[name]
	if !ok {
		return domain.ModalOperator{}, ErrNotFound
	}
	return op, nil
}

func (s *ModalOperatorStore) List() []domain.ModalOperator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ModalOperator, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.ops[name])
	}
	return out
}

// ModalWorldStore holds administratively registered worlds that are merged
// into every possible-worlds graph the modal engine builds.
type ModalWorldStore struct {
	mu     sync.RWMutex
	order  []string
	worlds map[string]domain.ModalWorld
}

func NewModalWorldStore() *ModalWorldStore {
	return &ModalWorldStore{worlds: make(map[string]domain.ModalWorld)}
}

// Add registers a world. Accessibility keys and AccessibleFrom entries must
// reference worlds already registered, or the world itself; a dangling edge
// is rejected rather than silently kept.
func (s *ModalWorldStore) Add(w domain.ModalWorld) error {
	if w.ID == "" {
		return ErrMissingID
	}
	if w.Name == "" {
		return ErrMissingName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for target := range w.Accessibility {
		if target != w.ID {
			if _, ok := s.worlds[target]; !ok {
				return ErrDanglingWorld
			}
		}
		w.Accessibility[target] = domain.Clamp01(w.Accessibility[target])
	}
	for _, from := range w.AccessibleFrom {
		if from == w.ID {
			continue
		}
		if _, ok := s.worlds[from]; !ok {
			return ErrDanglingWorld
		}
	}

	if _, exists := s.worlds[w.ID]; !exists {
		s.order = append(s.order, w.ID)
	}
	s.worlds[w.ID] = w
	return nil
}

func (s *ModalWorldStore) List() []domain.ModalWorld {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ModalWorld, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.worlds[id])
	}
	return out
}
