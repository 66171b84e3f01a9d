package store

import (
	"sync"

	"github.com/mindforge-ai/noesis/internal/domain"
)

// QuantumOperatorStore holds the quantum-heuristic engine's operator
// registry, keyed by operator name with registration order preserved.
type QuantumOperatorStore struct {
	mu    sync.RWMutex
	order []string
	ops   map[string]domain.QuantumOperator
}

func NewQuantumOperatorStore() *QuantumOperatorStore {
	return &QuantumOperatorStore{ops: make(map[string]domain.QuantumOperator)}
}

// Add registers an operator; a duplicate name overwrites in place.
func (s *QuantumOperatorStore) Add(op domain.QuantumOperator) error {
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

func (s *QuantumOperatorStore) Get(name string) (domain.QuantumOperator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.ops[name]
	if !ok {
		return domain.QuantumOperator{}, ErrNotFound
	}
	return op, nil
}

func (s *QuantumOperatorStore) List() []domain.QuantumOperator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.QuantumOperator, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.ops[name])
	}
	return out
}
