package store

import (
	"sync"

	"github.com/mindforge-ai/noesis/internal/domain"
)

// RuleStore is the in-memory registry of inference rules for one logic
// engine. It is written at seed time and through administrative Add calls;
// steady-state reasoning only reads it. Registration order is preserved so
// rule application stays deterministic.
type RuleStore struct {
	mu     sync.RWMutex
	order  []string
	rules  map[string]domain.InferenceRule
	axioms []domain.Axiom
}

func NewRuleStore() *RuleStore {
	return &RuleStore{rules: make(map[string]domain.InferenceRule)}
}

// Add registers a rule. A duplicate ID overwrites the existing record in
// place (last write wins, documented behavior) without changing its position
// in the application order.
func (s *RuleStore) Add(r domain.InferenceRule) error {
	if r.ID == "" {
		return ErrMissingID
	}
	if r.Name == "" {
		return ErrMissingName
	}
	r.BaseConfidence = domain.Clamp01(r.BaseConfidence)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rules[r.ID]; !exists {
		s.order = append(s.order, r.ID)
	}
	s.rules[r.ID] = r
	return nil
}

// AddAxiom registers a background axiom. Axioms are documentation-bearing:
// they are not pattern-matched during reasoning.
func (s *RuleStore) AddAxiom(a domain.Axiom) error {
	if a.ID == "" {
		return ErrMissingID
	}
	if a.Name == "" {
		return ErrMissingName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.axioms {
		if existing.ID == a.ID {
			s.axioms[i] = a
			return nil
		}
	}
	s.axioms = append(s.axioms, a)
	return nil
}

func (s *RuleStore) Get(id string) (domain.InferenceRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[id]
	if !ok {
		return domain.InferenceRule{}, ErrNotFound
	}
	return r, nil
}

// List returns the rules in registration order.
func (s *RuleStore) List() []domain.InferenceRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.InferenceRule, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rules[id])
	}
	return out
}

func (s *RuleStore) Axioms() []domain.Axiom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Axiom, len(s.axioms))
	copy(out, s.axioms)
	return out
}

func (s *RuleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
