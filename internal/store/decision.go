package store

import (
	"sync"

	"github.com/mindforge-ai/noesis/internal/domain"
)

// DecisionStore holds the decision engine's registries: the ordered rule
// catalogue plus administratively registered baseline options and criteria
// that are merged into every decide call.
type DecisionStore struct {
	mu        sync.RWMutex
	ruleOrder []string
	rules     map[string]domain.DecisionRule
	optOrder  []string
	options   map[string]domain.DecisionOption
	criteria  []domain.DecisionCriterion
}

func NewDecisionStore() *DecisionStore {
	return &DecisionStore{
		rules:   make(map[string]domain.DecisionRule),
		options: make(map[string]domain.DecisionOption),
	}
}

// AddRule registers an arbitration rule. Catalogue order is significant
// (confidence ties resolve to the earliest rule), so a duplicate name
// replaces the function without moving the rule.
func (s *DecisionStore) AddRule(r domain.DecisionRule) error {
	if r.Name == "" {
		return ErrMissingName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rules[r.Name]; !exists {
		s.ruleOrder = append(s.ruleOrder, r.Name)
	}
	s.rules[r.Name] = r
	return nil
}

// Rules returns the catalogue in registration order.
func (s *DecisionStore) Rules() []domain.DecisionRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DecisionRule, 0, len(s.ruleOrder))
	for _, name := range s.ruleOrder {
		out = append(out, s.rules[name])
	}
	return out
}

// AddOption registers a baseline option; a duplicate ID overwrites in place.
func (s *DecisionStore) AddOption(o domain.DecisionOption) error {
	if o.ID == "" {
		return ErrMissingID
	}
	o.Confidence = domain.Clamp01(o.Confidence)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.options[o.ID]; !exists {
		s.optOrder = append(s.optOrder, o.ID)
	}
	s.options[o.ID] = o
	return nil
}

func (s *DecisionStore) Options() []domain.DecisionOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DecisionOption, 0, len(s.optOrder))
	for _, id := range s.optOrder {
		out = append(out, s.options[id])
	}
	return out
}

// AddCriterion registers a baseline criterion; a duplicate name overwrites.
func (s *DecisionStore) AddCriterion(c domain.DecisionCriterion) error {
	if c.Name == "" {
		return ErrMissingName
	}
	c.Weight = domain.Clamp01(c.Weight)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.criteria {
		if existing.Name == c.Name {
			s.criteria[i] = c
			return nil
		}
	}
	s.criteria = append(s.criteria, c)
	return nil
}

func (s *DecisionStore) Criteria() []domain.DecisionCriterion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DecisionCriterion, len(s.criteria))
	copy(out, s.criteria)
	return out
}
