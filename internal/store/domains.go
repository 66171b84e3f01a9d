package store

import (
	"sync"

	"github.com/mindforge-ai/noesis/internal/domain"
)

// DomainStore holds one DomainKnowledge per domain plus the append-only log
// of validated cross-domain mappings. Domain knowledge and mappings are the
// only state that outlives a single reasoning call.
type DomainStore struct {
	mu       sync.RWMutex
	order    []string
	domains  map[string]domain.DomainKnowledge
	mappings []domain.CrossDomainMapping
}

func NewDomainStore() *DomainStore {
	return &DomainStore{domains: make(map[string]domain.DomainKnowledge)}
}

// AddDomain registers a knowledge base; a duplicate name overwrites in place.
func (s *DomainStore) AddDomain(d domain.DomainKnowledge) error {
	if d.Name == "" {
		return ErrMissingName
	}
	if d.Concepts == nil {
		d.Concepts = make(map[string]domain.Concept)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.domains[d.Name]; !exists {
		s.order = append(s.order, d.Name)
	}
	s.domains[d.Name] = d
	return nil
}

func (s *DomainStore) Get(name string) (domain.DomainKnowledge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.domains[name]
	if !ok {
		return domain.DomainKnowledge{}, ErrNotFound
	}
	return d, nil
}

// List returns domain knowledge bases in registration order.
func (s *DomainStore) List() []domain.DomainKnowledge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DomainKnowledge, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.domains[name])
	}
	return out
}

func (s *DomainStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// AppendMapping records one validated correspondence. Callers only append
// after validation succeeds; a failed transfer never reaches this method.
func (s *DomainStore) AppendMapping(m domain.CrossDomainMapping) error {
	if m.ID == "" {
		return ErrMissingID
	}
	m.Similarity = domain.Clamp01(m.Similarity)
	m.Confidence = domain.Clamp01(m.Confidence)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings = append(s.mappings, m)
	return nil
}

// Mappings returns a snapshot of the mapping log.
func (s *DomainStore) Mappings() []domain.CrossDomainMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CrossDomainMapping, len(s.mappings))
	copy(out, s.mappings)
	return out
}

func (s *DomainStore) MappingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}

// AppendAbstraction records a lifted abstraction on each named domain.
func (s *DomainStore) AppendAbstraction(name string, domains []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dn := range domains {
		d, ok := s.domains[dn]
		if !ok {
			continue
		}
		if containsString(d.Abstractions, name) {
			continue
		}
		d.Abstractions = append(d.Abstractions, name)
		s.domains[dn] = d
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
