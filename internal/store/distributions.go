package store

import (
	"sync"

	"github.com/mindforge-ai/noesis/internal/domain"
)

// DistributionStore is the probabilistic engine's append-only registry of
// named distributions.
type DistributionStore struct {
	mu    sync.RWMutex
	order []string
	dists map[string]domain.ProbabilityDistribution
}

func NewDistributionStore() *DistributionStore {
	return &DistributionStore{dists: make(map[string]domain.ProbabilityDistribution)}
}

// Add registers a distribution; a duplicate name overwrites in place.
func (s *DistributionStore) Add(d domain.ProbabilityDistribution) error {
	if d.Name == "" {
		return ErrMissingName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.dists[d.Name]; !exists {
		s.order = append(s.order, d.Name)
	}
	s.dists[d.Name] = d
	return nil
}

func (s *DistributionStore) Get(name string) (domain.ProbabilityDistribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dists[name]
	if !ok {
		return domain.ProbabilityDistribution{}, ErrNotFound
	}
	return d, nil
}

func (s *DistributionStore) List() []domain.ProbabilityDistribution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ProbabilityDistribution, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.dists[name])
	}
	return out
}
