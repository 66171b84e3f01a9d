package service

import (
	"fmt"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

// ReasoningEngine owns the six mode engines, their registries and the
// shared metrics collector. All state is in-memory and dies with the
// process.
type ReasoningEngine struct {
	rules         *store.RuleStore
	modalOps      *store.ModalOperatorStore
	modalWorlds   *store.ModalWorldStore
	distributions *store.DistributionStore
	quantumOps    *store.QuantumOperatorStore
	decisions     *store.DecisionStore
	domains       *store.DomainStore

	classical     *ClassicalService
	modal         *ModalService
	probabilistic *ProbabilisticService
	quantum       *QuantumService
	decision      *DecisionService
	crossDomain   *CrossDomainService

	metrics *Metrics
	logger  *zap.Logger
}

// NewReasoningEngine builds the registries, seeds the baseline knowledge
// for every mode and wires the engines. Seeding failure is a programming
// error in the seed data, not a runtime condition.
func NewReasoningEngine(logger *zap.Logger) (*ReasoningEngine, error) {
	e := &ReasoningEngine{
		rules:         store.NewRuleStore(),
		modalOps:      store.NewModalOperatorStore(),
		modalWorlds:   store.NewModalWorldStore(),
		distributions: store.NewDistributionStore(),
		quantumOps:    store.NewQuantumOperatorStore(),
		decisions:     store.NewDecisionStore(),
		domains:       store.NewDomainStore(),
		metrics:       NewMetrics(),
		logger:        logger,
	}

	seeds := []struct {
		name string
		fn   func() error
	}{
		{"classical", func() error { return seedClassical(e.rules) }},
		{"modal", func() error { return seedModalOperators(e.modalOps) }},
		{"probabilistic", func() error { return seedDistributions(e.distributions) }},
		{"quantum", func() error { return seedQuantumOperators(e.quantumOps) }},
		{"decision", func() error { return seedDecisionRules(e.decisions) }},
		{"cross_domain", func() error { return seedDomains(e.domains) }},
	}
	for _, s := range seeds {
		if err := s.fn(); err != nil {
			return nil, fmt.Errorf("seed %s: %w", s.name, err)
		}
	}

	e.classical = NewClassicalService(e.rules, e.metrics, logger)
	e.modal = NewModalService(e.modalOps, e.modalWorlds, e.metrics, logger)
	e.probabilistic = NewProbabilisticService(e.distributions, e.metrics, logger)
	e.quantum = NewQuantumService(e.quantumOps, e.metrics, logger)
	e.decision = NewDecisionService(e.decisions, e.metrics, logger)
	e.crossDomain = NewCrossDomainService(e.domains, e.metrics, logger)

	logger.Info("reasoning engine initialized",
		zap.Int("inference_rules", e.rules.Len()),
		zap.Int("modal_operators", len(e.modalOps.List())),
		zap.Int("distributions", len(e.distributions.List())),
		zap.Int("quantum_operators", len(e.quantumOps.List())),
		zap.Int("decision_rules", len(e.decisions.Rules())),
		zap.Int("domains", len(e.domains.Names())))
	return e, nil
}

// Engine returns the engine handling the given mode.
func (e *ReasoningEngine) Engine(mode domain.ReasoningMode) (domain.Engine, error) {
	for _, eng := range e.Engines() {
		if eng.Mode() == mode {
			return eng, nil
		}
	}
	return nil, fmt.Errorf("unknown reasoning mode %q", mode)
}

// Engines lists all mode engines in their canonical order.
func (e *ReasoningEngine) Engines() []domain.Engine {
	return []domain.Engine{
		e.classical,
		e.modal,
		e.probabilistic,
		e.quantum,
		e.decision,
		e.crossDomain,
	}
}

func (e *ReasoningEngine) Classical() *ClassicalService         { return e.classical }
func (e *ReasoningEngine) Modal() *ModalService                 { return e.modal }
func (e *ReasoningEngine) Probabilistic() *ProbabilisticService { return e.probabilistic }
func (e *ReasoningEngine) Quantum() *QuantumService             { return e.quantum }
func (e *ReasoningEngine) Decision() *DecisionService           { return e.decision }
func (e *ReasoningEngine) CrossDomain() *CrossDomainService     { return e.crossDomain }

// Admin passthroughs. Each mutates the corresponding registry; duplicate
// identifiers replace the previous entry in place.

func (e *ReasoningEngine) AddInferenceRule(r domain.InferenceRule) error { return e.rules.Add(r) }
func (e *ReasoningEngine) AddAxiom(a domain.Axiom) error                 { return e.rules.AddAxiom(a) }
func (e *ReasoningEngine) AddModalOperator(op domain.ModalOperator) error {
	return e.modalOps.Add(op)
}
func (e *ReasoningEngine) AddModalWorld(w domain.ModalWorld) error { return e.modalWorlds.Add(w) }
func (e *ReasoningEngine) AddProbabilityDistribution(d domain.ProbabilityDistribution) error {
	return e.distributions.Add(d)
}
func (e *ReasoningEngine) AddQuantumOperator(op domain.QuantumOperator) error {
	return e.quantumOps.Add(op)
}
func (e *ReasoningEngine) AddDecisionOption(o domain.DecisionOption) error {
	return e.decisions.AddOption(o)
}
func (e *ReasoningEngine) AddDecisionCriterion(c domain.DecisionCriterion) error {
	return e.decisions.AddCriterion(c)
}

// AddDecisionRule registers a custom decision rule. Rules carry function
// values, so this surface is exposed to embedding Go code only, not the
// HTTP API.
func (e *ReasoningEngine) AddDecisionRule(r domain.DecisionRule) error {
	return e.decisions.AddRule(r)
}

func (e *ReasoningEngine) AddDomain(d domain.DomainKnowledge) error { return e.domains.AddDomain(d) }

// Axioms lists the registered logical axioms.
func (e *ReasoningEngine) Axioms() []domain.Axiom { return e.rules.Axioms() }

// Domains lists the registered knowledge domain names.
func (e *ReasoningEngine) Domains() []string { return e.domains.Names() }

// DomainKnowledge returns one domain's knowledge base.
func (e *ReasoningEngine) DomainKnowledge(name string) (domain.DomainKnowledge, error) {
	return e.domains.Get(name)
}

// Mappings returns a snapshot of the recorded cross-domain mappings.
func (e *ReasoningEngine) Mappings() []domain.CrossDomainMapping { return e.domains.Mappings() }

// GetPerformanceMetrics snapshots the per-mode usage counters.
func (e *ReasoningEngine) GetPerformanceMetrics() MetricsSnapshot { return e.metrics.Snapshot() }
