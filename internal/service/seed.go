package service

import (
	"fmt"
	"math"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/store"
)

// Registry seeding. A seed failure is fatal at construction: the engine
// never serves requests from a partially initialized registry.

func seedClassical(s *store.RuleStore) error {
	axioms := []domain.Axiom{
		{ID: "ax-identity", Name: "identity", Schema: "A -> A"},
		{ID: "ax-excluded-middle", Name: "excluded middle", Schema: "A or not A"},
		{ID: "ax-non-contradiction", Name: "non-contradiction", Schema: "not (A and not A)"},
		{ID: "ax-contraposition", Name: "contraposition", Schema: "(A -> B) -> (not B -> not A)"},
		{ID: "ax-simplification", Name: "simplification", Schema: "(A and B) -> A"},
		{ID: "ax-addition", Name: "addition", Schema: "A -> (A or B)"},
	}
	for _, a := range axioms {
		if err := s.AddAxiom(a); err != nil {
			return fmt.Errorf("seed axiom %s: %w", a.ID, err)
		}
	}

	rules := []domain.InferenceRule{
		{
			ID: "modus-ponens", Name: "modus ponens", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"if {a} then {b}", "{a}"},
			ConsequentTemplate: "{b}",
			BaseConfidence:     0.95,
			EvidenceTags:       []string{"deductive", "conditional"},
		},
		{
			ID: "modus-tollens", Name: "modus tollens", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"if {a} then {b}", "{x} not {b}"},
			ConsequentTemplate: "it is not the case that {a}",
			BaseConfidence:     0.93,
			EvidenceTags:       []string{"deductive", "conditional", "negation"},
		},
		{
			ID: "hypothetical-syllogism", Name: "hypothetical syllogism", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"if {a} then {b}", "if {b} then {c}"},
			ConsequentTemplate: "if {a} then {c}",
			BaseConfidence:     0.9,
			EvidenceTags:       []string{"deductive", "chained"},
		},
		{
			ID: "disjunctive-syllogism", Name: "disjunctive syllogism", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"{a} or {b}", "{x} not {a}"},
			ConsequentTemplate: "{b}",
			BaseConfidence:     0.9,
			EvidenceTags:       []string{"deductive", "disjunction"},
		},
		{
			ID: "conjunction", Name: "conjunction", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"{a}", "{b}"},
			ConsequentTemplate: "{a} and {b}",
			BaseConfidence:     0.7,
			EvidenceTags:       []string{"deductive", "combination"},
		},
		{
			ID: "simplification", Name: "simplification", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"{a} and {b}"},
			ConsequentTemplate: "{a}",
			BaseConfidence:     0.85,
			EvidenceTags:       []string{"deductive", "decomposition"},
		},
		{
			ID: "addition", Name: "addition", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"{a}"},
			ConsequentTemplate: "either {a} or an unstated alternative holds",
			BaseConfidence:     0.6,
			EvidenceTags:       []string{"deductive", "weakening"},
		},
		{
			ID: "double-negation", Name: "double negation", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"{x} not not {a}"},
			ConsequentTemplate: "{a}",
			BaseConfidence:     0.9,
			EvidenceTags:       []string{"deductive", "negation"},
		},
		{
			ID: "de-morgan-and", Name: "de morgan (and)", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"not both {a} and {b}"},
			ConsequentTemplate: "not {a} or not {b}",
			BaseConfidence:     0.88,
			EvidenceTags:       []string{"deductive", "negation", "duality"},
		},
		{
			ID: "de-morgan-or", Name: "de morgan (or)", Kind: domain.RuleDeduction,
			AntecedentPatterns: []string{"neither {a} nor {b}"},
			ConsequentTemplate: "not {a} and not {b}",
			BaseConfidence:     0.88,
			EvidenceTags:       []string{"deductive", "negation", "duality"},
		},
	}
	for _, r := range rules {
		if err := s.Add(r); err != nil {
			return fmt.Errorf("seed rule %s: %w", r.ID, err)
		}
	}
	return nil
}

func seedModalOperators(s *store.ModalOperatorStore) error {
	ops := []domain.ModalOperator{
		{Symbol: "□", Name: "necessity", Strength: 1.0, Dual: "possibility",
			Keywords: []string{"must", "necessarily", "always", "inevitably"}},
		{Symbol: "◇", Name: "possibility", Strength: 0.8, Dual: "necessity",
			Keywords: []string{"can", "might", "possibly", "may", "could", "perhaps"}},
		{Symbol: "B", Name: "belief", Strength: 0.7,
			Keywords: []string{"believe", "believes", "think", "thinks", "suspect"}},
		{Symbol: "K", Name: "knowledge", Strength: 0.9,
			Keywords: []string{"know", "knows", "certain", "certainly"}},
		{Symbol: "O", Name: "obligation", Strength: 0.85,
			Keywords: []string{"should", "ought", "obliged"}},
		{Symbol: "P", Name: "permission", Strength: 0.6,
			Keywords: []string{"allowed", "permitted", "permissible"}},
	}
	for _, op := range ops {
		if err := s.Add(op); err != nil {
			return fmt.Errorf("seed modal operator %s: %w", op.Name, err)
		}
	}
	return nil
}

func seedDistributions(s *store.DistributionStore) error {
	dists := []domain.ProbabilityDistribution{
		{Name: "uniform", Kind: "continuous", Params: map[string]float64{"min": 0, "max": 1}},
		{Name: "normal", Kind: "continuous", Params: map[string]float64{"mean": 0.5, "stddev": 0.15}},
		{Name: "bernoulli", Kind: "discrete", Params: map[string]float64{"p": 0.5}},
	}
	for _, d := range dists {
		if err := s.Add(d); err != nil {
			return fmt.Errorf("seed distribution %s: %w", d.Name, err)
		}
	}
	return nil
}

func seedQuantumOperators(s *store.QuantumOperatorStore) error {
	h := 1 / math.Sqrt2
	ops := []domain.QuantumOperator{
		{Name: "identity", Symbol: "I", Kind: domain.QuantumKindIdentity,
			Matrix: [][]float64{{1, 0}, {0, 1}}, Strength: 0.5,
			Keywords: []string{"coherence", "wave"}},
		{Name: "not", Symbol: "X", Kind: domain.QuantumKindTransform,
			Matrix: [][]float64{{0, 1}, {1, 0}}, Strength: 0.7,
			Keywords: []string{"particle", "flip"}},
		{Name: "phase-flip", Symbol: "Z", Kind: domain.QuantumKindTransform,
			Matrix: [][]float64{{1, 0}, {0, -1}}, Strength: 0.65,
			Keywords: []string{"interference", "phase"}},
		{Name: "hadamard", Symbol: "H", Kind: domain.QuantumKindSuperpose,
			Matrix: [][]float64{{h, h}, {h, -h}}, Strength: 0.85,
			Keywords: []string{"superposition", "uncertainty"}},
		{Name: "measurement", Symbol: "M", Kind: domain.QuantumKindMeasurement,
			Matrix: [][]float64{{1, 0}, {0, 0}}, Strength: 0.9,
			Keywords: []string{"measurement", "measure", "collapse", "observe"}},
		{Name: "entanglement", Symbol: "E", Kind: domain.QuantumKindEntanglement,
			Matrix: [][]float64{{1, 0}, {0, 1}}, Strength: 0.8,
			Keywords: []string{"entanglement", "entangled", "correlated"}},
	}
	for _, op := range ops {
		if err := s.Add(op); err != nil {
			return fmt.Errorf("seed quantum operator %s: %w", op.Name, err)
		}
	}
	return nil
}

func seedDomains(s *store.DomainStore) error {
	domains := []domain.DomainKnowledge{
		{
			Name:     "mathematics",
			Keywords: []string{"equation", "number", "proof", "theorem", "function", "geometry", "calculate", "optimal"},
			Concepts: map[string]domain.Concept{
				"symmetry":     {Name: "symmetry", Kind: "structure", Properties: []string{"invariance", "transformation", "balance"}, Complexity: 0.6},
				"recursion":    {Name: "recursion", Kind: "process", Properties: []string{"self-reference", "base case", "reduction"}, Complexity: 0.7},
				"optimization": {Name: "optimization", Kind: "process", Properties: []string{"objective", "constraints", "extremum"}, Complexity: 0.65},
				"graph":        {Name: "graph", Kind: "structure", Properties: []string{"nodes", "edges", "connectivity"}, Complexity: 0.5},
			},
			Relationships: []domain.ConceptRelation{
				{From: "optimization", To: "graph", Relation: "operates-on"},
				{From: "recursion", To: "symmetry", Relation: "preserves"},
			},
			Patterns: []string{"decompose into subproblems", "search for invariants", "formalize then optimize"},
		},
		{
			Name:     "physics",
			Keywords: []string{"energy", "force", "motion", "field", "particle", "entropy", "system", "equilibrium"},
			Concepts: map[string]domain.Concept{
				"equilibrium": {Name: "equilibrium", Kind: "state", Properties: []string{"balance", "stability", "forces"}, Complexity: 0.55},
				"entropy":     {Name: "entropy", Kind: "quantity", Properties: []string{"disorder", "irreversibility", "probability"}, Complexity: 0.75},
				"resonance":   {Name: "resonance", Kind: "process", Properties: []string{"frequency", "amplification", "coupling"}, Complexity: 0.6},
				"field":       {Name: "field", Kind: "structure", Properties: []string{"space", "interaction", "potential"}, Complexity: 0.7},
			},
			Relationships: []domain.ConceptRelation{
				{From: "entropy", To: "equilibrium", Relation: "drives-toward"},
			},
			Patterns: []string{"conserve what is invariant", "minimize potential energy", "decompose into subproblems"},
		},
		{
			Name:     "biology",
			Keywords: []string{"cell", "organism", "evolution", "adaptation", "gene", "ecosystem", "growth"},
			Concepts: map[string]domain.Concept{
				"adaptation": {Name: "adaptation", Kind: "process", Properties: []string{"selection", "fitness", "environment"}, Complexity: 0.65},
				"homeostasis": {Name: "homeostasis", Kind: "state", Properties: []string{"balance", "regulation", "feedback"}, Complexity: 0.6},
				"network":    {Name: "network", Kind: "structure", Properties: []string{"nodes", "signaling", "redundancy"}, Complexity: 0.6},
				"symbiosis":  {Name: "symbiosis", Kind: "relation", Properties: []string{"cooperation", "exchange", "dependence"}, Complexity: 0.55},
			},
			Relationships: []domain.ConceptRelation{
				{From: "adaptation", To: "homeostasis", Relation: "maintains"},
			},
			Patterns: []string{"iterate with feedback", "select what survives", "build redundancy"},
		},
		{
			Name:     "psychology",
			Keywords: []string{"behavior", "memory", "emotion", "learning", "perception", "motivation", "habit"},
			Concepts: map[string]domain.Concept{
				"reinforcement": {Name: "reinforcement", Kind: "process", Properties: []string{"reward", "repetition", "feedback"}, Complexity: 0.5},
				"schema":        {Name: "schema", Kind: "structure", Properties: []string{"expectation", "pattern", "organization"}, Complexity: 0.6},
				"attention":     {Name: "attention", Kind: "process", Properties: []string{"selection", "focus", "capacity"}, Complexity: 0.55},
			},
			Patterns: []string{"iterate with feedback", "chunk into patterns", "reward the desired path"},
		},
		{
			Name:     "philosophy",
			Keywords: []string{"truth", "ethics", "existence", "knowledge", "logic", "meaning", "argument"},
			Concepts: map[string]domain.Concept{
				"dialectic":  {Name: "dialectic", Kind: "process", Properties: []string{"thesis", "antithesis", "synthesis"}, Complexity: 0.7},
				"categories": {Name: "categories", Kind: "structure", Properties: []string{"classification", "essence", "boundaries"}, Complexity: 0.6},
				"epistemics": {Name: "epistemics", Kind: "structure", Properties: []string{"justification", "belief", "evidence"}, Complexity: 0.75},
			},
			Patterns: []string{"examine the assumptions", "argue both sides", "search for invariants"},
		},
		{
			Name:     "art",
			Keywords: []string{"composition", "color", "form", "rhythm", "contrast", "style", "expression"},
			Concepts: map[string]domain.Concept{
				"composition": {Name: "composition", Kind: "structure", Properties: []string{"balance", "arrangement", "focus"}, Complexity: 0.55},
				"contrast":    {Name: "contrast", Kind: "relation", Properties: []string{"difference", "emphasis", "tension"}, Complexity: 0.45},
				"motif":       {Name: "motif", Kind: "structure", Properties: []string{"repetition", "variation", "identity"}, Complexity: 0.5},
			},
			Patterns: []string{"repeat with variation", "balance tension and release", "chunk into patterns"},
		},
		{
			Name:     "technology",
			Keywords: []string{"system", "software", "network", "data", "design", "architecture", "protocol", "scale"},
			Concepts: map[string]domain.Concept{
				"modularity":  {Name: "modularity", Kind: "structure", Properties: []string{"decomposition", "interfaces", "encapsulation"}, Complexity: 0.6},
				"feedback":    {Name: "feedback", Kind: "process", Properties: []string{"loop", "regulation", "signal"}, Complexity: 0.55},
				"redundancy":  {Name: "redundancy", Kind: "structure", Properties: []string{"duplication", "fault tolerance", "recovery"}, Complexity: 0.5},
				"abstraction": {Name: "abstraction", Kind: "structure", Properties: []string{"hiding", "generalization", "layers"}, Complexity: 0.7},
			},
			Relationships: []domain.ConceptRelation{
				{From: "modularity", To: "abstraction", Relation: "enables"},
			},
			Patterns: []string{"decompose into subproblems", "build redundancy", "iterate with feedback"},
		},
	}
	for _, d := range domains {
		if err := s.AddDomain(d); err != nil {
			return fmt.Errorf("seed domain %s: %w", d.Name, err)
		}
	}

	seedMappings := []domain.CrossDomainMapping{
		{ID: "seed-bio-tech-feedback", SourceDomain: "biology", TargetDomain: "technology",
			SourceConcept: "homeostasis", TargetConcept: "feedback",
			Similarity: 0.8, Confidence: 0.75,
			Reasoning: "both regulate a system toward a set point through feedback loops"},
		{ID: "seed-math-physics-symmetry", SourceDomain: "mathematics", TargetDomain: "physics",
			SourceConcept: "symmetry", TargetConcept: "equilibrium",
			Similarity: 0.7, Confidence: 0.7,
			Reasoning: "invariance under transformation parallels balance of opposing forces"},
		{ID: "seed-bio-psych-reinforcement", SourceDomain: "biology", TargetDomain: "psychology",
			SourceConcept: "adaptation", TargetConcept: "reinforcement",
			Similarity: 0.65, Confidence: 0.65,
			Reasoning: "selective strengthening under environmental feedback"},
	}
	for _, m := range seedMappings {
		if err := s.AppendMapping(m); err != nil {
			return fmt.Errorf("seed mapping %s: %w", m.ID, err)
		}
	}
	return nil
}
