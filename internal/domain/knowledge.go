package domain

// Concept is one named idea inside a knowledge domain.
type Concept struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Properties []string `json:"properties,omitempty"`
	Complexity float64  `json:"complexity"`
}

// ConceptRelation links two concepts within one domain.
type ConceptRelation struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Relation string `json:"relation"`
}

// DomainKnowledge is the knowledge base for one domain. One instance per
// domain persists for the engine's lifetime; everything else in a reasoning
// call is discarded with the call.
type DomainKnowledge struct {
	Name          string             `json:"name"`
	Keywords      []string           `json:"keywords,omitempty"`
	Concepts      map[string]Concept `json:"concepts"`
	Relationships []ConceptRelation  `json:"relationships,omitempty"`
	Patterns      []string           `json:"patterns,omitempty"`
	Abstractions  []string           `json:"abstractions,omitempty"`
}

// CrossDomainMapping records one validated correspondence between concepts
// in two domains. Mappings are append-only: a transfer or analogy that fails
// validation must leave the registry untouched.
type CrossDomainMapping struct {
	ID            string  `json:"id"`
	SourceDomain  string  `json:"source_domain"`
	TargetDomain  string  `json:"target_domain"`
	SourceConcept string  `json:"source_concept"`
	TargetConcept string  `json:"target_concept"`
	Similarity    float64 `json:"similarity"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
}

// DomainSolution is one domain's candidate answer to a cross-domain problem.
type DomainSolution struct {
	Domain     string   `json:"domain"`
	Approach   string   `json:"approach"`
	Patterns   []string `json:"patterns,omitempty"`
	Confidence float64  `json:"confidence"`
}

// UnifiedSolution synthesizes the per-domain candidates into one answer.
type UnifiedSolution struct {
	Problem         string           `json:"problem"`
	Domains         []string         `json:"domains"`
	Solutions       []DomainSolution `json:"solutions"`
	CommonPatterns  []string         `json:"common_patterns,omitempty"`
	Approach        string           `json:"approach"`
	Insights        []string         `json:"insights,omitempty"`
	Confidence      float64          `json:"confidence"`
}

// TransferResult reports one attempted knowledge transfer between domains.
type TransferResult struct {
	SourceDomain string              `json:"source_domain"`
	TargetDomain string              `json:"target_domain"`
	ConceptMap   map[string]string   `json:"concept_map,omitempty"`
	Transferred  map[string]any      `json:"transferred,omitempty"`
	Mapping      *CrossDomainMapping `json:"mapping,omitempty"`
	Validated    bool                `json:"validated"`
	Confidence   float64             `json:"confidence"`
	Reasoning    string              `json:"reasoning"`
}

// Analogy is one scored structural correspondence found between a source
// structure and a target-domain concept.
type Analogy struct {
	SourceConcept string   `json:"source_concept"`
	TargetDomain  string   `json:"target_domain"`
	TargetConcept string   `json:"target_concept"`
	Similarity    float64  `json:"similarity"`
	Confidence    float64  `json:"confidence"`
	Insights      []string `json:"insights,omitempty"`
}

// Abstraction is a higher-level concept lifted out of several domains.
type Abstraction struct {
	Name       string   `json:"name"`
	Domains    []string `json:"domains"`
	Properties []string `json:"properties,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Insight is one cross-domain observation synthesized for a topic.
type Insight struct {
	Topic      string   `json:"topic"`
	Statement  string   `json:"statement"`
	Domains    []string `json:"domains"`
	Confidence float64  `json:"confidence"`
}
