package domain

// RuleKind classifies the inference style of a rule.
type RuleKind string

const (
	RuleDeduction RuleKind = "deduction"
	RuleInduction RuleKind = "induction"
	RuleAbduction RuleKind = "abduction"
	RuleAnalogy   RuleKind = "analogy"
)

func ValidRuleKind(k string) bool {
	switch RuleKind(k) {
	case RuleDeduction, RuleInduction, RuleAbduction, RuleAnalogy:
		return true
	}
	return false
}

// InferenceRule is one entry in a logic engine's rule registry.
// Rules are immutable after registration; re-registering the same ID
// replaces the whole record (last write wins).
type InferenceRule struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Kind               RuleKind `json:"kind"`
	AntecedentPatterns []string `json:"antecedent_patterns"`
	ConsequentTemplate string   `json:"consequent_template"`
	BaseConfidence     float64  `json:"base_confidence"`
	EvidenceTags       []string `json:"evidence_tags,omitempty"`
}

// Axiom is a named logical axiom carried in the classical registry.
// Axioms are not pattern-matched; they document the logical background the
// rule catalogue assumes, and are readable over the admin surface.
type Axiom struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Schema  string `json:"schema"`
	Comment string `json:"comment,omitempty"`
}
