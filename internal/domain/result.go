package domain

// ReasoningMode identifies which engine produced a result.
type ReasoningMode string

const (
	ModeClassical     ReasoningMode = "classical"
	ModeModal         ReasoningMode = "modal"
	ModeProbabilistic ReasoningMode = "probabilistic"
	ModeQuantum       ReasoningMode = "quantum"
	ModeDecision      ReasoningMode = "decision"
	ModeCrossDomain   ReasoningMode = "cross_domain"
)

func ValidReasoningMode(m string) bool {
	switch ReasoningMode(m) {
	case ModeClassical, ModeModal, ModeProbabilistic, ModeQuantum, ModeDecision, ModeCrossDomain:
		return true
	}
	return false
}

// Conclusion is a derived statement with its provenance rule.
type Conclusion struct {
	Statement  string  `json:"statement"`
	Confidence float64 `json:"confidence"`
	Rule       string  `json:"rule,omitempty"`
}

// Uncertainty describes how unsure an engine is about its result and why.
type Uncertainty struct {
	Level       float64  `json:"level"`
	Sources     []string `json:"sources,omitempty"`
	Mitigations []string `json:"mitigations,omitempty"`
}

// ReasoningResult is the self-contained outcome of one engine call.
// Valid and Sound are set only by the classical engine; both are string
// heuristic plausibility checks, not semantic verification.
type ReasoningResult struct {
	Mode         ReasoningMode `json:"mode"`
	Confidence   float64       `json:"confidence"`
	Conclusions  []Conclusion  `json:"conclusions"`
	Proof        []ProofStep   `json:"proof"`
	Alternatives []string      `json:"alternatives,omitempty"`
	Uncertainty  Uncertainty   `json:"uncertainty"`
	Valid        bool          `json:"valid,omitempty"`
	Sound        bool          `json:"sound,omitempty"`
	Evidence     []string      `json:"evidence,omitempty"`
}

// NeutralConfidence is returned when an engine is given nothing to work with.
const NeutralConfidence = 0.5

// NeutralResult builds the degraded result returned for empty or unusable
// input: neutral confidence, no conclusions, and an explicit empty-evidence
// marker instead of an error.
func NeutralResult(mode ReasoningMode, reason string) ReasoningResult {
	return ReasoningResult{
		Mode:        mode,
		Confidence:  NeutralConfidence,
		Conclusions: []Conclusion{},
		Proof:       []ProofStep{},
		Uncertainty: Uncertainty{
			Level:       NeutralConfidence,
			Sources:     []string{reason},
			Mitigations: []string{"provide a non-empty statement to reason about"},
		},
		Evidence: []string{},
	}
}

// Clamp01 bounds a score to [0,1]. Every confidence, certainty and
// similarity value is clamped at the point it is computed, never downstream.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
