package domain

// StepKind identifies the role a step plays in a proof ledger.
type StepKind string

const (
	StepPremise    StepKind = "premise"
	StepInference  StepKind = "inference"
	StepConclusion StepKind = "conclusion"
)

// ProofStep is one entry in the append-only reasoning ledger of a single
// call. Steps live in a flat slice; Refs holds the indices of earlier steps
// this one builds on, so the proof graph stays serializable without pointer
// links.
type ProofStep struct {
	Seq           int      `json:"seq"`
	Kind          StepKind `json:"kind"`
	Content       string   `json:"content"`
	Justification string   `json:"justification"`
	Confidence    float64  `json:"confidence"`
	Refs          []int    `json:"refs,omitempty"`
}
