package domain

import "github.com/google/uuid"

// PremiseKind classifies how a proposition entered the reasoning process.
type PremiseKind string

const (
	PremiseFact        PremiseKind = "fact"
	PremiseAssumption  PremiseKind = "assumption"
	PremiseHypothesis  PremiseKind = "hypothesis"
	PremiseObservation PremiseKind = "observation"
)

func ValidPremiseKind(k string) bool {
	switch PremiseKind(k) {
	case PremiseFact, PremiseAssumption, PremiseHypothesis, PremiseObservation:
		return true
	}
	return false
}

// InitialCertainty returns the default certainty for a premise kind before
// specificity cues adjust it.
func (k PremiseKind) InitialCertainty() float64 {
	switch k {
	case PremiseFact:
		return 0.85
	case PremiseObservation:
		return 0.72
	case PremiseHypothesis:
		return 0.62
	case PremiseAssumption:
		return 0.65
	default:
		return 0.5
	}
}

// Proposition is a single statement taken as input to a reasoning call.
// Propositions are call-scoped: they are created during extraction and
// discarded with the result.
type Proposition struct {
	ID        uuid.UUID   `json:"id"`
	Text      string      `json:"text"`
	Certainty float64     `json:"certainty"`
	Kind      PremiseKind `json:"kind"`
	Source    string      `json:"source,omitempty"`
}
