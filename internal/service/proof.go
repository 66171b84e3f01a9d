package service

import "github.com/mindforge-ai/noesis/internal/domain"

// proofBuilder accumulates the append-only proof ledger of one call. Steps
// are held in a flat slice with integer back-references; the sequence number
// is strictly increasing and equals the slice index.
type proofBuilder struct {
	steps []domain.ProofStep
}

func newProofBuilder() *proofBuilder {
	return &proofBuilder{steps: []domain.ProofStep{}}
}

// add appends one step and returns its index for later back-references.
func (b *proofBuilder) add(kind domain.StepKind, content, justification string, confidence float64, refs ...int) int {
	step := domain.ProofStep{
		Seq:           len(b.steps),
		Kind:          kind,
		Content:       content,
		Justification: justification,
		Confidence:    domain.Clamp01(confidence),
	}
	if len(refs) > 0 {
		step.Refs = append([]int{}, refs...)
	}
	b.steps = append(b.steps, step)
	return step.Seq
}

func (b *proofBuilder) premise(content, justification string, confidence float64) int {
	return b.add(domain.StepPremise, content, justification, confidence)
}

func (b *proofBuilder) inference(content, justification string, confidence float64, refs ...int) int {
	return b.add(domain.StepInference, content, justification, confidence, refs...)
}

func (b *proofBuilder) conclusion(content, justification string, confidence float64, refs ...int) int {
	return b.add(domain.StepConclusion, content, justification, confidence, refs...)
}

func (b *proofBuilder) meanConfidence() float64 {
	if len(b.steps) == 0 {
		return 0
	}
	var sum float64
	for _, s := range b.steps {
		sum += s.Confidence
	}
	return sum / float64(len(b.steps))
}
