package service

import (
	"fmt"
	"strings"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/extract"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

const (
	necessityWorldWeight   = 1.0
	possibilityWorldWeight = 0.8
)

// ModalService reasons over necessity, possibility and the epistemic and
// deontic operators. World generation is single-pass: each detected
// possibility or necessity operator spawns one world accessible from the
// actual world, with no fixed-point closure over the accessibility relation.
type ModalService struct {
	ops     *store.ModalOperatorStore
	worlds  *store.ModalWorldStore
	metrics *Metrics
	logger  *zap.Logger
}

func NewModalService(ops *store.ModalOperatorStore, worlds *store.ModalWorldStore, metrics *Metrics, logger *zap.Logger) *ModalService {
	return &ModalService{ops: ops, worlds: worlds, metrics: metrics, logger: logger}
}

func (s *ModalService) Mode() domain.ReasoningMode { return domain.ModeModal }

func (s *ModalService) Evaluate(input string, _ map[string]any) domain.ReasoningResult {
	ex := extract.Extract(input)
	if len(ex.Premises) == 0 {
		result := domain.NeutralResult(domain.ModeModal, "no premises could be extracted")
		s.metrics.RecordResult(result)
		return result
	}

	detected := s.detectOperators(input)

	proof := newProofBuilder()
	for _, p := range ex.Premises {
		proof.premise(p.Text, fmt.Sprintf("extracted %s", p.Kind), p.Certainty)
	}

	worlds := s.buildWorlds(ex.Premises, detected)

	var conclusions []domain.Conclusion
	var evidence []string
	possibilityCount := 0
	strengthSum := 0.0

	for _, op := range detected {
		strengthSum += op.Strength
		if op.Name == "possibility" {
			possibilityCount++
		}
		evidence = append(evidence, fmt.Sprintf("%s (%s)", op.Name, op.Symbol))

		scope := scopedPremise(op, ex.Premises)
		statement := modalStatement(op, scope)
		conf := domain.Clamp01(op.Strength * scopeCertainty(op, ex.Premises))

		inf := proof.inference(statement,
			fmt.Sprintf("detected %s operator %s", op.Name, op.Symbol), conf)
		proof.conclusion(statement, op.Name, conf, inf)
		conclusions = append(conclusions, domain.Conclusion{
			Statement:  statement,
			Confidence: conf,
			Rule:       op.Name,
		})
	}

	meanStrength := 0.0
	if len(detected) > 0 {
		meanStrength = strengthSum / float64(len(detected))
	}
	worldNorm := float64(len(worlds)) / 5
	if worldNorm > 1 {
		worldNorm = 1
	}

	result := domain.ReasoningResult{
		Mode:        domain.ModeModal,
		Confidence:  blend([2]float64{meanStrength, 0.5}, [2]float64{worldNorm, 0.25}, [2]float64{ex.Complexity, 0.25}),
		Conclusions: conclusions,
		Proof:       proof.steps,
		Uncertainty: modalUncertainty(possibilityCount, len(worlds)),
		Evidence:    evidence,
	}
	if result.Conclusions == nil {
		result.Conclusions = []domain.Conclusion{}
	}
	if len(detected) == 0 {
		result.Confidence = domain.NeutralConfidence
		result.Uncertainty.Sources = append(result.Uncertainty.Sources, "no modal operators detected")
	}
	result.Alternatives = worldSummaries(worlds)
	s.metrics.RecordResult(result)
	return result
}

// Worlds exposes the graph built for an input, mainly for callers that want
// to inspect the accessibility structure.
func (s *ModalService) Worlds(input string) []domain.ModalWorld {
	ex := extract.Extract(input)
	return s.buildWorlds(ex.Premises, s.detectOperators(input))
}

func (s *ModalService) detectOperators(input string) []domain.ModalOperator {
	lower := strings.ToLower(input)
	var detected []domain.ModalOperator
	for _, op := range s.ops.List() {
		if op.Symbol != "" && strings.Contains(input, op.Symbol) {
			detected = append(detected, op)
			continue
		}
		for _, kw := range op.Keywords {
			if containsWord(lower, kw) {
				detected = append(detected, op)
				break
			}
		}
	}
	return detected
}

// buildWorlds constructs the possible-worlds graph: the actual world holding
// the extracted propositions, administratively registered worlds, and one
// spawned world per detected necessity or possibility operator.
func (s *ModalService) buildWorlds(premises []domain.Proposition, detected []domain.ModalOperator) []domain.ModalWorld {
	props := make(map[string]bool, len(premises))
	for _, p := range premises {
		props[p.Text] = true
	}
	base := domain.ModalWorld{
		ID:            "w0",
		Name:          "actual",
		Propositions:  props,
		Accessibility: map[string]float64{},
	}
	worlds := []domain.ModalWorld{base}
	worlds = append(worlds, s.worlds.List()...)

	next := 1
	for _, op := range detected {
		var weight float64
		switch op.Name {
		case "necessity":
			weight = necessityWorldWeight
		case "possibility":
			weight = possibilityWorldWeight
		default:
			continue
		}
		id := fmt.Sprintf("w%d", next)
		next++
		alt := domain.ModalWorld{
			ID:             id,
			Name:           fmt.Sprintf("%s world", op.Name),
			AccessibleFrom: []string{base.ID},
			Propositions:   copyProps(props),
			Accessibility:  map[string]float64{},
		}
		worlds[0].Accessibility[id] = weight
		worlds = append(worlds, alt)
	}
	return worlds
}

func copyProps(src map[string]bool) map[string]bool {
	out := make(map[string]bool, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// scopedPremise picks the premise the operator scopes over: the first one
// containing one of its keywords, else the first premise.
func scopedPremise(op domain.ModalOperator, premises []domain.Proposition) string {
	for _, p := range premises {
		lower := strings.ToLower(p.Text)
		for _, kw := range op.Keywords {
			if containsWord(lower, kw) {
				return p.Text
			}
		}
	}
	return premises[0].Text
}

func scopeCertainty(op domain.ModalOperator, premises []domain.Proposition) float64 {
	scope := scopedPremise(op, premises)
	for _, p := range premises {
		if p.Text == scope {
			return p.Certainty
		}
	}
	return meanCertainty(premises)
}

func modalStatement(op domain.ModalOperator, scope string) string {
	switch op.Name {
	case "necessity":
		return fmt.Sprintf("in every accessible world: %s", scope)
	case "possibility":
		return fmt.Sprintf("in at least one accessible world: %s", scope)
	case "belief":
		return fmt.Sprintf("the agent believes that %s", scope)
	case "knowledge":
		return fmt.Sprintf("the agent knows that %s", scope)
	case "obligation":
		return fmt.Sprintf("it is obligatory that %s", scope)
	case "permission":
		return fmt.Sprintf("it is permitted that %s", scope)
	default:
		return fmt.Sprintf("%s: %s", op.Name, scope)
	}
}

func modalUncertainty(possibilityOps, worldCount int) domain.Uncertainty {
	level := 0.25 + 0.15*float64(possibilityOps) + 0.05*float64(worldCount-1)
	var sources []string
	if possibilityOps > 0 {
		sources = append(sources, "possibility operators widen the accessible worlds")
	}
	if worldCount > 1 {
		sources = append(sources, fmt.Sprintf("%d worlds constructed", worldCount))
	}
	return domain.Uncertainty{
		Level:       domain.Clamp01(level),
		Sources:     sources,
		Mitigations: []string{"restate possibilities as necessities where evidence allows"},
	}
}

func worldSummaries(worlds []domain.ModalWorld) []string {
	if len(worlds) <= 1 {
		return nil
	}
	out := make([]string, 0, len(worlds)-1)
	for _, w := range worlds[1:] {
		out = append(out, fmt.Sprintf("world %s (%s), %d propositions", w.ID, w.Name, len(w.Propositions)))
	}
	return out
}

func containsWord(lower, word string) bool {
	for _, f := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	}) {
		if f == word {
			return true
		}
	}
	return false
}
