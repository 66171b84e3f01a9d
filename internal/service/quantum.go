package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/extract"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

// braKetRe matches bra-ket-like tokens such as |psi> or |01⟩.
var braKetRe = regexp.MustCompile(`\|([^|⟩>\s]{1,16})[⟩>]`)

// QuantumService is the quantum-heuristic engine: a deterministic scoring
// model that borrows quantum vocabulary to label weighted multi-valued
// statements. It applies small operator matrices in a single linear step
// and never simulates physics.
type QuantumService struct {
	ops     *store.QuantumOperatorStore
	metrics *Metrics
	logger  *zap.Logger
}

func NewQuantumService(ops *store.QuantumOperatorStore, metrics *Metrics, logger *zap.Logger) *QuantumService {
	return &QuantumService{ops: ops, metrics: metrics, logger: logger}
}

func (s *QuantumService) Mode() domain.ReasoningMode { return domain.ModeQuantum }

func (s *QuantumService) Evaluate(input string, _ map[string]any) domain.ReasoningResult {
	ex := extract.Extract(input)
	if len(ex.Premises) == 0 {
		result := domain.NeutralResult(domain.ModeQuantum, "no premises could be extracted")
		s.metrics.RecordResult(result)
		return result
	}

	detected := s.detectOperators(input)
	states := extractStates(input)

	proof := newProofBuilder()
	for _, p := range ex.Premises {
		proof.premise(p.Text, fmt.Sprintf("extracted %s", p.Kind), p.Certainty)
	}
	for _, st := range states {
		proof.inference(
			fmt.Sprintf("state %s: amplitude %.3f, %d superposed branches", st.ID, st.Amplitude, len(st.Superposition)),
			"state extraction", domain.Clamp01(st.Amplitude*st.Amplitude))
	}

	var conclusions []domain.Conclusion
	var evidence []string
	strengthSum := 0.0
	kinds := make(map[domain.QuantumOperatorKind]bool)

	for _, op := range detected {
		strengthSum += op.Strength
		kinds[op.Kind] = true
		evidence = append(evidence, fmt.Sprintf("%s (%s)", op.Name, op.Symbol))

		if op.Kind == domain.QuantumKindMeasurement {
			for _, st := range states {
				m := measure(op, st)
				statement := fmt.Sprintf("measuring %s yields %d with probability %.3f", st.ID, m.Result, m.Probability)
				inf := proof.inference(statement,
					fmt.Sprintf("applied %s matrix to amplitude %.3f", op.Name, st.Amplitude), m.Probability)
				proof.conclusion(statement, op.Name, m.Probability, inf)
				conclusions = append(conclusions, domain.Conclusion{
					Statement:  statement,
					Confidence: m.Probability,
					Rule:       op.Name,
				})
			}
		}
	}

	classification := classifyInput(kinds)
	meanStrength := 0.0
	if len(detected) > 0 {
		meanStrength = strengthSum / float64(len(detected))
	}
	quality := domain.Clamp01(0.4*meanCertainty(ex.Premises) + 0.3*(1-ex.Complexity) + 0.3)
	confidence := probabilityConfidence(domain.Clamp01(0.5+meanStrength/2), quality)

	classStatement := fmt.Sprintf("input is %s reasoning", classification)
	proof.conclusion(classStatement, "operator kind classification", confidence)
	conclusions = append(conclusions, domain.Conclusion{
		Statement:  classStatement,
		Confidence: confidence,
		Rule:       "classification",
	})

	result := domain.ReasoningResult{
		Mode:        domain.ModeQuantum,
		Confidence:  confidence,
		Conclusions: conclusions,
		Proof:       proof.steps,
		Uncertainty: quantumUncertainty(states, kinds),
		Evidence:    evidence,
	}
	s.metrics.RecordResult(result)
	return result
}

func (s *QuantumService) detectOperators(input string) []domain.QuantumOperator {
	lower := strings.ToLower(input)
	var detected []domain.QuantumOperator
	for _, op := range s.ops.List() {
		found := false
		for _, kw := range op.Keywords {
			if containsWord(lower, kw) {
				found = true
				break
			}
		}
		if found {
			detected = append(detected, op)
		}
	}
	return detected
}

// extractStates parses bra-ket-like tokens into heuristic states, or
// synthesizes the default 50/50 superposition when none appear. Amplitudes
// derive deterministically from the token label.
func extractStates(input string) []domain.QuantumState {
	matches := braKetRe.FindAllStringSubmatch(input, -1)
	if len(matches) == 0 {
		return []domain.QuantumState{defaultSuperposition()}
	}
	states := make([]domain.QuantumState, 0, len(matches))
	var ids []string
	for _, m := range matches {
		label := m[1]
		states = append(states, domain.QuantumState{
			ID:            fmt.Sprintf("|%s⟩", label),
			Amplitude:     labelAmplitude(label),
			Phase:         labelPhase(label),
			Superposition: map[string]float64{label: 1},
		})
		ids = append(ids, fmt.Sprintf("|%s⟩", label))
	}
	// Multiple states in one input are treated as mutually entangled.
	if len(states) > 1 {
		for i := range states {
			for j, id := range ids {
				if i != j {
					states[i].EntangledWith = append(states[i].EntangledWith, id)
				}
			}
		}
	}
	return states
}

func defaultSuperposition() domain.QuantumState {
	return domain.QuantumState{
		ID:            uuid.NewString(),
		Amplitude:     1 / math.Sqrt2,
		Phase:         0,
		Superposition: map[string]float64{"0": 0.5, "1": 0.5},
	}
}

// labelAmplitude maps a token label to a deterministic amplitude in (0,1].
func labelAmplitude(label string) float64 {
	var sum int
	for _, r := range label {
		sum += int(r)
	}
	return domain.Clamp01(0.5 + float64(sum%50)/100)
}

func labelPhase(label string) float64 {
	var sum int
	for _, r := range label {
		sum += int(r) * 7
	}
	return float64(sum%360) / 360 * 2 * math.Pi
}

// measure applies the operator matrix to the amplitude pair
// (amplitude, 1-amplitude) in one linear step and reads the squared result
// as a probability. Collapse picks the dominant branch, deterministically.
func measure(op domain.QuantumOperator, st domain.QuantumState) domain.Measurement {
	if len(op.Matrix) < 2 || len(op.Matrix[0]) < 2 || len(op.Matrix[1]) < 2 {
		return domain.Measurement{Result: 0, Probability: domain.Clamp01(st.Amplitude * st.Amplitude), Collapsed: false}
	}
	a0 := op.Matrix[0][0]*st.Amplitude + op.Matrix[0][1]*(1-st.Amplitude)
	p := domain.Clamp01(a0 * a0)
	result := 0
	if p < 0.5 {
		result = 1
		p = domain.Clamp01(1 - p)
	}
	return domain.Measurement{Result: result, Probability: p, Collapsed: true}
}

func classifyInput(kinds map[domain.QuantumOperatorKind]bool) string {
	if len(kinds) >= 3 {
		return "complex-quantum"
	}
	switch {
	case kinds[domain.QuantumKindEntanglement]:
		return "entanglement-based"
	case kinds[domain.QuantumKindMeasurement]:
		return "measurement-focused"
	case kinds[domain.QuantumKindSuperpose]:
		return "superposition-based"
	default:
		return "classical-leaning"
	}
}

func quantumUncertainty(states []domain.QuantumState, kinds map[domain.QuantumOperatorKind]bool) domain.Uncertainty {
	level := 0.3 + 0.1*float64(len(states))
	var sources []string
	if kinds[domain.QuantumKindSuperpose] {
		level += 0.15
		sources = append(sources, "superposed branches remain unresolved")
	}
	if kinds[domain.QuantumKindMeasurement] {
		level -= 0.1
		sources = append(sources, "measurement collapses branches")
	}
	return domain.Uncertainty{
		Level:       domain.Clamp01(level),
		Sources:     sources,
		Mitigations: []string{"the quantum vocabulary is a heuristic label, not a physical claim"},
	}
}
