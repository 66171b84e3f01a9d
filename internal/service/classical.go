package service

import (
	"fmt"
	"strings"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/extract"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

// Premise certainties must exceed this threshold for an argument to count
// as sound. Well-formed declarative premises score above it; hedged or
// question-marked ones fall below.
const soundPremiseCertainty = 0.7

// contradictionMarkers is the syntactic sanity filter applied to candidate
// conclusions. This is a string heuristic plausibility check, not semantic
// verification; callers must not read Valid/Sound as a logical guarantee.
var contradictionMarkers = []string{"contradiction", "impossible", "absurd", "cannot be true"}

// ClassicalService implements propositional reasoning over a registry of
// named inference rules. Each rule's antecedent patterns are keyword
// templates matched against the extracted premise set; a match instantiates
// the consequent template with the bound fragments.
type ClassicalService struct {
	rules   *store.RuleStore
	metrics *Metrics
	logger  *zap.Logger
}

func NewClassicalService(rules *store.RuleStore, metrics *Metrics, logger *zap.Logger) *ClassicalService {
	return &ClassicalService{rules: rules, metrics: metrics, logger: logger}
}

func (s *ClassicalService) Mode() domain.ReasoningMode { return domain.ModeClassical }

// Evaluate runs every registered rule against the premises extracted from
// input. A rule that fails to compile or instantiate is skipped; the call
// itself never fails.
func (s *ClassicalService) Evaluate(input string, _ map[string]any) domain.ReasoningResult {
	ex := extract.Extract(input)
	if len(ex.Premises) == 0 {
		result := domain.NeutralResult(domain.ModeClassical, "no premises could be extracted")
		s.metrics.RecordResult(result)
		return result
	}

	proof := newProofBuilder()
	premiseSteps := make([]int, len(ex.Premises))
	norm := make([]string, len(ex.Premises))
	for i, p := range ex.Premises {
		norm[i] = normalizePremise(p.Text)
		premiseSteps[i] = proof.premise(p.Text, fmt.Sprintf("extracted %s", p.Kind), p.Certainty)
	}

	var conclusions []domain.Conclusion
	var alternatives []string
	var evidence []string
	seen := make(map[string]bool)

	for _, rule := range s.rules.List() {
		conclusion, used, err := s.applyRule(rule, norm, ex.Premises)
		if err != nil {
			// Best effort: a failing rule loses only its own contribution.
			s.logger.Debug("rule skipped",
				zap.String("rule", rule.Name),
				zap.Error(err))
			continue
		}
		if conclusion == "" || seen[conclusion] {
			continue
		}
		seen[conclusion] = true

		if !validConclusion(conclusion) {
			alternatives = append(alternatives, fmt.Sprintf("%s (rejected by %s)", conclusion, rule.Name))
			continue
		}

		conf := domain.Clamp01(rule.BaseConfidence * meanUsedCertainty(ex.Premises, used))
		refs := make([]int, len(used))
		for i, u := range used {
			refs[i] = premiseSteps[u]
		}
		infStep := proof.inference(conclusion, fmt.Sprintf("applied %s", rule.Name), conf, refs...)
		proof.conclusion(conclusion, rule.Name, conf, infStep)

		conclusions = append(conclusions, domain.Conclusion{
			Statement:  conclusion,
			Confidence: conf,
			Rule:       rule.Name,
		})
		evidence = append(evidence, rule.EvidenceTags...)
	}

	valid := true
	for _, c := range conclusions {
		if !validConclusion(c.Statement) {
			valid = false
			break
		}
	}
	sound := valid
	for _, p := range ex.Premises {
		if p.Certainty <= soundPremiseCertainty {
			sound = false
			break
		}
	}

	result := domain.ReasoningResult{
		Mode:         domain.ModeClassical,
		Confidence:   weightedConfidence(proof.meanConfidence(), len(conclusions)),
		Conclusions:  conclusions,
		Proof:        proof.steps,
		Alternatives: alternatives,
		Uncertainty:  classicalUncertainty(ex, conclusions),
		Valid:        valid,
		Sound:        sound,
		Evidence:     evidence,
	}
	if result.Conclusions == nil {
		result.Conclusions = []domain.Conclusion{}
	}
	s.metrics.RecordResult(result)
	return result
}

// applyRule finds the first assignment of distinct premises to the rule's
// antecedent patterns with consistent variable bindings, then instantiates
// the consequent template. The first match in premise order wins, keeping
// the proof deterministic and bounded.
func (s *ClassicalService) applyRule(rule domain.InferenceRule, norm []string, premises []domain.Proposition) (string, []int, error) {
	if len(rule.AntecedentPatterns) == 0 {
		return "", nil, fmt.Errorf("rule %s has no antecedent patterns", rule.ID)
	}

	patterns := make([]*compiledPattern, len(rule.AntecedentPatterns))
	for i, p := range rule.AntecedentPatterns {
		cp, err := compilePattern(p)
		if err != nil {
			return "", nil, err
		}
		patterns[i] = cp
	}

	bindings, used, ok := assignPremises(patterns, norm, make([]bool, len(norm)), map[string]string{})
	if !ok {
		return "", nil, nil
	}

	conclusion, err := instantiate(rule.ConsequentTemplate, bindings)
	if err != nil {
		return "", nil, err
	}
	return conclusion, used, nil
}

// assignPremises backtracks over premises to satisfy each pattern in turn.
func assignPremises(patterns []*compiledPattern, norm []string, taken []bool, bindings map[string]string) (map[string]string, []int, bool) {
	if len(patterns) == 0 {
		return bindings, nil, true
	}
	for i, premise := range norm {
		if taken[i] {
			continue
		}
		matched, ok := patterns[0].match(premise)
		if !ok {
			continue
		}
		merged, ok := mergeBindings(bindings, matched)
		if !ok {
			continue
		}
		taken[i] = true
		rest, used, ok := assignPremises(patterns[1:], norm, taken, merged)
		taken[i] = false
		if ok {
			return rest, append([]int{i}, used...), true
		}
	}
	return nil, nil, false
}

func meanUsedCertainty(premises []domain.Proposition, used []int) float64 {
	if len(used) == 0 {
		return 0
	}
	var sum float64
	for _, i := range used {
		sum += premises[i].Certainty
	}
	return sum / float64(len(used))
}

func validConclusion(c string) bool {
	c = strings.TrimSpace(c)
	if c == "" {
		return false
	}
	lower := strings.ToLower(c)
	for _, marker := range contradictionMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

func classicalUncertainty(ex extract.Extraction, conclusions []domain.Conclusion) domain.Uncertainty {
	level := 0.3 + 0.3*ex.Complexity
	var sources []string
	if len(conclusions) == 0 {
		level += 0.2
		sources = append(sources, "no rule produced a conclusion")
	}
	for _, p := range ex.Premises {
		if p.Kind == domain.PremiseAssumption {
			level += 0.05
			sources = append(sources, fmt.Sprintf("unsupported assumption: %s", p.Text))
		}
	}
	return domain.Uncertainty{
		Level:       domain.Clamp01(level),
		Sources:     sources,
		Mitigations: []string{"state premises as explicit conditionals or universals"},
	}
}
