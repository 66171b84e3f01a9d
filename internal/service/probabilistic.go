package service

import (
	"fmt"
	"math"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/extract"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

// Context keys recognized by the probabilistic engine.
const (
	ctxPriorProbability = "priorProbability"
	ctxLikelihood       = "likelihood"
	ctxEvidence         = "evidence"
)

// ProbabilisticService scores statements on a probability scale. Without
// context it starts from an uninformative 0.5 baseline; a context carrying
// prior, likelihood and evidence triggers a pure Bayes update. Repeated
// calls with identical arguments always produce identical results.
type ProbabilisticService struct {
	dists   *store.DistributionStore
	metrics *Metrics
	logger  *zap.Logger
}

func NewProbabilisticService(dists *store.DistributionStore, metrics *Metrics, logger *zap.Logger) *ProbabilisticService {
	return &ProbabilisticService{dists: dists, metrics: metrics, logger: logger}
}

func (s *ProbabilisticService) Mode() domain.ReasoningMode { return domain.ModeProbabilistic }

func (s *ProbabilisticService) Evaluate(input string, ctx map[string]any) domain.ReasoningResult {
	ex := extract.Extract(input)
	if len(ex.Premises) == 0 {
		result := domain.NeutralResult(domain.ModeProbabilistic, "no premises could be extracted")
		s.metrics.RecordResult(result)
		return result
	}

	proof := newProofBuilder()
	for _, p := range ex.Premises {
		proof.premise(p.Text, fmt.Sprintf("extracted %s", p.Kind), p.Certainty)
	}

	probability := domain.NeutralConfidence
	var evidence []string
	justification := "uninformative baseline"

	prior, hasPrior := floatFromContext(ctx, ctxPriorProbability)
	likelihood, hasLikelihood := floatFromContext(ctx, ctxLikelihood)
	evidenceTerm, hasEvidence := floatFromContext(ctx, ctxEvidence)

	if hasPrior && hasLikelihood && hasEvidence {
		probability = domain.BayesUpdate(prior, likelihood, evidenceTerm)
		justification = fmt.Sprintf("bayes update: %.3f x %.3f / %.3f", likelihood, prior, evidenceTerm)
		evidence = append(evidence,
			fmt.Sprintf("prior=%.3f", prior),
			fmt.Sprintf("likelihood=%.3f", likelihood),
			fmt.Sprintf("evidence=%.3f", evidenceTerm))
		proof.inference(fmt.Sprintf("posterior probability %.3f", probability), justification, probability, 0)
	} else {
		proof.inference(fmt.Sprintf("baseline probability %.3f", probability),
			"no prior/likelihood/evidence supplied", probability, 0)
	}

	quality := domain.Clamp01(0.4*meanCertainty(ex.Premises) + 0.3*(1-ex.Complexity) + 0.3)
	confidence := probabilityConfidence(probability, quality)

	model := s.modelFor(ctx)
	statement := fmt.Sprintf("the statement is %s (%s confidence, p=%.2f, %s model)",
		probabilityBucket(probability), confidenceDescriptor(confidence), probability, model.Name)

	proof.conclusion(statement, "probability bucketing", confidence, len(proof.steps)-1)

	result := domain.ReasoningResult{
		Mode:       domain.ModeProbabilistic,
		Confidence: confidence,
		Conclusions: []domain.Conclusion{{
			Statement:  statement,
			Confidence: confidence,
			Rule:       "bayes",
		}},
		Proof:        proof.steps,
		Alternatives: []string{fmt.Sprintf("the statement is %s", probabilityBucket(1 - probability))},
		Uncertainty:  probabilisticUncertainty(probability, hasPrior && hasLikelihood && hasEvidence),
		Evidence:     evidence,
	}
	s.metrics.RecordResult(result)
	return result
}

// modelFor selects the registered distribution that frames the conclusion:
// an explicit context override, else bernoulli for a binary posterior.
func (s *ProbabilisticService) modelFor(ctx map[string]any) domain.ProbabilityDistribution {
	if name, ok := ctx["distribution"].(string); ok {
		if d, err := s.dists.Get(name); err == nil {
			return d
		}
	}
	if d, err := s.dists.Get("bernoulli"); err == nil {
		return d
	}
	return domain.ProbabilityDistribution{Name: "bernoulli"}
}

func probabilityBucket(p float64) string {
	switch {
	case p < 0.2:
		return "unlikely"
	case p < 0.45:
		return "possible"
	case p < 0.7:
		return "likely"
	case p < 0.9:
		return "very likely"
	default:
		return "certain"
	}
}

func confidenceDescriptor(c float64) string {
	switch {
	case c < 0.4:
		return "low"
	case c < 0.7:
		return "moderate"
	default:
		return "high"
	}
}

func probabilisticUncertainty(p float64, bayesian bool) domain.Uncertainty {
	// Uncertainty peaks at p=0.5 where the posterior says nothing.
	level := domain.Clamp01(1 - 1.6*math.Abs(p-0.5))
	sources := []string{}
	if !bayesian {
		sources = append(sources, "no prior or likelihood supplied; baseline probability used")
	}
	if p > 0.35 && p < 0.65 {
		sources = append(sources, "posterior close to the uninformative baseline")
	}
	return domain.Uncertainty{
		Level:       level,
		Sources:     sources,
		Mitigations: []string{"supply priorProbability, likelihood and evidence in the call context"},
	}
}

// floatFromContext reads a numeric context value, accepting the types JSON
// decoding and direct Go callers produce.
func floatFromContext(ctx map[string]any, key string) (float64, bool) {
	if ctx == nil {
		return 0, false
	}
	switch v := ctx[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
