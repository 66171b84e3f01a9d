package service

import (
	"strings"
	"testing"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

func newTestProbabilistic(t *testing.T) *ProbabilisticService {
	t.Helper()
	dists := store.NewDistributionStore()
	if err := seedDistributions(dists); err != nil {
		t.Fatalf("seed distributions: %v", err)
	}
	return NewProbabilisticService(dists, NewMetrics(), zap.NewNop())
}

func TestProbabilisticBayesUpdate(t *testing.T) {
	svc := newTestProbabilistic(t)
	ctx := map[string]any{
		"priorProbability": 0.8,
		"likelihood":       0.9,
		"evidence":         0.85,
	}

	result := svc.Evaluate("The deployment will succeed.", ctx)

	want := domain.Clamp01(0.9 * 0.8 / 0.85)
	if want < 0.7 || want >= 0.9 {
		t.Fatalf("test setup: posterior %f not in the very-likely bucket", want)
	}
	if len(result.Conclusions) != 1 {
		t.Fatalf("expected 1 conclusion, got %d", len(result.Conclusions))
	}
	if !strings.Contains(result.Conclusions[0].Statement, "very likely") {
		t.Errorf("statement %q should land in the very-likely bucket", result.Conclusions[0].Statement)
	}
	if len(result.Evidence) != 3 {
		t.Errorf("expected prior/likelihood/evidence in evidence, got %v", result.Evidence)
	}
}

func TestProbabilisticDeterministic(t *testing.T) {
	svc := newTestProbabilistic(t)
	ctx := map[string]any{
		"priorProbability": 0.8,
		"likelihood":       0.9,
		"evidence":         0.85,
	}

	first := svc.Evaluate("The deployment will succeed.", ctx)
	for i := 0; i < 10; i++ {
		again := svc.Evaluate("The deployment will succeed.", ctx)
		if again.Confidence != first.Confidence {
			t.Fatalf("confidence changed on call %d: %f vs %f", i, again.Confidence, first.Confidence)
		}
		if again.Conclusions[0].Statement != first.Conclusions[0].Statement {
			t.Fatalf("statement changed on call %d", i)
		}
	}
}

func TestProbabilisticBaselineWithoutContext(t *testing.T) {
	svc := newTestProbabilistic(t)

	result := svc.Evaluate("The coin lands heads.", nil)

	if !strings.Contains(result.Conclusions[0].Statement, "p=0.50") {
		t.Errorf("expected the uninformative baseline, got %q", result.Conclusions[0].Statement)
	}
	found := false
	for _, src := range result.Uncertainty.Sources {
		if strings.Contains(src, "baseline") {
			found = true
		}
	}
	if !found {
		t.Errorf("uncertainty should flag the missing prior, got %v", result.Uncertainty.Sources)
	}
}

func TestProbabilisticZeroEvidenceFallsBackToPrior(t *testing.T) {
	svc := newTestProbabilistic(t)
	ctx := map[string]any{
		"priorProbability": 0.3,
		"likelihood":       0.9,
		"evidence":         0.0,
	}

	result := svc.Evaluate("The test passes.", ctx)

	if !strings.Contains(result.Conclusions[0].Statement, "p=0.30") {
		t.Errorf("zero evidence should keep the prior, got %q", result.Conclusions[0].Statement)
	}
}

func TestProbabilisticDistributionOverride(t *testing.T) {
	svc := newTestProbabilistic(t)
	ctx := map[string]any{"distribution": "normal"}

	result := svc.Evaluate("The latency is acceptable.", ctx)

	if !strings.Contains(result.Conclusions[0].Statement, "normal model") {
		t.Errorf("expected the normal model to frame the conclusion, got %q", result.Conclusions[0].Statement)
	}
}

func TestProbabilityBuckets(t *testing.T) {
	cases := []struct {
		p    float64
		want string
	}{
		{0.05, "unlikely"},
		{0.3, "possible"},
		{0.5, "likely"},
		{0.8, "very likely"},
		{0.95, "certain"},
	}
	for _, tc := range cases {
		if got := probabilityBucket(tc.p); got != tc.want {
			t.Errorf("probabilityBucket(%f) = %q, want %q", tc.p, got, tc.want)
		}
	}
}
