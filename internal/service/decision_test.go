package service

import (
	"strings"
	"testing"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

func newTestDecision(t *testing.T) (*DecisionService, *store.DecisionStore) {
	t.Helper()
	st := store.NewDecisionStore()
	if err := seedDecisionRules(st); err != nil {
		t.Fatalf("seed rules: %v", err)
	}
	return NewDecisionService(st, NewMetrics(), zap.NewNop()), st
}

// Two options differing only in a cost-like utility: the optimist reads the
// raw score and prefers the high one, the pessimist inverts cost and
// prefers the low one.
func costOptions() []domain.DecisionOption {
	return []domain.DecisionOption{
		{ID: "a", Name: "A", Utilities: map[string]float64{"cost": 0.9}},
		{ID: "b", Name: "B", Utilities: map[string]float64{"cost": 0.2}},
	}
}

func TestMaximaxVersusMaximin(t *testing.T) {
	options := costOptions()
	criteria := []domain.DecisionCriterion{{Name: "cost", Weight: 1}}

	if got := ruleMaximax(options, criteria); got.SelectedID != "a" {
		t.Errorf("maximax selected %q, want a", got.SelectedID)
	}
	if got := ruleMaximin(options, criteria); got.SelectedID != "b" {
		t.Errorf("maximin selected %q, want b", got.SelectedID)
	}
}

func TestDecideRecordsEveryRuleOutcome(t *testing.T) {
	svc, _ := newTestDecision(t)
	ctx := map[string]any{
		"options": []any{
			map[string]any{"name": "A", "utilities": map[string]any{"cost": 0.9}},
			map[string]any{"name": "B", "utilities": map[string]any{"cost": 0.2}},
		},
	}

	result := svc.Decide("pick a vendor", ctx)

	if len(result.Evidence) != 5 {
		t.Fatalf("expected one evidence entry per rule, got %v", result.Evidence)
	}
	joined := strings.Join(result.Evidence, "; ")
	if !strings.Contains(joined, "maximax -> a") {
		t.Errorf("maximax should select a, evidence: %s", joined)
	}
	if !strings.Contains(joined, "maximin -> b") {
		t.Errorf("maximin should select b, evidence: %s", joined)
	}
	if len(result.Alternatives) != 1 {
		t.Errorf("the unselected option should be listed as alternative, got %v", result.Alternatives)
	}
}

func TestDecideWithoutOptions(t *testing.T) {
	svc, _ := newTestDecision(t)

	result := svc.Decide("nothing to pick here", nil)

	if result.Confidence != domain.NeutralConfidence {
		t.Errorf("expected neutral confidence, got %f", result.Confidence)
	}
	if len(result.Conclusions) != 0 {
		t.Errorf("expected no conclusions, got %d", len(result.Conclusions))
	}
}

func TestDecideWithoutRules(t *testing.T) {
	// A service over a bare store has options but no rule catalogue; the
	// call degrades to the neutral result instead of panicking.
	svc := NewDecisionService(store.NewDecisionStore(), NewMetrics(), zap.NewNop())

	result := svc.Decide("Should we choose between refactoring or rewriting?", nil)

	if result.Confidence != domain.NeutralConfidence {
		t.Errorf("expected neutral confidence, got %f", result.Confidence)
	}
	if len(result.Conclusions) != 0 {
		t.Errorf("expected no conclusions, got %d", len(result.Conclusions))
	}
}

func TestDecideExtractsOptionsFromText(t *testing.T) {
	svc, _ := newTestDecision(t)

	result := svc.Decide("Should we choose between refactoring or rewriting?", nil)

	if len(result.Conclusions) == 0 {
		t.Fatal("expected a recommendation")
	}
	if !strings.Contains(result.Conclusions[0].Statement, "choose ") {
		t.Errorf("expected a choose statement, got %q", result.Conclusions[0].Statement)
	}
	if got := len(result.Alternatives); got != 1 {
		t.Errorf("two extracted options should leave one alternative, got %d", got)
	}
}

func TestDecideUsesRegisteredBaselines(t *testing.T) {
	svc, st := newTestDecision(t)
	if err := st.AddOption(domain.DecisionOption{
		ID: "fallback", Name: "fallback plan",
		CriteriaScores: map[string]float64{"value": 0.6},
		Confidence:     0.7,
	}); err != nil {
		t.Fatalf("add option: %v", err)
	}

	result := svc.Decide("what now", nil)

	if !strings.Contains(result.Conclusions[0].Statement, "fallback plan") {
		t.Errorf("registered baseline should be selectable, got %q", result.Conclusions[0].Statement)
	}
}

func TestMinimaxRegretPrefersBalancedOption(t *testing.T) {
	options := []domain.DecisionOption{
		{ID: "spiky", Name: "spiky", CriteriaScores: map[string]float64{"speed": 1.0, "safety": 0.0}},
		{ID: "even", Name: "even", CriteriaScores: map[string]float64{"speed": 0.7, "safety": 0.7}},
	}
	criteria := []domain.DecisionCriterion{{Name: "speed", Weight: 1}, {Name: "safety", Weight: 1}}

	got := ruleMinimaxRegret(options, criteria)

	if got.SelectedID != "even" {
		t.Errorf("minimax regret selected %q, want even", got.SelectedID)
	}
}

func TestExpectedValuePenalizesRisk(t *testing.T) {
	options := []domain.DecisionOption{
		{ID: "risky", Name: "risky", CriteriaScores: map[string]float64{"value": 0.8}, Risks: map[string]float64{"outage": 0.9}},
		{ID: "safe", Name: "safe", CriteriaScores: map[string]float64{"value": 0.7}},
	}
	criteria := []domain.DecisionCriterion{{Name: "value", Weight: 1}}

	got := ruleExpectedValue(options, criteria)

	if got.SelectedID != "safe" {
		t.Errorf("expected value selected %q, want safe", got.SelectedID)
	}
}

func TestDecisionUncertaintyReportsDisagreementAndRisk(t *testing.T) {
	outcomes := []domain.RuleOutcome{
		{Rule: "maximax", SelectedID: "a"},
		{Rule: "maximin", SelectedID: "b"},
	}
	selected := domain.DecisionOption{ID: "a", Risks: map[string]float64{"churn": 0.5}}

	u := decisionUncertainty(outcomes, selected)

	if len(u.Sources) != 2 {
		t.Fatalf("expected disagreement and risk sources, got %v", u.Sources)
	}
	if u.Level <= 0.2 {
		t.Errorf("disagreement should raise uncertainty above the floor, got %f", u.Level)
	}
}
