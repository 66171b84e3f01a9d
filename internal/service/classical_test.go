package service

import (
	"strings"
	"testing"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

func newTestClassical(t *testing.T) (*ClassicalService, *store.RuleStore) {
	t.Helper()
	rules := store.NewRuleStore()
	if err := seedClassical(rules); err != nil {
		t.Fatalf("seed rules: %v", err)
	}
	return NewClassicalService(rules, NewMetrics(), zap.NewNop()), rules
}

func hasConclusion(result domain.ReasoningResult, fragment string) bool {
	for _, c := range result.Conclusions {
		if strings.Contains(c.Statement, fragment) {
			return true
		}
	}
	return false
}

func TestClassicalModusPonens(t *testing.T) {
	svc, _ := newTestClassical(t)

	result := svc.Evaluate("If the system is intelligent, then it can learn. The system is intelligent.", nil)

	if !hasConclusion(result, "can learn") {
		t.Fatalf("expected a conclusion mentioning %q, got %+v", "can learn", result.Conclusions)
	}
	if !result.Valid {
		t.Error("expected Valid=true")
	}
	if !result.Sound {
		t.Error("expected Sound=true")
	}
	if result.Confidence <= 0 || result.Confidence > 1 {
		t.Errorf("confidence out of range: %f", result.Confidence)
	}
	if len(result.Proof) == 0 {
		t.Fatal("expected a non-empty proof")
	}
	for i, step := range result.Proof {
		if step.Seq != i {
			t.Errorf("step %d has Seq %d", i, step.Seq)
		}
		for _, ref := range step.Refs {
			if ref >= i {
				t.Errorf("step %d references later step %d", i, ref)
			}
		}
	}
}

func TestClassicalSoundnessRequiresCertainPremises(t *testing.T) {
	svc, _ := newTestClassical(t)

	// The question-marked conditional and the bare assertion both extract
	// with certainty at or below 0.7, so the argument is valid but unsound.
	result := svc.Evaluate("If it rains then the ground is wet?\nIt rains.", nil)

	if !hasConclusion(result, "the ground is wet") {
		t.Fatalf("expected modus ponens to fire, got %+v", result.Conclusions)
	}
	if !result.Valid {
		t.Error("expected Valid=true")
	}
	if result.Sound {
		t.Error("hedged premises must not yield Sound=true")
	}

	for _, step := range result.Proof {
		if step.Kind == domain.StepPremise && step.Confidence > soundPremiseCertainty {
			t.Errorf("premise %q certainty %f should sit at or below the threshold",
				step.Content, step.Confidence)
		}
	}
}

func TestClassicalModusTollens(t *testing.T) {
	svc, _ := newTestClassical(t)

	result := svc.Evaluate("If it rains then the ground is wet. The ground is not wet.", nil)

	if !hasConclusion(result, "it is not the case that it rains") {
		t.Fatalf("expected negated antecedent, got %+v", result.Conclusions)
	}
}

func TestClassicalEmptyInput(t *testing.T) {
	svc, _ := newTestClassical(t)

	result := svc.Evaluate("   ", nil)

	if result.Confidence != domain.NeutralConfidence {
		t.Errorf("expected neutral confidence, got %f", result.Confidence)
	}
	if len(result.Conclusions) != 0 {
		t.Errorf("expected no conclusions, got %d", len(result.Conclusions))
	}
}

func TestClassicalRejectsContradictionConclusions(t *testing.T) {
	svc, rules := newTestClassical(t)
	err := rules.Add(domain.InferenceRule{
		ID:                 "reductio-probe",
		Name:               "reductio-probe",
		Kind:               domain.RuleDeduction,
		AntecedentPatterns: []string{"{a}"},
		ConsequentTemplate: "accepting {a} leads to contradiction",
		BaseConfidence:     0.9,
	})
	if err != nil {
		t.Fatalf("add rule: %v", err)
	}

	result := svc.Evaluate("The mirror is cracked.", nil)

	if hasConclusion(result, "contradiction") {
		t.Fatal("contradiction-marked conclusion was accepted")
	}
	rejected := false
	for _, alt := range result.Alternatives {
		if strings.Contains(alt, "rejected by reductio-probe") {
			rejected = true
		}
	}
	if !rejected {
		t.Errorf("expected rejected alternative, got %v", result.Alternatives)
	}
	if !result.Valid {
		t.Error("rejected conclusions must not poison validity of accepted ones")
	}
}

func TestClassicalDeterministic(t *testing.T) {
	svc, _ := newTestClassical(t)
	input := "If the cache is stale, then reads are slow. The cache is stale."

	first := svc.Evaluate(input, nil)
	for i := 0; i < 5; i++ {
		again := svc.Evaluate(input, nil)
		if again.Confidence != first.Confidence {
			t.Fatalf("confidence changed across calls: %f vs %f", again.Confidence, first.Confidence)
		}
		if len(again.Conclusions) != len(first.Conclusions) {
			t.Fatalf("conclusion count changed: %d vs %d", len(again.Conclusions), len(first.Conclusions))
		}
		for j := range again.Conclusions {
			if again.Conclusions[j].Statement != first.Conclusions[j].Statement {
				t.Fatalf("conclusion %d changed: %q vs %q", j, again.Conclusions[j].Statement, first.Conclusions[j].Statement)
			}
		}
	}
}

func TestClassicalAdminRuleIsPickedUp(t *testing.T) {
	svc, rules := newTestClassical(t)
	err := rules.Add(domain.InferenceRule{
		ID:                 "custom-transitivity",
		Name:               "custom-transitivity",
		Kind:               domain.RuleDeduction,
		AntecedentPatterns: []string{"{a} implies {b}", "{b} implies {c}"},
		ConsequentTemplate: "{a} implies {c}",
		BaseConfidence:     0.9,
	})
	if err != nil {
		t.Fatalf("add rule: %v", err)
	}

	result := svc.Evaluate("trust implies access. access implies risk.", nil)

	if !hasConclusion(result, "trust implies risk") {
		t.Fatalf("expected custom rule to fire, got %+v", result.Conclusions)
	}
}
