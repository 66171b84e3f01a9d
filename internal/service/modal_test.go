package service

import (
	"testing"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

func newTestModal(t *testing.T) (*ModalService, *store.ModalWorldStore) {
	t.Helper()
	ops := store.NewModalOperatorStore()
	if err := seedModalOperators(ops); err != nil {
		t.Fatalf("seed operators: %v", err)
	}
	worlds := store.NewModalWorldStore()
	return NewModalService(ops, worlds, NewMetrics(), zap.NewNop()), worlds
}

func TestModalSingleNecessityGeneratesTwoWorlds(t *testing.T) {
	svc, _ := newTestModal(t)

	worlds := svc.Worlds("The report must be finished.")

	if len(worlds) != 2 {
		t.Fatalf("expected exactly 2 worlds (actual + necessity), got %d", len(worlds))
	}
	if worlds[0].Name != "actual" {
		t.Errorf("first world should be the actual world, got %q", worlds[0].Name)
	}
}

func TestModalNoOperators(t *testing.T) {
	svc, _ := newTestModal(t)

	result := svc.Evaluate("The report was finished yesterday.", nil)

	if result.Confidence != domain.NeutralConfidence {
		t.Errorf("expected neutral confidence without modal operators, got %f", result.Confidence)
	}
	if len(svc.Worlds("The report was finished yesterday.")) != 1 {
		t.Error("expected only the actual world without modal operators")
	}
}

func TestModalPossibilityWeighting(t *testing.T) {
	svc, _ := newTestModal(t)

	worlds := svc.Worlds("It might rain tomorrow.")

	if len(worlds) != 2 {
		t.Fatalf("expected 2 worlds, got %d", len(worlds))
	}
	weight, ok := worlds[0].Accessibility[worlds[1].ID]
	if !ok {
		t.Fatal("possibility world not accessible from the actual world")
	}
	if weight != possibilityWorldWeight {
		t.Errorf("possibility world weight = %f, want %f", weight, possibilityWorldWeight)
	}
}

func TestModalRegisteredWorldsParticipate(t *testing.T) {
	svc, worlds := newTestModal(t)
	err := worlds.Add(domain.ModalWorld{
		ID:   "counterfactual-1",
		Name: "counterfactual",
	})
	if err != nil {
		t.Fatalf("add world: %v", err)
	}

	got := svc.Worlds("The report must be finished.")

	if len(got) != 3 {
		t.Fatalf("expected actual + registered + necessity worlds, got %d", len(got))
	}
}

func TestModalEvaluateProducesConclusionPerOperator(t *testing.T) {
	svc, _ := newTestModal(t)

	result := svc.Evaluate("You should submit the form, and it might be accepted.", nil)

	// obligation ("should") and possibility ("might") both fire.
	if len(result.Conclusions) < 2 {
		t.Fatalf("expected at least 2 conclusions, got %d", len(result.Conclusions))
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("confidence out of range: %f", result.Confidence)
	}
	if result.Uncertainty.Level <= 0 {
		t.Error("expected non-zero uncertainty for possibility reasoning")
	}
}
