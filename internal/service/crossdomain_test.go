package service

import (
	"strings"
	"testing"

	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

func newTestCrossDomain(t *testing.T) (*CrossDomainService, *store.DomainStore) {
	t.Helper()
	domains := store.NewDomainStore()
	if err := seedDomains(domains); err != nil {
		t.Fatalf("seed domains: %v", err)
	}
	return NewCrossDomainService(domains, NewMetrics(), zap.NewNop()), domains
}

func TestTransferKnowledgeAppendsOneMapping(t *testing.T) {
	svc, domains := newTestCrossDomain(t)
	before := domains.MappingCount()

	result, err := svc.TransferKnowledge("biology", "technology", map[string]any{
		"feedback loop":        "regulate output against a set point",
		"redundancy mechanism": "duplicate the critical path",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if !result.Validated {
		t.Fatalf("expected a validated transfer, got reasoning %q", result.Reasoning)
	}
	if result.Mapping == nil {
		t.Fatal("validated transfer must carry its mapping")
	}
	if got := domains.MappingCount() - before; got != 1 {
		t.Errorf("expected exactly one appended mapping, got %d", got)
	}
	if len(result.ConceptMap) != 2 {
		t.Errorf("both keys should map onto target concepts, got %v", result.ConceptMap)
	}
}

func TestTransferKnowledgeFailureLeavesRegistryUntouched(t *testing.T) {
	svc, domains := newTestCrossDomain(t)
	before := domains.MappingCount()

	result, err := svc.TransferKnowledge("biology", "technology", map[string]any{
		"zymurgy quorum": "nothing in the target resembles this",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if result.Validated {
		t.Fatal("expected validation to fail")
	}
	if result.Mapping != nil {
		t.Errorf("failed transfer must not carry a mapping, got %+v", result.Mapping)
	}
	if got := domains.MappingCount(); got != before {
		t.Errorf("mapping count changed from %d to %d on a failed transfer", before, got)
	}
}

func TestTransferKnowledgeUnknownDomain(t *testing.T) {
	svc, _ := newTestCrossDomain(t)

	if _, err := svc.TransferKnowledge("alchemy", "technology", map[string]any{"k": "v"}); err == nil {
		t.Error("expected an error for an unknown source domain")
	}
	if _, err := svc.TransferKnowledge("biology", "alchemy", map[string]any{"k": "v"}); err == nil {
		t.Error("expected an error for an unknown target domain")
	}
}

func TestReasonAcrossDomainsSelectsByRelevance(t *testing.T) {
	svc, _ := newTestCrossDomain(t)

	solution, err := svc.ReasonAcrossDomains("minimize the energy of the equation", nil)
	if err != nil {
		t.Fatalf("reason: %v", err)
	}

	if len(solution.Domains) != 2 {
		t.Fatalf("expected mathematics and physics, got %v", solution.Domains)
	}
	found := map[string]bool{}
	for _, d := range solution.Domains {
		found[d] = true
	}
	if !found["mathematics"] || !found["physics"] {
		t.Errorf("expected mathematics and physics, got %v", solution.Domains)
	}
	if len(solution.CommonPatterns) == 0 {
		t.Error("mathematics and physics share a pattern; none found")
	}
	if solution.Confidence <= 0 || solution.Confidence > 1 {
		t.Errorf("confidence out of range: %f", solution.Confidence)
	}
}

func TestReasonAcrossDomainsExplicitDomains(t *testing.T) {
	svc, _ := newTestCrossDomain(t)

	solution, err := svc.ReasonAcrossDomains("how should the team structure its work", []string{"biology", "technology"})
	if err != nil {
		t.Fatalf("reason: %v", err)
	}

	if len(solution.Solutions) != 2 {
		t.Fatalf("expected one solution per requested domain, got %d", len(solution.Solutions))
	}
	// biology and technology share "build redundancy" and "iterate with feedback".
	if len(solution.CommonPatterns) < 2 {
		t.Errorf("expected shared patterns, got %v", solution.CommonPatterns)
	}

	if _, err := svc.ReasonAcrossDomains("anything", []string{"alchemy"}); err == nil {
		t.Error("expected an error for an unknown requested domain")
	}
}

func TestFindAnalogies(t *testing.T) {
	svc, _ := newTestCrossDomain(t)

	analogies, err := svc.FindAnalogies("biology", "technology")
	if err != nil {
		t.Fatalf("find analogies: %v", err)
	}

	if len(analogies) == 0 {
		t.Fatal("expected analogies between biology and technology")
	}
	if len(analogies) > maxAnalogies {
		t.Errorf("expected at most %d analogies, got %d", maxAnalogies, len(analogies))
	}
	for i := 1; i < len(analogies); i++ {
		if analogies[i].Confidence > analogies[i-1].Confidence {
			t.Errorf("analogies not sorted by confidence at index %d", i)
		}
	}
	for _, a := range analogies {
		if a.TargetDomain != "technology" {
			t.Errorf("analogy targets %q, want technology", a.TargetDomain)
		}
	}
}

func TestCreateAbstractions(t *testing.T) {
	svc, domains := newTestCrossDomain(t)

	abstractions, err := svc.CreateAbstractions([]string{"biology", "technology"})
	if err != nil {
		t.Fatalf("create abstractions: %v", err)
	}

	names := map[string]bool{}
	for _, a := range abstractions {
		names[a.Name] = true
		if len(a.Domains) < 2 {
			t.Errorf("abstraction %q spans %d domains, want >= 2", a.Name, len(a.Domains))
		}
	}
	// process and structure concepts exist in both domains; state and
	// relation are biology-only and must not be lifted.
	if !names["abstract process"] || !names["abstract structure"] {
		t.Fatalf("expected process and structure abstractions, got %v", names)
	}
	if names["abstract state"] || names["abstract relation"] {
		t.Errorf("single-domain kinds must not be lifted, got %v", names)
	}

	bio, err := domains.Get("biology")
	if err != nil {
		t.Fatalf("get biology: %v", err)
	}
	if !containsName(bio.Abstractions, "abstract process") {
		t.Errorf("abstraction should be recorded on the domain, got %v", bio.Abstractions)
	}
}

func TestSynthesizeInsights(t *testing.T) {
	svc, _ := newTestCrossDomain(t)

	insights, err := svc.SynthesizeInsights("adaptation of an organism to its ecosystem")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}

	if len(insights) == 0 {
		t.Fatal("expected insights for a biology-flavored topic")
	}
	if len(insights) > maxInsights {
		t.Errorf("expected at most %d insights, got %d", maxInsights, len(insights))
	}
	biologyMentioned := false
	for _, ins := range insights {
		if containsName(ins.Domains, "biology") {
			biologyMentioned = true
		}
	}
	if !biologyMentioned {
		t.Error("expected at least one insight grounded in biology")
	}

	if _, err := svc.SynthesizeInsights("  "); err == nil {
		t.Error("expected an error for an empty topic")
	}
}

func TestCrossDomainEvaluate(t *testing.T) {
	svc, _ := newTestCrossDomain(t)

	result := svc.Evaluate("optimize the energy budget", map[string]any{
		"domains": []any{"mathematics", "physics"},
	})

	if len(result.Conclusions) == 0 {
		t.Fatal("expected conclusions")
	}
	if !strings.Contains(result.Conclusions[0].Statement, "perspectives") {
		t.Errorf("first conclusion should be the unified approach, got %q", result.Conclusions[0].Statement)
	}
	if len(result.Evidence) != 2 {
		t.Errorf("evidence should list the consulted domains, got %v", result.Evidence)
	}
}
