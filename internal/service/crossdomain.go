package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/extract"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

const (
	// Domains scoring above this keyword relevance participate in a
	// cross-domain call when the caller names none.
	domainRelevanceThreshold = 0.3
	// Minimum per-key similarity to include a pair in the concept map.
	conceptMapThreshold = 0.2
	// Overall compatibility a transfer must reach to be recorded.
	transferValidationThreshold = 0.45
	maxAnalogies                = 5
	maxInsights                 = 8
)

var defaultDomains = []string{"mathematics", "physics"}

// CrossDomainService reasons across knowledge domains: unified problem
// solving, knowledge transfer, analogy discovery, abstraction lifting and
// insight synthesis. Domain knowledge bases and the mapping log are the
// only state that outlives a call.
type CrossDomainService struct {
	domains *store.DomainStore
	metrics *Metrics
	logger  *zap.Logger
}

func NewCrossDomainService(domains *store.DomainStore, metrics *Metrics, logger *zap.Logger) *CrossDomainService {
	return &CrossDomainService{domains: domains, metrics: metrics, logger: logger}
}

func (s *CrossDomainService) Mode() domain.ReasoningMode { return domain.ModeCrossDomain }

// Evaluate adapts ReasonAcrossDomains to the shared engine interface.
// Context key "domains" may carry an explicit domain list.
func (s *CrossDomainService) Evaluate(input string, ctx map[string]any) domain.ReasoningResult {
	var requested []string
	if ctx != nil {
		if raw, ok := ctx["domains"].([]any); ok {
			for _, v := range raw {
				if name, ok := v.(string); ok {
					requested = append(requested, name)
				}
			}
		}
	}

	solution, err := s.ReasonAcrossDomains(input, requested)
	if err != nil {
		result := domain.NeutralResult(domain.ModeCrossDomain, err.Error())
		s.metrics.RecordResult(result)
		return result
	}

	proof := newProofBuilder()
	premiseStep := proof.premise(input, "problem statement", extract.Extract(input).Complexity)
	var conclusions []domain.Conclusion
	for _, sol := range solution.Solutions {
		proof.inference(sol.Approach, fmt.Sprintf("%s perspective", sol.Domain), sol.Confidence, premiseStep)
	}
	proof.conclusion(solution.Approach, "unified synthesis", solution.Confidence)
	conclusions = append(conclusions, domain.Conclusion{
		Statement:  solution.Approach,
		Confidence: solution.Confidence,
		Rule:       "unified-solution",
	})
	for _, ins := range solution.Insights {
		conclusions = append(conclusions, domain.Conclusion{
			Statement:  ins,
			Confidence: solution.Confidence,
			Rule:       "cross-domain-insight",
		})
	}

	result := domain.ReasoningResult{
		Mode:        domain.ModeCrossDomain,
		Confidence:  solution.Confidence,
		Conclusions: conclusions,
		Proof:       proof.steps,
		Uncertainty: crossDomainUncertainty(solution),
		Evidence:    solution.Domains,
	}
	s.metrics.RecordResult(result)
	return result
}

// ReasonAcrossDomains generates one candidate solution per participating
// domain, extracts the patterns common to at least two of them, and folds
// everything into a unified solution whose confidence is the mean of the
// per-domain validation scores.
func (s *CrossDomainService) ReasonAcrossDomains(problem string, requested []string) (domain.UnifiedSolution, error) {
	if strings.TrimSpace(problem) == "" {
		return domain.UnifiedSolution{}, fmt.Errorf("empty problem statement")
	}

	knowledge, err := s.resolveDomains(problem, requested)
	if err != nil {
		return domain.UnifiedSolution{}, err
	}

	var names []string
	var solutions []domain.DomainSolution
	relevances := make(map[string]float64, len(knowledge))
	for _, d := range knowledge {
		names = append(names, d.Name)
		rel := extract.KeywordRelevance(problem, d.Keywords)
		relevances[d.Name] = rel
		solutions = append(solutions, domain.DomainSolution{
			Domain:     d.Name,
			Approach:   fmt.Sprintf("apply %s thinking: %s", d.Name, bestPattern(problem, d.Patterns)),
			Patterns:   d.Patterns,
			Confidence: domain.Clamp01(0.35 + 0.5*rel + 0.02*float64(len(d.Concepts))),
		})
	}

	common := commonPatterns(solutions)

	insights := make([]string, 0, len(common))
	for _, p := range common {
		insights = append(insights, fmt.Sprintf("multiple domains converge on the approach: %s", p))
	}
	for _, m := range s.domains.Mappings() {
		if containsName(names, m.SourceDomain) && containsName(names, m.TargetDomain) {
			insights = append(insights, fmt.Sprintf("%s in %s mirrors %s in %s: %s",
				m.SourceConcept, m.SourceDomain, m.TargetConcept, m.TargetDomain, m.Reasoning))
		}
	}

	approach := fmt.Sprintf("combine the %s perspectives", strings.Join(names, ", "))
	if len(common) > 0 {
		approach = fmt.Sprintf("%s; lead with the shared approach: %s", approach, common[0])
	}

	// Per-domain validation: relevance plus how much of the domain's
	// contribution survived into the common pattern set.
	var validationSum float64
	for _, sol := range solutions {
		share := patternShare(sol.Patterns, common)
		validationSum += domain.Clamp01(0.4 + 0.4*relevances[sol.Domain] + 0.2*share)
	}

	return domain.UnifiedSolution{
		Problem:        problem,
		Domains:        names,
		Solutions:      solutions,
		CommonPatterns: common,
		Approach:       approach,
		Insights:       insights,
		Confidence:     domain.Clamp01(validationSum / float64(len(solutions))),
	}, nil
}

// TransferKnowledge maps knowledge keys from the source domain onto
// structurally analogous target concepts. A validated transfer appends
// exactly one mapping to the registry; a failed one leaves it untouched.
func (s *CrossDomainService) TransferKnowledge(source, target string, knowledge map[string]any) (domain.TransferResult, error) {
	if _, err := s.domains.Get(source); err != nil {
		return domain.TransferResult{}, fmt.Errorf("source domain %q: %w", source, err)
	}
	tgt, err := s.domains.Get(target)
	if err != nil {
		return domain.TransferResult{}, fmt.Errorf("target domain %q: %w", target, err)
	}

	result := domain.TransferResult{SourceDomain: source, TargetDomain: target}
	if len(knowledge) == 0 {
		result.Reasoning = "nothing to transfer"
		return result, nil
	}

	keys := make([]string, 0, len(knowledge))
	for k := range knowledge {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conceptMap := make(map[string]string)
	transferred := make(map[string]any)
	var simSum float64
	bestKey, bestConceptName, bestSim := "", "", 0.0

	for _, key := range keys {
		name, sim := bestTargetConcept(key, tgt)
		if sim < conceptMapThreshold {
			continue
		}
		conceptMap[key] = name
		transferred[name] = knowledge[key]
		simSum += sim
		if sim > bestSim {
			bestKey, bestConceptName, bestSim = key, name, sim
		}
	}

	if len(conceptMap) == 0 {
		result.Reasoning = "no structurally analogous target concepts found"
		return result, nil
	}

	compatibility := simSum / float64(len(conceptMap))
	result.ConceptMap = conceptMap
	result.Confidence = domain.Clamp01(compatibility)
	if compatibility < transferValidationThreshold {
		result.Reasoning = fmt.Sprintf("target compatibility %.2f below threshold", compatibility)
		return result, nil
	}

	mapping := domain.CrossDomainMapping{
		ID:            uuid.NewString(),
		SourceDomain:  source,
		TargetDomain:  target,
		SourceConcept: bestKey,
		TargetConcept: bestConceptName,
		Similarity:    bestSim,
		Confidence:    compatibility,
		Reasoning:     fmt.Sprintf("transferred %d of %d knowledge keys onto %s concepts", len(conceptMap), len(keys), target),
	}
	if err := s.domains.AppendMapping(mapping); err != nil {
		return domain.TransferResult{}, fmt.Errorf("record mapping: %w", err)
	}

	s.logger.Debug("knowledge transferred",
		zap.String("source", source),
		zap.String("target", target),
		zap.Int("mapped_keys", len(conceptMap)),
		zap.Float64("compatibility", compatibility))

	result.Transferred = transferred
	result.Mapping = &mapping
	result.Validated = true
	result.Reasoning = mapping.Reasoning
	return result, nil
}

// FindAnalogies scores every source-domain concept against every
// target-domain concept on structural similarity and returns the top five
// by confidence. It is a pure query: no mapping is recorded.
func (s *CrossDomainService) FindAnalogies(source, target string) ([]domain.Analogy, error) {
	src, err := s.domains.Get(source)
	if err != nil {
		return nil, fmt.Errorf("source domain %q: %w", source, err)
	}
	tgt, err := s.domains.Get(target)
	if err != nil {
		return nil, fmt.Errorf("target domain %q: %w", target, err)
	}

	var analogies []domain.Analogy
	for _, sc := range sortedConcepts(src) {
		for _, tc := range sortedConcepts(tgt) {
			sim := conceptSimilarity(sc, tc)
			if sim <= conceptMapThreshold {
				continue
			}
			analogies = append(analogies, domain.Analogy{
				SourceConcept: sc.Name,
				TargetDomain:  target,
				TargetConcept: tc.Name,
				Similarity:    sim,
				Confidence:    domain.Clamp01(0.2 + 0.75*sim),
				Insights:      analogicalInsights(sc, tc),
			})
		}
	}

	sort.SliceStable(analogies, func(i, j int) bool {
		if analogies[i].Confidence != analogies[j].Confidence {
			return analogies[i].Confidence > analogies[j].Confidence
		}
		return analogies[i].SourceConcept < analogies[j].SourceConcept
	})
	if len(analogies) > maxAnalogies {
		analogies = analogies[:maxAnalogies]
	}
	return analogies, nil
}

// CreateAbstractions lifts concept kinds shared by at least two of the
// named domains into abstraction records, appending each to the involved
// domains' knowledge bases. With fewer than two names, all domains
// participate.
func (s *CrossDomainService) CreateAbstractions(names []string) ([]domain.Abstraction, error) {
	if len(names) < 2 {
		names = s.domains.Names()
	}

	type member struct {
		domainName string
		concept    domain.Concept
	}
	byKind := make(map[string][]member)
	for _, name := range names {
		d, err := s.domains.Get(name)
		if err != nil {
			return nil, fmt.Errorf("domain %q: %w", name, err)
		}
		for _, c := range sortedConcepts(d) {
			byKind[c.Kind] = append(byKind[c.Kind], member{domainName: d.Name, concept: c})
		}
	}

	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	var abstractions []domain.Abstraction
	for _, kind := range kinds {
		members := byKind[kind]
		involved := map[string]bool{}
		propertyCount := map[string]int{}
		for _, m := range members {
			involved[m.domainName] = true
			for _, p := range m.concept.Properties {
				propertyCount[p]++
			}
		}
		if len(involved) < 2 {
			continue
		}

		var domains_ []string
		for d := range involved {
			domains_ = append(domains_, d)
		}
		sort.Strings(domains_)

		var shared []string
		for p, n := range propertyCount {
			if n >= 2 {
				shared = append(shared, p)
			}
		}
		sort.Strings(shared)

		a := domain.Abstraction{
			Name:       fmt.Sprintf("abstract %s", kind),
			Domains:    domains_,
			Properties: shared,
			Confidence: domain.Clamp01(float64(len(involved)) / float64(len(names))),
		}
		abstractions = append(abstractions, a)
		s.domains.AppendAbstraction(a.Name, a.Domains)
	}
	return abstractions, nil
}

// SynthesizeInsights produces cross-domain observations for a topic from
// the recorded mappings and the shared patterns of topically relevant
// domains.
func (s *CrossDomainService) SynthesizeInsights(topic string) ([]domain.Insight, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("empty topic")
	}

	relevances := make(map[string]float64)
	var relevant []domain.DomainKnowledge
	for _, d := range s.domains.List() {
		rel := extract.KeywordRelevance(topic, d.Keywords)
		relevances[d.Name] = rel
		if rel > domainRelevanceThreshold {
			relevant = append(relevant, d)
		}
	}

	var insights []domain.Insight
	for _, m := range s.domains.Mappings() {
		rel := relevances[m.SourceDomain]
		if relevances[m.TargetDomain] > rel {
			rel = relevances[m.TargetDomain]
		}
		if len(relevant) > 0 && rel <= domainRelevanceThreshold {
			continue
		}
		insights = append(insights, domain.Insight{
			Topic:      topic,
			Statement:  fmt.Sprintf("%s (%s) and %s (%s) share structure: %s", m.SourceConcept, m.SourceDomain, m.TargetConcept, m.TargetDomain, m.Reasoning),
			Domains:    []string{m.SourceDomain, m.TargetDomain},
			Confidence: domain.Clamp01(0.8*m.Confidence + 0.2*rel),
		})
	}

	for i := 0; i < len(relevant); i++ {
		for j := i + 1; j < len(relevant); j++ {
			for _, p := range sharedPatterns(relevant[i], relevant[j]) {
				insights = append(insights, domain.Insight{
					Topic:      topic,
					Statement:  fmt.Sprintf("%s and %s both %s", relevant[i].Name, relevant[j].Name, p),
					Domains:    []string{relevant[i].Name, relevant[j].Name},
					Confidence: domain.Clamp01(0.4 + 0.3*relevances[relevant[i].Name] + 0.3*relevances[relevant[j].Name]),
				})
			}
		}
	}

	sort.SliceStable(insights, func(i, j int) bool { return insights[i].Confidence > insights[j].Confidence })
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights, nil
}

func (s *CrossDomainService) resolveDomains(problem string, requested []string) ([]domain.DomainKnowledge, error) {
	if len(requested) > 0 {
		out := make([]domain.DomainKnowledge, 0, len(requested))
		for _, name := range requested {
			d, err := s.domains.Get(name)
			if err != nil {
				return nil, fmt.Errorf("domain %q: %w", name, err)
			}
			out = append(out, d)
		}
		return out, nil
	}

	var out []domain.DomainKnowledge
	for _, d := range s.domains.List() {
		if extract.KeywordRelevance(problem, d.Keywords) > domainRelevanceThreshold {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		for _, name := range defaultDomains {
			d, err := s.domains.Get(name)
			if err != nil {
				return nil, fmt.Errorf("default domain %q: %w", name, err)
			}
			out = append(out, d)
		}
	}
	return out, nil
}

// conceptSimilarity scores two concepts on structure: kind, properties,
// complexity proximity and name token overlap.
func conceptSimilarity(a, b domain.Concept) float64 {
	sim := 0.0
	if a.Kind == b.Kind && a.Kind != "" {
		sim += 0.3
	}
	sim += 0.4 * jaccard(a.Properties, b.Properties)
	sim += 0.2 * (1 - math.Abs(a.Complexity-b.Complexity))
	sim += 0.1 * jaccard(tokens(a.Name), tokens(b.Name))
	return domain.Clamp01(sim)
}

// bestTargetConcept scores a free-text knowledge key against a domain's
// concepts by token overlap with name, kind and properties.
func bestTargetConcept(key string, d domain.DomainKnowledge) (string, float64) {
	keyTokens := tokens(key)
	if len(keyTokens) == 0 {
		return "", 0
	}
	bestName, bestSim := "", 0.0
	for _, c := range sortedConcepts(d) {
		conceptTokens := append(tokens(c.Name), tokens(c.Kind)...)
		for _, p := range c.Properties {
			conceptTokens = append(conceptTokens, tokens(p)...)
		}
		matched := 0
		for _, kt := range keyTokens {
			if containsName(conceptTokens, kt) {
				matched++
			}
		}
		sim := float64(matched) / float64(len(keyTokens))
		if sim > bestSim {
			bestName, bestSim = c.Name, sim
		}
	}
	return bestName, domain.Clamp01(bestSim)
}

func analogicalInsights(src, tgt domain.Concept) []string {
	var insights []string
	for _, p := range src.Properties {
		if containsName(tgt.Properties, p) {
			insights = append(insights, fmt.Sprintf("both exhibit %s", p))
		}
	}
	if src.Kind == tgt.Kind {
		insights = append(insights, fmt.Sprintf("both are %s concepts; %s techniques may transfer to %s", src.Kind, src.Name, tgt.Name))
	}
	return insights
}

func sortedConcepts(d domain.DomainKnowledge) []domain.Concept {
	names := make([]string, 0, len(d.Concepts))
	for name := range d.Concepts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]domain.Concept, 0, len(names))
	for _, name := range names {
		out = append(out, d.Concepts[name])
	}
	return out
}

func bestPattern(problem string, patterns []string) string {
	if len(patterns) == 0 {
		return "reason from first principles"
	}
	problemTokens := tokens(problem)
	best, bestOverlap := patterns[0], -1
	for _, p := range patterns {
		overlap := 0
		for _, t := range tokens(p) {
			if containsName(problemTokens, t) {
				overlap++
			}
		}
		if overlap > bestOverlap {
			best, bestOverlap = p, overlap
		}
	}
	return best
}

func commonPatterns(solutions []domain.DomainSolution) []string {
	count := map[string]int{}
	var order []string
	for _, sol := range solutions {
		for _, p := range sol.Patterns {
			if count[p] == 0 {
				order = append(order, p)
			}
			count[p]++
		}
	}
	var common []string
	for _, p := range order {
		if count[p] >= 2 {
			common = append(common, p)
		}
	}
	return common
}

func patternShare(patterns, common []string) float64 {
	if len(patterns) == 0 {
		return 0
	}
	matched := 0
	for _, p := range patterns {
		if containsName(common, p) {
			matched++
		}
	}
	return float64(matched) / float64(len(patterns))
}

func sharedPatterns(a, b domain.DomainKnowledge) []string {
	var out []string
	for _, p := range a.Patterns {
		if containsName(b.Patterns, p) {
			out = append(out, p)
		}
	}
	return out
}

func crossDomainUncertainty(sol domain.UnifiedSolution) domain.Uncertainty {
	level := 0.3
	var sources []string
	if len(sol.CommonPatterns) == 0 {
		level += 0.2
		sources = append(sources, "no pattern is shared between the consulted domains")
	}
	if len(sol.Domains) < 2 {
		level += 0.1
		sources = append(sources, "only one domain consulted")
	}
	return domain.Uncertainty{
		Level:       domain.Clamp01(level),
		Sources:     sources,
		Mitigations: []string{"name additional domains explicitly in the call"},
	}
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[strings.ToLower(v)] = true
	}
	inter := 0
	union := len(set)
	for _, v := range b {
		if set[strings.ToLower(v)] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

func containsName(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
