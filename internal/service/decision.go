package service

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/store"
	"go.uber.org/zap"
)

// Risks above this probability on the selected option are surfaced.
const riskReportThreshold = 0.3

var (
	chooseBetweenRe = regexp.MustCompile(`(?i)choose between\s+([^,.?]+?)\s+(?:or|and)\s+([^,.?]+)`)
	optionRe        = regexp.MustCompile(`(?i)\boption\s+([A-Za-z0-9_-]+)`)
	criterionRe     = regexp.MustCompile(`(?i)\bcriterion\s+([A-Za-z0-9_-]+)`)
	consideringRe   = regexp.MustCompile(`(?i)\b(?:based on|considering)\s+([^,.?]+)`)
	scoreTokenRe    = regexp.MustCompile(`(?i)\b(score|rating):(\d+(?:\.\d+)?)`)
	riskTokenRe     = regexp.MustCompile(`(?i)\brisk:(\d+(?:\.\d+)?)`)
)

// Criteria with these names measure something to minimize; pessimistic
// rules read their scores inverted while optimistic rules take the stated
// value at face value.
var costLikeCriteria = map[string]bool{
	"cost": true, "risk": true, "loss": true, "time": true,
	"effort": true, "price": true, "complexity": true, "expense": true,
}

// DecisionService arbitrates between options with a fixed, ordered rule
// catalogue. Every rule is a pure function of the option and criteria set;
// the final recommendation is the outcome with the highest confidence, ties
// resolving to the earliest registered rule.
type DecisionService struct {
	store   *store.DecisionStore
	metrics *Metrics
	logger  *zap.Logger
}

func NewDecisionService(st *store.DecisionStore, metrics *Metrics, logger *zap.Logger) *DecisionService {
	return &DecisionService{store: st, metrics: metrics, logger: logger}
}

func (s *DecisionService) Mode() domain.ReasoningMode { return domain.ModeDecision }

func (s *DecisionService) Evaluate(input string, ctx map[string]any) domain.ReasoningResult {
	return s.Decide(input, ctx)
}

func (s *DecisionService) Decide(input string, ctx map[string]any) domain.ReasoningResult {
	options, criteria := s.gatherOptions(input, ctx)
	if len(options) == 0 {
		result := domain.NeutralResult(domain.ModeDecision, "no decision options found in input or context")
		s.metrics.RecordResult(result)
		return result
	}

	proof := newProofBuilder()
	for _, o := range options {
		proof.premise(
			fmt.Sprintf("option %s: %d criteria scores, %d utilities, %d risks",
				o.Name, len(o.CriteriaScores), len(o.Utilities), len(o.Risks)),
			"option extraction", o.Confidence)
	}

	var outcomes []domain.RuleOutcome
	var evidence []string
	for _, rule := range s.store.Rules() {
		outcome := rule.Apply(options, criteria)
		outcome.Rule = rule.Name
		outcomes = append(outcomes, outcome)
		evidence = append(evidence, fmt.Sprintf("%s -> %s (%.2f)", rule.Name, outcome.SelectedID, outcome.Confidence))
		proof.inference(
			fmt.Sprintf("%s selects %s", rule.Name, outcome.SelectedID),
			outcome.Reasoning, outcome.Confidence)
	}

	if len(outcomes) == 0 {
		result := domain.NeutralResult(domain.ModeDecision, "no decision rules registered")
		s.metrics.RecordResult(result)
		return result
	}

	best := outcomes[0]
	for _, o := range outcomes[1:] {
		// Strict comparison keeps registration-order tie-breaking.
		if o.Confidence > best.Confidence {
			best = o
		}
	}
	selected := findOption(options, best.SelectedID)

	statement := fmt.Sprintf("choose %s (%s: %s)", selected.Name, best.Rule, best.Reasoning)
	proof.conclusion(statement, best.Rule, best.Confidence)

	conclusions := []domain.Conclusion{
		{Statement: statement, Confidence: best.Confidence, Rule: best.Rule},
		{
			Statement:  fmt.Sprintf("compared %d options across %d criteria with %d rules", len(options), len(criteria), len(outcomes)),
			Confidence: best.Confidence,
			Rule:       "summary",
		},
	}

	var alternatives []string
	for _, o := range options {
		if o.ID != selected.ID {
			alternatives = append(alternatives, o.Name)
		}
	}

	uncertainty := decisionUncertainty(outcomes, selected)

	result := domain.ReasoningResult{
		Mode:         domain.ModeDecision,
		Confidence:   best.Confidence,
		Conclusions:  conclusions,
		Proof:        proof.steps,
		Alternatives: alternatives,
		Uncertainty:  uncertainty,
		Evidence:     evidence,
	}
	s.metrics.RecordResult(result)
	return result
}

// gatherOptions merges options and criteria from the input text, the call
// context, and the administratively registered baselines.
func (s *DecisionService) gatherOptions(input string, ctx map[string]any) ([]domain.DecisionOption, []domain.DecisionCriterion) {
	var options []domain.DecisionOption
	seen := map[string]bool{}

	addOption := func(o domain.DecisionOption) {
		if o.ID == "" {
			o.ID = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(o.Name), " ", "-"))
		}
		if o.Name == "" {
			o.Name = o.ID
		}
		if o.ID == "" || seen[o.ID] {
			return
		}
		seen[o.ID] = true
		o.Confidence = domain.Clamp01(o.Confidence)
		options = append(options, o)
	}

	if m := chooseBetweenRe.FindStringSubmatch(input); m != nil {
		addOption(domain.DecisionOption{Name: strings.TrimSpace(m[1]), Confidence: 0.5})
		addOption(domain.DecisionOption{Name: strings.TrimSpace(m[2]), Confidence: 0.5})
	}
	for _, m := range optionRe.FindAllStringSubmatch(input, -1) {
		addOption(domain.DecisionOption{Name: m[1], Confidence: 0.5})
	}

	if ctx != nil {
		if raw, ok := ctx["options"].([]any); ok {
			for _, entry := range raw {
				if spec, ok := entry.(map[string]any); ok {
					addOption(parseOptionSpec(spec))
				}
			}
		}
	}
	for _, o := range s.store.Options() {
		addOption(o)
	}

	criteria := s.gatherCriteria(input, ctx, options)
	return options, criteria
}

func (s *DecisionService) gatherCriteria(input string, ctx map[string]any, options []domain.DecisionOption) []domain.DecisionCriterion {
	var criteria []domain.DecisionCriterion
	seen := map[string]bool{}
	add := func(name string, weight float64) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		criteria = append(criteria, domain.DecisionCriterion{Name: name, Weight: domain.Clamp01(weight)})
	}

	for _, m := range criterionRe.FindAllStringSubmatch(input, -1) {
		add(m[1], 1)
	}
	for _, m := range consideringRe.FindAllStringSubmatch(input, -1) {
		for _, part := range strings.FieldsFunc(m[1], func(r rune) bool { return r == ',' }) {
			for _, piece := range strings.Split(part, " and ") {
				add(piece, 1)
			}
		}
	}

	if ctx != nil {
		if raw, ok := ctx["criteria"].([]any); ok {
			for _, entry := range raw {
				switch v := entry.(type) {
				case string:
					add(v, 1)
				case map[string]any:
					name, _ := v["name"].(string)
					weight, ok := floatFromContext(v, "weight")
					if !ok {
						weight = 1
					}
					add(name, weight)
				}
			}
		}
	}
	for _, c := range s.store.Criteria() {
		add(c.Name, c.Weight)
	}

	// Fall back to the criterion keys the options themselves carry, sorted
	// for a deterministic rule evaluation order.
	if len(criteria) == 0 {
		keys := map[string]bool{}
		for _, o := range options {
			for k := range o.CriteriaScores {
				keys[k] = true
			}
			for k := range o.Utilities {
				keys[k] = true
			}
		}
		names := make([]string, 0, len(keys))
		for k := range keys {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, n := range names {
			add(n, 1)
		}
	}
	if len(criteria) == 0 {
		add("value", 1)
	}
	return criteria
}

// parseOptionSpec reads one context-supplied option. Numeric score/rating
// fields use a 0-10 scale, risk a 0-100 scale; string fields may carry
// score:N / rating:N / risk:N tokens on the same scales.
func parseOptionSpec(spec map[string]any) domain.DecisionOption {
	o := domain.DecisionOption{
		CriteriaScores: map[string]float64{},
		Utilities:      map[string]float64{},
		Risks:          map[string]float64{},
		Confidence:     0.6,
	}
	if name, ok := spec["name"].(string); ok {
		o.Name = name
	}
	if id, ok := spec["id"].(string); ok {
		o.ID = id
	}
	if v, ok := floatFromContext(spec, "score"); ok {
		o.CriteriaScores["value"] = domain.Clamp01(v / 10)
	}
	if v, ok := floatFromContext(spec, "rating"); ok {
		o.CriteriaScores["value"] = domain.Clamp01(v / 10)
	}
	if v, ok := floatFromContext(spec, "risk"); ok {
		o.Risks["risk"] = domain.Clamp01(v / 100)
	}
	if desc, ok := spec["description"].(string); ok {
		for _, m := range scoreTokenRe.FindAllStringSubmatch(desc, -1) {
			if v, err := strconv.ParseFloat(m[2], 64); err == nil {
				o.CriteriaScores["value"] = domain.Clamp01(v / 10)
			}
		}
		for _, m := range riskTokenRe.FindAllStringSubmatch(desc, -1) {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				o.Risks["risk"] = domain.Clamp01(v / 100)
			}
		}
	}
	if utils, ok := spec["utilities"].(map[string]any); ok {
		for k := range utils {
			if v, ok := floatFromContext(utils, k); ok {
				o.Utilities[strings.ToLower(k)] = domain.Clamp01(v)
			}
		}
	}
	if scores, ok := spec["criteria_scores"].(map[string]any); ok {
		for k := range scores {
			if v, ok := floatFromContext(scores, k); ok {
				o.CriteriaScores[strings.ToLower(k)] = domain.Clamp01(v)
			}
		}
	}
	return o
}

func findOption(options []domain.DecisionOption, id string) domain.DecisionOption {
	for _, o := range options {
		if o.ID == id {
			return o
		}
	}
	return options[0]
}

// effectiveScore reads an option's score in "higher is better" terms:
// cost-like criteria are inverted.
func effectiveScore(o domain.DecisionOption, criterion string) float64 {
	v := o.Score(criterion)
	if costLikeCriteria[criterion] {
		return domain.Clamp01(1 - v)
	}
	return domain.Clamp01(v)
}

func decisionUncertainty(outcomes []domain.RuleOutcome, selected domain.DecisionOption) domain.Uncertainty {
	disagreements := map[string]bool{}
	for _, o := range outcomes {
		disagreements[o.SelectedID] = true
	}
	level := 0.2 + 0.15*float64(len(disagreements)-1)
	sources := []string{}
	if len(disagreements) > 1 {
		sources = append(sources, fmt.Sprintf("rules disagree across %d options", len(disagreements)))
	}
	for name, p := range selected.Risks {
		if p > riskReportThreshold {
			level += 0.1
			sources = append(sources, fmt.Sprintf("risk on selected option: %s (p=%.2f)", name, p))
		}
	}
	return domain.Uncertainty{
		Level:       domain.Clamp01(level),
		Sources:     sources,
		Mitigations: []string{"add criteria scores to discriminate between options"},
	}
}

// seedDecisionRules registers the fixed catalogue in arbitration order.
func seedDecisionRules(s *store.DecisionStore) error {
	rules := []domain.DecisionRule{
		{Name: "maximax", Apply: ruleMaximax},
		{Name: "maximin", Apply: ruleMaximin},
		{Name: "minimax-regret", Apply: ruleMinimaxRegret},
		{Name: "expected-value", Apply: ruleExpectedValue},
		{Name: "utility-maximization", Apply: ruleUtilityMax},
	}
	for _, r := range rules {
		if err := s.AddRule(r); err != nil {
			return fmt.Errorf("seed decision rule %s: %w", r.Name, err)
		}
	}
	return nil
}

// ruleMaximax is the optimist: take each option's best stated score at face
// value and pick the best of the best.
func ruleMaximax(options []domain.DecisionOption, criteria []domain.DecisionCriterion) domain.RuleOutcome {
	bestID, bestVal := "", -1.0
	for _, o := range options {
		val := 0.0
		for _, c := range criteria {
			if s := o.Score(c.Name); s > val {
				val = s
			}
		}
		if val > bestVal {
			bestVal, bestID = val, o.ID
		}
	}
	return domain.RuleOutcome{
		SelectedID: bestID,
		Reasoning:  fmt.Sprintf("best best-case score %.2f", bestVal),
		Confidence: domain.Clamp01(0.5 + 0.45*bestVal),
	}
}

// ruleMaximin is the pessimist: judge each option by its worst effective
// outcome, with cost-like criteria inverted, and pick the least bad.
func ruleMaximin(options []domain.DecisionOption, criteria []domain.DecisionCriterion) domain.RuleOutcome {
	bestID, bestWorst := "", -1.0
	for _, o := range options {
		worst := 1.0
		for _, c := range criteria {
			if s := effectiveScore(o, c.Name); s < worst {
				worst = s
			}
		}
		if worst > bestWorst {
			bestWorst, bestID = worst, o.ID
		}
	}
	return domain.RuleOutcome{
		SelectedID: bestID,
		Reasoning:  fmt.Sprintf("best worst-case outcome %.2f", bestWorst),
		Confidence: domain.Clamp01(0.45 + 0.45*bestWorst),
	}
}

func ruleMinimaxRegret(options []domain.DecisionOption, criteria []domain.DecisionCriterion) domain.RuleOutcome {
	bestPerCriterion := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		for _, o := range options {
			if s := effectiveScore(o, c.Name); s > bestPerCriterion[c.Name] {
				bestPerCriterion[c.Name] = s
			}
		}
	}
	bestID, minMaxRegret := "", 2.0
	for _, o := range options {
		maxRegret := 0.0
		for _, c := range criteria {
			regret := bestPerCriterion[c.Name] - effectiveScore(o, c.Name)
			if regret > maxRegret {
				maxRegret = regret
			}
		}
		if maxRegret < minMaxRegret {
			minMaxRegret, bestID = maxRegret, o.ID
		}
	}
	return domain.RuleOutcome{
		SelectedID: bestID,
		Reasoning:  fmt.Sprintf("smallest maximum regret %.2f", minMaxRegret),
		Confidence: domain.Clamp01(0.4 + 0.4*(1-minMaxRegret)),
	}
}

func ruleExpectedValue(options []domain.DecisionOption, criteria []domain.DecisionCriterion) domain.RuleOutcome {
	bestID, bestEV := "", -2.0
	for _, o := range options {
		var sum, weights float64
		for _, c := range criteria {
			w := c.Weight
			if w == 0 {
				w = 1
			}
			sum += effectiveScore(o, c.Name) * w
			weights += w
		}
		ev := 0.0
		if weights > 0 {
			ev = sum / weights
		}
		var riskSum float64
		for _, p := range o.Risks {
			riskSum += p
		}
		if n := len(o.Risks); n > 0 {
			ev -= 0.5 * riskSum / float64(n)
		}
		if ev > bestEV {
			bestEV, bestID = ev, o.ID
		}
	}
	return domain.RuleOutcome{
		SelectedID: bestID,
		Reasoning:  fmt.Sprintf("highest risk-adjusted expected value %.2f", bestEV),
		Confidence: domain.Clamp01(0.4 + 0.5*bestEV),
	}
}

func ruleUtilityMax(options []domain.DecisionOption, criteria []domain.DecisionCriterion) domain.RuleOutcome {
	weightFor := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		w := c.Weight
		if w == 0 {
			w = 1
		}
		weightFor[c.Name] = w
	}
	bestID, bestUtil := "", -1.0
	for _, o := range options {
		var sum, weights float64
		for name, u := range o.Utilities {
			w, ok := weightFor[name]
			if !ok {
				w = 1
			}
			sum += u * w
			weights += w
		}
		util := 0.0
		if weights > 0 {
			util = sum / weights
		}
		if util > bestUtil {
			bestUtil, bestID = util, o.ID
		}
	}
	return domain.RuleOutcome{
		SelectedID: bestID,
		Reasoning:  fmt.Sprintf("highest weighted utility %.2f", bestUtil),
		Confidence: domain.Clamp01(0.35 + 0.5*bestUtil),
	}
}
