package domain

// DecisionOption is one candidate in a multi-criteria decision call.
// All score maps are keyed by criterion name; a missing key counts as 0,
// never an error, so options with sparse scores stay comparable.
type DecisionOption struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	CriteriaScores map[string]float64 `json:"criteria_scores,omitempty"`
	Utilities      map[string]float64 `json:"utilities,omitempty"`
	Risks          map[string]float64 `json:"risks,omitempty"`
	Confidence     float64            `json:"confidence"`
}

// Score returns the option's score for a criterion, falling back from
// CriteriaScores to Utilities, then to 0.
func (o DecisionOption) Score(criterion string) float64 {
	if v, ok := o.CriteriaScores[criterion]; ok {
		return v
	}
	if v, ok := o.Utilities[criterion]; ok {
		return v
	}
	return 0
}

// DecisionCriterion names one axis options are compared on.
type DecisionCriterion struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// RuleOutcome is the verdict of a single decision rule.
type RuleOutcome struct {
	Rule       string  `json:"rule"`
	SelectedID string  `json:"selected_id"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// DecisionRuleFunc is a pure arbitration function over a fixed option and
// criteria set. Implementations must not mutate their arguments.
type DecisionRuleFunc func(options []DecisionOption, criteria []DecisionCriterion) RuleOutcome

// DecisionRule pairs a registered name with its arbitration function.
// Registration order is significant: confidence ties between rules resolve
// to the earliest registered.
type DecisionRule struct {
	Name  string
	Apply DecisionRuleFunc
}
