package domain

// ProbabilityDistribution is a named distribution in the probabilistic
// engine's registry. Params are distribution-specific (mean/stddev for
// normal, p for bernoulli, min/max for uniform).
type ProbabilityDistribution struct {
	Name   string             `json:"name"`
	Kind   string             `json:"kind"`
	Params map[string]float64 `json:"params,omitempty"`
}

// BayesUpdate applies Bayes' rule to a prior. It is a pure function of its
// three inputs: posterior = likelihood * prior / evidence, clamped to [0,1].
// A zero evidence term yields the prior unchanged rather than dividing by
// zero.
func BayesUpdate(prior, likelihood, evidence float64) float64 {
	if evidence == 0 {
		return Clamp01(prior)
	}
	return Clamp01(likelihood * prior / evidence)
}
