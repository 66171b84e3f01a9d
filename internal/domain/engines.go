package domain

// Engine is the capability shared by every reasoning mode. An orchestrator
// can hold a homogeneous slice of engines and dispatch without knowing which
// logic each one implements. Evaluate never returns an error: malformed
// input degrades to a neutral result instead of failing the call.
type Engine interface {
	Mode() ReasoningMode
	Evaluate(input string, ctx map[string]any) ReasoningResult
}
