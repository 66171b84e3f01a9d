package domain

// The quantum engine is a heuristic labeling scheme that borrows quantum
// vocabulary for weighted multi-valued states. Nothing here simulates
// physics; amplitudes and phases are scoring inputs, not wavefunctions.

// QuantumOperatorKind groups operators by the role they play in
// classification.
type QuantumOperatorKind string

const (
	QuantumKindIdentity     QuantumOperatorKind = "identity"
	QuantumKindTransform    QuantumOperatorKind = "transform"
	QuantumKindSuperpose    QuantumOperatorKind = "superpose"
	QuantumKindMeasurement  QuantumOperatorKind = "measurement"
	QuantumKindEntanglement QuantumOperatorKind = "entanglement"
)

// QuantumOperator is one entry in the quantum engine's operator registry.
// Matrix is a small square matrix applied linearly to state amplitudes.
type QuantumOperator struct {
	Name     string              `json:"name"`
	Symbol   string              `json:"symbol"`
	Kind     QuantumOperatorKind `json:"kind"`
	Matrix   [][]float64         `json:"matrix"`
	Strength float64             `json:"strength"`
	Keywords []string            `json:"keywords,omitempty"`
}

// QuantumState is a heuristic weighted state extracted from bra-ket-like
// tokens in the input, or synthesized as a default 50/50 superposition.
type QuantumState struct {
	ID            string             `json:"id"`
	Amplitude     float64            `json:"amplitude"`
	Phase         float64            `json:"phase"`
	Superposition map[string]float64 `json:"superposition"`
	EntangledWith []string           `json:"entangled_with,omitempty"`
}

// Measurement is the outcome of applying a measurement operator to a state.
// Probability is the squared amplitude after the operator's linear step.
type Measurement struct {
	Result      int     `json:"result"`
	Probability float64 `json:"probability"`
	Collapsed   bool    `json:"collapsed"`
}
