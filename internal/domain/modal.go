package domain

// ModalOperator is one entry in the modal engine's operator registry.
// Strength expresses how forceful the operator is: necessity binds harder
// than possibility. Dual names the operator's De Morgan partner where one
// exists (necessity/possibility).
type ModalOperator struct {
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Strength float64  `json:"strength"`
	Dual     string   `json:"dual,omitempty"`
	Keywords []string `json:"keywords"`
}

// ModalWorld is one node of a possible-worlds graph. Accessibility maps
// reachable world IDs to edge weights in [0,1]; every key must reference a
// world that exists in the same graph.
type ModalWorld struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	AccessibleFrom []string           `json:"accessible_from,omitempty"`
	Propositions   map[string]bool    `json:"propositions"`
	Accessibility  map[string]float64 `json:"accessibility"`
}
