package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/service"
	"github.com/mindforge-ai/noesis/internal/store"
)

// AdminHandler registers rules, operators, distributions, worlds, domains
// and decision baselines at runtime. A duplicate identifier replaces the
// previous entry; nothing here is persisted across restarts.
type AdminHandler struct {
	engine *service.ReasoningEngine
}

func NewAdminHandler(engine *service.ReasoningEngine) *AdminHandler {
	return &AdminHandler{engine: engine}
}

func decodeInto(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeRegistration(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
	case errors.Is(err, store.ErrMissingID), errors.Is(err, store.ErrMissingName),
		errors.Is(err, store.ErrDanglingWorld):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "registration failed")
	}
}

// CreateRule handles POST /v1/admin/rules.
func (h *AdminHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var rule domain.InferenceRule
	if !decodeInto(w, r, &rule) {
		return
	}
	if rule.Kind != "" && !domain.ValidRuleKind(string(rule.Kind)) {
		writeError(w, http.StatusBadRequest, "invalid rule kind")
		return
	}
	writeRegistration(w, h.engine.AddInferenceRule(rule))
}

// ListAxioms handles GET /v1/admin/axioms.
func (h *AdminHandler) ListAxioms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"axioms": h.engine.Axioms()})
}

// CreateAxiom handles POST /v1/admin/axioms.
func (h *AdminHandler) CreateAxiom(w http.ResponseWriter, r *http.Request) {
	var axiom domain.Axiom
	if !decodeInto(w, r, &axiom) {
		return
	}
	writeRegistration(w, h.engine.AddAxiom(axiom))
}

// CreateModalOperator handles POST /v1/admin/modal-operators.
func (h *AdminHandler) CreateModalOperator(w http.ResponseWriter, r *http.Request) {
	var op domain.ModalOperator
	if !decodeInto(w, r, &op) {
		return
	}
	writeRegistration(w, h.engine.AddModalOperator(op))
}

// CreateModalWorld handles POST /v1/admin/modal-worlds.
func (h *AdminHandler) CreateModalWorld(w http.ResponseWriter, r *http.Request) {
	var world domain.ModalWorld
	if !decodeInto(w, r, &world) {
		return
	}
	writeRegistration(w, h.engine.AddModalWorld(world))
}

// CreateDistribution handles POST /v1/admin/distributions.
func (h *AdminHandler) CreateDistribution(w http.ResponseWriter, r *http.Request) {
	var dist domain.ProbabilityDistribution
	if !decodeInto(w, r, &dist) {
		return
	}
	writeRegistration(w, h.engine.AddProbabilityDistribution(dist))
}

// CreateQuantumOperator handles POST /v1/admin/quantum-operators.
func (h *AdminHandler) CreateQuantumOperator(w http.ResponseWriter, r *http.Request) {
	var op domain.QuantumOperator
	if !decodeInto(w, r, &op) {
		return
	}
	writeRegistration(w, h.engine.AddQuantumOperator(op))
}

// CreateDecisionOption handles POST /v1/admin/decision-options.
func (h *AdminHandler) CreateDecisionOption(w http.ResponseWriter, r *http.Request) {
	var option domain.DecisionOption
	if !decodeInto(w, r, &option) {
		return
	}
	writeRegistration(w, h.engine.AddDecisionOption(option))
}

// CreateDecisionCriterion handles POST /v1/admin/decision-criteria.
func (h *AdminHandler) CreateDecisionCriterion(w http.ResponseWriter, r *http.Request) {
	var criterion domain.DecisionCriterion
	if !decodeInto(w, r, &criterion) {
		return
	}
	writeRegistration(w, h.engine.AddDecisionCriterion(criterion))
}

// CreateDomain handles POST /v1/admin/domains.
func (h *AdminHandler) CreateDomain(w http.ResponseWriter, r *http.Request) {
	var d domain.DomainKnowledge
	if !decodeInto(w, r, &d) {
		return
	}
	writeRegistration(w, h.engine.AddDomain(d))
}
