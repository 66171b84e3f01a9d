package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mindforge-ai/noesis/internal/service"
	"github.com/mindforge-ai/noesis/internal/store"
)

// DomainHandler serves the cross-domain reasoning surface: knowledge base
// queries, transfer, analogies, abstractions and insight synthesis.
type DomainHandler struct {
	engine *service.ReasoningEngine
}

func NewDomainHandler(engine *service.ReasoningEngine) *DomainHandler {
	return &DomainHandler{engine: engine}
}

// List handles GET /v1/domains.
func (h *DomainHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"domains": h.engine.Domains()})
}

// Get handles GET /v1/domains/{name}.
func (h *DomainHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	d, err := h.engine.DomainKnowledge(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown domain")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load domain")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Mappings handles GET /v1/domains/mappings.
func (h *DomainHandler) Mappings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"mappings": h.engine.Mappings()})
}

type domainReasonRequest struct {
	Problem string   `json:"problem"`
	Domains []string `json:"domains,omitempty"`
}

// Reason handles POST /v1/domains/reason: solve one problem from several
// domain perspectives at once. Omitted domains fall back to relevance
// selection.
func (h *DomainHandler) Reason(w http.ResponseWriter, r *http.Request) {
	var req domainReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Problem) == "" {
		writeError(w, http.StatusBadRequest, "problem is required")
		return
	}

	solution, err := h.engine.CrossDomain().ReasonAcrossDomains(req.Problem, req.Domains)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "cross-domain reasoning failed")
		return
	}
	writeJSON(w, http.StatusOK, solution)
}

type transferRequest struct {
	Source    string         `json:"source"`
	Target    string         `json:"target"`
	Knowledge map[string]any `json:"knowledge"`
}

// Transfer handles POST /v1/domains/transfer.
func (h *DomainHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Source == "" || req.Target == "" {
		writeError(w, http.StatusBadRequest, "source and target are required")
		return
	}

	result, err := h.engine.CrossDomain().TransferKnowledge(req.Source, req.Target, req.Knowledge)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "transfer failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type analogyRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Analogies handles POST /v1/domains/analogies.
func (h *DomainHandler) Analogies(w http.ResponseWriter, r *http.Request) {
	var req analogyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analogies, err := h.engine.CrossDomain().FindAnalogies(req.Source, req.Target)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "analogy search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analogies": analogies})
}

type abstractionsRequest struct {
	Domains []string `json:"domains"`
}

// Abstractions handles POST /v1/domains/abstractions.
func (h *DomainHandler) Abstractions(w http.ResponseWriter, r *http.Request) {
	var req abstractionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	abstractions, err := h.engine.CrossDomain().CreateAbstractions(req.Domains)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "abstraction lifting failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"abstractions": abstractions})
}

type insightsRequest struct {
	Topic string `json:"topic"`
}

// Insights handles POST /v1/domains/insights.
func (h *DomainHandler) Insights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	insights, err := h.engine.CrossDomain().SynthesizeInsights(req.Topic)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "insight synthesis failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"insights": insights})
}
