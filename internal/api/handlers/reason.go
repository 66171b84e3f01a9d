package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/service"
)

// ReasonHandler serves the per-mode reasoning endpoints.
type ReasonHandler struct {
	engine   *service.ReasoningEngine
	maxInput int
}

func NewReasonHandler(engine *service.ReasoningEngine, maxInput int) *ReasonHandler {
	return &ReasonHandler{engine: engine, maxInput: maxInput}
}

type reasonRequest struct {
	Input   string         `json:"input"`
	Context map[string]any `json:"context,omitempty"`
}

type reasonResponse struct {
	Result domain.ReasoningResult `json:"result"`
}

// Evaluate handles POST /v1/reason/{mode}.
func (h *ReasonHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	if !domain.ValidReasoningMode(mode) {
		writeError(w, http.StatusNotFound, "unknown reasoning mode "+strconv.Quote(mode))
		return
	}
	engine, err := h.engine.Engine(domain.ReasoningMode(mode))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	req, ok := h.decodeReason(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, reasonResponse{Result: engine.Evaluate(req.Input, req.Context)})
}

// EvaluateAll handles POST /v1/reason: every engine runs the same input and
// the per-mode results come back keyed by mode.
func (h *ReasonHandler) EvaluateAll(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReason(w, r)
	if !ok {
		return
	}

	results := make(map[string]domain.ReasoningResult)
	for _, engine := range h.engine.Engines() {
		results[string(engine.Mode())] = engine.Evaluate(req.Input, req.Context)
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *ReasonHandler) decodeReason(w http.ResponseWriter, r *http.Request) (reasonRequest, bool) {
	var req reasonRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, int64(h.maxInput))).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(w, http.StatusBadRequest, "input is required")
		return req, false
	}
	return req, true
}
