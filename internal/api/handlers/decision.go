package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mindforge-ai/noesis/internal/domain"
	"github.com/mindforge-ai/noesis/internal/service"
)

type DecisionHandler struct {
	svc      *service.DecisionService
	maxInput int
}

func NewDecisionHandler(svc *service.DecisionService, maxInput int) *DecisionHandler {
	return &DecisionHandler{svc: svc, maxInput: maxInput}
}

type decideRequest struct {
	Input   string         `json:"input"`
	Options []any          `json:"options,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// Decide handles POST /v1/decide. Options supplied at the top level are
// folded into the context the engine reads.
func (h *DecisionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, int64(h.maxInput))).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Input) == "" && len(req.Options) == 0 {
		writeError(w, http.StatusBadRequest, "input or options required")
		return
	}

	ctx := req.Context
	if len(req.Options) > 0 {
		if ctx == nil {
			ctx = map[string]any{}
		}
		ctx["options"] = req.Options
	}

	result := h.svc.Decide(req.Input, ctx)
	writeJSON(w, http.StatusOK, reasonResponse{Result: result})
}

var _ domain.Engine = (*service.DecisionService)(nil)
