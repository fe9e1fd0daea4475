package httptransport

import (
	"encoding/json"
	"net/http"

	"decisionnet/internal/app"
	"decisionnet/internal/decision"
	"decisionnet/internal/transport/decidedto"
)

type Handler struct {
	svc app.DecideService
}

func NewHandler(svc app.DecideService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in decidedto.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()})
		return
	}

	if in.Debug {
		out, trace, info, err := h.svc.DecideWithTraceAndOptions(in.StructureDOT, in.Evidence, in.Options())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, decideErrorBody(err, trace, info))
			return
		}
		writeJSON(w, http.StatusOK, decidedto.DecideResponse{Decision: out, Trace: trace, Model: info})
		return
	}

	out, info, err := h.svc.DecideWithOptions(in.StructureDOT, in.Evidence, in.Options())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, decideErrorBody(err, nil, info))
		return
	}
	writeJSON(w, http.StatusOK, decidedto.DecideResponse{Decision: out, Model: info})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decideErrorBody(err error, trace *decision.Trace, info *app.ModelInfo) map[string]any {
	body := map[string]any{
		"error":   "decide failed",
		"details": err.Error(),
	}
	if trace != nil {
		body["trace"] = trace
	}
	if info != nil {
		body["model"] = info
	}
	return body
}
