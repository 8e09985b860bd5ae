package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"croprec/crop"
	"croprec/db"
	"croprec/inference"
	"croprec/monitoring"
)

// Handlers holds the injected dependencies for every route.
type Handlers struct {
	svc    *inference.Service
	store  *db.Store
	hub    *monitoring.Hub
	logger *zap.Logger
}

// NewHandlers wires the route handlers. store and hub may be nil; the
// corresponding routes then report unavailability.
func NewHandlers(svc *inference.Service, store *db.Store, hub *monitoring.Hub, logger *zap.Logger) *Handlers {
	return &Handlers{svc: svc, store: store, hub: hub, logger: logger}
}

// Register mounts all routes on the mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /predict", h.handleSubmit)

	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
	mux.HandleFunc("GET /api/crops", h.handleCrops)
	mux.HandleFunc("GET /api/predictions", h.handlePredictions)
	if h.hub != nil {
		mux.HandleFunc("GET /api/ws/predictions", h.hub.ServeWS)
	}
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// predictRequest carries the raw form values; they stay strings so the
// validator owns all parsing.
type predictRequest struct {
	Nitrogen    string `json:"nitrogen"`
	Phosphorus  string `json:"phosphorus"`
	Potassium   string `json:"potassium"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	PH          string `json:"ph"`
	Rainfall    string `json:"rainfall"`
}

func (req predictRequest) raw() []string {
	return []string{req.Nitrogen, req.Phosphorus, req.Potassium,
		req.Temperature, req.Humidity, req.PH, req.Rainfall}
}

func (h *Handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	vec, msgs := crop.ParseInputs(req.raw())
	if len(msgs) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": msgs})
		return
	}

	rec, err := h.svc.Recommend(r.Context(), vec)
	if err != nil {
		h.logger.Error("inference failed", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	inputs := make(map[string]float64, len(crop.Fields))
	for i, f := range crop.Fields {
		inputs[f.Key] = vec[i]
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"crop":       rec.Crop,
		"display":    rec.Display,
		"confidence": rec.Confidence,
		"inputs":     inputs,
	})
}

func (h *Handlers) handleCrops(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"crops": h.svc.Classes(),
	})
}

func (h *Handlers) handlePredictions(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history store not configured"})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.store.RecentPredictions(r.Context(), limit)
	if err != nil {
		h.logger.Error("query predictions", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load history"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"predictions": records,
		"count":       len(records),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
