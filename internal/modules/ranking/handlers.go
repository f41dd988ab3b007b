package ranking

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler exposes the ranking operation over HTTP.
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a ranking handler.
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "ranking").Logger(),
	}
}

type rankRequest struct {
	AmountInr      float64 `json:"amountInr"`
	HorizonDays    int     `json:"horizonDays"`
	RiskPreference string  `json:"riskPreference"`
	AssetType      string  `json:"assetType"`
	MaxResults     int     `json:"maxResults"`
}

// HandleRank handles POST /api/rank.
func (h *Handler) HandleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := NewProfile(req.AmountInr, req.HorizonDays,
		RiskPreference(req.RiskPreference), AssetType(req.AssetType), req.MaxResults)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.service.Rank(r.Context(), profile)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
