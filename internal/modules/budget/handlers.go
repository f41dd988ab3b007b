package budget

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler exposes the usage query over HTTP.
type Handler struct {
	ledger *Ledger
	log    zerolog.Logger
}

// NewHandler creates a budget handler.
func NewHandler(ledger *Ledger, log zerolog.Logger) *Handler {
	return &Handler{
		ledger: ledger,
		log:    log.With().Str("handler", "budget").Logger(),
	}
}

// HandleUsage handles GET /api/usage.
func (h *Handler) HandleUsage(w http.ResponseWriter, r *http.Request) {
	stats := h.ledger.Stats(Today())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode usage response")
	}
}
