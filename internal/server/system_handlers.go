package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"chimera/internal/modules/marketdata"
)

// SystemHandlers serves the monitoring endpoints.
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	marketData  *marketdata.Service
}

// NewSystemHandlers creates the system handler set.
func NewSystemHandlers(marketData *marketdata.Service, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		startupTime: time.Now(),
		marketData:  marketData,
	}
}

// HandleFreshness handles GET /api/freshness.
func (h *SystemHandlers) HandleFreshness(w http.ResponseWriter, r *http.Request) {
	lastIngest := h.marketData.LastIngest()

	response := map[string]interface{}{
		"fresh": h.marketData.Fresh(),
		"stats": h.marketData.Stats(),
	}
	if lastIngest.IsZero() {
		response["lastIngest"] = nil
	} else {
		response["lastIngest"] = lastIngest.Format(time.RFC3339)
		response["ageSeconds"] = int(time.Since(lastIngest).Seconds())
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleSystemStatus handles GET /api/system/status.
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.systemUsage()

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"uptimeSeconds": int(time.Since(h.startupTime).Seconds()),
		"cpuPercent":    cpuPercent,
		"memoryPercent": memPercent,
	})
}

// systemUsage samples CPU over a short interval to keep the endpoint
// responsive for pollers.
func (h *SystemHandlers) systemUsage() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
