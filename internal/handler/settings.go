package handler

import (
	"net/http"

	"github.com/fitstake/fitstake-go/internal/challenge"
	"github.com/fitstake/fitstake-go/internal/feeconfig"
	"github.com/fitstake/fitstake-go/internal/logger"
)

// SettingsHandler serves the cached platform fee configuration
type SettingsHandler struct {
	fees    *feeconfig.Loader
	service challenge.Service
}

func NewSettingsHandler(fees *feeconfig.Loader, service challenge.Service) *SettingsHandler {
	return &SettingsHandler{fees: fees, service: service}
}

// HandleGetFees returns the effective fee configuration. The fallback is
// served when the platform is unreachable, so this never errors.
func (h *SettingsHandler) HandleGetFees(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.fees.Config(r.Context()))
}

// HandleInvalidateSettings drops the fee cache and the enriched collections
// so the next read re-enriches under the new fee
func (h *SettingsHandler) HandleInvalidateSettings(w http.ResponseWriter, r *http.Request) {
	h.service.InvalidateSettings()
	logger.FromContext(r.Context()).Info("Platform settings invalidated")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Settings invalidated"})
}
