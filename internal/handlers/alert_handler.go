package handlers

import (
	"net/http"

	"chem-backend/internal/services"
	"chem-backend/pkg/utils"
)

type AlertHandler struct {
	Service *services.AlertService
}

func NewAlertHandler(s *services.AlertService) *AlertHandler {
	return &AlertHandler{Service: s}
}

// GetAlerts returns {lowStock, expiring}
func (h *AlertHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Service.EvaluateAlerts(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch alerts")
		return
	}
	utils.JSON(w, http.StatusOK, alerts)
}
