package handlers

import (
	"net/http"

	"chem-backend/internal/models"
	"chem-backend/internal/services"
	"chem-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type SafetyHandler struct {
	Service *services.SafetyService
}

func NewSafetyHandler(s *services.SafetyService) *SafetyHandler {
	return &SafetyHandler{Service: s}
}

func (h *SafetyHandler) ListSafety(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err, "Failed to fetch safety records")
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *SafetyHandler) CreateSafety(w http.ResponseWriter, r *http.Request) {
	var req models.SafetyRequest
	if !decode(w, r, &req) {
		return
	}

	record, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, "Failed to add safety record")
		return
	}
	utils.JSON(w, http.StatusCreated, record)
}

func (h *SafetyHandler) UpdateSafety(w http.ResponseWriter, r *http.Request) {
	var req models.SafetyRequest
	if !decode(w, r, &req) {
		return
	}

	record, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		respondError(w, err, "Failed to update safety record")
		return
	}
	utils.JSON(w, http.StatusOK, record)
}

func (h *SafetyHandler) DeleteSafety(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, err, "Failed to delete safety record")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Safety record deleted successfully"})
}
