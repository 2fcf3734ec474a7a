package handlers

import (
	"net/http"

	"chem-backend/internal/models"
	"chem-backend/internal/services"
	"chem-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type SaleHandler struct {
	Service *services.SaleService
}

func NewSaleHandler(s *services.SaleService) *SaleHandler {
	return &SaleHandler{Service: s}
}

func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err, "Failed to fetch sales")
		return
	}
	utils.JSON(w, http.StatusOK, sales)
}

func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err, "Failed to fetch sale")
		return
	}
	utils.JSON(w, http.StatusOK, sale)
}

func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSaleRequest
	if !decode(w, r, &req) {
		return
	}

	sale, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, "Failed to log sale")
		return
	}
	utils.JSON(w, http.StatusCreated, sale)
}

func (h *SaleHandler) UpdateSale(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSaleRequest
	if !decode(w, r, &req) {
		return
	}

	sale, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		respondError(w, err, "Failed to update sale")
		return
	}
	utils.JSON(w, http.StatusOK, sale)
}

func (h *SaleHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, err, "Failed to delete sale")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Sale deleted successfully"})
}
