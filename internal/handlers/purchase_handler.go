package handlers

import (
	"net/http"

	"chem-backend/internal/models"
	"chem-backend/internal/services"
	"chem-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PurchaseHandler struct {
	Service *services.PurchaseService
}

func NewPurchaseHandler(s *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{Service: s}
}

func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err, "Failed to fetch purchases")
		return
	}
	utils.JSON(w, http.StatusOK, purchases)
}

func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	purchase, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err, "Failed to fetch purchase")
		return
	}
	utils.JSON(w, http.StatusOK, purchase)
}

func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePurchaseRequest
	if !decode(w, r, &req) {
		return
	}

	purchase, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, "Failed to log purchase")
		return
	}
	utils.JSON(w, http.StatusCreated, purchase)
}

func (h *PurchaseHandler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePurchaseRequest
	if !decode(w, r, &req) {
		return
	}

	purchase, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		respondError(w, err, "Failed to update purchase")
		return
	}
	utils.JSON(w, http.StatusOK, purchase)
}

func (h *PurchaseHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentStatusRequest
	if !decode(w, r, &req) {
		return
	}

	purchase, err := h.Service.UpdatePaymentStatus(r.Context(), mux.Vars(r)["id"], req.PaymentStatus)
	if err != nil {
		respondError(w, err, "Failed to update payment status")
		return
	}
	utils.JSON(w, http.StatusOK, purchase)
}

func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, err, "Failed to delete purchase")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Purchase deleted successfully"})
}
