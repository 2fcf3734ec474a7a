package handlers

import (
	"net/http"

	"chem-backend/internal/middleware"
	"chem-backend/internal/models"
	"chem-backend/internal/services"
	"chem-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ChemicalHandler struct {
	Service *services.ChemicalService
}

func NewChemicalHandler(s *services.ChemicalService) *ChemicalHandler {
	return &ChemicalHandler{Service: s}
}

func (h *ChemicalHandler) ListChemicals(w http.ResponseWriter, r *http.Request) {
	chemicals, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err, "Failed to fetch chemicals")
		return
	}
	utils.JSON(w, http.StatusOK, chemicals)
}

func (h *ChemicalHandler) GetChemical(w http.ResponseWriter, r *http.Request) {
	chemical, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err, "Failed to fetch chemical")
		return
	}
	utils.JSON(w, http.StatusOK, chemical)
}

func (h *ChemicalHandler) SearchChemicals(w http.ResponseWriter, r *http.Request) {
	chemicals, err := h.Service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, err, "Failed to search chemicals")
		return
	}
	utils.JSON(w, http.StatusOK, chemicals)
}

func (h *ChemicalHandler) CreateChemical(w http.ResponseWriter, r *http.Request) {
	var req models.CreateChemicalRequest
	if !decode(w, r, &req) {
		return
	}

	chemical, err := h.Service.Create(r.Context(), middleware.SessionFromContext(r.Context()), &req)
	if err != nil {
		respondError(w, err, "Failed to add chemical")
		return
	}
	utils.JSON(w, http.StatusCreated, chemical)
}

func (h *ChemicalHandler) UpdateChemical(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateChemicalRequest
	if !decode(w, r, &req) {
		return
	}

	chemical, err := h.Service.Update(r.Context(), middleware.SessionFromContext(r.Context()), mux.Vars(r)["id"], &req)
	if err != nil {
		respondError(w, err, "Failed to update chemical")
		return
	}
	utils.JSON(w, http.StatusOK, chemical)
}

func (h *ChemicalHandler) DeleteChemical(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), middleware.SessionFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err, "Failed to delete chemical")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Chemical deleted successfully"})
}
