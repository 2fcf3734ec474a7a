package handlers

import (
	"net/http"

	"chem-backend/internal/middleware"
	"chem-backend/internal/models"
	"chem-backend/internal/services"
	"chem-backend/pkg/utils"
)

type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(s *services.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err, "Failed to register user")
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err, "Failed to log in")
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context(), middleware.SessionFromContext(r.Context())); err != nil {
		respondError(w, err, "Failed to log out")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *UserHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStaffRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.Service.CreateStaff(r.Context(), middleware.SessionFromContext(r.Context()), &req)
	if err != nil {
		respondError(w, err, "Failed to create staff account")
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.SetupTOTP(r.Context(), middleware.SessionFromContext(r.Context()))
	if err != nil {
		respondError(w, err, "Failed to set up two-factor authentication")
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *UserHandler) EnableTOTP(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPEnableRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Service.EnableTOTP(r.Context(), middleware.SessionFromContext(r.Context()), req.Code); err != nil {
		respondError(w, err, "Failed to enable two-factor authentication")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Two-factor authentication enabled"})
}
