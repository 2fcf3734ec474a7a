package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chem-backend/internal/auth"
	"chem-backend/internal/repositories"
	"chem-backend/internal/services"
	"chem-backend/pkg/utils"
)

// respondError maps service errors to HTTP statuses. Unknown errors are
// logged and answered with fallback so internals never leak.
func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, auth.ErrUnauthenticated):
		utils.Error(w, http.StatusUnauthorized, "Authorization header required")
	case errors.Is(err, auth.ErrForbidden):
		utils.Error(w, http.StatusForbidden, "Forbidden - admin access required")
	case errors.Is(err, repositories.ErrDuplicateUsername):
		utils.Error(w, http.StatusConflict, "User already exists")
	case errors.Is(err, services.ErrInvalidLogin):
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrTOTPRequired):
		utils.JSON(w, http.StatusUnauthorized, map[string]interface{}{
			"error":         "Two-factor code required",
			"totp_required": true,
		})
	case errors.Is(err, services.ErrInvalidTOTP):
		utils.Error(w, http.StatusUnauthorized, "Invalid two-factor code")
	case errors.Is(err, services.ErrArchiveDisabled):
		utils.Error(w, http.StatusServiceUnavailable, "Report archive is not configured")
	default:
		log.Printf("[HTTP] %s: %v", fallback, err)
		utils.Error(w, http.StatusInternalServerError, fallback)
	}
}

// decode reads a JSON body into v, answering 400 on failure
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
