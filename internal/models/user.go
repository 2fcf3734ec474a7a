package models

import "time"

// Role is the permission level of an account. Only two values exist.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         Role      `json:"role"`
	TOTPSecret   string    `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest represents the request body for self-registration
type RegisterRequest struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
// TOTPCode is only required when the account has two-factor enabled.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// CreateStaffRequest represents the admin-only staff provisioning body
type CreateStaffRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// TOTPSetupResponse carries the provisioning URI shown as a QR code
type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// TOTPEnableRequest confirms a freshly provisioned secret
type TOTPEnableRequest struct {
	Code string `json:"code"`
}
