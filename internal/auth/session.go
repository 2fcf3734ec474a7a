package auth

import (
	"errors"
	"time"

	"chem-backend/internal/models"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
)

// Session is the authenticated caller, derived from a verified token and
// passed explicitly to operations that need an identity.
type Session struct {
	UserID    string
	Username  string
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

// SessionFromClaims builds a Session out of validated claims
func SessionFromClaims(c *Claims) *Session {
	s := &Session{
		UserID:   c.UserID,
		Username: c.Username,
		Role:     c.Role,
		TokenID:  c.ID,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

// IsAdmin reports whether the session carries the admin role
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Action names a gated operation
type Action string

const (
	ActionCreateChemical Action = "chemical:create"
	ActionUpdateChemical Action = "chemical:update"
	ActionDeleteChemical Action = "chemical:delete"
	ActionCreateStaff    Action = "user:create_staff"
	ActionArchiveReport  Action = "report:archive"
)

// adminOnly lists every action restricted to admins. Anything not listed
// is open to any caller.
var adminOnly = map[Action]bool{
	ActionCreateChemical: true,
	ActionUpdateChemical: true,
	ActionDeleteChemical: true,
	ActionCreateStaff:    true,
	ActionArchiveReport:  true,
}

// Authorize permits or denies action for the session
func Authorize(s *Session, action Action) error {
	if !adminOnly[action] {
		return nil
	}
	if s == nil {
		return ErrUnauthenticated
	}
	if s.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
