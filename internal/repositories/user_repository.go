package repositories

import (
	"context"
	"fmt"

	"chem-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, username, password_hash, role, COALESCE(totp_secret, ''), totp_enabled, created_at, updated_at`

// registrationLockKey serializes first-user detection across concurrent sign-ups
const registrationLockKey = 7417001

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Role,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user with the role already set on u
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO users(id, name, username, password_hash, role)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Username, u.PasswordHash, u.Role,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateUsername
	}
	return err
}

// CreateAutoRole inserts a self-registered user. The first account ever
// created becomes admin and every later one staff; the decision and the insert
// run under one transaction-scoped advisory lock.
func (r *UserRepository) CreateAutoRole(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin registration: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, registrationLockKey); err != nil {
		return fmt.Errorf("lock registration: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	u.Role = models.RoleStaff
	if count == 0 {
		u.Role = models.RoleAdmin
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO users(id, name, username, password_hash, role)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Username, u.PasswordHash, u.Role,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateUsername
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// SetTOTPSecret stores the TOTP secret for a user (during setup, before verification)
func (r *UserRepository) SetTOTPSecret(ctx context.Context, userID, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_secret=$1, totp_enabled=false, updated_at=NOW() WHERE id=$2`,
		secret, userID)
	return err
}

// EnableTOTP marks 2FA as enabled after verification
func (r *UserRepository) EnableTOTP(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET totp_enabled=true, updated_at=NOW() WHERE id=$1`, userID)
	return err
}
