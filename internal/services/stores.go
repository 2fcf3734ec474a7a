package services

import (
	"context"
	"time"

	"chem-backend/internal/models"
)

// The stores below are satisfied by the PostgreSQL repositories and by
// in-memory fakes in tests.

type ChemicalStore interface {
	Create(ctx context.Context, c *models.Chemical) error
	Get(ctx context.Context, id string) (*models.Chemical, error)
	List(ctx context.Context) ([]*models.Chemical, error)
	Search(ctx context.Context, query string) ([]*models.Chemical, error)
	FindByQuantityBelow(ctx context.Context, n float64) ([]*models.Chemical, error)
	FindByExpirationWindow(ctx context.Context, start, end time.Time) ([]*models.Chemical, error)
	Update(ctx context.Context, c *models.Chemical) error
	Delete(ctx context.Context, id string) error
}

type PurchaseStore interface {
	Create(ctx context.Context, p *models.Purchase) error
	Get(ctx context.Context, id string) (*models.Purchase, error)
	List(ctx context.Context, filter models.ReportFilter) ([]*models.Purchase, error)
	Update(ctx context.Context, p *models.Purchase) error
	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error
	Delete(ctx context.Context, id string) error
}

type SaleStore interface {
	Create(ctx context.Context, s *models.Sale) error
	Get(ctx context.Context, id string) (*models.Sale, error)
	List(ctx context.Context, filter models.ReportFilter) ([]*models.Sale, error)
	Update(ctx context.Context, s *models.Sale) error
	Delete(ctx context.Context, id string) error
}

type SafetyStore interface {
	Create(ctx context.Context, s *models.Safety) error
	List(ctx context.Context) ([]*models.Safety, error)
	Update(ctx context.Context, s *models.Safety) error
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	CreateAutoRole(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetTOTPSecret(ctx context.Context, userID, secret string) error
	EnableTOTP(ctx context.Context, userID string) error
}
