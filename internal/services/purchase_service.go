package services

import (
	"context"
	"strings"
	"time"

	"chem-backend/internal/models"
	"chem-backend/internal/timeutil"
)

type PurchaseService struct {
	Repo      PurchaseStore
	Chemicals ChemicalStore
	Now       func() time.Time
}

func NewPurchaseService(repo PurchaseStore, chemicals ChemicalStore) *PurchaseService {
	return &PurchaseService{Repo: repo, Chemicals: chemicals, Now: timeutil.Now}
}

// List returns every purchase with its chemical joined
func (s *PurchaseService) List(ctx context.Context) ([]*models.Purchase, error) {
	return s.Repo.List(ctx, models.ReportFilter{})
}

func (s *PurchaseService) Get(ctx context.Context, id string) (*models.Purchase, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PurchaseService) Create(ctx context.Context, req *models.CreatePurchaseRequest) (*models.Purchase, error) {
	supplier := strings.TrimSpace(req.SupplierName)
	purchasedBy := strings.TrimSpace(req.PurchasedBy)
	if supplier == "" || purchasedBy == "" || req.Quantity == nil || req.Price == nil {
		return nil, invalid("chemical, supplierName, quantity, price and purchasedBy are required")
	}
	if err := validatePurchaseAmounts(*req.Quantity, *req.Price, req.PaymentAmount); err != nil {
		return nil, err
	}

	status := req.PaymentStatus
	if status == "" {
		status = models.PaymentPending
	}
	if !status.Valid() {
		return nil, invalid("paymentStatus must be Pending or Paid")
	}

	ref, err := resolveChemical(ctx, s.Chemicals, req.Chemical)
	if err != nil {
		return nil, err
	}

	p := &models.Purchase{
		ChemicalID:      ref.ID,
		Chemical:        ref,
		SupplierName:    supplier,
		SupplierContact: strings.TrimSpace(req.SupplierContact),
		Quantity:        *req.Quantity,
		Price:           *req.Price,
		PurchasedBy:     purchasedBy,
		PaymentStatus:   status,
	}
	if req.PaymentAmount != nil {
		p.PaymentAmount = *req.PaymentAmount
	}
	if req.PurchaseDate != nil {
		p.PurchaseDate = *req.PurchaseDate
	} else {
		p.PurchaseDate = s.now()
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial update; nil fields keep their stored value
func (s *PurchaseService) Update(ctx context.Context, id string, req *models.UpdatePurchaseRequest) (*models.Purchase, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Chemical != nil && *req.Chemical != p.ChemicalID {
		ref, err := resolveChemical(ctx, s.Chemicals, *req.Chemical)
		if err != nil {
			return nil, err
		}
		p.ChemicalID, p.Chemical = ref.ID, ref
	}
	if req.SupplierName != nil {
		if strings.TrimSpace(*req.SupplierName) == "" {
			return nil, invalid("supplierName cannot be empty")
		}
		p.SupplierName = strings.TrimSpace(*req.SupplierName)
	}
	if req.SupplierContact != nil {
		p.SupplierContact = strings.TrimSpace(*req.SupplierContact)
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.PaymentAmount != nil {
		p.PaymentAmount = *req.PaymentAmount
	}
	if req.PurchaseDate != nil {
		p.PurchaseDate = *req.PurchaseDate
	}
	if req.PaymentStatus != nil {
		if !req.PaymentStatus.Valid() {
			return nil, invalid("paymentStatus must be Pending or Paid")
		}
		p.PaymentStatus = *req.PaymentStatus
	}
	if err := validatePurchaseAmounts(p.Quantity, p.Price, &p.PaymentAmount); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePaymentStatus flips a purchase between Pending and Paid
func (s *PurchaseService) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Purchase, error) {
	if !status.Valid() {
		return nil, invalid("paymentStatus must be Pending or Paid")
	}
	if err := s.Repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *PurchaseService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *PurchaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return timeutil.Now()
}

func validatePurchaseAmounts(quantity, price float64, payment *float64) error {
	if quantity <= 0 {
		return invalid("quantity must be greater than zero")
	}
	if price < 0 {
		return invalid("price cannot be negative")
	}
	if payment != nil && *payment < 0 {
		return invalid("paymentAmount cannot be negative")
	}
	return nil
}
