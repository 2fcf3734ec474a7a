package services

import (
	"context"
	"strings"
	"time"

	"chem-backend/internal/models"
	"chem-backend/internal/timeutil"
)

type SaleService struct {
	Repo      SaleStore
	Chemicals ChemicalStore
	Now       func() time.Time
}

func NewSaleService(repo SaleStore, chemicals ChemicalStore) *SaleService {
	return &SaleService{Repo: repo, Chemicals: chemicals, Now: timeutil.Now}
}

// List returns every sale with its chemical joined
func (s *SaleService) List(ctx context.Context) ([]*models.Sale, error) {
	return s.Repo.List(ctx, models.ReportFilter{})
}

func (s *SaleService) Get(ctx context.Context, id string) (*models.Sale, error) {
	return s.Repo.Get(ctx, id)
}

func (s *SaleService) Create(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {
	soldBy := strings.TrimSpace(req.SoldBy)
	contact := strings.TrimSpace(req.CustomerContact)
	if soldBy == "" || contact == "" || req.Quantity == nil || req.PaymentAmount == nil || req.PaidBy == "" {
		return nil, invalid("chemical, quantity, soldBy, customerContact, paymentAmount and paidBy are required")
	}
	if *req.Quantity <= 0 {
		return nil, invalid("quantity must be greater than zero")
	}
	if *req.PaymentAmount < 0 {
		return nil, invalid("paymentAmount cannot be negative")
	}
	if !req.PaidBy.Valid() {
		return nil, invalid("paidBy must be Cash, UPI or Bank")
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

	sale := &models.Sale{
		ChemicalID:      ref.ID,
		Chemical:        ref,
		Quantity:        *req.Quantity,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerContact: contact,
		SoldBy:          soldBy,
		PaymentAmount:   *req.PaymentAmount,
		TransactionID:   strings.TrimSpace(req.TransactionID),
		PaymentStatus:   status,
		PaidBy:          req.PaidBy,
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	} else {
		sale.SaleDate = s.now()
	}

	if err := s.Repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Update applies a partial update; nil fields keep their stored value
func (s *SaleService) Update(ctx context.Context, id string, req *models.UpdateSaleRequest) (*models.Sale, error) {
	sale, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Chemical != nil && *req.Chemical != sale.ChemicalID {
		ref, err := resolveChemical(ctx, s.Chemicals, *req.Chemical)
		if err != nil {
			return nil, err
		}
		sale.ChemicalID, sale.Chemical = ref.ID, ref
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, invalid("quantity must be greater than zero")
		}
		sale.Quantity = *req.Quantity
	}
	if req.CustomerName != nil {
		sale.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerContact != nil {
		if strings.TrimSpace(*req.CustomerContact) == "" {
			return nil, invalid("customerContact cannot be empty")
		}
		sale.CustomerContact = strings.TrimSpace(*req.CustomerContact)
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}
	if req.PaymentAmount != nil {
		if *req.PaymentAmount < 0 {
			return nil, invalid("paymentAmount cannot be negative")
		}
		sale.PaymentAmount = *req.PaymentAmount
	}
	if req.TransactionID != nil {
		sale.TransactionID = strings.TrimSpace(*req.TransactionID)
	}
	if req.PaymentStatus != nil {
		if !req.PaymentStatus.Valid() {
			return nil, invalid("paymentStatus must be Pending or Paid")
		}
		sale.PaymentStatus = *req.PaymentStatus
	}
	if req.PaidBy != nil {
		if !req.PaidBy.Valid() {
			return nil, invalid("paidBy must be Cash, UPI or Bank")
		}
		sale.PaidBy = *req.PaidBy
	}

	if err := s.Repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *SaleService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *SaleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return timeutil.Now()
}
