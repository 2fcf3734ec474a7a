package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"chem-backend/internal/auth"
	"chem-backend/internal/models"
	"chem-backend/internal/repositories"
	"chem-backend/internal/timeutil"
)

type ChemicalService struct {
	Repo ChemicalStore
	Now  func() time.Time
}

func NewChemicalService(repo ChemicalStore) *ChemicalService {
	return &ChemicalService{Repo: repo, Now: timeutil.Now}
}

func (s *ChemicalService) List(ctx context.Context) ([]*models.Chemical, error) {
	return s.Repo.List(ctx)
}

func (s *ChemicalService) Get(ctx context.Context, id string) (*models.Chemical, error) {
	return s.Repo.Get(ctx, id)
}

// Search matches query against name or batch number, case-insensitively
func (s *ChemicalService) Search(ctx context.Context, query string) ([]*models.Chemical, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("search query is required")
	}
	return s.Repo.Search(ctx, query)
}

// Create adds a chemical. Admin only.
func (s *ChemicalService) Create(ctx context.Context, session *auth.Session, req *models.CreateChemicalRequest) (*models.Chemical, error) {
	if err := auth.Authorize(session, auth.ActionCreateChemical); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	batch := strings.TrimSpace(req.BatchNumber)
	if name == "" || batch == "" || req.Quantity == nil {
		return nil, invalid("name, batchNumber and quantity are required")
	}
	if *req.Quantity < 0 {
		return nil, invalid("quantity cannot be negative")
	}
	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		return nil, invalid("price cannot be negative")
	}

	c := &models.Chemical{
		Name:           name,
		BatchNumber:    batch,
		Quantity:       *req.Quantity,
		Unit:           strings.TrimSpace(req.Unit),
		UnitPrice:      req.UnitPrice,
		ExpirationDate: req.ExpirationDate,
	}
	if c.Unit == "" {
		c.Unit = models.DefaultUnit
	}
	if req.IntakeDate != nil {
		c.IntakeDate = *req.IntakeDate
	} else {
		c.IntakeDate = s.now()
	}
	if session.UserID != "" {
		addedBy := session.UserID
		c.AddedBy = &addedBy
	}

	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies a partial update. Admin only.
func (s *ChemicalService) Update(ctx context.Context, session *auth.Session, id string, req *models.UpdateChemicalRequest) (*models.Chemical, error) {
	if err := auth.Authorize(session, auth.ActionUpdateChemical); err != nil {
		return nil, err
	}

	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, invalid("name cannot be empty")
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.BatchNumber != nil {
		if strings.TrimSpace(*req.BatchNumber) == "" {
			return nil, invalid("batchNumber cannot be empty")
		}
		c.BatchNumber = strings.TrimSpace(*req.BatchNumber)
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, invalid("quantity cannot be negative")
		}
		c.Quantity = *req.Quantity
	}
	if req.Unit != nil && strings.TrimSpace(*req.Unit) != "" {
		c.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, invalid("price cannot be negative")
		}
		c.UnitPrice = req.UnitPrice
	}
	if req.IntakeDate != nil {
		c.IntakeDate = *req.IntakeDate
	}
	if req.ExpirationDate != nil {
		c.ExpirationDate = req.ExpirationDate
	}

	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a chemical. Purchases, sales and safety records that point
// at it are left in place. Admin only.
func (s *ChemicalService) Delete(ctx context.Context, session *auth.Session, id string) error {
	if err := auth.Authorize(session, auth.ActionDeleteChemical); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *ChemicalService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return timeutil.Now()
}

// resolveChemical looks up the chemical a purchase, sale or safety record
// points at. An unknown id is a validation error.
func resolveChemical(ctx context.Context, chemicals ChemicalStore, id string) (*models.ChemicalRef, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalid("chemical is required")
	}
	c, err := chemicals.Get(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, invalid("chemical %s does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return &models.ChemicalRef{
		ID:          c.ID,
		Name:        c.Name,
		BatchNumber: c.BatchNumber,
		Unit:        c.Unit,
		UnitPrice:   c.UnitPrice,
	}, nil
}
