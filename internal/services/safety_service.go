package services

import (
	"context"
	"strings"

	"chem-backend/internal/models"
)

type SafetyService struct {
	Repo      SafetyStore
	Chemicals ChemicalStore
}

func NewSafetyService(repo SafetyStore, chemicals ChemicalStore) *SafetyService {
	return &SafetyService{Repo: repo, Chemicals: chemicals}
}

func (s *SafetyService) List(ctx context.Context) ([]*models.Safety, error) {
	return s.Repo.List(ctx)
}

func (s *SafetyService) Create(ctx context.Context, req *models.SafetyRequest) (*models.Safety, error) {
	record, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update replaces every field of an existing safety record
func (s *SafetyService) Update(ctx context.Context, id string, req *models.SafetyRequest) (*models.Safety, error) {
	record, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	record.ID = id
	if err := s.Repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *SafetyService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *SafetyService) build(ctx context.Context, req *models.SafetyRequest) (*models.Safety, error) {
	hazard := strings.TrimSpace(req.Hazard)
	handling := strings.TrimSpace(req.HandlingInstructions)
	equipment := strings.TrimSpace(req.SafetyEquipment)
	if hazard == "" || handling == "" || equipment == "" {
		return nil, invalid("chemical, hazard, handlingInstructions and safetyEquipment are required")
	}

	ref, err := resolveChemical(ctx, s.Chemicals, req.Chemical)
	if err != nil {
		return nil, err
	}
	return &models.Safety{
		ChemicalID:           ref.ID,
		Chemical:             ref,
		Hazard:               hazard,
		HandlingInstructions: handling,
		SafetyEquipment:      equipment,
	}, nil
}
