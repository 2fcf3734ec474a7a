package repositories

import (
	"context"

	"chem-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const safetySelect = `
	SELECT sr.id, sr.chemical_id, sr.hazard, sr.handling_instructions, sr.safety_equipment, sr.created_at, sr.updated_at,
	       ` + joinedChemical + `
	FROM safety_records sr
	LEFT JOIN chemicals c ON c.id = sr.chemical_id`

type SafetyRepository struct {
	DB *pgxpool.Pool
}

func NewSafetyRepository(db *pgxpool.Pool) *SafetyRepository {
	return &SafetyRepository{DB: db}
}

func scanSafety(row pgx.Row) (*models.Safety, error) {
	var s models.Safety
	var ref chemicalRefScan
	dest := append([]any{&s.ID, &s.ChemicalID, &s.Hazard, &s.HandlingInstructions, &s.SafetyEquipment,
		&s.CreatedAt, &s.UpdatedAt}, ref.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.Chemical = ref.ref()
	return &s, nil
}

func (r *SafetyRepository) Create(ctx context.Context, s *models.Safety) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO safety_records(id, chemical_id, hazard, handling_instructions, safety_equipment)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at, updated_at`,
		s.ID, s.ChemicalID, s.Hazard, s.HandlingInstructions, s.SafetyEquipment,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *SafetyRepository) List(ctx context.Context) ([]*models.Safety, error) {
	rows, err := r.DB.Query(ctx, safetySelect+` ORDER BY sr.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.Safety{}
	for rows.Next() {
		s, err := scanSafety(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, s)
	}
	return records, rows.Err()
}

func (r *SafetyRepository) Update(ctx context.Context, s *models.Safety) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE safety_records SET chemical_id=$1, hazard=$2, handling_instructions=$3, safety_equipment=$4, updated_at=NOW()
         WHERE id=$5
         RETURNING created_at, updated_at`,
		s.ChemicalID, s.Hazard, s.HandlingInstructions, s.SafetyEquipment, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return notFound(err)
}

func (r *SafetyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM safety_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
