package repositories

import (
	"context"
	"time"

	"chem-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const chemicalColumns = `id, name, batch_number, quantity, unit, unit_price, intake_date, expiration_date, added_by, created_at, updated_at`

type ChemicalRepository struct {
	DB *pgxpool.Pool
}

func NewChemicalRepository(db *pgxpool.Pool) *ChemicalRepository {
	return &ChemicalRepository{DB: db}
}

func scanChemical(row pgx.Row) (*models.Chemical, error) {
	var c models.Chemical
	err := row.Scan(&c.ID, &c.Name, &c.BatchNumber, &c.Quantity, &c.Unit, &c.UnitPrice,
		&c.IntakeDate, &c.ExpirationDate, &c.AddedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectChemicals(rows pgx.Rows) ([]*models.Chemical, error) {
	defer rows.Close()

	chemicals := []*models.Chemical{}
	for rows.Next() {
		c, err := scanChemical(rows)
		if err != nil {
			return nil, err
		}
		chemicals = append(chemicals, c)
	}
	return chemicals, rows.Err()
}

func (r *ChemicalRepository) Create(ctx context.Context, c *models.Chemical) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Unit == "" {
		c.Unit = models.DefaultUnit
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO chemicals(id, name, batch_number, quantity, unit, unit_price, intake_date, expiration_date, added_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING created_at, updated_at`,
		c.ID, c.Name, c.BatchNumber, c.Quantity, c.Unit, c.UnitPrice, c.IntakeDate, c.ExpirationDate, c.AddedBy,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *ChemicalRepository) Get(ctx context.Context, id string) (*models.Chemical, error) {
	c, err := scanChemical(r.DB.QueryRow(ctx,
		`SELECT `+chemicalColumns+` FROM chemicals WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// List returns all chemicals, newest first
func (r *ChemicalRepository) List(ctx context.Context) ([]*models.Chemical, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+chemicalColumns+` FROM chemicals ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectChemicals(rows)
}

// Search matches name or batch number case-insensitively
func (r *ChemicalRepository) Search(ctx context.Context, query string) ([]*models.Chemical, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+chemicalColumns+` FROM chemicals
         WHERE name ILIKE '%' || $1 || '%' OR batch_number ILIKE '%' || $1 || '%'
         ORDER BY name`, query)
	if err != nil {
		return nil, err
	}
	return collectChemicals(rows)
}

// FindByQuantityBelow returns chemicals with quantity strictly below n
func (r *ChemicalRepository) FindByQuantityBelow(ctx context.Context, n float64) ([]*models.Chemical, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+chemicalColumns+` FROM chemicals WHERE quantity < $1 ORDER BY quantity ASC`, n)
	if err != nil {
		return nil, err
	}
	return collectChemicals(rows)
}

// FindByExpirationWindow returns chemicals expiring in [start, end], both ends inclusive
func (r *ChemicalRepository) FindByExpirationWindow(ctx context.Context, start, end time.Time) ([]*models.Chemical, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+chemicalColumns+` FROM chemicals
         WHERE expiration_date >= $1 AND expiration_date <= $2
         ORDER BY expiration_date ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return collectChemicals(rows)
}

func (r *ChemicalRepository) Update(ctx context.Context, c *models.Chemical) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE chemicals SET name=$1, batch_number=$2, quantity=$3, unit=$4, unit_price=$5,
         intake_date=$6, expiration_date=$7, updated_at=NOW()
         WHERE id=$8
         RETURNING updated_at`,
		c.Name, c.BatchNumber, c.Quantity, c.Unit, c.UnitPrice, c.IntakeDate, c.ExpirationDate, c.ID,
	).Scan(&c.UpdatedAt)
	return notFound(err)
}

// Delete removes the chemical only; dependent records keep their reference
func (r *ChemicalRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM chemicals WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
