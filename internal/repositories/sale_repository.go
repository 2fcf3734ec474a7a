package repositories

import (
	"context"

	"chem-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const saleSelect = `
	SELECT s.id, s.chemical_id, s.quantity, s.customer_name, s.customer_contact, s.sale_date, s.sold_by,
	       s.payment_amount, s.transaction_id, s.payment_status, s.paid_by, s.created_at, s.updated_at,
	       ` + joinedChemical + `
	FROM sales s
	LEFT JOIN chemicals c ON c.id = s.chemical_id`

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

func scanSale(row pgx.Row) (*models.Sale, error) {
	var s models.Sale
	var ref chemicalRefScan
	dest := append([]any{&s.ID, &s.ChemicalID, &s.Quantity, &s.CustomerName, &s.CustomerContact, &s.SaleDate,
		&s.SoldBy, &s.PaymentAmount, &s.TransactionID, &s.PaymentStatus, &s.PaidBy, &s.CreatedAt, &s.UpdatedAt},
		ref.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.Chemical = ref.ref()
	return &s, nil
}

func (r *SaleRepository) Create(ctx context.Context, s *models.Sale) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO sales(id, chemical_id, quantity, customer_name, customer_contact, sale_date, sold_by,
                           payment_amount, transaction_id, payment_status, paid_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING created_at, updated_at`,
		s.ID, s.ChemicalID, s.Quantity, s.CustomerName, s.CustomerContact, s.SaleDate, s.SoldBy,
		s.PaymentAmount, s.TransactionID, s.PaymentStatus, s.PaidBy,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *SaleRepository) Get(ctx context.Context, id string) (*models.Sale, error) {
	s, err := scanSale(r.DB.QueryRow(ctx, saleSelect+` WHERE s.id=$1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// List returns sales with the chemical joined, bounded by sale_date when the filter is set
func (r *SaleRepository) List(ctx context.Context, filter models.ReportFilter) ([]*models.Sale, error) {
	rows, err := r.DB.Query(ctx,
		saleSelect+`
         WHERE ($1::timestamptz IS NULL OR s.sale_date >= $1)
           AND ($2::timestamptz IS NULL OR s.sale_date <= $2)
         ORDER BY s.sale_date DESC`,
		filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []*models.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *SaleRepository) Update(ctx context.Context, s *models.Sale) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE sales SET chemical_id=$1, quantity=$2, customer_name=$3, customer_contact=$4, sale_date=$5,
         payment_amount=$6, transaction_id=$7, payment_status=$8, paid_by=$9, updated_at=NOW()
         WHERE id=$10
         RETURNING updated_at`,
		s.ChemicalID, s.Quantity, s.CustomerName, s.CustomerContact, s.SaleDate,
		s.PaymentAmount, s.TransactionID, s.PaymentStatus, s.PaidBy, s.ID,
	).Scan(&s.UpdatedAt)
	return notFound(err)
}

func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM sales WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
