package repositories

import (
	"context"

	"chem-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const purchaseSelect = `
	SELECT p.id, p.chemical_id, p.supplier_name, p.supplier_contact, p.quantity, p.price, p.payment_amount,
	       p.purchase_date, p.purchased_by, p.payment_status, p.created_at, p.updated_at,
	       ` + joinedChemical + `
	FROM purchases p
	LEFT JOIN chemicals c ON c.id = p.chemical_id`

type PurchaseRepository struct {
	DB *pgxpool.Pool
}

func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

func scanPurchase(row pgx.Row) (*models.Purchase, error) {
	var p models.Purchase
	var ref chemicalRefScan
	dest := append([]any{&p.ID, &p.ChemicalID, &p.SupplierName, &p.SupplierContact, &p.Quantity, &p.Price,
		&p.PaymentAmount, &p.PurchaseDate, &p.PurchasedBy, &p.PaymentStatus, &p.CreatedAt, &p.UpdatedAt},
		ref.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.Chemical = ref.ref()
	return &p, nil
}

func (r *PurchaseRepository) Create(ctx context.Context, p *models.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO purchases(id, chemical_id, supplier_name, supplier_contact, quantity, price, payment_amount,
                               purchase_date, purchased_by, payment_status)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING created_at, updated_at`,
		p.ID, p.ChemicalID, p.SupplierName, p.SupplierContact, p.Quantity, p.Price, p.PaymentAmount,
		p.PurchaseDate, p.PurchasedBy, p.PaymentStatus,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Get returns one purchase with its chemical joined
func (r *PurchaseRepository) Get(ctx context.Context, id string) (*models.Purchase, error) {
	p, err := scanPurchase(r.DB.QueryRow(ctx, purchaseSelect+` WHERE p.id=$1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// List returns purchases with the chemical joined. A zero filter returns all rows;
// otherwise purchase_date is bounded inclusively.
func (r *PurchaseRepository) List(ctx context.Context, filter models.ReportFilter) ([]*models.Purchase, error) {
	rows, err := r.DB.Query(ctx,
		purchaseSelect+`
         WHERE ($1::timestamptz IS NULL OR p.purchase_date >= $1)
           AND ($2::timestamptz IS NULL OR p.purchase_date <= $2)
         ORDER BY p.purchase_date DESC`,
		filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := []*models.Purchase{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *PurchaseRepository) Update(ctx context.Context, p *models.Purchase) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE purchases SET chemical_id=$1, supplier_name=$2, supplier_contact=$3, quantity=$4, price=$5,
         payment_amount=$6, purchase_date=$7, payment_status=$8, updated_at=NOW()
         WHERE id=$9
         RETURNING updated_at`,
		p.ChemicalID, p.SupplierName, p.SupplierContact, p.Quantity, p.Price,
		p.PaymentAmount, p.PurchaseDate, p.PaymentStatus, p.ID,
	).Scan(&p.UpdatedAt)
	return notFound(err)
}

// UpdatePaymentStatus flips only the payment status column
func (r *PurchaseRepository) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE purchases SET payment_status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PurchaseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM purchases WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
