package models

import "time"

// PaymentMethod records how a customer paid
type PaymentMethod string

const (
	PaidByCash PaymentMethod = "Cash"
	PaidByUPI  PaymentMethod = "UPI"
	PaidByBank PaymentMethod = "Bank"
)

// Valid reports whether m is a known payment method
func (m PaymentMethod) Valid() bool {
	return m == PaidByCash || m == PaidByUPI || m == PaidByBank
}

type Sale struct {
	ID              string        `json:"id"`
	ChemicalID      string        `json:"chemicalId"`
	Chemical        *ChemicalRef  `json:"chemical"` // nil when the chemical was deleted
	Quantity        float64       `json:"quantity"`
	CustomerName    string        `json:"customerName,omitempty"`
	CustomerContact string        `json:"customerContact"`
	SaleDate        time.Time     `json:"saleDate"`
	SoldBy          string        `json:"soldBy"`
	PaymentAmount   float64       `json:"paymentAmount"`
	TransactionID   string        `json:"transactionId"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaidBy          PaymentMethod `json:"paidBy"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// Value is quantity x the resolved chemical price (0 when unresolved)
func (s *Sale) Value() float64 {
	return s.Quantity * s.Chemical.Price()
}

// CreateSaleRequest represents the request body for logging a sale
type CreateSaleRequest struct {
	Chemical        string        `json:"chemical"`
	Quantity        *float64      `json:"quantity"`
	CustomerName    string        `json:"customerName"`
	CustomerContact string        `json:"customerContact"`
	SaleDate        *time.Time    `json:"saleDate"`
	SoldBy          string        `json:"soldBy"`
	PaymentAmount   *float64      `json:"paymentAmount"`
	TransactionID   string        `json:"transactionId"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaidBy          PaymentMethod `json:"paidBy"`
}

// UpdateSaleRequest is a partial update; nil fields are left unchanged
type UpdateSaleRequest struct {
	Chemical        *string        `json:"chemical"`
	Quantity        *float64       `json:"quantity"`
	CustomerName    *string        `json:"customerName"`
	CustomerContact *string        `json:"customerContact"`
	SaleDate        *time.Time     `json:"saleDate"`
	PaymentAmount   *float64       `json:"paymentAmount"`
	TransactionID   *string        `json:"transactionId"`
	PaymentStatus   *PaymentStatus `json:"paymentStatus"`
	PaidBy          *PaymentMethod `json:"paidBy"`
}
