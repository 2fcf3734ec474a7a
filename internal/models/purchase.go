package models

import "time"

// PaymentStatus is shared by purchases and sales
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// Valid reports whether s is a known payment status
func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

type Purchase struct {
	ID              string        `json:"id"`
	ChemicalID      string        `json:"chemicalId"`
	Chemical        *ChemicalRef  `json:"chemical"` // nil when the chemical was deleted
	SupplierName    string        `json:"supplierName"`
	SupplierContact string        `json:"supplierContact,omitempty"`
	Quantity        float64       `json:"quantity"`
	Price           float64       `json:"price"`
	PaymentAmount   float64       `json:"paymentAmount"`
	PurchaseDate    time.Time     `json:"purchaseDate"`
	PurchasedBy     string        `json:"purchasedBy"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// TotalCost is quantity x price. It is derived, never stored.
func (p *Purchase) TotalCost() float64 {
	return p.Quantity * p.Price
}

// CreatePurchaseRequest represents the request body for logging a purchase
type CreatePurchaseRequest struct {
	Chemical        string        `json:"chemical"`
	SupplierName    string        `json:"supplierName"`
	SupplierContact string        `json:"supplierContact"`
	Quantity        *float64      `json:"quantity"`
	Price           *float64      `json:"price"`
	PaymentAmount   *float64      `json:"paymentAmount"`
	PurchaseDate    *time.Time    `json:"purchaseDate"`
	PurchasedBy     string        `json:"purchasedBy"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
}

// UpdatePurchaseRequest is a partial update; nil fields are left unchanged
type UpdatePurchaseRequest struct {
	Chemical        *string        `json:"chemical"`
	SupplierName    *string        `json:"supplierName"`
	SupplierContact *string        `json:"supplierContact"`
	Quantity        *float64       `json:"quantity"`
	Price           *float64       `json:"price"`
	PaymentAmount   *float64       `json:"paymentAmount"`
	PurchaseDate    *time.Time     `json:"purchaseDate"`
	PaymentStatus   *PaymentStatus `json:"paymentStatus"`
}

// PaymentStatusRequest is the PATCH body for /purchases/{id}/payment-status
type PaymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}
