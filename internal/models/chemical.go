package models

import "time"

// DefaultUnit is applied when a chemical is created without a unit
const DefaultUnit = "kg"

type Chemical struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	BatchNumber    string     `json:"batchNumber"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	UnitPrice      *float64   `json:"price,omitempty"`
	IntakeDate     time.Time  `json:"intakeDate"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	AddedBy        *string    `json:"addedBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Price returns the unit price, treating an unset price as zero
func (c *Chemical) Price() float64 {
	if c == nil || c.UnitPrice == nil {
		return 0
	}
	return *c.UnitPrice
}

// ChemicalRef is the joined view of a chemical embedded in purchases, sales
// and safety records. It is nil on the parent when the reference dangles.
type ChemicalRef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	BatchNumber string   `json:"batchNumber"`
	Unit        string   `json:"unit,omitempty"`
	UnitPrice   *float64 `json:"price,omitempty"`
}

// Price returns the unit price of the referenced chemical, 0 when unresolved
func (r *ChemicalRef) Price() float64 {
	if r == nil || r.UnitPrice == nil {
		return 0
	}
	return *r.UnitPrice
}

// UnknownChemicalName labels records whose chemical no longer resolves
const UnknownChemicalName = "Unknown"

// DisplayName returns the chemical name or the Unknown placeholder
func (r *ChemicalRef) DisplayName() string {
	if r == nil || r.Name == "" {
		return UnknownChemicalName
	}
	return r.Name
}

// CreateChemicalRequest represents the request body for adding a chemical
type CreateChemicalRequest struct {
	Name           string     `json:"name"`
	BatchNumber    string     `json:"batchNumber"`
	Quantity       *float64   `json:"quantity"`
	Unit           string     `json:"unit"`
	UnitPrice      *float64   `json:"price"`
	IntakeDate     *time.Time `json:"intakeDate"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

// UpdateChemicalRequest is a partial update; nil fields are left unchanged
type UpdateChemicalRequest struct {
	Name           *string    `json:"name"`
	BatchNumber    *string    `json:"batchNumber"`
	Quantity       *float64   `json:"quantity"`
	Unit           *string    `json:"unit"`
	UnitPrice      *float64   `json:"price"`
	IntakeDate     *time.Time `json:"intakeDate"`
	ExpirationDate *time.Time `json:"expirationDate"`
}
