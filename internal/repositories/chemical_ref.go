package repositories

import "chem-backend/internal/models"

// joinedChemical selects the referenced chemical through a LEFT JOIN aliased c.
// All columns are NULL when the reference dangles.
const joinedChemical = `c.id, c.name, c.batch_number, c.unit, c.unit_price`

// chemicalRefScan holds nullable destinations for joinedChemical
type chemicalRefScan struct {
	id, name, batch, unit *string
	price                 *float64
}

func (s *chemicalRefScan) dest() []any {
	return []any{&s.id, &s.name, &s.batch, &s.unit, &s.price}
}

// ref returns nil for an unresolved reference
func (s *chemicalRefScan) ref() *models.ChemicalRef {
	if s.id == nil {
		return nil
	}
	ref := &models.ChemicalRef{ID: *s.id, UnitPrice: s.price}
	if s.name != nil {
		ref.Name = *s.name
	}
	if s.batch != nil {
		ref.BatchNumber = *s.batch
	}
	if s.unit != nil {
		ref.Unit = *s.unit
	}
	return ref
}
