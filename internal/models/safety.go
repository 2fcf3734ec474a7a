package models

import "time"

// Safety holds hazard and handling documentation for a chemical.
// A chemical may have any number of safety records.
type Safety struct {
	ID                   string       `json:"id"`
	ChemicalID           string       `json:"chemicalId"`
	Chemical             *ChemicalRef `json:"chemical"`
	Hazard               string       `json:"hazard"`
	HandlingInstructions string       `json:"handlingInstructions"`
	SafetyEquipment      string       `json:"safetyEquipment"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// SafetyRequest is used for both create and update (full replacement)
type SafetyRequest struct {
	Chemical             string `json:"chemical"`
	Hazard               string `json:"hazard"`
	HandlingInstructions string `json:"handlingInstructions"`
	SafetyEquipment      string `json:"safetyEquipment"`
}
