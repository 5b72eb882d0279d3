package entity

import "time"

var TreatmentCategories = []string{
	"General Dentistry",
	"Cosmetic Dentistry",
	"Orthodontics",
	"Oral Surgery",
	"Periodontics",
	"Endodontics",
	"Prosthodontics",
	"Pediatric Dentistry",
	"Emergency Treatment",
}

type Treatment struct {
	ID                  string    `json:"id,omitempty"`
	TreatmentName       string    `json:"treatmentName" validate:"required"`
	Category            string    `json:"category" validate:"required"`
	Description         string    `json:"description" validate:"required"`
	AvailableForBooking bool      `json:"availableForBooking"`
	CreatedAt           time.Time `json:"createdAt,omitempty"`
}
