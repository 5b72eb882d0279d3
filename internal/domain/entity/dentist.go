package entity

import "time"

var Specializations = []string{
	"General Dentistry", "Orthodontics", "Endodontics", "Periodontics",
	"Oral Surgery", "Prosthodontics", "Pediatric Dentistry", "Cosmetic Dentistry",
	"Oral Pathology", "Dental Implants",
}

type Dentist struct {
	ID              string    `json:"id,omitempty"`
	FirstName       string    `json:"firstName" validate:"required"`
	LastName        string    `json:"lastName" validate:"required"`
	LicenseNumber   string    `json:"licenseNumber" validate:"required"`
	Email           string    `json:"email" validate:"required,email"`
	MobileNumber    string    `json:"mobileNumber" validate:"required,len=10,numeric"`
	Specializations []string  `json:"specializations" validate:"required,min=1"`
	Active          bool      `json:"active"`
	ChiefDentist    bool      `json:"chiefDentist"`
	Qualification   string    `json:"qualification,omitempty"`
	ExperienceYears *int      `json:"experienceYears,omitempty"`
	ConsultationFee *float64  `json:"consultationFee,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

func (d Dentist) DisplayName() string {
	return d.FirstName + " " + d.LastName
}
