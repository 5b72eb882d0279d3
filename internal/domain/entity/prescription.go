package entity

import "time"

const (
	PrescriptionActive    = "ACTIVE"
	PrescriptionCompleted = "COMPLETED"
	PrescriptionExpired   = "EXPIRED"
)

var PrescriptionStatuses = []string{PrescriptionActive, PrescriptionCompleted, PrescriptionExpired}

type Prescription struct {
	ID               string    `json:"id,omitempty"`
	PatientID        string    `json:"patientId" validate:"required"`
	PatientName      string    `json:"patientName"`
	DentistID        string    `json:"dentistId" validate:"required"`
	DentistName      string    `json:"dentistName"`
	PrescriptionDate string    `json:"prescriptionDate"`
	Diagnosis        string    `json:"diagnosis" validate:"required"`
	Medications      string    `json:"medications" validate:"required"`
	Notes            string    `json:"notes,omitempty"`
	RequiresFollowUp bool      `json:"requiresFollowUp"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}
