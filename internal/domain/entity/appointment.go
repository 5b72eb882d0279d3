package entity

import "time"

const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
)

var AppointmentStatuses = []string{
	AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled,
}

// TimeSlots is the fixed set of bookable half-hour slots (no 13:00 lunch slots).
var TimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30",
}

type Appointment struct {
	ID              string    `json:"id,omitempty"`
	PatientID       string    `json:"patientId" validate:"required"`
	PatientName     string    `json:"patientName"`
	DentistID       string    `json:"dentistId" validate:"required"`
	DentistName     string    `json:"dentistName"`
	AppointmentDate string    `json:"appointmentDate" validate:"required"`
	AppointmentTime string    `json:"appointmentTime" validate:"required"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}
