package entity

import "time"

const (
	PaymentPaid      = "PAID"
	PaymentPending   = "PENDING"
	PaymentCancelled = "CANCELLED"
)

var PaymentStatuses = []string{PaymentPaid, PaymentPending, PaymentCancelled}

type Bill struct {
	ID            string    `json:"id,omitempty"`
	BillID        string    `json:"billId" validate:"required"`
	PatientID     string    `json:"patientId" validate:"required"`
	PatientName   string    `json:"patientName"`
	DentistID     string    `json:"dentistId" validate:"required"`
	DentistName   string    `json:"dentistName"`
	BillDate      string    `json:"billDate"`
	AmountDue     float64   `json:"amountDue" validate:"required,gt=0"`
	AmountPaid    float64   `json:"amountPaid"`
	DueDate       string    `json:"dueDate,omitempty"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}
