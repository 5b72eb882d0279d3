package entity

import "time"

const (
	InsuranceActive   = "ACTIVE"
	InsuranceExpired  = "EXPIRED"
	InsuranceClaimed  = "CLAIMED"
	InsuranceApproved = "APPROVED"
)

var (
	InsuranceStatuses = []string{InsuranceActive, InsuranceExpired, InsuranceClaimed, InsuranceApproved}

	InsuranceAgencies = []string{
		"LIC of India",
		"HDFC ERGO",
		"ICICI Lombard",
		"Bajaj Allianz",
		"New India Assurance",
		"Oriental Insurance",
		"United India Insurance",
		"National Insurance",
		"Star Health Insurance",
		"Max Bupa",
		"Apollo Munich",
		"Religare",
		"Other",
	}
)

type Insurance struct {
	ID                   string    `json:"id,omitempty"`
	PatientID            string    `json:"patientId" validate:"required"`
	AgencyName           string    `json:"agencyName" validate:"required"`
	PolicyNumber         string    `json:"policyNumber" validate:"required"`
	PolicyEndDate        string    `json:"policyEndDate" validate:"required"`
	Active               bool      `json:"active"`
	ClaimSubmitted       bool      `json:"claimSubmitted"`
	ClaimApproved        bool      `json:"claimApproved"`
	ClaimAmount          *float64  `json:"claimAmount,omitempty"`
	ApprovedClaimAmount  *float64  `json:"approvedClaimAmount,omitempty"`
	Status               string    `json:"status"`
	TreatmentDescription string    `json:"treatmentDescription,omitempty"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
}
