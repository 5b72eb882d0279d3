package entity

import "time"

var (
	Genders     = []string{"M", "F", "Other"}
	BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

	CommonAllergies = []string{"Penicillin", "Aspirin", "Latex", "Nuts", "Shellfish", "Dairy"}
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Patient struct {
	ID           string    `json:"id,omitempty"`
	FirstName    string    `json:"firstName" validate:"required"`
	LastName     string    `json:"lastName" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	MobileNumber string    `json:"mobileNumber" validate:"required,len=10,numeric"`
	Gender       string    `json:"gender" validate:"required"`
	BloodGroup   string    `json:"bloodGroup,omitempty"`
	DateOfBirth  string    `json:"dateOfBirth,omitempty"`
	Allergies    []string  `json:"allergies,omitempty"`
	Address      Address   `json:"address"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// DisplayName is the form the reference pickers copy into dependent records.
func (p Patient) DisplayName() string {
	return p.FirstName + " " + p.LastName
}
