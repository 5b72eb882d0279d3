package forms

import (
	"fmt"
	"strings"

	"navident-console/internal/domain/entity"
)

type PatientDraft struct {
	FirstName    string
	LastName     string
	Email        string
	MobileNumber string
	Gender       string
	BloodGroup   string
	DateOfBirth  string
	Allergies    []string
	Street       string
	City         string
	State        string
	PostalCode   string
	Country      string
}

type PatientForm struct {
	*Form[PatientDraft]
}

func NewPatientForm(existing *entity.Patient) *PatientForm {
	d := &PatientDraft{Country: "India"}
	if existing != nil {
		d = &PatientDraft{
			FirstName:    existing.FirstName,
			LastName:     existing.LastName,
			Email:        existing.Email,
			MobileNumber: existing.MobileNumber,
			Gender:       existing.Gender,
			BloodGroup:   existing.BloodGroup,
			DateOfBirth:  existing.DateOfBirth,
			Allergies:    existing.Allergies,
			Street:       existing.Address.Street,
			City:         existing.Address.City,
			State:        existing.Address.State,
			PostalCode:   existing.Address.PostalCode,
			Country:      existing.Address.Country,
		}
		if d.Country == "" {
			d.Country = "India"
		}
	}
	return &PatientForm{New(d, existing != nil, patientRules(), applyPatientField)}
}

func patientRules() []Rule[PatientDraft] {
	return []Rule[PatientDraft]{
		{"firstName", func(d *PatientDraft) bool { return notBlank(d.FirstName) }, "First name is required"},
		{"lastName", func(d *PatientDraft) bool { return notBlank(d.LastName) }, "Last name is required"},
		{"email", func(d *PatientDraft) bool { return notBlank(d.Email) }, "Email is required"},
		{"email", func(d *PatientDraft) bool { return isEmail(d.Email) }, "Invalid email format"},
		{"mobileNumber", func(d *PatientDraft) bool { return notBlank(d.MobileNumber) }, "Mobile number is required"},
		{"mobileNumber", func(d *PatientDraft) bool { return isTenDigits(d.MobileNumber) }, "Mobile number must be 10 digits"},
		{"gender", func(d *PatientDraft) bool { return d.Gender != "" }, "Gender is required"},
	}
}

func applyPatientField(d *PatientDraft, field, value string) error {
	switch field {
	case "firstName":
		d.FirstName = value
	case "lastName":
		d.LastName = value
	case "email":
		d.Email = value
	case "mobileNumber":
		d.MobileNumber = value
	case "gender":
		d.Gender = value
	case "bloodGroup":
		d.BloodGroup = value
	case "dateOfBirth":
		d.DateOfBirth = value
	case "allergies":
		d.Allergies = splitList(value)
	case "address.street":
		d.Street = value
	case "address.city":
		d.City = value
	case "address.state":
		d.State = value
	case "address.postalCode":
		d.PostalCode = value
	case "address.country":
		d.Country = value
	default:
		return fmt.Errorf("unknown patient field %q", field)
	}
	return nil
}

// Submit validates the draft and returns the record to hand to the save
// handler, or nil when validation failed.
func (f *PatientForm) Submit() (*entity.Patient, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	return &entity.Patient{
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		MobileNumber: d.MobileNumber,
		Gender:       d.Gender,
		BloodGroup:   d.BloodGroup,
		DateOfBirth:  d.DateOfBirth,
		Allergies:    d.Allergies,
		Address: entity.Address{
			Street:     d.Street,
			City:       d.City,
			State:      d.State,
			PostalCode: d.PostalCode,
			Country:    d.Country,
		},
	}, true
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
