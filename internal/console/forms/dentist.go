package forms

import (
	"fmt"
	"strconv"

	"navident-console/internal/domain/entity"
)

type DentistDraft struct {
	FirstName       string
	LastName        string
	LicenseNumber   string
	Email           string
	MobileNumber    string
	Specializations []string
	Active          bool
	ChiefDentist    bool
	Qualification   string
	ExperienceYears string
	ConsultationFee string
}

type DentistForm struct {
	*Form[DentistDraft]
}

func NewDentistForm(existing *entity.Dentist) *DentistForm {
	d := &DentistDraft{Active: true}
	if existing != nil {
		d = &DentistDraft{
			FirstName:       existing.FirstName,
			LastName:        existing.LastName,
			LicenseNumber:   existing.LicenseNumber,
			Email:           existing.Email,
			MobileNumber:    existing.MobileNumber,
			Specializations: existing.Specializations,
			Active:          existing.Active,
			ChiefDentist:    existing.ChiefDentist,
			Qualification:   existing.Qualification,
		}
		if existing.ExperienceYears != nil {
			d.ExperienceYears = strconv.Itoa(*existing.ExperienceYears)
		}
		if existing.ConsultationFee != nil {
			d.ConsultationFee = strconv.FormatFloat(*existing.ConsultationFee, 'f', -1, 64)
		}
	}
	return &DentistForm{New(d, existing != nil, dentistRules(), applyDentistField)}
}

func dentistRules() []Rule[DentistDraft] {
	return []Rule[DentistDraft]{
		{"firstName", func(d *DentistDraft) bool { return notBlank(d.FirstName) }, "First name is required"},
		{"lastName", func(d *DentistDraft) bool { return notBlank(d.LastName) }, "Last name is required"},
		{"licenseNumber", func(d *DentistDraft) bool { return notBlank(d.LicenseNumber) }, "License number is required"},
		{"email", func(d *DentistDraft) bool { return notBlank(d.Email) }, "Email is required"},
		{"email", func(d *DentistDraft) bool { return isEmail(d.Email) }, "Invalid email format"},
		{"mobileNumber", func(d *DentistDraft) bool { return notBlank(d.MobileNumber) }, "Mobile number is required"},
		{"mobileNumber", func(d *DentistDraft) bool { return isTenDigits(d.MobileNumber) }, "Mobile number must be 10 digits"},
		{"specializations", func(d *DentistDraft) bool { return len(d.Specializations) > 0 }, "At least one specialization is required"},
	}
}

func applyDentistField(d *DentistDraft, field, value string) error {
	switch field {
	case "firstName":
		d.FirstName = value
	case "lastName":
		d.LastName = value
	case "licenseNumber":
		d.LicenseNumber = value
	case "email":
		d.Email = value
	case "mobileNumber":
		d.MobileNumber = value
	case "specializations":
		d.Specializations = splitList(value)
	case "active":
		d.Active = value == "true"
	case "chiefDentist":
		d.ChiefDentist = value == "true"
	case "qualification":
		d.Qualification = value
	case "experienceYears":
		d.ExperienceYears = value
	case "consultationFee":
		d.ConsultationFee = value
	default:
		return fmt.Errorf("unknown dentist field %q", field)
	}
	return nil
}

func (f *DentistForm) Submit() (*entity.Dentist, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	record := &entity.Dentist{
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		LicenseNumber:   d.LicenseNumber,
		Email:           d.Email,
		MobileNumber:    d.MobileNumber,
		Specializations: d.Specializations,
		Active:          d.Active,
		ChiefDentist:    d.ChiefDentist,
		Qualification:   d.Qualification,
	}
	if d.ExperienceYears != "" {
		if years, err := strconv.Atoi(d.ExperienceYears); err == nil {
			record.ExperienceYears = &years
		}
	}
	if d.ConsultationFee != "" {
		if fee, err := strconv.ParseFloat(d.ConsultationFee, 64); err == nil {
			record.ConsultationFee = &fee
		}
	}
	return record, true
}
