package forms

import (
	"fmt"

	"navident-console/internal/domain/entity"
)

type PrescriptionDraft struct {
	PatientID        string
	PatientName      string
	DentistID        string
	DentistName      string
	PrescriptionDate string
	Diagnosis        string
	Medications      string
	Notes            string
	RequiresFollowUp bool
	Status           string
}

type PrescriptionForm struct {
	*Form[PrescriptionDraft]
	pickers *Pickers
}

func NewPrescriptionForm(existing *entity.Prescription, pickers *Pickers) *PrescriptionForm {
	d := &PrescriptionDraft{
		PrescriptionDate: now().Format("2006-01-02"),
		Status:           entity.PrescriptionActive,
	}
	if existing != nil {
		d = &PrescriptionDraft{
			PatientID:        existing.PatientID,
			PatientName:      existing.PatientName,
			DentistID:        existing.DentistID,
			DentistName:      existing.DentistName,
			PrescriptionDate: existing.PrescriptionDate,
			Diagnosis:        existing.Diagnosis,
			Medications:      existing.Medications,
			Notes:            existing.Notes,
			RequiresFollowUp: existing.RequiresFollowUp,
			Status:           existing.Status,
		}
		if d.PrescriptionDate == "" {
			d.PrescriptionDate = now().Format("2006-01-02")
		}
		if d.Status == "" {
			d.Status = entity.PrescriptionActive
		}
	}
	return &PrescriptionForm{
		Form:    New(d, existing != nil, prescriptionRules(), applyPrescriptionField),
		pickers: pickers,
	}
}

func prescriptionRules() []Rule[PrescriptionDraft] {
	return []Rule[PrescriptionDraft]{
		{"patientId", func(d *PrescriptionDraft) bool { return d.PatientID != "" }, "Patient is required"},
		{"dentistId", func(d *PrescriptionDraft) bool { return d.DentistID != "" }, "Dentist is required"},
		{"diagnosis", func(d *PrescriptionDraft) bool { return notBlank(d.Diagnosis) }, "Diagnosis is required"},
		{"medications", func(d *PrescriptionDraft) bool { return notBlank(d.Medications) }, "Medications are required"},
	}
}

func applyPrescriptionField(d *PrescriptionDraft, field, value string) error {
	switch field {
	case "prescriptionDate":
		d.PrescriptionDate = value
	case "diagnosis":
		d.Diagnosis = value
	case "medications":
		d.Medications = value
	case "notes":
		d.Notes = value
	case "requiresFollowUp":
		d.RequiresFollowUp = value == "true"
	case "status":
		d.Status = value
	default:
		return fmt.Errorf("unknown prescription field %q", field)
	}
	return nil
}

func (f *PrescriptionForm) SelectPatient(id string) {
	f.Change("patientId", func(d *PrescriptionDraft) {
		d.PatientID = id
		d.PatientName = ""
		if p, ok := f.pickers.Patient(id); ok {
			d.PatientName = p.DisplayName()
		}
	})
}

func (f *PrescriptionForm) SelectDentist(id string) {
	f.Change("dentistId", func(d *PrescriptionDraft) {
		d.DentistID = id
		d.DentistName = ""
		if dt, ok := f.pickers.Dentist(id); ok {
			d.DentistName = dt.DisplayName()
		}
	})
}

func (f *PrescriptionForm) Submit() (*entity.Prescription, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	return &entity.Prescription{
		PatientID:        d.PatientID,
		PatientName:      d.PatientName,
		DentistID:        d.DentistID,
		DentistName:      d.DentistName,
		PrescriptionDate: d.PrescriptionDate,
		Diagnosis:        d.Diagnosis,
		Medications:      d.Medications,
		Notes:            d.Notes,
		RequiresFollowUp: d.RequiresFollowUp,
		Status:           d.Status,
	}, true
}
