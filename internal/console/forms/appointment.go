package forms

import (
	"fmt"

	"navident-console/internal/domain/entity"
)

type AppointmentDraft struct {
	PatientID       string
	PatientName     string
	DentistID       string
	DentistName     string
	AppointmentDate string
	AppointmentTime string
	Status          string
	Notes           string
}

type AppointmentForm struct {
	*Form[AppointmentDraft]
	pickers *Pickers
}

func NewAppointmentForm(existing *entity.Appointment, pickers *Pickers) *AppointmentForm {
	d := &AppointmentDraft{Status: entity.AppointmentScheduled}
	if existing != nil {
		d = &AppointmentDraft{
			PatientID:       existing.PatientID,
			PatientName:     existing.PatientName,
			DentistID:       existing.DentistID,
			DentistName:     existing.DentistName,
			AppointmentDate: existing.AppointmentDate,
			AppointmentTime: existing.AppointmentTime,
			Status:          existing.Status,
			Notes:           existing.Notes,
		}
		if d.Status == "" {
			d.Status = entity.AppointmentScheduled
		}
	}
	return &AppointmentForm{
		Form:    New(d, existing != nil, appointmentRules(), applyAppointmentField),
		pickers: pickers,
	}
}

func appointmentRules() []Rule[AppointmentDraft] {
	return []Rule[AppointmentDraft]{
		{"patientId", func(d *AppointmentDraft) bool { return d.PatientID != "" }, "Patient is required"},
		{"dentistId", func(d *AppointmentDraft) bool { return d.DentistID != "" }, "Dentist is required"},
		{"appointmentDate", func(d *AppointmentDraft) bool { return d.AppointmentDate != "" }, "Date is required"},
		{"appointmentTime", func(d *AppointmentDraft) bool { return d.AppointmentTime != "" }, "Time is required"},
	}
}

func applyAppointmentField(d *AppointmentDraft, field, value string) error {
	switch field {
	case "appointmentDate":
		d.AppointmentDate = value
	case "appointmentTime":
		d.AppointmentTime = value
	case "status":
		d.Status = value
	case "notes":
		d.Notes = value
	default:
		return fmt.Errorf("unknown appointment field %q", field)
	}
	return nil
}

// SelectPatient copies the id and the synthesized display name into the
// draft. The stored name is a snapshot; it does not follow later renames.
func (f *AppointmentForm) SelectPatient(id string) {
	f.Change("patientId", func(d *AppointmentDraft) {
		d.PatientID = id
		d.PatientName = ""
		if p, ok := f.pickers.Patient(id); ok {
			d.PatientName = p.DisplayName()
		}
	})
}

func (f *AppointmentForm) SelectDentist(id string) {
	f.Change("dentistId", func(d *AppointmentDraft) {
		d.DentistID = id
		d.DentistName = ""
		if dt, ok := f.pickers.Dentist(id); ok {
			d.DentistName = dt.DisplayName()
		}
	})
}

func (f *AppointmentForm) Submit() (*entity.Appointment, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	return &entity.Appointment{
		PatientID:       d.PatientID,
		PatientName:     d.PatientName,
		DentistID:       d.DentistID,
		DentistName:     d.DentistName,
		AppointmentDate: d.AppointmentDate,
		AppointmentTime: d.AppointmentTime,
		Status:          d.Status,
		Notes:           d.Notes,
	}, true
}
