package forms

import (
	"fmt"

	"navident-console/internal/domain/entity"
)

type TreatmentDraft struct {
	TreatmentName       string
	Category            string
	Description         string
	AvailableForBooking bool
}

type TreatmentForm struct {
	*Form[TreatmentDraft]
}

func NewTreatmentForm(existing *entity.Treatment) *TreatmentForm {
	d := &TreatmentDraft{AvailableForBooking: true}
	if existing != nil {
		d = &TreatmentDraft{
			TreatmentName:       existing.TreatmentName,
			Category:            existing.Category,
			Description:         existing.Description,
			AvailableForBooking: existing.AvailableForBooking,
		}
	}
	return &TreatmentForm{New(d, existing != nil, treatmentRules(), applyTreatmentField)}
}

func treatmentRules() []Rule[TreatmentDraft] {
	return []Rule[TreatmentDraft]{
		{"treatmentName", func(d *TreatmentDraft) bool { return notBlank(d.TreatmentName) }, "Treatment name is required"},
		{"category", func(d *TreatmentDraft) bool { return d.Category != "" }, "Category is required"},
		{"description", func(d *TreatmentDraft) bool { return notBlank(d.Description) }, "Description is required"},
	}
}

func applyTreatmentField(d *TreatmentDraft, field, value string) error {
	switch field {
	case "treatmentName":
		d.TreatmentName = value
	case "category":
		d.Category = value
	case "description":
		d.Description = value
	case "availableForBooking":
		d.AvailableForBooking = value == "true"
	default:
		return fmt.Errorf("unknown treatment field %q", field)
	}
	return nil
}

func (f *TreatmentForm) Submit() (*entity.Treatment, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	return &entity.Treatment{
		TreatmentName:       d.TreatmentName,
		Category:            d.Category,
		Description:         d.Description,
		AvailableForBooking: d.AvailableForBooking,
	}, true
}
