package forms

import (
	"fmt"
	"strconv"

	"navident-console/internal/domain/entity"
)

type InsuranceDraft struct {
	PatientID            string
	AgencyName           string
	PolicyNumber         string
	PolicyEndDate        string
	Active               bool
	ClaimSubmitted       bool
	ClaimApproved        bool
	ClaimAmount          string
	ApprovedClaimAmount  string
	Status               string
	TreatmentDescription string
}

type InsuranceForm struct {
	*Form[InsuranceDraft]
	pickers *Pickers
}

func NewInsuranceForm(existing *entity.Insurance, pickers *Pickers) *InsuranceForm {
	d := &InsuranceDraft{Active: true, Status: entity.InsuranceActive}
	if existing != nil {
		d = &InsuranceDraft{
			PatientID:            existing.PatientID,
			AgencyName:           existing.AgencyName,
			PolicyNumber:         existing.PolicyNumber,
			PolicyEndDate:        existing.PolicyEndDate,
			Active:               existing.Active,
			ClaimSubmitted:       existing.ClaimSubmitted,
			ClaimApproved:        existing.ClaimApproved,
			Status:               existing.Status,
			TreatmentDescription: existing.TreatmentDescription,
		}
		if existing.ClaimAmount != nil {
			d.ClaimAmount = strconv.FormatFloat(*existing.ClaimAmount, 'f', -1, 64)
		}
		if existing.ApprovedClaimAmount != nil {
			d.ApprovedClaimAmount = strconv.FormatFloat(*existing.ApprovedClaimAmount, 'f', -1, 64)
		}
		if d.Status == "" {
			d.Status = entity.InsuranceActive
		}
	}
	return &InsuranceForm{
		Form:    New(d, existing != nil, insuranceRules(), applyInsuranceField),
		pickers: pickers,
	}
}

func insuranceRules() []Rule[InsuranceDraft] {
	return []Rule[InsuranceDraft]{
		{"patientId", func(d *InsuranceDraft) bool { return d.PatientID != "" }, "Patient is required"},
		{"agencyName", func(d *InsuranceDraft) bool { return d.AgencyName != "" }, "Agency name is required"},
		{"policyNumber", func(d *InsuranceDraft) bool { return notBlank(d.PolicyNumber) }, "Policy number is required"},
		{"policyEndDate", func(d *InsuranceDraft) bool { return d.PolicyEndDate != "" }, "Policy end date is required"},
		// Approval fields only become meaningful once a claim is submitted.
		{"claimAmount", func(d *InsuranceDraft) bool {
			return !d.ClaimSubmitted || d.ClaimAmount != ""
		}, "Claim amount is required when claim is submitted"},
	}
}

func applyInsuranceField(d *InsuranceDraft, field, value string) error {
	switch field {
	case "agencyName":
		d.AgencyName = value
	case "policyNumber":
		d.PolicyNumber = value
	case "policyEndDate":
		d.PolicyEndDate = value
	case "active":
		d.Active = value == "true"
	case "claimSubmitted":
		d.ClaimSubmitted = value == "true"
	case "claimApproved":
		d.ClaimApproved = value == "true"
	case "claimAmount":
		d.ClaimAmount = value
	case "approvedClaimAmount":
		d.ApprovedClaimAmount = value
	case "status":
		d.Status = value
	case "treatmentDescription":
		d.TreatmentDescription = value
	default:
		return fmt.Errorf("unknown insurance field %q", field)
	}
	return nil
}

func (f *InsuranceForm) SelectPatient(id string) {
	f.Change("patientId", func(d *InsuranceDraft) {
		d.PatientID = id
	})
}

func (f *InsuranceForm) Submit() (*entity.Insurance, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	record := &entity.Insurance{
		PatientID:            d.PatientID,
		AgencyName:           d.AgencyName,
		PolicyNumber:         d.PolicyNumber,
		PolicyEndDate:        d.PolicyEndDate,
		Active:               d.Active,
		ClaimSubmitted:       d.ClaimSubmitted,
		ClaimApproved:        d.ClaimApproved,
		Status:               d.Status,
		TreatmentDescription: d.TreatmentDescription,
	}
	if d.ClaimAmount != "" {
		if amount, err := strconv.ParseFloat(d.ClaimAmount, 64); err == nil {
			record.ClaimAmount = &amount
		}
	}
	if d.ApprovedClaimAmount != "" {
		if amount, err := strconv.ParseFloat(d.ApprovedClaimAmount, 64); err == nil {
			record.ApprovedClaimAmount = &amount
		}
	}
	return record, true
}
