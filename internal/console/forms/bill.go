package forms

import (
	"fmt"
	"strconv"
	"time"

	"navident-console/internal/domain/entity"
)

type BillDraft struct {
	BillID        string
	PatientID     string
	PatientName   string
	DentistID     string
	DentistName   string
	BillDate      string
	AmountDue     string
	AmountPaid    string
	DueDate       string
	PaymentStatus string
}

type BillForm struct {
	*Form[BillDraft]
	pickers *Pickers
}

// now is swapped in tests to pin the generated bill id.
var now = time.Now

func NewBillForm(existing *entity.Bill, pickers *Pickers) *BillForm {
	var d *BillDraft
	if existing != nil {
		d = &BillDraft{
			BillID:        existing.BillID,
			PatientID:     existing.PatientID,
			PatientName:   existing.PatientName,
			DentistID:     existing.DentistID,
			DentistName:   existing.DentistName,
			BillDate:      existing.BillDate,
			AmountDue:     strconv.FormatFloat(existing.AmountDue, 'f', -1, 64),
			AmountPaid:    strconv.FormatFloat(existing.AmountPaid, 'f', -1, 64),
			DueDate:       existing.DueDate,
			PaymentStatus: existing.PaymentStatus,
		}
		if d.PaymentStatus == "" {
			d.PaymentStatus = entity.PaymentPending
		}
	} else {
		// New bills get a client-generated id.
		d = &BillDraft{
			BillID:        fmt.Sprintf("BILL-%d", now().UnixMilli()),
			BillDate:      now().Format("2006-01-02"),
			AmountPaid:    "0",
			PaymentStatus: entity.PaymentPending,
		}
	}
	return &BillForm{
		Form:    New(d, existing != nil, billRules(), applyBillField),
		pickers: pickers,
	}
}

func billRules() []Rule[BillDraft] {
	return []Rule[BillDraft]{
		{"billId", func(d *BillDraft) bool { return notBlank(d.BillID) }, "Bill ID is required"},
		{"patientId", func(d *BillDraft) bool { return d.PatientID != "" }, "Patient is required"},
		{"dentistId", func(d *BillDraft) bool { return d.DentistID != "" }, "Dentist is required"},
		{"amountDue", func(d *BillDraft) bool {
			amount, err := strconv.ParseFloat(d.AmountDue, 64)
			return err == nil && amount > 0
		}, "Valid amount due is required"},
	}
}

func applyBillField(d *BillDraft, field, value string) error {
	switch field {
	case "billId":
		d.BillID = value
	case "billDate":
		d.BillDate = value
	case "amountDue":
		d.AmountDue = value
	case "amountPaid":
		d.AmountPaid = value
	case "dueDate":
		d.DueDate = value
	case "paymentStatus":
		d.PaymentStatus = value
	default:
		return fmt.Errorf("unknown bill field %q", field)
	}
	return nil
}

func (f *BillForm) SelectPatient(id string) {
	f.Change("patientId", func(d *BillDraft) {
		d.PatientID = id
		d.PatientName = ""
		if p, ok := f.pickers.Patient(id); ok {
			d.PatientName = p.DisplayName()
		}
	})
}

func (f *BillForm) SelectDentist(id string) {
	f.Change("dentistId", func(d *BillDraft) {
		d.DentistID = id
		d.DentistName = ""
		if dt, ok := f.pickers.Dentist(id); ok {
			d.DentistName = dt.DisplayName()
		}
	})
}

// Submit coerces the money fields from their text inputs to numbers.
func (f *BillForm) Submit() (*entity.Bill, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	amountDue, _ := strconv.ParseFloat(d.AmountDue, 64)
	amountPaid, err := strconv.ParseFloat(d.AmountPaid, 64)
	if err != nil {
		amountPaid = 0
	}
	return &entity.Bill{
		BillID:        d.BillID,
		PatientID:     d.PatientID,
		PatientName:   d.PatientName,
		DentistID:     d.DentistID,
		DentistName:   d.DentistName,
		BillDate:      d.BillDate,
		AmountDue:     amountDue,
		AmountPaid:    amountPaid,
		DueDate:       d.DueDate,
		PaymentStatus: d.PaymentStatus,
	}, true
}
