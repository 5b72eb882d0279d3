package forms

import (
	"fmt"
	"strconv"

	"navident-console/internal/domain/entity"
)

type FinanceDraft struct {
	TransactionDate string
	Category        string
	Type            string
	Amount          string
	VendorName      string
	Description     string
	Status          string
}

type FinanceForm struct {
	*Form[FinanceDraft]
}

func NewFinanceForm(existing *entity.Finance) *FinanceForm {
	d := &FinanceDraft{
		TransactionDate: now().Format("2006-01-02"),
		Category:        entity.FinanceExpense,
		Status:          entity.FinanceCompleted,
	}
	if existing != nil {
		d = &FinanceDraft{
			TransactionDate: existing.TransactionDate,
			Category:        existing.Category,
			Type:            existing.Type,
			Amount:          strconv.FormatFloat(existing.Amount, 'f', -1, 64),
			VendorName:      existing.VendorName,
			Description:     existing.Description,
			Status:          existing.Status,
		}
		if d.Category == "" {
			d.Category = entity.FinanceExpense
		}
		if d.Status == "" {
			d.Status = entity.FinanceCompleted
		}
	}
	return &FinanceForm{New(d, existing != nil, financeRules(), applyFinanceField)}
}

func financeRules() []Rule[FinanceDraft] {
	return []Rule[FinanceDraft]{
		{"category", func(d *FinanceDraft) bool { return d.Category != "" }, "Category is required"},
		{"type", func(d *FinanceDraft) bool { return d.Type != "" }, "Type is required"},
		{"amount", func(d *FinanceDraft) bool {
			amount, err := strconv.ParseFloat(d.Amount, 64)
			return err == nil && amount > 0
		}, "Valid amount is required"},
		{"description", func(d *FinanceDraft) bool { return notBlank(d.Description) }, "Description is required"},
	}
}

func applyFinanceField(d *FinanceDraft, field, value string) error {
	switch field {
	case "transactionDate":
		d.TransactionDate = value
	case "type":
		d.Type = value
	case "amount":
		d.Amount = value
	case "vendorName":
		d.VendorName = value
	case "description":
		d.Description = value
	case "status":
		d.Status = value
	case "category":
		// Changing category invalidates the type: the lists are disjoint.
		d.Category = value
		d.Type = ""
	default:
		return fmt.Errorf("unknown finance field %q", field)
	}
	return nil
}

// SetCategory switches between REVENUE and EXPENSE and clears the type,
// because the type list depends on the category.
func (f *FinanceForm) SetCategory(category string) {
	f.Change("category", func(d *FinanceDraft) {
		d.Category = category
		d.Type = ""
	})
}

// TypeOptions returns the type list valid for the draft's current category.
func (f *FinanceForm) TypeOptions() []string {
	return entity.FinanceTypes(f.Draft().Category)
}

func (f *FinanceForm) Submit() (*entity.Finance, bool) {
	if !f.Validate() {
		return nil, false
	}
	d := f.Draft()
	amount, _ := strconv.ParseFloat(d.Amount, 64)
	return &entity.Finance{
		TransactionDate: d.TransactionDate,
		Category:        d.Category,
		Type:            d.Type,
		Amount:          amount,
		VendorName:      d.VendorName,
		Description:     d.Description,
		Status:          d.Status,
	}, true
}
