package entity

import "time"

const (
	FinanceRevenue = "REVENUE"
	FinanceExpense = "EXPENSE"

	FinancePending   = "PENDING"
	FinanceCompleted = "COMPLETED"
	FinanceCancelled = "CANCELLED"
)

var (
	FinanceCategories = []string{FinanceRevenue, FinanceExpense}
	FinanceStatuses   = []string{FinancePending, FinanceCompleted, FinanceCancelled}

	RevenueTypes = []string{
		"Consultation Fee",
		"Treatment Fee",
		"Surgery Fee",
		"Emergency Treatment",
		"Follow-up Fee",
		"Other Income",
	}

	ExpenseTypes = []string{
		"Medical Supplies",
		"Equipment Purchase",
		"Equipment Maintenance",
		"Rent",
		"Utilities",
		"Staff Salary",
		"Marketing",
		"Insurance",
		"Laboratory Costs",
		"Other Expenses",
	}
)

// FinanceTypes returns the type list valid for a category. The type field of a
// record must always come from its own category's list.
func FinanceTypes(category string) []string {
	if category == FinanceRevenue {
		return RevenueTypes
	}
	return ExpenseTypes
}

// FinanceSummary is the aggregate the dashboard shows above the ledger.
type FinanceSummary struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalExpense float64 `json:"totalExpense"`
	NetIncome    float64 `json:"netIncome"`
}

type Finance struct {
	ID              string    `json:"id,omitempty"`
	TransactionDate string    `json:"transactionDate"`
	Category        string    `json:"category" validate:"required,oneof=REVENUE EXPENSE"`
	Type            string    `json:"type" validate:"required"`
	Amount          float64   `json:"amount" validate:"required,gt=0"`
	VendorName      string    `json:"vendorName,omitempty"`
	Description     string    `json:"description" validate:"required"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}
