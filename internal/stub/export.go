package stub

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gorilla/mux"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"navident-console/internal/domain/entity"
	"navident-console/pkg/response"
)

const (
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType   = "application/pdf"
)

// exportHandler renders the Excel downloads and the per-record PDFs.
type exportHandler struct {
	patients      *collection[entity.Patient]
	dentists      *collection[entity.Dentist]
	appointments  *collection[entity.Appointment]
	bills         *collection[entity.Bill]
	prescriptions *collection[entity.Prescription]
	finance       *collection[entity.Finance]
	insurance     *collection[entity.Insurance]
	log           *logrus.Logger
}

func (h *exportHandler) register(r *mux.Router) {
	r.HandleFunc("/patients/export/excel", h.patientsExcel).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}/pdf", h.patientPdf).Methods(http.MethodGet)
	r.HandleFunc("/dentists/export/excel", h.dentistsExcel).Methods(http.MethodGet)
	r.HandleFunc("/dentists/{id}/pdf", h.dentistPdf).Methods(http.MethodGet)
	r.HandleFunc("/appointments/export/excel", h.appointmentsExcel).Methods(http.MethodGet)
	r.HandleFunc("/bills/patient/{id}/export/excel", h.billsExcel).Methods(http.MethodGet)
	r.HandleFunc("/bills/{id}/pdf", h.billPdf).Methods(http.MethodGet)
	r.HandleFunc("/prescriptions/{id}/pdf", h.prescriptionPdf).Methods(http.MethodGet)
	r.HandleFunc("/finance/export/excel", h.financeExcel).Methods(http.MethodGet)
	r.HandleFunc("/insurance/patient/{id}/export/excel", h.insuranceExcel).Methods(http.MethodGet)
}

func (h *exportHandler) patientsExcel(w http.ResponseWriter, r *http.Request) {
	patients := h.patients.Filter(func(*entity.Patient) bool { return true })

	rows := make([][]interface{}, 0, len(patients))
	for _, p := range patients {
		rows = append(rows, []interface{}{
			p.DisplayName(), p.Email, p.MobileNumber, p.Gender, p.BloodGroup,
			p.DateOfBirth, strings.Join(p.Allergies, ", "), p.Address.City,
		})
	}

	h.writeExcel(w, "Patients",
		[]string{"Name", "Email", "Mobile", "Gender", "Blood Group", "Date of Birth", "Allergies", "City"}, rows)
}

func (h *exportHandler) dentistsExcel(w http.ResponseWriter, r *http.Request) {
	dentists := h.dentists.Filter(func(*entity.Dentist) bool { return true })

	rows := make([][]interface{}, 0, len(dentists))
	for _, d := range dentists {
		fee := ""
		if d.ConsultationFee != nil {
			fee = decimal.NewFromFloat(*d.ConsultationFee).StringFixed(2)
		}
		rows = append(rows, []interface{}{
			d.DisplayName(), d.LicenseNumber, d.Email, d.MobileNumber,
			strings.Join(d.Specializations, ", "), d.Active, d.ChiefDentist, fee,
		})
	}

	h.writeExcel(w, "Dentists",
		[]string{"Name", "License", "Email", "Mobile", "Specializations", "Active", "Chief", "Consultation Fee"}, rows)
}

func (h *exportHandler) appointmentsExcel(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")

	// ISO dates compare correctly as strings.
	appointments := h.appointments.Filter(func(a *entity.Appointment) bool {
		if start != "" && a.AppointmentDate < start {
			return false
		}
		if end != "" && a.AppointmentDate > end {
			return false
		}
		return true
	})

	rows := make([][]interface{}, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, []interface{}{
			a.AppointmentDate, a.AppointmentTime, a.PatientName, a.DentistName, a.Status, a.Notes,
		})
	}

	h.writeExcel(w, "Appointments",
		[]string{"Date", "Time", "Patient", "Dentist", "Status", "Notes"}, rows)
}

func (h *exportHandler) billsExcel(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]
	bills := h.bills.Filter(func(b *entity.Bill) bool { return b.PatientID == patientID })

	totalDue := decimal.Zero
	totalPaid := decimal.Zero
	rows := make([][]interface{}, 0, len(bills)+1)
	for _, b := range bills {
		due := decimal.NewFromFloat(b.AmountDue)
		paid := decimal.NewFromFloat(b.AmountPaid)
		totalDue = totalDue.Add(due)
		totalPaid = totalPaid.Add(paid)
		rows = append(rows, []interface{}{
			b.BillID, b.BillDate, b.PatientName, b.DentistName,
			due.StringFixed(2), paid.StringFixed(2), b.DueDate, b.PaymentStatus,
		})
	}
	rows = append(rows, []interface{}{
		"TOTAL", "", "", "", totalDue.StringFixed(2), totalPaid.StringFixed(2),
		totalDue.Sub(totalPaid).StringFixed(2), "",
	})

	h.writeExcel(w, "Bills",
		[]string{"Bill ID", "Date", "Patient", "Dentist", "Amount Due", "Amount Paid", "Due Date", "Status"}, rows)
}

func (h *exportHandler) financeExcel(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")

	records := h.finance.Filter(func(f *entity.Finance) bool {
		if start != "" && f.TransactionDate < start {
			return false
		}
		if end != "" && f.TransactionDate > end {
			return false
		}
		return true
	})

	revenue := decimal.Zero
	expense := decimal.Zero
	rows := make([][]interface{}, 0, len(records)+1)
	for _, f := range records {
		amount := decimal.NewFromFloat(f.Amount)
		if f.Category == entity.FinanceRevenue {
			revenue = revenue.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
		rows = append(rows, []interface{}{
			f.TransactionDate, f.Category, f.Type, amount.StringFixed(2),
			f.VendorName, f.Description, f.Status,
		})
	}
	rows = append(rows, []interface{}{
		"NET", "", "", revenue.Sub(expense).StringFixed(2), "", "", "",
	})

	h.writeExcel(w, "Finance",
		[]string{"Date", "Category", "Type", "Amount", "Vendor", "Description", "Status"}, rows)
}

func (h *exportHandler) insuranceExcel(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]
	records := h.insurance.Filter(func(i *entity.Insurance) bool { return i.PatientID == patientID })

	rows := make([][]interface{}, 0, len(records))
	for _, i := range records {
		claim := ""
		if i.ClaimAmount != nil {
			claim = decimal.NewFromFloat(*i.ClaimAmount).StringFixed(2)
		}
		approved := ""
		if i.ApprovedClaimAmount != nil {
			approved = decimal.NewFromFloat(*i.ApprovedClaimAmount).StringFixed(2)
		}
		rows = append(rows, []interface{}{
			i.AgencyName, i.PolicyNumber, i.PolicyEndDate, i.Active,
			i.ClaimSubmitted, claim, i.ClaimApproved, approved, i.Status,
		})
	}

	h.writeExcel(w, "Insurance",
		[]string{"Agency", "Policy", "End Date", "Active", "Claim Submitted", "Claim Amount",
			"Claim Approved", "Approved Amount", "Status"}, rows)
}

func (h *exportHandler) patientPdf(w http.ResponseWriter, r *http.Request) {
	p, ok := h.patients.Get(mux.Vars(r)["id"])
	if !ok {
		response.NotFound(w, "Patient not found")
		return
	}

	h.writePdf(w, "Patient Summary", [][2]string{
		{"Name", p.DisplayName()},
		{"Email", p.Email},
		{"Mobile", p.MobileNumber},
		{"Gender", p.Gender},
		{"Blood Group", p.BloodGroup},
		{"Date of Birth", p.DateOfBirth},
		{"Allergies", strings.Join(p.Allergies, ", ")},
		{"Address", p.Address.Street + ", " + p.Address.City + ", " + p.Address.State},
	})
}

func (h *exportHandler) dentistPdf(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dentists.Get(mux.Vars(r)["id"])
	if !ok {
		response.NotFound(w, "Dentist not found")
		return
	}

	lines := [][2]string{
		{"Name", d.DisplayName()},
		{"License", d.LicenseNumber},
		{"Email", d.Email},
		{"Mobile", d.MobileNumber},
		{"Specializations", strings.Join(d.Specializations, ", ")},
		{"Qualification", d.Qualification},
	}
	if d.ExperienceYears != nil {
		lines = append(lines, [2]string{"Experience", fmt.Sprintf("%d years", *d.ExperienceYears)})
	}
	if d.ConsultationFee != nil {
		lines = append(lines, [2]string{"Consultation Fee", decimal.NewFromFloat(*d.ConsultationFee).StringFixed(2)})
	}

	h.writePdf(w, "Dentist Summary", lines)
}

func (h *exportHandler) billPdf(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bills.Get(mux.Vars(r)["id"])
	if !ok {
		response.NotFound(w, "Bill not found")
		return
	}

	due := decimal.NewFromFloat(b.AmountDue)
	paid := decimal.NewFromFloat(b.AmountPaid)

	h.writePdf(w, "Bill "+b.BillID, [][2]string{
		{"Date", b.BillDate},
		{"Patient", b.PatientName},
		{"Dentist", b.DentistName},
		{"Amount Due", due.StringFixed(2)},
		{"Amount Paid", paid.StringFixed(2)},
		{"Outstanding", due.Sub(paid).StringFixed(2)},
		{"Due Date", b.DueDate},
		{"Status", b.PaymentStatus},
	})
}

func (h *exportHandler) prescriptionPdf(w http.ResponseWriter, r *http.Request) {
	p, ok := h.prescriptions.Get(mux.Vars(r)["id"])
	if !ok {
		response.NotFound(w, "Prescription not found")
		return
	}

	followUp := "No"
	if p.RequiresFollowUp {
		followUp = "Yes"
	}

	h.writePdf(w, "Prescription", [][2]string{
		{"Date", p.PrescriptionDate},
		{"Patient", p.PatientName},
		{"Dentist", p.DentistName},
		{"Diagnosis", p.Diagnosis},
		{"Medications", p.Medications},
		{"Notes", p.Notes},
		{"Follow-up", followUp},
		{"Status", p.Status},
	})
}

func (h *exportHandler) writeExcel(w http.ResponseWriter, sheet string, headers []string, rows [][]interface{}) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	for col, header := range headers {
		f.SetCellValue(sheet, cellName(col, 1), header)
	}
	for i, row := range rows {
		for col, value := range row {
			f.SetCellValue(sheet, cellName(col, i+2), value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.log.Warnf("Failed to build workbook: %v", err)
		response.InternalServerError(w, "")
		return
	}
	response.Blob(w, excelContentType, buf.Bytes())
}

func (h *exportHandler) writePdf(w http.ResponseWriter, title string, lines [][2]string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(14)

	for _, line := range lines {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(50, 8, line[0])
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 8, line[1], "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		h.log.Warnf("Failed to build PDF: %v", err)
		response.InternalServerError(w, "")
		return
	}
	response.Blob(w, pdfContentType, buf.Bytes())
}

// cellName converts a zero-based column and one-based row to an A1 reference.
func cellName(col, row int) string {
	return excelize.ToAlphaString(col) + fmt.Sprint(row)
}
