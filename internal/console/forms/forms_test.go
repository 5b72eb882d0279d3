package forms

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"navident-console/internal/domain/entity"
)

func TestPatientValidationMessages(t *testing.T) {
	f := NewPatientForm(nil)

	if _, ok := f.Submit(); ok {
		t.Fatal("empty draft validated")
	}

	errs := f.Errors()
	want := map[string]string{
		"firstName":    "First name is required",
		"lastName":     "Last name is required",
		"email":        "Email is required",
		"mobileNumber": "Mobile number is required",
		"gender":       "Gender is required",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("errors[%q] = %q, want %q", field, errs[field], msg)
		}
	}

	f.Set("email", "not-an-email")
	f.Set("mobileNumber", "12345")
	f.Submit()

	errs = f.Errors()
	if errs["email"] != "Invalid email format" {
		t.Errorf("errors[email] = %q", errs["email"])
	}
	if errs["mobileNumber"] != "Mobile number must be 10 digits" {
		t.Errorf("errors[mobileNumber] = %q", errs["mobileNumber"])
	}
}

func TestPatientSetClearsOnlyThatFieldsError(t *testing.T) {
	f := NewPatientForm(nil)
	f.Submit()

	f.Set("firstName", "Ananya")

	errs := f.Errors()
	if _, still := errs["firstName"]; still {
		t.Error("firstName error not cleared by Set")
	}
	if _, kept := errs["lastName"]; !kept {
		t.Error("lastName error cleared by an unrelated Set")
	}
}

func TestPatientSubmit(t *testing.T) {
	f := NewPatientForm(nil)
	if f.Draft().Country != "India" {
		t.Errorf("default country = %q, want India", f.Draft().Country)
	}

	f.Set("firstName", "Ananya")
	f.Set("lastName", "Iyer")
	f.Set("email", "ananya@example.com")
	f.Set("mobileNumber", "9876543210")
	f.Set("gender", "F")
	f.Set("allergies", "Penicillin, Latex")
	f.Set("address.street", "14 MG Road")
	f.Set("address.city", "Bengaluru")

	record, ok := f.Submit()
	if !ok {
		t.Fatalf("Submit failed: %v", f.Errors())
	}
	if len(record.Allergies) != 2 || record.Allergies[0] != "Penicillin" || record.Allergies[1] != "Latex" {
		t.Errorf("allergies = %v", record.Allergies)
	}
	if record.Address.City != "Bengaluru" || record.Address.Country != "India" {
		t.Errorf("address = %+v", record.Address)
	}
}

func TestDentistNumericCoercion(t *testing.T) {
	f := NewDentistForm(nil)
	if !f.Draft().Active {
		t.Error("new dentist draft not active by default")
	}

	f.Set("firstName", "Rohan")
	f.Set("lastName", "Mehta")
	f.Set("licenseNumber", "DCI-1")
	f.Set("email", "rohan@example.com")
	f.Set("mobileNumber", "9812345670")
	f.Set("specializations", "Orthodontics")
	f.Set("experienceYears", "12")
	f.Set("consultationFee", "500.5")

	record, ok := f.Submit()
	if !ok {
		t.Fatalf("Submit failed: %v", f.Errors())
	}
	if record.ExperienceYears == nil || *record.ExperienceYears != 12 {
		t.Errorf("experienceYears = %v", record.ExperienceYears)
	}
	if record.ConsultationFee == nil || *record.ConsultationFee != 500.5 {
		t.Errorf("consultationFee = %v", record.ConsultationFee)
	}
}

func TestDentistRequiresSpecialization(t *testing.T) {
	f := NewDentistForm(nil)
	f.Submit()
	if got := f.Errors()["specializations"]; got != "At least one specialization is required" {
		t.Errorf("errors[specializations] = %q", got)
	}
}

func testPickers() *Pickers {
	return &Pickers{
		Patients: []entity.Patient{{ID: "p1", FirstName: "Ananya", LastName: "Iyer"}},
		Dentists: []entity.Dentist{{ID: "d1", FirstName: "Rohan", LastName: "Mehta"}},
	}
}

func TestAppointmentPickerSnapshotsNames(t *testing.T) {
	f := NewAppointmentForm(nil, testPickers())
	if f.Draft().Status != entity.AppointmentScheduled {
		t.Errorf("default status = %q", f.Draft().Status)
	}

	f.SelectPatient("p1")
	f.SelectDentist("d1")
	f.Set("appointmentDate", "2026-09-01")
	f.Set("appointmentTime", "10:00")

	record, ok := f.Submit()
	if !ok {
		t.Fatalf("Submit failed: %v", f.Errors())
	}
	if record.PatientName != "Ananya Iyer" {
		t.Errorf("patientName = %q", record.PatientName)
	}
	if record.DentistName != "Rohan Mehta" {
		t.Errorf("dentistName = %q", record.DentistName)
	}
}

func TestAppointmentRequiredFields(t *testing.T) {
	f := NewAppointmentForm(nil, testPickers())
	f.Submit()

	errs := f.Errors()
	want := map[string]string{
		"patientId":       "Patient is required",
		"dentistId":       "Dentist is required",
		"appointmentDate": "Date is required",
		"appointmentTime": "Time is required",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("errors[%q] = %q, want %q", field, errs[field], msg)
		}
	}
}

func TestBillCreateDefaults(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	restore := now
	now = func() time.Time { return fixed }
	defer func() { now = restore }()

	f := NewBillForm(nil, testPickers())
	d := f.Draft()

	if want := fmt.Sprintf("BILL-%d", fixed.UnixMilli()); d.BillID != want {
		t.Errorf("billId = %q, want %q", d.BillID, want)
	}
	if d.BillDate != "2026-08-30" {
		t.Errorf("billDate = %q", d.BillDate)
	}
	if d.AmountPaid != "0" {
		t.Errorf("amountPaid = %q, want 0", d.AmountPaid)
	}
	if d.PaymentStatus != entity.PaymentPending {
		t.Errorf("paymentStatus = %q", d.PaymentStatus)
	}
}

func TestBillAmountCoercion(t *testing.T) {
	f := NewBillForm(nil, testPickers())
	f.SelectPatient("p1")
	f.SelectDentist("d1")

	f.Set("amountDue", "abc")
	if _, ok := f.Submit(); ok {
		t.Fatal("non-numeric amountDue validated")
	}
	if got := f.Errors()["amountDue"]; got != "Valid amount due is required" {
		t.Errorf("errors[amountDue] = %q", got)
	}

	f.Set("amountDue", "150.5")
	record, ok := f.Submit()
	if !ok {
		t.Fatalf("Submit failed: %v", f.Errors())
	}
	if record.AmountDue != 150.5 {
		t.Errorf("amountDue = %v, want 150.5", record.AmountDue)
	}
	if record.AmountPaid != 0 {
		t.Errorf("amountPaid = %v, want 0", record.AmountPaid)
	}
}

func TestFinanceCategoryChangeClearsType(t *testing.T) {
	f := NewFinanceForm(nil)
	if f.Draft().Category != entity.FinanceExpense {
		t.Errorf("default category = %q", f.Draft().Category)
	}

	f.Set("type", "Rent")
	f.SetCategory(entity.FinanceRevenue)
	if f.Draft().Type != "" {
		t.Errorf("type = %q after category change, want cleared", f.Draft().Type)
	}

	opts := f.TypeOptions()
	if len(opts) == 0 || opts[0] != "Consultation Fee" {
		t.Errorf("type options = %v, want revenue types", opts)
	}

	// The textual setter follows the same rule.
	f.Set("type", "Consultation Fee")
	f.Set("category", entity.FinanceExpense)
	if f.Draft().Type != "" {
		t.Errorf("type = %q after textual category change, want cleared", f.Draft().Type)
	}
}

func TestFinanceSubmit(t *testing.T) {
	f := NewFinanceForm(nil)
	f.Set("type", "Rent")
	f.Set("amount", "2000")
	f.Set("description", "August rent")

	record, ok := f.Submit()
	if !ok {
		t.Fatalf("Submit failed: %v", f.Errors())
	}
	if record.Amount != 2000 {
		t.Errorf("amount = %v", record.Amount)
	}
	if record.Status != entity.FinanceCompleted {
		t.Errorf("status = %q", record.Status)
	}
}

func TestInsuranceClaimAmountRule(t *testing.T) {
	f := NewInsuranceForm(nil, testPickers())
	f.SelectPatient("p1")
	f.Set("agencyName", "LIC of India")
	f.Set("policyNumber", "POL-9")
	f.Set("policyEndDate", "2027-01-01")

	if _, ok := f.Submit(); !ok {
		t.Fatalf("no-claim draft rejected: %v", f.Errors())
	}

	f.Set("claimSubmitted", "true")
	if _, ok := f.Submit(); ok {
		t.Fatal("claim without amount validated")
	}
	if got := f.Errors()["claimAmount"]; got != "Claim amount is required when claim is submitted" {
		t.Errorf("errors[claimAmount] = %q", got)
	}

	f.Set("claimAmount", "12000")
	record, ok := f.Submit()
	if !ok {
		t.Fatalf("Submit failed: %v", f.Errors())
	}
	if record.ClaimAmount == nil || *record.ClaimAmount != 12000 {
		t.Errorf("claimAmount = %v", record.ClaimAmount)
	}
}

func TestUserCreateRequiresMatchingPasswords(t *testing.T) {
	f := NewUserForm(nil)
	f.Set("username", "reception1")
	f.Set("firstName", "Priya")
	f.Set("lastName", "Shah")
	f.Set("email", "priya@example.com")
	f.Set("password", "secret1")
	f.Set("confirmPassword", "different")

	if _, ok := f.Submit(); ok {
		t.Fatal("mismatched passwords validated")
	}
	if got := f.Errors()["confirmPassword"]; got != "Passwords do not match" {
		t.Errorf("errors[confirmPassword] = %q", got)
	}

	f.Set("confirmPassword", "secret1")
	record, ok := f.Submit()
	if !ok {
		t.Fatalf("Submit failed: %v", f.Errors())
	}
	if record.Password != "secret1" {
		t.Errorf("password = %q", record.Password)
	}
}

func TestUserEditModeOmitsPassword(t *testing.T) {
	existing := &entity.User{
		Username:  "reception1",
		FirstName: "Priya",
		LastName:  "Shah",
		Email:     "priya@example.com",
		Role:      entity.RoleClinicAssistant,
		Active:    true,
	}
	f := NewUserForm(existing)
	if !f.EditMode() {
		t.Fatal("form not in edit mode")
	}

	// No password rules in edit mode, and nothing leaks into the record.
	f.Set("password", "whatever")
	record, ok := f.Submit()
	if !ok {
		t.Fatalf("Submit failed: %v", f.Errors())
	}
	if record.Password != "" {
		t.Errorf("password = %q, want empty in edit mode", record.Password)
	}
}

func TestPasswordChangeForm(t *testing.T) {
	f := NewPasswordChangeForm()
	f.Set("currentPassword", "old123")
	f.Set("newPassword", "abc")
	f.Set("confirmPassword", "abc")

	if _, ok := f.Submit(); ok {
		t.Fatal("short password validated")
	}
	if got := f.Errors()["newPassword"]; got != "Password must be at least 6 characters" {
		t.Errorf("errors[newPassword] = %q", got)
	}

	f.Set("newPassword", "abcdef")
	f.Set("confirmPassword", "abcdef")
	change, ok := f.Submit()
	if !ok {
		t.Fatalf("Submit failed: %v", f.Errors())
	}
	if change.CurrentPassword != "old123" || change.NewPassword != "abcdef" {
		t.Errorf("change = %+v", change)
	}
}

func TestTreatmentRequiredFields(t *testing.T) {
	f := NewTreatmentForm(nil)
	if !f.Draft().AvailableForBooking {
		t.Error("new treatment not bookable by default")
	}

	f.Submit()
	errs := f.Errors()
	want := map[string]string{
		"treatmentName": "Treatment name is required",
		"category":      "Category is required",
		"description":   "Description is required",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("errors[%q] = %q, want %q", field, errs[field], msg)
		}
	}
}

func TestPrescriptionDefaultsAndRules(t *testing.T) {
	f := NewPrescriptionForm(nil, testPickers())
	if f.Draft().Status != entity.PrescriptionActive {
		t.Errorf("default status = %q", f.Draft().Status)
	}
	if f.Draft().PrescriptionDate == "" {
		t.Error("prescription date not defaulted")
	}

	f.Submit()
	errs := f.Errors()
	if errs["diagnosis"] != "Diagnosis is required" {
		t.Errorf("errors[diagnosis] = %q", errs["diagnosis"])
	}
	if errs["medications"] != "Medications are required" {
		t.Errorf("errors[medications] = %q", errs["medications"])
	}
}

func TestPatientFormRoundTrip(t *testing.T) {
	source := entity.Patient{
		FirstName:    "Ananya",
		LastName:     "Iyer",
		Email:        "ananya@example.com",
		MobileNumber: "9876543210",
		Gender:       "FEMALE",
		BloodGroup:   "O+",
		DateOfBirth:  "1992-04-17",
		Allergies:    []string{"Penicillin", "Latex"},
		Address: entity.Address{
			Street:     "12 MG Road",
			City:       "Bengaluru",
			State:      "Karnataka",
			PostalCode: "560001",
			Country:    "India",
		},
	}

	f := NewPatientForm(&source)
	got, ok := f.Submit()
	if !ok {
		t.Fatalf("unedited draft failed validation: %v", f.Errors())
	}
	if !reflect.DeepEqual(*got, source) {
		t.Errorf("round trip changed the record:\ngot  %+v\nwant %+v", *got, source)
	}
}

func TestDentistFormRoundTrip(t *testing.T) {
	years := 12
	fee := 500.5
	source := entity.Dentist{
		FirstName:       "Rohan",
		LastName:        "Mehta",
		LicenseNumber:   "DL-4521",
		Email:           "rohan@example.com",
		MobileNumber:    "9123456780",
		Specializations: []string{"Orthodontics", "Endodontics"},
		Active:          true,
		ChiefDentist:    true,
		Qualification:   "BDS, MDS",
		ExperienceYears: &years,
		ConsultationFee: &fee,
	}

	f := NewDentistForm(&source)
	got, ok := f.Submit()
	if !ok {
		t.Fatalf("unedited draft failed validation: %v", f.Errors())
	}
	if !reflect.DeepEqual(*got, source) {
		t.Errorf("round trip changed the record:\ngot  %+v\nwant %+v", *got, source)
	}
}
