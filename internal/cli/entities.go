package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"navident-console/internal/api"
	"navident-console/internal/console"
	"navident-console/internal/console/forms"
	"navident-console/internal/domain/entity"
)

func (a *App) saveExport(dir, baseName string, blob *api.Blob, err error) error {
	if err != nil {
		return err
	}
	path, err := console.SaveBlob(dir, baseName, blob)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "Saved "+path)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (a *App) patientCmd() *cobra.Command {
	spec := &entitySpec[entity.Patient]{
		use:     "patients",
		label:   "Patient",
		plural:  "patients",
		svc:     a.Patients.CRUD,
		id:      func(p *entity.Patient) string { return p.ID },
		headers: []string{"ID", "NAME", "EMAIL", "MOBILE", "GENDER", "CITY"},
		row: func(p entity.Patient) []string {
			return []string{p.ID, p.DisplayName(), p.Email, p.MobileNumber, p.Gender, p.Address.City}
		},
		form: func(ctx context.Context, existing *entity.Patient) *draftForm[entity.Patient] {
			f := forms.NewPatientForm(existing)
			return &draftForm[entity.Patient]{set: f.Set, submit: f.Submit, errors: f.Errors}
		},
	}

	var dir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export all patients to Excel",
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Patients.ExportExcel(cmd.Context())
			return a.saveExport(dir, "patients", blob, err)
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "output directory")

	var pdfDir string
	pdf := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Download a patient summary PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Patients.GeneratePdf(cmd.Context(), args[0])
			return a.saveExport(pdfDir, "patient_"+args[0], blob, err)
		},
	}
	pdf.Flags().StringVar(&pdfDir, "dir", ".", "output directory")

	return entityCommands(a, spec, export, pdf)
}

func (a *App) dentistCmd() *cobra.Command {
	spec := &entitySpec[entity.Dentist]{
		use:     "dentists",
		label:   "Dentist",
		plural:  "dentists",
		svc:     a.Dentists.CRUD,
		id:      func(d *entity.Dentist) string { return d.ID },
		headers: []string{"ID", "NAME", "LICENSE", "SPECIALIZATIONS", "ACTIVE", "CHIEF"},
		row: func(d entity.Dentist) []string {
			return []string{d.ID, d.DisplayName(), d.LicenseNumber,
				strings.Join(d.Specializations, ", "), yesNo(d.Active), yesNo(d.ChiefDentist)}
		},
		form: func(ctx context.Context, existing *entity.Dentist) *draftForm[entity.Dentist] {
			f := forms.NewDentistForm(existing)
			return &draftForm[entity.Dentist]{set: f.Set, submit: f.Submit, errors: f.Errors}
		},
	}

	active := &cobra.Command{
		Use:   "active",
		Short: "List dentists available for scheduling",
		RunE: func(cmd *cobra.Command, args []string) error {
			dentists, err := a.Dentists.GetActive(cmd.Context())
			if err != nil {
				return err
			}
			renderRows(a, spec, dentists)
			return nil
		},
	}

	var dir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export all dentists to Excel",
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Dentists.ExportExcel(cmd.Context())
			return a.saveExport(dir, "dentists", blob, err)
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "output directory")

	var pdfDir string
	pdf := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Download a dentist summary PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Dentists.GeneratePdf(cmd.Context(), args[0])
			return a.saveExport(pdfDir, "dentist_"+args[0], blob, err)
		},
	}
	pdf.Flags().StringVar(&pdfDir, "dir", ".", "output directory")

	return entityCommands(a, spec, active, export, pdf)
}

func (a *App) appointmentCmd() *cobra.Command {
	spec := &entitySpec[entity.Appointment]{
		use:     "appointments",
		label:   "Appointment",
		plural:  "appointments",
		svc:     a.Appointments.CRUD,
		id:      func(ap *entity.Appointment) string { return ap.ID },
		headers: []string{"ID", "PATIENT", "DENTIST", "DATE", "TIME", "STATUS"},
		row: func(ap entity.Appointment) []string {
			return []string{ap.ID, ap.PatientName, ap.DentistName, ap.AppointmentDate, ap.AppointmentTime, ap.Status}
		},
		form: func(ctx context.Context, existing *entity.Appointment) *draftForm[entity.Appointment] {
			pickers := forms.LoadPickers(ctx, a.Patients.CRUD, a.Dentists.CRUD, a.Config.List.PickerPageSize, a.Log)
			f := forms.NewAppointmentForm(existing, pickers)
			return &draftForm[entity.Appointment]{
				set: func(field, value string) error {
					switch field {
					case "patientId":
						f.SelectPatient(value)
						return nil
					case "dentistId":
						f.SelectDentist(value)
						return nil
					case "patientName", "dentistName":
						// Snapshots, set by the picker selection.
						return nil
					}
					return f.Set(field, value)
				},
				submit: f.Submit,
				errors: f.Errors,
			}
		},
	}

	today := &cobra.Command{
		Use:   "today",
		Short: "List today's appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			appointments, err := a.Appointments.GetToday(cmd.Context())
			if err != nil {
				return err
			}
			renderRows(a, spec, appointments)
			return nil
		},
	}

	date := &cobra.Command{
		Use:   "date <yyyy-mm-dd>",
		Short: "List appointments on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appointments, err := a.Appointments.GetByDate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderRows(a, spec, appointments)
			return nil
		},
	}

	var dir, start, end string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export appointments to Excel",
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Appointments.ExportExcel(cmd.Context(), start, end)
			return a.saveExport(dir, "appointments", blob, err)
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "output directory")
	export.Flags().StringVar(&start, "start", "", "start date (yyyy-mm-dd)")
	export.Flags().StringVar(&end, "end", "", "end date (yyyy-mm-dd)")

	return entityCommands(a, spec, today, date, export)
}

func (a *App) billCmd() *cobra.Command {
	spec := &entitySpec[entity.Bill]{
		use:     "bills",
		label:   "Bill",
		plural:  "bills",
		svc:     a.Bills.CRUD,
		id:      func(b *entity.Bill) string { return b.ID },
		headers: []string{"ID", "BILL", "PATIENT", "DATE", "DUE", "PAID", "STATUS"},
		row: func(b entity.Bill) []string {
			return []string{b.ID, b.BillID, b.PatientName, b.BillDate, money(b.AmountDue), money(b.AmountPaid), b.PaymentStatus}
		},
		form: func(ctx context.Context, existing *entity.Bill) *draftForm[entity.Bill] {
			pickers := forms.LoadPickers(ctx, a.Patients.CRUD, a.Dentists.CRUD, a.Config.List.PickerPageSize, a.Log)
			f := forms.NewBillForm(existing, pickers)
			return &draftForm[entity.Bill]{
				set: func(field, value string) error {
					switch field {
					case "patientId":
						f.SelectPatient(value)
						return nil
					case "dentistId":
						f.SelectDentist(value)
						return nil
					case "patientName", "dentistName":
						return nil
					}
					return f.Set(field, value)
				},
				submit: f.Submit,
				errors: f.Errors,
			}
		},
	}

	var pdfDir string
	pdf := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Download a bill PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Bills.GeneratePdf(cmd.Context(), args[0])
			return a.saveExport(pdfDir, "bill_"+args[0], blob, err)
		},
	}
	pdf.Flags().StringVar(&pdfDir, "dir", ".", "output directory")

	var dir string
	export := &cobra.Command{
		Use:   "export <patient-id>",
		Short: "Export one patient's bills to Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Bills.ExportExcel(cmd.Context(), args[0])
			return a.saveExport(dir, "bills_"+args[0], blob, err)
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "output directory")

	return entityCommands(a, spec, pdf, export)
}

func (a *App) treatmentCmd() *cobra.Command {
	spec := &entitySpec[entity.Treatment]{
		use:     "treatments",
		label:   "Treatment",
		plural:  "treatments",
		svc:     a.Treatments.CRUD,
		id:      func(t *entity.Treatment) string { return t.ID },
		headers: []string{"ID", "NAME", "CATEGORY", "BOOKABLE"},
		row: func(t entity.Treatment) []string {
			return []string{t.ID, t.TreatmentName, t.Category, yesNo(t.AvailableForBooking)}
		},
		form: func(ctx context.Context, existing *entity.Treatment) *draftForm[entity.Treatment] {
			f := forms.NewTreatmentForm(existing)
			return &draftForm[entity.Treatment]{set: f.Set, submit: f.Submit, errors: f.Errors}
		},
	}

	available := &cobra.Command{
		Use:   "available",
		Short: "List treatments open for booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			treatments, err := a.Treatments.GetAvailable(cmd.Context())
			if err != nil {
				return err
			}
			renderRows(a, spec, treatments)
			return nil
		},
	}

	return entityCommands(a, spec, available)
}

func (a *App) prescriptionCmd() *cobra.Command {
	spec := &entitySpec[entity.Prescription]{
		use:     "prescriptions",
		label:   "Prescription",
		plural:  "prescriptions",
		svc:     a.Prescriptions.CRUD,
		id:      func(p *entity.Prescription) string { return p.ID },
		headers: []string{"ID", "PATIENT", "DENTIST", "DATE", "DIAGNOSIS", "STATUS"},
		row: func(p entity.Prescription) []string {
			return []string{p.ID, p.PatientName, p.DentistName, p.PrescriptionDate, p.Diagnosis, p.Status}
		},
		form: func(ctx context.Context, existing *entity.Prescription) *draftForm[entity.Prescription] {
			pickers := forms.LoadPickers(ctx, a.Patients.CRUD, a.Dentists.CRUD, a.Config.List.PickerPageSize, a.Log)
			f := forms.NewPrescriptionForm(existing, pickers)
			return &draftForm[entity.Prescription]{
				set: func(field, value string) error {
					switch field {
					case "patientId":
						f.SelectPatient(value)
						return nil
					case "dentistId":
						f.SelectDentist(value)
						return nil
					case "patientName", "dentistName":
						return nil
					}
					return f.Set(field, value)
				},
				submit: f.Submit,
				errors: f.Errors,
			}
		},
	}

	var pdfDir string
	pdf := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Download a prescription PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Prescriptions.GeneratePdf(cmd.Context(), args[0])
			return a.saveExport(pdfDir, "prescription_"+args[0], blob, err)
		},
	}
	pdf.Flags().StringVar(&pdfDir, "dir", ".", "output directory")

	return entityCommands(a, spec, pdf)
}

func (a *App) financeCmd() *cobra.Command {
	spec := &entitySpec[entity.Finance]{
		use:     "finance",
		label:   "Transaction",
		plural:  "transactions",
		svc:     a.Finance.CRUD,
		id:      func(f *entity.Finance) string { return f.ID },
		headers: []string{"ID", "DATE", "CATEGORY", "TYPE", "AMOUNT", "STATUS"},
		row: func(f entity.Finance) []string {
			return []string{f.ID, f.TransactionDate, f.Category, f.Type, money(f.Amount), f.Status}
		},
		form: func(ctx context.Context, existing *entity.Finance) *draftForm[entity.Finance] {
			f := forms.NewFinanceForm(existing)
			return &draftForm[entity.Finance]{set: f.Set, submit: f.Submit, errors: f.Errors}
		},
	}

	var dir, start, end string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to Excel",
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Finance.ExportExcel(cmd.Context(), start, end)
			return a.saveExport(dir, "finance", blob, err)
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "output directory")
	export.Flags().StringVar(&start, "start", "", "start date (yyyy-mm-dd)")
	export.Flags().StringVar(&end, "end", "", "end date (yyyy-mm-dd)")

	var sumStart, sumEnd string
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show revenue, expense and net income totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Finance.GetSummary(cmd.Context(), sumStart, sumEnd)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Total Revenue: %s\n", money(s.TotalRevenue))
			fmt.Fprintf(a.Out, "Total Expense: %s\n", money(s.TotalExpense))
			fmt.Fprintf(a.Out, "Net Income:    %s\n", money(s.NetIncome))
			return nil
		},
	}
	summary.Flags().StringVar(&sumStart, "start", "", "start date (yyyy-mm-dd)")
	summary.Flags().StringVar(&sumEnd, "end", "", "end date (yyyy-mm-dd)")

	return entityCommands(a, spec, export, summary)
}

func (a *App) insuranceCmd() *cobra.Command {
	spec := &entitySpec[entity.Insurance]{
		use:     "insurance",
		label:   "Insurance",
		plural:  "insurance records",
		svc:     a.Insurance.CRUD,
		id:      func(i *entity.Insurance) string { return i.ID },
		headers: []string{"ID", "PATIENT", "AGENCY", "POLICY", "CLAIMED", "STATUS"},
		row: func(i entity.Insurance) []string {
			return []string{i.ID, i.PatientID, i.AgencyName, i.PolicyNumber, yesNo(i.ClaimSubmitted), i.Status}
		},
		form: func(ctx context.Context, existing *entity.Insurance) *draftForm[entity.Insurance] {
			pickers := forms.LoadPickers(ctx, a.Patients.CRUD, nil, a.Config.List.PickerPageSize, a.Log)
			f := forms.NewInsuranceForm(existing, pickers)
			return &draftForm[entity.Insurance]{
				set: func(field, value string) error {
					if field == "patientId" {
						f.SelectPatient(value)
						return nil
					}
					return f.Set(field, value)
				},
				submit: f.Submit,
				errors: f.Errors,
			}
		},
	}

	var dir string
	export := &cobra.Command{
		Use:   "export <patient-id>",
		Short: "Export one patient's insurance records to Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.Insurance.ExportExcel(cmd.Context(), args[0])
			return a.saveExport(dir, "insurance_"+args[0], blob, err)
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "output directory")

	return entityCommands(a, spec, export)
}

func (a *App) userCmd() *cobra.Command {
	spec := &entitySpec[entity.User]{
		use:     "users",
		label:   "User",
		plural:  "users",
		svc:     a.Users.CRUD,
		id:      func(u *entity.User) string { return u.ID },
		headers: []string{"ID", "USERNAME", "NAME", "EMAIL", "ROLE", "ACTIVE"},
		row: func(u entity.User) []string {
			return []string{u.ID, u.Username, u.FirstName + " " + u.LastName, u.Email, u.Role, yesNo(u.Active)}
		},
		form: func(ctx context.Context, existing *entity.User) *draftForm[entity.User] {
			f := forms.NewUserForm(existing)
			return &draftForm[entity.User]{set: f.Set, submit: f.Submit, errors: f.Errors}
		},
	}

	var current, newPassword, confirm string
	changePassword := &cobra.Command{
		Use:   "change-password <id>",
		Short: "Change a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := forms.NewPasswordChangeForm()
			f.Set("currentPassword", current)
			f.Set("newPassword", newPassword)
			f.Set("confirmPassword", confirm)

			change, ok := f.Submit()
			if !ok {
				renderFieldErrors(a.Out, f.Errors())
				return fmt.Errorf("validation failed")
			}
			if err := a.Users.ChangePassword(cmd.Context(), args[0], change); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "Password changed successfully")
			return nil
		},
	}
	changePassword.Flags().StringVar(&current, "current", "", "current password")
	changePassword.Flags().StringVar(&newPassword, "new", "", "new password")
	changePassword.Flags().StringVar(&confirm, "confirm", "", "confirm new password")

	toggleActive := &cobra.Command{
		Use:   "toggle-active <id>",
		Short: "Activate or deactivate a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.Users.ToggleActive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if user.Active {
				fmt.Fprintf(a.Out, "User %s activated\n", user.Username)
			} else {
				fmt.Fprintf(a.Out, "User %s deactivated\n", user.Username)
			}
			return nil
		},
	}

	return entityCommands(a, spec, changePassword, toggleActive)
}
