package stub

import (
	"time"

	"navident-console/internal/domain/entity"
)

// seed loads the demo data set: an administrator account plus a handful of
// records so every screen has something to show on first login.
func (s *Server) seed() {
	admin := s.users.Insert(entity.User{
		Username:  "admin",
		FirstName: "System",
		LastName:  "Administrator",
		Email:     "admin@navident.example",
		Role:      entity.RoleAdministrator,
		Active:    true,
	})
	if err := s.passwords.set(admin.ID, "admin123"); err != nil {
		s.log.Fatalf("Failed to seed admin password: %v", err)
	}

	patient := s.patients.Insert(entity.Patient{
		FirstName:    "Ananya",
		LastName:     "Iyer",
		Email:        "ananya.iyer@example.com",
		MobileNumber: "9876543210",
		Gender:       "F",
		BloodGroup:   "O+",
		DateOfBirth:  "1992-04-18",
		Allergies:    []string{"Penicillin"},
		Address: entity.Address{
			Street:     "14 MG Road",
			City:       "Bengaluru",
			State:      "Karnataka",
			PostalCode: "560001",
			Country:    "India",
		},
	})

	fee := 500.0
	years := 12
	dentist := s.dentists.Insert(entity.Dentist{
		FirstName:       "Rohan",
		LastName:        "Mehta",
		LicenseNumber:   "DCI-44821",
		Email:           "rohan.mehta@navident.example",
		MobileNumber:    "9812345670",
		Specializations: []string{"General Dentistry", "Endodontics"},
		Active:          true,
		ChiefDentist:    true,
		Qualification:   "BDS, MDS",
		ExperienceYears: &years,
		ConsultationFee: &fee,
	})

	s.treatments.Insert(entity.Treatment{
		TreatmentName:       "Root Canal Treatment",
		Category:            "Endodontics",
		Description:         "Removal of infected pulp followed by filling and sealing",
		AvailableForBooking: true,
	})
	s.treatments.Insert(entity.Treatment{
		TreatmentName:       "Teeth Whitening",
		Category:            "Cosmetic Dentistry",
		Description:         "In-office bleaching session",
		AvailableForBooking: true,
	})

	today := time.Now().Format("2006-01-02")
	s.appointments.Insert(entity.Appointment{
		PatientID:       patient.ID,
		PatientName:     patient.DisplayName(),
		DentistID:       dentist.ID,
		DentistName:     dentist.DisplayName(),
		AppointmentDate: today,
		AppointmentTime: "10:00",
		Status:          entity.AppointmentScheduled,
	})

	s.bills.Insert(entity.Bill{
		BillID:        "BILL-1001",
		PatientID:     patient.ID,
		PatientName:   patient.DisplayName(),
		DentistID:     dentist.ID,
		DentistName:   dentist.DisplayName(),
		BillDate:      today,
		AmountDue:     1500,
		AmountPaid:    500,
		PaymentStatus: entity.PaymentPending,
	})

	s.finance.Insert(entity.Finance{
		TransactionDate: today,
		Category:        entity.FinanceRevenue,
		Type:            "Consultation Fee",
		Amount:          500,
		Description:     "Consultation",
		Status:          entity.FinanceCompleted,
	})
}
