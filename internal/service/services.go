package service

import (
	"context"
	"net/url"

	"navident-console/internal/api"
	"navident-console/internal/domain/entity"
)

type PatientService struct {
	*CRUD[entity.Patient]
	client *api.Client
}

func NewPatientService(client *api.Client) *PatientService {
	return &PatientService{CRUD: NewCRUD[entity.Patient](client, "/patients"), client: client}
}

func (s *PatientService) ExportExcel(ctx context.Context) (*api.Blob, error) {
	return s.client.GetBlob(ctx, "/patients/export/excel", nil)
}

func (s *PatientService) GeneratePdf(ctx context.Context, id string) (*api.Blob, error) {
	return s.client.GetBlob(ctx, "/patients/"+id+"/pdf", nil)
}

type DentistService struct {
	*CRUD[entity.Dentist]
	client *api.Client
}

func NewDentistService(client *api.Client) *DentistService {
	return &DentistService{CRUD: NewCRUD[entity.Dentist](client, "/dentists"), client: client}
}

// GetActive lists dentists available for scheduling.
func (s *DentistService) GetActive(ctx context.Context) ([]entity.Dentist, error) {
	var dentists []entity.Dentist
	if err := s.client.Get(ctx, "/dentists/active", nil, &dentists); err != nil {
		return nil, err
	}
	return dentists, nil
}

func (s *DentistService) ExportExcel(ctx context.Context) (*api.Blob, error) {
	return s.client.GetBlob(ctx, "/dentists/export/excel", nil)
}

func (s *DentistService) GeneratePdf(ctx context.Context, id string) (*api.Blob, error) {
	return s.client.GetBlob(ctx, "/dentists/"+id+"/pdf", nil)
}

type AppointmentService struct {
	*CRUD[entity.Appointment]
	client *api.Client
}

func NewAppointmentService(client *api.Client) *AppointmentService {
	return &AppointmentService{CRUD: NewCRUD[entity.Appointment](client, "/appointments"), client: client}
}

func (s *AppointmentService) GetToday(ctx context.Context) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	if err := s.client.Get(ctx, "/appointments/today", nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *AppointmentService) GetByDate(ctx context.Context, date string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	if err := s.client.Get(ctx, "/appointments/date/"+date, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *AppointmentService) ExportExcel(ctx context.Context, startDate, endDate string) (*api.Blob, error) {
	params := url.Values{}
	if startDate != "" {
		params.Set("startDate", startDate)
	}
	if endDate != "" {
		params.Set("endDate", endDate)
	}
	return s.client.GetBlob(ctx, "/appointments/export/excel", params)
}

type BillService struct {
	*CRUD[entity.Bill]
	client *api.Client
}

func NewBillService(client *api.Client) *BillService {
	return &BillService{CRUD: NewCRUD[entity.Bill](client, "/bills"), client: client}
}

func (s *BillService) GeneratePdf(ctx context.Context, id string) (*api.Blob, error) {
	return s.client.GetBlob(ctx, "/bills/"+id+"/pdf", nil)
}

// ExportExcel exports all bills of one patient.
func (s *BillService) ExportExcel(ctx context.Context, patientID string) (*api.Blob, error) {
	return s.client.GetBlob(ctx, "/bills/patient/"+patientID+"/export/excel", nil)
}

type TreatmentService struct {
	*CRUD[entity.Treatment]
	client *api.Client
}

func NewTreatmentService(client *api.Client) *TreatmentService {
	return &TreatmentService{CRUD: NewCRUD[entity.Treatment](client, "/treatments"), client: client}
}

// GetAvailable lists treatments open for booking.
func (s *TreatmentService) GetAvailable(ctx context.Context) ([]entity.Treatment, error) {
	var treatments []entity.Treatment
	if err := s.client.Get(ctx, "/treatments/available", nil, &treatments); err != nil {
		return nil, err
	}
	return treatments, nil
}

type PrescriptionService struct {
	*CRUD[entity.Prescription]
	client *api.Client
}

func NewPrescriptionService(client *api.Client) *PrescriptionService {
	return &PrescriptionService{CRUD: NewCRUD[entity.Prescription](client, "/prescriptions"), client: client}
}

func (s *PrescriptionService) GeneratePdf(ctx context.Context, id string) (*api.Blob, error) {
	return s.client.GetBlob(ctx, "/prescriptions/"+id+"/pdf", nil)
}

type FinanceService struct {
	*CRUD[entity.Finance]
	client *api.Client
}

func NewFinanceService(client *api.Client) *FinanceService {
	return &FinanceService{CRUD: NewCRUD[entity.Finance](client, "/finance"), client: client}
}

// GetSummary returns the revenue/expense aggregate for an optional date range.
func (s *FinanceService) GetSummary(ctx context.Context, startDate, endDate string) (*entity.FinanceSummary, error) {
	params := url.Values{}
	if startDate != "" {
		params.Set("startDate", startDate)
	}
	if endDate != "" {
		params.Set("endDate", endDate)
	}

	var summary entity.FinanceSummary
	if err := s.client.Get(ctx, "/finance/summary", params, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *FinanceService) ExportExcel(ctx context.Context, startDate, endDate string) (*api.Blob, error) {
	params := url.Values{}
	if startDate != "" {
		params.Set("startDate", startDate)
	}
	if endDate != "" {
		params.Set("endDate", endDate)
	}
	return s.client.GetBlob(ctx, "/finance/export/excel", params)
}

type InsuranceService struct {
	*CRUD[entity.Insurance]
	client *api.Client
}

func NewInsuranceService(client *api.Client) *InsuranceService {
	return &InsuranceService{CRUD: NewCRUD[entity.Insurance](client, "/insurance"), client: client}
}

// ExportExcel exports all insurance records of one patient.
func (s *InsuranceService) ExportExcel(ctx context.Context, patientID string) (*api.Blob, error) {
	return s.client.GetBlob(ctx, "/insurance/patient/"+patientID+"/export/excel", nil)
}

type UserService struct {
	*CRUD[entity.User]
	client *api.Client
}

func NewUserService(client *api.Client) *UserService {
	return &UserService{CRUD: NewCRUD[entity.User](client, "/users"), client: client}
}

func (s *UserService) ChangePassword(ctx context.Context, id string, change *entity.PasswordChange) error {
	return s.client.Put(ctx, "/users/"+id+"/change-password", nil, change, nil)
}

func (s *UserService) ToggleActive(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := s.client.Put(ctx, "/users/"+id+"/toggle-active", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
