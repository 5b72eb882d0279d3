package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"navident-console/internal/api"
	"navident-console/internal/domain/entity"
	"navident-console/internal/session"
)

func newRecordingClient(t *testing.T) (*api.Client, *[]string) {
	t.Helper()

	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.String())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	client := api.NewClient(server.URL, 5*time.Second, store, log, nil)
	return client, &requests
}

func lastRequest(t *testing.T, requests *[]string) string {
	t.Helper()
	if len(*requests) == 0 {
		t.Fatal("no request recorded")
	}
	return (*requests)[len(*requests)-1]
}

func TestGetAllBuildsPagingQuery(t *testing.T) {
	client, requests := newRecordingClient(t)
	svc := NewPatientService(client)

	svc.GetAll(context.Background(), entity.PageRequest{
		Page: 2, Size: 10, SortBy: "createdAt", SortDir: "desc",
	})

	want := "GET /patients?page=2&size=10&sortBy=createdAt&sortDir=desc"
	if got := lastRequest(t, requests); got != want {
		t.Errorf("request = %q, want %q", got, want)
	}
}

func TestSearchUsesQueryParam(t *testing.T) {
	client, requests := newRecordingClient(t)
	svc := NewDentistService(client)

	svc.Search(context.Background(), "mehta")

	if got := lastRequest(t, requests); got != "GET /dentists/search?query=mehta" {
		t.Errorf("request = %q", got)
	}
}

func TestEntityPaths(t *testing.T) {
	client, requests := newRecordingClient(t)
	ctx := context.Background()

	NewAppointmentService(client).GetByDate(ctx, "2026-08-30")
	if got := lastRequest(t, requests); got != "GET /appointments/date/2026-08-30" {
		t.Errorf("request = %q", got)
	}

	NewTreatmentService(client).GetAvailable(ctx)
	if got := lastRequest(t, requests); got != "GET /treatments/available" {
		t.Errorf("request = %q", got)
	}

	NewUserService(client).ToggleActive(ctx, "u1")
	if got := lastRequest(t, requests); got != "PUT /users/u1/toggle-active" {
		t.Errorf("request = %q", got)
	}

	NewUserService(client).ChangePassword(ctx, "u1", &entity.PasswordChange{
		CurrentPassword: "a", NewPassword: "b",
	})
	if got := lastRequest(t, requests); got != "PUT /users/u1/change-password" {
		t.Errorf("request = %q", got)
	}

	NewAuthService(client).Refresh(ctx, "stored-refresh-token")
	if got := lastRequest(t, requests); got != "POST /auth/refresh" {
		t.Errorf("request = %q", got)
	}
}

func TestExportPaths(t *testing.T) {
	client, requests := newRecordingClient(t)
	ctx := context.Background()

	NewFinanceService(client).GetSummary(ctx, "2026-08-01", "2026-08-31")
	wantSummary := "GET /finance/summary?endDate=2026-08-31&startDate=2026-08-01"
	if got := lastRequest(t, requests); got != wantSummary {
		t.Errorf("request = %q, want %q", got, wantSummary)
	}

	NewAppointmentService(client).ExportExcel(ctx, "2026-08-01", "2026-08-31")
	want := "GET /appointments/export/excel?endDate=2026-08-31&startDate=2026-08-01"
	if got := lastRequest(t, requests); got != want {
		t.Errorf("request = %q, want %q", got, want)
	}

	NewBillService(client).ExportExcel(ctx, "p1")
	if got := lastRequest(t, requests); got != "GET /bills/patient/p1/export/excel" {
		t.Errorf("request = %q", got)
	}

	NewInsuranceService(client).ExportExcel(ctx, "p1")
	if got := lastRequest(t, requests); got != "GET /insurance/patient/p1/export/excel" {
		t.Errorf("request = %q", got)
	}

	NewPrescriptionService(client).GeneratePdf(ctx, "rx1")
	if got := lastRequest(t, requests); got != "GET /prescriptions/rx1/pdf" {
		t.Errorf("request = %q", got)
	}
}
