package stub

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"navident-console/config"
	"navident-console/internal/domain/entity"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := NewServer(config.StubConfig{
		Port:          "0",
		JWTSecret:     "test-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: time.Hour,
	}, log)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func signIn(t *testing.T, baseURL, username, password string) entity.AuthResponse {
	t.Helper()

	var auth entity.AuthResponse
	status := doJSON(t, http.MethodPost, baseURL+"/api/auth/signin", "",
		entity.Credentials{Username: username, Password: password}, &auth)
	if status != http.StatusOK {
		t.Fatalf("signin status = %d", status)
	}
	if auth.Token == "" {
		t.Fatal("signin returned no token")
	}
	return auth
}

func TestSignInAndProtectedRoutes(t *testing.T) {
	ts := newTestServer(t)

	if status := doJSON(t, http.MethodGet, ts.URL+"/api/patients", "", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("unauthenticated list status = %d, want 401", status)
	}

	auth := signIn(t, ts.URL, "admin", "admin123")
	if auth.Role != entity.RoleAdministrator {
		t.Errorf("role = %q, want administrator", auth.Role)
	}

	var page entity.Page[entity.Patient]
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/patients", auth.Token, nil, &page); status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if page.TotalElements < 1 {
		t.Error("seed patient missing from listing")
	}
}

func TestBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	status := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signin", "",
		entity.Credentials{Username: "admin", Password: "wrong"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("signin status = %d, want 401", status)
	}
}

func TestPatientCRUDAndSearch(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	// Validation failures come back as a field error map.
	var errBody struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	status := doJSON(t, http.MethodPost, ts.URL+"/api/patients", auth.Token,
		entity.Patient{FirstName: "Solo"}, &errBody)
	if status != http.StatusBadRequest {
		t.Fatalf("invalid create status = %d, want 400", status)
	}
	if _, ok := errBody.Errors["lastName"]; !ok {
		t.Errorf("validation errors = %v, want lastName entry", errBody.Errors)
	}

	var created entity.Patient
	status = doJSON(t, http.MethodPost, ts.URL+"/api/patients", auth.Token, entity.Patient{
		FirstName:    "Vikram",
		LastName:     "Rao",
		Email:        "vikram@example.com",
		MobileNumber: "9000000001",
		Gender:       "M",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("created record missing id or timestamp: %+v", created)
	}

	created.BloodGroup = "B+"
	var updated entity.Patient
	if status := doJSON(t, http.MethodPut, ts.URL+"/api/patients/"+created.ID, auth.Token, created, &updated); status != http.StatusOK {
		t.Fatalf("update status = %d", status)
	}
	if updated.BloodGroup != "B+" {
		t.Errorf("bloodGroup = %q", updated.BloodGroup)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update changed createdAt")
	}

	var results []entity.Patient
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/patients/search?query=vikram", auth.Token, nil, &results); status != http.StatusOK {
		t.Fatalf("search status = %d", status)
	}
	if len(results) != 1 || results[0].ID != created.ID {
		t.Errorf("search results = %+v", results)
	}

	if status := doJSON(t, http.MethodDelete, ts.URL+"/api/patients/"+created.ID, auth.Token, nil, nil); status != http.StatusNoContent {
		t.Errorf("delete status = %d", status)
	}
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/patients/"+created.ID, auth.Token, nil, nil); status != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", status)
	}
}

func TestChiefDentistSingleton(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	status := doJSON(t, http.MethodPost, ts.URL+"/api/dentists", auth.Token, entity.Dentist{
		FirstName:       "Kavya",
		LastName:        "Nair",
		LicenseNumber:   "DCI-99",
		Email:           "kavya@example.com",
		MobileNumber:    "9000000002",
		Specializations: []string{"Orthodontics"},
		Active:          true,
		ChiefDentist:    true,
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}

	var page entity.Page[entity.Dentist]
	doJSON(t, http.MethodGet, ts.URL+"/api/dentists?size=100", auth.Token, nil, &page)

	chiefs := 0
	for _, d := range page.Content {
		if d.ChiefDentist {
			chiefs++
		}
	}
	if chiefs != 1 {
		t.Errorf("chief dentists = %d, want exactly 1", chiefs)
	}
}

func TestTodayAppointmentsAndAvailableTreatments(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	var appointments []entity.Appointment
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/appointments/today", auth.Token, nil, &appointments); status != http.StatusOK {
		t.Fatalf("today status = %d", status)
	}
	if len(appointments) != 1 {
		t.Errorf("today's appointments = %d, want the seeded one", len(appointments))
	}

	var treatments []entity.Treatment
	doJSON(t, http.MethodGet, ts.URL+"/api/treatments/available", auth.Token, nil, &treatments)
	for _, tr := range treatments {
		if !tr.AvailableForBooking {
			t.Errorf("unbookable treatment in available listing: %+v", tr)
		}
	}
}

func TestChangePasswordFlow(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	url := ts.URL + "/api/users/" + auth.UserID + "/change-password"

	status := doJSON(t, http.MethodPut, url, auth.Token,
		entity.PasswordChange{CurrentPassword: "wrong", NewPassword: "newpass1"}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("wrong current password status = %d, want 400", status)
	}

	status = doJSON(t, http.MethodPut, url, auth.Token,
		entity.PasswordChange{CurrentPassword: "admin123", NewPassword: "newpass1"}, nil)
	if status != http.StatusNoContent {
		t.Fatalf("change password status = %d", status)
	}

	signIn(t, ts.URL, "admin", "newpass1")
}

func TestToggleActiveBlocksSignIn(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	var second entity.AuthResponse
	status := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signup", "", entity.SignupRequest{
		Username:  "reception1",
		FirstName: "Priya",
		LastName:  "Shah",
		Email:     "priya@example.com",
		Password:  "secret1",
	}, &second)
	if status != http.StatusOK {
		t.Fatalf("signup status = %d", status)
	}

	var toggled entity.User
	doJSON(t, http.MethodPut, ts.URL+"/api/users/"+second.UserID+"/toggle-active", auth.Token, nil, &toggled)
	if toggled.Active {
		t.Fatal("toggle did not deactivate the user")
	}

	status = doJSON(t, http.MethodPost, ts.URL+"/api/auth/signin", "",
		entity.Credentials{Username: "reception1", Password: "secret1"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("deactivated signin status = %d, want 401", status)
	}
}

func TestUserResponsesNeverCarryPasswords(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	var page entity.Page[entity.User]
	doJSON(t, http.MethodGet, ts.URL+"/api/users", auth.Token, nil, &page)
	for _, u := range page.Content {
		if u.Password != "" {
			t.Errorf("user %s listing leaked a password", u.Username)
		}
	}
}

func TestExportsReturnBinaryPayloads(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	cases := []struct {
		path        string
		contentType string
	}{
		{"/api/patients/export/excel", excelContentType},
		{"/api/dentists/export/excel", excelContentType},
		{"/api/appointments/export/excel", excelContentType},
		{"/api/finance/export/excel", excelContentType},
	}

	for _, tc := range cases {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+auth.Token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", tc.path, resp.StatusCode)
			continue
		}
		if got := resp.Header.Get("Content-Type"); got != tc.contentType {
			t.Errorf("%s content type = %q", tc.path, got)
		}
		if len(data) == 0 {
			t.Errorf("%s returned empty payload", tc.path)
		}
	}
}

func TestBillPdf(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	var page entity.Page[entity.Bill]
	doJSON(t, http.MethodGet, ts.URL+"/api/bills", auth.Token, nil, &page)
	if len(page.Content) == 0 {
		t.Fatal("no seeded bill")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/bills/"+page.Content[0].ID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("bill pdf: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("payload is not a PDF")
	}
}

func TestPaginationShape(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	for i := 0; i < 5; i++ {
		doJSON(t, http.MethodPost, ts.URL+"/api/treatments", auth.Token, entity.Treatment{
			TreatmentName:       "Treatment " + string(rune('A'+i)),
			Category:            "General Dentistry",
			Description:         "Seeded for paging",
			AvailableForBooking: true,
		}, nil)
	}

	var page entity.Page[entity.Treatment]
	doJSON(t, http.MethodGet, ts.URL+"/api/treatments?page=0&size=3", auth.Token, nil, &page)

	if len(page.Content) != 3 {
		t.Errorf("page content = %d, want 3", len(page.Content))
	}
	if page.TotalElements != 7 {
		t.Errorf("totalElements = %d, want 7", page.TotalElements)
	}
	if page.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", page.TotalPages)
	}
}

func TestFinanceSummary(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")

	expense := entity.Finance{
		TransactionDate: "2020-01-15",
		Category:        entity.FinanceExpense,
		Type:            "Medical Supplies",
		Amount:          120.5,
		Description:     "Gloves and masks",
		Status:          entity.FinanceCompleted,
	}
	if status := doJSON(t, http.MethodPost, ts.URL+"/api/finance", auth.Token, expense, nil); status != http.StatusCreated {
		t.Fatalf("create expense status = %d", status)
	}

	var summary entity.FinanceSummary
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/finance/summary", auth.Token, nil, &summary); status != http.StatusOK {
		t.Fatalf("summary status = %d", status)
	}
	if summary.TotalRevenue != 500 || summary.TotalExpense != 120.5 {
		t.Errorf("totals = %+v", summary)
	}
	if summary.NetIncome != 379.5 {
		t.Errorf("net income = %v, want 379.5", summary.NetIncome)
	}

	if status := doJSON(t, http.MethodGet, ts.URL+"/api/finance/summary?startDate=2025-01-01", auth.Token, nil, &summary); status != http.StatusOK {
		t.Fatalf("filtered summary status = %d", status)
	}
	if summary.TotalExpense != 0 || summary.NetIncome != 500 {
		t.Errorf("filtered summary = %+v", summary)
	}
}

func TestRefreshTokenFlow(t *testing.T) {
	ts := newTestServer(t)
	auth := signIn(t, ts.URL, "admin", "admin123")
	if auth.RefreshToken == "" {
		t.Fatal("signin returned no refresh token")
	}

	var renewed entity.AuthResponse
	status := doJSON(t, http.MethodPost, ts.URL+"/api/auth/refresh", "",
		entity.RefreshRequest{RefreshToken: auth.RefreshToken}, &renewed)
	if status != http.StatusOK {
		t.Fatalf("refresh status = %d", status)
	}
	if renewed.Token == "" || renewed.RefreshToken == "" {
		t.Fatalf("refresh response missing tokens: %+v", renewed)
	}

	if status := doJSON(t, http.MethodGet, ts.URL+"/api/patients", renewed.Token, nil, nil); status != http.StatusOK {
		t.Errorf("renewed token rejected: %d", status)
	}

	// An access token must not pass as a refresh token.
	status = doJSON(t, http.MethodPost, ts.URL+"/api/auth/refresh", "",
		entity.RefreshRequest{RefreshToken: auth.Token}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("refresh with access token status = %d, want 401", status)
	}

	// And a refresh token must not pass the API middleware.
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/patients", auth.RefreshToken, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("refresh token accepted on protected route: %d", status)
	}
}
