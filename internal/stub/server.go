// Package stub is an in-memory rendition of the clinic backend: the same
// routes, wire shapes and validation rules, backed by maps instead of a
// database. It exists so the console can be demonstrated and integration
// tested without standing up the real service.
package stub

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"navident-console/config"
	"navident-console/internal/domain/entity"
	"navident-console/pkg/jwt"
	"navident-console/pkg/response"
	"navident-console/pkg/validator"
)

type Server struct {
	cfg    config.StubConfig
	log    *logrus.Logger
	tokens *jwt.TokenService
	router *mux.Router
	server *http.Server

	patients      *collection[entity.Patient]
	dentists      *collection[entity.Dentist]
	appointments  *collection[entity.Appointment]
	bills         *collection[entity.Bill]
	treatments    *collection[entity.Treatment]
	prescriptions *collection[entity.Prescription]
	finance       *collection[entity.Finance]
	insurance     *collection[entity.Insurance]
	users         *collection[entity.User]
	passwords     *passwordStore
}

func NewServer(cfg config.StubConfig, log *logrus.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		log:    log,
		tokens: jwt.NewTokenService(cfg),

		patients: newCollection(
			func(p *entity.Patient) string { return p.ID },
			func(p *entity.Patient, id string) { p.ID = id },
			func(p *entity.Patient) time.Time { return p.CreatedAt },
			func(p *entity.Patient, t time.Time) { p.CreatedAt = t },
			func(p *entity.Patient, q string) bool {
				return contains(q, p.FirstName, p.LastName, p.Email, p.MobileNumber)
			}),
		dentists: newCollection(
			func(d *entity.Dentist) string { return d.ID },
			func(d *entity.Dentist, id string) { d.ID = id },
			func(d *entity.Dentist) time.Time { return d.CreatedAt },
			func(d *entity.Dentist, t time.Time) { d.CreatedAt = t },
			func(d *entity.Dentist, q string) bool {
				return contains(q, d.FirstName, d.LastName, d.LicenseNumber, d.Email)
			}),
		appointments: newCollection(
			func(a *entity.Appointment) string { return a.ID },
			func(a *entity.Appointment, id string) { a.ID = id },
			func(a *entity.Appointment) time.Time { return a.CreatedAt },
			func(a *entity.Appointment, t time.Time) { a.CreatedAt = t },
			func(a *entity.Appointment, q string) bool {
				return contains(q, a.PatientName, a.DentistName, a.AppointmentDate, a.Status)
			}),
		bills: newCollection(
			func(b *entity.Bill) string { return b.ID },
			func(b *entity.Bill, id string) { b.ID = id },
			func(b *entity.Bill) time.Time { return b.CreatedAt },
			func(b *entity.Bill, t time.Time) { b.CreatedAt = t },
			func(b *entity.Bill, q string) bool {
				return contains(q, b.BillID, b.PatientName, b.DentistName, b.PaymentStatus)
			}),
		treatments: newCollection(
			func(t *entity.Treatment) string { return t.ID },
			func(t *entity.Treatment, id string) { t.ID = id },
			func(t *entity.Treatment) time.Time { return t.CreatedAt },
			func(t *entity.Treatment, ts time.Time) { t.CreatedAt = ts },
			func(t *entity.Treatment, q string) bool {
				return contains(q, t.TreatmentName, t.Category, t.Description)
			}),
		prescriptions: newCollection(
			func(p *entity.Prescription) string { return p.ID },
			func(p *entity.Prescription, id string) { p.ID = id },
			func(p *entity.Prescription) time.Time { return p.CreatedAt },
			func(p *entity.Prescription, t time.Time) { p.CreatedAt = t },
			func(p *entity.Prescription, q string) bool {
				return contains(q, p.PatientName, p.DentistName, p.Diagnosis)
			}),
		finance: newCollection(
			func(f *entity.Finance) string { return f.ID },
			func(f *entity.Finance, id string) { f.ID = id },
			func(f *entity.Finance) time.Time { return f.CreatedAt },
			func(f *entity.Finance, t time.Time) { f.CreatedAt = t },
			func(f *entity.Finance, q string) bool {
				return contains(q, f.Category, f.Type, f.VendorName, f.Description)
			}),
		insurance: newCollection(
			func(i *entity.Insurance) string { return i.ID },
			func(i *entity.Insurance, id string) { i.ID = id },
			func(i *entity.Insurance) time.Time { return i.CreatedAt },
			func(i *entity.Insurance, t time.Time) { i.CreatedAt = t },
			func(i *entity.Insurance, q string) bool {
				return contains(q, i.AgencyName, i.PolicyNumber, i.Status)
			}),
		users: newCollection(
			func(u *entity.User) string { return u.ID },
			func(u *entity.User, id string) { u.ID = id },
			func(u *entity.User) time.Time { return u.CreatedAt },
			func(u *entity.User, t time.Time) { u.CreatedAt = t },
			func(u *entity.User, q string) bool {
				return contains(q, u.Username, u.FirstName, u.LastName, u.Email)
			}),
		passwords: newPasswordStore(),
	}

	s.seed()
	s.router = s.setupRouter()
	return s
}

// Handler exposes the router for httptest-based integration tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *mux.Router {
	v := validator.NewValidator()
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	newAuthHandler(s.users, s.passwords, s.tokens, v, s.log).register(api)

	// Everything else requires a valid access token.
	protected := api.NewRoute().Subrouter()
	protected.Use(s.authenticate)

	exports := &exportHandler{
		patients:      s.patients,
		dentists:      s.dentists,
		appointments:  s.appointments,
		bills:         s.bills,
		prescriptions: s.prescriptions,
		finance:       s.finance,
		insurance:     s.insurance,
		log:           s.log,
	}
	exports.register(protected)

	// Filtered listings, registered ahead of the generic /{id} routes.
	protected.HandleFunc("/dentists/active", s.activeDentists).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/today", s.todayAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/date/{date}", s.appointmentsByDate).Methods(http.MethodGet)
	protected.HandleFunc("/treatments/available", s.availableTreatments).Methods(http.MethodGet)
	protected.HandleFunc("/finance/summary", s.financeSummary).Methods(http.MethodGet)

	newEntityHandler(s.patients, v, s.log, "Patient").register(protected, "/patients")

	dentists := newEntityHandler(s.dentists, v, s.log, "Dentist")
	dentists.prepare = s.enforceSingleChief
	dentists.register(protected, "/dentists")

	newEntityHandler(s.appointments, v, s.log, "Appointment").register(protected, "/appointments")
	newEntityHandler(s.bills, v, s.log, "Bill").register(protected, "/bills")
	newEntityHandler(s.treatments, v, s.log, "Treatment").register(protected, "/treatments")
	newEntityHandler(s.prescriptions, v, s.log, "Prescription").register(protected, "/prescriptions")
	newEntityHandler(s.finance, v, s.log, "Transaction").register(protected, "/finance")
	newEntityHandler(s.insurance, v, s.log, "Insurance record").register(protected, "/insurance")

	newUserHandler(s.users, s.passwords, v, s.log).register(protected)

	return router
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := s.tokens.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}
		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// enforceSingleChief keeps at most one chief dentist: promoting one demotes
// every other.
func (s *Server) enforceSingleChief(r *http.Request, d *entity.Dentist, existingID string) error {
	if !d.ChiefDentist {
		return nil
	}
	s.dentists.Mutate(func(other *entity.Dentist) {
		if other.ID != existingID {
			other.ChiefDentist = false
		}
	})
	return nil
}

func (s *Server) activeDentists(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, s.dentists.Filter(func(d *entity.Dentist) bool {
		return d.Active
	}))
}

func (s *Server) todayAppointments(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Format("2006-01-02")
	response.JSON(w, http.StatusOK, s.appointments.Filter(func(a *entity.Appointment) bool {
		return a.AppointmentDate == today
	}))
}

func (s *Server) appointmentsByDate(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	response.JSON(w, http.StatusOK, s.appointments.Filter(func(a *entity.Appointment) bool {
		return a.AppointmentDate == date
	}))
}

func (s *Server) availableTreatments(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, s.treatments.Filter(func(t *entity.Treatment) bool {
		return t.AvailableForBooking
	}))
}

func (s *Server) financeSummary(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")

	revenue := decimal.Zero
	expense := decimal.Zero
	for _, f := range s.finance.Filter(func(f *entity.Finance) bool {
		if start != "" && f.TransactionDate < start {
			return false
		}
		if end != "" && f.TransactionDate > end {
			return false
		}
		return true
	}) {
		amount := decimal.NewFromFloat(f.Amount)
		if f.Category == entity.FinanceRevenue {
			revenue = revenue.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
	}

	response.JSON(w, http.StatusOK, entity.FinanceSummary{
		TotalRevenue: revenue.InexactFloat64(),
		TotalExpense: expense.InexactFloat64(),
		NetIncome:    revenue.Sub(expense).InexactFloat64(),
	})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

// Run starts the HTTP server and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Run() error {
	s.server = &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.router,
	}

	go func() {
		s.log.Infof("Demo backend listening on port %s", s.cfg.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatalf("Failed to start server: %v", err)
		}
	}()

	s.waitForShutdown()
	return nil
}

func (s *Server) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.log.Errorf("Server forced to shutdown: %v", err)
	}

	s.log.Info("Server shutdown complete")
}
