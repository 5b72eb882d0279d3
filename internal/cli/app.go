package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"navident-console/config"
	"navident-console/internal/api"
	"navident-console/internal/service"
	"navident-console/internal/session"
)

// App holds all dependencies for the console.
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Store  *session.Store
	Client *api.Client

	Out io.Writer
	In  io.Reader

	Auth          *service.AuthService
	Patients      *service.PatientService
	Dentists      *service.DentistService
	Appointments  *service.AppointmentService
	Bills         *service.BillService
	Treatments    *service.TreatmentService
	Prescriptions *service.PrescriptionService
	Finance       *service.FinanceService
	Insurance     *service.InsuranceService
	Users         *service.UserService
}

// NewApp initializes the console with all dependencies.
func NewApp() (*App, error) {
	app := &App{Out: os.Stdout, In: os.Stdin}

	app.Log = setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	app.Store = session.NewStore(cfg.Session.File)

	app.Client = api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, app.Store, app.Log, func() {
		fmt.Fprintln(app.Out, "Session expired. Please log in again.")
	})

	app.Auth = service.NewAuthService(app.Client)
	app.Patients = service.NewPatientService(app.Client)
	app.Dentists = service.NewDentistService(app.Client)
	app.Appointments = service.NewAppointmentService(app.Client)
	app.Bills = service.NewBillService(app.Client)
	app.Treatments = service.NewTreatmentService(app.Client)
	app.Prescriptions = service.NewPrescriptionService(app.Client)
	app.Finance = service.NewFinanceService(app.Client)
	app.Insurance = service.NewInsuranceService(app.Client)
	app.Users = service.NewUserService(app.Client)

	return app, nil
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	return log
}

// requireSession is the auth guard in front of every protected command.
func (a *App) requireSession() error {
	if !a.Store.Valid() {
		return fmt.Errorf("not logged in: run 'navident login' first")
	}
	return nil
}
