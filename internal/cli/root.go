package cli

import (
	"os"

	"github.com/spf13/cobra"

	"navident-console/internal/stub"
)

// Execute builds the app and runs the command tree.
func Execute() {
	app, err := NewApp()
	if err != nil {
		cobra.CheckErr(err)
	}
	if err := newRootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "navident",
		Short:         "Dental clinic management console",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.refreshCmd(),
	)

	root.AddCommand(
		a.patientCmd(),
		a.dentistCmd(),
		a.appointmentCmd(),
		a.billCmd(),
		a.treatmentCmd(),
		a.prescriptionCmd(),
		a.financeCmd(),
		a.insuranceCmd(),
	)

	// User management stays invocable for everyone (the backend enforces
	// authorization); hiding it just mirrors the admin-only navigation.
	users := a.userCmd()
	users.Hidden = !a.Store.IsAdministrator()
	root.AddCommand(users)

	root.AddCommand(a.stubCmd())
	return root
}

func (a *App) stubCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory demo backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return stub.NewServer(a.Config.Stub, a.Log).Run()
		},
	}

	group := &cobra.Command{
		Use:   "stub",
		Short: "In-memory demo backend",
	}
	group.AddCommand(serve)
	return group
}
