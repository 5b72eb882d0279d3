package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"navident-console/internal/domain/entity"
	"navident-console/internal/session"
)

func (a *App) loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Auth.SignIn(cmd.Context(), &entity.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			sess := &session.Session{
				Token:        resp.Token,
				RefreshToken: resp.RefreshToken,
				UserID:       resp.UserID,
				Username:     resp.Username,
				Email:        resp.Email,
				Role:         resp.Role,
			}
			if err := a.Store.Save(sess); err != nil {
				return fmt.Errorf("failed to store session: %w", err)
			}

			fmt.Fprintf(a.Out, "Logged in as %s (%s)\n", resp.Username, resp.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "Logged out")
			return nil
		},
	}
}

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.Store.Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "%s <%s> role=%s\n", sess.Username, sess.Email, sess.Role)
			return nil
		},
	}
}

func (a *App) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.Store.Load()
			if err != nil {
				return err
			}
			if sess.RefreshToken == "" {
				return fmt.Errorf("no refresh token stored, log in again")
			}
			resp, err := a.Auth.Refresh(cmd.Context(), sess.RefreshToken)
			if err != nil {
				return fmt.Errorf("refresh failed: %w", err)
			}
			sess.Token = resp.Token
			if resp.RefreshToken != "" {
				sess.RefreshToken = resp.RefreshToken
			}
			return a.Store.Save(sess)
		},
	}
}
