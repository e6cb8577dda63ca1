package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ticketflowapp/ticketflow/internal/directory"
	"ticketflowapp/ticketflow/internal/feedback"
	"ticketflowapp/ticketflow/internal/session"
)

func newSignupCmd() *cobra.Command {
	var in directory.SignupInput

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			err = a.Users.Signup(in)
			var fieldErrs feedback.FieldErrors
			switch {
			case errors.As(err, &fieldErrs):
				show(cmd, feedback.Failure("Please fix the fields below."))
				showFieldErrors(cmd, fieldErrs)
				_ = a.Audit.Record(in.Email, "user.signup", "user", "rejected", fieldErrs.Error())
				return errors.New("signup rejected")
			case errors.Is(err, directory.ErrDuplicateEmail):
				show(cmd, feedback.Failure("Email already exists"))
				_ = a.Audit.Record(in.Email, "user.signup", "user", "rejected", "duplicate email")
				return err
			case err != nil:
				show(cmd, feedback.Failure("Could not save your account: "+err.Error()))
				_ = a.Audit.Record(in.Email, "user.signup", "user", "failed", err.Error())
				return err
			}

			show(cmd, feedback.Success("Account created! Please login."))
			_ = a.Audit.Record(in.Email, "user.signup", "user", "success", "")
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password (min 6 characters)")
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and start a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.Sessions.Login(email, password)
			if err != nil {
				if errors.Is(err, session.ErrInvalidCredentials) {
					show(cmd, feedback.Failure("Invalid credentials. Please try again."))
					_ = a.Audit.Record(email, "session.login", "session", "rejected", "invalid credentials")
					return err
				}
				show(cmd, feedback.Failure("Could not start a session: "+err.Error()))
				_ = a.Audit.Record(email, "session.login", "session", "failed", err.Error())
				return err
			}

			show(cmd, feedback.Success(fmt.Sprintf("Welcome back, %s!", user.Name)))
			_ = a.Audit.Record(user.Email, "session.login", "session", "success", "")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			user, _ := a.Sessions.Current()
			if err := a.Sessions.Logout(); err != nil {
				show(cmd, feedback.Failure("Could not end the session: "+err.Error()))
				_ = a.Audit.Record(user.Email, "session.logout", "session", "failed", err.Error())
				return err
			}
			show(cmd, feedback.Success("Logged out"))
			_ = a.Audit.Record(user.Email, "session.logout", "session", "success", "")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.Sessions.Current()
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}
