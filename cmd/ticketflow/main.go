package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ticketflowapp/ticketflow/internal/app"
	"ticketflowapp/ticketflow/internal/config"
	"ticketflowapp/ticketflow/internal/feedback"
	"ticketflowapp/ticketflow/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ticketflow",
		Short:         "Local ticket tracking with accounts, stored on this machine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSignupCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newDashboardCmd(),
		newTicketCmd(),
	)
	return root
}

func openApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	a, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("open data store: %w", err)
	}
	return a, nil
}

// show renders a notification the way the UI contract asks for: one message
// with a severity. Successes go to stdout, the rest to stderr.
func show(cmd *cobra.Command, n feedback.Notification) {
	out := cmd.OutOrStdout()
	if n.Severity != feedback.SeveritySuccess {
		out = cmd.ErrOrStderr()
	}
	fmt.Fprintf(out, "[%s] %s\n", n.Severity, n.Message)
}

// showFieldErrors renders the field-to-message mapping for inline display.
func showFieldErrors(cmd *cobra.Command, errs feedback.FieldErrors) {
	for _, f := range errs.Fields() {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f, errs[f])
	}
}

// requireSession gates ticket commands the way the original app gated its
// ticket views: without a login you are sent back to the login screen.
func requireSession(cmd *cobra.Command, a *app.App) (session.SessionUser, error) {
	user, err := a.Sessions.Current()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			show(cmd, feedback.Failure("Please login first."))
			return session.SessionUser{}, errors.New("not logged in")
		}
		return session.SessionUser{}, fmt.Errorf("load session: %w", err)
	}
	return user, nil
}
