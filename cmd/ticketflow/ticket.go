package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ticketflowapp/ticketflow/internal/feedback"
	"ticketflowapp/ticketflow/internal/ticket"
)

func newTicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Manage tickets",
	}
	cmd.AddCommand(
		newTicketListCmd(),
		newTicketCreateCmd(),
		newTicketUpdateCmd(),
		newTicketDeleteCmd(),
	)
	return cmd
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show ticket counts by status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := requireSession(cmd, a)
			if err != nil {
				return err
			}

			stats, err := a.Tickets.Stats()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Welcome, %s\n\n", user.Name)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Total Tickets\t%d\n", stats.Total)
			fmt.Fprintf(w, "Open\t%d\n", stats.Open)
			fmt.Fprintf(w, "In Progress\t%d\n", stats.InProgress)
			fmt.Fprintf(w, "Closed\t%d\n", stats.Closed)
			return w.Flush()
		},
	}
}

func newTicketListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tickets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := requireSession(cmd, a); err != nil {
				return err
			}

			tickets, err := a.Tickets.List()
			if err != nil {
				return err
			}
			if len(tickets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tickets yet. Create your first ticket!")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDESCRIPTION")
			for _, t := range tickets {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, t.Description)
			}
			return w.Flush()
		},
	}
}

func ticketInputFlags(cmd *cobra.Command, in *ticket.Input) {
	cmd.Flags().StringVar(&in.Title, "title", "", "ticket title")
	cmd.Flags().StringVar(&in.Description, "description", "", "ticket description")
	cmd.Flags().StringVar(&in.Status, "status", string(ticket.StatusOpen), "open, in_progress, or closed")
	cmd.Flags().StringVar(&in.Priority, "priority", string(ticket.PriorityMedium), "low, medium, or high")
}

func newTicketCreateCmd() *cobra.Command {
	var in ticket.Input

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ticket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := requireSession(cmd, a)
			if err != nil {
				return err
			}

			created, err := a.Tickets.Create(in)
			var fieldErrs feedback.FieldErrors
			switch {
			case errors.As(err, &fieldErrs):
				show(cmd, feedback.Failure("Please fix the fields below."))
				showFieldErrors(cmd, fieldErrs)
				_ = a.Audit.Record(user.Email, "ticket.create", "ticket", "rejected", fieldErrs.Error())
				return errors.New("ticket rejected")
			case err != nil:
				show(cmd, feedback.Failure("Could not save the ticket: "+err.Error()))
				_ = a.Audit.Record(user.Email, "ticket.create", "ticket", "failed", err.Error())
				return err
			}

			show(cmd, feedback.Success("Ticket created successfully"))
			fmt.Fprintf(cmd.OutOrStdout(), "id: %d\n", created.ID)
			_ = a.Audit.Record(user.Email, "ticket.create", fmt.Sprintf("ticket/%d", created.ID), "success", "")
			return nil
		},
	}

	ticketInputFlags(cmd, &in)
	return cmd
}

func newTicketUpdateCmd() *cobra.Command {
	var in ticket.Input

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a ticket's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := requireSession(cmd, a)
			if err != nil {
				return err
			}

			_, err = a.Tickets.Update(id, in)
			var fieldErrs feedback.FieldErrors
			switch {
			case errors.As(err, &fieldErrs):
				show(cmd, feedback.Failure("Please fix the fields below."))
				showFieldErrors(cmd, fieldErrs)
				_ = a.Audit.Record(user.Email, "ticket.update", fmt.Sprintf("ticket/%d", id), "rejected", fieldErrs.Error())
				return errors.New("ticket rejected")
			case errors.Is(err, ticket.ErrNotFound):
				show(cmd, feedback.Warning("Ticket not found; nothing was updated."))
				_ = a.Audit.Record(user.Email, "ticket.update", fmt.Sprintf("ticket/%d", id), "rejected", "not found")
				return nil
			case err != nil:
				show(cmd, feedback.Failure("Could not save the ticket: "+err.Error()))
				_ = a.Audit.Record(user.Email, "ticket.update", fmt.Sprintf("ticket/%d", id), "failed", err.Error())
				return err
			}

			show(cmd, feedback.Success("Ticket updated successfully"))
			_ = a.Audit.Record(user.Email, "ticket.update", fmt.Sprintf("ticket/%d", id), "success", "")
			return nil
		},
	}

	ticketInputFlags(cmd, &in)
	return cmd
}

func newTicketDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := requireSession(cmd, a)
			if err != nil {
				return err
			}

			if err := a.Tickets.Delete(id); err != nil {
				show(cmd, feedback.Failure("Could not delete the ticket: "+err.Error()))
				_ = a.Audit.Record(user.Email, "ticket.delete", fmt.Sprintf("ticket/%d", id), "failed", err.Error())
				return err
			}

			show(cmd, feedback.Success("Ticket deleted successfully"))
			_ = a.Audit.Record(user.Email, "ticket.delete", fmt.Sprintf("ticket/%d", id), "success", "")
			return nil
		},
	}
}
