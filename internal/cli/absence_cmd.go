package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rkuznets/coachcal/internal/domain"
)

func newAbsenceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "absence",
		Short: "Manage trainer availability and absence marks",
	}
	cmd.AddCommand(
		newAbsenceAddCmd(app),
		newAbsenceApproveCmd(app),
		newAbsenceListCmd(app),
	)
	return cmd
}

func newAbsenceAddCmd(app *App) *cobra.Command {
	var dateStr, kindStr, note string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an availability mark for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidAvailabilityKinds[kindStr] {
				return fmt.Errorf("unknown kind %q (available, unavailable, absence_pending, absence_approved)", kindStr)
			}
			date, err := time.ParseInLocation("2006-01-02", dateStr, app.Location)
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}

			m := domain.AvailabilityMark{
				ID:        uuid.NewString(),
				Date:      date,
				Kind:      domain.AvailabilityKind(kindStr),
				Note:      note,
				CreatedAt: time.Now().UTC(),
			}
			if err := app.Availability.Create(context.Background(), &m); err != nil {
				return err
			}
			cmd.Printf("Marked %s as %s (%s)\n", dateStr, kindStr, m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&kindStr, "kind", "absence_pending", "mark kind")
	cmd.Flags().StringVar(&note, "note", "", "optional note")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newAbsenceApproveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <mark-id>",
		Short: "Approve a pending absence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Availability.SetKind(context.Background(), args[0], domain.AvailabilityAbsenceApproved); err != nil {
				return err
			}
			cmd.Printf("Approved absence %s\n", args[0])
			return nil
		},
	}
}

func newAbsenceListCmd(app *App) *cobra.Command {
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List availability marks in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(fromStr, toStr, app.Location)
			if err != nil {
				return err
			}
			marks, err := app.Availability.ListByDateRange(context.Background(), from, to)
			if err != nil {
				return err
			}
			if len(marks) == 0 {
				cmd.Println("No availability marks found.")
				return nil
			}
			for _, m := range marks {
				line := fmt.Sprintf("%s  %s  %s", m.ID, m.Date.Format("2006-01-02"), m.Kind)
				if m.Note != "" {
					line += "  " + m.Note
				}
				cmd.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "range end (YYYY-MM-DD)")
	return cmd
}
