package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/rkuznets/coachcal/internal/timeline"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage booking sessions",
	}
	cmd.AddCommand(
		newSessionAddCmd(app),
		newSessionListCmd(app),
		newSessionCancelCmd(app),
		newSessionConfirmCmd(app),
	)
	return cmd
}

func newSessionAddCmd(app *App) *cobra.Command {
	var (
		participantID   string
		participantName string
		dateStr         string
		startTime       string
		endTime         string
		activitiesStr   string
		unconfirmed     bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a booking session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// No flags on an interactive terminal: open the form.
			if participantID == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := runSessionForm(&participantID, &participantName, &dateStr, &startTime, &endTime, &activitiesStr); err != nil {
					return err
				}
			}
			if participantID == "" {
				return fmt.Errorf("--participant is required")
			}

			date, err := time.ParseInLocation("2006-01-02", dateStr, app.Location)
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}
			// Validate times up front so the stored record always
			// classifies cleanly.
			if _, err := timeline.ResolveSpan(date, startTime, endTime); err != nil {
				return err
			}

			assignment := domain.AssignmentNone
			if unconfirmed {
				assignment = domain.AssignmentPendingConfirmation
			}
			s := domain.Session{
				ID:               uuid.NewString(),
				ParticipantID:    participantID,
				ParticipantName:  participantName,
				Date:             date,
				StartTime:        startTime,
				EndTime:          endTime,
				Activities:       splitList(activitiesStr),
				LifecycleStatus:  domain.LifecycleScheduled,
				AssignmentStatus: assignment,
				CreatedAt:        time.Now().UTC(),
			}
			if err := app.Sessions.Create(context.Background(), &s); err != nil {
				return err
			}
			cmd.Printf("Created session %s on %s %s–%s\n", s.ID, dateStr, startTime, endTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&participantID, "participant", "", "participant ID")
	cmd.Flags().StringVar(&participantName, "name", "", "participant display name")
	cmd.Flags().StringVar(&dateStr, "date", "", "session date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&startTime, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&endTime, "end", "", "end time (HH:MM, may wrap past midnight)")
	cmd.Flags().StringVar(&activitiesStr, "activities", "", "comma-separated activity list")
	cmd.Flags().BoolVar(&unconfirmed, "unconfirmed", false, "mark as awaiting participant confirmation")
	return cmd
}

func runSessionForm(participantID, participantName, dateStr, startTime, endTime, activities *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Participant ID").Value(participantID).
				Validate(required("participant ID")),
			huh.NewInput().Title("Participant name").Value(participantName),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Placeholder("2024-06-10").Value(dateStr).
				Validate(validateDate),
			huh.NewInput().Title("Start (HH:MM)").Placeholder("09:00").Value(startTime).
				Validate(validateClockTime),
			huh.NewInput().Title("End (HH:MM)").Placeholder("10:00").Value(endTime).
				Validate(validateClockTime),
			huh.NewInput().Title("Activities (comma separated)").Value(activities),
		),
	).WithShowHelp(false).Run()
}

func newSessionListCmd(app *App) *cobra.Command {
	var fromStr, toStr, participant string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var sessions []domain.Session
			var err error
			if participant != "" {
				sessions, err = app.Sessions.ListByParticipant(ctx, participant)
			} else {
				from, to, rangeErr := parseRange(fromStr, toStr, app.Location)
				if rangeErr != nil {
					return rangeErr
				}
				sessions, err = app.Sessions.ListByDateRange(ctx, from, to)
			}
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				cmd.Println("No sessions found.")
				return nil
			}
			for _, s := range sessions {
				line := fmt.Sprintf("%s  %s %s–%s  %s [%s]",
					s.ID, s.Date.Format("2006-01-02"), s.StartTime, s.EndTime,
					s.ParticipantName, s.LifecycleStatus)
				if s.AssignmentStatus == domain.AssignmentPendingConfirmation {
					line += " (unconfirmed)"
				}
				cmd.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "range start (YYYY-MM-DD, default first of this month)")
	cmd.Flags().StringVar(&toStr, "to", "", "range end (YYYY-MM-DD, default last of this month)")
	cmd.Flags().StringVar(&participant, "participant", "", "list one participant's sessions instead")
	return cmd
}

func newSessionCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <session-id>",
		Short: "Cancel a booking session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.SetLifecycle(context.Background(), args[0], domain.LifecycleCancelled); err != nil {
				return err
			}
			cmd.Printf("Cancelled session %s\n", args[0])
			return nil
		},
	}
}

func newSessionConfirmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <session-id>",
		Short: "Confirm a session awaiting participant confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.SetAssignment(context.Background(), args[0], domain.AssignmentNone); err != nil {
				return err
			}
			cmd.Printf("Confirmed session %s\n", args[0])
			return nil
		},
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func required(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(v string) error {
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func validateClockTime(v string) error {
	if _, _, _, err := timeline.ParseClockTime(v); err != nil {
		return fmt.Errorf("expected HH:MM")
	}
	return nil
}

// parseRange resolves the --from/--to pair, defaulting to the current month.
func parseRange(fromStr, toStr string, loc *time.Location) (time.Time, time.Time, error) {
	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, -1)

	var err error
	if fromStr != "" {
		if from, err = time.ParseInLocation("2006-01-02", fromStr, loc); err != nil {
			return from, to, fmt.Errorf("parsing --from: %w", err)
		}
	}
	if toStr != "" {
		if to, err = time.ParseInLocation("2006-01-02", toStr, loc); err != nil {
			return from, to, fmt.Errorf("parsing --to: %w", err)
		}
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("--to is before --from")
	}
	return from, to, nil
}
