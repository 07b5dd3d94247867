package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/rkuznets/coachcal/internal/engine"
)

func newAgendaCmd(app *App) *cobra.Command {
	var (
		dateStr      string
		week         bool
		month        bool
		participants []string
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Print the session agenda for a day, week or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			render := func() error {
				return renderAgenda(cmd.OutOrStdout(), app, dateStr, week, month, participants)
			}
			if err := render(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			// Re-render on the configured cron schedule until interrupted.
			c := cron.New()
			if _, err := c.AddFunc(app.Config.RefreshCron, func() {
				if err := render(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "agenda refresh: %v\n", err)
				}
			}); err != nil {
				return fmt.Errorf("invalid refresh schedule %q: %w", app.Config.RefreshCron, err)
			}
			c.Run()
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "day view for a date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&week, "week", false, "week view for the current week")
	cmd.Flags().BoolVar(&month, "month", false, "month view for the current month (default)")
	cmd.Flags().StringSliceVar(&participants, "participant", nil, "restrict to participant IDs")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep re-rendering on the configured schedule")
	return cmd
}

// renderAgenda loads the visible window from the stores, feeds it through
// the engine, and prints the derived groups.
func renderAgenda(w io.Writer, app *App, dateStr string, week, month bool, participants []string) error {
	eng := engine.New(engine.Options{
		MinimumBlockMinutes: app.Config.MinimumBlockMinutes,
	})
	defer eng.Close()

	ctrl := eng.Controller()
	switch {
	case dateStr != "":
		date, err := time.ParseInLocation("2006-01-02", dateStr, app.Location)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
		if err := eng.OpenDay(date); err != nil {
			return err
		}
	case week:
		ctrl.SwitchToWeek()
	case month:
		ctrl.SwitchToMonth()
	}

	r := eng.ViewState().VisibleRange()
	ctx := context.Background()
	sessions, err := app.Sessions.ListByDateRange(ctx, r.Start, r.End)
	if err != nil {
		return err
	}
	marks, err := app.Availability.ListByDateRange(ctx, r.Start, r.End)
	if err != nil {
		return err
	}
	eng.SetSessions(sessions)
	eng.SetAvailability(marks)
	eng.SetParticipantFilter(participants)

	fmt.Fprintf(w, "Agenda %s – %s\n\n", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))

	groups := eng.DayGroups()
	if len(groups) == 0 {
		fmt.Fprintln(w, "No sessions in this range.")
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s", g.Date.Format("Mon 02 Jan"))
		if deco := eng.DecorationFor(g.Date); deco != domain.DecorationNone {
			fmt.Fprintf(w, "  [%s]", deco)
		}
		fmt.Fprintln(w)
		for _, pg := range g.Participants {
			fmt.Fprintf(w, "  %s\n", pg.ParticipantName)
			for _, s := range pg.Sessions {
				fmt.Fprintf(w, "    %s\n", describeSession(s))
			}
		}
	}

	if skipped := eng.InvalidSessions(); len(skipped) > 0 {
		fmt.Fprintf(w, "\n%d record(s) excluded due to invalid times.\n", len(skipped))
	}
	return nil
}

func describeSession(s domain.ClassifiedSession) string {
	line := fmt.Sprintf("%s–%s %s", s.StartTime, s.EndTime, joinActivities(s))
	switch {
	case s.IsCancelled:
		line += " [cancelled]"
	case s.TemporalState == domain.TemporalOngoing:
		line += " [now]"
	case s.TemporalState == domain.TemporalPast:
		line += " [done]"
	}
	if s.NeedsConfirmation {
		line += " [unconfirmed]"
	}
	if s.OverflowsToNextDay {
		line += " [overnight]"
	}
	return line
}

func joinActivities(s domain.ClassifiedSession) string {
	if len(s.Activities) == 0 {
		return "(no activities)"
	}
	out := s.Activities[0]
	for _, a := range s.Activities[1:] {
		out += ", " + a
	}
	return out
}
