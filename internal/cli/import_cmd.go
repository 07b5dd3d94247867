package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkuznets/coachcal/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	var (
		participantID   string
		participantName string
		fromStr         string
		toStr           string
	)

	cmd := &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import sessions from an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if participantID == "" {
				return fmt.Errorf("--participant is required")
			}

			from, to, err := importRange(fromStr, toStr, app.Location)
			if err != nil {
				return err
			}

			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			result, err := importer.Import(body, importer.Options{
				ParticipantID:   participantID,
				ParticipantName: participantName,
				Location:        app.Location,
				RangeStart:      from,
				RangeEnd:        to,
			})
			if err != nil {
				return fmt.Errorf("parsing calendar: %w", err)
			}

			for i := range result.Sessions {
				s := result.Sessions[i]
				if err := app.Sessions.Create(cmd.Context(), &s); err != nil {
					return fmt.Errorf("storing session on %s: %w", s.Date.Format("2006-01-02"), err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d session(s).\n", len(result.Sessions))
			for _, sk := range result.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s: %s\n", sk.UID, sk.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&participantID, "participant", "", "participant ID to attach imported sessions to")
	cmd.Flags().StringVar(&participantName, "name", "", "participant display name (attendee CN wins if present)")
	cmd.Flags().StringVar(&fromStr, "from", "", "start of the import window (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&toStr, "to", "", "end of the import window (YYYY-MM-DD, default +90 days)")
	return cmd
}

// importRange defaults to a forward-looking 90-day window.
func importRange(fromStr, toStr string, loc *time.Location) (time.Time, time.Time, error) {
	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 90)

	var err error
	if fromStr != "" {
		from, err = time.ParseInLocation("2006-01-02", fromStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --from: %w", err)
		}
	}
	if toStr != "" {
		to, err = time.ParseInLocation("2006-01-02", toStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --to: %w", err)
		}
		to = to.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to must be after --from")
	}
	return from, to, nil
}
