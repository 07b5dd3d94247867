package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rkuznets/coachcal/internal/engine"
	"github.com/rkuznets/coachcal/internal/tui"
)

func newCalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cal",
		Short: "Open the interactive calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("cal requires an interactive terminal")
			}

			eng := engine.New(engine.Options{
				TickInterval:        app.Config.TickInterval(),
				MinimumBlockMinutes: app.Config.MinimumBlockMinutes,
			})
			defer eng.Close()

			// Load a generous window around today. The stores keep the
			// full history; the TUI only navigates within this slice.
			now := time.Now().In(app.Location)
			from := now.AddDate(0, -3, 0)
			to := now.AddDate(0, 6, 0)

			ctx := cmd.Context()
			sessions, err := app.Sessions.ListByDateRange(ctx, from, to)
			if err != nil {
				return err
			}
			marks, err := app.Availability.ListByDateRange(ctx, from, to)
			if err != nil {
				return err
			}
			eng.SetSessions(sessions)
			eng.SetAvailability(marks)
			eng.Start()

			m := tui.New(eng, app.Config.TickInterval())
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}
