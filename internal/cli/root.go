// Package cli defines the coachcal command tree.
package cli

import (
	"time"

	"github.com/rkuznets/coachcal/internal/config"
	"github.com/rkuznets/coachcal/internal/repository"
	"github.com/spf13/cobra"
)

// App holds references to the stores and configuration used by commands.
type App struct {
	Sessions     repository.SessionStore
	Availability repository.AvailabilityStore
	Config       *config.Config
	Location     *time.Location

	// IsInteractive reports whether stdin is a terminal; the interactive
	// session form is only offered when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "coachcal" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "coachcal",
		Short: "Booking session calendar for coaching businesses",
	}

	root.AddCommand(
		newAgendaCmd(app),
		newSessionCmd(app),
		newAbsenceCmd(app),
		newImportCmd(app),
		newCalCmd(app),
	)

	return root
}
