package cli

import (
	"errors"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/config"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/alexanderramin/trailog/internal/repository"
	"github.com/alexanderramin/trailog/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("the map needs an interactive terminal; use `trailog workout` subcommands for scripting")

// App holds the services and settings CLI commands and the TUI share.
type App struct {
	Workouts app.WorkoutUseCase

	// KV and Factory back the interactive session's workout store.
	KV      repository.KeyValueStore
	Factory *domain.Factory

	Config   config.Config
	Observer service.UseCaseObserver

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "trailog" command. Without a
// subcommand it opens the map.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "trailog",
		Short:        "Log runs and rides on a map in your terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.IsInteractive == nil || !a.IsInteractive() {
				return errNotInteractive
			}
			_, err := tea.NewProgram(newAppModel(a), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	root.AddCommand(newWorkoutCmd(a))
	return root
}
