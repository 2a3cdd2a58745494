package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/cli/formatter"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkoutCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workout",
		Aliases: []string{"w"},
		Short:   "Log and manage workouts without the map",
	}

	cmd.AddCommand(
		newWorkoutAddCmd(a),
		newWorkoutListCmd(a),
		newWorkoutRemoveCmd(a),
		newWorkoutResetCmd(a),
		newWorkoutRestoreCmd(a),
	)

	return cmd
}

func newWorkoutAddCmd(a *App) *cobra.Command {
	activity := &activityFlag{value: domain.ActivityRunning}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a workout at a position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			in := domain.WorkoutInput{
				Type:     activity.value,
				Distance: float64FlagOrNaN(fs, "distance"),
				Duration: float64FlagOrNaN(fs, "duration"),
				Coords: domain.Coords{
					Lat: float64FlagOrNaN(fs, "lat"),
					Lng: float64FlagOrNaN(fs, "lng"),
				},
			}
			switch in.Type {
			case domain.ActivityCycling:
				if fs.Changed("cadence") {
					return fmt.Errorf("--cadence applies to running; use --elevation for cycling")
				}
				in.Extra = float64FlagOrNaN(fs, "elevation")
			default:
				if fs.Changed("elevation") {
					return fmt.Errorf("--elevation applies to cycling; use --cadence for running")
				}
				in.Extra = float64FlagOrNaN(fs, "cadence")
			}

			w, err := a.Workouts.Add(cmd.Context(), in)
			if err != nil {
				return describeAddError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkoutLogged(w))
			return nil
		},
	}

	cmd.Flags().Var(activity, "type", "Activity type ("+activityChoices()+")")
	cmd.Flags().Float64("distance", 0, "Distance in km")
	cmd.Flags().Float64("duration", 0, "Duration in minutes")
	cmd.Flags().Float64("lat", 0, "Latitude in decimal degrees")
	cmd.Flags().Float64("lng", 0, "Longitude in decimal degrees")
	cmd.Flags().Float64("cadence", 0, "Cadence in steps/min (running)")
	cmd.Flags().Float64("elevation", 0, "Elevation gain in meters (cycling)")
	_ = cmd.MarkFlagRequired("distance")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}

// describeAddError maps field names back to the flags that set them.
func describeAddError(err error) error {
	var inputErr *domain.InvalidInputError
	if !errors.As(err, &inputErr) {
		return err
	}
	flagNames := map[string]string{
		domain.FieldType:          "--type",
		domain.FieldDistance:      "--distance",
		domain.FieldDuration:      "--duration",
		domain.FieldCoords:        "--lat/--lng",
		domain.FieldCadence:       "--cadence",
		domain.FieldElevationGain: "--elevation",
	}
	parts := make([]string, 0, len(inputErr.Fields))
	for _, f := range inputErr.Fields {
		name := flagNames[f.Field]
		if name == "" {
			name = f.Field
		}
		parts = append(parts, name+" "+f.Reason)
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(parts, "; "))
}

func newWorkoutListCmd(a *App) *cobra.Command {
	sortBy := &sortFlag{value: app.SortCreated}
	var desc bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List logged workouts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts, err := a.Workouts.List(cmd.Context(), app.ListWorkoutsRequest{
				SortBy:     sortBy.value,
				Descending: desc,
			})
			// Unreadable saved state lists as empty, like the map view.
			if errors.Is(err, domain.ErrCorruptState) {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("Saved workouts could not be read and were skipped."))
				workouts, err = nil, nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkoutTable(workouts, time.Now()))
			return nil
		},
	}

	cmd.Flags().Var(sortBy, "sort", "Sort by created, distance or duration")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort in descending order")

	return cmd
}

// resolveWorkoutID accepts a full id or an unambiguous id prefix.
func resolveWorkoutID(cmd *cobra.Command, a *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("workout ID is required")
	}

	workouts, err := a.Workouts.List(cmd.Context(), app.ListWorkoutsRequest{})
	if err != nil {
		return "", err
	}

	for _, w := range workouts {
		if w.ID == input {
			return w.ID, nil
		}
	}

	var matches []string
	for _, w := range workouts {
		if strings.HasPrefix(w.ID, input) {
			matches = append(matches, w.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("workout %q: %w", input, domain.ErrWorkoutNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("workout ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newWorkoutRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a workout by ID or ID prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveWorkoutID(cmd, a, args[0])
			if err != nil {
				return err
			}
			w, err := a.Workouts.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", w.Description, formatter.TruncID(w.ID))
			return nil
		},
	}
}

func newWorkoutResetCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every workout (a backup is kept for restore)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirmPrompt(cmd, "Clear all workouts?") {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}
			result, err := a.Workouts.Reset(cmd.Context())
			if err != nil {
				return err
			}
			if result.BackupKey == "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing to clear."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d workout(s). Run `trailog workout restore` to undo.\n", result.Removed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newWorkoutRestoreCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the workouts cleared by the last reset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.Workouts.Restore(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d workout(s).\n", n)
			return nil
		},
	}
}

func confirmPrompt(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	text, _ := reader.ReadString('\n')
	text = strings.TrimSpace(strings.ToLower(text))
	return text == "y" || text == "yes"
}
