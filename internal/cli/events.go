package cli

import (
	"github.com/spf13/cobra"

	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

// NewEventsCommand creates the events command.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	var filters model.EventFilters
	var featured bool

	cmd := &cobra.Command{
		Use:           "events",
		Short:         "List events, optionally filtered by category, city or search text",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if featured {
				return writeResponse(cmd.OutOrStdout(), rootOpts.Format, a.GetFeaturedEvents(ctx), eventsText)
			}
			resp := a.GetEvents(ctx, &filters)
			return writeResponse(cmd.OutOrStdout(), rootOpts.Format, resp, eventsText)
		},
	}

	cmd.Flags().StringVar(&filters.Category, "category", "", "exact category")
	cmd.Flags().StringVar(&filters.City, "city", "", "city, any case")
	cmd.Flags().StringVarP(&filters.Search, "search", "s", "", "text in title, description or city")
	cmd.Flags().BoolVar(&featured, "featured", false, "list featured events (ignores filters)")

	return cmd
}

// NewEventCommand creates the event command.
func NewEventCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "event <id>",
		Short:         "Show one event",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.client()
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), rootOpts.Format, a.GetEventByID(cmd.Context(), args[0]), eventText)
		},
	}
}

// NewHealthCommand creates the health command.
func NewHealthCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "health",
		Short:         "Check that the backend is reachable",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.client()
			if err != nil {
				return err
			}
			return writeResponse[model.HealthStatus](cmd.OutOrStdout(), "json", a.CheckAPIHealth(cmd.Context()), nil)
		},
	}
}
