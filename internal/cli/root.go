package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakhrymubarak/eventsphere-api/internal/api"
	"github.com/fakhrymubarak/eventsphere-api/internal/config"
)

// Factory builds the API client from the resolved configuration.
type Factory func(cfg *config.Config) (*api.EventSphere, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	BaseURL string
	Offline bool
	Format  string // "json" | "text"

	factory Factory
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "text"}

func defaultFactory(cfg *config.Config) (*api.EventSphere, error) {
	return api.NewFromConfig(cfg, config.GetLogger(), nil)
}

// NewRootCommand creates the root command. A nil factory uses the configured backend.
func NewRootCommand(factory Factory) *cobra.Command {
	if factory == nil {
		factory = defaultFactory
	}
	opts := &RootOptions{factory: factory}

	cmd := &cobra.Command{
		Use:   "eventsphere",
		Short: "EventSphere API client",
		Long:  "Browse events and manage bookings against the EventSphere backend, falling back to offline data when it is unreachable.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "override the backend base URL")
	cmd.PersistentFlags().BoolVar(&opts.Offline, "offline", false, "start in offline mode")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "json", "output format (json|text)")

	cmd.AddCommand(NewEventsCommand(opts))
	cmd.AddCommand(NewEventCommand(opts))
	cmd.AddCommand(NewBookingsCommand(opts))
	cmd.AddCommand(NewBookCommand(opts))
	cmd.AddCommand(NewHealthCommand(opts))
	cmd.AddCommand(NewServeCommand())

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// client resolves configuration, applies flag overrides and builds the API.
func (o *RootOptions) client() (*api.EventSphere, error) {
	cfg := config.Load()
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
		cfg.IsLocalTarget = config.IsLocalURL(o.BaseURL)
	}
	a, err := o.factory(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "creating API client", err)
	}
	if o.Offline {
		a.SetOnlineStatus(false)
	}
	return a, nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand(nil).Execute(); err != nil {
		return GetExitCode(err)
	}
	return ExitSuccess
}
