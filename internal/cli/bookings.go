package cli

import (
	"github.com/spf13/cobra"

	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

// NewBookingsCommand creates the bookings command.
func NewBookingsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "bookings <user-id>",
		Short:         "List a user's bookings",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.client()
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), rootOpts.Format, a.GetUserBookings(cmd.Context(), args[0]), bookingsText)
		},
	}
}

// NewBookCommand creates the book command.
func NewBookCommand(rootOpts *RootOptions) *cobra.Command {
	var req model.BookingRequest

	cmd := &cobra.Command{
		Use:           "book <event-id>",
		Short:         "Book tickets for an event (requires a connection)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.client()
			if err != nil {
				return err
			}
			req.EventID = args[0]
			return writeResponse(cmd.OutOrStdout(), rootOpts.Format, a.CreateBooking(cmd.Context(), req), bookingText)
		},
	}

	cmd.Flags().StringVar(&req.UserID, "user", "", "user id")
	cmd.Flags().IntVarP(&req.Quantity, "quantity", "q", 1, "number of tickets")
	cmd.Flags().StringVar(&req.TicketType, "ticket-type", "general", "ticket type")
	cmd.Flags().StringVar(&req.UserDetails.Name, "name", "", "attendee name")
	cmd.Flags().StringVar(&req.UserDetails.Email, "email", "", "attendee email")
	cmd.Flags().StringVar(&req.UserDetails.Phone, "phone", "", "attendee phone")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
