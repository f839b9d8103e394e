package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The API answered with success=false
	ExitCommandError = 2 // Command error (bad flags, client could not be built)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// writeResponse prints resp as JSON, or through text when the format is
// "text" and the call succeeded. A failed response becomes an ExitError.
func writeResponse[T any](w io.Writer, format string, resp model.Response[T], text func(io.Writer, T) error) error {
	if format == "text" && text != nil && resp.Success {
		if err := text(w, resp.Data); err != nil {
			return err
		}
	} else {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	if !resp.Success {
		return NewExitError(ExitFailure, resp.Error)
	}
	return nil
}

func eventsText(w io.Writer, events []model.Event) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tCITY\tDATE\tPRICE")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\n", e.ID, e.Title, e.Category, e.Venue.City, e.Date, e.Price)
	}
	return tw.Flush()
}

func eventText(w io.Writer, e model.Event) error {
	return eventsText(w, []model.Event{e})
}

func bookingsText(w io.Writer, bookings []model.Booking) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEVENT\tQTY\tTOTAL\tSTATUS")
	for _, b := range bookings {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\n", b.ID, b.EventID, b.Quantity, b.TotalAmount, b.Status)
	}
	return tw.Flush()
}

func bookingText(w io.Writer, b model.Booking) error {
	return bookingsText(w, []model.Booking{b})
}
