package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"bookctl/internal/models"

	"github.com/spf13/cobra"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Book events and review your booking history",
	Long: `Booking commands for the logged-in user.

Examples:
  bookctl bookings create 3 --quantity 2
  bookctl bookings list
  bookctl bookings export`,
}

var bookingsCreateCmd = &cobra.Command{
	Use:   "create <event-id>",
	Short: "Book seats for an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookingsCreate,
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your booking history",
	RunE:  runBookingsList,
}

var bookingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your booking history to an Excel file",
	RunE:  runBookingsExport,
}

func init() {
	bookingsCreateCmd.Flags().Int("quantity", 1, "number of seats")

	bookingsCmd.AddCommand(bookingsCreateCmd)
	bookingsCmd.AddCommand(bookingsListCmd)
	bookingsCmd.AddCommand(bookingsExportCmd)

	rootCmd.AddCommand(bookingsCmd)
}

func runBookingsCreate(cmd *cobra.Command, args []string) error {
	if _, err := requireRole(cmd.Context(), models.RoleUser); err != nil {
		return err
	}

	eventID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	quantity, _ := cmd.Flags().GetInt("quantity")

	// success feedback comes from the booking_created notification
	_, err = app.bookings.Create(cmd.Context(), eventID, quantity)
	return err
}

func runBookingsList(cmd *cobra.Command, args []string) error {
	if _, err := requireRole(cmd.Context(), models.RoleUser); err != nil {
		return err
	}

	bookings, err := app.bookings.Load(cmd.Context())
	if err != nil {
		return err
	}

	if len(bookings) == 0 {
		fmt.Println("You have no bookings yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEVENT\tQUANTITY\tBOOKED AT")
	for _, b := range bookings {
		name := b.EventName
		if name == "" {
			name = fmt.Sprintf("event #%d", b.EventID)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", b.ID, name, b.Quantity, b.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
	return nil
}

func runBookingsExport(cmd *cobra.Command, args []string) error {
	if _, err := requireRole(cmd.Context(), models.RoleUser); err != nil {
		return err
	}

	path, err := app.bookings.Export(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Booking history exported to %s\n", path)
	return nil
}
