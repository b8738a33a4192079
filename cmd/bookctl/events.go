package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"bookctl/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse and manage the event catalog",
	Long: `Catalog commands. Listing is open to any logged-in user;
create, update and delete require the admin role.

Examples:
  bookctl events list
  bookctl events list --search gopher
  bookctl events create --name GopherCon --date 2026-10-01 --price 25 --location Berlin
  bookctl events update 3 --name "GopherCon EU" --date 2026-10-01 --price 35 --location Berlin
  bookctl events delete 3`,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available events",
	RunE:  runEventsList,
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event (admin)",
	RunE:  runEventsCreate,
}

var eventsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an event (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsUpdate,
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsDelete,
}

func init() {
	eventsListCmd.Flags().String("search", "", "filter by name, case-insensitive substring")

	for _, c := range []*cobra.Command{eventsCreateCmd, eventsUpdateCmd} {
		c.Flags().String("name", "", "event name")
		c.Flags().String("description", "", "event description")
		c.Flags().String("date", "", "event date (YYYY-MM-DD)")
		c.Flags().String("price", "", "ticket price")
		c.Flags().String("location", "", "event location")
		c.Flags().String("image-url", "", "image URL")
	}

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsCreateCmd)
	eventsCmd.AddCommand(eventsUpdateCmd)
	eventsCmd.AddCommand(eventsDeleteCmd)

	rootCmd.AddCommand(eventsCmd)
}

func runEventsList(cmd *cobra.Command, args []string) error {
	// listing is open to both roles: users browse it, admins need the
	// ids it shows before they can update or delete anything
	if _, err := requireRole(cmd.Context(), ""); err != nil {
		return err
	}

	list, err := app.events.Load(cmd.Context())
	if err != nil {
		return err
	}

	if search, _ := cmd.Flags().GetString("search"); search != "" {
		list = app.events.Search(search)
	}

	if len(list) == 0 {
		fmt.Println("No events found.")
		return nil
	}

	printEvents(list)
	return nil
}

func runEventsCreate(cmd *cobra.Command, args []string) error {
	if _, err := requireRole(cmd.Context(), models.RoleAdmin); err != nil {
		return err
	}

	draft, err := draftFromFlags(cmd)
	if err != nil {
		return err
	}

	created, err := app.events.Create(cmd.Context(), draft)
	if err != nil {
		return err
	}

	fmt.Printf("Event #%d created: %s\n", created.ID, created.Name)
	return nil
}

func runEventsUpdate(cmd *cobra.Command, args []string) error {
	if _, err := requireRole(cmd.Context(), models.RoleAdmin); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	draft, err := draftFromFlags(cmd)
	if err != nil {
		return err
	}

	updated, err := app.events.Update(cmd.Context(), id, draft)
	if err != nil {
		return err
	}

	fmt.Printf("Event #%d updated: %s\n", updated.ID, updated.Name)
	return nil
}

func runEventsDelete(cmd *cobra.Command, args []string) error {
	if _, err := requireRole(cmd.Context(), models.RoleAdmin); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	return app.events.Delete(cmd.Context(), id)
}

func draftFromFlags(cmd *cobra.Command) (models.EventDraft, error) {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	date, _ := cmd.Flags().GetString("date")
	location, _ := cmd.Flags().GetString("location")
	imageURL, _ := cmd.Flags().GetString("image-url")

	price := decimal.Zero
	if raw, _ := cmd.Flags().GetString("price"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return models.EventDraft{}, fmt.Errorf("invalid price %q", raw)
		}
		price = parsed
	}

	return models.EventDraft{
		Name:        name,
		Description: description,
		Date:        date,
		Price:       price,
		Location:    location,
		ImageURL:    imageURL,
	}, nil
}

func printEvents(list []models.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDATE\tPRICE\tLOCATION")
	for _, e := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t$%s\t%s\n", e.ID, e.Name, e.Date, e.Price.StringFixed(2), e.Location)
	}
	w.Flush()
}
