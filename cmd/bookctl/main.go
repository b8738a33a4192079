package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bookctl/internal/apiclient"
	"bookctl/internal/authgate"
	"bookctl/internal/config"
	"bookctl/internal/domain"
	"bookctl/internal/events"
	"bookctl/internal/logging"
	"bookctl/internal/service"
	"bookctl/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	app     *application
)

type application struct {
	cfg      *config.Config
	logger   *zerolog.Logger
	logClose io.Closer
	redis    *redis.Client
	store    domain.SessionStore
	gate     *authgate.Gate
	bus      *events.EventBus
	auth     *service.AuthService
	events   *service.EventService
	bookings *service.BookingService
}

var rootCmd = &cobra.Command{
	Use:           "bookctl",
	Short:         "Command-line front-end for the event-booking API",
	Long:          "bookctl talks to a remote event-booking API: sign up, log in,\nbrowse and manage events, and book seats from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		app, err = newApplication(cfgPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to the config file")
}

func defaultConfigPath() string {
	if path := os.Getenv("BOOKCTL_CONFIG"); path != "" {
		return path
	}
	return "configs/config.yaml"
}

func newApplication(configPath string) (*application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, err
	}

	a := &application{cfg: cfg, logger: logger, logClose: closer}

	a.store, err = a.buildSessionStore()
	if err != nil {
		return nil, err
	}

	a.bus = events.NewEventBus()
	a.gate = authgate.New(a.store, a.bus, logger)

	client := apiclient.New(cfg.API, a.store, logger)
	a.auth = service.NewAuthService(client, a.store, a.bus, cfg.Validation, logger)
	a.events = service.NewEventService(client, a.gate, cfg.Validation, a.bus, logger)
	a.bookings = service.NewBookingService(client, client, a.store, a.gate, a.bus, cfg.Exports.Path, logger)

	a.subscribeNotifications()
	return a, nil
}

func (a *application) buildSessionStore() (domain.SessionStore, error) {
	switch a.cfg.Session.Backend {
	case config.SessionBackendRedis:
		a.redis = session.NewRedisClient(a.cfg.Redis)
		store := domain.SessionStore(session.NewRedisStore(a.redis))
		if a.cfg.Session.Fallback {
			store = session.NewFailoverStore(store, session.NewMemoryStore(), a.logger)
		}
		return store, nil
	default:
		return session.NewFileStore(a.cfg.Session.FilePath), nil
	}
}

// subscribeNotifications renders transient success notifications for
// server-confirmed mutations.
func (a *application) subscribeNotifications() {
	a.bus.Subscribe(events.EventBookingCreated, func(event *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		name := payload.EventName
		if name == "" {
			name = fmt.Sprintf("event #%d", payload.EventID)
		}
		fmt.Printf("Booking confirmed: %d x %s\n", payload.Quantity, name)
		return nil
	})

	a.bus.Subscribe(events.EventCatalogDeleted, func(event *events.Event) error {
		var payload events.CatalogEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		fmt.Printf("Event #%d deleted.\n", payload.EventID)
		return nil
	})
}

func (a *application) close() {
	if a == nil {
		return
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.logClose != nil {
		_ = a.logClose.Close()
	}
}

// requireRole runs the auth gate for a view-equivalent command. The
// role check happens before any fetch.
func requireRole(ctx context.Context, role string) (authgate.Decision, error) {
	decision, err := app.gate.Check(ctx, role)
	if err != nil {
		return decision, err
	}
	if decision.Authorized() {
		return decision, nil
	}

	switch decision.Redirect {
	case authgate.TargetLanding:
		return decision, fmt.Errorf("not logged in; run \"bookctl login\" first")
	case authgate.TargetAdmin:
		return decision, fmt.Errorf("this command is for regular users; admins manage events with \"bookctl events\"")
	default:
		return decision, fmt.Errorf("this command requires the %s role", role)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cobra skips PostRun hooks when RunE fails, so teardown happens
	// here where both outcomes pass through
	err := rootCmd.ExecuteContext(ctx)
	app.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
