// Package authgate guards protected views: it checks session presence
// and role before any data fetch, and turns authorization failures from
// later calls into a forced logout.
package authgate

import (
	"context"
	"fmt"

	"bookctl/internal/apiclient"
	"bookctl/internal/domain"
	"bookctl/internal/events"
	"bookctl/internal/models"

	"github.com/rs/zerolog"
)

type State int

const (
	StateUnchecked State = iota
	StateChecking
	StateAuthorized
	StateRedirecting
)

func (s State) String() string {
	switch s {
	case StateUnchecked:
		return "unchecked"
	case StateChecking:
		return "checking"
	case StateAuthorized:
		return "authorized"
	case StateRedirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// Target names a navigation destination.
type Target string

const (
	TargetLanding Target = "landing"
	TargetCatalog Target = "events"
	TargetAdmin   Target = "admin"
)

// Decision is the gate's verdict for one view mount.
type Decision struct {
	State    State
	Redirect Target
	Session  models.Session
}

// Authorized reports whether the view may load its data.
func (d Decision) Authorized() bool {
	return d.State == StateAuthorized
}

// DefaultTarget returns the home view for a role.
func DefaultTarget(role string) Target {
	if role == models.RoleAdmin {
		return TargetAdmin
	}
	return TargetCatalog
}

// Gate enforces session presence and role per view.
type Gate struct {
	store  domain.SessionStore
	bus    domain.EventPublisher
	logger *zerolog.Logger
	state  State
}

func New(store domain.SessionStore, bus domain.EventPublisher, logger *zerolog.Logger) *Gate {
	return &Gate{
		store:  store,
		bus:    bus,
		logger: logger,
		state:  StateUnchecked,
	}
}

// State returns the gate's last observed state.
func (g *Gate) State() State {
	return g.state
}

// Check runs the per-view state machine. requiredRole is the role the
// view demands; the role check happens before any fetch. A mismatched
// role redirects to the session's own default view.
func (g *Gate) Check(ctx context.Context, requiredRole string) (Decision, error) {
	g.state = StateChecking

	session, ok, err := g.store.Load(ctx)
	if err != nil {
		g.state = StateRedirecting
		return Decision{State: StateRedirecting, Redirect: TargetLanding},
			fmt.Errorf("load session: %w", err)
	}
	if !ok {
		g.state = StateRedirecting
		g.logger.Debug().Msg("no session, redirecting to landing")
		return Decision{State: StateRedirecting, Redirect: TargetLanding}, nil
	}

	if requiredRole != "" && session.Role != requiredRole {
		g.state = StateRedirecting
		g.logger.Debug().Str("have", session.Role).Str("want", requiredRole).
			Msg("role mismatch, redirecting")
		return Decision{State: StateRedirecting, Redirect: DefaultTarget(session.Role)}, nil
	}

	g.state = StateAuthorized
	return Decision{State: StateAuthorized, Session: session}, nil
}

// ForceLogout clears the session and redirects to the landing view.
// Clearing an already absent session is fine.
func (g *Gate) ForceLogout(ctx context.Context) Decision {
	if err := g.store.Clear(ctx); err != nil {
		g.logger.Error().Err(err).Msg("failed to clear session on forced logout")
	}
	_ = g.bus.PublishJSON(events.EventSessionCleared, events.SessionEventPayload{})

	g.state = StateRedirecting
	return Decision{State: StateRedirecting, Redirect: TargetLanding}
}

// HandleFetchError maps an authorization failure on a data fetch to the
// forced-logout path. It reports whether the error was consumed.
func (g *Gate) HandleFetchError(ctx context.Context, err error) (Decision, bool) {
	if !apiclient.IsAuthFailure(err) {
		return Decision{State: g.state}, false
	}
	g.logger.Warn().Err(err).Msg("authorization failure, forcing logout")
	return g.ForceLogout(ctx), true
}
