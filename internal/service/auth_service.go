package service

import (
	"context"
	"fmt"

	"bookctl/internal/authgate"
	"bookctl/internal/config"
	"bookctl/internal/domain"
	"bookctl/internal/events"
	"bookctl/internal/models"

	"github.com/rs/zerolog"
)

// AuthService owns signup, login and logout. Login writes the whole
// session in one store call, so no reader observes a partial session.
type AuthService struct {
	api            domain.AuthAPI
	store          domain.SessionStore
	bus            domain.EventPublisher
	minPasswordLen int
	logger         *zerolog.Logger
}

func NewAuthService(api domain.AuthAPI, store domain.SessionStore, bus domain.EventPublisher, cfg config.ValidationConfig, logger *zerolog.Logger) *AuthService {
	minLen := cfg.MinPasswordLen
	if minLen <= 0 {
		minLen = 6
	}
	return &AuthService{
		api:            api,
		store:          store,
		bus:            bus,
		minPasswordLen: minLen,
		logger:         logger,
	}
}

// SignUp validates locally, then registers the account. Validation
// failures never reach the network.
func (s *AuthService) SignUp(ctx context.Context, name, email, password, role string) error {
	if name == "" {
		return fmt.Errorf("%w: name", ErrFieldRequired)
	}
	if email == "" {
		return fmt.Errorf("%w: email", ErrFieldRequired)
	}
	if password == "" {
		return fmt.Errorf("%w: password", ErrFieldRequired)
	}
	if len(password) < s.minPasswordLen {
		return fmt.Errorf("%w: minimum %d characters", ErrPasswordTooShort, s.minPasswordLen)
	}

	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	if err := s.api.Register(ctx, models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Str("role", role).Msg("account registered")
	return nil
}

// LogIn exchanges credentials for a session, saves it and returns the
// role-based destination: catalog for users, admin dashboard for admins.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (models.Session, authgate.Target, error) {
	if email == "" {
		return models.Session{}, "", fmt.Errorf("%w: email", ErrFieldRequired)
	}
	if password == "" {
		return models.Session{}, "", fmt.Errorf("%w: password", ErrFieldRequired)
	}

	resp, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.Session{}, "", err
	}

	session := models.Session{
		Token:  resp.AccessToken,
		UserID: resp.UserData.ID,
		Email:  resp.UserData.Email,
		Role:   resp.UserData.Role,
	}

	if err := s.store.Save(ctx, session); err != nil {
		return models.Session{}, "", fmt.Errorf("save session: %w", err)
	}

	_ = s.bus.PublishJSON(events.EventLoginSucceeded, events.SessionEventPayload{
		UserID: session.UserID,
		Email:  session.Email,
		Role:   session.Role,
	})

	s.logger.Info().Int64("user_id", session.UserID).Str("role", session.Role).Msg("logged in")
	return session, authgate.DefaultTarget(session.Role), nil
}

// LogOut clears the session. Logging out while anonymous is a no-op.
func (s *AuthService) LogOut(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	_ = s.bus.PublishJSON(events.EventSessionCleared, events.SessionEventPayload{})
	return nil
}

// Current returns the stored session, if any.
func (s *AuthService) Current(ctx context.Context) (models.Session, bool, error) {
	return s.store.Load(ctx)
}
