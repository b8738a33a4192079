package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"bookctl/internal/authgate"
	"bookctl/internal/config"
	"bookctl/internal/events"
	"bookctl/internal/models"
	"bookctl/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, api *mockAuthAPI) (*AuthService, *session.MemoryStore, *events.EventBus) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	store := session.NewMemoryStore()
	bus := events.NewEventBus()
	svc := NewAuthService(api, store, bus, config.ValidationConfig{MinPasswordLen: 6}, &logger)
	return svc, store, bus
}

func TestSignUpShortPasswordNoNetworkCall(t *testing.T) {
	api := new(mockAuthAPI)
	svc, _, _ := newAuthService(t, api)

	err := svc.SignUp(context.Background(), "Ana", "a@b.com", "abc", models.RoleUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	api.AssertNotCalled(t, "Register")
}

func TestSignUpMissingFields(t *testing.T) {
	api := new(mockAuthAPI)
	svc, _, _ := newAuthService(t, api)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SignUp(ctx, "", "a@b.com", "secret1", ""), ErrFieldRequired)
	assert.ErrorIs(t, svc.SignUp(ctx, "Ana", "", "secret1", ""), ErrFieldRequired)
	assert.ErrorIs(t, svc.SignUp(ctx, "Ana", "a@b.com", "", ""), ErrFieldRequired)
	assert.ErrorIs(t, svc.SignUp(ctx, "Ana", "a@b.com", "secret1", "owner"), ErrInvalidRole)

	api.AssertNotCalled(t, "Register")
}

func TestSignUpDefaultsToUserRole(t *testing.T) {
	api := new(mockAuthAPI)
	svc, _, _ := newAuthService(t, api)

	api.On("Register", mock.Anything, models.RegisterRequest{
		Name: "Ana", Email: "a@b.com", Password: "secret1", Role: models.RoleUser,
	}).Return(nil)

	require.NoError(t, svc.SignUp(context.Background(), "Ana", "a@b.com", "secret1", ""))
	api.AssertExpectations(t)
}

func TestLogInStoresWholeSessionAndRoutesByRole(t *testing.T) {
	tests := []struct {
		role   string
		target authgate.Target
	}{
		{models.RoleUser, authgate.TargetCatalog},
		{models.RoleAdmin, authgate.TargetAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			api := new(mockAuthAPI)
			svc, store, bus := newAuthService(t, api)
			ctx := context.Background()

			loggedIn := 0
			bus.Subscribe(events.EventLoginSucceeded, func(event *events.Event) error {
				loggedIn++
				return nil
			})

			api.On("Login", mock.Anything, models.LoginRequest{Email: "a@b.com", Password: "secret"}).
				Return(models.LoginResponse{
					AccessToken: "T",
					UserData:    models.UserData{ID: 1, Email: "a@b.com", Role: tt.role},
				}, nil)

			got, target, err := svc.LogIn(ctx, "a@b.com", "secret")
			require.NoError(t, err)
			assert.Equal(t, tt.target, target)

			want := models.Session{Token: "T", UserID: 1, Email: "a@b.com", Role: tt.role}
			assert.Equal(t, want, got)

			stored, ok, err := store.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, stored, "all four fields stored, never partial")
			assert.Equal(t, 1, loggedIn)
		})
	}
}

func TestLogInFailureLeavesSessionAnonymous(t *testing.T) {
	api := new(mockAuthAPI)
	svc, store, _ := newAuthService(t, api)
	ctx := context.Background()

	api.On("Login", mock.Anything, mock.Anything).
		Return(models.LoginResponse{}, errors.New("Invalid credentials."))

	_, _, err := svc.LogIn(ctx, "a@b.com", "wrong")
	require.Error(t, err)

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogInMissingCredentialsNoNetworkCall(t *testing.T) {
	api := new(mockAuthAPI)
	svc, _, _ := newAuthService(t, api)
	ctx := context.Background()

	_, _, err := svc.LogIn(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrFieldRequired)

	_, _, err = svc.LogIn(ctx, "a@b.com", "")
	assert.ErrorIs(t, err, ErrFieldRequired)

	api.AssertNotCalled(t, "Login")
}

func TestLogOutIsIdempotent(t *testing.T) {
	api := new(mockAuthAPI)
	svc, store, bus := newAuthService(t, api)
	ctx := context.Background()

	cleared := 0
	bus.Subscribe(events.EventSessionCleared, func(event *events.Event) error {
		cleared++
		return nil
	})

	require.NoError(t, store.Save(ctx, models.Session{Token: "T", UserID: 1, Email: "a@b.com", Role: models.RoleUser}))

	require.NoError(t, svc.LogOut(ctx))
	require.NoError(t, svc.LogOut(ctx))
	assert.Equal(t, 2, cleared)

	_, ok, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
