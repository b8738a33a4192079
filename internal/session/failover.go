package session

import (
	"context"
	"sync/atomic"
	"time"

	"bookctl/internal/domain"
	"bookctl/internal/models"

	"github.com/rs/zerolog"
)

// FailoverStore tries the primary store first and falls back when it
// errors, retrying the primary after a recovery window. The session a
// reader observes is always a complete one from whichever store served
// the call.
type FailoverStore struct {
	primary  domain.SessionStore
	fallback domain.SessionStore
	logger   *zerolog.Logger
	isDown   atomic.Bool
	// unix nanos of the last failed primary attempt
	lastCheck atomic.Int64
}

func NewFailoverStore(primary, fallback domain.SessionStore, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("Primary session store failed, falling back to memory")
	s.isDown.Store(true)
	s.lastCheck.Store(time.Now().UnixNano())
}

func (s *FailoverStore) Save(ctx context.Context, session models.Session) error {
	if !s.isDown.Load() {
		err := s.primary.Save(ctx, session)
		if err == nil {
			return nil
		}
		s.markDown(err)
	}

	return s.fallback.Save(ctx, session)
}

func (s *FailoverStore) Load(ctx context.Context) (models.Session, bool, error) {
	if !s.isDown.Load() {
		session, ok, err := s.primary.Load(ctx)
		if err == nil {
			return session, ok, nil
		}
		s.markDown(err)
	}

	// Try to recover after 1 minute
	if s.isDown.Load() && time.Since(time.Unix(0, s.lastCheck.Load())) > time.Minute {
		session, ok, err := s.primary.Load(ctx)
		if err == nil {
			s.isDown.Store(false)
			return session, ok, nil
		}
		s.lastCheck.Store(time.Now().UnixNano())
	}

	return s.fallback.Load(ctx)
}

func (s *FailoverStore) Clear(ctx context.Context) error {
	fallbackErr := s.fallback.Clear(ctx)

	if !s.isDown.Load() {
		if err := s.primary.Clear(ctx); err != nil {
			s.markDown(err)
			return fallbackErr
		}
	}

	return fallbackErr
}
