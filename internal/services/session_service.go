package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"memberportal/internal/domain"
	applog "memberportal/internal/log"
	"memberportal/internal/metrics"
)

// SessionTTL is fixed from creation; sessions are not extended on use.
const SessionTTL = 24 * time.Hour

type SessionService struct {
	Store SessionStore
	TTL   time.Duration
	Now   func() time.Time
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{Store: store, TTL: SessionTTL, Now: utcNow}
}

// Create persists snap under a fresh random token.
func (s *SessionService) Create(ctx context.Context, snap domain.Snapshot) (domain.Session, error) {
	now := s.Now()
	sess := domain.Session{
		Token:     uuid.NewString(),
		Snapshot:  snap,
		ExpiresAt: now.Add(s.TTL),
	}
	if err := s.Store.Insert(ctx, sess, now); err != nil {
		return domain.Session{}, persistence(err)
	}
	return sess, nil
}

// Read resolves token to a principal. Unknown and expired tokens are
// Anonymous without error; storage failures are Anonymous with an error.
func (s *SessionService) Read(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Anonymous(), nil
	}
	snap, err := s.Store.Get(ctx, token, s.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Anonymous(), nil
	}
	if err != nil {
		return domain.Anonymous(), persistence(err)
	}
	return domain.Authenticated(snap), nil
}

func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Store.Delete(ctx, token); err != nil {
		return persistence(err)
	}
	return nil
}

func (s *SessionService) Prune(ctx context.Context) (int64, error) {
	n, err := s.Store.DeleteExpired(ctx, s.Now())
	if err != nil {
		return 0, persistence(err)
	}
	return n, nil
}

// RunPruner deletes expired sessions every interval until ctx is done.
func (s *SessionService) RunPruner(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Prune(ctx)
			if err != nil {
				applog.Fail("sessions.prune.fail", err, nil)
				continue
			}
			if n > 0 {
				metrics.SessionsPrunedTotal.Add(float64(n))
				applog.Event("sessions.prune", map[string]any{"removed": n})
			}
		}
	}
}
