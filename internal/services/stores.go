package services

import (
	"context"
	"fmt"
	"time"

	"memberportal/internal/domain"
)

// The repos package provides the implementations of these.

type UserStore interface {
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (int64, error)
	UpdatePassword(ctx context.Context, email, hash string) (bool, error)
}

type SessionStore interface {
	Insert(ctx context.Context, s domain.Session, createdAt time.Time) error
	Get(ctx context.Context, token string, now time.Time) (domain.Snapshot, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type MemberStore interface {
	List(ctx context.Context, search string) ([]domain.Member, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (bool, error)
	DeleteCascade(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	Latest(ctx context.Context, limit int) ([]domain.RecentMember, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type PaymentStore interface {
	Replace(ctx context.Context, p domain.Payment) error
	LatestByEmail(ctx context.Context, email string) (domain.Membership, error)
}

func utcNow() time.Time { return time.Now().UTC() }

func persistence(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
