package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"memberportal/internal/domain"
)

type SessionRepo struct{ DB *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{DB: db} }

func (r *SessionRepo) Insert(ctx context.Context, s domain.Session, createdAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO sessions(token, user_id, email, role, displayname, surname, created_at, expires_at)
		VALUES(?,?,?,?,?,?,?,?)`),
		s.Token, s.Snapshot.ID, s.Snapshot.Email, s.Snapshot.Role,
		s.Snapshot.DisplayName, s.Snapshot.Surname, createdAt.UTC(), s.ExpiresAt.UTC())
	return err
}

// Get returns the snapshot stored under token. Missing and expired sessions
// both yield sql.ErrNoRows.
func (r *SessionRepo) Get(ctx context.Context, token string, now time.Time) (domain.Snapshot, error) {
	var s domain.Snapshot
	err := r.DB.GetContext(ctx, &s, r.DB.Rebind(`
		SELECT user_id, email, role, displayname, surname
		FROM sessions
		WHERE token=? AND expires_at > ?`), token, now.UTC())
	return s, err
}

func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM sessions WHERE token=?`), token)
	return err
}

func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM sessions WHERE expires_at <= ?`), now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
