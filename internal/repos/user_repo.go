package repos

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"memberportal/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `userid,displayname,surname,email,phone,password,role,created_at`

// ByEmail matches the email exactly as stored. A missing row is sql.ErrNoRows.
func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT `+userCols+` FROM users WHERE email=?`), email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts u and returns its id. A unique-constraint hit on email is
// reported as domain.ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(`
		INSERT INTO users(displayname, surname, email, phone, password, role, created_at)
		VALUES(?,?,?,?,?,?,?)
		RETURNING userid`),
		u.DisplayName, u.Surname, u.Email, u.Phone, u.Password, u.Role, u.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, email, hash string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE users SET password=? WHERE email=?`), hash, email)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role domain.Role) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE users SET role=? WHERE userid=?`), role, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteCascade removes the user and every session issued to it.
func (r *UserRepo) DeleteCascade(ctx context.Context, id int64) (bool, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM sessions WHERE user_id=?`), id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM users WHERE userid=?`), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	return true, tx.Commit()
}

// List returns members whose display name or email contains search,
// ignoring case. An empty search lists everyone.
func (r *UserRepo) List(ctx context.Context, search string) ([]domain.Member, error) {
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	lower := foldFunc(r.DB)
	members := []domain.Member{}
	err := r.DB.SelectContext(ctx, &members, r.DB.Rebind(`
		SELECT userid AS id, displayname, surname, email, phone, role, created_at
		FROM users
		WHERE `+lower+`(displayname) LIKE ? ESCAPE '\' OR `+lower+`(email) LIKE ? ESCAPE '\'
		ORDER BY userid ASC`), pattern, pattern)
	return members, err
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, err
}

func (r *UserRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, r.DB.Rebind(`SELECT COUNT(*) FROM users WHERE created_at >= ?`), since.UTC())
	return n, err
}

func (r *UserRepo) Latest(ctx context.Context, limit int) ([]domain.RecentMember, error) {
	out := []domain.RecentMember{}
	err := r.DB.SelectContext(ctx, &out, r.DB.Rebind(`
		SELECT displayname, surname, email, created_at
		FROM users
		ORDER BY created_at DESC, userid DESC
		LIMIT ?`), limit)
	return out, err
}

// CreatedSince returns the creation times of users created at or after since.
func (r *UserRepo) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var ts []time.Time
	err := r.DB.SelectContext(ctx, &ts, r.DB.Rebind(`
		SELECT created_at FROM users WHERE created_at >= ? ORDER BY created_at`), since.UTC())
	return ts, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
