package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberportal/internal/domain"
	"memberportal/internal/repos"
	"memberportal/internal/services"
)

func seedAt(t *testing.T, s *stack, email string, at time.Time) {
	t.Helper()
	_, err := s.DB.Exec(`INSERT INTO users(displayname,surname,email,role,created_at) VALUES(?,?,?,?,?)`,
		"N-"+email, "S", email, "Member", at)
	require.NoError(t, err)
}

func TestDashboardStats(t *testing.T) {
	s := newStack(t)
	now := s.Clock.Now() // 2026-05-20 09:30 UTC
	seedAt(t, s, "today1@x.com", now.Add(-time.Hour))
	seedAt(t, s, "today2@x.com", now.Add(-9*time.Hour))
	seedAt(t, s, "yday@x.com", now.Add(-24*time.Hour))
	seedAt(t, s, "d6@x.com", now.AddDate(0, 0, -6))
	seedAt(t, s, "old@x.com", now.AddDate(0, 0, -8))
	seedAt(t, s, "older@x.com", now.AddDate(0, 0, -30))

	st, err := services.NewDashboardService(s.Members).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, st.TotalMembers)
	assert.Equal(t, 2, st.NewMembersToday)
	require.Len(t, st.LatestMembers, 5)
	assert.Equal(t, "today1@x.com", st.LatestMembers[0].Email)

	assert.Equal(t, []string{
		"2026-05-14", "2026-05-15", "2026-05-16", "2026-05-17", "2026-05-18", "2026-05-19", "2026-05-20",
	}, st.Week.Labels)
	assert.Equal(t, []int{1, 0, 0, 0, 0, 1, 2}, st.Week.Counts)
}

func TestDashboardFailsWhenAnyQueryFails(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("relation users does not exist"))

	members := services.NewMemberService(repos.NewUserRepo(sqlx.NewDb(mockDB, "sqlmock")))
	_, err = services.NewDashboardService(members).Stats(context.Background())
	require.ErrorIs(t, err, domain.ErrPersistence)
}

func TestMemberAdminOperations(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	id := signup(t, s, "m@x.com", "pw")

	require.ErrorIs(t, s.Members.UpdateRole(ctx, id, "Owner"), domain.ErrValidation)
	require.ErrorIs(t, s.Members.UpdateRole(ctx, id+100, "Admin"), domain.ErrAccountNotFound)
	require.NoError(t, s.Members.UpdateRole(ctx, id, "Admin"))

	list, err := s.Members.List(ctx, "  M@X  ")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.RoleAdmin, list[0].Role)

	require.NoError(t, s.Members.Delete(ctx, id))
	require.ErrorIs(t, s.Members.Delete(ctx, id), domain.ErrAccountNotFound)
}
