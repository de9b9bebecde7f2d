package services

import (
	"context"
	"time"

	"memberportal/internal/domain"
	"memberportal/internal/validate"
)

const (
	latestMembersLimit = 5
	weekDays           = 7
	dayLabelLayout     = "2006-01-02"
)

type MemberService struct {
	Store MemberStore
	Now   func() time.Time
}

func NewMemberService(store MemberStore) *MemberService {
	return &MemberService{Store: store, Now: utcNow}
}

func (s *MemberService) List(ctx context.Context, search string) ([]domain.Member, error) {
	members, err := s.Store.List(ctx, validate.Search(search))
	if err != nil {
		return nil, persistence(err)
	}
	return members, nil
}

type roleInput struct {
	Role string `json:"role" validate:"required,role"`
}

func (s *MemberService) UpdateRole(ctx context.Context, id int64, role string) error {
	if err := validate.Struct(roleInput{Role: role}); err != nil {
		return err
	}
	ok, err := s.Store.UpdateRole(ctx, id, domain.Role(role))
	if err != nil {
		return persistence(err)
	}
	if !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}

// Delete removes the member together with its sessions.
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	ok, err := s.Store.DeleteCascade(ctx, id)
	if err != nil {
		return persistence(err)
	}
	if !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (s *MemberService) TotalMembers(ctx context.Context) (int, error) {
	n, err := s.Store.Count(ctx)
	if err != nil {
		return 0, persistence(err)
	}
	return n, nil
}

func (s *MemberService) NewMembersToday(ctx context.Context) (int, error) {
	n, err := s.Store.CountSince(ctx, startOfDay(s.Now()))
	if err != nil {
		return 0, persistence(err)
	}
	return n, nil
}

func (s *MemberService) LatestMembers(ctx context.Context) ([]domain.RecentMember, error) {
	out, err := s.Store.Latest(ctx, latestMembersLimit)
	if err != nil {
		return nil, persistence(err)
	}
	return out, nil
}

// MembersWeek counts signups per UTC day for today and the six days before,
// oldest first. Days without signups are reported as zero.
func (s *MemberService) MembersWeek(ctx context.Context) (domain.WeekSeries, error) {
	first := startOfDay(s.Now()).AddDate(0, 0, -(weekDays - 1))
	stamps, err := s.Store.CreatedSince(ctx, first)
	if err != nil {
		return domain.WeekSeries{}, persistence(err)
	}
	series := domain.WeekSeries{
		Labels: make([]string, weekDays),
		Counts: make([]int, weekDays),
	}
	index := make(map[string]int, weekDays)
	for i := 0; i < weekDays; i++ {
		label := first.AddDate(0, 0, i).Format(dayLabelLayout)
		series.Labels[i] = label
		index[label] = i
	}
	for _, ts := range stamps {
		if i, ok := index[ts.UTC().Format(dayLabelLayout)]; ok {
			series.Counts[i]++
		}
	}
	return series, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
