package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"memberportal/internal/domain"
)

type DashboardService struct {
	Members *MemberService
}

func NewDashboardService(members *MemberService) *DashboardService {
	return &DashboardService{Members: members}
}

// Stats runs the four dashboard reads concurrently. The first failure
// cancels the others and fails the whole call.
func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	var st domain.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalMembers, err = s.Members.TotalMembers(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.NewMembersToday, err = s.Members.NewMembersToday(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.LatestMembers, err = s.Members.LatestMembers(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.Week, err = s.Members.MembersWeek(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}
	return st, nil
}
