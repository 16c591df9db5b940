package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aromabase/aromabase/internal/core"
	"github.com/aromabase/aromabase/internal/domain/model"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	PerfumeRepo    core.PerfumeRepository
	SubmissionRepo core.SubmissionRepository
}

// DashboardService aggregates the counts shown on the landing dashboards.
type DashboardService struct {
	perfumes    core.PerfumeRepository
	submissions core.SubmissionRepository
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	return &DashboardService{
		perfumes:    opts.PerfumeRepo,
		submissions: opts.SubmissionRepo,
	}
}

// DashboardStats holds the aggregate counts for the admin dashboard.
type DashboardStats struct {
	PendingPerfumes     int64 `json:"pending_perfumes"`
	ApprovedPerfumes    int64 `json:"approved_perfumes"`
	PendingSubmissions  int64 `json:"pending_submissions"`
	ApprovedSubmissions int64 `json:"approved_submissions"`
	RejectedSubmissions int64 `json:"rejected_submissions"`
}

// Stats gathers the dashboard counts; the independent queries run in parallel.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.perfumes.CountByStatus(gctx, model.CatalogStatusPending)
		stats.PendingPerfumes = n
		return err
	})
	g.Go(func() error {
		n, err := s.perfumes.CountByStatus(gctx, model.CatalogStatusApproved)
		stats.ApprovedPerfumes = n
		return err
	})
	g.Go(func() error {
		n, err := s.submissions.CountByStatus(gctx, model.CatalogStatusPending)
		stats.PendingSubmissions = n
		return err
	})
	g.Go(func() error {
		n, err := s.submissions.CountByStatus(gctx, model.CatalogStatusApproved)
		stats.ApprovedSubmissions = n
		return err
	})
	g.Go(func() error {
		n, err := s.submissions.CountByStatus(gctx, model.CatalogStatusRejected)
		stats.RejectedSubmissions = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ContributorStats holds the counts shown on a contributor's dashboard.
type ContributorStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// StatsFor gathers per-contributor submission counts.
func (s *DashboardService) StatsFor(ctx context.Context, userID string) (*ContributorStats, error) {
	var stats ContributorStats

	count := func(status model.CatalogStatus, dst *int64) func() error {
		return func() error {
			subs, err := s.submissions.ListWithOptions(ctx, model.SubmissionsListOptions{
				Limit:       1000,
				Status:      &status,
				SubmittedBy: &userID,
			})
			if err != nil {
				return err
			}
			*dst = int64(len(subs))
			return nil
		}
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(count(model.CatalogStatusPending, &stats.Pending))
	g.Go(count(model.CatalogStatusApproved, &stats.Approved))
	g.Go(count(model.CatalogStatusRejected, &stats.Rejected))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
