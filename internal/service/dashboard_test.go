package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aromabase/aromabase/internal/domain/model"
	"github.com/aromabase/aromabase/internal/mocks"
)

type dashboardMocks struct {
	perfumes    *mocks.MockPerfumeRepository
	submissions *mocks.MockSubmissionRepository
}

func newDashboardService(t *testing.T) (dashboardMocks, *DashboardService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := dashboardMocks{
		perfumes:    mocks.NewMockPerfumeRepository(ctrl),
		submissions: mocks.NewMockSubmissionRepository(ctrl),
	}
	svc := NewDashboardService(DashboardServiceOptions{
		PerfumeRepo:    m.perfumes,
		SubmissionRepo: m.submissions,
	})
	return m, svc
}

func TestDashboardService_Stats(t *testing.T) {
	t.Parallel()
	m, svc := newDashboardService(t)

	m.perfumes.EXPECT().CountByStatus(gomock.Any(), model.CatalogStatusPending).Return(int64(3), nil)
	m.perfumes.EXPECT().CountByStatus(gomock.Any(), model.CatalogStatusApproved).Return(int64(120), nil)
	m.submissions.EXPECT().CountByStatus(gomock.Any(), model.CatalogStatusPending).Return(int64(7), nil)
	m.submissions.EXPECT().CountByStatus(gomock.Any(), model.CatalogStatusApproved).Return(int64(40), nil)
	m.submissions.EXPECT().CountByStatus(gomock.Any(), model.CatalogStatusRejected).Return(int64(5), nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{
		PendingPerfumes:     3,
		ApprovedPerfumes:    120,
		PendingSubmissions:  7,
		ApprovedSubmissions: 40,
		RejectedSubmissions: 5,
	}, stats)
}

func TestDashboardService_Stats_PropagatesFirstError(t *testing.T) {
	t.Parallel()
	m, svc := newDashboardService(t)

	boom := errors.New("db down")
	m.perfumes.EXPECT().
		CountByStatus(gomock.Any(), gomock.Any()).
		Return(int64(0), boom).
		AnyTimes()
	m.submissions.EXPECT().
		CountByStatus(gomock.Any(), gomock.Any()).
		Return(int64(0), boom).
		AnyTimes()

	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestDashboardService_StatsFor(t *testing.T) {
	t.Parallel()
	m, svc := newDashboardService(t)

	m.submissions.EXPECT().
		ListWithOptions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.SubmissionsListOptions) ([]*model.Submission, error) {
			require.NotNil(t, opts.Status)
			require.NotNil(t, opts.SubmittedBy)
			assert.Equal(t, "u1", *opts.SubmittedBy)

			n := map[model.CatalogStatus]int{
				model.CatalogStatusPending:  2,
				model.CatalogStatusApproved: 5,
				model.CatalogStatusRejected: 1,
			}[*opts.Status]
			subs := make([]*model.Submission, n)
			for i := range subs {
				subs[i] = &model.Submission{Status: *opts.Status}
			}
			return subs, nil
		}).
		Times(3)

	stats, err := svc.StatsFor(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &ContributorStats{Pending: 2, Approved: 5, Rejected: 1}, stats)
}
