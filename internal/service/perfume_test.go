package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aromabase/aromabase/internal/data"
	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
	"github.com/aromabase/aromabase/internal/mocks"
)

type perfumeMocks struct {
	perfumes *mocks.MockPerfumeRepository
	brands   *mocks.MockBrandRepository
	notes    *mocks.MockNoteRepository
}

func newPerfumeService(t *testing.T) (perfumeMocks, *PerfumeService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := perfumeMocks{
		perfumes: mocks.NewMockPerfumeRepository(ctrl),
		brands:   mocks.NewMockBrandRepository(ctrl),
		notes:    mocks.NewMockNoteRepository(ctrl),
	}
	svc := NewPerfumeService(PerfumeServiceOptions{
		PerfumeRepo: m.perfumes,
		BrandRepo:   m.brands,
		NoteRepo:    m.notes,
	})
	return m, svc
}

func createPerfumeRequest() *model.CreatePerfumeRequest {
	return &model.CreatePerfumeRequest{
		Name:          "Ambre Sultan",
		BrandID:       "b1",
		Concentration: model.ConcentrationEauDeParfum,
		TopNoteIDs:    []string{"n1"},
		HeartNoteIDs:  []string{"n2"},
		BaseNoteIDs:   []string{"n3", "n1"},
	}
}

func TestPerfumeService_Create_VerifiesReferences(t *testing.T) {
	t.Parallel()
	m, svc := newPerfumeService(t)

	m.brands.EXPECT().GetByID(gomock.Any(), "b1").Return(&model.Brand{ID: "b1"}, nil)
	m.notes.EXPECT().
		GetByIDs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ids []string) ([]*model.Note, error) {
			// Duplicates across pyramid levels are deduplicated first.
			assert.ElementsMatch(t, []string{"n1", "n2", "n3"}, ids)
			found := make([]*model.Note, len(ids))
			for i, id := range ids {
				found[i] = &model.Note{ID: id}
			}
			return found, nil
		})
	m.perfumes.EXPECT().
		Create(gomock.Any(), gomock.Any(), "u1").
		Return(&model.Perfume{ID: "p1", Status: model.CatalogStatusPending}, nil)

	perfume, err := svc.Create(context.Background(), createPerfumeRequest(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CatalogStatusPending, perfume.Status)
}

func TestPerfumeService_Create_UnknownBrand(t *testing.T) {
	t.Parallel()
	m, svc := newPerfumeService(t)

	m.brands.EXPECT().GetByID(gomock.Any(), "b1").Return(nil, data.ErrBrandNotFound)

	_, err := svc.Create(context.Background(), createPerfumeRequest(), "u1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
	assert.Equal(t, "brand_id", apperrors.GetField(err))
}

func TestPerfumeService_Create_UnknownNote(t *testing.T) {
	t.Parallel()
	m, svc := newPerfumeService(t)

	m.brands.EXPECT().GetByID(gomock.Any(), "b1").Return(&model.Brand{ID: "b1"}, nil)
	m.notes.EXPECT().
		GetByIDs(gomock.Any(), gomock.Any()).
		Return([]*model.Note{{ID: "n1"}}, nil) // n2, n3 missing

	_, err := svc.Create(context.Background(), createPerfumeRequest(), "u1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestPerfumeService_Create_NoNotesSkipsLookup(t *testing.T) {
	t.Parallel()
	m, svc := newPerfumeService(t)

	req := &model.CreatePerfumeRequest{Name: "Ambre Sultan", BrandID: "b1"}
	m.brands.EXPECT().GetByID(gomock.Any(), "b1").Return(&model.Brand{ID: "b1"}, nil)
	m.perfumes.EXPECT().
		Create(gomock.Any(), gomock.Any(), "u1").
		Return(&model.Perfume{ID: "p1"}, nil)

	_, err := svc.Create(context.Background(), req, "u1")
	require.NoError(t, err)
}

func TestPerfumeService_Create_DuplicateEntry(t *testing.T) {
	t.Parallel()
	m, svc := newPerfumeService(t)

	req := &model.CreatePerfumeRequest{Name: "Ambre Sultan", BrandID: "b1"}
	m.brands.EXPECT().GetByID(gomock.Any(), "b1").Return(&model.Brand{ID: "b1"}, nil)
	m.perfumes.EXPECT().Create(gomock.Any(), gomock.Any(), "u1").Return(nil, data.ErrPerfumeExists)

	_, err := svc.Create(context.Background(), req, "u1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
}

func TestPerfumeService_Update_VerifiesBrandOnlyWhenChanged(t *testing.T) {
	t.Parallel()
	m, svc := newPerfumeService(t)

	name := "Chergui"
	m.perfumes.EXPECT().
		Update(gomock.Any(), "p1", gomock.Any()).
		Return(&model.Perfume{ID: "p1", Name: name}, nil)

	// No BrandID in the update: the brand repo must not be consulted.
	_, err := svc.Update(context.Background(), "p1", model.UpdatePerfumeRequest{Name: &name})
	require.NoError(t, err)
}

func TestPerfumeService_Review(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		approve bool
		want    model.CatalogStatus
	}{
		{"approve", true, model.CatalogStatusApproved},
		{"reject", false, model.CatalogStatusRejected},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, svc := newPerfumeService(t)

			m.perfumes.EXPECT().
				SetStatus(gomock.Any(), "p1", tc.want, "u-reviewer").
				Return(&model.Perfume{ID: "p1", Status: tc.want}, nil)

			perfume, err := svc.Review(context.Background(), "p1", tc.approve, "u-reviewer")
			require.NoError(t, err)
			assert.Equal(t, tc.want, perfume.Status)
		})
	}
}

func TestPerfumeService_GetByID_MapsNotFound(t *testing.T) {
	t.Parallel()
	m, svc := newPerfumeService(t)

	m.perfumes.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, data.ErrPerfumeNotFound)

	_, err := svc.GetByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}
