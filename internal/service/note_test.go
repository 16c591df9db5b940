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

func newNoteService(t *testing.T) (*mocks.MockNoteRepository, *NoteService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockNoteRepository(ctrl)
	return repo, NewNoteService(NoteServiceOptions{NoteRepo: repo})
}

func TestNoteService_Create_NormalizesFamily(t *testing.T) {
	t.Parallel()
	repo, svc := newNoteService(t)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateNoteRequest) (*model.Note, error) {
			assert.Equal(t, model.NoteFamilyCitrus, req.Family)
			return &model.Note{ID: "n1", Name: req.Name, Family: req.Family}, nil
		})

	note, err := svc.Create(context.Background(), &model.CreateNoteRequest{
		Name:   "Bergamot",
		Family: " Citrus ",
	})
	require.NoError(t, err)
	assert.Equal(t, model.NoteFamilyCitrus, note.Family)
}

func TestNoteService_Create_InvalidFamily(t *testing.T) {
	t.Parallel()
	_, svc := newNoteService(t)

	_, err := svc.Create(context.Background(), &model.CreateNoteRequest{
		Name:   "Bergamot",
		Family: "metallic",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestNoteService_Create_NameConflictIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	repo, svc := newNoteService(t)

	// Uniqueness is enforced on lower(name), so "ROSE" collides with an
	// existing "Rose" and the repo reports the same sentinel.
	repo.EXPECT().
		Create(gomock.Any(), gomock.Cond(func(req *model.CreateNoteRequest) bool {
			return req.Name == "ROSE"
		})).
		Return(nil, data.ErrNoteNameExists)

	_, err := svc.Create(context.Background(), &model.CreateNoteRequest{
		Name:   "ROSE",
		Family: "floral",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
}

func TestNoteService_Create_NameConflict(t *testing.T) {
	t.Parallel()
	repo, svc := newNoteService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, data.ErrNoteNameExists)

	_, err := svc.Create(context.Background(), &model.CreateNoteRequest{
		Name:   "Bergamot",
		Family: model.NoteFamilyCitrus,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
}

func TestNoteService_VerifyExist(t *testing.T) {
	t.Parallel()
	repo, svc := newNoteService(t)

	repo.EXPECT().
		GetByIDs(gomock.Any(), []string{"n1", "n2", "n1"}).
		Return([]*model.Note{{ID: "n1"}, {ID: "n2"}}, nil)

	assert.NoError(t, svc.VerifyExist(context.Background(), []string{"n1", "n2", "n1"}))
	assert.NoError(t, svc.VerifyExist(context.Background(), nil))
}

func TestNoteService_VerifyExist_MissingNote(t *testing.T) {
	t.Parallel()
	repo, svc := newNoteService(t)

	repo.EXPECT().
		GetByIDs(gomock.Any(), []string{"n1", "ghost"}).
		Return([]*model.Note{{ID: "n1"}}, nil)

	err := svc.VerifyExist(context.Background(), []string{"n1", "ghost"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestNoteService_GetByID_MapsNotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newNoteService(t)

	repo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, data.ErrNoteNotFound)

	_, err := svc.GetByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}
