package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aromabase/aromabase/internal/data"
	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
	"github.com/aromabase/aromabase/internal/mocks"
)

func newUserService(t *testing.T) (*mocks.MockUserRepository, *UserService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockUserRepository(ctrl)
	return repo, NewUserService(UserServiceOptions{UserRepo: repo})
}

func provisionRequest() *model.CreateUserRequest {
	return &model.CreateUserRequest{
		SubjectID:   "auth0|abc123",
		DisplayName: "Ada Lovelace",
		Email:       "ada@example.com",
		Role:        domainauth.RoleContributor,
	}
}

func TestUserService_Provision_ExistingSubjectReturnedUnchanged(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	existing := &model.User{ID: "u1", SubjectID: "auth0|abc123", Username: "ada"}
	repo.EXPECT().GetBySubject(gomock.Any(), "auth0|abc123").Return(existing, nil)

	user, err := svc.Provision(context.Background(), provisionRequest())
	require.NoError(t, err)
	assert.Same(t, existing, user)
}

func TestUserService_Provision_DerivesUsernameFromDisplayName(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	repo.EXPECT().GetBySubject(gomock.Any(), "auth0|abc123").Return(nil, data.ErrUserNotFound)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateUserRequest) (*model.User, error) {
			assert.Equal(t, "ada-lovelace", req.Username)
			return &model.User{ID: "u1", Username: req.Username}, nil
		})

	user, err := svc.Provision(context.Background(), provisionRequest())
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace", user.Username)
}

func TestUserService_Provision_ProbesSuffixOnCollision(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	repo.EXPECT().GetBySubject(gomock.Any(), "auth0|abc123").Return(nil, data.ErrUserNotFound)
	gomock.InOrder(
		repo.EXPECT().Create(gomock.Any(), usernameIs("ada-lovelace")).Return(nil, data.ErrUsernameExists),
		repo.EXPECT().Create(gomock.Any(), usernameIs("ada-lovelace-2")).Return(nil, data.ErrUsernameExists),
		repo.EXPECT().
			Create(gomock.Any(), usernameIs("ada-lovelace-3")).
			Return(&model.User{ID: "u1", Username: "ada-lovelace-3"}, nil),
	)

	user, err := svc.Provision(context.Background(), provisionRequest())
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace-3", user.Username)
}

func TestUserService_Provision_FallsBackToEmailLocalPart(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	req := provisionRequest()
	req.DisplayName = "花子" // slugs to nothing

	repo.EXPECT().GetBySubject(gomock.Any(), "auth0|abc123").Return(nil, data.ErrUserNotFound)
	repo.EXPECT().
		Create(gomock.Any(), usernameIs("ada")).
		Return(&model.User{ID: "u1", Username: "ada"}, nil)

	user, err := svc.Provision(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
}

func TestUserService_Provision_ExplicitUsernameSkipsDerivation(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	req := provisionRequest()
	req.Username = "countess"

	repo.EXPECT().GetBySubject(gomock.Any(), "auth0|abc123").Return(nil, data.ErrUserNotFound)
	repo.EXPECT().
		Create(gomock.Any(), usernameIs("countess")).
		Return(&model.User{ID: "u1", Username: "countess"}, nil)

	user, err := svc.Provision(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "countess", user.Username)
}

func TestUserService_Provision_ExplicitUsernameCollisionIsConflict(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	req := provisionRequest()
	req.Username = "countess"

	repo.EXPECT().GetBySubject(gomock.Any(), "auth0|abc123").Return(nil, data.ErrUserNotFound)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, data.ErrUsernameExists)

	_, err := svc.Provision(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
}

func TestUserService_Provision_InvalidRequest(t *testing.T) {
	t.Parallel()
	_, svc := newUserService(t)

	req := provisionRequest()
	req.Email = "not-an-email"

	_, err := svc.Provision(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))

	_, err = svc.Provision(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestUserService_Update_MapsRepoErrors(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	role := domainauth.RoleTeamMember
	repo.EXPECT().
		Update(gomock.Any(), "u1", gomock.Any()).
		Return(nil, data.ErrUserNotFound)

	_, err := svc.Update(context.Background(), "u1", model.UpdateUserRequest{Role: &role})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestUserService_Update_RejectsEmptyUpdate(t *testing.T) {
	t.Parallel()
	_, svc := newUserService(t)

	_, err := svc.Update(context.Background(), "u1", model.UpdateUserRequest{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestUserService_GetBySubject_MapsNotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newUserService(t)

	repo.EXPECT().GetBySubject(gomock.Any(), "ghost").Return(nil, data.ErrUserNotFound)

	_, err := svc.GetBySubject(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Ada Lovelace", "ada-lovelace"},
		{"  Jean-Claude  Ellena  ", "jean-claude-ellena"},
		{"User_42", "user-42"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Slugify(tc.in), "in=%q", tc.in)
	}
}

// usernameIs matches a CreateUserRequest by its Username field.
func usernameIs(username string) gomock.Matcher {
	return gomock.Cond(func(req *model.CreateUserRequest) bool {
		return req != nil && req.Username == username
	})
}
