package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/aromabase/aromabase/internal/core"
	"github.com/aromabase/aromabase/internal/data"
	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
)

// maxUsernameAttempts bounds suffix probing when deriving a free username.
const maxUsernameAttempts = 20

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	UserRepo core.UserRepository
}

// UserService orchestrates platform account management. New accounts get a
// username derived from their display name (or email local part) with a
// numeric suffix appended on collision.
type UserService struct {
	users core.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.UserRepo}
}

// Provision creates an account for a new identity-provider subject. If the
// subject already has an account, that account is returned unchanged.
func (s *UserService) Provision(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid user")
	}

	existing, err := s.users.GetBySubject(ctx, req.SubjectID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, data.ErrUserNotFound) {
		return nil, err
	}

	if req.Username != "" {
		user, createErr := s.users.Create(ctx, req)
		if createErr != nil {
			return nil, mapUserErr(createErr)
		}
		return user, nil
	}
	return s.createWithDerivedUsername(ctx, req)
}

// createWithDerivedUsername slugs the display name (falling back to the email
// local part) and probes numeric suffixes until an insert succeeds.
func (s *UserService) createWithDerivedUsername(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	base := Slugify(req.DisplayName)
	if base == "" {
		local, _, _ := strings.Cut(req.Email, "@")
		base = Slugify(local)
	}
	if base == "" {
		base = "user"
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", base, attempt+1)
		}
		if err := model.ValidateUsername(candidate); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "derived username invalid")
		}

		attemptReq := *req
		attemptReq.Username = candidate
		user, err := s.users.Create(ctx, &attemptReq)
		if err == nil {
			return user, nil
		}
		if errors.Is(err, data.ErrUsernameExists) {
			continue
		}
		return nil, mapUserErr(err)
	}
	return nil, apperrors.Conflictf("could not find a free username for %q", base)
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// GetBySubject retrieves a user by identity-provider subject.
func (s *UserService) GetBySubject(ctx context.Context, subjectID string) (*model.User, error) {
	user, err := s.users.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// List returns users matching the options.
func (s *UserService) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	return s.users.ListWithOptions(ctx, opts)
}

// Update updates mutable fields of a user.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid user update")
	}
	user, err := s.users.Update(ctx, id, req)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// Delete removes a user by ID.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	return s.users.Delete(ctx, id)
}

// Slugify lowercases the input and collapses every non-alphanumeric run into
// a single hyphen, trimming leading and trailing hyphens.
func Slugify(in string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(in)) {
		switch {
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func mapUserErr(err error) error {
	switch {
	case errors.Is(err, data.ErrUserNotFound):
		return apperrors.NotFound("user not found")
	case errors.Is(err, data.ErrUsernameExists):
		return apperrors.Conflict("username already taken")
	case errors.Is(err, data.ErrUserEmailExists):
		return apperrors.Conflict("an account with this email already exists")
	case errors.Is(err, data.ErrUserSubjectExists):
		return apperrors.Conflict("an account for this subject already exists")
	default:
		return err
	}
}
