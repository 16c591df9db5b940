package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
)

// UserServiceInterface is the slice of the user service handlers consume.
type UserServiceInterface interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetBySubject(ctx context.Context, subjectID string) (*model.User, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UserHandlerOptions groups dependencies for UserHandler.
type UserHandlerOptions struct {
	Users  UserServiceInterface
	Logger *slog.Logger
}

// UserHandler serves the account administration endpoints.
type UserHandler struct {
	users  UserServiceInterface
	logger *slog.Logger
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(opts UserHandlerOptions) *UserHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{users: opts.Users, logger: logger}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts := model.UsersListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      optionalQuery(r, "q"),
	}
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, ok := domainauth.ParseRole(raw)
		if !ok {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_role", Err: apperrors.ValidationField("role", "unknown role")})
			return
		}
		opts.Role = &role
	}

	users, err := h.users.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Update handles PATCH /api/users/{id}. Role changes take effect on the
// subject's next request; the gate re-derives the role per request.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.users.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.users.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: apperrors.NotFound("user not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
