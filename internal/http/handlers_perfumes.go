package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
	"github.com/aromabase/aromabase/internal/gate"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// PerfumeServiceInterface is the slice of the perfume service handlers consume.
type PerfumeServiceInterface interface {
	Create(ctx context.Context, req *model.CreatePerfumeRequest, submittedBy string) (*model.Perfume, error)
	Update(ctx context.Context, id string, req model.UpdatePerfumeRequest) (*model.Perfume, error)
	GetByID(ctx context.Context, id string) (*model.Perfume, error)
	List(ctx context.Context, opts model.PerfumesListOptions) ([]*model.Perfume, error)
	Review(ctx context.Context, id string, approve bool, reviewedBy string) (*model.Perfume, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UserDirectory resolves the platform account behind a session subject.
type UserDirectory interface {
	GetBySubject(ctx context.Context, subjectID string) (*model.User, error)
}

// PerfumeHandlerOptions groups dependencies for PerfumeHandler.
type PerfumeHandlerOptions struct {
	Perfumes PerfumeServiceInterface
	Users    UserDirectory
	Logger   *slog.Logger
}

// PerfumeHandler serves the perfume catalog endpoints.
type PerfumeHandler struct {
	perfumes PerfumeServiceInterface
	users    UserDirectory
	logger   *slog.Logger
}

// NewPerfumeHandler constructs a PerfumeHandler.
func NewPerfumeHandler(opts PerfumeHandlerOptions) *PerfumeHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PerfumeHandler{perfumes: opts.Perfumes, users: opts.Users, logger: logger}
}

// currentUserID maps the gate session to the platform account ID.
func currentUserID(ctx context.Context, users UserDirectory) (string, error) {
	sess, ok := gate.SessionFromContext(ctx)
	if !ok {
		return "", apperrors.Unauthorized("authentication required")
	}
	user, err := users.GetBySubject(ctx, sess.UserID)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// List handles GET /api/perfumes.
func (h *PerfumeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts := model.PerfumesListOptions{
		Limit:   limit,
		Offset:  offset,
		Q:       optionalQuery(r, "q"),
		BrandID: optionalQuery(r, "brand_id"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseCatalogStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: apperrors.ValidationField("status", "unknown status")})
			return
		}
		opts.Status = &status
	}

	perfumes, err := h.perfumes.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, perfumes)
}

// Get handles GET /api/perfumes/{id}.
func (h *PerfumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	perfume, err := h.perfumes.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, perfume)
}

// Create handles POST /api/perfumes.
func (h *PerfumeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePerfumeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	userID, err := currentUserID(r.Context(), h.users)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	perfume, err := h.perfumes.Create(r.Context(), &req, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, perfume)
}

// Update handles PATCH /api/perfumes/{id}.
func (h *PerfumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdatePerfumeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	perfume, err := h.perfumes.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, perfume)
}

// Review handles POST /api/perfumes/{id}/review.
func (h *PerfumeHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Approve bool `json:"approve"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	userID, err := currentUserID(r.Context(), h.users)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	perfume, err := h.perfumes.Review(r.Context(), r.PathValue("id"), req.Approve, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, perfume)
}

// Delete handles DELETE /api/perfumes/{id}.
func (h *PerfumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.perfumes.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: apperrors.NotFound("perfume not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
