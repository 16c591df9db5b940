package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
)

// SubmissionServiceInterface is the slice of the submission service handlers consume.
type SubmissionServiceInterface interface {
	Create(ctx context.Context, req *model.CreateSubmissionRequest, submittedBy string) (*model.Submission, error)
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	List(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.Submission, error)
	Review(ctx context.Context, id string, req model.ReviewSubmissionRequest, reviewedBy string) (*model.Submission, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SubmissionHandlerOptions groups dependencies for SubmissionHandler.
type SubmissionHandlerOptions struct {
	Submissions SubmissionServiceInterface
	Users       UserDirectory
	Logger      *slog.Logger
}

// SubmissionHandler serves the community submission endpoints.
type SubmissionHandler struct {
	submissions SubmissionServiceInterface
	users       UserDirectory
	logger      *slog.Logger
}

// NewSubmissionHandler constructs a SubmissionHandler.
func NewSubmissionHandler(opts SubmissionHandlerOptions) *SubmissionHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionHandler{submissions: opts.Submissions, users: opts.Users, logger: logger}
}

// List handles GET /api/submissions.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts := model.SubmissionsListOptions{
		Limit:       limit,
		Offset:      offset,
		SubmittedBy: optionalQuery(r, "submitted_by"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseCatalogStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: apperrors.ValidationField("status", "unknown status")})
			return
		}
		opts.Status = &status
	}
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind := model.SubmissionKind(raw)
		if !kind.Valid() {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_kind", Err: apperrors.ValidationField("kind", "unknown submission kind")})
			return
		}
		opts.Kind = &kind
	}

	subs, err := h.submissions.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, subs)
}

// Get handles GET /api/submissions/{id}.
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.submissions.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, sub)
}

// Create handles POST /api/submissions.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSubmissionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	userID, err := currentUserID(r.Context(), h.users)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	sub, err := h.submissions.Create(r.Context(), &req, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, sub)
}

// Review handles POST /api/submissions/{id}/review.
func (h *SubmissionHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req model.ReviewSubmissionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	userID, err := currentUserID(r.Context(), h.users)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	sub, err := h.submissions.Review(r.Context(), r.PathValue("id"), req, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, sub)
}

// Delete handles DELETE /api/submissions/{id}.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.submissions.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: apperrors.NotFound("submission not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
