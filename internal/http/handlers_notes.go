package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
)

// NoteServiceInterface is the slice of the note service handlers consume.
type NoteServiceInterface interface {
	Create(ctx context.Context, req *model.CreateNoteRequest) (*model.Note, error)
	Update(ctx context.Context, id string, req model.UpdateNoteRequest) (*model.Note, error)
	GetByID(ctx context.Context, id string) (*model.Note, error)
	List(ctx context.Context, opts model.NotesListOptions) ([]*model.Note, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NoteHandlerOptions groups dependencies for NoteHandler.
type NoteHandlerOptions struct {
	Notes  NoteServiceInterface
	Logger *slog.Logger
}

// NoteHandler serves the olfactory note endpoints.
type NoteHandler struct {
	notes  NoteServiceInterface
	logger *slog.Logger
}

// NewNoteHandler constructs a NoteHandler.
func NewNoteHandler(opts NoteHandlerOptions) *NoteHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteHandler{notes: opts.Notes, logger: logger}
}

// List handles GET /api/notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts := model.NotesListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      optionalQuery(r, "q"),
	}
	if raw := r.URL.Query().Get("family"); raw != "" {
		family := model.NoteFamily(raw)
		if !family.Valid() {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_family", Err: apperrors.ValidationField("family", "unknown note family")})
			return
		}
		opts.Family = &family
	}

	notes, err := h.notes.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, notes)
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, note)
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNoteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	note, err := h.notes.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, note)
}

// Update handles PATCH /api/notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateNoteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	note, err := h.notes.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, note)
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.notes.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: apperrors.NotFound("note not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
