package service

import (
	"context"
	"errors"

	"github.com/aromabase/aromabase/internal/core"
	"github.com/aromabase/aromabase/internal/data"
	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
)

// NoteServiceOptions groups dependencies for NoteService.
type NoteServiceOptions struct {
	NoteRepo core.NoteRepository
}

// NoteService orchestrates olfactory note CRUD.
type NoteService struct {
	notes core.NoteRepository
}

// NewNoteService constructs a new NoteService.
func NewNoteService(opts NoteServiceOptions) *NoteService {
	return &NoteService{notes: opts.NoteRepo}
}

// Create creates a note.
func (s *NoteService) Create(ctx context.Context, req *model.CreateNoteRequest) (*model.Note, error) {
	if req == nil {
		return nil, apperrors.Validation("create note request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid note")
	}
	note, err := s.notes.Create(ctx, req)
	if err != nil {
		return nil, mapNoteErr(err)
	}
	return note, nil
}

// Update updates a note.
func (s *NoteService) Update(ctx context.Context, id string, req model.UpdateNoteRequest) (*model.Note, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid note update")
	}
	note, err := s.notes.Update(ctx, id, req)
	if err != nil {
		return nil, mapNoteErr(err)
	}
	return note, nil
}

// GetByID retrieves a note by ID.
func (s *NoteService) GetByID(ctx context.Context, id string) (*model.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoteErr(err)
	}
	return note, nil
}

// List returns notes matching the options.
func (s *NoteService) List(ctx context.Context, opts model.NotesListOptions) ([]*model.Note, error) {
	return s.notes.ListWithOptions(ctx, opts)
}

// Delete removes a note by ID.
func (s *NoteService) Delete(ctx context.Context, id string) (bool, error) {
	return s.notes.Delete(ctx, id)
}

// VerifyExist checks that every given note ID refers to an existing note.
func (s *NoteService) VerifyExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.notes.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(uniqueStrings(ids)) {
		return apperrors.Validation("one or more notes do not exist")
	}
	return nil
}

func uniqueStrings(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func mapNoteErr(err error) error {
	switch {
	case errors.Is(err, data.ErrNoteNotFound):
		return apperrors.NotFound("note not found")
	case errors.Is(err, data.ErrNoteNameExists):
		return apperrors.Conflict("a note with this name already exists")
	default:
		return err
	}
}
