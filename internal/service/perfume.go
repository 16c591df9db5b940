package service

import (
	"context"
	"errors"

	"github.com/aromabase/aromabase/internal/core"
	"github.com/aromabase/aromabase/internal/data"
	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
)

// PerfumeServiceOptions groups dependencies for PerfumeService.
type PerfumeServiceOptions struct {
	PerfumeRepo core.PerfumeRepository
	BrandRepo   core.BrandRepository
	NoteRepo    core.NoteRepository
}

// PerfumeService orchestrates perfume catalog entries. Creation verifies
// brand and note references so dangling pyramids never reach the catalog.
type PerfumeService struct {
	perfumes core.PerfumeRepository
	brands   core.BrandRepository
	notes    core.NoteRepository
}

// NewPerfumeService constructs a new PerfumeService.
func NewPerfumeService(opts PerfumeServiceOptions) *PerfumeService {
	return &PerfumeService{
		perfumes: opts.PerfumeRepo,
		brands:   opts.BrandRepo,
		notes:    opts.NoteRepo,
	}
}

// Create creates a perfume entry in pending status for the submitting user.
func (s *PerfumeService) Create(ctx context.Context, req *model.CreatePerfumeRequest, submittedBy string) (*model.Perfume, error) {
	if req == nil {
		return nil, apperrors.Validation("create perfume request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid perfume")
	}

	if _, err := s.brands.GetByID(ctx, req.BrandID); err != nil {
		if errors.Is(err, data.ErrBrandNotFound) {
			return nil, apperrors.ValidationField("brand_id", "brand does not exist")
		}
		return nil, err
	}
	if err := s.verifyNotes(ctx, req.TopNoteIDs, req.HeartNoteIDs, req.BaseNoteIDs); err != nil {
		return nil, err
	}

	perfume, err := s.perfumes.Create(ctx, req, submittedBy)
	if err != nil {
		return nil, mapPerfumeErr(err)
	}
	return perfume, nil
}

// Update updates a perfume entry.
func (s *PerfumeService) Update(ctx context.Context, id string, req model.UpdatePerfumeRequest) (*model.Perfume, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid perfume update")
	}
	if req.BrandID != nil {
		if _, err := s.brands.GetByID(ctx, *req.BrandID); err != nil {
			if errors.Is(err, data.ErrBrandNotFound) {
				return nil, apperrors.ValidationField("brand_id", "brand does not exist")
			}
			return nil, err
		}
	}
	if err := s.verifyNotes(ctx, req.TopNoteIDs, req.HeartNoteIDs, req.BaseNoteIDs); err != nil {
		return nil, err
	}

	perfume, err := s.perfumes.Update(ctx, id, req)
	if err != nil {
		return nil, mapPerfumeErr(err)
	}
	return perfume, nil
}

// GetByID retrieves a perfume by ID.
func (s *PerfumeService) GetByID(ctx context.Context, id string) (*model.Perfume, error) {
	perfume, err := s.perfumes.GetByID(ctx, id)
	if err != nil {
		return nil, mapPerfumeErr(err)
	}
	return perfume, nil
}

// List returns perfumes matching the options.
func (s *PerfumeService) List(ctx context.Context, opts model.PerfumesListOptions) ([]*model.Perfume, error) {
	return s.perfumes.ListWithOptions(ctx, opts)
}

// Review transitions a perfume's status as part of the team review workflow.
func (s *PerfumeService) Review(ctx context.Context, id string, approve bool, reviewedBy string) (*model.Perfume, error) {
	status := model.CatalogStatusApproved
	if !approve {
		status = model.CatalogStatusRejected
	}
	perfume, err := s.perfumes.SetStatus(ctx, id, status, reviewedBy)
	if err != nil {
		return nil, mapPerfumeErr(err)
	}
	return perfume, nil
}

// Delete removes a perfume by ID.
func (s *PerfumeService) Delete(ctx context.Context, id string) (bool, error) {
	return s.perfumes.Delete(ctx, id)
}

// verifyNotes checks that every referenced note across all pyramid levels exists.
func (s *PerfumeService) verifyNotes(ctx context.Context, levels ...[]string) error {
	var all []string
	for _, level := range levels {
		all = append(all, level...)
	}
	if len(all) == 0 {
		return nil
	}
	unique := uniqueStrings(all)
	found, err := s.notes.GetByIDs(ctx, unique)
	if err != nil {
		return err
	}
	if len(found) != len(unique) {
		return apperrors.Validation("one or more pyramid notes do not exist")
	}
	return nil
}

func mapPerfumeErr(err error) error {
	switch {
	case errors.Is(err, data.ErrPerfumeNotFound):
		return apperrors.NotFound("perfume not found")
	case errors.Is(err, data.ErrPerfumeExists):
		return apperrors.Conflict("this perfume already exists for the brand and concentration")
	case errors.Is(err, data.ErrPerfumeBrandRef):
		return apperrors.ValidationField("brand_id", "brand does not exist")
	default:
		return err
	}
}
