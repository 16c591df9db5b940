package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aromabase/aromabase/internal/core"
	"github.com/aromabase/aromabase/internal/data"
	"github.com/aromabase/aromabase/internal/domain/model"
	apperrors "github.com/aromabase/aromabase/internal/errors"
)

// SubmissionServiceOptions groups dependencies for SubmissionService.
type SubmissionServiceOptions struct {
	SubmissionRepo core.SubmissionRepository
	PerfumeRepo    core.PerfumeRepository
	BrandRepo      core.BrandRepository
	NoteRepo       core.NoteRepository
}

// SubmissionService runs the community review workflow: contributors propose
// catalog changes, team members approve or reject them. Approval applies the
// proposed change to the catalog before the submission is marked decided.
type SubmissionService struct {
	submissions core.SubmissionRepository
	perfumes    core.PerfumeRepository
	brands      core.BrandRepository
	notes       core.NoteRepository
}

// NewSubmissionService constructs a new SubmissionService.
func NewSubmissionService(opts SubmissionServiceOptions) *SubmissionService {
	return &SubmissionService{
		submissions: opts.SubmissionRepo,
		perfumes:    opts.PerfumeRepo,
		brands:      opts.BrandRepo,
		notes:       opts.NoteRepo,
	}
}

// Create records a new pending submission for the given contributor.
func (s *SubmissionService) Create(ctx context.Context, req *model.CreateSubmissionRequest, submittedBy string) (*model.Submission, error) {
	if req == nil {
		return nil, apperrors.Validation("create submission request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid submission")
	}
	if submittedBy == "" {
		return nil, apperrors.Unauthorized("submitting user is required")
	}
	return s.submissions.Create(ctx, req, submittedBy)
}

// GetByID retrieves a submission by ID.
func (s *SubmissionService) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, mapSubmissionErr(err)
	}
	return sub, nil
}

// List returns submissions matching the options.
func (s *SubmissionService) List(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.Submission, error) {
	return s.submissions.ListWithOptions(ctx, opts)
}

// Review decides a pending submission. On approval the proposed change is
// applied to the catalog first; if applying fails the submission stays
// pending so the reviewer can retry after the underlying issue is fixed.
func (s *SubmissionService) Review(ctx context.Context, id string, req model.ReviewSubmissionRequest, reviewedBy string) (*model.Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid review")
	}
	if reviewedBy == "" {
		return nil, apperrors.Unauthorized("reviewing user is required")
	}

	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, mapSubmissionErr(err)
	}
	if sub.Status != model.CatalogStatusPending {
		return nil, apperrors.Conflict("submission has already been reviewed")
	}

	if req.Approve {
		if applyErr := s.apply(ctx, sub, reviewedBy); applyErr != nil {
			return nil, applyErr
		}
	}

	status := model.CatalogStatusApproved
	if !req.Approve {
		status = model.CatalogStatusRejected
	}
	decided, err := s.submissions.SetReviewOutcome(ctx, id, status, reviewedBy, req.Comment)
	if err != nil {
		return nil, mapSubmissionErr(err)
	}
	return decided, nil
}

// Delete removes a submission by ID.
func (s *SubmissionService) Delete(ctx context.Context, id string) (bool, error) {
	return s.submissions.Delete(ctx, id)
}

// apply materializes an approved submission's payload into the catalog.
func (s *SubmissionService) apply(ctx context.Context, sub *model.Submission, reviewedBy string) error {
	switch sub.Kind {
	case model.SubmissionKindNewPerfume:
		var req model.CreatePerfumeRequest
		if err := json.Unmarshal(sub.Payload, &req); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeValidation, "decode perfume payload")
		}
		created, err := s.perfumes.Create(ctx, &req, sub.SubmittedBy)
		if err != nil {
			return fmt.Errorf("apply new perfume: %w", mapPerfumeErr(err))
		}
		// An approved community entry goes straight to approved status.
		if _, err := s.perfumes.SetStatus(ctx, created.ID, model.CatalogStatusApproved, reviewedBy); err != nil {
			return fmt.Errorf("approve applied perfume: %w", mapPerfumeErr(err))
		}
		return nil

	case model.SubmissionKindEditPerfume:
		if sub.TargetID == nil {
			return apperrors.Validation("edit submission has no target")
		}
		var req model.UpdatePerfumeRequest
		if err := json.Unmarshal(sub.Payload, &req); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeValidation, "decode perfume edit payload")
		}
		if _, err := s.perfumes.Update(ctx, *sub.TargetID, req); err != nil {
			return fmt.Errorf("apply perfume edit: %w", mapPerfumeErr(err))
		}
		return nil

	case model.SubmissionKindNewBrand:
		var req model.CreateBrandRequest
		if err := json.Unmarshal(sub.Payload, &req); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeValidation, "decode brand payload")
		}
		domain, err := websiteDomain(req.Website)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid website")
		}
		if _, err := s.brands.Create(ctx, data.CreateBrandParams{Req: &req, WebsiteDomain: domain}); err != nil {
			return fmt.Errorf("apply new brand: %w", mapBrandErr(err))
		}
		return nil

	case model.SubmissionKindNewNote:
		var req model.CreateNoteRequest
		if err := json.Unmarshal(sub.Payload, &req); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeValidation, "decode note payload")
		}
		if _, err := s.notes.Create(ctx, &req); err != nil {
			return fmt.Errorf("apply new note: %w", mapNoteErr(err))
		}
		return nil
	}
	return apperrors.Validationf("unsupported submission kind %q", sub.Kind)
}

func mapSubmissionErr(err error) error {
	if errors.Is(err, data.ErrSubmissionNotFound) {
		return apperrors.NotFound("submission not found")
	}
	return err
}
