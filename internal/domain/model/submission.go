package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxReviewCommentLen = 2000

// SubmissionKind describes what a submission proposes to change.
type SubmissionKind string

const (
	SubmissionKindNewPerfume  SubmissionKind = "new_perfume"
	SubmissionKindEditPerfume SubmissionKind = "edit_perfume"
	SubmissionKindNewBrand    SubmissionKind = "new_brand"
	SubmissionKindNewNote     SubmissionKind = "new_note"
)

// Valid reports whether the submission kind is supported.
func (k SubmissionKind) Valid() bool {
	switch k {
	case SubmissionKindNewPerfume, SubmissionKindEditPerfume, SubmissionKindNewBrand, SubmissionKindNewNote:
		return true
	default:
		return false
	}
}

// Submission is a contributor-proposed catalog change awaiting team review.
// Payload carries the proposed entity as raw JSON; it is decoded against the
// concrete request type for its kind at review time.
type Submission struct {
	ID            string          `json:"id"                       db:"id"`
	Kind          SubmissionKind  `json:"kind"                     db:"kind"`
	TargetID      *string         `json:"target_id,omitempty"      db:"target_id"`
	Payload       json.RawMessage `json:"payload"                  db:"payload"`
	Status        CatalogStatus   `json:"status"                   db:"status"`
	SubmittedBy   string          `json:"submitted_by"             db:"submitted_by"`
	ReviewedBy    *string         `json:"reviewed_by,omitempty"    db:"reviewed_by"`
	ReviewComment *string         `json:"review_comment,omitempty" db:"review_comment"`
	CreatedAt     time.Time       `json:"created_at"               db:"created_at"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"    db:"reviewed_at"`
}

// SubmissionsListOptions controls paging and filtering for listing submissions.
type SubmissionsListOptions struct {
	Limit       int
	Offset      int
	Status      *CatalogStatus  // exact match
	Kind        *SubmissionKind // exact match
	SubmittedBy *string         // exact match
}

// CreateSubmissionRequest represents parameters to create a Submission.
type CreateSubmissionRequest struct {
	Kind     SubmissionKind  `json:"kind"`
	TargetID *string         `json:"target_id,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// ReviewSubmissionRequest represents a team member's review decision.
type ReviewSubmissionRequest struct {
	Approve bool    `json:"approve"`
	Comment *string `json:"comment,omitempty"`
}

// Validate validates CreateSubmissionRequest. The payload must decode against
// the create-request type for the submission kind.
func (r *CreateSubmissionRequest) Validate() error {
	r.Kind = SubmissionKind(strings.ToLower(strings.TrimSpace(string(r.Kind))))
	if !r.Kind.Valid() {
		return errors.New("invalid submission kind")
	}
	if len(r.Payload) == 0 {
		return errors.New("payload is required")
	}

	switch r.Kind {
	case SubmissionKindNewPerfume:
		var req CreatePerfumeRequest
		if err := decodeStrict(r.Payload, &req); err != nil {
			return err
		}
		return req.Validate()
	case SubmissionKindEditPerfume:
		if r.TargetID == nil || strings.TrimSpace(*r.TargetID) == "" {
			return errors.New("target_id is required for perfume edits")
		}
		var req UpdatePerfumeRequest
		if err := decodeStrict(r.Payload, &req); err != nil {
			return err
		}
		return req.Validate()
	case SubmissionKindNewBrand:
		var req CreateBrandRequest
		if err := decodeStrict(r.Payload, &req); err != nil {
			return err
		}
		return req.Validate()
	case SubmissionKindNewNote:
		var req CreateNoteRequest
		if err := decodeStrict(r.Payload, &req); err != nil {
			return err
		}
		return req.Validate()
	}
	return nil
}

// Validate validates ReviewSubmissionRequest. Rejections require a comment so
// contributors always learn why their proposal was turned down.
func (r *ReviewSubmissionRequest) Validate() error {
	if !r.Approve {
		if r.Comment == nil || strings.TrimSpace(*r.Comment) == "" {
			return errors.New("comment is required when rejecting a submission")
		}
	}
	if r.Comment != nil && utf8.RuneCountInString(*r.Comment) > maxReviewCommentLen {
		return errors.New("comment cannot exceed 2000 characters")
	}
	return nil
}

func decodeStrict(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("payload does not match submission kind")
	}
	return nil
}
