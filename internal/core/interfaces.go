// Package core defines the repository interfaces the service layer depends
// on. Concrete implementations live in internal/data; mocks are generated
// into internal/mocks.
package core

import (
	"context"

	"github.com/aromabase/aromabase/internal/data"
	"github.com/aromabase/aromabase/internal/domain/model"
)

// UserRepository defines the interface for platform account data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetBySubject(ctx context.Context, subjectID string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListWithOptions(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// BrandRepository defines the interface for brand data operations.
type BrandRepository interface {
	Create(ctx context.Context, params data.CreateBrandParams) (*model.Brand, error)
	GetByID(ctx context.Context, id string) (*model.Brand, error)
	GetByName(ctx context.Context, name string) (*model.Brand, error)
	GetByWebsiteDomain(ctx context.Context, domain string) (*model.Brand, error)
	ListWithOptions(ctx context.Context, opts model.BrandsListOptions) ([]*model.Brand, error)
	Update(ctx context.Context, id string, params data.UpdateBrandParams) (*model.Brand, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NoteRepository defines the interface for olfactory note data operations.
type NoteRepository interface {
	Create(ctx context.Context, req *model.CreateNoteRequest) (*model.Note, error)
	GetByID(ctx context.Context, id string) (*model.Note, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Note, error)
	ListWithOptions(ctx context.Context, opts model.NotesListOptions) ([]*model.Note, error)
	Update(ctx context.Context, id string, req model.UpdateNoteRequest) (*model.Note, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PerfumeRepository defines the interface for perfume catalog data operations.
type PerfumeRepository interface {
	Create(ctx context.Context, req *model.CreatePerfumeRequest, submittedBy string) (*model.Perfume, error)
	GetByID(ctx context.Context, id string) (*model.Perfume, error)
	ListWithOptions(ctx context.Context, opts model.PerfumesListOptions) ([]*model.Perfume, error)
	CountByStatus(ctx context.Context, status model.CatalogStatus) (int64, error)
	Update(ctx context.Context, id string, req model.UpdatePerfumeRequest) (*model.Perfume, error)
	SetStatus(ctx context.Context, id string, status model.CatalogStatus, reviewedBy string) (*model.Perfume, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SubmissionRepository defines the interface for submission data operations.
type SubmissionRepository interface {
	Create(ctx context.Context, req *model.CreateSubmissionRequest, submittedBy string) (*model.Submission, error)
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	ListWithOptions(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.Submission, error)
	CountByStatus(ctx context.Context, status model.CatalogStatus) (int64, error)
	SetReviewOutcome(ctx context.Context, id string, status model.CatalogStatus, reviewedBy string, comment *string) (*model.Submission, error)
	Delete(ctx context.Context, id string) (bool, error)
}
