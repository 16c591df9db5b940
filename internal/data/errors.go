package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// User repository sentinels.
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameExists    = errors.New("username already exists")
	ErrUserEmailExists   = errors.New("user email already exists")
	ErrUserSubjectExists = errors.New("user subject already exists")

	// Brand repository sentinels.
	ErrBrandNotFound     = errors.New("brand not found")
	ErrBrandNameExists   = errors.New("brand name already exists")
	ErrBrandDomainExists = errors.New("brand website domain already exists")

	// Note repository sentinels.
	ErrNoteNotFound   = errors.New("note not found")
	ErrNoteNameExists = errors.New("note name already exists")

	// Perfume repository sentinels.
	ErrPerfumeNotFound = errors.New("perfume not found")
	ErrPerfumeExists   = errors.New("perfume already exists for this brand and concentration")
	ErrPerfumeBrandRef = errors.New("perfume references an unknown brand")

	// Submission repository sentinels.
	ErrSubmissionNotFound = errors.New("submission not found")
)
