//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxPerfumeNameLen = 255
	minReleaseYear    = 1700
)

// CatalogStatus tracks an entry through the community review workflow.
type CatalogStatus string

const (
	CatalogStatusPending  CatalogStatus = "pending"
	CatalogStatusApproved CatalogStatus = "approved"
	CatalogStatusRejected CatalogStatus = "rejected"
)

// Valid reports whether the catalog status is supported.
func (s CatalogStatus) Valid() bool {
	switch s {
	case CatalogStatusPending, CatalogStatusApproved, CatalogStatusRejected:
		return true
	default:
		return false
	}
}

// ParseCatalogStatus normalizes a status string and reports whether it is supported.
func ParseCatalogStatus(value string) (CatalogStatus, bool) {
	s := CatalogStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// Concentration is the fragrance strength classification.
type Concentration string

const (
	ConcentrationParfum        Concentration = "parfum"
	ConcentrationEauDeParfum   Concentration = "eau_de_parfum"
	ConcentrationEauDeToilette Concentration = "eau_de_toilette"
	ConcentrationEauDeCologne  Concentration = "eau_de_cologne"
	ConcentrationEauFraiche    Concentration = "eau_fraiche"
)

// Valid reports whether the concentration is supported.
func (c Concentration) Valid() bool {
	switch c {
	case ConcentrationParfum, ConcentrationEauDeParfum, ConcentrationEauDeToilette,
		ConcentrationEauDeCologne, ConcentrationEauFraiche:
		return true
	default:
		return false
	}
}

// Perfume represents a catalog perfume entry.
type Perfume struct {
	ID            string        `json:"id"                       db:"id"`
	Name          string        `json:"name"                     db:"name"`
	BrandID       string        `json:"brand_id"                 db:"brand_id"`
	Concentration Concentration `json:"concentration"            db:"concentration"`
	ReleaseYear   *int          `json:"release_year,omitempty"   db:"release_year"`
	TopNoteIDs    []string      `json:"top_note_ids,omitempty"   db:"top_note_ids"`
	HeartNoteIDs  []string      `json:"heart_note_ids,omitempty" db:"heart_note_ids"`
	BaseNoteIDs   []string      `json:"base_note_ids,omitempty"  db:"base_note_ids"`
	Status        CatalogStatus `json:"status"                   db:"status"`
	SubmittedBy   string        `json:"submitted_by"             db:"submitted_by"`
	ReviewedBy    *string       `json:"reviewed_by,omitempty"    db:"reviewed_by"`
	CreatedAt     time.Time     `json:"created_at"               db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"               db:"updated_at"`
}

// PerfumesListOptions controls paging and filtering for listing perfumes.
type PerfumesListOptions struct {
	Limit   int
	Offset  int
	Q       *string        // substring match on name (ILIKE)
	BrandID *string        // exact match
	Status  *CatalogStatus // exact match
}

// CreatePerfumeRequest represents parameters to create a Perfume.
type CreatePerfumeRequest struct {
	Name          string        `json:"name"`
	BrandID       string        `json:"brand_id"`
	Concentration Concentration `json:"concentration"`
	ReleaseYear   *int          `json:"release_year,omitempty"`
	TopNoteIDs    []string      `json:"top_note_ids,omitempty"`
	HeartNoteIDs  []string      `json:"heart_note_ids,omitempty"`
	BaseNoteIDs   []string      `json:"base_note_ids,omitempty"`
}

// UpdatePerfumeRequest represents parameters to update a Perfume.
type UpdatePerfumeRequest struct {
	Name          *string        `json:"name,omitempty"`
	BrandID       *string        `json:"brand_id,omitempty"`
	Concentration *Concentration `json:"concentration,omitempty"`
	ReleaseYear   *int           `json:"release_year,omitempty"`
	TopNoteIDs    []string       `json:"top_note_ids,omitempty"`
	HeartNoteIDs  []string       `json:"heart_note_ids,omitempty"`
	BaseNoteIDs   []string       `json:"base_note_ids,omitempty"`
}

// Validate validates CreatePerfumeRequest.
func (r *CreatePerfumeRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxPerfumeNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.BrandID) == "" {
		return errors.New("brand_id is required")
	}
	r.Concentration = Concentration(strings.ToLower(strings.TrimSpace(string(r.Concentration))))
	if r.Concentration == "" {
		r.Concentration = ConcentrationEauDeParfum
	}
	if !r.Concentration.Valid() {
		return errors.New("invalid concentration")
	}
	if r.ReleaseYear != nil {
		if err := validateReleaseYear(*r.ReleaseYear); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdatePerfumeRequest.
func (r *UpdatePerfumeRequest) HasUpdates() bool {
	return r.Name != nil || r.BrandID != nil || r.Concentration != nil || r.ReleaseYear != nil ||
		r.TopNoteIDs != nil || r.HeartNoteIDs != nil || r.BaseNoteIDs != nil
}

// Validate validates UpdatePerfumeRequest, ensuring at least one field is set and values are sane.
func (r *UpdatePerfumeRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxPerfumeNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.BrandID != nil && strings.TrimSpace(*r.BrandID) == "" {
		return errors.New("brand_id cannot be empty")
	}
	if r.Concentration != nil {
		c := Concentration(strings.ToLower(strings.TrimSpace(string(*r.Concentration))))
		if !c.Valid() {
			return errors.New("invalid concentration")
		}
		*r.Concentration = c
	}
	if r.ReleaseYear != nil {
		if err := validateReleaseYear(*r.ReleaseYear); err != nil {
			return err
		}
	}
	return nil
}

func validateReleaseYear(year int) error {
	if year < minReleaseYear || year > time.Now().Year()+1 {
		return errors.New("release_year must be between 1700 and next year")
	}
	return nil
}
