package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const maxBrandNameLen = 255

// Brand represents a perfume house in the catalog.
// WebsiteDomain is the registrable domain derived from Website and is unique
// across brands; it is computed server-side, never client-supplied.
type Brand struct {
	ID            string    `json:"id"                       db:"id"`
	Name          string    `json:"name"                     db:"name"`
	Country       *string   `json:"country,omitempty"        db:"country"`
	FoundedYear   *int      `json:"founded_year,omitempty"   db:"founded_year"`
	Website       *string   `json:"website,omitempty"        db:"website"`
	WebsiteDomain *string   `json:"website_domain,omitempty" db:"website_domain"`
	CreatedAt     time.Time `json:"created_at"               db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"               db:"updated_at"`
}

// BrandsListOptions controls paging and filtering for listing brands.
type BrandsListOptions struct {
	Limit  int
	Offset int
	Q      *string // substring match on name (ILIKE)
}

// CreateBrandRequest represents parameters to create a Brand.
type CreateBrandRequest struct {
	Name        string  `json:"name"`
	Country     *string `json:"country,omitempty"`
	FoundedYear *int    `json:"founded_year,omitempty"`
	Website     *string `json:"website,omitempty"`
}

// UpdateBrandRequest represents parameters to update a Brand.
type UpdateBrandRequest struct {
	Name        *string `json:"name,omitempty"`
	Country     *string `json:"country,omitempty"`
	FoundedYear *int    `json:"founded_year,omitempty"`
	Website     *string `json:"website,omitempty"`
}

// Validate validates CreateBrandRequest.
func (r *CreateBrandRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxBrandNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if r.FoundedYear != nil {
		if err := validateFoundedYear(*r.FoundedYear); err != nil {
			return err
		}
	}
	if r.Website != nil {
		if err := validateWebsite(*r.Website); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateBrandRequest.
func (r *UpdateBrandRequest) HasUpdates() bool {
	return r.Name != nil || r.Country != nil || r.FoundedYear != nil || r.Website != nil
}

// Validate validates UpdateBrandRequest.
func (r *UpdateBrandRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxBrandNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.FoundedYear != nil {
		if err := validateFoundedYear(*r.FoundedYear); err != nil {
			return err
		}
	}
	if r.Website != nil {
		if err := validateWebsite(*r.Website); err != nil {
			return err
		}
	}
	return nil
}

func validateFoundedYear(year int) error {
	if year < 1000 || year > time.Now().Year() {
		return errors.New("founded_year must be between 1000 and the current year")
	}
	return nil
}

func validateWebsite(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("website cannot be empty when provided")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.New("website must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("website must use http or https")
	}
	if u.Hostname() == "" {
		return errors.New("website must include a host")
	}
	return nil
}
