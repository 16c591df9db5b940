package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxNoteNameLen = 100

// NoteFamily is the olfactory family a note belongs to.
type NoteFamily string

const (
	NoteFamilyCitrus   NoteFamily = "citrus"
	NoteFamilyFloral   NoteFamily = "floral"
	NoteFamilyWoody    NoteFamily = "woody"
	NoteFamilyOriental NoteFamily = "oriental"
	NoteFamilyFresh    NoteFamily = "fresh"
	NoteFamilyGourmand NoteFamily = "gourmand"
	NoteFamilyGreen    NoteFamily = "green"
	NoteFamilyAnimalic NoteFamily = "animalic"
)

// Valid reports whether the note family is supported.
func (f NoteFamily) Valid() bool {
	switch f {
	case NoteFamilyCitrus, NoteFamilyFloral, NoteFamilyWoody, NoteFamilyOriental,
		NoteFamilyFresh, NoteFamilyGourmand, NoteFamilyGreen, NoteFamilyAnimalic:
		return true
	default:
		return false
	}
}

// Note represents an olfactory note usable in perfume pyramids.
type Note struct {
	ID        string     `json:"id"         db:"id"`
	Name      string     `json:"name"       db:"name"`
	Family    NoteFamily `json:"family"     db:"family"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// NotesListOptions controls paging and filtering for listing notes.
type NotesListOptions struct {
	Limit  int
	Offset int
	Q      *string     // substring match on name (ILIKE)
	Family *NoteFamily // exact match
}

// CreateNoteRequest represents parameters to create a Note.
type CreateNoteRequest struct {
	Name   string     `json:"name"`
	Family NoteFamily `json:"family"`
}

// UpdateNoteRequest represents parameters to update a Note.
type UpdateNoteRequest struct {
	Name   *string     `json:"name,omitempty"`
	Family *NoteFamily `json:"family,omitempty"`
}

// Validate validates CreateNoteRequest.
func (r *CreateNoteRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNoteNameLen {
		return errors.New("name cannot exceed 100 characters")
	}
	r.Family = NoteFamily(strings.ToLower(strings.TrimSpace(string(r.Family))))
	if !r.Family.Valid() {
		return errors.New("invalid note family")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateNoteRequest.
func (r *UpdateNoteRequest) HasUpdates() bool {
	return r.Name != nil || r.Family != nil
}

// Validate validates UpdateNoteRequest.
func (r *UpdateNoteRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxNoteNameLen {
			return errors.New("name cannot exceed 100 characters")
		}
	}
	if r.Family != nil {
		f := NoteFamily(strings.ToLower(strings.TrimSpace(string(*r.Family))))
		if !f.Valid() {
			return errors.New("invalid note family")
		}
		*r.Family = f
	}
	return nil
}
