package domain

import "strings"

// Bookmark represents a saved link.
type Bookmark struct {
	// ID is the canonical unique identifier.
	// Generated by the store at creation time, never changed afterwards.
	ID string `json:"id"`

	// URL is the saved link. Immutable after creation.
	// Example: https://docs.nestjs.com/
	URL string `json:"url"`

	// Description is a human readable label.
	// The only field mutated after creation.
	Description string `json:"description"`
}

// Filter holds optional substring criteria for Find.
// Empty fields are not checked.
type Filter struct {
	URL         string
	Description string
}

// IsEmpty reports whether no criterion is set.
func (f Filter) IsEmpty() bool {
	return f.URL == "" && f.Description == ""
}

// Matches reports whether b satisfies every non-empty criterion using
// case-insensitive substring containment.
func (f Filter) Matches(b Bookmark) bool {
	if f.URL != "" && !containsFold(b.URL, f.URL) {
		return false
	}
	if f.Description != "" && !containsFold(b.Description, f.Description) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Repository is the record store contract consumed by the HTTP layer.
type Repository interface {
	List() []Bookmark
	Find(f Filter) []Bookmark
	FindByID(id string) (Bookmark, bool)
	Create(url, description string) Bookmark
	Delete(id string) bool
	UpdateDescription(id, description string) (Bookmark, bool)
	Count() int
}
