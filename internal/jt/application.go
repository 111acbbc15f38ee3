package jt

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date stored in the application row.
const DateLayout = "2006-01-02"

// Application is one job application and its stage track.
//
// Stages is ordered; the index is authoritative for progress. CurrentStage
// is the index of the last completed stage, -1 when nothing is completed.
type Application struct {
	ID        string
	OwnerID   string
	Company   string
	CompanyID string
	ContactID string
	Position  string
	Notes     string
	URL       string
	Date      time.Time

	Favorite   bool
	IsArchived bool
	IsDeleted  bool

	Stages       []Stage
	CurrentStage int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by reads only.
	CompanySummary *CompanySummary
	ContactSummary *ContactSummary
}

// Stage is one step of an application's pipeline.
type Stage struct {
	ID        string
	Name      string
	Icon      string
	Position  int
	Note      string
	IsActive  bool
	IsDeleted bool
}

// CompanySummary is the slice of a company shown next to an application.
type CompanySummary struct {
	Name    string
	Website string
}

// ContactSummary is the slice of a contact shown next to an application.
type ContactSummary struct {
	Name  string
	Email string
}

// Company is a user-owned employer record.
type Company struct {
	ID        string
	OwnerID   string
	Name      string
	Phone     string
	Email     string
	Website   string
	Notes     string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contact is a user-owned person record.
type Contact struct {
	ID        string
	OwnerID   string
	Name      string
	Phone     string
	Email     string
	Position  string
	Notes     string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter selects which applications ListByUser returns.
type ListFilter string

const (
	FilterActive   ListFilter = "active"
	FilterFavorite ListFilter = "favorite"
	FilterArchived ListFilter = "archived"
)

// ParseListFilter accepts "active", "favorite" or "archived". The empty
// string means active.
func ParseListFilter(s string) (ListFilter, error) {
	switch ListFilter(s) {
	case "", FilterActive:
		return FilterActive, nil
	case FilterFavorite, FilterArchived:
		return ListFilter(s), nil
	default:
		return "", fmt.Errorf("unknown filter %q (want active, favorite or archived)", s)
	}
}

// Clone returns a deep copy, so a caller can restore it if persisting a
// mutation fails.
func (a *Application) Clone() *Application {
	c := *a
	if a.Stages != nil {
		c.Stages = make([]Stage, len(a.Stages))
		copy(c.Stages, a.Stages)
	}
	if a.CompanySummary != nil {
		cs := *a.CompanySummary
		c.CompanySummary = &cs
	}
	if a.ContactSummary != nil {
		cs := *a.ContactSummary
		c.ContactSummary = &cs
	}
	return &c
}
