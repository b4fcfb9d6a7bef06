package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/spillover/internal/shared"
)

// ImportRecord captures one resolved link import: where it came from, the
// search query it produced (empty for catalog-direct links), and how many
// candidates came back.
type ImportRecord struct {
	id          string
	url         string
	platform    string
	searchQuery string
	trackCount  int
	createdAt   time.Time
}

// NewImportRecord builds a record for a completed import.
func NewImportRecord(url, platform, searchQuery string, trackCount int) *ImportRecord {
	return &ImportRecord{
		url:         url,
		platform:    platform,
		searchQuery: searchQuery,
		trackCount:  trackCount,
		createdAt:   time.Now().UTC(),
	}
}

func (r *ImportRecord) ID() string           { return r.id }
func (r *ImportRecord) URL() string          { return r.url }
func (r *ImportRecord) Platform() string     { return r.platform }
func (r *ImportRecord) SearchQuery() string  { return r.searchQuery }
func (r *ImportRecord) TrackCount() int      { return r.trackCount }
func (r *ImportRecord) CreatedAt() time.Time { return r.createdAt }

// SetID assigns the record's identifier. Called by the repository on create.
func (r *ImportRecord) SetID(id string) { r.id = id }

// SetCreatedAt overrides the creation timestamp. Used when hydrating from
// the database.
func (r *ImportRecord) SetCreatedAt(t time.Time) { r.createdAt = t }

// Validate checks the record's required fields.
func (r *ImportRecord) Validate() error {
	if r.url == "" {
		return fmt.Errorf("%w: import url is required", shared.ErrInvalidInput)
	}
	if r.platform == "" {
		return fmt.Errorf("%w: import platform is required", shared.ErrInvalidInput)
	}
	if r.trackCount < 0 {
		return fmt.Errorf("%w: track count cannot be negative", shared.ErrInvalidInput)
	}
	return nil
}
