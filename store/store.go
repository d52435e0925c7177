// Package store archives finished and in-review reports.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ToroData/ai-radar-linkedin/nlp"
)

// ErrNotFound is returned when no report has the requested ID.
var ErrNotFound = errors.New("report not found")

// Report is one archived run.
type Report struct {
	ID         string              `json:"id"`
	Topic      string              `json:"topic"`
	Title      string              `json:"title"`
	Narrative  string              `json:"narrative"`
	Markdown   string              `json:"markdown"`
	References []string            `json:"references"`
	Entries    []nlp.EnrichedEntry `json:"entries"`
	PageURL    string              `json:"page_url,omitempty"`
	Revisions  int                 `json:"revisions"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// Store defines report persistence operations.
type Store interface {
	// SaveReport inserts or replaces the report with r.ID.
	SaveReport(ctx context.Context, r *Report) error
	GetReport(ctx context.Context, id string) (*Report, error)
	// ListReports returns newest first.
	ListReports(ctx context.Context, offset, limit int) ([]*Report, error)
	Close() error
}
