// Package store persists site, proposal and valuation snapshots so that the
// HTTP API can generate and apply proposals against saved sites.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/hammad983ae/sustaino-sub002/pkg/development"
	"github.com/hammad983ae/sustaino-sub002/pkg/valuation"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// SiteRecord is a saved site.
type SiteRecord struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Site      development.SiteData `json:"site"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// ProposalRecord is a saved proposal, optionally tied to a saved site.
type ProposalRecord struct {
	ID        string               `json:"id"`
	SiteID    string               `json:"siteId,omitempty"`
	Proposal  development.Proposal `json:"proposal"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ValuationRecord is a saved reconciliation with the inputs it was run on.
type ValuationRecord struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Inputs    valuation.Inputs `json:"inputs"`
	Result    valuation.Result `json:"result"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Store is the record collaborator used by the HTTP API. Save methods
// assign an id when the record has none and write it back into the record.
type Store interface {
	SaveSite(ctx context.Context, record *SiteRecord) error
	GetSite(ctx context.Context, id string) (*SiteRecord, error)
	ListSites(ctx context.Context) ([]SiteRecord, error)
	SaveProposal(ctx context.Context, record *ProposalRecord) error
	GetProposal(ctx context.Context, id string) (*ProposalRecord, error)
	SaveValuation(ctx context.Context, record *ValuationRecord) error
	GetValuation(ctx context.Context, id string) (*ValuationRecord, error)
	Close() error
}
