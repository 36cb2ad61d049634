package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hammad983ae/sustaino-sub002/pkg/valuation"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sites (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  payload TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS proposals (
  id TEXT PRIMARY KEY,
  site_id TEXT NOT NULL DEFAULT '',
  payload TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_proposals_site_id ON proposals(site_id)`,
	`CREATE TABLE IF NOT EXISTS valuations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  payload TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
)`,
}

// SQLStore is a Store backed by sqlite3 or postgres. Records are stored as
// JSON payloads keyed by id.
type SQLStore struct {
	db     *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

type row struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	SiteID    string    `db:"site_id"`
	Payload   string    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Open connects to the database and creates the schema if needed.
func Open(logger *zap.Logger, driver, dsn string) (*SQLStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	s := &SQLStore{db: db, logger: logger, now: func() time.Time { return time.Now().UTC() }}
	if err := s.EnsureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("record store opened",
		zap.String("op", "store.Open"),
		zap.String("driver", driver),
	)
	return s, nil
}

// EnsureSchema creates the record tables if they do not exist.
func (s *SQLStore) EnsureSchema() error {
	for _, statement := range schema {
		if _, err := s.db.Exec(statement); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// SaveSite inserts or replaces a site record.
func (s *SQLStore) SaveSite(ctx context.Context, record *SiteRecord) error {
	payload, err := json.Marshal(record.Site)
	if err != nil {
		return fmt.Errorf("failed to encode site: %w", err)
	}

	now := s.now()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	query := s.db.Rebind(`INSERT INTO sites (id, name, payload, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, payload = excluded.payload, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, record.ID, record.Name, string(payload), record.CreatedAt, record.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save site %s: %w", record.ID, err)
	}

	s.logger.Debug("site saved",
		zap.String("op", "store.SaveSite"),
		zap.String("id", record.ID),
	)
	return nil
}

// GetSite returns the site with the given id.
func (s *SQLStore) GetSite(ctx context.Context, id string) (*SiteRecord, error) {
	var r row
	query := s.db.Rebind(`SELECT id, name, payload, created_at, updated_at FROM sites WHERE id = ?`)
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		return nil, notFound("site", id, err)
	}
	return r.site()
}

// ListSites returns all saved sites, oldest first.
func (s *SQLStore) ListSites(ctx context.Context) ([]SiteRecord, error) {
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, name, payload, created_at, updated_at FROM sites ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	sites := make([]SiteRecord, 0, len(rows))
	for _, r := range rows {
		site, err := r.site()
		if err != nil {
			return nil, err
		}
		sites = append(sites, *site)
	}
	return sites, nil
}

// SaveProposal inserts or replaces a proposal record.
func (s *SQLStore) SaveProposal(ctx context.Context, record *ProposalRecord) error {
	payload, err := json.Marshal(record.Proposal)
	if err != nil {
		return fmt.Errorf("failed to encode proposal: %w", err)
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}

	query := s.db.Rebind(`INSERT INTO proposals (id, site_id, payload, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET site_id = excluded.site_id, payload = excluded.payload`)
	if _, err := s.db.ExecContext(ctx, query, record.ID, record.SiteID, string(payload), record.CreatedAt); err != nil {
		return fmt.Errorf("failed to save proposal %s: %w", record.ID, err)
	}

	s.logger.Debug("proposal saved",
		zap.String("op", "store.SaveProposal"),
		zap.String("id", record.ID),
		zap.String("siteId", record.SiteID),
	)
	return nil
}

// GetProposal returns the proposal with the given id.
func (s *SQLStore) GetProposal(ctx context.Context, id string) (*ProposalRecord, error) {
	var r row
	query := s.db.Rebind(`SELECT id, site_id, payload, created_at FROM proposals WHERE id = ?`)
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		return nil, notFound("proposal", id, err)
	}

	record := &ProposalRecord{ID: r.ID, SiteID: r.SiteID, CreatedAt: r.CreatedAt}
	if err := json.Unmarshal([]byte(r.Payload), &record.Proposal); err != nil {
		return nil, fmt.Errorf("failed to decode proposal %s: %w", id, err)
	}
	return record, nil
}

type valuationPayload struct {
	Inputs valuation.Inputs `json:"inputs"`
	Result valuation.Result `json:"result"`
}

// SaveValuation inserts or replaces a valuation record.
func (s *SQLStore) SaveValuation(ctx context.Context, record *ValuationRecord) error {
	payload, err := json.Marshal(valuationPayload{Inputs: record.Inputs, Result: record.Result})
	if err != nil {
		return fmt.Errorf("failed to encode valuation: %w", err)
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}

	query := s.db.Rebind(`INSERT INTO valuations (id, name, payload, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, payload = excluded.payload`)
	if _, err := s.db.ExecContext(ctx, query, record.ID, record.Name, string(payload), record.CreatedAt); err != nil {
		return fmt.Errorf("failed to save valuation %s: %w", record.ID, err)
	}

	s.logger.Debug("valuation saved",
		zap.String("op", "store.SaveValuation"),
		zap.String("id", record.ID),
	)
	return nil
}

// GetValuation returns the valuation with the given id.
func (s *SQLStore) GetValuation(ctx context.Context, id string) (*ValuationRecord, error) {
	var r row
	query := s.db.Rebind(`SELECT id, name, payload, created_at FROM valuations WHERE id = ?`)
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		return nil, notFound("valuation", id, err)
	}

	var payload valuationPayload
	if err := json.Unmarshal([]byte(r.Payload), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode valuation %s: %w", id, err)
	}

	return &ValuationRecord{
		ID:        r.ID,
		Name:      r.Name,
		Inputs:    payload.Inputs,
		Result:    payload.Result,
		CreatedAt: r.CreatedAt,
	}, nil
}

func (r row) site() (*SiteRecord, error) {
	record := &SiteRecord{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
	if err := json.Unmarshal([]byte(r.Payload), &record.Site); err != nil {
		return nil, fmt.Errorf("failed to decode site %s: %w", r.ID, err)
	}
	return record, nil
}

func notFound(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %s: %w", kind, id, err)
}
