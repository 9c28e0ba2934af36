package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/leadscout/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the metadata
// store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.leadscout/data/leads.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".leadscout", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "leads.db")

	// WAL mode lets the TUI read while the CLI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// LeadStore returns a LeadStore interface backed by this store.
func (s *Store) LeadStore() driven.LeadStore {
	return &leadStore{store: s}
}

// migrate runs all pending migrations. Each migration and its version
// record are applied in one transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_leads.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Lead Store ====================

// leadStore implements driven.LeadStore.
type leadStore struct {
	store *Store
}

var _ driven.LeadStore = (*leadStore)(nil)

// SaveLeads stores or updates leads keyed by ID.
func (s *leadStore) SaveLeads(ctx context.Context, leads []domain.Lead) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	savedAt := s.store.now().UnixNano()
	for _, lead := range leads {
		if lead.ID == "" {
			return fmt.Errorf("%w: lead without id", domain.ErrInvalidInput)
		}
		data, err := json.Marshal(lead)
		if err != nil {
			return fmt.Errorf("marshalling lead %s: %w", lead.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO leads (id, source_id, company_name, data, saved_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				source_id = excluded.source_id,
				company_name = excluded.company_name,
				data = excluded.data,
				saved_at = excluded.saved_at
		`, lead.ID, lead.Source, lead.CompanyName, string(data), savedAt)
		if err != nil {
			return fmt.Errorf("saving lead %s: %w", lead.ID, err)
		}
	}

	return tx.Commit()
}

// ListLeads returns saved leads, newest first then by company name.
func (s *leadStore) ListLeads(ctx context.Context, sourceID string) ([]domain.SavedLead, error) {
	query := `SELECT data, saved_at FROM leads`
	var args []any
	if sourceID != "" {
		query += ` WHERE source_id = ?`
		args = append(args, sourceID)
	}
	query += ` ORDER BY saved_at DESC, company_name ASC`

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying leads: %w", err)
	}
	defer rows.Close()

	var leads []domain.SavedLead
	for rows.Next() {
		var (
			data    string
			savedAt int64
		)
		if err := rows.Scan(&data, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}
		var lead domain.Lead
		if err := json.Unmarshal([]byte(data), &lead); err != nil {
			return nil, fmt.Errorf("unmarshalling lead: %w", err)
		}
		leads = append(leads, domain.SavedLead{
			Lead:    lead,
			SavedAt: time.Unix(0, savedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leads: %w", err)
	}
	return leads, nil
}

// DeleteLeads removes saved leads for a source. An empty sourceID clears all.
func (s *leadStore) DeleteLeads(ctx context.Context, sourceID string) (int, error) {
	var (
		res sql.Result
		err error
	)
	if sourceID == "" {
		res, err = s.store.db.ExecContext(ctx, `DELETE FROM leads`)
	} else {
		res, err = s.store.db.ExecContext(ctx, `DELETE FROM leads WHERE source_id = ?`, sourceID)
	}
	if err != nil {
		return 0, fmt.Errorf("deleting leads: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted leads: %w", err)
	}
	return int(n), nil
}
