package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobtrack/internal/database/migrations"
	"jobtrack/internal/database/sqlc"
	"jobtrack/internal/jt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MemoryPath opens a private in-memory store.
const MemoryPath = ":memory:"

// SQLiteDatabase implements jt.Database on a local SQLite file.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase opens the store at path (a file path or MemoryPath).
// The schema is not touched; see MigrateUp and CheckMigrations.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an already configured connection.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
	}
}

// OpenConnection opens a SQLite connection with foreign keys enforced on
// every pooled connection. An in-memory database is pinned to a single
// connection, since each new connection would see an empty database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Application operations

func (s *SQLiteDatabase) CreateApplication(ctx context.Context, params sqlc.InsertApplicationParams) error {
	if err := s.queries.InsertApplication(ctx, params); err != nil {
		return fmt.Errorf("inserting application: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) FindApplication(ctx context.Context, ownerID, id string) (*sqlc.ApplicationSummary, error) {
	row, err := s.queries.GetApplicationSummary(ctx, sqlc.GetApplicationSummaryParams{
		ID:      id,
		OwnerID: ownerID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding application: %w", err)
	}
	return &row, nil
}

func (s *SQLiteDatabase) ListApplications(ctx context.Context, params sqlc.ListApplicationSummariesParams) ([]*sqlc.ApplicationSummary, error) {
	rows, err := s.queries.ListApplicationSummaries(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	return pointers(rows), nil
}

func (s *SQLiteDatabase) UpdateApplication(ctx context.Context, params sqlc.UpdateApplicationParams) (int64, error) {
	n, err := s.queries.UpdateApplication(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("updating application: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) SetApplicationArchived(ctx context.Context, params sqlc.SetApplicationArchivedParams) (int64, error) {
	n, err := s.queries.SetApplicationArchived(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("setting archive flag: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) SoftDeleteApplication(ctx context.Context, ownerID, id string, at time.Time) (int64, error) {
	n, err := s.queries.SoftDeleteApplication(ctx, sqlc.SoftDeleteApplicationParams{
		UpdatedAt: at,
		ID:        id,
		OwnerID:   ownerID,
	})
	if err != nil {
		return 0, fmt.Errorf("deleting application: %w", err)
	}
	return n, nil
}

// Stage operations

func (s *SQLiteDatabase) CreateStage(ctx context.Context, params sqlc.InsertStageParams) error {
	if err := s.queries.InsertStage(ctx, params); err != nil {
		return fmt.Errorf("inserting stage: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpsertStage(ctx context.Context, params sqlc.UpsertStageParams) (int64, error) {
	n, err := s.queries.UpsertStage(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("upserting stage: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) FindStagesForApplication(ctx context.Context, ownerID, applicationID string) ([]*sqlc.Stage, error) {
	rows, err := s.queries.ListStagesByApplication(ctx, sqlc.ListStagesByApplicationParams{
		ApplicationID: applicationID,
		OwnerID:       ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	return pointers(rows), nil
}

func (s *SQLiteDatabase) SoftDeleteStage(ctx context.Context, ownerID, id string, at time.Time) (int64, error) {
	n, err := s.queries.SoftDeleteStage(ctx, sqlc.SoftDeleteStageParams{
		UpdatedAt: at,
		ID:        id,
		OwnerID:   ownerID,
	})
	if err != nil {
		return 0, fmt.Errorf("deleting stage: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) SoftDeleteStagesForApplication(ctx context.Context, ownerID, applicationID string, at time.Time) (int64, error) {
	n, err := s.queries.SoftDeleteStagesByApplication(ctx, sqlc.SoftDeleteStagesByApplicationParams{
		UpdatedAt:     at,
		ApplicationID: applicationID,
		OwnerID:       ownerID,
	})
	if err != nil {
		return 0, fmt.Errorf("deleting stages: %w", err)
	}
	return n, nil
}

// Company operations

func (s *SQLiteDatabase) CreateCompany(ctx context.Context, params sqlc.InsertCompanyParams) error {
	if err := s.queries.InsertCompany(ctx, params); err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) FindCompany(ctx context.Context, ownerID, id string) (*sqlc.Company, error) {
	row, err := s.queries.GetCompany(ctx, sqlc.GetCompanyParams{ID: id, OwnerID: ownerID})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding company: %w", err)
	}
	return &row, nil
}

func (s *SQLiteDatabase) ListCompanies(ctx context.Context, ownerID string) ([]*sqlc.Company, error) {
	rows, err := s.queries.ListCompanies(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	return pointers(rows), nil
}

func (s *SQLiteDatabase) UpdateCompany(ctx context.Context, params sqlc.UpdateCompanyParams) (int64, error) {
	n, err := s.queries.UpdateCompany(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("updating company: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) SoftDeleteCompany(ctx context.Context, ownerID, id string, at time.Time) (int64, error) {
	n, err := s.queries.SoftDeleteCompany(ctx, sqlc.SoftDeleteCompanyParams{UpdatedAt: at, ID: id, OwnerID: ownerID})
	if err != nil {
		return 0, fmt.Errorf("deleting company: %w", err)
	}
	return n, nil
}

// Contact operations

func (s *SQLiteDatabase) CreateContact(ctx context.Context, params sqlc.InsertContactParams) error {
	if err := s.queries.InsertContact(ctx, params); err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) FindContact(ctx context.Context, ownerID, id string) (*sqlc.Contact, error) {
	row, err := s.queries.GetContact(ctx, sqlc.GetContactParams{ID: id, OwnerID: ownerID})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding contact: %w", err)
	}
	return &row, nil
}

func (s *SQLiteDatabase) ListContacts(ctx context.Context, ownerID string) ([]*sqlc.Contact, error) {
	rows, err := s.queries.ListContacts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	return pointers(rows), nil
}

func (s *SQLiteDatabase) UpdateContact(ctx context.Context, params sqlc.UpdateContactParams) (int64, error) {
	n, err := s.queries.UpdateContact(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("updating contact: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) SoftDeleteContact(ctx context.Context, ownerID, id string, at time.Time) (int64, error) {
	n, err := s.queries.SoftDeleteContact(ctx, sqlc.SoftDeleteContactParams{UpdatedAt: at, ID: id, OwnerID: ownerID})
	if err != nil {
		return 0, fmt.Errorf("deleting contact: %w", err)
	}
	return n, nil
}

// Store version and snapshots

// StoreVersion returns the snapshot version counter. A store that was
// never bumped reports 0.
func (s *SQLiteDatabase) StoreVersion(ctx context.Context) (int64, error) {
	v, err := s.queries.GetStoreVersion(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading store version: %w", err)
	}
	return v, nil
}

// BumpStoreVersion increments the snapshot version counter and returns
// the new value.
func (s *SQLiteDatabase) BumpStoreVersion(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)
	if err := qtx.BumpStoreVersion(ctx); err != nil {
		return 0, fmt.Errorf("bumping store version: %w", err)
	}
	v, err := qtx.GetStoreVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading store version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return v, nil
}

// SetStoreVersion overwrites the counter, used after a restore.
func (s *SQLiteDatabase) SetStoreVersion(ctx context.Context, version int64) error {
	if err := s.queries.SetStoreVersion(ctx, version); err != nil {
		return fmt.Errorf("setting store version: %w", err)
	}
	return nil
}

// Path returns the database file path, or MemoryPath.
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the schema is at the latest migration.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// MigrateUp applies pending migrations.
func (s *SQLiteDatabase) MigrateUp() error {
	return migrations.MigrateUp(s.db)
}

// BackupTo writes a consistent copy of the store to destPath using
// VACUUM INTO. destPath must not exist.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	if _, err := s.db.Exec("VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func pointers[T any](rows []T) []*T {
	out := make([]*T, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}

var _ jt.Database = (*SQLiteDatabase)(nil)
