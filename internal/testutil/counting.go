package testutil

import (
	"context"
	"sync"
	"time"

	"jobtrack/internal/database/sqlc"
	"jobtrack/internal/jt"
)

type injectedFailure struct {
	nth int // 0 fails every call
	err error
}

// CountingDatabase wraps a jt.Database, counting calls per method and
// failing the ones a test asks it to.
type CountingDatabase struct {
	jt.Database

	mu       sync.Mutex
	calls    map[string]int
	writes   int
	reads    int
	failures map[string]injectedFailure
}

// NewCountingDatabase wraps db.
func NewCountingDatabase(db jt.Database) *CountingDatabase {
	return &CountingDatabase{
		Database: db,
		calls:    make(map[string]int),
		failures: make(map[string]injectedFailure),
	}
}

// FailOn makes every call to method return err.
func (d *CountingDatabase) FailOn(method string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[method] = injectedFailure{err: err}
}

// FailNth makes only the nth (1-based) call to method return err.
func (d *CountingDatabase) FailNth(method string, nth int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[method] = injectedFailure{nth: nth, err: err}
}

// Calls returns how many times method was called.
func (d *CountingDatabase) Calls(method string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[method]
}

// Writes returns the number of mutating calls, failed ones included.
func (d *CountingDatabase) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// Reads returns the number of query calls.
func (d *CountingDatabase) Reads() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reads
}

// Total returns every call made through the wrapper.
func (d *CountingDatabase) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes + d.reads
}

func (d *CountingDatabase) record(method string, write bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls[method]++
	if write {
		d.writes++
	} else {
		d.reads++
	}

	f, ok := d.failures[method]
	if ok && (f.nth == 0 || f.nth == d.calls[method]) {
		return f.err
	}
	return nil
}

func (d *CountingDatabase) CreateApplication(ctx context.Context, params sqlc.InsertApplicationParams) error {
	if err := d.record("CreateApplication", true); err != nil {
		return err
	}
	return d.Database.CreateApplication(ctx, params)
}

func (d *CountingDatabase) FindApplication(ctx context.Context, ownerID, id string) (*sqlc.ApplicationSummary, error) {
	if err := d.record("FindApplication", false); err != nil {
		return nil, err
	}
	return d.Database.FindApplication(ctx, ownerID, id)
}

func (d *CountingDatabase) ListApplications(ctx context.Context, params sqlc.ListApplicationSummariesParams) ([]*sqlc.ApplicationSummary, error) {
	if err := d.record("ListApplications", false); err != nil {
		return nil, err
	}
	return d.Database.ListApplications(ctx, params)
}

func (d *CountingDatabase) UpdateApplication(ctx context.Context, params sqlc.UpdateApplicationParams) (int64, error) {
	if err := d.record("UpdateApplication", true); err != nil {
		return 0, err
	}
	return d.Database.UpdateApplication(ctx, params)
}

func (d *CountingDatabase) SetApplicationArchived(ctx context.Context, params sqlc.SetApplicationArchivedParams) (int64, error) {
	if err := d.record("SetApplicationArchived", true); err != nil {
		return 0, err
	}
	return d.Database.SetApplicationArchived(ctx, params)
}

func (d *CountingDatabase) SoftDeleteApplication(ctx context.Context, ownerID, id string, at time.Time) (int64, error) {
	if err := d.record("SoftDeleteApplication", true); err != nil {
		return 0, err
	}
	return d.Database.SoftDeleteApplication(ctx, ownerID, id, at)
}

func (d *CountingDatabase) CreateStage(ctx context.Context, params sqlc.InsertStageParams) error {
	if err := d.record("CreateStage", true); err != nil {
		return err
	}
	return d.Database.CreateStage(ctx, params)
}

func (d *CountingDatabase) UpsertStage(ctx context.Context, params sqlc.UpsertStageParams) (int64, error) {
	if err := d.record("UpsertStage", true); err != nil {
		return 0, err
	}
	return d.Database.UpsertStage(ctx, params)
}

func (d *CountingDatabase) FindStagesForApplication(ctx context.Context, ownerID, applicationID string) ([]*sqlc.Stage, error) {
	if err := d.record("FindStagesForApplication", false); err != nil {
		return nil, err
	}
	return d.Database.FindStagesForApplication(ctx, ownerID, applicationID)
}

func (d *CountingDatabase) SoftDeleteStage(ctx context.Context, ownerID, id string, at time.Time) (int64, error) {
	if err := d.record("SoftDeleteStage", true); err != nil {
		return 0, err
	}
	return d.Database.SoftDeleteStage(ctx, ownerID, id, at)
}

func (d *CountingDatabase) SoftDeleteStagesForApplication(ctx context.Context, ownerID, applicationID string, at time.Time) (int64, error) {
	if err := d.record("SoftDeleteStagesForApplication", true); err != nil {
		return 0, err
	}
	return d.Database.SoftDeleteStagesForApplication(ctx, ownerID, applicationID, at)
}

func (d *CountingDatabase) CreateCompany(ctx context.Context, params sqlc.InsertCompanyParams) error {
	if err := d.record("CreateCompany", true); err != nil {
		return err
	}
	return d.Database.CreateCompany(ctx, params)
}

func (d *CountingDatabase) FindCompany(ctx context.Context, ownerID, id string) (*sqlc.Company, error) {
	if err := d.record("FindCompany", false); err != nil {
		return nil, err
	}
	return d.Database.FindCompany(ctx, ownerID, id)
}

func (d *CountingDatabase) ListCompanies(ctx context.Context, ownerID string) ([]*sqlc.Company, error) {
	if err := d.record("ListCompanies", false); err != nil {
		return nil, err
	}
	return d.Database.ListCompanies(ctx, ownerID)
}

func (d *CountingDatabase) UpdateCompany(ctx context.Context, params sqlc.UpdateCompanyParams) (int64, error) {
	if err := d.record("UpdateCompany", true); err != nil {
		return 0, err
	}
	return d.Database.UpdateCompany(ctx, params)
}

func (d *CountingDatabase) SoftDeleteCompany(ctx context.Context, ownerID, id string, at time.Time) (int64, error) {
	if err := d.record("SoftDeleteCompany", true); err != nil {
		return 0, err
	}
	return d.Database.SoftDeleteCompany(ctx, ownerID, id, at)
}

func (d *CountingDatabase) CreateContact(ctx context.Context, params sqlc.InsertContactParams) error {
	if err := d.record("CreateContact", true); err != nil {
		return err
	}
	return d.Database.CreateContact(ctx, params)
}

func (d *CountingDatabase) FindContact(ctx context.Context, ownerID, id string) (*sqlc.Contact, error) {
	if err := d.record("FindContact", false); err != nil {
		return nil, err
	}
	return d.Database.FindContact(ctx, ownerID, id)
}

func (d *CountingDatabase) ListContacts(ctx context.Context, ownerID string) ([]*sqlc.Contact, error) {
	if err := d.record("ListContacts", false); err != nil {
		return nil, err
	}
	return d.Database.ListContacts(ctx, ownerID)
}

func (d *CountingDatabase) UpdateContact(ctx context.Context, params sqlc.UpdateContactParams) (int64, error) {
	if err := d.record("UpdateContact", true); err != nil {
		return 0, err
	}
	return d.Database.UpdateContact(ctx, params)
}

func (d *CountingDatabase) SoftDeleteContact(ctx context.Context, ownerID, id string, at time.Time) (int64, error) {
	if err := d.record("SoftDeleteContact", true); err != nil {
		return 0, err
	}
	return d.Database.SoftDeleteContact(ctx, ownerID, id, at)
}

var _ jt.Database = (*CountingDatabase)(nil)
