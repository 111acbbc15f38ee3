package jt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobtrack/internal/database/sqlc"
)

// ArchiveConflictPolicy decides what ToggleArchive does when its guarded
// update matches no row because the archive flag changed underneath it.
type ArchiveConflictPolicy string

const (
	// ArchiveConflictIgnore returns the unmodified application and no error.
	ArchiveConflictIgnore ArchiveConflictPolicy = "ignore"
	// ArchiveConflictReport returns ErrArchiveConflict in a PersistenceError.
	ArchiveConflictReport ArchiveConflictPolicy = "report"
)

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithArchiveConflictPolicy sets the ToggleArchive conflict behavior.
func WithArchiveConflictPolicy(p ArchiveConflictPolicy) GatewayOption {
	return func(g *Gateway) { g.archiveConflicts = p }
}

// Gateway turns applications, stages, companies and contacts into store
// calls on behalf of one authenticated owner, and shapes rows back.
//
// Writes fail with *ValidationError (nothing sent), *PersistenceError
// (primary write failed) or *PartialWriteWarning (primary write kept,
// dependent stage writes failed). Reads never fail: errors are logged and
// an empty result is returned.
type Gateway struct {
	database         Database
	ownerID          string
	logger           Logger
	clock            Clock
	idgen            IDGenerator
	archiveConflicts ArchiveConflictPolicy
}

// NewGateway creates a Gateway acting as ownerID.
func NewGateway(database Database, ownerID string, logger Logger, clock Clock, idgen IDGenerator, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		database:         database,
		ownerID:          ownerID,
		logger:           logger,
		clock:            clock,
		idgen:            idgen,
		archiveConflicts: ArchiveConflictIgnore,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OwnerID returns the identity the gateway writes as.
func (g *Gateway) OwnerID() string {
	return g.ownerID
}

// DeleteResult reports which record a soft delete affected.
type DeleteResult struct {
	Success bool
	ID      string
}

// Create persists a new application followed by one row per stage. The
// application starts at stage 0 and not deleted. A failed stage insert does
// not undo the application row; the returned application then holds only
// the stages that were written and the error is a *PartialWriteWarning.
func (g *Gateway) Create(ctx context.Context, app *Application, stages []Stage) (*Application, error) {
	if err := g.validateApplication(app, false); err != nil {
		return nil, err
	}
	if err := g.checkReferences(ctx, app.CompanyID, app.ContactID); err != nil {
		return nil, err
	}

	now := g.clock.Now()
	created := app.Clone()
	created.ID = g.idgen.New()
	created.OwnerID = g.ownerID
	created.CurrentStage = 0
	created.IsDeleted = false
	created.CreatedAt = now
	created.UpdatedAt = now
	created.Stages = []Stage{}
	if created.Date.IsZero() {
		created.Date = now
	}

	if err := g.database.CreateApplication(ctx, insertApplicationParams(created)); err != nil {
		g.logger.Error("create application failed", "company", created.Company, "position", created.Position, "error", err)
		return nil, &PersistenceError{Op: "create application", Err: err}
	}

	var failures []error
	for i, st := range stages {
		st.Position = i
		if st.ID == "" {
			st.ID = g.idgen.New()
		}
		st.IsActive = i <= created.CurrentStage
		st.IsDeleted = false

		if err := g.database.CreateStage(ctx, insertStageParams(g.ownerID, created.ID, st, now)); err != nil {
			g.logger.Error("create stage failed", "application", created.ID, "stage", st.Name, "error", err)
			failures = append(failures, &PersistenceError{Op: fmt.Sprintf("create stage %q", st.Name), Err: err})
			continue
		}
		created.Stages = append(created.Stages, st)
	}

	g.logger.Info("application created", "id", created.ID, "company", created.Company, "stages", len(created.Stages))
	if len(failures) > 0 {
		return created, &PartialWriteWarning{Op: "create application", Failures: failures}
	}
	return created, nil
}

// ListByUser returns ownerID's non-deleted applications matching filter,
// each with its non-deleted stages in position order. It never fails: a
// store error is logged and an empty slice is returned.
func (g *Gateway) ListByUser(ctx context.Context, ownerID string, filter ListFilter) []*Application {
	apps := []*Application{}
	if ownerID == "" {
		g.logger.Warn("list applications skipped: no owner")
		return apps
	}

	params, ok := listParams(ownerID, filter)
	if !ok {
		g.degraded("list applications", fmt.Errorf("unknown filter %q", filter))
		return apps
	}

	rows, err := g.database.ListApplications(ctx, params)
	if err != nil {
		g.degraded("list applications", err, "filter", filter)
		return apps
	}

	for _, row := range rows {
		stages, err := g.database.FindStagesForApplication(ctx, ownerID, row.ID)
		if err != nil {
			g.degraded("list stages", err, "application", row.ID)
			return []*Application{}
		}
		apps = append(apps, applicationFromRow(row, stages))
	}
	return apps
}

// Find returns one of the owner's applications, or nil when it does not
// exist or cannot be read.
func (g *Gateway) Find(ctx context.Context, appID string) *Application {
	if g.ownerID == "" || appID == "" {
		return nil
	}

	row, err := g.database.FindApplication(ctx, g.ownerID, appID)
	if err != nil {
		g.degraded("find application", err, "id", appID)
		return nil
	}
	if row == nil {
		return nil
	}

	stages, err := g.database.FindStagesForApplication(ctx, g.ownerID, appID)
	if err != nil {
		g.degraded("list stages", err, "application", appID)
		return nil
	}
	return applicationFromRow(row, stages)
}

// Update writes every mutable field of app. When app carries stages, each
// is upserted and stored stages no longer on the track are soft-deleted;
// positions are rewritten from the index and active flags from the cursor.
// Stage write failures are logged one by one and do not stop the remaining
// stages. Without stages only the application row is written: stored stages
// and the stored cursor are kept, and the result has no Stages.
//
// Company and contact ids are checked only when they differ from the
// stored ones, so a link to a since-deleted record does not block updates.
func (g *Gateway) Update(ctx context.Context, app *Application) (*Application, error) {
	if err := g.validateApplication(app, true); err != nil {
		return nil, err
	}

	fieldsOnly := len(app.Stages) == 0
	var stored *sqlc.ApplicationSummary
	if fieldsOnly || app.CompanyID != "" || app.ContactID != "" {
		row, err := g.database.FindApplication(ctx, g.ownerID, app.ID)
		if err != nil {
			g.logger.Error("read application before update failed", "id", app.ID, "error", err)
			return nil, &PersistenceError{Op: "update application", Err: err}
		}
		if row == nil {
			return nil, &PersistenceError{Op: "update application", Err: ErrNotFound}
		}
		stored = row
	}

	companyID, contactID := app.CompanyID, app.ContactID
	if stored != nil {
		if companyID == stored.CompanyID.String {
			companyID = ""
		}
		if contactID == stored.ContactID.String {
			contactID = ""
		}
	}
	if err := g.checkReferences(ctx, companyID, contactID); err != nil {
		return nil, err
	}

	now := g.clock.Now()
	updated := app.Clone()
	updated.OwnerID = g.ownerID
	updated.UpdatedAt = now
	if fieldsOnly {
		updated.Stages = nil
		updated.CurrentStage = int(stored.CurrentStage)
	}
	for i := range updated.Stages {
		if updated.Stages[i].ID == "" {
			updated.Stages[i].ID = g.idgen.New()
		}
	}
	updated.normalizeStages()

	n, err := g.database.UpdateApplication(ctx, updateApplicationParams(updated))
	if err != nil {
		g.logger.Error("update application failed", "id", updated.ID, "error", err)
		return nil, &PersistenceError{Op: "update application", Err: err}
	}
	if n == 0 {
		g.logger.Warn("update application matched no rows", "id", updated.ID)
		return nil, &PersistenceError{Op: "update application", Err: ErrNotFound}
	}

	if fieldsOnly {
		g.logger.Debug("application fields updated", "id", updated.ID)
		return updated, nil
	}
	if failures := g.syncStages(ctx, updated, now); len(failures) > 0 {
		return updated, &PartialWriteWarning{Op: "update application", Failures: failures}
	}

	g.logger.Debug("application updated", "id", updated.ID, "current_stage", updated.CurrentStage)
	return updated, nil
}

// SoftDelete marks an application deleted and cascades to its stages.
func (g *Gateway) SoftDelete(ctx context.Context, appID string) (*DeleteResult, error) {
	if err := g.validateIdentity(appID); err != nil {
		return nil, err
	}

	now := g.clock.Now()
	n, err := g.database.SoftDeleteApplication(ctx, g.ownerID, appID, now)
	if err != nil {
		g.logger.Error("delete application failed", "id", appID, "error", err)
		return nil, &PersistenceError{Op: "delete application", Err: err}
	}
	if n == 0 {
		return nil, &PersistenceError{Op: "delete application", Err: ErrNotFound}
	}

	result := &DeleteResult{Success: true, ID: appID}
	if _, err := g.database.SoftDeleteStagesForApplication(ctx, g.ownerID, appID, now); err != nil {
		g.logger.Error("delete stages failed", "application", appID, "error", err)
		return result, &PartialWriteWarning{
			Op:       "delete application",
			Failures: []error{&PersistenceError{Op: "delete stages", Err: err}},
		}
	}

	g.logger.Info("application deleted", "id", appID)
	return result, nil
}

// ToggleArchive flips the archive flag and writes the editable fields, but
// only if the stored flag still equals app.IsArchived. When it does not,
// nothing is written and app is returned as it was; with
// ArchiveConflictReport the error is ErrArchiveConflict.
func (g *Gateway) ToggleArchive(ctx context.Context, app *Application) (*Application, error) {
	if err := g.validateApplication(app, true); err != nil {
		return nil, err
	}

	observed := app.IsArchived
	next := app.Clone()
	next.OwnerID = g.ownerID
	next.IsArchived = !observed
	next.UpdatedAt = g.clock.Now()

	n, err := g.database.SetApplicationArchived(ctx, setArchivedParams(next, observed))
	if err != nil {
		g.logger.Error("toggle archive failed", "id", app.ID, "error", err)
		return nil, &PersistenceError{Op: "toggle archive", Err: err}
	}
	if n == 0 {
		g.logger.Warn("toggle archive matched no rows", "id", app.ID, "observed_archived", observed)
		if g.archiveConflicts == ArchiveConflictReport {
			return app.Clone(), &PersistenceError{Op: "toggle archive", Err: ErrArchiveConflict}
		}
		return app.Clone(), nil
	}

	g.logger.Info("application archive toggled", "id", app.ID, "archived", next.IsArchived)
	return next, nil
}

func (g *Gateway) syncStages(ctx context.Context, app *Application, now time.Time) []error {
	var failures []error

	onTrack := make(map[string]bool, len(app.Stages))
	for _, st := range app.Stages {
		onTrack[st.ID] = true

		n, err := g.database.UpsertStage(ctx, upsertStageParams(g.ownerID, app.ID, st, now))
		if err == nil && n == 0 {
			err = ErrNotFound
		}
		if err != nil {
			g.logger.Error("upsert stage failed", "application", app.ID, "stage", st.ID, "name", st.Name, "error", err)
			failures = append(failures, &PersistenceError{Op: fmt.Sprintf("upsert stage %q", st.Name), Err: err})
		}
	}

	stored, err := g.database.FindStagesForApplication(ctx, g.ownerID, app.ID)
	if err != nil {
		g.logger.Error("list stored stages failed", "application", app.ID, "error", err)
		return append(failures, &PersistenceError{Op: "list stages", Err: err})
	}
	for _, row := range stored {
		if onTrack[row.ID] {
			continue
		}
		if _, err := g.database.SoftDeleteStage(ctx, g.ownerID, row.ID, now); err != nil {
			g.logger.Error("delete removed stage failed", "application", app.ID, "stage", row.ID, "error", err)
			failures = append(failures, &PersistenceError{Op: fmt.Sprintf("delete stage %q", row.Name), Err: err})
		}
	}
	return failures
}

// validateApplication checks required fields without touching the store.
func (g *Gateway) validateApplication(app *Application, needID bool) error {
	var missing []string
	if g.ownerID == "" {
		missing = append(missing, "owner")
	}
	if needID && app.ID == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(app.Company) == "" {
		missing = append(missing, "company")
	}
	if strings.TrimSpace(app.Position) == "" {
		missing = append(missing, "position")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func (g *Gateway) validateIdentity(id string) error {
	var missing []string
	if g.ownerID == "" {
		missing = append(missing, "owner")
	}
	if id == "" {
		missing = append(missing, "id")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// checkReferences confirms that linked company and contact records belong
// to the owner.
func (g *Gateway) checkReferences(ctx context.Context, companyID, contactID string) error {
	if companyID != "" {
		company, err := g.database.FindCompany(ctx, g.ownerID, companyID)
		if err != nil {
			return &PersistenceError{Op: "find company", Err: err}
		}
		if company == nil {
			return &ValidationError{Fields: []string{"company_id"}, Reason: ReasonUnknownReference}
		}
	}
	if contactID != "" {
		contact, err := g.database.FindContact(ctx, g.ownerID, contactID)
		if err != nil {
			return &PersistenceError{Op: "find contact", Err: err}
		}
		if contact == nil {
			return &ValidationError{Fields: []string{"contact_id"}, Reason: ReasonUnknownReference}
		}
	}
	return nil
}

func (g *Gateway) degraded(op string, err error, args ...any) {
	g.logger.Error("read degraded to empty result", append([]any{"op", op, "error", err}, args...)...)
}
