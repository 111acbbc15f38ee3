package jt

import (
	"context"
	"time"

	"jobtrack/internal/database/sqlc"
)

// Database is the relational store behind the Gateway. Every method filters
// by owner id; Find* methods return (nil, nil) when nothing matches and the
// int64 results are rows affected.
type Database interface {
	// Application operations

	// CreateApplication inserts one application row.
	CreateApplication(ctx context.Context, params sqlc.InsertApplicationParams) error

	// FindApplication returns a non-deleted application with its company and
	// contact summaries.
	FindApplication(ctx context.Context, ownerID, id string) (*sqlc.ApplicationSummary, error)

	// ListApplications returns non-deleted applications matching the
	// archive/favorite filter, newest application date first.
	ListApplications(ctx context.Context, params sqlc.ListApplicationSummariesParams) ([]*sqlc.ApplicationSummary, error)

	// UpdateApplication overwrites the mutable columns of one application.
	UpdateApplication(ctx context.Context, params sqlc.UpdateApplicationParams) (int64, error)

	// SetApplicationArchived writes the archive flag only if the row still
	// holds the observed value.
	SetApplicationArchived(ctx context.Context, params sqlc.SetApplicationArchivedParams) (int64, error)

	// SoftDeleteApplication marks an application deleted.
	SoftDeleteApplication(ctx context.Context, ownerID, id string, at time.Time) (int64, error)

	// Stage operations

	// CreateStage inserts one stage row.
	CreateStage(ctx context.Context, params sqlc.InsertStageParams) error

	// UpsertStage inserts a stage or updates the existing row with that id.
	UpsertStage(ctx context.Context, params sqlc.UpsertStageParams) (int64, error)

	// FindStagesForApplication returns non-deleted stages ordered by position.
	FindStagesForApplication(ctx context.Context, ownerID, applicationID string) ([]*sqlc.Stage, error)

	// SoftDeleteStage marks one stage deleted.
	SoftDeleteStage(ctx context.Context, ownerID, id string, at time.Time) (int64, error)

	// SoftDeleteStagesForApplication marks every stage of an application deleted.
	SoftDeleteStagesForApplication(ctx context.Context, ownerID, applicationID string, at time.Time) (int64, error)

	// Company operations

	CreateCompany(ctx context.Context, params sqlc.InsertCompanyParams) error
	FindCompany(ctx context.Context, ownerID, id string) (*sqlc.Company, error)
	ListCompanies(ctx context.Context, ownerID string) ([]*sqlc.Company, error)
	UpdateCompany(ctx context.Context, params sqlc.UpdateCompanyParams) (int64, error)
	SoftDeleteCompany(ctx context.Context, ownerID, id string, at time.Time) (int64, error)

	// Contact operations

	CreateContact(ctx context.Context, params sqlc.InsertContactParams) error
	FindContact(ctx context.Context, ownerID, id string) (*sqlc.Contact, error)
	ListContacts(ctx context.Context, ownerID string) ([]*sqlc.Contact, error)
	UpdateContact(ctx context.Context, params sqlc.UpdateContactParams) (int64, error)
	SoftDeleteContact(ctx context.Context, ownerID, id string, at time.Time) (int64, error)

	// Close closes the database connection.
	Close() error
}
