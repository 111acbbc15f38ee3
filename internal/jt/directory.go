package jt

import (
	"context"
	"strings"

	"jobtrack/internal/database/sqlc"
)

// Companies and contacts are plain owner-scoped records that applications
// may point at.

// CreateCompany stores a new company. Name is required.
func (g *Gateway) CreateCompany(ctx context.Context, c *Company) (*Company, error) {
	if err := g.validateNamed(c.Name); err != nil {
		return nil, err
	}

	now := g.clock.Now()
	created := *c
	created.ID = g.idgen.New()
	created.OwnerID = g.ownerID
	created.IsDeleted = false
	created.CreatedAt = now
	created.UpdatedAt = now

	err := g.database.CreateCompany(ctx, sqlc.InsertCompanyParams{
		ID:        created.ID,
		OwnerID:   created.OwnerID,
		Name:      created.Name,
		Phone:     created.Phone,
		Email:     created.Email,
		Website:   created.Website,
		Notes:     created.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		g.logger.Error("create company failed", "name", created.Name, "error", err)
		return nil, &PersistenceError{Op: "create company", Err: err}
	}

	g.logger.Info("company created", "id", created.ID, "name", created.Name)
	return &created, nil
}

// ListCompanies returns the owner's companies by name. Errors yield an
// empty slice.
func (g *Gateway) ListCompanies(ctx context.Context) []*Company {
	companies := []*Company{}
	if g.ownerID == "" {
		return companies
	}

	rows, err := g.database.ListCompanies(ctx, g.ownerID)
	if err != nil {
		g.degraded("list companies", err)
		return companies
	}
	for _, row := range rows {
		companies = append(companies, companyFromRow(row))
	}
	return companies
}

// FindCompany returns one of the owner's companies, or nil.
func (g *Gateway) FindCompany(ctx context.Context, id string) *Company {
	if g.ownerID == "" || id == "" {
		return nil
	}
	row, err := g.database.FindCompany(ctx, g.ownerID, id)
	if err != nil {
		g.degraded("find company", err, "id", id)
		return nil
	}
	if row == nil {
		return nil
	}
	return companyFromRow(row)
}

// UpdateCompany overwrites a company's attributes.
func (g *Gateway) UpdateCompany(ctx context.Context, c *Company) (*Company, error) {
	if err := g.validateNamed(c.Name); err != nil {
		return nil, err
	}
	if err := g.validateIdentity(c.ID); err != nil {
		return nil, err
	}

	updated := *c
	updated.OwnerID = g.ownerID
	updated.UpdatedAt = g.clock.Now()

	n, err := g.database.UpdateCompany(ctx, sqlc.UpdateCompanyParams{
		Name:      updated.Name,
		Phone:     updated.Phone,
		Email:     updated.Email,
		Website:   updated.Website,
		Notes:     updated.Notes,
		UpdatedAt: updated.UpdatedAt,
		ID:        updated.ID,
		OwnerID:   updated.OwnerID,
	})
	if err != nil {
		g.logger.Error("update company failed", "id", updated.ID, "error", err)
		return nil, &PersistenceError{Op: "update company", Err: err}
	}
	if n == 0 {
		return nil, &PersistenceError{Op: "update company", Err: ErrNotFound}
	}
	return &updated, nil
}

// SoftDeleteCompany marks a company deleted. Applications keep their
// denormalised company name.
func (g *Gateway) SoftDeleteCompany(ctx context.Context, id string) (*DeleteResult, error) {
	if err := g.validateIdentity(id); err != nil {
		return nil, err
	}

	n, err := g.database.SoftDeleteCompany(ctx, g.ownerID, id, g.clock.Now())
	if err != nil {
		g.logger.Error("delete company failed", "id", id, "error", err)
		return nil, &PersistenceError{Op: "delete company", Err: err}
	}
	if n == 0 {
		return nil, &PersistenceError{Op: "delete company", Err: ErrNotFound}
	}
	return &DeleteResult{Success: true, ID: id}, nil
}

// CreateContact stores a new contact. Name is required.
func (g *Gateway) CreateContact(ctx context.Context, c *Contact) (*Contact, error) {
	if err := g.validateNamed(c.Name); err != nil {
		return nil, err
	}

	now := g.clock.Now()
	created := *c
	created.ID = g.idgen.New()
	created.OwnerID = g.ownerID
	created.IsDeleted = false
	created.CreatedAt = now
	created.UpdatedAt = now

	err := g.database.CreateContact(ctx, sqlc.InsertContactParams{
		ID:        created.ID,
		OwnerID:   created.OwnerID,
		Name:      created.Name,
		Phone:     created.Phone,
		Email:     created.Email,
		Position:  created.Position,
		Notes:     created.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		g.logger.Error("create contact failed", "name", created.Name, "error", err)
		return nil, &PersistenceError{Op: "create contact", Err: err}
	}

	g.logger.Info("contact created", "id", created.ID, "name", created.Name)
	return &created, nil
}

// ListContacts returns the owner's contacts by name. Errors yield an empty
// slice.
func (g *Gateway) ListContacts(ctx context.Context) []*Contact {
	contacts := []*Contact{}
	if g.ownerID == "" {
		return contacts
	}

	rows, err := g.database.ListContacts(ctx, g.ownerID)
	if err != nil {
		g.degraded("list contacts", err)
		return contacts
	}
	for _, row := range rows {
		contacts = append(contacts, contactFromRow(row))
	}
	return contacts
}

// FindContact returns one of the owner's contacts, or nil.
func (g *Gateway) FindContact(ctx context.Context, id string) *Contact {
	if g.ownerID == "" || id == "" {
		return nil
	}
	row, err := g.database.FindContact(ctx, g.ownerID, id)
	if err != nil {
		g.degraded("find contact", err, "id", id)
		return nil
	}
	if row == nil {
		return nil
	}
	return contactFromRow(row)
}

// UpdateContact overwrites a contact's attributes.
func (g *Gateway) UpdateContact(ctx context.Context, c *Contact) (*Contact, error) {
	if err := g.validateNamed(c.Name); err != nil {
		return nil, err
	}
	if err := g.validateIdentity(c.ID); err != nil {
		return nil, err
	}

	updated := *c
	updated.OwnerID = g.ownerID
	updated.UpdatedAt = g.clock.Now()

	n, err := g.database.UpdateContact(ctx, sqlc.UpdateContactParams{
		Name:      updated.Name,
		Phone:     updated.Phone,
		Email:     updated.Email,
		Position:  updated.Position,
		Notes:     updated.Notes,
		UpdatedAt: updated.UpdatedAt,
		ID:        updated.ID,
		OwnerID:   updated.OwnerID,
	})
	if err != nil {
		g.logger.Error("update contact failed", "id", updated.ID, "error", err)
		return nil, &PersistenceError{Op: "update contact", Err: err}
	}
	if n == 0 {
		return nil, &PersistenceError{Op: "update contact", Err: ErrNotFound}
	}
	return &updated, nil
}

// SoftDeleteContact marks a contact deleted.
func (g *Gateway) SoftDeleteContact(ctx context.Context, id string) (*DeleteResult, error) {
	if err := g.validateIdentity(id); err != nil {
		return nil, err
	}

	n, err := g.database.SoftDeleteContact(ctx, g.ownerID, id, g.clock.Now())
	if err != nil {
		g.logger.Error("delete contact failed", "id", id, "error", err)
		return nil, &PersistenceError{Op: "delete contact", Err: err}
	}
	if n == 0 {
		return nil, &PersistenceError{Op: "delete contact", Err: ErrNotFound}
	}
	return &DeleteResult{Success: true, ID: id}, nil
}

func (g *Gateway) validateNamed(name string) error {
	var missing []string
	if g.ownerID == "" {
		missing = append(missing, "owner")
	}
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
