package app

import (
	"context"
	"fmt"

	"jobtrack/internal/jt"
)

// AddCompany stores a new company.
func (a *JTApp) AddCompany(ctx context.Context, c *jt.Company) (*jt.Company, error) {
	a.op.Parameters = c.Name
	created, err := a.gateway.CreateCompany(ctx, c)
	if err != nil {
		a.op.Fail()
		return nil, jt.NewNotice(jt.ActionSaveCompany, err)
	}
	a.op.MarkMutated()
	return created, nil
}

// ListCompanies returns the owner's companies.
func (a *JTApp) ListCompanies(ctx context.Context) []*jt.Company {
	return a.gateway.ListCompanies(ctx)
}

// CompanyEdit lists the company fields to change. Nil fields are kept.
type CompanyEdit struct {
	Name    *string
	Phone   *string
	Email   *string
	Website *string
	Notes   *string
}

// EditCompany changes a company's attributes.
func (a *JTApp) EditCompany(ctx context.Context, id string, edit CompanyEdit) (*jt.Company, error) {
	a.op.Parameters = id
	c := a.gateway.FindCompany(ctx, id)
	if c == nil {
		return nil, fmt.Errorf("company %s: %w", id, jt.ErrNotFound)
	}
	setIf(&c.Name, edit.Name)
	setIf(&c.Phone, edit.Phone)
	setIf(&c.Email, edit.Email)
	setIf(&c.Website, edit.Website)
	setIf(&c.Notes, edit.Notes)

	updated, err := a.gateway.UpdateCompany(ctx, c)
	if err != nil {
		a.op.Fail()
		return nil, jt.NewNotice(jt.ActionSaveCompany, err)
	}
	a.op.MarkMutated()
	return updated, nil
}

// DeleteCompany soft-deletes a company.
func (a *JTApp) DeleteCompany(ctx context.Context, id string) error {
	a.op.Parameters = id
	if _, err := a.gateway.SoftDeleteCompany(ctx, id); err != nil {
		a.op.Fail()
		return jt.NewNotice(jt.ActionDeleteCompany, err)
	}
	a.op.MarkMutated()
	return nil
}

// AddContact stores a new contact.
func (a *JTApp) AddContact(ctx context.Context, c *jt.Contact) (*jt.Contact, error) {
	a.op.Parameters = c.Name
	created, err := a.gateway.CreateContact(ctx, c)
	if err != nil {
		a.op.Fail()
		return nil, jt.NewNotice(jt.ActionSaveContact, err)
	}
	a.op.MarkMutated()
	return created, nil
}

// ListContacts returns the owner's contacts.
func (a *JTApp) ListContacts(ctx context.Context) []*jt.Contact {
	return a.gateway.ListContacts(ctx)
}

// ContactEdit lists the contact fields to change. Nil fields are kept.
type ContactEdit struct {
	Name     *string
	Phone    *string
	Email    *string
	Position *string
	Notes    *string
}

// EditContact changes a contact's attributes.
func (a *JTApp) EditContact(ctx context.Context, id string, edit ContactEdit) (*jt.Contact, error) {
	a.op.Parameters = id
	c := a.gateway.FindContact(ctx, id)
	if c == nil {
		return nil, fmt.Errorf("contact %s: %w", id, jt.ErrNotFound)
	}
	setIf(&c.Name, edit.Name)
	setIf(&c.Phone, edit.Phone)
	setIf(&c.Email, edit.Email)
	setIf(&c.Position, edit.Position)
	setIf(&c.Notes, edit.Notes)

	updated, err := a.gateway.UpdateContact(ctx, c)
	if err != nil {
		a.op.Fail()
		return nil, jt.NewNotice(jt.ActionSaveContact, err)
	}
	a.op.MarkMutated()
	return updated, nil
}

// DeleteContact soft-deletes a contact.
func (a *JTApp) DeleteContact(ctx context.Context, id string) error {
	a.op.Parameters = id
	if _, err := a.gateway.SoftDeleteContact(ctx, id); err != nil {
		a.op.Fail()
		return jt.NewNotice(jt.ActionDeleteContact, err)
	}
	a.op.MarkMutated()
	return nil
}
