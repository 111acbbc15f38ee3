package jt

import (
	"database/sql"
	"time"

	"jobtrack/internal/database/sqlc"
)

// Conversions between in-memory values and sqlc row/param shapes. Optional
// columns come back as their zero values.

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// parseDate accepts a bare date or a full RFC 3339 timestamp. Anything
// else yields the zero time.
func parseDate(s string) time.Time {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// clampCursor keeps a stored cursor inside [-1, n-1]; an empty track
// reads back as 0.
func clampCursor(cursor int64, n int) int {
	if n == 0 {
		return 0
	}
	c := int(cursor)
	if c < -1 {
		return -1
	}
	if c > n-1 {
		return n - 1
	}
	return c
}

func applicationFromRow(row *sqlc.ApplicationSummary, stageRows []*sqlc.Stage) *Application {
	app := &Application{
		ID:         row.ID,
		OwnerID:    row.OwnerID,
		Company:    row.Company,
		CompanyID:  row.CompanyID.String,
		ContactID:  row.ContactID.String,
		Position:   row.Position,
		Notes:      row.Notes.String,
		URL:        row.Url.String,
		Date:       parseDate(row.Date),
		Favorite:   row.Favorite,
		IsArchived: row.IsArchived,
		IsDeleted:  row.IsDeleted,
		Stages:     make([]Stage, 0, len(stageRows)),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	for _, s := range stageRows {
		app.Stages = append(app.Stages, stageFromRow(s))
	}
	app.CurrentStage = clampCursor(row.CurrentStage, len(app.Stages))

	if row.CompanyName.Valid {
		app.CompanySummary = &CompanySummary{
			Name:    row.CompanyName.String,
			Website: row.CompanyWebsite.String,
		}
	}
	if row.ContactName.Valid {
		app.ContactSummary = &ContactSummary{
			Name:  row.ContactName.String,
			Email: row.ContactEmail.String,
		}
	}
	return app
}

func stageFromRow(row *sqlc.Stage) Stage {
	return Stage{
		ID:        row.ID,
		Name:      row.Name,
		Icon:      row.Icon,
		Position:  int(row.Position),
		Note:      row.Note.String,
		IsActive:  row.IsActive,
		IsDeleted: row.IsDeleted,
	}
}

func insertApplicationParams(app *Application) sqlc.InsertApplicationParams {
	return sqlc.InsertApplicationParams{
		ID:           app.ID,
		OwnerID:      app.OwnerID,
		Company:      app.Company,
		CompanyID:    nullString(app.CompanyID),
		ContactID:    nullString(app.ContactID),
		Position:     app.Position,
		Notes:        nullString(app.Notes),
		Url:          nullString(app.URL),
		Date:         formatDate(app.Date),
		Favorite:     app.Favorite,
		IsArchived:   app.IsArchived,
		CurrentStage: int64(app.CurrentStage),
		IsDeleted:    app.IsDeleted,
		CreatedAt:    app.CreatedAt,
		UpdatedAt:    app.UpdatedAt,
	}
}

func updateApplicationParams(app *Application) sqlc.UpdateApplicationParams {
	return sqlc.UpdateApplicationParams{
		Company:      app.Company,
		CompanyID:    nullString(app.CompanyID),
		ContactID:    nullString(app.ContactID),
		Position:     app.Position,
		Notes:        nullString(app.Notes),
		Url:          nullString(app.URL),
		Date:         formatDate(app.Date),
		Favorite:     app.Favorite,
		IsArchived:   app.IsArchived,
		CurrentStage: int64(app.CurrentStage),
		UpdatedAt:    app.UpdatedAt,
		ID:           app.ID,
		OwnerID:      app.OwnerID,
	}
}

func setArchivedParams(app *Application, observed bool) sqlc.SetApplicationArchivedParams {
	return sqlc.SetApplicationArchivedParams{
		NewArchived:      app.IsArchived,
		Company:          app.Company,
		CompanyID:        nullString(app.CompanyID),
		ContactID:        nullString(app.ContactID),
		Position:         app.Position,
		Notes:            nullString(app.Notes),
		Url:              nullString(app.URL),
		Date:             formatDate(app.Date),
		Favorite:         app.Favorite,
		CurrentStage:     int64(app.CurrentStage),
		UpdatedAt:        app.UpdatedAt,
		ID:               app.ID,
		OwnerID:          app.OwnerID,
		ObservedArchived: observed,
	}
}

func insertStageParams(ownerID, appID string, st Stage, now time.Time) sqlc.InsertStageParams {
	return sqlc.InsertStageParams{
		ID:            st.ID,
		OwnerID:       ownerID,
		ApplicationID: appID,
		Name:          st.Name,
		Icon:          st.Icon,
		Position:      int64(st.Position),
		Note:          nullString(st.Note),
		IsActive:      st.IsActive,
		IsDeleted:     false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func upsertStageParams(ownerID, appID string, st Stage, now time.Time) sqlc.UpsertStageParams {
	return sqlc.UpsertStageParams{
		ID:            st.ID,
		OwnerID:       ownerID,
		ApplicationID: appID,
		Name:          st.Name,
		Icon:          st.Icon,
		Position:      int64(st.Position),
		Note:          nullString(st.Note),
		IsActive:      st.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func companyFromRow(row *sqlc.Company) *Company {
	return &Company{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Phone:     row.Phone,
		Email:     row.Email,
		Website:   row.Website,
		Notes:     row.Notes,
		IsDeleted: row.IsDeleted,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func contactFromRow(row *sqlc.Contact) *Contact {
	return &Contact{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Phone:     row.Phone,
		Email:     row.Email,
		Position:  row.Position,
		Notes:     row.Notes,
		IsDeleted: row.IsDeleted,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// listParams maps a filter onto the summary query. Favorites exclude
// archived applications.
func listParams(ownerID string, filter ListFilter) (sqlc.ListApplicationSummariesParams, bool) {
	p := sqlc.ListApplicationSummariesParams{OwnerID: ownerID, FavoriteOnly: false}
	switch filter {
	case FilterActive:
	case FilterFavorite:
		p.FavoriteOnly = true
	case FilterArchived:
		p.IsArchived = true
	default:
		return p, false
	}
	return p, true
}
