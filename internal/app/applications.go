package app

import (
	"context"
	"fmt"
	"time"

	"jobtrack/internal/jt"
)

// NewApplication is the user input for AddApplication. With no Stages the
// default pipeline is used.
type NewApplication struct {
	Company   string
	CompanyID string
	ContactID string
	Position  string
	Notes     string
	URL       string
	Date      time.Time
	Favorite  bool
	Stages    []jt.Stage
}

// AddApplication stores a new application. On a partial write the
// application is still returned along with a notice.
func (a *JTApp) AddApplication(ctx context.Context, in NewApplication) (*jt.Application, error) {
	a.op.Parameters = in.Company + "/" + in.Position

	stages := in.Stages
	if len(stages) == 0 {
		stages = jt.DefaultPipeline()
	}

	created, err := a.gateway.Create(ctx, &jt.Application{
		Company:   in.Company,
		CompanyID: in.CompanyID,
		ContactID: in.ContactID,
		Position:  in.Position,
		Notes:     in.Notes,
		URL:       in.URL,
		Date:      in.Date,
		Favorite:  in.Favorite,
	}, stages)
	if created != nil {
		a.op.MarkMutated()
		a.board.Load(created)
	}
	if err != nil {
		a.op.Fail()
		return created, jt.NewNotice(jt.ActionCreateApplication, err)
	}
	return created, nil
}

// ListApplications returns the owner's applications for filter, one of
// "active", "favorite" or "archived".
func (a *JTApp) ListApplications(ctx context.Context, filter string) ([]*jt.Application, error) {
	f, err := jt.ParseListFilter(filter)
	if err != nil {
		return nil, err
	}
	apps := a.gateway.ListByUser(ctx, a.cfg.OwnerID, f)
	a.board.Load(apps...)
	return apps, nil
}

// ShowApplication returns one application with its stages.
func (a *JTApp) ShowApplication(ctx context.Context, id string) (*jt.Application, error) {
	return a.load(ctx, id)
}

// load returns the board's copy of id, reading it from the store first if
// needed.
func (a *JTApp) load(ctx context.Context, id string) (*jt.Application, error) {
	if app, ok := a.board.Get(id); ok {
		return app, nil
	}
	app := a.gateway.Find(ctx, id)
	if app == nil {
		return nil, fmt.Errorf("application %s: %w", id, jt.ErrNotFound)
	}
	a.board.Load(app)
	return app, nil
}

// ApplicationEdit lists the fields to change. Nil fields are kept.
type ApplicationEdit struct {
	Company   *string
	CompanyID *string
	ContactID *string
	Position  *string
	Notes     *string
	URL       *string
	Date      *time.Time
	Favorite  *bool
}

func (e ApplicationEdit) apply(app *jt.Application) {
	setIf(&app.Company, e.Company)
	setIf(&app.CompanyID, e.CompanyID)
	setIf(&app.ContactID, e.ContactID)
	setIf(&app.Position, e.Position)
	setIf(&app.Notes, e.Notes)
	setIf(&app.URL, e.URL)
	setIf(&app.Date, e.Date)
	setIf(&app.Favorite, e.Favorite)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// EditApplication changes an application's attributes.
func (a *JTApp) EditApplication(ctx context.Context, id string, edit ApplicationEdit) (*jt.Application, error) {
	a.op.Parameters = id
	app, err := a.load(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := app.Clone()
	edit.apply(app)
	return a.persist(ctx, jt.ActionUpdateApplication, snapshot, app)
}

// ToggleFavorite flips the favorite flag.
func (a *JTApp) ToggleFavorite(ctx context.Context, id string) (*jt.Application, error) {
	a.op.Parameters = id
	app, err := a.load(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := app.Clone()
	app.Favorite = !app.Favorite
	return a.persist(ctx, jt.ActionUpdateApplication, snapshot, app)
}

// ArchiveApplication flips the archive flag. When the stored flag changed
// since it was loaded and conflicts are ignored, the application comes back
// unchanged and changed is false.
func (a *JTApp) ArchiveApplication(ctx context.Context, id string) (app *jt.Application, changed bool, err error) {
	a.op.Parameters = id
	current, err := a.load(ctx, id)
	if err != nil {
		return nil, false, err
	}

	result, err := a.gateway.ToggleArchive(ctx, current)
	if err != nil {
		a.op.Fail()
		return result, false, jt.NewNotice(jt.ActionArchiveApplication, err)
	}

	changed = result.IsArchived != current.IsArchived
	if !changed {
		// The loaded copy is stale; the next load rereads the store.
		a.board.Remove(id)
		return result, false, nil
	}
	a.op.MarkMutated()
	a.board.Load(result)
	return result, true, nil
}

// DeleteApplication soft-deletes an application and its stages.
func (a *JTApp) DeleteApplication(ctx context.Context, id string) error {
	a.op.Parameters = id
	result, err := a.gateway.SoftDelete(ctx, id)
	if result != nil && result.Success {
		a.op.MarkMutated()
		a.board.Remove(id)
	}
	if err != nil {
		a.op.Fail()
		return jt.NewNotice(jt.ActionDeleteApplication, err)
	}
	return nil
}

// persist writes app, which the caller already changed in memory, and
// keeps the board consistent with the store:
//   - on success the stored result replaces it;
//   - on a partial write it is reloaded from the store, so the board shows
//     what was actually kept;
//   - on failure snapshot is put back.
func (a *JTApp) persist(ctx context.Context, action jt.Action, snapshot, app *jt.Application) (*jt.Application, error) {
	updated, err := a.gateway.Update(ctx, app)
	switch {
	case err == nil:
		a.op.MarkMutated()
		a.board.Load(updated)
		return updated, nil

	case jt.IsPartial(err):
		a.op.MarkMutated()
		a.op.Fail()
		reloaded := a.gateway.Find(ctx, app.ID)
		if reloaded == nil {
			reloaded = updated
		}
		a.board.Load(reloaded)
		return reloaded, jt.NewNotice(action, err)

	default:
		a.op.Fail()
		if rerr := a.board.Replace(snapshot); rerr != nil {
			a.logger.Warn("restoring application after failed write", "id", snapshot.ID, "error", rerr)
		}
		return nil, jt.NewNotice(action, err)
	}
}
