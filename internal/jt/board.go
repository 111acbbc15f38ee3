package jt

// Board owns the applications a session has loaded, keyed by id. Stage
// operations address applications through it instead of through shared
// globals. A Board is not safe for concurrent use.
type Board struct {
	apps  map[string]*Application
	order []string
	idgen IDGenerator
}

// NewBoard creates an empty Board. idgen supplies ids for added stages.
func NewBoard(idgen IDGenerator) *Board {
	return &Board{
		apps:  make(map[string]*Application),
		idgen: idgen,
	}
}

// Load adds or replaces applications, keeping first-load order.
func (b *Board) Load(apps ...*Application) {
	for _, app := range apps {
		if _, ok := b.apps[app.ID]; !ok {
			b.order = append(b.order, app.ID)
		}
		b.apps[app.ID] = app
	}
}

// Get returns the loaded application with id.
func (b *Board) Get(id string) (*Application, bool) {
	app, ok := b.apps[id]
	return app, ok
}

// Replace swaps in a previously cloned copy, typically to undo an
// in-memory change whose write failed.
func (b *Board) Replace(app *Application) error {
	if _, ok := b.apps[app.ID]; !ok {
		return ErrApplicationNotLoaded
	}
	b.apps[app.ID] = app
	return nil
}

// Remove drops an application from the board.
func (b *Board) Remove(id string) {
	if _, ok := b.apps[id]; !ok {
		return
	}
	delete(b.apps, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Applications returns the loaded applications in load order.
func (b *Board) Applications() []*Application {
	out := make([]*Application, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.apps[id])
	}
	return out
}

// ToggleStageCompletion toggles stage i of application appID and returns
// the new cursor.
func (b *Board) ToggleStageCompletion(appID string, i int) (int, error) {
	app, ok := b.apps[appID]
	if !ok {
		return 0, ErrApplicationNotLoaded
	}
	return app.ToggleStageCompletion(i)
}

// AddStage appends stage to application appID.
func (b *Board) AddStage(appID string, stage Stage) (Stage, error) {
	app, ok := b.apps[appID]
	if !ok {
		return Stage{}, ErrApplicationNotLoaded
	}
	return app.AddStage(stage, b.idgen), nil
}

// RemoveStage removes stage i of application appID.
func (b *Board) RemoveStage(appID string, i int) error {
	app, ok := b.apps[appID]
	if !ok {
		return ErrApplicationNotLoaded
	}
	return app.RemoveStage(i)
}
