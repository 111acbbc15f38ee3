package app

import (
	"context"
	"fmt"

	"jobtrack/internal/jt"
)

// ToggleStage toggles stage i of application appID and saves the track.
// celebrate is true when the toggle completed the configured celebration
// stage.
func (a *JTApp) ToggleStage(ctx context.Context, appID string, i int) (app *jt.Application, celebrate bool, err error) {
	a.op.Parameters = fmt.Sprintf("%s#%d", appID, i)
	current, err := a.load(ctx, appID)
	if err != nil {
		return nil, false, err
	}

	snapshot := current.Clone()
	prev := current.CurrentStage
	if _, err := a.board.ToggleStageCompletion(appID, i); err != nil {
		return nil, false, jt.NewNotice(jt.ActionToggleStage, err)
	}

	updated, err := a.persist(ctx, jt.ActionToggleStage, snapshot, current)
	if updated == nil {
		return nil, false, err
	}
	return updated, a.view.Celebrates(updated, prev), err
}

// AddStage appends stage to application appID and saves the track.
func (a *JTApp) AddStage(ctx context.Context, appID string, stage jt.Stage) (*jt.Application, error) {
	a.op.Parameters = appID + "+" + stage.Name
	current, err := a.load(ctx, appID)
	if err != nil {
		return nil, err
	}

	snapshot := current.Clone()
	if _, err := a.board.AddStage(appID, stage); err != nil {
		return nil, jt.NewNotice(jt.ActionAddStage, err)
	}
	return a.persist(ctx, jt.ActionAddStage, snapshot, current)
}

// RemoveStage removes stage i of application appID and saves the track.
// The last remaining stage cannot be removed.
func (a *JTApp) RemoveStage(ctx context.Context, appID string, i int) (*jt.Application, error) {
	a.op.Parameters = fmt.Sprintf("%s#%d", appID, i)
	current, err := a.load(ctx, appID)
	if err != nil {
		return nil, err
	}

	snapshot := current.Clone()
	if err := a.board.RemoveStage(appID, i); err != nil {
		return nil, jt.NewNotice(jt.ActionRemoveStage, err)
	}
	return a.persist(ctx, jt.ActionRemoveStage, snapshot, current)
}

// RenderStages lays out app's track with the configured view and icons.
func (a *JTApp) RenderStages(app *jt.Application) []jt.StageLine {
	return jt.RenderStageTrack(app, a.view, a.icons)
}

// StageFromInput builds a stage from a catalog key or, failing that, a
// free-form name. A non-empty icon overrides the template's.
func StageFromInput(arg, icon string) jt.Stage {
	st := jt.Stage{Name: arg}
	if tmpl, ok := jt.LookupStageTemplate(arg); ok {
		st = tmpl.Stage()
	}
	if icon != "" {
		st.Icon = icon
	}
	return st
}
