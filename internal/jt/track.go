package jt

// The stage track is a list of stages plus one cursor. Stage k counts as
// completed iff k <= CurrentStage. These methods only touch memory; the
// Gateway persists the result.

// ToggleStageCompletion moves the cursor in response to the user clicking
// stage i. Clicking a completed stage uncompletes it and everything after
// it; clicking an open stage completes it and everything before it. The
// returned cursor may be -1.
func (a *Application) ToggleStageCompletion(i int) (int, error) {
	if i < 0 || i >= len(a.Stages) {
		return a.CurrentStage, ErrStageIndexOutOfRange
	}

	if i <= a.CurrentStage {
		a.CurrentStage = i - 1
	} else {
		a.CurrentStage = i
	}
	a.syncActive()
	return a.CurrentStage, nil
}

// AddStage appends stage at the end of the track. It gets position
// len(Stages) and, when it has no id yet, a fresh one from idgen. The
// cursor does not move and duplicate names are allowed.
func (a *Application) AddStage(stage Stage, idgen IDGenerator) Stage {
	stage.Position = len(a.Stages)
	if stage.ID == "" {
		stage.ID = idgen.New()
	}
	stage.IsActive = stage.Position <= a.CurrentStage
	stage.IsDeleted = false

	a.Stages = append(a.Stages, stage)
	return stage
}

// RemoveStage deletes stage i. A track always keeps at least one stage, so
// removing from a one-stage track returns ErrLastStage and changes nothing.
// Removing at or before the cursor pulls the cursor back by one, not below 0.
func (a *Application) RemoveStage(i int) error {
	if len(a.Stages) <= 1 {
		return ErrLastStage
	}
	if i < 0 || i >= len(a.Stages) {
		return ErrStageIndexOutOfRange
	}

	a.Stages = append(a.Stages[:i], a.Stages[i+1:]...)
	if i <= a.CurrentStage {
		a.CurrentStage = max(0, a.CurrentStage-1)
	}
	a.syncActive()
	return nil
}

// IsStageActive reports whether stage i is completed.
func (a *Application) IsStageActive(i int) bool {
	return i >= 0 && i < len(a.Stages) && i <= a.CurrentStage
}

// CurrentStageName returns the name of the last completed stage, or "" when
// nothing is completed.
func (a *Application) CurrentStageName() string {
	if !a.IsStageActive(a.CurrentStage) {
		return ""
	}
	return a.Stages[a.CurrentStage].Name
}

// normalizeStages rewrites positions from the index and active flags from
// the cursor, the shape the store expects.
func (a *Application) normalizeStages() {
	for i := range a.Stages {
		a.Stages[i].Position = i
	}
	a.syncActive()
}

func (a *Application) syncActive() {
	for i := range a.Stages {
		a.Stages[i].IsActive = i <= a.CurrentStage
	}
}
