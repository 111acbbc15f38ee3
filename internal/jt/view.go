package jt

import (
	"fmt"
	"strings"
)

// StageView configures how a stage track is shown. One renderer serves
// every listing; the differences between them live here.
type StageView struct {
	// ShowNotes includes each stage's note.
	ShowNotes bool
	// CelebrateOnStage names the stage (by id or case-insensitive name)
	// whose completion is celebrated. Empty disables it.
	CelebrateOnStage string
}

// StageLine is one rendered stage.
type StageLine struct {
	Index     int
	Name      string
	Icon      Icon
	Completed bool
	Current   bool
	Note      string
}

// RenderStageTrack lays out app's stages for display.
func RenderStageTrack(app *Application, view StageView, icons IconResolver) []StageLine {
	lines := make([]StageLine, len(app.Stages))
	for i, st := range app.Stages {
		lines[i] = StageLine{
			Index:     i,
			Name:      st.Name,
			Icon:      icons.Resolve(st.Icon),
			Completed: app.IsStageActive(i),
			Current:   i == app.CurrentStage,
		}
		if view.ShowNotes {
			lines[i].Note = st.Note
		}
	}
	return lines
}

// String renders the line as "[x] 2 ★ Offer (note)".
func (l StageLine) String() string {
	mark := " "
	if l.Completed {
		mark = "x"
	}
	s := fmt.Sprintf("[%s] %d %s %s", mark, l.Index, l.Icon, l.Name)
	if l.Current {
		s += " <"
	}
	if l.Note != "" {
		s += " (" + l.Note + ")"
	}
	return s
}

// Celebrates reports whether moving the cursor from prevCursor to
// app.CurrentStage completed the celebrated stage.
func (v StageView) Celebrates(app *Application, prevCursor int) bool {
	if v.CelebrateOnStage == "" {
		return false
	}
	for i := max(prevCursor+1, 0); i <= app.CurrentStage && i < len(app.Stages); i++ {
		st := app.Stages[i]
		if st.ID == v.CelebrateOnStage || strings.EqualFold(st.Name, v.CelebrateOnStage) {
			return true
		}
	}
	return false
}
