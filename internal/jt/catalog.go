package jt

// StageTemplate is a predefined stage users can add by key.
type StageTemplate struct {
	Key  string
	Name string
	Icon string
}

var stageCatalog = []StageTemplate{
	{Key: "applied", Name: "Applied", Icon: "send"},
	{Key: "phone_screen", Name: "Phone Screen", Icon: "phone"},
	{Key: "technical", Name: "Technical Interview", Icon: "code"},
	{Key: "onsite", Name: "Onsite", Icon: "users"},
	{Key: "offer", Name: "Offer", Icon: "mail"},
	{Key: "accepted", Name: "Accepted", Icon: "trophy"},
	{Key: "rejected", Name: "Rejected", Icon: "x"},
}

// defaultPipeline lists the catalog keys seeded into a new application.
var defaultPipeline = []string{"applied", "phone_screen", "technical", "offer"}

// StageCatalog returns the built-in stage templates.
func StageCatalog() []StageTemplate {
	out := make([]StageTemplate, len(stageCatalog))
	copy(out, stageCatalog)
	return out
}

// LookupStageTemplate finds a catalog entry by key.
func LookupStageTemplate(key string) (StageTemplate, bool) {
	for _, t := range stageCatalog {
		if t.Key == key {
			return t, true
		}
	}
	return StageTemplate{}, false
}

// Stage returns a fresh, unsaved stage built from the template.
func (t StageTemplate) Stage() Stage {
	return Stage{Name: t.Name, Icon: t.Icon}
}

// DefaultPipeline returns the stages a new application starts with.
func DefaultPipeline() []Stage {
	stages := make([]Stage, 0, len(defaultPipeline))
	for _, key := range defaultPipeline {
		t, _ := LookupStageTemplate(key)
		stages = append(stages, t.Stage())
	}
	return stages
}
