package jt_test

import (
	"testing"

	"jobtrack/internal/jt"
)

func TestStageCatalog(t *testing.T) {
	catalog := jt.StageCatalog()
	if len(catalog) != 7 {
		t.Fatalf("len(StageCatalog()) = %d, want 7", len(catalog))
	}

	// Callers get a copy.
	catalog[0].Name = "changed"
	if jt.StageCatalog()[0].Name != "Applied" {
		t.Error("StageCatalog() exposed its backing array")
	}

	tmpl, ok := jt.LookupStageTemplate("offer")
	if !ok || tmpl.Name != "Offer" || tmpl.Icon != "mail" {
		t.Errorf("LookupStageTemplate(offer) = %+v, %v", tmpl, ok)
	}
	if _, ok := jt.LookupStageTemplate("lunch"); ok {
		t.Error("LookupStageTemplate(lunch) found an entry")
	}

	st := tmpl.Stage()
	if st.ID != "" || st.Name != "Offer" {
		t.Errorf("Stage() = %+v", st)
	}
}

func TestDefaultPipeline(t *testing.T) {
	got := jt.DefaultPipeline()
	want := []string{"Applied", "Phone Screen", "Technical Interview", "Offer"}
	if len(got) != len(want) {
		t.Fatalf("len(DefaultPipeline()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("DefaultPipeline()[%d] = %q, want %q", i, got[i].Name, want[i])
		}
	}
}

func TestParseListFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    jt.ListFilter
		wantErr bool
	}{
		{"", jt.FilterActive, false},
		{"active", jt.FilterActive, false},
		{"favorite", jt.FilterFavorite, false},
		{"archived", jt.FilterArchived, false},
		{"deleted", "", true},
	}
	for _, tt := range tests {
		got, err := jt.ParseListFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseListFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseListFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
