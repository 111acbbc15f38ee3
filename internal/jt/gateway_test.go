package jt_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobtrack/internal/jt"
	"jobtrack/internal/testutil"
)

type gatewayFixture struct {
	db      *testutil.CountingDatabase
	logger  *testutil.RecordingLogger
	gateway *jt.Gateway
}

func newGatewayFixture(t *testing.T, opts ...jt.GatewayOption) *gatewayFixture {
	t.Helper()
	db := testutil.NewCountingDatabase(testutil.NewTestDatabase(t))
	logger := testutil.NewRecordingLogger()
	return &gatewayFixture{
		db:      db,
		logger:  logger,
		gateway: jt.NewGateway(db, "owner-1", logger, testutil.FixedClock(), testutil.NewStubIDGenerator(), opts...),
	}
}

func pipeline(names ...string) []jt.Stage {
	stages := make([]jt.Stage, len(names))
	for i, name := range names {
		stages[i] = jt.Stage{Name: name, Icon: "send"}
	}
	return stages
}

func TestGateway_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new application starts at stage 0 and not deleted", func(t *testing.T) {
		f := newGatewayFixture(t)

		app, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, nil)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if app.ID != "id-1" {
			t.Errorf("ID = %q, want %q", app.ID, "id-1")
		}
		if app.OwnerID != "owner-1" {
			t.Errorf("OwnerID = %q, want %q", app.OwnerID, "owner-1")
		}
		if app.CurrentStage != 0 {
			t.Errorf("CurrentStage = %d, want 0", app.CurrentStage)
		}
		if app.IsDeleted {
			t.Error("IsDeleted = true, want false")
		}
		if app.Stages == nil || len(app.Stages) != 0 {
			t.Errorf("Stages = %v, want empty", app.Stages)
		}
		if app.Date.Format(jt.DateLayout) != "2024-01-15" {
			t.Errorf("Date = %v, want the clock date", app.Date)
		}

		stored := f.gateway.Find(ctx, app.ID)
		if stored == nil {
			t.Fatal("Find() = nil after Create")
		}
		if stored.Company != "Acme" || stored.Position != "Engineer" || stored.CurrentStage != 0 {
			t.Errorf("stored = %+v", stored)
		}
	})

	t.Run("ignores caller-supplied id, cursor and deleted flag", func(t *testing.T) {
		f := newGatewayFixture(t)

		app, err := f.gateway.Create(ctx, &jt.Application{
			ID:           "mine",
			Company:      "Acme",
			Position:     "Engineer",
			CurrentStage: 3,
			IsDeleted:    true,
		}, nil)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if app.ID == "mine" || app.CurrentStage != 0 || app.IsDeleted {
			t.Errorf("Create() = %+v", app)
		}
	})

	t.Run("writes stages in order", func(t *testing.T) {
		f := newGatewayFixture(t)

		app, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, pipeline("Applied", "Phone Screen", "Offer"))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if got := f.db.Calls("CreateStage"); got != 3 {
			t.Errorf("CreateStage calls = %d, want 3", got)
		}

		stored := f.gateway.Find(ctx, app.ID)
		if stored == nil {
			t.Fatal("Find() = nil")
		}
		if !equalNames(stageNames(stored), []string{"Applied", "Phone Screen", "Offer"}) {
			t.Errorf("stages = %v", stageNames(stored))
		}
		for i, st := range stored.Stages {
			if st.Position != i {
				t.Errorf("Stages[%d].Position = %d", i, st.Position)
			}
			if st.IsActive != (i == 0) {
				t.Errorf("Stages[%d].IsActive = %v", i, st.IsActive)
			}
		}
	})

	t.Run("missing fields make no store calls", func(t *testing.T) {
		tests := []struct {
			name      string
			app       *jt.Application
			wantField string
		}{
			{"empty company", &jt.Application{Company: "", Position: "Engineer"}, "company"},
			{"blank position", &jt.Application{Company: "Acme", Position: "  "}, "position"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newGatewayFixture(t)

				app, err := f.gateway.Create(ctx, tt.app, pipeline("Applied"))
				var verr *jt.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Create() error = %v, want ValidationError", err)
				}
				if app != nil {
					t.Errorf("Create() app = %+v, want nil", app)
				}
				if len(verr.Fields) != 1 || verr.Fields[0] != tt.wantField {
					t.Errorf("Fields = %v, want [%s]", verr.Fields, tt.wantField)
				}
				if n := f.db.Total(); n != 0 {
					t.Errorf("store calls = %d, want 0", n)
				}
			})
		}
	})

	t.Run("missing owner makes no store calls", func(t *testing.T) {
		db := testutil.NewCountingDatabase(testutil.NewTestDatabase(t))
		g := jt.NewGateway(db, "", jt.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())

		_, err := g.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, nil)
		var verr *jt.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Create() error = %v, want ValidationError", err)
		}
		if db.Total() != 0 {
			t.Errorf("store calls = %d, want 0", db.Total())
		}
	})

	t.Run("application insert failure", func(t *testing.T) {
		f := newGatewayFixture(t)
		f.db.FailOn("CreateApplication", errors.New("disk full"))

		app, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, pipeline("Applied"))
		var perr *jt.PersistenceError
		if !errors.As(err, &perr) {
			t.Fatalf("Create() error = %v, want PersistenceError", err)
		}
		if jt.IsPartial(err) {
			t.Error("IsPartial() = true for a failed primary write")
		}
		if app != nil {
			t.Errorf("Create() app = %+v, want nil", app)
		}
		if f.db.Calls("CreateStage") != 0 {
			t.Error("stages written after the application insert failed")
		}
	})

	t.Run("stage failure keeps the application", func(t *testing.T) {
		f := newGatewayFixture(t)
		f.db.FailNth("CreateStage", 2, errors.New("constraint failed"))

		app, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, pipeline("Applied", "Phone Screen", "Offer"))
		if !jt.IsPartial(err) {
			t.Fatalf("Create() error = %v, want PartialWriteWarning", err)
		}
		var perr *jt.PersistenceError
		if !errors.As(err, &perr) {
			t.Error("PartialWriteWarning does not unwrap to a PersistenceError")
		}
		if app == nil {
			t.Fatal("Create() app = nil on partial write")
		}
		if !equalNames(stageNames(app), []string{"Applied", "Offer"}) {
			t.Errorf("returned stages = %v", stageNames(app))
		}
		if f.db.Calls("CreateStage") != 3 {
			t.Errorf("CreateStage calls = %d, want 3", f.db.Calls("CreateStage"))
		}

		stored := f.gateway.Find(ctx, app.ID)
		if stored == nil {
			t.Fatal("application row rolled back")
		}
		if len(stored.Stages) != 2 {
			t.Errorf("stored stages = %v", stageNames(stored))
		}
		if len(f.logger.Entries("ERROR")) != 1 {
			t.Errorf("ERROR entries = %d, want 1", len(f.logger.Entries("ERROR")))
		}
	})

	t.Run("linked company must belong to the owner", func(t *testing.T) {
		f := newGatewayFixture(t)

		_, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer", CompanyID: "missing"}, nil)
		var verr *jt.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Create() error = %v, want ValidationError", err)
		}
		if verr.Reason != jt.ReasonUnknownReference {
			t.Errorf("Reason = %q, want %q", verr.Reason, jt.ReasonUnknownReference)
		}
		if got, want := verr.Error(), "unknown or deleted reference(s): company_id"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if f.db.Writes() != 0 {
			t.Errorf("writes = %d, want 0", f.db.Writes())
		}
	})

	t.Run("linked company and contact appear in reads", func(t *testing.T) {
		f := newGatewayFixture(t)

		company, err := f.gateway.CreateCompany(ctx, &jt.Company{Name: "Acme Corp", Website: "https://acme.test"})
		if err != nil {
			t.Fatalf("CreateCompany() error = %v", err)
		}
		contact, err := f.gateway.CreateContact(ctx, &jt.Contact{Name: "Riley", Email: "riley@acme.test"})
		if err != nil {
			t.Fatalf("CreateContact() error = %v", err)
		}

		app, err := f.gateway.Create(ctx, &jt.Application{
			Company:   "Acme",
			Position:  "Engineer",
			CompanyID: company.ID,
			ContactID: contact.ID,
		}, nil)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		stored := f.gateway.Find(ctx, app.ID)
		if stored == nil {
			t.Fatal("Find() = nil")
		}
		if stored.CompanySummary == nil || stored.CompanySummary.Name != "Acme Corp" || stored.CompanySummary.Website != "https://acme.test" {
			t.Errorf("CompanySummary = %+v", stored.CompanySummary)
		}
		if stored.ContactSummary == nil || stored.ContactSummary.Email != "riley@acme.test" {
			t.Errorf("ContactSummary = %+v", stored.ContactSummary)
		}
	})
}

func TestGateway_ListByUser(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, f *gatewayFixture) {
		t.Helper()
		apps := []*jt.Application{
			{Company: "Active", Position: "Dev", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
			{Company: "Favorite", Position: "Dev", Favorite: true, Date: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)},
			{Company: "Archived", Position: "Dev", IsArchived: true, Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)},
			{Company: "ArchivedFavorite", Position: "Dev", IsArchived: true, Favorite: true, Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)},
		}
		for _, app := range apps {
			if _, err := f.gateway.Create(ctx, app, pipeline("Applied", "Offer")); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}
		deleted, err := f.gateway.Create(ctx, &jt.Application{Company: "Deleted", Position: "Dev"}, nil)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, err := f.gateway.SoftDelete(ctx, deleted.ID); err != nil {
			t.Fatalf("SoftDelete() error = %v", err)
		}
	}

	companies := func(apps []*jt.Application) []string {
		out := make([]string, len(apps))
		for i, a := range apps {
			out[i] = a.Company
		}
		return out
	}

	tests := []struct {
		filter jt.ListFilter
		want   []string
	}{
		{jt.FilterActive, []string{"Favorite", "Active"}},
		{jt.FilterFavorite, []string{"Favorite"}},
		{jt.FilterArchived, []string{"Archived", "ArchivedFavorite"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			f := newGatewayFixture(t)
			seed(t, f)

			apps := f.gateway.ListByUser(ctx, "owner-1", tt.filter)
			if !equalNames(companies(apps), tt.want) {
				t.Errorf("ListByUser(%s) = %v, want %v", tt.filter, companies(apps), tt.want)
			}
			for _, app := range apps {
				if len(app.Stages) != 2 {
					t.Errorf("%s: stages = %v", app.Company, stageNames(app))
				}
			}
		})
	}

	t.Run("other owners see nothing", func(t *testing.T) {
		f := newGatewayFixture(t)
		seed(t, f)

		if apps := f.gateway.ListByUser(ctx, "owner-2", jt.FilterActive); len(apps) != 0 {
			t.Errorf("ListByUser(owner-2) = %v", companies(apps))
		}
	})

	t.Run("store failure yields an empty slice and a log entry", func(t *testing.T) {
		f := newGatewayFixture(t)
		seed(t, f)
		f.db.FailOn("ListApplications", errors.New("database is locked"))

		apps := f.gateway.ListByUser(ctx, "owner-1", jt.FilterActive)
		if apps == nil || len(apps) != 0 {
			t.Errorf("ListByUser() = %v, want empty non-nil slice", apps)
		}

		entries := f.logger.Entries("ERROR")
		if len(entries) != 1 {
			t.Fatalf("ERROR entries = %d, want 1", len(entries))
		}
		if entries[0].Attr("op") != "list applications" {
			t.Errorf("op = %v", entries[0].Attr("op"))
		}
	})

	t.Run("stage read failure yields an empty slice", func(t *testing.T) {
		f := newGatewayFixture(t)
		seed(t, f)
		f.db.FailNth("FindStagesForApplication", 2, errors.New("i/o error"))

		if apps := f.gateway.ListByUser(ctx, "owner-1", jt.FilterActive); len(apps) != 0 {
			t.Errorf("ListByUser() = %v, want empty", companies(apps))
		}
	})

	t.Run("no owner", func(t *testing.T) {
		f := newGatewayFixture(t)
		if apps := f.gateway.ListByUser(ctx, "", jt.FilterActive); apps == nil || len(apps) != 0 {
			t.Errorf("ListByUser(\"\") = %v", apps)
		}
		if f.db.Total() != 0 {
			t.Errorf("store calls = %d, want 0", f.db.Total())
		}
	})

	t.Run("unknown filter", func(t *testing.T) {
		f := newGatewayFixture(t)
		if apps := f.gateway.ListByUser(ctx, "owner-1", jt.ListFilter("starred")); len(apps) != 0 {
			t.Errorf("ListByUser() = %v", apps)
		}
		if len(f.logger.Entries("ERROR")) != 1 {
			t.Error("unknown filter not logged")
		}
	})
}

func TestGateway_Find(t *testing.T) {
	ctx := context.Background()
	f := newGatewayFixture(t)

	app, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	other := jt.NewGateway(f.db, "owner-2", jt.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())
	if got := other.Find(ctx, app.ID); got != nil {
		t.Errorf("Find() by another owner = %+v, want nil", got)
	}
	if got := f.gateway.Find(ctx, "missing"); got != nil {
		t.Errorf("Find(missing) = %+v, want nil", got)
	}

	f.db.FailOn("FindApplication", errors.New("boom"))
	if got := f.gateway.Find(ctx, app.ID); got != nil {
		t.Errorf("Find() on store error = %+v, want nil", got)
	}
}

func TestGateway_Update(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, f *gatewayFixture, names ...string) *jt.Application {
		t.Helper()
		app, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, pipeline(names...))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return app
	}

	t.Run("persists fields and stage progress", func(t *testing.T) {
		f := newGatewayFixture(t)
		app := create(t, f, "Applied", "Phone Screen", "Offer")

		app.Notes = "Referred by Sam"
		app.Favorite = true
		if _, err := app.ToggleStageCompletion(2); err != nil {
			t.Fatalf("ToggleStageCompletion() error = %v", err)
		}
		app.Stages[1].Note = "Went well"

		updated, err := f.gateway.Update(ctx, app)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !updated.UpdatedAt.Equal(testutil.FixedClock().Now()) {
			t.Errorf("UpdatedAt = %v", updated.UpdatedAt)
		}

		stored := f.gateway.Find(ctx, app.ID)
		if stored == nil {
			t.Fatal("Find() = nil")
		}
		if stored.Notes != "Referred by Sam" || !stored.Favorite || stored.CurrentStage != 2 {
			t.Errorf("stored = %+v", stored)
		}
		if stored.Stages[1].Note != "Went well" {
			t.Errorf("stage note = %q", stored.Stages[1].Note)
		}
		for i, st := range stored.Stages {
			if !st.IsActive {
				t.Errorf("Stages[%d].IsActive = false", i)
			}
		}
	})

	t.Run("added and removed stages", func(t *testing.T) {
		f := newGatewayFixture(t)
		app := create(t, f, "Applied", "Phone Screen", "Offer")

		app.AddStage(jt.Stage{Name: "Accepted", Icon: "trophy"}, testutil.NewPrefixedIDGenerator("new"))
		if err := app.RemoveStage(1); err != nil {
			t.Fatalf("RemoveStage() error = %v", err)
		}

		if _, err := f.gateway.Update(ctx, app); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		stored := f.gateway.Find(ctx, app.ID)
		if !equalNames(stageNames(stored), []string{"Applied", "Offer", "Accepted"}) {
			t.Errorf("stored stages = %v", stageNames(stored))
		}
		for i, st := range stored.Stages {
			if st.Position != i {
				t.Errorf("Stages[%d].Position = %d", i, st.Position)
			}
		}
		if f.db.Calls("SoftDeleteStage") != 1 {
			t.Errorf("SoftDeleteStage calls = %d, want 1", f.db.Calls("SoftDeleteStage"))
		}
	})

	t.Run("stage failures are logged and the loop continues", func(t *testing.T) {
		f := newGatewayFixture(t)
		app := create(t, f, "Applied", "Phone Screen", "Offer")
		f.db.FailNth("UpsertStage", 1, errors.New("busy"))

		app.Stages[0].Note = "first"
		app.Stages[2].Note = "third"
		updated, err := f.gateway.Update(ctx, app)
		if !jt.IsPartial(err) {
			t.Fatalf("Update() error = %v, want PartialWriteWarning", err)
		}
		if updated == nil {
			t.Fatal("Update() app = nil on partial write")
		}
		if f.db.Calls("UpsertStage") != 3 {
			t.Errorf("UpsertStage calls = %d, want 3", f.db.Calls("UpsertStage"))
		}

		stored := f.gateway.Find(ctx, app.ID)
		if stored.Stages[0].Note != "" {
			t.Errorf("failed stage was written: %q", stored.Stages[0].Note)
		}
		if stored.Stages[2].Note != "third" {
			t.Errorf("stage after the failure not written: %q", stored.Stages[2].Note)
		}
		if len(f.logger.Entries("ERROR")) != 1 {
			t.Errorf("ERROR entries = %d, want 1", len(f.logger.Entries("ERROR")))
		}
	})

	t.Run("validation", func(t *testing.T) {
		f := newGatewayFixture(t)
		app := create(t, f, "Applied")
		before := f.db.Total()

		app.Position = ""
		_, err := f.gateway.Update(ctx, app)
		var verr *jt.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Update() error = %v, want ValidationError", err)
		}
		if f.db.Total() != before {
			t.Error("Update() touched the store on invalid input")
		}

		_, err = f.gateway.Update(ctx, &jt.Application{Company: "Acme", Position: "Engineer"})
		if !errors.As(err, &verr) || verr.Fields[0] != "id" {
			t.Errorf("Update() without id error = %v", err)
		}
	})

	t.Run("field-only update keeps stored stages", func(t *testing.T) {
		f := newGatewayFixture(t)
		app := create(t, f, "Applied", "Screen", "Offer")
		if _, err := app.ToggleStageCompletion(1); err != nil {
			t.Fatalf("ToggleStageCompletion() error = %v", err)
		}
		if _, err := f.gateway.Update(ctx, app); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		updated, err := f.gateway.Update(ctx, &jt.Application{
			ID:       app.ID,
			Company:  "Acme",
			Position: "Staff Engineer",
			Date:     app.Date,
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.CurrentStage != 1 {
			t.Errorf("returned CurrentStage = %d, want 1", updated.CurrentStage)
		}

		stored := f.gateway.Find(ctx, app.ID)
		if stored.Position != "Staff Engineer" {
			t.Errorf("Position = %q, want Staff Engineer", stored.Position)
		}
		if !equalNames(stageNames(stored), []string{"Applied", "Screen", "Offer"}) {
			t.Errorf("stored stages = %v, want all three kept", stageNames(stored))
		}
		if stored.CurrentStage != 1 {
			t.Errorf("stored CurrentStage = %d, want 1", stored.CurrentStage)
		}
		if f.db.Calls("SoftDeleteStage") != 0 {
			t.Errorf("SoftDeleteStage calls = %d, want 0", f.db.Calls("SoftDeleteStage"))
		}
	})

	t.Run("field-only update of a missing application", func(t *testing.T) {
		f := newGatewayFixture(t)

		_, err := f.gateway.Update(ctx, &jt.Application{ID: "missing", Company: "Acme", Position: "Engineer"})
		if !errors.Is(err, jt.ErrNotFound) {
			t.Fatalf("Update() error = %v, want ErrNotFound", err)
		}
		if f.db.Writes() != 0 {
			t.Errorf("writes = %d, want 0", f.db.Writes())
		}
	})

	t.Run("deleted linked company does not block stage saves", func(t *testing.T) {
		f := newGatewayFixture(t)
		company, err := f.gateway.CreateCompany(ctx, &jt.Company{Name: "Acme"})
		if err != nil {
			t.Fatalf("CreateCompany() error = %v", err)
		}
		contact, err := f.gateway.CreateContact(ctx, &jt.Contact{Name: "Ada"})
		if err != nil {
			t.Fatalf("CreateContact() error = %v", err)
		}
		created, err := f.gateway.Create(ctx, &jt.Application{
			Company:   "Acme",
			CompanyID: company.ID,
			ContactID: contact.ID,
			Position:  "Engineer",
		}, pipeline("Applied", "Screen", "Offer"))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, err := f.gateway.SoftDeleteCompany(ctx, company.ID); err != nil {
			t.Fatalf("SoftDeleteCompany() error = %v", err)
		}
		if _, err := f.gateway.SoftDeleteContact(ctx, contact.ID); err != nil {
			t.Fatalf("SoftDeleteContact() error = %v", err)
		}

		app := f.gateway.Find(ctx, created.ID)
		if _, err := app.ToggleStageCompletion(1); err != nil {
			t.Fatalf("ToggleStageCompletion() error = %v", err)
		}
		if _, err := f.gateway.Update(ctx, app); err != nil {
			t.Fatalf("Update() after toggling a stage error = %v", err)
		}
		if stored := f.gateway.Find(ctx, app.ID); stored.CurrentStage != 1 {
			t.Errorf("stored CurrentStage = %d, want 1", stored.CurrentStage)
		}

		t.Run("switching to a deleted company is rejected", func(t *testing.T) {
			other, err := f.gateway.CreateCompany(ctx, &jt.Company{Name: "Globex"})
			if err != nil {
				t.Fatalf("CreateCompany() error = %v", err)
			}
			if _, err := f.gateway.SoftDeleteCompany(ctx, other.ID); err != nil {
				t.Fatalf("SoftDeleteCompany() error = %v", err)
			}

			app := f.gateway.Find(ctx, created.ID)
			app.CompanyID = other.ID
			_, err = f.gateway.Update(ctx, app)
			var verr *jt.ValidationError
			if !errors.As(err, &verr) || verr.Fields[0] != "company_id" || verr.Reason != jt.ReasonUnknownReference {
				t.Errorf("Update() error = %v, want unknown company_id reference", err)
			}
		})
	})

	t.Run("another owner's application", func(t *testing.T) {
		f := newGatewayFixture(t)
		app := create(t, f, "Applied")

		other := jt.NewGateway(f.db, "owner-2", jt.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())
		app.Notes = "hijacked"
		_, err := other.Update(ctx, app)
		if !errors.Is(err, jt.ErrNotFound) {
			t.Fatalf("Update() error = %v, want ErrNotFound", err)
		}
		if f.db.Calls("UpsertStage") != 0 {
			t.Error("stages written for an application the owner does not have")
		}
		if stored := f.gateway.Find(ctx, app.ID); stored.Notes != "" {
			t.Errorf("Notes = %q, want unchanged", stored.Notes)
		}
	})
}

func TestGateway_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to stages", func(t *testing.T) {
		f := newGatewayFixture(t)
		app, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, pipeline("Applied", "Offer"))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		result, err := f.gateway.SoftDelete(ctx, app.ID)
		if err != nil {
			t.Fatalf("SoftDelete() error = %v", err)
		}
		if !result.Success || result.ID != app.ID {
			t.Errorf("SoftDelete() = %+v", result)
		}
		if f.gateway.Find(ctx, app.ID) != nil {
			t.Error("Find() returned a deleted application")
		}

		stages, err := f.db.FindStagesForApplication(ctx, "owner-1", app.ID)
		if err != nil {
			t.Fatalf("FindStagesForApplication() error = %v", err)
		}
		if len(stages) != 0 {
			t.Errorf("stages after delete = %d, want 0", len(stages))
		}
	})

	t.Run("missing application", func(t *testing.T) {
		f := newGatewayFixture(t)
		if _, err := f.gateway.SoftDelete(ctx, "missing"); !errors.Is(err, jt.ErrNotFound) {
			t.Errorf("SoftDelete() error = %v, want ErrNotFound", err)
		}
		if f.db.Calls("SoftDeleteStagesForApplication") != 0 {
			t.Error("stage cascade ran for a missing application")
		}
	})

	t.Run("stage cascade failure is partial", func(t *testing.T) {
		f := newGatewayFixture(t)
		app, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, pipeline("Applied"))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		f.db.FailOn("SoftDeleteStagesForApplication", errors.New("busy"))

		result, err := f.gateway.SoftDelete(ctx, app.ID)
		if !jt.IsPartial(err) {
			t.Fatalf("SoftDelete() error = %v, want PartialWriteWarning", err)
		}
		if result == nil || !result.Success {
			t.Errorf("SoftDelete() = %+v, want success", result)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		f := newGatewayFixture(t)
		var verr *jt.ValidationError
		if _, err := f.gateway.SoftDelete(ctx, ""); !errors.As(err, &verr) {
			t.Errorf("SoftDelete(\"\") error = %v, want ValidationError", err)
		}
		if f.db.Total() != 0 {
			t.Errorf("store calls = %d, want 0", f.db.Total())
		}
	})
}

func TestGateway_ToggleArchive(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, f *gatewayFixture) *jt.Application {
		t.Helper()
		app, err := f.gateway.Create(ctx, &jt.Application{Company: "Acme", Position: "Engineer"}, pipeline("Applied"))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return app
	}

	t.Run("flips the flag", func(t *testing.T) {
		f := newGatewayFixture(t)
		app := create(t, f)
		app.Notes = "Closed the role"

		archived, err := f.gateway.ToggleArchive(ctx, app)
		if err != nil {
			t.Fatalf("ToggleArchive() error = %v", err)
		}
		if !archived.IsArchived {
			t.Error("IsArchived = false after toggle")
		}
		if app.IsArchived {
			t.Error("ToggleArchive() mutated its argument")
		}

		stored := f.gateway.Find(ctx, app.ID)
		if !stored.IsArchived || stored.Notes != "Closed the role" {
			t.Errorf("stored = %+v", stored)
		}

		restored, err := f.gateway.ToggleArchive(ctx, archived)
		if err != nil {
			t.Fatalf("second ToggleArchive() error = %v", err)
		}
		if restored.IsArchived {
			t.Error("IsArchived = true after second toggle")
		}
	})

	t.Run("stale copy is ignored by default", func(t *testing.T) {
		f := newGatewayFixture(t)
		app := create(t, f)
		stale := app.Clone()
		if _, err := f.gateway.ToggleArchive(ctx, app); err != nil {
			t.Fatalf("ToggleArchive() error = %v", err)
		}

		stale.Notes = "lost update"
		got, err := f.gateway.ToggleArchive(ctx, stale)
		if err != nil {
			t.Fatalf("ToggleArchive() error = %v, want nil under ignore", err)
		}
		if got.IsArchived || got.Notes != "lost update" {
			t.Errorf("ToggleArchive() = %+v, want the unmodified input", got)
		}

		stored := f.gateway.Find(ctx, app.ID)
		if !stored.IsArchived || stored.Notes != "" {
			t.Errorf("stored = %+v, want untouched", stored)
		}
		if len(f.logger.Entries("WARN")) != 1 {
			t.Errorf("WARN entries = %d, want 1", len(f.logger.Entries("WARN")))
		}
	})

	t.Run("stale copy is reported on request", func(t *testing.T) {
		f := newGatewayFixture(t, jt.WithArchiveConflictPolicy(jt.ArchiveConflictReport))
		app := create(t, f)
		stale := app.Clone()
		if _, err := f.gateway.ToggleArchive(ctx, app); err != nil {
			t.Fatalf("ToggleArchive() error = %v", err)
		}

		got, err := f.gateway.ToggleArchive(ctx, stale)
		if !errors.Is(err, jt.ErrArchiveConflict) {
			t.Fatalf("ToggleArchive() error = %v, want ErrArchiveConflict", err)
		}
		if got == nil || got.IsArchived {
			t.Errorf("ToggleArchive() = %+v, want the unmodified input", got)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		f := newGatewayFixture(t)
		app := create(t, f)
		f.db.FailOn("SetApplicationArchived", errors.New("busy"))

		var perr *jt.PersistenceError
		if _, err := f.gateway.ToggleArchive(ctx, app); !errors.As(err, &perr) {
			t.Errorf("ToggleArchive() error = %v, want PersistenceError", err)
		}
	})
}
