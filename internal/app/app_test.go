package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jobtrack/internal/config"
	"jobtrack/internal/jt"
	"jobtrack/internal/testutil"
	"jobtrack/internal/vault"
)

// newTestConfig returns a sqlite config under a temp dir that publishes to
// a filesystem vault at vaultRoot.
func newTestConfig(t *testing.T, vaultRoot string) *config.Config {
	t.Helper()

	cfg := config.NewConfig("owner-1", t.TempDir())
	cfg.Encryption = config.EncryptionConfig{Type: "test"}
	cfg.Vaults = []config.VaultConfig{{Type: "filesystem", Name: "local", FSVaultRoot: vaultRoot}}
	cfg.Display.CelebrateOnStage = "Offer"
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *JTApp {
	t.Helper()

	if err := MigrateStore(cfg); err != nil {
		t.Fatalf("MigrateStore() error = %v", err)
	}
	a, err := NewJTApp(context.Background(), cfg, "Test")
	if err != nil {
		t.Fatalf("NewJTApp() error = %v", err)
	}
	return a
}

func closeApp(t *testing.T, a *JTApp) {
	t.Helper()
	if err := a.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func snapshotVersion(t *testing.T, cfg *config.Config) int64 {
	t.Helper()

	v, err := vault.NewFileSystemVault("local", cfg.Vaults[0].FSVaultRoot)
	if err != nil {
		t.Fatalf("NewFileSystemVault() error = %v", err)
	}
	version, err := v.ArtifactVersion(context.Background(), cfg.OwnerID, jt.ArtifactDatabase)
	if err != nil {
		t.Fatalf("ArtifactVersion() error = %v", err)
	}
	return version
}

func addAcme(t *testing.T, a *JTApp) *jt.Application {
	t.Helper()

	app, err := a.AddApplication(context.Background(), NewApplication{Company: "Acme", Position: "Engineer"})
	if err != nil {
		t.Fatalf("AddApplication() error = %v", err)
	}
	return app
}

func TestNewJTApp(t *testing.T) {
	ctx := context.Background()

	t.Run("requires migrated store", func(t *testing.T) {
		cfg := newTestConfig(t, t.TempDir())
		_, err := NewJTApp(ctx, cfg, "Test")
		if err == nil || !strings.Contains(err.Error(), "jt db migrate") {
			t.Fatalf("NewJTApp() error = %v, want migrate hint", err)
		}
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := newTestConfig(t, t.TempDir())
		cfg.OwnerID = ""
		if _, err := NewJTApp(ctx, cfg, "Test"); err == nil {
			t.Fatal("NewJTApp() expected error for missing owner")
		}
	})

	t.Run("memory store without vault", func(t *testing.T) {
		cfg := config.NewConfig("owner-1", t.TempDir())
		cfg.Database = config.DatabaseConfig{Type: "memory"}
		cfg.Encryption = config.EncryptionConfig{Type: "none"}

		a, err := NewJTApp(ctx, cfg, "Test")
		if err != nil {
			t.Fatalf("NewJTApp() error = %v", err)
		}
		addAcme(t, a)
		closeApp(t, a)
	})

	t.Run("direct icons", func(t *testing.T) {
		cfg := newTestConfig(t, t.TempDir())
		cfg.Display.Icons = "direct"
		a := newTestApp(t, cfg)
		defer closeApp(t, a)

		if got := a.Icons().Resolve("🚀"); got != "🚀" {
			t.Errorf("Resolve() = %q, want the stored icon", got)
		}
	})
}

func TestJTApp_AddApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds default pipeline", func(t *testing.T) {
		a := newTestApp(t, newTestConfig(t, t.TempDir()))
		defer closeApp(t, a)

		app := addAcme(t, a)
		if app.CurrentStage != 0 || app.IsDeleted {
			t.Errorf("CurrentStage = %d, IsDeleted = %v, want 0, false", app.CurrentStage, app.IsDeleted)
		}
		if len(app.Stages) != len(jt.DefaultPipeline()) {
			t.Errorf("len(Stages) = %d, want %d", len(app.Stages), len(jt.DefaultPipeline()))
		}
		if !a.Operation().Mutated() {
			t.Error("Mutated() = false after create")
		}
	})

	t.Run("validation notice", func(t *testing.T) {
		a := newTestApp(t, newTestConfig(t, t.TempDir()))
		defer closeApp(t, a)

		_, err := a.AddApplication(ctx, NewApplication{Company: "Acme"})
		var notice *jt.Notice
		if !errors.As(err, &notice) {
			t.Fatalf("AddApplication() error = %v, want *jt.Notice", err)
		}
		if !strings.HasPrefix(notice.Error(), "Cannot add application") {
			t.Errorf("Error() = %q", notice.Error())
		}
		if a.Operation().Mutated() {
			t.Error("Mutated() = true after rejected create")
		}
		if a.Operation().Status != "error" {
			t.Errorf("Status = %q, want error", a.Operation().Status)
		}
	})
}

func TestJTApp_ListAndShow(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, newTestConfig(t, t.TempDir()))
	defer closeApp(t, a)

	app := addAcme(t, a)

	apps, err := a.ListApplications(ctx, "")
	if err != nil {
		t.Fatalf("ListApplications() error = %v", err)
	}
	if len(apps) != 1 || apps[0].ID != app.ID {
		t.Fatalf("ListApplications() = %v, want [%s]", apps, app.ID)
	}

	if _, err := a.ListApplications(ctx, "everything"); err == nil {
		t.Error("ListApplications() expected error for unknown filter")
	}

	got, err := a.ShowApplication(ctx, app.ID)
	if err != nil {
		t.Fatalf("ShowApplication() error = %v", err)
	}
	if got.Company != "Acme" {
		t.Errorf("Company = %q, want Acme", got.Company)
	}

	if _, err := a.ShowApplication(ctx, "missing"); !errors.Is(err, jt.ErrNotFound) {
		t.Errorf("ShowApplication() error = %v, want ErrNotFound", err)
	}
}

func TestJTApp_EditApplication(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, newTestConfig(t, t.TempDir()))
	defer closeApp(t, a)

	app := addAcme(t, a)

	position := "Staff Engineer"
	got, err := a.EditApplication(ctx, app.ID, ApplicationEdit{Position: &position})
	if err != nil {
		t.Fatalf("EditApplication() error = %v", err)
	}
	if got.Position != position || got.Company != "Acme" {
		t.Errorf("got %q at %q, want %q at Acme", got.Position, got.Company, position)
	}

	t.Run("failed write restores board copy", func(t *testing.T) {
		empty := ""
		if _, err := a.EditApplication(ctx, app.ID, ApplicationEdit{Company: &empty}); err == nil {
			t.Fatal("EditApplication() expected validation error")
		}
		current, err := a.ShowApplication(ctx, app.ID)
		if err != nil {
			t.Fatalf("ShowApplication() error = %v", err)
		}
		if current.Company != "Acme" {
			t.Errorf("Company = %q after failed edit, want Acme", current.Company)
		}
	})

	t.Run("favorite toggles", func(t *testing.T) {
		got, err := a.ToggleFavorite(ctx, app.ID)
		if err != nil {
			t.Fatalf("ToggleFavorite() error = %v", err)
		}
		if !got.Favorite {
			t.Error("Favorite = false after toggle")
		}
		favorites, _ := a.ListApplications(ctx, "favorite")
		if len(favorites) != 1 {
			t.Errorf("len(favorites) = %d, want 1", len(favorites))
		}
	})
}

func TestJTApp_Stages(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, newTestConfig(t, t.TempDir()))
	defer closeApp(t, a)

	app := addAcme(t, a)
	offer := len(app.Stages) - 1

	got, celebrate, err := a.ToggleStage(ctx, app.ID, offer)
	if err != nil {
		t.Fatalf("ToggleStage() error = %v", err)
	}
	if got.CurrentStage != offer || !celebrate {
		t.Errorf("CurrentStage = %d, celebrate = %v, want %d, true", got.CurrentStage, celebrate, offer)
	}

	got, celebrate, err = a.ToggleStage(ctx, app.ID, offer)
	if err != nil {
		t.Fatalf("ToggleStage() error = %v", err)
	}
	if got.CurrentStage != offer-1 || celebrate {
		t.Errorf("CurrentStage = %d, celebrate = %v, want %d, false", got.CurrentStage, celebrate, offer-1)
	}

	stored := a.gateway.Find(ctx, app.ID)
	if stored.CurrentStage != offer-1 {
		t.Errorf("stored CurrentStage = %d, want %d", stored.CurrentStage, offer-1)
	}

	t.Run("out of range", func(t *testing.T) {
		_, _, err := a.ToggleStage(ctx, app.ID, 99)
		if !errors.Is(err, jt.ErrStageIndexOutOfRange) {
			t.Errorf("ToggleStage() error = %v, want ErrStageIndexOutOfRange", err)
		}
	})

	t.Run("add from catalog and by name", func(t *testing.T) {
		got, err := a.AddStage(ctx, app.ID, StageFromInput("onsite", ""))
		if err != nil {
			t.Fatalf("AddStage() error = %v", err)
		}
		last := got.Stages[len(got.Stages)-1]
		if last.Name != "Onsite" || last.Icon != "users" {
			t.Errorf("last stage = %+v, want Onsite/users", last)
		}

		got, err = a.AddStage(ctx, app.ID, StageFromInput("Take-home", "code"))
		if err != nil {
			t.Fatalf("AddStage() error = %v", err)
		}
		if len(got.Stages) != offer+3 {
			t.Errorf("len(Stages) = %d, want %d", len(got.Stages), offer+3)
		}
		if got.CurrentStage != offer-1 {
			t.Errorf("CurrentStage = %d after add, want %d", got.CurrentStage, offer-1)
		}
	})

	t.Run("remove shifts cursor", func(t *testing.T) {
		got, err := a.RemoveStage(ctx, app.ID, 0)
		if err != nil {
			t.Fatalf("RemoveStage() error = %v", err)
		}
		if got.CurrentStage != offer-2 {
			t.Errorf("CurrentStage = %d, want %d", got.CurrentStage, offer-2)
		}
		stored := a.gateway.Find(ctx, app.ID)
		if len(stored.Stages) != len(got.Stages) {
			t.Errorf("stored stages = %d, want %d", len(stored.Stages), len(got.Stages))
		}
	})

	t.Run("render", func(t *testing.T) {
		current, _ := a.ShowApplication(ctx, app.ID)
		lines := a.RenderStages(current)
		if len(lines) != len(current.Stages) {
			t.Fatalf("len(lines) = %d, want %d", len(lines), len(current.Stages))
		}
		if !lines[0].Completed {
			t.Error("first stage not rendered as completed")
		}
	})
}

func TestJTApp_RemoveLastStage(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, newTestConfig(t, t.TempDir()))
	defer closeApp(t, a)

	app, err := a.AddApplication(ctx, NewApplication{
		Company:  "Acme",
		Position: "Engineer",
		Stages:   []jt.Stage{{Name: "Applied"}},
	})
	if err != nil {
		t.Fatalf("AddApplication() error = %v", err)
	}

	_, err = a.RemoveStage(ctx, app.ID, 0)
	if !errors.Is(err, jt.ErrLastStage) {
		t.Fatalf("RemoveStage() error = %v, want ErrLastStage", err)
	}
	current, _ := a.ShowApplication(ctx, app.ID)
	if len(current.Stages) != 1 {
		t.Errorf("len(Stages) = %d, want 1", len(current.Stages))
	}
}

func TestJTApp_ArchiveAndDelete(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, newTestConfig(t, t.TempDir()))
	defer closeApp(t, a)

	app := addAcme(t, a)

	got, changed, err := a.ArchiveApplication(ctx, app.ID)
	if err != nil {
		t.Fatalf("ArchiveApplication() error = %v", err)
	}
	if !changed || !got.IsArchived {
		t.Errorf("changed = %v, IsArchived = %v, want true, true", changed, got.IsArchived)
	}

	archived, _ := a.ListApplications(ctx, "archived")
	if len(archived) != 1 {
		t.Errorf("len(archived) = %d, want 1", len(archived))
	}
	active, _ := a.ListApplications(ctx, "active")
	if len(active) != 0 {
		t.Errorf("len(active) = %d, want 0", len(active))
	}

	if err := a.DeleteApplication(ctx, app.ID); err != nil {
		t.Fatalf("DeleteApplication() error = %v", err)
	}
	if _, err := a.ShowApplication(ctx, app.ID); !errors.Is(err, jt.ErrNotFound) {
		t.Errorf("ShowApplication() error = %v, want ErrNotFound", err)
	}

	err = a.DeleteApplication(ctx, app.ID)
	var notice *jt.Notice
	if !errors.As(err, &notice) || !errors.Is(err, jt.ErrNotFound) {
		t.Errorf("second DeleteApplication() error = %v, want notice wrapping ErrNotFound", err)
	}
}

func TestJTApp_Directory(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, newTestConfig(t, t.TempDir()))
	defer closeApp(t, a)

	company, err := a.AddCompany(ctx, &jt.Company{Name: "Acme", Website: "acme.example"})
	if err != nil {
		t.Fatalf("AddCompany() error = %v", err)
	}

	name := "Acme Corp"
	updated, err := a.EditCompany(ctx, company.ID, CompanyEdit{Name: &name})
	if err != nil {
		t.Fatalf("EditCompany() error = %v", err)
	}
	if updated.Name != name || updated.Website != "acme.example" {
		t.Errorf("EditCompany() = %+v", updated)
	}

	contact, err := a.AddContact(ctx, &jt.Contact{Name: "Ada"})
	if err != nil {
		t.Fatalf("AddContact() error = %v", err)
	}

	app, err := a.AddApplication(ctx, NewApplication{
		Company:   "Acme Corp",
		CompanyID: company.ID,
		ContactID: contact.ID,
		Position:  "Engineer",
	})
	if err != nil {
		t.Fatalf("AddApplication() error = %v", err)
	}
	shown := a.gateway.Find(ctx, app.ID)
	if shown.CompanySummary == nil || shown.CompanySummary.Name != name {
		t.Errorf("CompanySummary = %+v, want %s", shown.CompanySummary, name)
	}

	if got := a.ListContacts(ctx); len(got) != 1 {
		t.Errorf("len(ListContacts()) = %d, want 1", len(got))
	}

	if err := a.DeleteCompany(ctx, company.ID); err != nil {
		t.Fatalf("DeleteCompany() error = %v", err)
	}
	toggled, _, err := a.ToggleStage(ctx, app.ID, 1)
	if err != nil {
		t.Fatalf("ToggleStage() after deleting the linked company error = %v", err)
	}
	if toggled.CurrentStage != 1 {
		t.Errorf("CurrentStage = %d, want 1", toggled.CurrentStage)
	}
	if got := a.ListCompanies(ctx); len(got) != 0 {
		t.Errorf("len(ListCompanies()) = %d after delete, want 0", len(got))
	}
	if _, err := a.EditCompany(ctx, company.ID, CompanyEdit{Name: &name}); !errors.Is(err, jt.ErrNotFound) {
		t.Errorf("EditCompany() error = %v, want ErrNotFound", err)
	}

	email := "ada@example.com"
	if _, err := a.EditContact(ctx, contact.ID, ContactEdit{Email: &email}); err != nil {
		t.Fatalf("EditContact() error = %v", err)
	}
	if err := a.DeleteContact(ctx, contact.ID); err != nil {
		t.Fatalf("DeleteContact() error = %v", err)
	}
}

func TestJTApp_Snapshots(t *testing.T) {
	ctx := context.Background()
	vaultRoot := t.TempDir()
	cfg := newTestConfig(t, vaultRoot)

	t.Run("read-only operation does not publish", func(t *testing.T) {
		a := newTestApp(t, cfg)
		if _, err := a.ListApplications(ctx, ""); err != nil {
			t.Fatalf("ListApplications() error = %v", err)
		}
		closeApp(t, a)

		if v := snapshotVersion(t, cfg); v != 0 {
			t.Errorf("snapshot version = %d, want 0", v)
		}
	})

	a := newTestApp(t, cfg)
	app := addAcme(t, a)
	closeApp(t, a)

	if v := snapshotVersion(t, cfg); v != 1 {
		t.Fatalf("snapshot version = %d, want 1", v)
	}

	t.Run("store behind vault is refused", func(t *testing.T) {
		other := newTestConfig(t, vaultRoot)
		if err := MigrateStore(other); err != nil {
			t.Fatalf("MigrateStore() error = %v", err)
		}
		_, err := NewJTApp(ctx, other, "Test")
		if err == nil || !strings.Contains(err.Error(), "restore") {
			t.Fatalf("NewJTApp() error = %v, want restore hint", err)
		}
	})

	t.Run("restore on another machine", func(t *testing.T) {
		other := newTestConfig(t, vaultRoot)

		version, err := RestoreSnapshot(ctx, other, "")
		if err != nil {
			t.Fatalf("RestoreSnapshot() error = %v", err)
		}
		if version != 1 {
			t.Errorf("RestoreSnapshot() = %d, want 1", version)
		}

		restored, err := NewJTApp(ctx, other, "Test")
		if err != nil {
			t.Fatalf("NewJTApp() after restore error = %v", err)
		}
		defer closeApp(t, restored)

		got, err := restored.ShowApplication(ctx, app.ID)
		if err != nil {
			t.Fatalf("ShowApplication() error = %v", err)
		}
		if got.Company != "Acme" || len(got.Stages) != len(app.Stages) {
			t.Errorf("restored application = %+v", got)
		}
	})

	t.Run("restore without snapshot", func(t *testing.T) {
		empty := newTestConfig(t, t.TempDir())
		if _, err := RestoreSnapshot(ctx, empty, ""); err == nil {
			t.Fatal("RestoreSnapshot() expected error without a snapshot")
		}
	})
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	vaultRoot := t.TempDir()

	cfg := config.NewConfig("owner-1", t.TempDir())
	cfg.Vaults = []config.VaultConfig{{Type: "filesystem", Name: "local", FSVaultRoot: vaultRoot}}

	if err := Initialize(ctx, cfg, "correct horse"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	v, err := vault.NewFileSystemVault("local", vaultRoot)
	if err != nil {
		t.Fatalf("NewFileSystemVault() error = %v", err)
	}
	for _, name := range []jt.Artifact{jt.ArtifactPublicKey, jt.ArtifactPrivateKey} {
		version, err := v.ArtifactVersion(ctx, cfg.OwnerID, name)
		if err != nil || version != 1 {
			t.Errorf("ArtifactVersion(%s) = %d, %v, want 1", name, version, err)
		}
	}

	a, err := NewJTApp(ctx, cfg, "Test")
	if err != nil {
		t.Fatalf("NewJTApp() after Initialize error = %v", err)
	}
	addAcme(t, a)
	closeApp(t, a)

	t.Run("restore fetches keys", func(t *testing.T) {
		other := config.NewConfig("owner-1", t.TempDir())
		other.Vaults = cfg.Vaults

		if _, err := RestoreSnapshot(ctx, other, "wrong"); err == nil {
			t.Fatal("RestoreSnapshot() expected error for wrong passphrase")
		}
		version, err := RestoreSnapshot(ctx, other, "correct horse")
		if err != nil {
			t.Fatalf("RestoreSnapshot() error = %v", err)
		}
		if version != 1 {
			t.Errorf("RestoreSnapshot() = %d, want 1", version)
		}
		info, err := os.Stat(other.Encryption.PrivateKeyPath)
		if err != nil {
			t.Fatalf("private key not fetched: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("private key mode = %o, want 600", perm)
		}
	})
}

func TestStageFromInput(t *testing.T) {
	tests := []struct {
		arg, icon string
		want      jt.Stage
	}{
		{"offer", "", jt.Stage{Name: "Offer", Icon: "mail"}},
		{"offer", "star", jt.Stage{Name: "Offer", Icon: "star"}},
		{"Take-home", "", jt.Stage{Name: "Take-home"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg+"/"+tt.icon, func(t *testing.T) {
			if got := StageFromInput(tt.arg, tt.icon); got != tt.want {
				t.Errorf("StageFromInput() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnapshotFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	enc := testutil.NewTestEncryptor()
	v := testutil.NewTestVault()

	plain := filepath.Join(dir, "store.db")
	if err := os.WriteFile(plain, []byte("snapshot bytes"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	sealed := filepath.Join(dir, "store.db.sealed")
	if err := sealFile(enc, plain, sealed); err != nil {
		t.Fatalf("sealFile() error = %v", err)
	}
	if err := putFile(ctx, v, "owner-1", jt.ArtifactDatabase, sealed, 7); err != nil {
		t.Fatalf("putFile() error = %v", err)
	}

	if version, err := v.ArtifactVersion(ctx, "owner-1", jt.ArtifactDatabase); err != nil || version != 7 {
		t.Errorf("ArtifactVersion() = %d, %v, want 7", version, err)
	}

	copyPath := filepath.Join(dir, "out", "copy")
	if err := getFile(ctx, v, "owner-1", jt.ArtifactDatabase, copyPath, 0o600); err != nil {
		t.Fatalf("getFile() error = %v", err)
	}

	f, err := os.Open(copyPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	dctx, err := enc.Unlock("")
	if err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	var out bytes.Buffer
	if err := dctx.Decrypt(f, &out); err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if out.String() != "snapshot bytes" {
		t.Errorf("round trip = %q, want %q", out.String(), "snapshot bytes")
	}

	t.Run("existing file is kept", func(t *testing.T) {
		err := getFile(ctx, v, "owner-1", jt.ArtifactDatabase, copyPath, 0o600)
		if !errors.Is(err, os.ErrExist) {
			t.Errorf("getFile() error = %v, want os.ErrExist", err)
		}
	})

	t.Run("missing artifact leaves no file", func(t *testing.T) {
		path := filepath.Join(dir, "missing")
		err := getFile(ctx, v, "owner-1", jt.ArtifactPrivateKey, path, 0o600)
		if !errors.Is(err, jt.ErrArtifactNotFound) {
			t.Errorf("getFile() error = %v, want ErrArtifactNotFound", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Stat() error = %v, want not exist", err)
		}
	})
}
