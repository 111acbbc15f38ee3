package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"jobtrack/internal/config"
	"jobtrack/internal/database"
	"jobtrack/internal/encryption"
	"jobtrack/internal/jt"
	"jobtrack/internal/vault"
)

// JTApp is the application layer between the CLI and the tracker core.
// It constructs all dependencies from config, keeps the session's Board,
// and publishes a store snapshot on Close when the command wrote anything.
type JTApp struct {
	cfg       *config.Config
	db        *database.SQLiteDatabase
	vault     jt.Vault // nil when no vault is configured
	encryptor jt.Encryptor
	gateway   *jt.Gateway
	board     *jt.Board
	view      jt.StageView
	icons     jt.IconResolver
	logger    jt.Logger
	op        *Operation
	logFile   *os.File
}

// NewJTApp creates a fully wired JTApp from the given config.
// operation identifies the CLI command being run (e.g. "AddApplication", "ToggleStage").
// The caller must call Close when done.
func NewJTApp(ctx context.Context, cfg *config.Config, operation string) (*JTApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var v jt.Vault
	if len(cfg.Vaults) > 0 {
		var err error
		v, err = vault.NewVaultFromConfig(ctx, cfg.Vaults[0])
		if err != nil {
			return nil, fmt.Errorf("creating vault: %w", err)
		}
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database, cfg.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date (run `jt db migrate`): %w", err)
	}

	// A store older than the last published snapshot would overwrite it.
	if v != nil {
		remoteVersion, err := v.ArtifactVersion(ctx, cfg.OwnerID, jt.ArtifactDatabase)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("checking remote snapshot version: %w", err)
		}

		localVersion, err := db.StoreVersion(ctx)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("checking local store version: %w", err)
		}

		if remoteVersion > localVersion {
			db.Close()
			return nil, fmt.Errorf("local store is behind the vault (local=%d, remote=%d): restore from vault with `jt snapshot restore`", localVersion, remoteVersion)
		}
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	op := NewOperation(operation, "", time.Now())
	slogger, logFile, err := newLogger(cfg.LogDir, op.ID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	gw := jt.NewGateway(db, cfg.OwnerID, logger, jt.RealClock{}, jt.UUIDGenerator{},
		jt.WithArchiveConflictPolicy(archiveConflictPolicy(cfg.Gateway)))

	return &JTApp{
		cfg:       cfg,
		db:        db,
		vault:     v,
		encryptor: enc,
		gateway:   gw,
		board:     jt.NewBoard(jt.UUIDGenerator{}),
		view: jt.StageView{
			ShowNotes:        cfg.Display.ShowNotes,
			CelebrateOnStage: cfg.Display.CelebrateOnStage,
		},
		icons:   iconResolver(cfg.Display),
		logger:  logger,
		op:      op,
		logFile: logFile,
	}, nil
}

func archiveConflictPolicy(cfg config.GatewayConfig) jt.ArchiveConflictPolicy {
	if cfg.ArchiveConflict == string(jt.ArchiveConflictReport) {
		return jt.ArchiveConflictReport
	}
	return jt.ArchiveConflictIgnore
}

func iconResolver(cfg config.DisplayConfig) jt.IconResolver {
	if cfg.Icons == "direct" {
		return jt.DirectReference{}
	}
	return jt.DefaultIcons()
}

// Operation returns the operation this app runs for.
func (a *JTApp) Operation() *Operation {
	return a.op
}

// Icons returns the configured icon resolver.
func (a *JTApp) Icons() jt.IconResolver {
	return a.icons
}

// Close finishes the operation and releases resources. If the operation
// wrote to the store, the store version is bumped and a sealed snapshot
// is uploaded to the vault before the database is closed.
func (a *JTApp) Close(ctx context.Context) error {
	var firstErr error

	if a.op.Mutated() {
		if err := a.publishSnapshot(ctx); err != nil {
			a.logger.Error("snapshot publish failed", "operation", a.op.Name, "error", err)
			firstErr = err
		}
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	a.logger.Debug("operation finished", "operation", a.op.Name, "status", a.op.Status)
	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
