package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"jobtrack/internal/config"
	"jobtrack/internal/database"
	"jobtrack/internal/encryption"
	"jobtrack/internal/jt"
	"jobtrack/internal/vault"
)

// publishSnapshot bumps the store version and uploads a sealed copy of the
// store under that version. Without a vault only the version is bumped.
func (a *JTApp) publishSnapshot(ctx context.Context) error {
	version, err := a.db.BumpStoreVersion(ctx)
	if err != nil {
		return fmt.Errorf("bumping store version: %w", err)
	}

	if a.vault == nil {
		a.logger.Debug("no vault configured, snapshot not published", "version", version)
		return nil
	}

	tmpDir, err := os.MkdirTemp("", "jt-snapshot-*")
	if err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	plainPath := filepath.Join(tmpDir, "store.db")
	if err := a.db.BackupTo(plainPath); err != nil {
		return err
	}

	sealedPath := filepath.Join(tmpDir, "store.db.sealed")
	if err := sealFile(a.encryptor, plainPath, sealedPath); err != nil {
		return err
	}

	if err := putFile(ctx, a.vault, a.cfg.OwnerID, jt.ArtifactDatabase, sealedPath, version); err != nil {
		return err
	}

	a.logger.Info("snapshot published", "version", version)
	return nil
}

func sealFile(enc jt.Encryptor, src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating sealed snapshot: %w", err)
	}
	if err := enc.Encrypt(in, out); err != nil {
		out.Close()
		return fmt.Errorf("sealing snapshot: %w", err)
	}
	return out.Close()
}

// putFile uploads the file at path as artifact name.
func putFile(ctx context.Context, v jt.Vault, ownerID string, name jt.Artifact, path string, version int64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s for upload: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}

	if err := v.PutArtifact(ctx, ownerID, name, f, info.Size(), version); err != nil {
		return fmt.Errorf("uploading %s to vault: %w", name, err)
	}
	return nil
}

// getFile downloads artifact name into a new file at path with perm.
func getFile(ctx context.Context, v jt.Vault, ownerID string, name jt.Artifact, path string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating directory for %s: %w", name, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := v.GetArtifact(ctx, ownerID, name, f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("downloading %s: %w", name, err)
	}
	return f.Close()
}

func usesAgeKeys(cfg config.EncryptionConfig) bool {
	return cfg.Type == "" || cfg.Type == "age"
}

func firstVault(ctx context.Context, cfg *config.Config) (jt.Vault, error) {
	if len(cfg.Vaults) == 0 {
		return nil, fmt.Errorf("no vaults configured")
	}
	v, err := vault.NewVaultFromConfig(ctx, cfg.Vaults[0])
	if err != nil {
		return nil, fmt.Errorf("creating vault: %w", err)
	}
	return v, nil
}

// MigrateStore applies pending schema migrations to the configured store.
// Memory stores are migrated on open, so this is a no-op for them.
func MigrateStore(cfg *config.Config) error {
	if cfg.Database.Type != "sqlite" {
		return nil
	}
	db, err := database.NewDatabaseFromConfig(cfg.Database, cfg.OwnerID)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.MigrateUp(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}

// Initialize prepares a fresh installation: it migrates the store,
// generates the snapshot key pair if there is none, and publishes the keys
// to the vault so another machine can restore.
func Initialize(ctx context.Context, cfg *config.Config, passphrase string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := MigrateStore(cfg); err != nil {
		return err
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if !enc.IsConfigured() {
		if err := enc.Setup(passphrase); err != nil {
			return fmt.Errorf("setting up encryption: %w", err)
		}
	}

	if len(cfg.Vaults) == 0 {
		return nil
	}
	v, err := firstVault(ctx, cfg)
	if err != nil {
		return err
	}
	if err := v.ValidateSetup(ctx); err != nil {
		return fmt.Errorf("validating vault: %w", err)
	}
	if usesAgeKeys(cfg.Encryption) {
		return publishKeys(ctx, v, cfg)
	}
	return nil
}

// PublishKeys uploads the age key pair to the first vault. The private
// key stays sealed with the passphrase.
func PublishKeys(ctx context.Context, cfg *config.Config) error {
	if !usesAgeKeys(cfg.Encryption) {
		return fmt.Errorf("encryption type %q has no keys to publish", cfg.Encryption.Type)
	}
	v, err := firstVault(ctx, cfg)
	if err != nil {
		return err
	}
	return publishKeys(ctx, v, cfg)
}

func publishKeys(ctx context.Context, v jt.Vault, cfg *config.Config) error {
	if err := putFile(ctx, v, cfg.OwnerID, jt.ArtifactPublicKey, cfg.Encryption.PublicKeyPath, 1); err != nil {
		return err
	}
	return putFile(ctx, v, cfg.OwnerID, jt.ArtifactPrivateKey, cfg.Encryption.PrivateKeyPath, 1)
}

// RestoreSnapshot replaces the local sqlite store with the latest snapshot
// in the first vault and returns its version. Missing key files are
// fetched from the vault first.
func RestoreSnapshot(ctx context.Context, cfg *config.Config, passphrase string) (int64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Database.Type != "sqlite" {
		return 0, fmt.Errorf("restore needs a sqlite database, got %q", cfg.Database.Type)
	}

	v, err := firstVault(ctx, cfg)
	if err != nil {
		return 0, err
	}

	version, err := v.ArtifactVersion(ctx, cfg.OwnerID, jt.ArtifactDatabase)
	if err != nil {
		return 0, fmt.Errorf("checking snapshot version: %w", err)
	}
	if version == 0 {
		return 0, fmt.Errorf("no snapshot published for owner %s", cfg.OwnerID)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return 0, fmt.Errorf("creating encryptor: %w", err)
	}
	if !enc.IsConfigured() {
		if err := fetchKeys(ctx, v, cfg); err != nil {
			return 0, err
		}
	}

	dctx, err := enc.Unlock(passphrase)
	if err != nil {
		return 0, fmt.Errorf("unlocking private key: %w", err)
	}

	if err := os.MkdirAll(cfg.Database.DataDir, 0o700); err != nil {
		return 0, fmt.Errorf("creating data dir: %w", err)
	}
	storePath := database.StorePath(cfg.Database, cfg.OwnerID)
	if err := downloadStore(ctx, v, cfg.OwnerID, dctx, storePath); err != nil {
		return 0, err
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database, cfg.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("opening restored database: %w", err)
	}
	defer db.Close()

	// Snapshots taken before a schema change are brought forward.
	if err := db.MigrateUp(); err != nil {
		return 0, fmt.Errorf("migrating restored database: %w", err)
	}
	if err := db.SetStoreVersion(ctx, version); err != nil {
		return 0, err
	}
	return version, nil
}

func fetchKeys(ctx context.Context, v jt.Vault, cfg *config.Config) error {
	if !usesAgeKeys(cfg.Encryption) {
		return fmt.Errorf("encryption type %q is not configured", cfg.Encryption.Type)
	}
	if err := getFile(ctx, v, cfg.OwnerID, jt.ArtifactPublicKey, cfg.Encryption.PublicKeyPath, 0o644); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	if err := getFile(ctx, v, cfg.OwnerID, jt.ArtifactPrivateKey, cfg.Encryption.PrivateKeyPath, 0o600); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	return nil
}

// downloadStore fetches the sealed snapshot, opens it into a temp file
// next to storePath and renames it into place.
func downloadStore(ctx context.Context, v jt.Vault, ownerID string, dctx jt.DecryptionContext, storePath string) error {
	sealed, err := os.CreateTemp("", "jt-restore-*.sealed")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(sealed.Name())
	defer sealed.Close()

	if err := v.GetArtifact(ctx, ownerID, jt.ArtifactDatabase, sealed); err != nil {
		return fmt.Errorf("downloading snapshot: %w", err)
	}
	if _, err := sealed.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding snapshot: %w", err)
	}

	plain, err := os.CreateTemp(filepath.Dir(storePath), ".restore-*.db")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	plainPath := plain.Name()

	if err := dctx.Decrypt(sealed, plain); err != nil {
		plain.Close()
		os.Remove(plainPath)
		return fmt.Errorf("decrypting snapshot: %w", err)
	}
	if err := plain.Close(); err != nil {
		os.Remove(plainPath)
		return fmt.Errorf("closing restored store: %w", err)
	}

	if err := os.Rename(plainPath, storePath); err != nil {
		os.Remove(plainPath)
		return fmt.Errorf("moving restored store into place: %w", err)
	}
	return nil
}
