package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the jt configuration file.
type Config struct {
	// OwnerID is the identity every record is written and filtered under.
	OwnerID    string           `toml:"owner_id"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Database   DatabaseConfig   `toml:"database"`
	Vaults     []VaultConfig    `toml:"vaults"`
	Encryption EncryptionConfig `toml:"encryption"`
	Gateway    GatewayConfig    `toml:"gateway"`
	Display    DisplayConfig    `toml:"display"`
}

// DatabaseConfig selects the store. Type is "sqlite" or "memory"; DataDir
// is only read for sqlite.
type DatabaseConfig struct {
	Type    string `toml:"type"`
	DataDir string `toml:"data_dir,omitempty"`
}

// VaultConfig is a tagged union keyed by Type: "memory", "filesystem" or "s3".
type VaultConfig struct {
	Type string `toml:"type"`
	Name string `toml:"name"`

	// Type == "s3"
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"` // S3-compatible services (MinIO, R2)
	S3Profile  string `toml:"s3_profile,omitempty"`

	// Static credentials; when empty the default AWS credential chain is used.
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`

	// Type == "filesystem"
	FSVaultRoot string `toml:"fs_vault_root,omitempty"`
}

// EncryptionConfig holds the age key pair used to seal snapshots.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default), "test" or "none"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// GatewayConfig tunes store write behavior.
type GatewayConfig struct {
	// ArchiveConflict is "ignore" (default) or "report".
	ArchiveConflict string `toml:"archive_conflict"`
}

// DisplayConfig controls how stage tracks are printed.
type DisplayConfig struct {
	ShowNotes        bool   `toml:"show_notes"`
	CelebrateOnStage string `toml:"celebrate_on_stage"`
	// Icons is "named" (default: icon names map to glyphs) or "direct"
	// (the stored icon is printed as is).
	Icons string `toml:"icons"`
}

// NewConfig returns a Config for ownerID rooted at baseDir with a local
// sqlite store and default key paths.
func NewConfig(ownerID, baseDir string) *Config {
	return &Config{
		OwnerID: ownerID,
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "jt.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "jt.key"),
		},
		Gateway: GatewayConfig{ArchiveConflict: "ignore"},
		Display: DisplayConfig{
			ShowNotes:        true,
			CelebrateOnStage: "Accepted",
			Icons:            "named",
		},
	}
}

// Validate checks the values NewJTApp relies on.
func (c *Config) Validate() error {
	if c.OwnerID == "" {
		return fmt.Errorf("owner_id is required")
	}
	switch c.Gateway.ArchiveConflict {
	case "", "ignore", "report":
	default:
		return fmt.Errorf("gateway.archive_conflict must be ignore or report, got %q", c.Gateway.ArchiveConflict)
	}
	switch c.Display.Icons {
	case "", "named", "direct":
	default:
		return fmt.Errorf("display.icons must be named or direct, got %q", c.Display.Icons)
	}
	return nil
}

// Manager reads and writes configuration.
type Manager struct{}

// Read decodes a Config from r.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes cfg to w.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := (&Manager{}).Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file may carry S3 credentials.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := (&Manager{}).Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
