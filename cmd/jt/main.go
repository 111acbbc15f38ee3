package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"jobtrack/internal/app"
	"jobtrack/internal/config"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	// A .env file in the working directory may carry JT_* settings and
	// S3 credentials; it is optional.
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	paths, err := app.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(paths.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// withApp reads the config, creates a JTApp for operation, runs fn and
// closes the app. A failed snapshot publish on close is reported.
func withApp(cmd *cobra.Command, operation string, fn func(ctx context.Context, a *app.JTApp) error) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := app.NewJTApp(ctx, cfg, operation)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}

	runErr := fn(ctx, a)
	if err := a.Close(ctx); err != nil {
		return errors.Join(runErr, fmt.Errorf("closing app: %w", err))
	}
	return runErr
}

// readPassphrase returns JT_PASSPHRASE if set, otherwise prompts on the
// terminal without echo.
func readPassphrase(prompt string) (string, error) {
	if p := os.Getenv("JT_PASSPHRASE"); p != "" {
		return p, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal to read a passphrase from; set JT_PASSPHRASE")
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

var rootCmd = &cobra.Command{
	Use:          "jt",
	Short:        "Job application tracker",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration, store and snapshot keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := app.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		ownerID, _ := cmd.Flags().GetString("owner")
		if ownerID == "" {
			ownerID = uuid.New().String()
		}
		cfg := config.NewConfig(ownerID, paths.BaseDir)

		if root, _ := cmd.Flags().GetString("vault-dir"); root != "" {
			cfg.Vaults = []config.VaultConfig{{Type: "filesystem", Name: "default", FSVaultRoot: root}}
		}
		if bucket, _ := cmd.Flags().GetString("s3-bucket"); bucket != "" {
			prefix, _ := cmd.Flags().GetString("s3-prefix")
			cfg.Vaults = []config.VaultConfig{{Type: "s3", Name: "default", S3Bucket: bucket, S3Prefix: prefix}}
		}
		if plain, _ := cmd.Flags().GetBool("no-encryption"); plain {
			cfg.Encryption.Type = "none"
		}

		if err := config.Init(paths.ConfigFile, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		var passphrase string
		if cfg.Encryption.Type != "none" {
			passphrase, err = readPassphrase("Snapshot passphrase: ")
			if err != nil {
				return err
			}
		}
		if err := app.Initialize(cmd.Context(), cfg, passphrase); err != nil {
			return err
		}

		fmt.Printf("Configuration initialized at %s\n", paths.ConfigFile)
		fmt.Printf("Owner ID: %s\n", ownerID)
		fmt.Printf("Base Dir: %s\n", paths.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := app.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(paths.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", paths.ConfigFile)
		fmt.Printf("Owner ID:   %s\n", cfg.OwnerID)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Database:   %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		for _, v := range cfg.Vaults {
			fmt.Printf("Vault:      %s (%s)\n", v.Name, v.Type)
		}
		return nil
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the local store",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := app.MigrateStore(cfg); err != nil {
			return err
		}
		fmt.Println("Store is up to date.")
		return nil
	},
}

// snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage vault snapshots",
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the local store with the latest vault snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		passphrase, err := readPassphrase("Snapshot passphrase: ")
		if err != nil {
			return err
		}

		version, err := app.RestoreSnapshot(cmd.Context(), cfg, passphrase)
		if err != nil {
			return err
		}
		fmt.Printf("Restored snapshot version %d\n", version)
		return nil
	},
}

var snapshotPublishKeysCmd = &cobra.Command{
	Use:   "publish-keys",
	Short: "Upload the snapshot key pair to the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := app.PublishKeys(cmd.Context(), cfg); err != nil {
			return err
		}
		fmt.Println("Keys published.")
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().String("owner", "", "Owner ID (default: a new UUID)")
	configInitCmd.Flags().String("vault-dir", "", "Publish snapshots to this directory")
	configInitCmd.Flags().String("s3-bucket", "", "Publish snapshots to this S3 bucket")
	configInitCmd.Flags().String("s3-prefix", "", "Key prefix inside the S3 bucket")
	configInitCmd.Flags().Bool("no-encryption", false, "Publish snapshots unencrypted")

	dbCmd.AddCommand(dbMigrateCmd)

	snapshotCmd.AddCommand(snapshotRestoreCmd)
	snapshotCmd.AddCommand(snapshotPublishKeysCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(appCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(companyCmd)
	rootCmd.AddCommand(contactCmd)
}
