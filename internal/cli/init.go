package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configYAML is the structure written to config.yaml by `satchel init` when
// a data directory override is requested.
type configYAML struct {
	LogLevel string `yaml:"log_level"`
	DataDir  string `yaml:"data_dir,omitempty"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize satchel storage",
		Long: "Create the configuration and data directories, then initialize the\n" +
			"database with the default accounts and persist its first image.",
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := ensureConfigDir(configDir); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// When --data-dir is given, record it in config.yaml so later
	// invocations find the same data directory without the flag.
	if flags.dataDir != "" {
		if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), flags.dataDir); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	} else if err := ensureDefaultConfigFile(configDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Attach creates the data directory, seeds the default accounts, and
	// persists the initial image.
	app, err := attachApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Satchel initialized successfully")
	fmt.Fprintln(cmd.OutOrStdout(), "  config:", configDir)
	fmt.Fprintln(cmd.OutOrStdout(), "  data:  ", dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with the given data_dir if the
// file does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configYAML{
		LogLevel: defaultLogLevel,
		DataDir:  dataDir,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
