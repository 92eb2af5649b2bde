// Package cli implements the satchel command-line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
	user      string
}

var flags rootFlags

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

// NewRootCmd creates the top-level "satchel" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "satchel",
		Short: "Satchel is a local-first personal planner",
		Long: "Satchel keeps tasks, notes, media references, and settings in a\n" +
			"per-device database that is persisted as a portable image after\n" +
			"every change. Changes are tracked per row for later reconciliation.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := resolveConfigDir()
			if err != nil {
				return err
			}

			cfg, err := loadConfig(configDir)
			if err != nil {
				return err
			}

			configDataDir = cfg.GetString(cfgKeyDataDir)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.satchel-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flags.user, "user", "", "act as this user ID instead of the logged-in user")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newProfileCmd())
	root.AddCommand(newTaskCmd())
	root.AddCommand(newNoteCmd())
	root.AddCommand(newMediaCmd())
	root.AddCommand(newSettingCmd())
	root.AddCommand(newSyncCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
// Cobra prints the error itself; only the exit code is ours.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}
