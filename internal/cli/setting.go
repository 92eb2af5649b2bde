// Setting commands: get and set per-user key/value pairs.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/origin-mobile/satchel/pkg/types"
)

func newSettingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Manage per-user settings",
	}
	cmd.AddCommand(newSettingGetCmd())
	cmd.AddCommand(newSettingSetCmd())
	return cmd
}

func newSettingGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			userID, err := app.currentUserID(cmd.Context())
			if err != nil {
				return err
			}

			setting, err := app.store.Setting(cmd.Context(), userID, args[0])
			if err != nil {
				if errors.Is(err, types.ErrNotFound) {
					return fmt.Errorf("setting %q not found", args[0])
				}
				return err
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), setting)
			}
			fmt.Fprintln(cmd.OutOrStdout(), setting.Value)
			return nil
		},
	}
}

func newSettingSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Create or overwrite a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			userID, err := app.currentUserID(cmd.Context())
			if err != nil {
				return err
			}

			if err := app.store.SetSetting(cmd.Context(), userID, args[0], args[1]); err != nil {
				return fmt.Errorf("set setting: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		},
	}
}
