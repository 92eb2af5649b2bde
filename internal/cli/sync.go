// Sync commands: now, status, on, off.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/origin-mobile/satchel/pkg/types"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile local changes",
	}
	cmd.AddCommand(newSyncNowCmd())
	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncOnCmd())
	cmd.AddCommand(newSyncOffCmd())
	return cmd
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Run a reconciliation pass immediately",
		Args:  cobra.NoArgs,
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

			result, err := app.sync.SyncWithServer(cmd.Context(), userID)
			if flags.jsonMode {
				if jerr := printJSON(cmd.OutOrStdout(), result); jerr != nil {
					return jerr
				}
				return err
			}
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}

			counts := result.SyncedItems
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d tasks, %d media, %d notes\n",
				counts.Tasks, counts.Media, counts.Notes)
			return nil
		},
	}
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync state for the acting user",
		Args:  cobra.NoArgs,
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
			ctx := cmd.Context()

			enabled, err := app.sync.Enabled(ctx, userID)
			if err != nil {
				return err
			}
			due, err := app.sync.Due(ctx, userID)
			if err != nil {
				return err
			}
			lastAttempt, err := app.sync.LastAttempt(ctx, userID)
			if err != nil {
				return err
			}
			pending, err := app.store.ItemsToSync(ctx, userID)
			if err != nil {
				return err
			}

			var lastSync string
			info, err := app.store.SyncInfo(ctx, userID)
			switch {
			case err == nil:
				lastSync = info.LastSync.Format("2006-01-02 15:04:05")
			case errors.Is(err, types.ErrNotFound):
				lastSync = "never"
			default:
				return err
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"enabled":     enabled,
					"due":         due,
					"lastAttempt": lastAttempt,
					"lastSync":    lastSync,
					"pending":     pending.Counts(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Enabled:     ", enabled)
			fmt.Fprintln(out, "Due:         ", due)
			if lastAttempt.IsZero() {
				fmt.Fprintln(out, "Last attempt: never")
			} else {
				fmt.Fprintln(out, "Last attempt:", lastAttempt.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintln(out, "Last sync:   ", lastSync)
			counts := pending.Counts()
			fmt.Fprintf(out, "Pending:      %d tasks, %d media, %d notes\n",
				counts.Tasks, counts.Media, counts.Notes)
			return nil
		},
	}
}

func newSyncOnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "on",
		Short: "Enable periodic sync for the acting user",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return setSyncEnabled(cmd, true) },
	}
}

func newSyncOffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "off",
		Short: "Disable periodic sync for the acting user",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return setSyncEnabled(cmd, false) },
	}
}

func setSyncEnabled(cmd *cobra.Command, enabled bool) error {
	app, err := attachApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	userID, err := app.currentUserID(cmd.Context())
	if err != nil {
		return err
	}

	if err := app.sync.SetEnabled(cmd.Context(), userID, enabled); err != nil {
		return err
	}
	if enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Sync enabled")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Sync disabled")
	}
	return nil
}
