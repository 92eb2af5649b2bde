// Session commands: login, logout, whoami.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/origin-mobile/satchel/pkg/types"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Authenticate and start a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			user, err := app.store.Authenticate(cmd.Context(), args[0], args[1])
			if err != nil {
				if errors.Is(err, types.ErrInvalidCredentials) {
					return errors.New("invalid username or password")
				}
				return err
			}

			if err := app.store.SetCurrentUser(cmd.Context(), user.ID); err != nil {
				return err
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Username, user.Name)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.store.ClearCurrentUser(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
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

			user, err := app.store.UserByID(cmd.Context(), userID)
			if err != nil {
				return err
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) <%s>\n", user.Username, user.Name, user.Email)
			return nil
		},
	}
}
