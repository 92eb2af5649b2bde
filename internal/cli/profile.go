// Profile commands: show and update the acting user's profile.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/origin-mobile/satchel/pkg/types"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the user profile",
	}
	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileUpdateCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the acting user's profile",
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
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Username:", user.Username)
			fmt.Fprintln(out, "Name:    ", user.Name)
			fmt.Fprintln(out, "Email:   ", user.Email)
			fmt.Fprintln(out, "Theme:   ", user.Theme)
			if !user.LastLogin.IsZero() {
				fmt.Fprintln(out, "Last login:", user.LastLogin.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newProfileUpdateCmd() *cobra.Command {
	var (
		name     string
		email    string
		avatar   string
		theme    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Long: "Update one or more profile fields. Only the flags given are\n" +
			"changed; the username is fixed at account creation.",
		Args: cobra.NoArgs,
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

			var upd types.UserProfileUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("email") {
				upd.Email = &email
			}
			if cmd.Flags().Changed("avatar") {
				upd.Avatar = &avatar
			}
			if cmd.Flags().Changed("theme") {
				upd.Theme = &theme
			}
			if cmd.Flags().Changed("password") {
				upd.Password = &password
			}
			if upd.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			if err := app.store.UpdateUserProfile(cmd.Context(), userID, upd); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar reference")
	cmd.Flags().StringVar(&theme, "theme", "", "UI theme")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	return cmd
}
