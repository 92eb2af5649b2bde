// Media commands: add, list, rm.
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/origin-mobile/satchel/pkg/types"
)

func newMediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage gallery items",
	}
	cmd.AddCommand(newMediaAddCmd())
	cmd.AddCommand(newMediaListCmd())
	cmd.AddCommand(newMediaRmCmd())
	return cmd
}

func newMediaAddCmd() *cobra.Command {
	var (
		url       string
		mediaType string
		source    string
		size      int64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a gallery item",
		Long: "Add registers a media reference in the gallery. The URL is stored\n" +
			"as an opaque reference; the content itself is never read.",
		Args: cobra.ExactArgs(1),
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

			item, err := app.store.SaveMedia(cmd.Context(), userID, types.Media{
				Name:   args[0],
				URL:    url,
				Type:   mediaType,
				Source: source,
				Size:   size,
			})
			if err != nil {
				return fmt.Errorf("save media: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved media: %s\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "content reference (required)")
	cmd.Flags().StringVar(&mediaType, "type", "", "media type: image or video (required)")
	cmd.Flags().StringVar(&source, "source", "", "origin: camera or imported (default: camera)")
	cmd.Flags().Int64Var(&size, "size", 0, "content size in bytes")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newMediaListCmd() *cobra.Command {
	var mediaType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List gallery items, newest first",
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

			items, err := app.store.Media(cmd.Context(), userID, mediaType)
			if err != nil {
				return fmt.Errorf("list media: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), items)
			}
			printMediaTable(cmd, items)
			return nil
		},
	}

	cmd.Flags().StringVar(&mediaType, "type", "", "filter by type: image or video (default: all)")
	return cmd
}

func newMediaRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a gallery item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.store.DeleteMedia(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete media: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Media deleted")
			return nil
		},
	}
}

// printMediaTable prints gallery items in a human-readable table format.
func printMediaTable(cmd *cobra.Command, items []types.Media) {
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No media found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTYPE\tSOURCE\tNAME")
	fmt.Fprintln(w, "--\t----\t------\t----")
	for _, m := range items {
		name := m.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		shortID := m.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID, m.Type, m.Source, name)
	}
	_ = w.Flush()
	fmt.Fprint(cmd.OutOrStdout(), sb.String())
}
