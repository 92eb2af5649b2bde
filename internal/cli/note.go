// Note commands: add, list, update, rm.
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/origin-mobile/satchel/pkg/types"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
	}
	cmd.AddCommand(newNoteAddCmd())
	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteUpdateCmd())
	cmd.AddCommand(newNoteRmCmd())
	return cmd
}

func newNoteAddCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new note",
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

			note, err := app.store.CreateNote(cmd.Context(), userID, types.Note{
				Title:   args[0],
				Content: content,
			})
			if err != nil {
				return fmt.Errorf("create note: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), note)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created note: %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "note body")
	return cmd
}

func newNoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes, most recently updated first",
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

			notes, err := app.store.Notes(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("list notes: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), notes)
			}
			printNoteTable(cmd, notes)
			return nil
		},
	}
}

func newNoteUpdateCmd() *cobra.Command {
	var (
		title   string
		content string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update note fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			var upd types.NoteUpdate
			if cmd.Flags().Changed("title") {
				upd.Title = &title
			}
			if cmd.Flags().Changed("content") {
				upd.Content = &content
			}
			if upd.IsEmpty() {
				return fmt.Errorf("nothing to update: pass --title or --content")
			}

			if err := app.store.UpdateNote(cmd.Context(), args[0], upd); err != nil {
				return fmt.Errorf("update note: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Note updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&content, "content", "", "note body")
	return cmd
}

func newNoteRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.store.DeleteNote(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete note: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Note deleted")
			return nil
		},
	}
}

// printNoteTable prints notes in a human-readable table format.
func printNoteTable(cmd *cobra.Command, notes []types.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No notes found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
	fmt.Fprintln(w, "--\t-----\t-------")
	for _, n := range notes {
		title := n.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		shortID := n.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", shortID, title, n.UpdatedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
	fmt.Fprint(cmd.OutOrStdout(), sb.String())
}
