// Task commands: add, list, update, done, rm.
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/origin-mobile/satchel/pkg/types"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage day-planner tasks",
	}
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	cmd.AddCommand(newTaskDoneCmd())
	cmd.AddCommand(newTaskRmCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var (
		taskTime     string
		taskPriority string
		taskDate     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Long: "Add creates a task for the acting user.\n\n" +
			"Example:\n" +
			"  satchel task add \"Buy groceries\" --date 2026-09-01\n" +
			"  satchel task add \"Standup\" --date 2026-09-01 --time 09:00 --priority high",
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

			task, err := app.store.CreateTask(cmd.Context(), userID, types.Task{
				Title:    args[0],
				Time:     taskTime,
				Priority: taskPriority,
				Date:     taskDate,
			})
			if err != nil {
				return fmt.Errorf("create task: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), task)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task: %s\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&taskTime, "time", "", "scheduled time of day (HH:MM)")
	cmd.Flags().StringVar(&taskPriority, "priority", "", "priority: low, medium, high (default: medium)")
	cmd.Flags().StringVar(&taskDate, "date", "", "scheduled date (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var listDate string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a day",
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

			tasks, err := app.store.Tasks(cmd.Context(), userID, listDate)
			if err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), tasks)
			}
			printTaskTable(cmd, tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&listDate, "date", "", "day to list (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		title    string
		taskTime string
		priority string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			var upd types.TaskUpdate
			if cmd.Flags().Changed("title") {
				upd.Title = &title
			}
			if cmd.Flags().Changed("time") {
				upd.Time = &taskTime
			}
			if cmd.Flags().Changed("priority") {
				upd.Priority = &priority
			}
			if cmd.Flags().Changed("date") {
				upd.Date = &date
			}
			if upd.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			if err := app.store.UpdateTask(cmd.Context(), args[0], upd); err != nil {
				return fmt.Errorf("update task: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&taskTime, "time", "", "scheduled time of day (HH:MM)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority: low, medium, high")
	cmd.Flags().StringVar(&date, "date", "", "scheduled date (YYYY-MM-DD)")
	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	var undone bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			completed := !undone
			upd := types.TaskUpdate{Completed: &completed}
			if err := app.store.UpdateTask(cmd.Context(), args[0], upd); err != nil {
				return fmt.Errorf("update task: %w", err)
			}
			if completed {
				fmt.Fprintln(cmd.OutOrStdout(), "Task completed")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Task reopened")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undone, "undo", false, "mark the task as not completed")
	return cmd
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := attachApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.store.DeleteTask(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete task: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task deleted")
			return nil
		},
	}
}

// printTaskTable prints tasks in a human-readable table format.
func printTaskTable(cmd *cobra.Command, tasks []types.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTIME\tPRI\tDONE\tTITLE")
	fmt.Fprintln(w, "--\t----\t---\t----\t-----")
	for _, t := range tasks {
		title := t.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		shortID := t.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID, t.Time, t.Priority, done, title)
	}
	_ = w.Flush()
	fmt.Fprint(cmd.OutOrStdout(), sb.String())
}
