package cmd

import (
	"fmt"
	"time"

	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage your to-do list",
}

var addTaskCmd = &cobra.Command{
	Use:     "add <title>",
	Short:   "Add a task",
	Args:    cobra.ExactArgs(1),
	Example: `  campuslink tasks add "Upload resume" --due 2026-11-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := a.RequireSession()
		if err != nil {
			return err
		}

		task := &models.Task{UserID: sess.UserID, Title: args[0]}
		if due, _ := cmd.Flags().GetString("due"); due != "" {
			t, err := time.Parse("2006-01-02", due)
			if err != nil {
				return fmt.Errorf("invalid --due %q: use YYYY-MM-DD", due)
			}
			task.DueDate = &t
		}

		if err := a.Store.CreateTask(cmd.Context(), task); err != nil {
			return fmt.Errorf("save task: %w", err)
		}
		cmd.Printf("✓ Task added (ID: %s)\n", task.ID)
		return nil
	},
}

var listTasksCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := a.RequireSession()
		if err != nil {
			return err
		}

		tasks, err := a.Store.ListTasks(cmd.Context(), sess.UserID)
		if err != nil {
			return fmt.Errorf("fetch tasks: %w", err)
		}
		if len(tasks) == 0 {
			cmd.Println("Nothing to do. Add a task with 'campuslink tasks add'")
			return nil
		}

		cmd.Println(titleStyle.Render("Your Tasks"))
		now := a.Now()
		for _, t := range tasks {
			box := "[ ]"
			if t.Done {
				box = "[x]"
			}
			line := fmt.Sprintf("%s %s", box, t.Title)
			if t.DueDate != nil {
				due := "due " + t.DueDate.Format("Jan 2")
				if !t.Done && t.DueDate.Before(now) {
					due = errorStyle.Render("overdue " + t.DueDate.Format("Jan 2"))
				}
				line += " " + mutedStyle.Render("(") + due + mutedStyle.Render(")")
			}
			cmd.Println(line)
			cmd.Printf("    %s\n", mutedStyle.Render(t.ID))
		}
		return nil
	},
}

var doneTaskCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if _, err := a.RequireSession(); err != nil {
			return err
		}
		if err := a.Store.CompleteTask(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("complete task: %w", err)
		}
		cmd.Println("✓ Task done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(addTaskCmd)
	tasksCmd.AddCommand(listTasksCmd)
	tasksCmd.AddCommand(doneTaskCmd)

	addTaskCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
}
