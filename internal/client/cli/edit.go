package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	pkgapi "github.com/iudanet/todokeeper/pkg/api"
)

func (c *Cli) editCommand() *cobra.Command {
	var title, description, category, due string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change task fields",
		Example: `  todokeeper edit 6f1c... --title "Buy oat milk"
  todokeeper edit 6f1c... --category "" --due 2025-03-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Отправляем только явно заданные флаги
			var req pkgapi.UpdateTaskRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("category") {
				req.Category = &category
			}
			if flags.Changed("due") {
				d, err := parseDue(due)
				if err != nil {
					return err
				}
				req.DueDate = &d
			}
			return c.runEdit(cmd.Context(), args[0], req)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD or RFC3339)")

	return cmd
}

func (c *Cli) runEdit(ctx context.Context, id string, req pkgapi.UpdateTaskRequest) error {
	if req.Title == nil && req.Description == nil && req.Category == nil && req.DueDate == nil {
		return errors.New("nothing to change: pass at least one of --title, --description, --category, --due")
	}

	if err := c.requireSession(ctx); err != nil {
		return err
	}

	task, err := c.apiClient.UpdateTask(ctx, id, req)
	if err != nil {
		return taskError(id, err)
	}

	c.io.Println("✓ Task updated")
	c.io.Printf("%s %s\n", checkbox(task.Completed), task.Title)

	return nil
}
