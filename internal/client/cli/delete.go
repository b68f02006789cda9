package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func (c *Cli) deleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDelete(cmd.Context(), args[0], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func (c *Cli) runDelete(ctx context.Context, id string, yes bool) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	// Сначала получаем задачу для показа информации
	task, err := c.apiClient.GetTask(ctx, id)
	if err != nil {
		return taskError(id, err)
	}

	if !yes {
		c.io.Println("About to delete:")
		c.io.Printf("  %s %s\n", checkbox(task.Completed), task.Title)
		c.io.Println()

		confirm, err := c.io.ReadInput("Are you sure you want to delete this task? (yes/no): ")
		if err != nil {
			return err
		}
		confirm = strings.ToLower(strings.TrimSpace(confirm))
		if confirm != "yes" && confirm != "y" {
			c.io.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := c.apiClient.DeleteTask(ctx, id); err != nil {
		return taskError(id, err)
	}

	c.io.Println("✓ Task deleted")

	return nil
}
