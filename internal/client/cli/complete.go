package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func (c *Cli) completeCommand(use string, completed bool) *cobra.Command {
	short := "Mark a task as completed"
	if !completed {
		short = "Mark a task as pending"
	}

	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runComplete(cmd.Context(), args[0], completed)
		},
	}
}

func (c *Cli) runComplete(ctx context.Context, id string, completed bool) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	task, err := c.apiClient.CompleteTask(ctx, id, completed)
	if err != nil {
		return taskError(id, err)
	}

	c.io.Printf("%s %s\n", checkbox(task.Completed), task.Title)

	return nil
}
