package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	pkgapi "github.com/iudanet/todokeeper/pkg/api"
)

type addFlags struct {
	description string
	category    string
	due         string
}

func (c *Cli) addCommand() *cobra.Command {
	var flags addFlags

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Example: `  todokeeper add "Buy milk"
  todokeeper add "Pay rent" --category home --due 2025-02-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdd(cmd.Context(), strings.Join(args, " "), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&flags.category, "category", "c", "", "Task category")
	cmd.Flags().StringVar(&flags.due, "due", "", "Due date (YYYY-MM-DD or RFC3339)")

	return cmd
}

func (c *Cli) runAdd(ctx context.Context, title string, flags addFlags) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	req := pkgapi.CreateTaskRequest{
		Title:       title,
		Description: flags.description,
		Category:    flags.category,
	}
	if flags.due != "" {
		due, err := parseDue(flags.due)
		if err != nil {
			return err
		}
		req.DueDate = &due
	}

	task, err := c.apiClient.CreateTask(ctx, req)
	if err != nil {
		return err
	}

	c.io.Println("✓ Task created")
	c.io.Printf("ID: %s\n", task.ID)

	return nil
}
