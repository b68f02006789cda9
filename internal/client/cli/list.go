package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iudanet/todokeeper/internal/client/api"
)

type listFlags struct {
	category  string
	completed bool
	pending   bool
}

func (c *Cli) listCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runList(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.completed, "completed", false, "Show only completed tasks")
	cmd.Flags().BoolVar(&flags.pending, "pending", false, "Show only pending tasks")
	cmd.Flags().StringVarP(&flags.category, "category", "c", "", "Show only tasks in category")
	cmd.MarkFlagsMutuallyExclusive("completed", "pending")

	return cmd
}

func (c *Cli) runList(ctx context.Context, flags listFlags) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	query := api.TaskQuery{Category: flags.category}
	switch {
	case flags.completed:
		done := true
		query.Completed = &done
	case flags.pending:
		done := false
		query.Completed = &done
	}

	tasks, err := c.apiClient.ListTasks(ctx, query)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		c.io.Println("No tasks found.")
		c.io.Println()
		c.io.Println("Use 'todokeeper add <title>' to add your first task.")
		return nil
	}

	c.io.Printf("Found %d task(s):\n\n", len(tasks))

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "\tID\tTITLE\tCATEGORY\tDUE")
	for _, task := range tasks {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			checkbox(task.Completed), task.ID, task.Title, task.Category, formatDue(task.DueDate))
	}

	return w.Flush()
}
