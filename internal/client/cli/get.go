package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/iudanet/todokeeper/internal/client/api"
)

func (c *Cli) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get"},
		Short:   "Show task details",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), args[0])
		},
	}
}

func (c *Cli) runShow(ctx context.Context, id string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	task, err := c.apiClient.GetTask(ctx, id)
	if err != nil {
		return taskError(id, err)
	}

	return taskTmpl.Execute(c.io, task)
}

// taskError делает 404 читаемым
func taskError(id string, err error) error {
	if api.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("task not found with ID: %s", id)
	}
	return err
}
